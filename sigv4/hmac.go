package sigv4

import "fmt"

// hmacContext computes an RFC 2104 HMAC over a CryptoInterface. The key
// may be supplied in multiple chunks before any data is seen: chunks are
// buffered until they outgrow the hash block length, at which point the
// accumulated key is streamed through the hash and its digest becomes the
// effective key. The context is reset by final and can be reused for the
// next HMAC with the same crypto interface.
type hmacContext struct {
	crypto CryptoInterface
	key    [HashMaxBlockLength]byte
	keyLen int
}

func newHMACContext(crypto CryptoInterface) *hmacContext {
	return &hmacContext{crypto: crypto}
}

func wrapHashError(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrHash, op, err)
}

// addKey appends a chunk of key material. keyLen running past the block
// length marks that the key is being hashed down rather than buffered.
func (h *hmacContext) addKey(key []byte) error {
	blockLen := h.crypto.HashBlockLen()

	if h.keyLen+len(key) <= blockLen {
		copy(h.key[h.keyLen:], key)
		h.keyLen += len(key)
		return nil
	}

	// First chunk to overflow the block starts the hash-down, seeding it
	// with whatever was buffered so far.
	if h.keyLen <= blockLen {
		if err := h.crypto.HashInit(); err != nil {
			return wrapHashError("key hash init", err)
		}
		if err := h.crypto.HashUpdate(h.key[:h.keyLen]); err != nil {
			return wrapHashError("key hash update", err)
		}
	}
	if err := h.crypto.HashUpdate(key); err != nil {
		return wrapHashError("key hash update", err)
	}
	h.keyLen += len(key)
	return nil
}

// addData finalizes the key (hashing it down to digest size if it outgrew
// the block), pads and inner-XORs it, and starts the inner hash pass.
func (h *hmacContext) addData(data []byte) error {
	blockLen := h.crypto.HashBlockLen()

	if h.keyLen > blockLen {
		if err := h.crypto.HashFinal(h.key[:blockLen]); err != nil {
			return wrapHashError("key hash final", err)
		}
		h.keyLen = h.crypto.HashDigestLen()
	}

	// Zero pad to the block length and XOR with the inner pad.
	for i := h.keyLen; i < blockLen; i++ {
		h.key[i] = 0
	}
	for i := 0; i < blockLen; i++ {
		h.key[i] ^= 0x36
	}

	if err := h.crypto.HashInit(); err != nil {
		return wrapHashError("inner hash init", err)
	}
	if err := h.crypto.HashUpdate(h.key[:blockLen]); err != nil {
		return wrapHashError("inner key update", err)
	}
	if len(data) > 0 {
		if err := h.crypto.HashUpdate(data); err != nil {
			return wrapHashError("inner data update", err)
		}
	}
	return nil
}

// final completes the inner pass, runs the outer pass, and writes the MAC
// into mac, which must hold at least HashDigestLen bytes.
func (h *hmacContext) final(mac []byte) error {
	blockLen := h.crypto.HashBlockLen()
	digestLen := h.crypto.HashDigestLen()

	var innerDigest [HashMaxDigestLength]byte
	if err := h.crypto.HashFinal(innerDigest[:digestLen]); err != nil {
		return wrapHashError("inner hash final", err)
	}

	// Recover the outer-padded key from the inner-padded key in place:
	// XOR is associative, so 0x36 ^ 0x5c == 0x6a flips ipad to opad.
	for i := 0; i < blockLen; i++ {
		h.key[i] ^= 0x6a
	}

	if err := h.crypto.HashInit(); err != nil {
		return wrapHashError("outer hash init", err)
	}
	if err := h.crypto.HashUpdate(h.key[:blockLen]); err != nil {
		return wrapHashError("outer key update", err)
	}
	if err := h.crypto.HashUpdate(innerDigest[:digestLen]); err != nil {
		return wrapHashError("outer digest update", err)
	}
	if err := h.crypto.HashFinal(mac); err != nil {
		return wrapHashError("outer hash final", err)
	}

	h.keyLen = 0
	return nil
}

// complete runs a whole HMAC in one call.
func (h *hmacContext) complete(key, data, mac []byte) error {
	if len(mac) < h.crypto.HashDigestLen() {
		return fmt.Errorf("mac output needs %d bytes, have %d: %w",
			h.crypto.HashDigestLen(), len(mac), ErrInsufficientMemory)
	}
	if err := h.addKey(key); err != nil {
		return err
	}
	if err := h.addData(data); err != nil {
		return err
	}
	return h.final(mac)
}

// completeHash runs a one-shot hash of input into digest.
func completeHash(crypto CryptoInterface, input, digest []byte) error {
	if err := crypto.HashInit(); err != nil {
		return wrapHashError("hash init", err)
	}
	if err := crypto.HashUpdate(input); err != nil {
		return wrapHashError("hash update", err)
	}
	if err := crypto.HashFinal(digest); err != nil {
		return wrapHashError("hash final", err)
	}
	return nil
}

// completeHashAndHexEncode hashes input and writes the lower-case hex
// digest into out, returning the number of bytes written.
func completeHashAndHexEncode(crypto CryptoInterface, input, out []byte) (int, error) {
	digestLen := crypto.HashDigestLen()

	var digest [HashMaxDigestLength]byte
	if err := completeHash(crypto, input, digest[:digestLen]); err != nil {
		return 0, err
	}
	if err := lowercaseHexEncode(digest[:digestLen], out); err != nil {
		return 0, err
	}
	return 2 * digestLen, nil
}
