package sigv4

import (
	"fmt"
	"hash"

	sha256 "github.com/minio/sha256-simd"
)

// CryptoInterface is the streaming hash contract the signing core consumes.
// The core never allocates hash state; the value implementing the
// interface owns its context and is logically bound to one signing call
// from entry to return. HashBlockLen must be at least HashDigestLen, and
// neither may exceed HashMaxBlockLength / HashMaxDigestLength.
type CryptoInterface interface {
	// HashInit resets the hash context for a fresh computation.
	HashInit() error

	// HashUpdate absorbs data into the running hash.
	HashUpdate(data []byte) error

	// HashFinal writes the digest into out, which holds at least
	// HashDigestLen bytes.
	HashFinal(out []byte) error

	// HashBlockLen returns the hash's internal block length in bytes.
	HashBlockLen() int

	// HashDigestLen returns the digest length in bytes.
	HashDigestLen() int
}

// sha256Interface adapts SHA-256 to CryptoInterface. The SIMD-accelerated
// implementation shares its interface with crypto/sha256, so Write never
// fails.
type sha256Interface struct {
	h hash.Hash
}

// NewSHA256 returns a CryptoInterface backed by SHA-256, the hash SigV4's
// default AWS4-HMAC-SHA256 algorithm requires. Each returned value owns
// independent hash state, so distinct signing calls need distinct values.
func NewSHA256() CryptoInterface {
	return &sha256Interface{h: sha256.New()}
}

func (s *sha256Interface) HashInit() error {
	s.h.Reset()
	return nil
}

func (s *sha256Interface) HashUpdate(data []byte) error {
	_, err := s.h.Write(data)
	return err
}

func (s *sha256Interface) HashFinal(out []byte) error {
	if len(out) < sha256.Size {
		return fmt.Errorf("digest output needs %d bytes, have %d", sha256.Size, len(out))
	}
	sum := s.h.Sum(nil)
	copy(out, sum)
	return nil
}

func (s *sha256Interface) HashBlockLen() int {
	return sha256.BlockSize
}

func (s *sha256Interface) HashDigestLen() int {
	return sha256.Size
}
