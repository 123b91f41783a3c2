// Package sigv4 computes AWS Signature Version 4 authorization material:
// the canonical request, the string to sign, the derived signing key, and
// the final HMAC signature, byte-for-byte compatible with the AWS
// reference behavior.
//
// The package is purely computational. It performs no network I/O, stores
// no credentials, and does not choose a hash algorithm; callers supply
// one through CryptoInterface (NewSHA256 provides the standard choice).
// All intermediate artifacts live in a fixed-size processing buffer, so a
// request whose canonical form outgrows ProcessingBufferLength fails with
// ErrInsufficientMemory rather than allocating.
//
// Concurrent signing calls are safe as long as each uses its own
// CryptoInterface value; the package holds no shared mutable state.
package sigv4

import (
	"fmt"
	"strings"
)

// Credentials identifies the signing principal. Immutable for the
// duration of one signing call. SecurityToken and Expiration travel with
// temporary credentials; the core does not consume them itself, but
// higher layers attach the token to the signed request.
type Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SecurityToken   string
	Expiration      string
}

// HTTPParameters describes the request being signed. Flags marks fields
// that are already in canonical form and, via PayloadIsHashFlag, whether
// Payload is the body or its precomputed hex hash.
type HTTPParameters struct {
	Method  string
	Path    string
	Query   string
	Headers string
	Payload string
	Flags   uint32
}

// SigningParameters collects everything one signing call needs.
type SigningParameters struct {
	Credentials Credentials

	// DateISO8601 is the request timestamp in the 16-byte compact form
	// YYYYMMDDTHHMMSSZ, as produced by DateToISO8601.
	DateISO8601 string

	Region  string
	Service string

	// Algorithm defaults to AWS4-HMAC-SHA256 when empty.
	Algorithm string

	// Crypto supplies the hash primitive. The value is owned by this
	// signing call until it returns.
	Crypto CryptoInterface

	HTTP HTTPParameters

	// SigningKey optionally supplies a precomputed signing key (see
	// DeriveSigningKey), skipping the four-stage derivation chain.
	SigningKey []byte
}

// GenerateHTTPAuthorization runs the complete signing pipeline and
// produces the Authorization header value. The header is written into
// authBuf when one is supplied; passing nil lets the call allocate. The
// returned signature slice aliases the returned header bytes, pointing at
// the hex signature at its tail.
//
// When authBuf is too small the call fails with ErrInsufficientMemory,
// reporting the required size, and leaves authBuf untouched; no error
// path writes partial output.
func GenerateHTTPAuthorization(params *SigningParameters, authBuf []byte) (authorization, signature []byte, err error) {
	if err := verifyParameters(params); err != nil {
		return nil, nil, err
	}

	algorithm := params.Algorithm
	if algorithm == "" {
		algorithm = SigningAlgorithm
	}

	ctx := &canonicalContext{}

	signedHeaders, err := buildCanonicalRequest(params, ctx)
	if err != nil {
		return nil, nil, err
	}

	stringToSign, err := writeStringToSign(params, algorithm, ctx)
	if err != nil {
		return nil, nil, err
	}

	hm := newHMACContext(params.Crypto)

	signingKey := params.SigningKey
	if len(signingKey) == 0 {
		signingKey, err = generateSigningKey(params, hm, ctx)
		if err != nil {
			return nil, nil, err
		}
	}

	digestLen := params.Crypto.HashDigestLen()
	mac, err := ctx.reserve(digestLen)
	if err != nil {
		return nil, nil, err
	}
	if err := hm.complete(signingKey, stringToSign, mac); err != nil {
		return nil, nil, err
	}

	hexSignature, err := ctx.reserve(2 * digestLen)
	if err != nil {
		return nil, nil, err
	}
	if err := lowercaseHexEncode(mac, hexSignature); err != nil {
		return nil, nil, err
	}

	return writeAuthorization(params, algorithm, signedHeaders, hexSignature, authBuf)
}

// verifyParameters rejects missing or zero-length required inputs and a
// CryptoInterface whose geometry exceeds the compiled bounds.
func verifyParameters(params *SigningParameters) error {
	switch {
	case params == nil:
		return fmt.Errorf("params are required: %w", ErrInvalidParameter)
	case params.Credentials.AccessKeyID == "":
		return fmt.Errorf("access key ID is required: %w", ErrInvalidParameter)
	case params.Credentials.SecretAccessKey == "":
		return fmt.Errorf("secret access key is required: %w", ErrInvalidParameter)
	case len(params.DateISO8601) != ISODateLength:
		return fmt.Errorf("date must be %d bytes of YYYYMMDDTHHMMSSZ: %w",
			ISODateLength, ErrInvalidParameter)
	case params.Region == "":
		return fmt.Errorf("region is required: %w", ErrInvalidParameter)
	case params.Service == "":
		return fmt.Errorf("service is required: %w", ErrInvalidParameter)
	case params.Crypto == nil:
		return fmt.Errorf("crypto interface is required: %w", ErrInvalidParameter)
	case params.HTTP.Method == "":
		return fmt.Errorf("HTTP method is required: %w", ErrInvalidParameter)
	}

	digestLen := params.Crypto.HashDigestLen()
	blockLen := params.Crypto.HashBlockLen()
	switch {
	case digestLen < 1 || digestLen > HashMaxDigestLength:
		return fmt.Errorf("hash digest length %d outside 1..%d: %w",
			digestLen, HashMaxDigestLength, ErrInvalidParameter)
	case blockLen < digestLen || blockLen > HashMaxBlockLength:
		return fmt.Errorf("hash block length %d outside %d..%d: %w",
			blockLen, digestLen, HashMaxBlockLength, ErrInvalidParameter)
	}

	return nil
}

// buildCanonicalRequest assembles the canonical request in the arena and
// returns the signed headers list.
func buildCanonicalRequest(params *SigningParameters, ctx *canonicalContext) (string, error) {
	http := &params.HTTP

	if err := ctx.writeLine(http.Method); err != nil {
		return "", err
	}

	path := http.Path
	if path == "" {
		path = "/"
	}
	switch {
	case http.Flags&PathIsCanonicalFlag != 0:
		if err := ctx.writeLine(path); err != nil {
			return "", err
		}
	default:
		// S3 is the only service whose URI is encoded exactly once.
		encodeTwice := params.Service != s3ServiceName
		if err := ctx.generateCanonicalURI([]byte(path), encodeTwice); err != nil {
			return "", err
		}
	}

	if http.Flags&QueryIsCanonicalFlag != 0 {
		if err := ctx.writeLine(http.Query); err != nil {
			return "", err
		}
	} else if err := ctx.generateCanonicalQuery(http.Query); err != nil {
		return "", err
	}

	var signedHeaders string
	if http.Flags&HeadersAreCanonicalFlag != 0 {
		// Already-canonical headers carry the block, a blank line, and
		// the signed headers list; recover the list for the
		// Authorization header.
		sep := strings.LastIndex(http.Headers, "\n\n")
		if sep < 0 {
			return "", fmt.Errorf("canonical headers lack the blank line before the signed headers list: %w",
				ErrInvalidParameter)
		}
		signedHeaders = http.Headers[sep+2:]
		if err := ctx.writeLine(http.Headers); err != nil {
			return "", err
		}
	} else {
		var err error
		signedHeaders, err = ctx.generateCanonicalHeaders(http.Headers)
		if err != nil {
			return "", err
		}
	}

	if http.Flags&PayloadIsHashFlag != 0 {
		if err := ctx.writeString(http.Payload); err != nil {
			return "", err
		}
	} else {
		window, err := ctx.reserve(2 * params.Crypto.HashDigestLen())
		if err != nil {
			return "", err
		}
		if _, err := completeHashAndHexEncode(params.Crypto, []byte(http.Payload), window); err != nil {
			return "", err
		}
	}

	return signedHeaders, nil
}

// credentialScope builds YYYYMMDD/region/service/aws4_request.
func credentialScope(params *SigningParameters) string {
	var b strings.Builder
	b.Grow(isoDateScopeLength + len(params.Region) + len(params.Service) +
		len(credentialScopeTerminator) + 3)
	b.WriteString(params.DateISO8601[:isoDateScopeLength])
	b.WriteByte('/')
	b.WriteString(params.Region)
	b.WriteByte('/')
	b.WriteString(params.Service)
	b.WriteByte('/')
	b.WriteString(credentialScopeTerminator)
	return b.String()
}

// writeStringToSign replaces the canonical request in the arena with the
// string to sign. The hex hash of the canonical request is computed into
// scratch just past the live region, then slid into its final position
// after the algorithm, timestamp, and credential scope lines, which are
// written over the start of the buffer.
func writeStringToSign(params *SigningParameters, algorithm string, ctx *canonicalContext) ([]byte, error) {
	hexLen := 2 * params.Crypto.HashDigestLen()
	requestLen := ctx.cursor

	if ctx.remaining() < 1+hexLen {
		return nil, fmt.Errorf("processing buffer exhausted hashing the canonical request: %w",
			ErrInsufficientMemory)
	}
	scratch := ctx.buf[requestLen+1 : requestLen+1+hexLen]
	if _, err := completeHashAndHexEncode(params.Crypto, ctx.bytes(), scratch); err != nil {
		return nil, err
	}

	scope := credentialScope(params)
	prefixLen := len(algorithm) + 1 + ISODateLength + 1 + len(scope) + 1
	if prefixLen+hexLen > ProcessingBufferLength {
		return nil, fmt.Errorf("processing buffer exhausted writing the string to sign: %w",
			ErrInsufficientMemory)
	}

	ctx.relocate(prefixLen, scratch)

	w := copy(ctx.buf[0:], algorithm)
	ctx.buf[w] = '\n'
	w++
	w += copy(ctx.buf[w:], params.DateISO8601)
	ctx.buf[w] = '\n'
	w++
	w += copy(ctx.buf[w:], scope)
	ctx.buf[w] = '\n'

	return ctx.bytes(), nil
}

// deriveSigningKeyInto runs the four-stage HMAC chain, alternating
// between the two digest-sized windows so no stage reads the window it is
// writing. The final key lands in w1.
func deriveSigningKeyInto(hm *hmacContext, secretAccessKey, dateYYYYMMDD, region, service string, w0, w1 []byte) error {
	// Stage one's key is "AWS4" || secret, supplied in two chunks.
	if err := hm.addKey([]byte(signingKeyPrefix)); err != nil {
		return err
	}
	if err := hm.complete([]byte(secretAccessKey), []byte(dateYYYYMMDD), w0); err != nil {
		return err
	}
	if err := hm.complete(w0, []byte(region), w1); err != nil {
		return err
	}
	if err := hm.complete(w1, []byte(service), w0); err != nil {
		return err
	}
	return hm.complete(w0, []byte(credentialScopeTerminator), w1)
}

// generateSigningKey derives the signing key into two arena windows
// reserved past the string to sign.
func generateSigningKey(params *SigningParameters, hm *hmacContext, ctx *canonicalContext) ([]byte, error) {
	digestLen := params.Crypto.HashDigestLen()

	if ctx.remaining() < 2*digestLen {
		return nil, fmt.Errorf("processing buffer exhausted deriving the signing key: %w",
			ErrInsufficientMemory)
	}
	w0, err := ctx.reserve(digestLen)
	if err != nil {
		return nil, err
	}
	w1, err := ctx.reserve(digestLen)
	if err != nil {
		return nil, err
	}

	err = deriveSigningKeyInto(hm,
		params.Credentials.SecretAccessKey,
		params.DateISO8601[:isoDateScopeLength],
		params.Region,
		params.Service,
		w0, w1)
	if err != nil {
		return nil, err
	}
	return w1, nil
}

// DeriveSigningKey derives the SigV4 signing key for a credential scope:
// HMAC(HMAC(HMAC(HMAC("AWS4"+secret, date), region), service),
// "aws4_request"). dateYYYYMMDD is the 8-byte scope date; passing the full
// 16-byte ISO 8601 form also works, only the date portion is used. The
// returned key can be cached for the scope's day and fed back through
// SigningParameters.SigningKey.
func DeriveSigningKey(crypto CryptoInterface, secretAccessKey, dateYYYYMMDD, region, service string) ([]byte, error) {
	switch {
	case crypto == nil:
		return nil, fmt.Errorf("crypto interface is required: %w", ErrInvalidParameter)
	case secretAccessKey == "":
		return nil, fmt.Errorf("secret access key is required: %w", ErrInvalidParameter)
	case len(dateYYYYMMDD) < isoDateScopeLength:
		return nil, fmt.Errorf("date must carry at least %d bytes of YYYYMMDD: %w",
			isoDateScopeLength, ErrInvalidParameter)
	case region == "" || service == "":
		return nil, fmt.Errorf("region and service are required: %w", ErrInvalidParameter)
	}

	digestLen := crypto.HashDigestLen()
	if digestLen < 1 || digestLen > HashMaxDigestLength {
		return nil, fmt.Errorf("hash digest length %d outside 1..%d: %w",
			digestLen, HashMaxDigestLength, ErrInvalidParameter)
	}

	var w0, w1 [HashMaxDigestLength]byte
	hm := newHMACContext(crypto)
	err := deriveSigningKeyInto(hm, secretAccessKey,
		dateYYYYMMDD[:isoDateScopeLength], region, service,
		w0[:digestLen], w1[:digestLen])
	if err != nil {
		return nil, err
	}

	key := make([]byte, digestLen)
	copy(key, w1[:digestLen])
	return key, nil
}

// writeAuthorization emits the Authorization header value into authBuf
// (allocating when nil) and returns it with the signature sub-slice.
func writeAuthorization(params *SigningParameters, algorithm, signedHeaders string, hexSignature, authBuf []byte) (authorization, signature []byte, err error) {
	const credentialPrefix = "Credential="
	const signedHeadersPrefix = ", SignedHeaders="
	const signaturePrefix = ", Signature="

	scope := credentialScope(params)

	needed := len(algorithm) + 1 +
		len(credentialPrefix) + len(params.Credentials.AccessKeyID) + 1 + len(scope) +
		len(signedHeadersPrefix) + len(signedHeaders) +
		len(signaturePrefix) + len(hexSignature)

	if authBuf == nil {
		authBuf = make([]byte, needed)
	} else if len(authBuf) < needed {
		return nil, nil, fmt.Errorf("authorization buffer needs %d bytes, have %d: %w",
			needed, len(authBuf), ErrInsufficientMemory)
	}

	w := copy(authBuf[0:], algorithm)
	authBuf[w] = ' '
	w++
	w += copy(authBuf[w:], credentialPrefix)
	w += copy(authBuf[w:], params.Credentials.AccessKeyID)
	authBuf[w] = '/'
	w++
	w += copy(authBuf[w:], scope)
	w += copy(authBuf[w:], signedHeadersPrefix)
	w += copy(authBuf[w:], signedHeaders)
	w += copy(authBuf[w:], signaturePrefix)
	sigStart := w
	w += copy(authBuf[w:], hexSignature)

	return authBuf[:w], authBuf[sigStart:w], nil
}
