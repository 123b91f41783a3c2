package sigv4

// Compile-time sizing of the signing core. The processing buffer holds the
// canonical request, the string to sign, the derived key windows, and the
// final signature, so it bounds the size of request that can be signed.
const (
	// ProcessingBufferLength is the size of the internal processing
	// buffer that all canonicalization and signing artifacts share.
	ProcessingBufferLength = 4096

	// MaxQueryPairCount caps the number of query string parameters.
	MaxQueryPairCount = 100

	// MaxHeaderPairCount caps the number of request headers.
	MaxHeaderPairCount = 100

	// HashMaxDigestLength is the largest digest a CryptoInterface may
	// produce.
	HashMaxDigestLength = 64

	// HashMaxBlockLength is the largest internal block length a
	// CryptoInterface may use.
	HashMaxBlockLength = 128
)

const (
	// SigningAlgorithm is the default SigV4 algorithm identifier.
	SigningAlgorithm = "AWS4-HMAC-SHA256"

	// EmptyStringSHA256 is the hex encoded SHA256 hash of an empty
	// string, used as the payload hash for bodiless requests.
	EmptyStringSHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

	// ISODateLength is the length of the compact ISO 8601 form
	// YYYYMMDDTHHMMSSZ.
	ISODateLength = 16
)

// HTTPParameters.Flags values. A set flag marks the corresponding field as
// already canonical, so the pipeline copies it through verbatim.
const (
	// PathIsCanonicalFlag marks Path as an already canonicalized URI.
	PathIsCanonicalFlag uint32 = 1 << iota

	// QueryIsCanonicalFlag marks Query as already canonicalized.
	QueryIsCanonicalFlag

	// HeadersAreCanonicalFlag marks Headers as the already canonical
	// headers section: the canonical headers block, a blank line, then
	// the signed headers list.
	HeadersAreCanonicalFlag

	// PayloadIsHashFlag marks Payload as the hex encoded hash of the
	// request body rather than the body itself.
	PayloadIsHashFlag
)

const (
	credentialScopeTerminator = "aws4_request"
	signingKeyPrefix          = "AWS4"
	s3ServiceName             = "s3"

	// Number of leading bytes of the ISO 8601 date used in the
	// credential scope (YYYYMMDD).
	isoDateScopeLength = 8

	expectedLenRFC3339 = 20
	expectedLenRFC5322 = 29
)
