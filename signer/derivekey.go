package signer

import "github.com/yourslab/SigV4-for-AWS-IoT-embedded-sdk-1/sigv4"

// DeriveKey performs the actual key derivation.
// Implements the SigV4 key derivation algorithm:
//   - kDate = HMAC-SHA256("AWS4" + secret, date)
//   - kRegion = HMAC-SHA256(kDate, region)
//   - kService = HMAC-SHA256(kRegion, service)
//   - kSigning = HMAC-SHA256(kService, "aws4_request")
//
// Reference: AWS SDK v4 signer internal/v4/cache.go deriveKey function
func DeriveKey(secret, service, region string, t SigningTime) ([]byte, error) {
	return sigv4.DeriveSigningKey(
		sigv4.NewSHA256(),
		secret,
		t.ShortTimeFormat(),
		region,
		service,
	)
}
