package signer

import (
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// BuildCredentialScope builds the SigV4 credential scope.
// Format: date/region/service/aws4_request
// Reference: AWS SDK v4 signer internal/v4/scope.go
func BuildCredentialScope(t SigningTime, region, service string) string {
	return strings.Join([]string{
		t.ShortTimeFormat(),
		region,
		service,
		"aws4_request",
	}, "/")
}

// BuildCanonicalHeaders builds the canonical headers string.
// Returns: signed headers map, signed headers string, canonical headers
// Reference: AWS SDK v4 signer v4.go buildCanonicalHeaders
func BuildCanonicalHeaders(host string, rule Rule, header http.Header, length int64) (signed http.Header, signedHeaders, canonicalHeadersStr string) {
	signed = make(http.Header)

	var headers []string
	const hostHeader = "host"
	headers = append(headers, hostHeader)
	signed[hostHeader] = append(signed[hostHeader], host)

	const contentLengthHeader = "content-length"
	if length > 0 {
		headers = append(headers, contentLengthHeader)
		signed[contentLengthHeader] = append(
			signed[contentLengthHeader],
			strconv.FormatInt(length, 10),
		)
	}

	for k, v := range header {
		if !rule.IsValid(k) {
			continue
		}
		if strings.EqualFold(k, contentLengthHeader) {
			continue
		}

		lowerKey := strings.ToLower(k)
		if _, ok := signed[lowerKey]; ok {
			signed[lowerKey] = append(signed[lowerKey], v...)
			continue
		}

		headers = append(headers, lowerKey)
		signed[lowerKey] = v
	}
	sort.Strings(headers)

	signedHeaders = strings.Join(headers, ";")

	var canonicalHeaders strings.Builder
	n := len(headers)
	const colon = ':'
	for i := 0; i < n; i++ {
		if headers[i] == hostHeader {
			canonicalHeaders.WriteString(hostHeader)
			canonicalHeaders.WriteRune(colon)
			canonicalHeaders.WriteString(
				StripExcessSpaces(host),
			)
		} else {
			canonicalHeaders.WriteString(headers[i])
			canonicalHeaders.WriteRune(colon)
			values := signed[headers[i]]
			for j, val := range values {
				cleaned := strings.TrimSpace(
					StripExcessSpaces(val),
				)
				canonicalHeaders.WriteString(cleaned)
				if j < len(values)-1 {
					canonicalHeaders.WriteRune(',')
				}
			}
		}
		canonicalHeaders.WriteRune('\n')
	}
	canonicalHeadersStr = canonicalHeaders.String()

	return signed, signedHeaders, canonicalHeadersStr
}

// BuildQuery hoists allowed headers to query parameters.
// Note: This function intentionally converts certain header names to lowercase
// when storing them in unsignedHeaders. This behavior matches the AWS SDK v4
// signer implementation and is required to mitigate S3 limitations. The same
// potentially-lowercased key is used for both query parameters and unsigned
// headers to maintain consistency.
// Reference: AWS SDK v4 signer v4.go:394-417 (buildQuery function)
func BuildQuery(rule Rule, header http.Header) (url.Values, http.Header) {
	query := url.Values{}
	unsignedHeaders := http.Header{}

	// A list of headers to be converted to lower case to mitigate a
	// limitation from S3
	lowerCaseHeaders := map[string]string{
		"X-Amz-Expected-Bucket-Owner": "x-amz-expected-bucket-owner", // see #2508
		"X-Amz-Request-Payer":         "x-amz-request-payer",         // see #2764
	}

	for k, h := range header {
		if newKey, ok := lowerCaseHeaders[k]; ok {
			k = newKey
		}

		if rule.IsValid(k) {
			query[k] = h
		} else {
			unsignedHeaders[k] = h
		}
	}

	return query, unsignedHeaders
}

// CanonicalizeHeaderKey returns the canonical form of a header key.
func CanonicalizeHeaderKey(key string) string {
	return textproto.CanonicalMIMEHeaderKey(key)
}
