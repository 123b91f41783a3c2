package sigv4

import "errors"

// The closed set of failure kinds surfaced by this package. Callers can
// classify any returned error with errors.Is against these sentinels;
// wrapping only ever adds context, never new kinds.
var (
	// ErrInvalidParameter indicates a required input was missing or
	// zero-length.
	ErrInvalidParameter = errors.New("sigv4: invalid parameter")

	// ErrInsufficientMemory indicates the processing buffer or the
	// caller's output buffer is too small for the request being signed.
	ErrInsufficientMemory = errors.New("sigv4: insufficient memory")

	// ErrISOFormatting indicates a date string failed to parse or
	// represents an invalid calendar date.
	ErrISOFormatting = errors.New("sigv4: ISO 8601 formatting error")

	// ErrMaxQueryPairCountExceeded indicates the query string holds more
	// parameters than MaxQueryPairCount.
	ErrMaxQueryPairCountExceeded = errors.New("sigv4: max query pair count exceeded")

	// ErrMaxHeaderPairCountExceeded indicates the headers hold more
	// entries than MaxHeaderPairCount.
	ErrMaxHeaderPairCountExceeded = errors.New("sigv4: max header pair count exceeded")

	// ErrHash indicates the supplied CryptoInterface reported a failure.
	ErrHash = errors.New("sigv4: hash operation failed")
)
