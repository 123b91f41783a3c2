package sigv4

import "fmt"

// encodeURI percent-encodes src into dst per the SigV4 canonicalization
// rules and returns the number of bytes written. Unreserved bytes pass
// through verbatim, as does '/' unless encodeSlash is set. With
// doubleEncodeEquals set, '=' expands to the twice-encoded literal %253D,
// the treatment SigV4 requires for '=' inside query parameter values.
// Everything else becomes %XY with upper-case hex.
func encodeURI(src, dst []byte, encodeSlash, doubleEncodeEquals bool) (int, error) {
	written := 0

	for _, b := range src {
		switch {
		case doubleEncodeEquals && b == '=':
			if written+5 > len(dst) {
				return 0, fmt.Errorf("URI encoding overflow: %w", ErrInsufficientMemory)
			}
			copy(dst[written:], "%253D")
			written += 5

		case isUnreserved(b) || (b == '/' && !encodeSlash):
			if written+1 > len(dst) {
				return 0, fmt.Errorf("URI encoding overflow: %w", ErrInsufficientMemory)
			}
			dst[written] = b
			written++

		default:
			if written+3 > len(dst) {
				return 0, fmt.Errorf("URI encoding overflow: %w", ErrInsufficientMemory)
			}
			dst[written] = '%'
			dst[written+1] = toUpperHex(b >> 4)
			dst[written+2] = toUpperHex(b)
			written += 3
		}
	}

	return written, nil
}

// generateCanonicalURI writes the canonical URI line of the request. The
// path is encoded once, and for services that require double encoding the
// encoded output is encoded again into the space beyond it and slid back
// into place. S3 is the only service that encodes once.
func (c *canonicalContext) generateCanonicalURI(path []byte, encodeTwice bool) error {
	start := c.cursor

	n, err := encodeURI(path, c.buf[c.cursor:], false, false)
	if err != nil {
		return err
	}

	if encodeTwice {
		// Second pass reads the first pass's output, so it cannot run in
		// place.
		m, err := encodeURI(c.buf[start:start+n], c.buf[start+n:], false, false)
		if err != nil {
			return err
		}
		c.relocate(start, c.buf[start+n:start+n+m])
	} else {
		c.cursor += n
	}

	return c.writeByte('\n')
}
