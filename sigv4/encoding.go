package sigv4

import "fmt"

const upperHexDigits = "0123456789ABCDEF"
const lowerHexDigits = "0123456789abcdef"

// toUpperHex returns the upper-case hex character for a nibble.
func toUpperHex(nibble byte) byte {
	return upperHexDigits[nibble&0x0F]
}

// toLowerHex returns the lower-case hex character for a nibble.
func toLowerHex(nibble byte) byte {
	return lowerHexDigits[nibble&0x0F]
}

// intToASCII writes value in base 10, right-aligned across the whole of
// out and left-padded with '0'. Callers must size out to at least the
// decimal width of the largest possible value.
func intToASCII(value int, out []byte) {
	for i := len(out) - 1; i >= 0; i-- {
		out[i] = byte(value%10) + '0'
		value /= 10
	}
}

// isUnreserved reports whether b is an RFC 3986 unreserved character:
// ALPHA / DIGIT / "-" / "_" / "." / "~".
func isUnreserved(b byte) bool {
	switch {
	case b >= 'a' && b <= 'z':
		return true
	case b >= 'A' && b <= 'Z':
		return true
	case b >= '0' && b <= '9':
		return true
	case b == '-' || b == '_' || b == '.' || b == '~':
		return true
	}
	return false
}

// lowercaseHexEncode writes the lower-case hex expansion of src into dst.
// dst must hold at least 2*len(src) bytes.
func lowercaseHexEncode(src, dst []byte) error {
	if len(dst) < 2*len(src) {
		return fmt.Errorf("hex output needs %d bytes, have %d: %w",
			2*len(src), len(dst), ErrInsufficientMemory)
	}
	for i, b := range src {
		dst[2*i] = toLowerHex(b >> 4)
		dst[2*i+1] = toLowerHex(b)
	}
	return nil
}
