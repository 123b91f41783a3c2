package sigv4

import "fmt"

// canonicalContext is the processing arena shared by every stage of the
// signing pipeline. The canonical request, the string to sign, the derived
// key windows, and the final signature all live inside buf; cursor marks
// the end of the live region. Invariant: 0 <= cursor <= len(buf), and
// remaining() == ProcessingBufferLength - cursor at all times.
type canonicalContext struct {
	buf    [ProcessingBufferLength]byte
	cursor int

	queryLocs  [MaxQueryPairCount]keyValuePair
	headerLocs [MaxHeaderPairCount]keyValuePair
}

func (c *canonicalContext) remaining() int {
	return ProcessingBufferLength - c.cursor
}

// bytes returns the live region of the arena.
func (c *canonicalContext) bytes() []byte {
	return c.buf[:c.cursor]
}

// reserve advances the cursor by n and returns the reserved window.
func (c *canonicalContext) reserve(n int) ([]byte, error) {
	if c.remaining() < n {
		return nil, fmt.Errorf("processing buffer exhausted reserving %d bytes: %w",
			n, ErrInsufficientMemory)
	}
	window := c.buf[c.cursor : c.cursor+n]
	c.cursor += n
	return window, nil
}

func (c *canonicalContext) writeByte(b byte) error {
	if c.remaining() < 1 {
		return fmt.Errorf("processing buffer exhausted: %w", ErrInsufficientMemory)
	}
	c.buf[c.cursor] = b
	c.cursor++
	return nil
}

func (c *canonicalContext) writeString(s string) error {
	if c.remaining() < len(s) {
		return fmt.Errorf("processing buffer exhausted writing %d bytes: %w",
			len(s), ErrInsufficientMemory)
	}
	copy(c.buf[c.cursor:], s)
	c.cursor += len(s)
	return nil
}

// writeLine writes s followed by a linefeed.
func (c *canonicalContext) writeLine(s string) error {
	if c.remaining() < len(s)+1 {
		return fmt.Errorf("processing buffer exhausted writing %d byte line: %w",
			len(s)+1, ErrInsufficientMemory)
	}
	copy(c.buf[c.cursor:], s)
	c.cursor += len(s)
	c.buf[c.cursor] = '\n'
	c.cursor++
	return nil
}

// relocate moves src, which must be a slice of buf, to offset dst and
// resets the cursor to the end of the moved region. The ranges may
// overlap. This is the single sanctioned in-place rewrite of the arena,
// used when the hash of the canonical request is slid into its final
// position within the string to sign.
func (c *canonicalContext) relocate(dst int, src []byte) {
	copy(c.buf[dst:], src)
	c.cursor = dst + len(src)
}
