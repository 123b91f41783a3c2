package sigv4

import (
	"fmt"
	"strings"
)

// splitHeaders slices the raw header block into name/value records. Input
// is a sequence of name:value lines separated by CRLF (a bare LF is also
// accepted), terminating at the first empty line or at end of input.
func splitHeaders(headers string, records []keyValuePair) (int, error) {
	count := 0

	for i := 0; i < len(headers); {
		var line string
		if j := strings.IndexByte(headers[i:], '\n'); j >= 0 {
			line = headers[i : i+j]
			i += j + 1
		} else {
			line = headers[i:]
			i = len(headers)
		}
		line = strings.TrimSuffix(line, "\r")

		// A blank line ends the header block.
		if line == "" {
			break
		}

		colon := strings.IndexByte(line, ':')
		if colon < 0 {
			return 0, fmt.Errorf("header line %q has no colon: %w", line, ErrInvalidParameter)
		}

		name := strings.ToLower(strings.TrimSpace(line[:colon]))
		if name == "" {
			return 0, fmt.Errorf("header line %q has an empty name: %w", line, ErrInvalidParameter)
		}

		if count == len(records) {
			return 0, fmt.Errorf("request holds more than %d headers: %w",
				len(records), ErrMaxHeaderPairCountExceeded)
		}
		records[count] = keyValuePair{
			key:   name,
			value: trimAndCollapseWS(line[colon+1:]),
			index: count,
		}
		count++
	}

	return count, nil
}

// trimAndCollapseWS removes leading and trailing ASCII whitespace and
// collapses each internal run of whitespace to a single space. Whitespace
// inside double quotes is preserved verbatim, per the SigV4 header
// canonicalization rules.
func trimAndCollapseWS(s string) string {
	s = strings.Trim(s, " \t")

	var b strings.Builder
	b.Grow(len(s))

	inQuotes := false
	pendingSpace := false
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if ch == '"' {
			inQuotes = !inQuotes
		}
		if !inQuotes && (ch == ' ' || ch == '\t') {
			pendingSpace = true
			continue
		}
		if pendingSpace {
			b.WriteByte(' ')
			pendingSpace = false
		}
		b.WriteByte(ch)
	}

	return b.String()
}

// compareHeaderName orders header records by lowercase name in unsigned
// byte order, extended by original position so records with equal names
// keep their input order. The extension makes the order total, which is
// what lets a non-stable sort produce a stable result.
func compareHeaderName(a, b keyValuePair) int {
	if c := strings.Compare(a.key, b.key); c != 0 {
		return c
	}
	return a.index - b.index
}

// generateCanonicalHeaders writes the canonical headers section: one
// name:value line per header in sorted order with repeated names merged
// into a single comma-joined line, a blank separator line, then the
// signed headers list. It returns the signed headers list for the
// Authorization header.
func (c *canonicalContext) generateCanonicalHeaders(headers string) (string, error) {
	count, err := splitHeaders(headers, c.headerLocs[:])
	if err != nil {
		return "", err
	}

	sortKeyValuePairs(c.headerLocs[:count], compareHeaderName)

	var signed strings.Builder
	for i := 0; i < count; i++ {
		record := &c.headerLocs[i]

		if i > 0 && record.key == c.headerLocs[i-1].key {
			// Same name as the previous record: append to its line, in
			// input order thanks to the index tiebreak.
			if err := c.writeByte(','); err != nil {
				return "", err
			}
			if err := c.writeString(record.value); err != nil {
				return "", err
			}
			continue
		}

		if i > 0 {
			if err := c.writeByte('\n'); err != nil {
				return "", err
			}
			signed.WriteByte(';')
		}
		if err := c.writeString(record.key); err != nil {
			return "", err
		}
		if err := c.writeByte(':'); err != nil {
			return "", err
		}
		if err := c.writeString(record.value); err != nil {
			return "", err
		}
		signed.WriteString(record.key)
	}
	if count > 0 {
		if err := c.writeByte('\n'); err != nil {
			return "", err
		}
	}

	// Blank line separating the block from the signed headers list.
	if err := c.writeByte('\n'); err != nil {
		return "", err
	}

	signedHeaders := signed.String()
	if err := c.writeLine(signedHeaders); err != nil {
		return "", err
	}

	return signedHeaders, nil
}
