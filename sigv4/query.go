package sigv4

import (
	"fmt"
	"strings"
)

// splitQueryString slices query into key/value records. The first '=' in
// a parameter closes its key; '&' or end of input closes its value.
// Parameters with empty keys are dropped silently; empty values are kept.
func splitQueryString(query string, records []keyValuePair) (int, error) {
	count := 0

	for i := 0; i < len(query); {
		var param string
		if j := strings.IndexByte(query[i:], '&'); j >= 0 {
			param = query[i : i+j]
			i += j + 1
		} else {
			param = query[i:]
			i = len(query)
		}

		key, value := param, ""
		if eq := strings.IndexByte(param, '='); eq >= 0 {
			key, value = param[:eq], param[eq+1:]
		}
		if key == "" {
			continue
		}

		if count == len(records) {
			return 0, fmt.Errorf("query holds more than %d parameters: %w",
				len(records), ErrMaxQueryPairCountExceeded)
		}
		records[count] = keyValuePair{key: key, value: value, index: count}
		count++
	}

	return count, nil
}

// compareQueryFieldValue is the total order on query records: unsigned
// byte order on keys with the shorter key first on a shared prefix, then
// the same ordering on values. Distinct records never compare equal, so
// the sort result is unique.
func compareQueryFieldValue(a, b keyValuePair) int {
	if c := strings.Compare(a.key, b.key); c != 0 {
		return c
	}
	return strings.Compare(a.value, b.value)
}

// generateCanonicalQuery writes the canonical query line: each parameter
// URI-encoded, '=' double-encoded inside values, parameters joined by '&'
// in sorted order, terminated by a linefeed.
func (c *canonicalContext) generateCanonicalQuery(query string) error {
	count, err := splitQueryString(query, c.queryLocs[:])
	if err != nil {
		return err
	}

	sortKeyValuePairs(c.queryLocs[:count], compareQueryFieldValue)

	for i := 0; i < count; i++ {
		record := &c.queryLocs[i]

		n, err := encodeURI([]byte(record.key), c.buf[c.cursor:], true, false)
		if err != nil {
			return err
		}
		c.cursor += n

		if record.value != "" {
			if err := c.writeByte('='); err != nil {
				return err
			}
			n, err = encodeURI([]byte(record.value), c.buf[c.cursor:], true, true)
			if err != nil {
				return err
			}
			c.cursor += n
		}

		if i+1 < count {
			if err := c.writeByte('&'); err != nil {
				return err
			}
		}
	}

	return c.writeByte('\n')
}
