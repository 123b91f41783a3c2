package sigv4

import (
	"errors"
	"strings"
	"testing"
)

func TestTrimAndCollapseWS(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "trims and collapses",
			input:    "  a   b\t \tc  ",
			expected: "a b c",
		},
		{
			name:     "quoted runs preserved",
			input:    `prefix  "a   b"  suffix`,
			expected: `prefix "a   b" suffix`,
		},
		{
			name:     "plain value untouched",
			input:    "text/plain",
			expected: "text/plain",
		},
		{
			name:     "tabs become single spaces",
			input:    "a\t\tb",
			expected: "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := trimAndCollapseWS(tt.input); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestSplitHeaders(t *testing.T) {
	var records [MaxHeaderPairCount]keyValuePair

	count, err := splitHeaders("Host: example.com\r\nX-Amz-Date:20150830T123600Z\r\n", records[:])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 records, got %d", count)
	}
	if records[0].key != "host" || records[0].value != "example.com" {
		t.Errorf("unexpected first record %s=%s", records[0].key, records[0].value)
	}
	if records[1].key != "x-amz-date" || records[1].value != "20150830T123600Z" {
		t.Errorf("unexpected second record %s=%s", records[1].key, records[1].value)
	}
}

func TestSplitHeadersStopsAtBlankLine(t *testing.T) {
	var records [MaxHeaderPairCount]keyValuePair

	count, err := splitHeaders("a:1\r\n\r\nb:2\r\n", records[:])
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if count != 1 {
		t.Errorf("expected parsing to stop at the blank line, got %d records", count)
	}
}

func TestSplitHeadersInvalid(t *testing.T) {
	var records [MaxHeaderPairCount]keyValuePair

	_, err := splitHeaders("no colon here\r\n", records[:])
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}

	_, err = splitHeaders(":value\r\n", records[:])
	if !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter for empty name, got %v", err)
	}
}

func TestSplitHeadersTooManyPairs(t *testing.T) {
	var b strings.Builder
	for i := 0; i <= MaxHeaderPairCount; i++ {
		b.WriteString("x-h:v\r\n")
	}

	var records [MaxHeaderPairCount]keyValuePair
	_, err := splitHeaders(b.String(), records[:])
	if !errors.Is(err, ErrMaxHeaderPairCountExceeded) {
		t.Errorf("expected ErrMaxHeaderPairCountExceeded, got %v", err)
	}
}

func TestGenerateCanonicalHeaders(t *testing.T) {
	tests := []struct {
		name           string
		headers        string
		expected       string
		expectedSigned string
	}{
		{
			name:           "sorted and lowercased",
			headers:        "X-Amz-Date:20150830T123600Z\r\nHost:example.com\r\n",
			expected:       "host:example.com\nx-amz-date:20150830T123600Z\n\nhost;x-amz-date\n",
			expectedSigned: "host;x-amz-date",
		},
		{
			name:           "duplicate names merged in input order",
			headers:        "h:second\r\na:x\r\nh:first\r\n",
			expected:       "a:x\nh:second,first\n\na;h\n",
			expectedSigned: "a;h",
		},
		{
			name:           "values trimmed and collapsed",
			headers:        "Content-Type:  application/x-www-form-urlencoded;   charset=utf-8  \r\n",
			expected:       "content-type:application/x-www-form-urlencoded; charset=utf-8\n\ncontent-type\n",
			expectedSigned: "content-type",
		},
		{
			name:           "empty block",
			headers:        "",
			expected:       "\n\n",
			expectedSigned: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := &canonicalContext{}
			signed, err := ctx.generateCanonicalHeaders(tt.headers)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if signed != tt.expectedSigned {
				t.Errorf("expected signed headers %q, got %q", tt.expectedSigned, signed)
			}
			if got := string(ctx.bytes()); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
