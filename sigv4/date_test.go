package sigv4

import (
	"errors"
	"testing"
)

func TestDateToISO8601(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "RFC 3339",
			input:    "2018-01-18T09:18:06Z",
			expected: "20180118T091806Z",
		},
		{
			name:     "RFC 5322",
			input:    "Wed, 18 Jan 2018 09:18:06 GMT",
			expected: "20180118T091806Z",
		},
		{
			name:     "leap day in leap year",
			input:    "2020-02-29T00:00:00Z",
			expected: "20200229T000000Z",
		},
		{
			name:     "leap day in 400 year",
			input:    "2000-02-29T12:00:00Z",
			expected: "20000229T120000Z",
		},
		{
			name:     "leap second",
			input:    "2016-12-31T23:59:60Z",
			expected: "20161231T235960Z",
		},
		{
			name:     "RFC 5322 December",
			input:    "Mon, 25 Dec 2023 23:59:59 GMT",
			expected: "20231225T235959Z",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DateToISO8601(tt.input)
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestDateToISO8601Invalid(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "wrong length",
			input:   "2018-01-18",
			wantErr: ErrInvalidParameter,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: ErrInvalidParameter,
		},
		{
			name:    "leap day outside leap year",
			input:   "2019-02-29T00:00:00Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "leap day in century year",
			input:   "1900-02-29T00:00:00Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "month out of range",
			input:   "2018-13-18T09:18:06Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "day out of range",
			input:   "2018-04-31T09:18:06Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "hour out of range",
			input:   "2018-01-18T24:18:06Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "second past leap bound",
			input:   "2018-01-18T09:18:61Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "year before 1900",
			input:   "1899-12-31T23:59:59Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "non-numeric field",
			input:   "2018-0a-18T09:18:06Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "separator mismatch",
			input:   "2018-01-18t09:18:06Z",
			wantErr: ErrISOFormatting,
		},
		{
			name:    "unknown month name",
			input:   "Wed, 18 Jqn 2018 09:18:06 GMT",
			wantErr: ErrISOFormatting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DateToISO8601(tt.input)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
