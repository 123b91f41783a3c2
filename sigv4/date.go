package sigv4

import "fmt"

// dateTime is the calendar decomposition of a parsed date string.
type dateTime struct {
	year   int
	month  int
	day    int
	hour   int
	minute int
	second int
}

// Parsing formats. Specifiers take the form %NC where N is a decimal
// width and C identifies the field: Y(ear), M(onth), D(ay), h(our),
// m(inute), s(econd), or * to skip. Any other format character must match
// the input byte exactly.
const (
	formatRFC3339 = "%4Y-%2M-%2DT%2h:%2m:%2sZ"
	formatRFC5322 = "%3*, %2D %3M %4Y %2h:%2m:%2s GMT"
)

var monthNames = [12]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

var daysPerMonth = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DateToISO8601 converts a date in RFC 3339 form (YYYY-MM-DDTHH:MM:SSZ)
// or RFC 5322 form (Day, DD Mon YYYY HH:MM:SS GMT) to the compact
// ISO 8601 form YYYYMMDDTHHMMSSZ required by SigV4. The input shape is
// selected by length. Parse and calendar failures return
// ErrISOFormatting; any other input length returns ErrInvalidParameter.
func DateToISO8601(date string) (string, error) {
	var format string

	switch len(date) {
	case expectedLenRFC3339:
		format = formatRFC3339
	case expectedLenRFC5322:
		format = formatRFC5322
	default:
		return "", fmt.Errorf("date length must be %d (RFC 3339) or %d (RFC 5322), got %d: %w",
			expectedLenRFC3339, expectedLenRFC5322, len(date), ErrInvalidParameter)
	}

	var dt dateTime
	if err := parseDate(date, format, &dt); err != nil {
		return "", err
	}
	if err := validateDateTime(&dt); err != nil {
		return "", err
	}

	var out [ISODateLength]byte
	intToASCII(dt.year, out[0:4])
	intToASCII(dt.month, out[4:6])
	intToASCII(dt.day, out[6:8])
	out[8] = 'T'
	intToASCII(dt.hour, out[9:11])
	intToASCII(dt.minute, out[11:13])
	intToASCII(dt.second, out[13:15])
	out[15] = 'Z'

	return string(out[:]), nil
}

// parseDate walks format against date, scanning %NC specifiers and
// matching every other format byte literally.
func parseDate(date, format string, dt *dateTime) error {
	readLoc := 0

	for i := 0; i < len(format); i++ {
		if format[i] == '%' {
			// A specifier is always '%', one width digit, one field
			// character.
			width := int(format[i+1] - '0')
			if err := scanValue(date, format[i+2], readLoc, width, dt); err != nil {
				return err
			}
			readLoc += width
			i += 2
			continue
		}

		if date[readLoc] != format[i] {
			return fmt.Errorf("expected %q at offset %d, got %q: %w",
				format[i], readLoc, date[readLoc], ErrISOFormatting)
		}
		readLoc++
	}

	return nil
}

// scanValue interprets width bytes of date at readLoc according to the
// field character and records the result in dt. '*' skips the bytes
// unexamined; a three-wide 'M' matches a month name instead of digits.
func scanValue(date string, field byte, readLoc, width int, dt *dateTime) error {
	if field == '*' {
		return nil
	}

	if field == 'M' && width == len(monthNames[0]) {
		name := date[readLoc : readLoc+width]
		for i, month := range monthNames {
			if name == month {
				dt.month = i + 1
				return nil
			}
		}
		return fmt.Errorf("unable to match %q to a month: %w", name, ErrISOFormatting)
	}

	value := 0
	for i := readLoc; i < readLoc+width; i++ {
		if date[i] < '0' || date[i] > '9' {
			return fmt.Errorf("expected numeric field %%%d%c, got %q: %w",
				width, field, date[readLoc:readLoc+width], ErrISOFormatting)
		}
		value = value*10 + int(date[i]-'0')
	}

	switch field {
	case 'Y':
		dt.year = value
	case 'M':
		dt.month = value
	case 'D':
		dt.day = value
	case 'h':
		dt.hour = value
	case 'm':
		dt.minute = value
	case 's':
		dt.second = value
	}

	return nil
}

// validateDateTime verifies the parsed calendar date. The upper bound of
// 60 on seconds admits leap second adjustments.
func validateDateTime(dt *dateTime) error {
	if dt.year < 1900 {
		return fmt.Errorf("year %d precedes 1900: %w", dt.year, ErrISOFormatting)
	}
	if dt.month < 1 || dt.month > 12 {
		return fmt.Errorf("month %d out of range: %w", dt.month, ErrISOFormatting)
	}
	if dt.day < 1 || dt.day > daysPerMonth[dt.month-1] {
		if err := checkLeap(dt); err != nil {
			return fmt.Errorf("day %d out of range for month %d: %w",
				dt.day, dt.month, err)
		}
	}
	if dt.hour > 23 {
		return fmt.Errorf("hour %d out of range: %w", dt.hour, ErrISOFormatting)
	}
	if dt.minute > 59 {
		return fmt.Errorf("minute %d out of range: %w", dt.minute, ErrISOFormatting)
	}
	if dt.second > 60 {
		return fmt.Errorf("second %d out of range: %w", dt.second, ErrISOFormatting)
	}
	return nil
}

// checkLeap accepts February 29 only in a leap year.
func checkLeap(dt *dateTime) error {
	if dt.month != 2 || dt.day != 29 {
		return ErrISOFormatting
	}
	leap := dt.year%4 == 0 && (dt.year%100 != 0 || dt.year%400 == 0)
	if !leap {
		return fmt.Errorf("%d is not a leap year: %w", dt.year, ErrISOFormatting)
	}
	return nil
}
