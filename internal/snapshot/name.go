package snapshot

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// NameLayout is the time layout of a snapshot directory name,
// e.g. 2024-05-05_10.00.00.
const NameLayout = "2006-01-02_15.04.05"

var ErrMalformedName = errors.New("snapshot: malformed directory name")

// matches YYYY-MM-DD_HH.MM.SS and nothing else
var namePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}_\d{2}\.\d{2}\.\d{2}$`)

// FieldCount is the number of fields in a Timestamp.
const FieldCount = 6

// Timestamp is the second-resolution date/time encoded in a snapshot name.
type Timestamp struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
	Second int
}

// FormatName renders t in local time as a snapshot directory name.
func FormatName(t time.Time) string {
	return t.Local().Format(NameLayout)
}

// ParseName extracts the timestamp from a snapshot directory name.
// Names that do not match NameLayout exactly, or that carry an
// out-of-range field, return ErrMalformedName.
func ParseName(name string) (Timestamp, error) {
	if !namePattern.MatchString(name) {
		return Timestamp{}, fmt.Errorf("%w: %q", ErrMalformedName, name)
	}

	// parsed as UTC so no zone rule can shift the fields
	t, err := time.Parse(NameLayout, name)
	if err != nil {
		return Timestamp{}, fmt.Errorf("%w: %q: %v", ErrMalformedName, name, err)
	}

	return TimestampOf(t), nil
}

// TimestampOf truncates t to its wall-clock fields.
func TimestampOf(t time.Time) Timestamp {
	return Timestamp{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Fields returns the timestamp ordered from most to least significant.
func (ts Timestamp) Fields() [FieldCount]int {
	return [FieldCount]int{ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second}
}

// Before reports whether ts is chronologically earlier than other.
func (ts Timestamp) Before(other Timestamp) bool {
	a, b := ts.Fields(), other.Fields()
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (ts Timestamp) String() string {
	return fmt.Sprintf("%04d-%02d-%02d_%02d.%02d.%02d",
		ts.Year, ts.Month, ts.Day, ts.Hour, ts.Minute, ts.Second)
}
