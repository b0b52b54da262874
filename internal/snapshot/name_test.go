package snapshot

import (
	"errors"
	"testing"
	"time"
)

func TestFormatName(t *testing.T) {
	ts := time.Date(2023, time.January, 2, 3, 4, 5, 999, time.Local)
	if got := FormatName(ts); got != "2023-01-02_03.04.05" {
		t.Fatalf("FormatName = %q", got)
	}
}

func TestParseName_RoundTrip(t *testing.T) {
	times := []time.Time{
		time.Date(2023, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(1999, time.December, 31, 23, 59, 59, 0, time.Local),
		time.Date(2024, time.February, 29, 12, 30, 1, 0, time.Local),
		time.Now(),
	}

	for _, tm := range times {
		name := FormatName(tm)
		got, err := ParseName(name)
		if err != nil {
			t.Fatalf("ParseName(%q): %v", name, err)
		}
		if want := TimestampOf(tm.Local()); got != want {
			t.Fatalf("round trip of %q: got %+v, want %+v", name, got, want)
		}
		if got.String() != name {
			t.Fatalf("String() = %q, want %q", got.String(), name)
		}
	}
}

func TestParseName_Malformed(t *testing.T) {
	cases := []string{
		"",
		"world",
		"2023-01-01",
		"2023-01-01_00.00",
		"2023-01-01_00.00.00.000",
		"2023-01-01 00.00.00",
		"2023/01/01_00.00.00",
		"2023-1-01_00.00.00",
		"2023-01-01_0.00.00",
		"2023-13-01_00.00.00",
		"2023-02-30_00.00.00",
		"2023-01-01_24.00.00",
		"2023-01-01_00.60.00",
		"x2023-01-01_00.00.00",
		"2023-01-01_00.00.00x",
		"abcd-ef-gh_ij.kl.mn",
	}

	for _, name := range cases {
		if _, err := ParseName(name); !errors.Is(err, ErrMalformedName) {
			t.Errorf("ParseName(%q) err = %v, want ErrMalformedName", name, err)
		}
	}
}

func TestTimestampBefore(t *testing.T) {
	a := Timestamp{2023, 1, 1, 0, 0, 0}
	b := Timestamp{2023, 1, 1, 0, 0, 1}
	c := Timestamp{2022, 12, 31, 23, 59, 59}

	if !a.Before(b) || b.Before(a) {
		t.Fatalf("expected %v before %v", a, b)
	}
	if !c.Before(a) {
		t.Fatalf("expected %v before %v", c, a)
	}
	if a.Before(a) {
		t.Fatalf("timestamp must not be before itself")
	}
}
