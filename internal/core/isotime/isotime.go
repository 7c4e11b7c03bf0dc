// Package isotime carries timestamps across the JSON boundary in the
// millisecond-precision ISO-8601 form used by the persisted snapshots
// ("2024-07-20T10:00:00.000Z").
package isotime

import (
	"regexp"
	"time"
)

// Layout is the wire format for every persisted "date" field.
const Layout = "2006-01-02T15:04:05.000Z07:00"

// pattern mirrors the decode check applied when rehydrating stored data:
// only strings of exactly this shape are revived into timestamps.
var pattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// Time is a time.Time that marshals to the millisecond ISO-8601 wire form.
// Unmarshaling tolerates malformed input: a value that is not a matching
// string decodes to the zero time instead of failing, so one bad record
// cannot poison a whole collection.
type Time struct {
	time.Time
}

func Now() Time {
	return Time{time.Now().UTC()}
}

func FromTime(t time.Time) Time {
	return Time{t.UTC()}
}

func (t Time) MarshalJSON() ([]byte, error) {
	return []byte(`"` + t.UTC().Format(Layout) + `"`), nil
}

func (t *Time) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		t.Time = time.Time{}
		return nil
	}
	s = s[1 : len(s)-1]
	if !pattern.MatchString(s) {
		t.Time = time.Time{}
		return nil
	}
	parsed, err := time.Parse(Layout, s)
	if err != nil {
		t.Time = time.Time{}
		return nil
	}
	t.Time = parsed.UTC()
	return nil
}

// Matches reports whether s is a revivable date string.
func Matches(s string) bool {
	return pattern.MatchString(s)
}
