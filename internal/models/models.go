package models

import (
	"bytes"
	"fmt"
	"strings"
	"time"
)

// LocalTimeLayout is the wire format for timestamps: a local date-time
// without zone offset.
const LocalTimeLayout = "2006-01-02T15:04:05"

// LocalTime carries timestamps over JSON in LocalTimeLayout. RFC3339 input is
// accepted as well.
type LocalTime struct {
	time.Time
}

func NewLocalTime(t time.Time) LocalTime {
	return LocalTime{Time: t}
}

// ParseLocalTime parses a wire timestamp, trying the local layout first.
func ParseLocalTime(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(LocalTimeLayout, raw, time.Local); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: expected %s", raw, LocalTimeLayout)
	}
	return t, nil
}

func (t LocalTime) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.In(time.Local).Format(LocalTimeLayout) + `"`), nil
}

func (t *LocalTime) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = LocalTime{}
		return nil
	}
	if data[0] != '"' || data[len(data)-1] != '"' || len(data) < 2 {
		return fmt.Errorf("timestamp must be a string, got %s", data)
	}
	raw := string(data[1 : len(data)-1])
	if raw == "" {
		*t = LocalTime{}
		return nil
	}
	parsed, err := ParseLocalTime(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}
