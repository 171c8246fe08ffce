package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// naiveLayout matches zone-less ISO-8601 values such as
// "2025-01-02T03:04:05.123456". Fractional seconds are accepted when parsing.
const naiveLayout = "2006-01-02T15:04:05"

// Timestamp is a time.Time that encodes as RFC 3339 and also decodes
// zone-less ISO-8601 strings, reading them as UTC.
type Timestamp struct {
	time.Time
}

// At wraps t, dropping the monotonic clock reading.
func At(t time.Time) Timestamp {
	return Timestamp{Time: t.Round(0)}
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// ParseTimestamp accepts RFC 3339 or zone-less ISO-8601. An empty string is the zero value.
func ParseTimestamp(raw string) (Timestamp, error) {
	if raw == "" {
		return Timestamp{}, nil
	}
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return Timestamp{Time: parsed}, nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, raw, time.UTC)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp %q: %w", raw, err)
	}
	return Timestamp{Time: parsed}, nil
}
