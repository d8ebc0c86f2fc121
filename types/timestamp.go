package types

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Timestamp is a normalized instant. The backend historically emitted two
// encodings for the same fields: a plain RFC 3339 string and a Mongo-style
// {"$date": "..."} object. Decoding accepts both; encoding always produces
// the string form.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" || trimmed == `""` {
		t.Time = time.Time{}
		return nil
	}

	if strings.HasPrefix(trimmed, "{") {
		var legacy struct {
			Date string `json:"$date"`
		}
		if err := json.Unmarshal(data, &legacy); err != nil {
			return fmt.Errorf("decode legacy timestamp: %w", err)
		}
		return t.parse(legacy.Date)
	}

	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("decode timestamp: %w", err)
	}
	return t.parse(value)
}

// MarshalJSON implements json.Marshaler.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

func (t *Timestamp) parse(value string) error {
	for _, layout := range timestampLayouts {
		parsed, err := time.Parse(layout, value)
		if err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognized timestamp %q", value)
}

// RelativeDate renders a timestamp as "Today", "Yesterday", or an absolute
// date, matching how the dashboard labels episode cards.
func (t Timestamp) RelativeDate(now time.Time) string {
	if t.IsZero() {
		return "Unknown"
	}
	local := t.In(now.Location())
	y1, m1, d1 := local.Date()
	y2, m2, d2 := now.Date()
	if y1 == y2 && m1 == m2 && d1 == d2 {
		return "Today"
	}
	y3, m3, d3 := now.AddDate(0, 0, -1).Date()
	if y1 == y3 && m1 == m3 && d1 == d3 {
		return "Yesterday"
	}
	return local.Format("Jan 2, 2006")
}
