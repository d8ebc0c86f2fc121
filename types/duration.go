package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Duration is an episode length in seconds. Older backend rows stored the
// value as a preformatted string ("43:10"); newer ones as a number. Decoding
// accepts both and keeps string values verbatim for display.
type Duration struct {
	Seconds float64
	Text    string
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Duration) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*d = Duration{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var text string
		if err := json.Unmarshal(data, &text); err != nil {
			return fmt.Errorf("decode duration: %w", err)
		}
		*d = Duration{Text: text}
		return nil
	}

	var seconds float64
	if err := json.Unmarshal(data, &seconds); err != nil {
		return fmt.Errorf("decode duration: %w", err)
	}
	*d = Duration{Seconds: seconds}
	return nil
}

// MarshalJSON implements json.Marshaler.
func (d Duration) MarshalJSON() ([]byte, error) {
	if d.Text != "" {
		return json.Marshal(d.Text)
	}
	return json.Marshal(d.Seconds)
}

// IsZero reports whether no duration was provided.
func (d Duration) IsZero() bool {
	return d.Seconds == 0 && d.Text == ""
}
