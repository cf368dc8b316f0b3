package dates

import (
	"strings"
	"time"
)

const displayLayout = "Monday, January 2, 2006"

// FormatDisplay renders a raw date string for presentation. Combined
// "date time" strings keep their time suffix. Strings that cannot be
// understood are returned unchanged rather than hidden.
func FormatDisplay(raw string, reference time.Time) string {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "Not specified" {
		return "Date not specified"
	}

	// A combined date and time string: format the date part, keep the rest.
	if parts := strings.Fields(raw); len(parts) >= 2 {
		for _, layout := range knownFormats {
			if t, err := time.Parse(layout, parts[0]); err == nil {
				return t.Format(displayLayout) + " at " + strings.Join(parts[1:], " ")
			}
		}
	}

	for _, layout := range knownFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format(displayLayout)
		}
	}

	if t, ok := Normalize(raw, reference); ok {
		return t.Format(displayLayout)
	}

	return raw
}
