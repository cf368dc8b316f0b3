// Package dates normalizes the heterogeneous human-written date strings found
// in scraped event listings into canonical calendar dates.
package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// UnparseablePolicy names the behavior applied when a date string cannot be
// normalized. Keeping the policy explicit lets callers (and tests) target it
// directly instead of inferring it from control flow.
type UnparseablePolicy string

const (
	// AssumeFuture keeps records whose dates cannot be parsed. Scraped date
	// strings are messy; dropping an event over a parse failure loses more
	// value than occasionally showing a past one.
	AssumeFuture UnparseablePolicy = "assume-future"
	// Reject drops records whose dates cannot be parsed.
	Reject UnparseablePolicy = "reject"
)

// DefaultUnparseablePolicy is the policy the event filter applies.
const DefaultUnparseablePolicy = AssumeFuture

// knownFormats are tried in order before any token extraction.
var knownFormats = []string{
	"2006-01-02",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
	"1/2/2006",
	"2006/1/2",
}

// monthNumbers maps lowercase month names and abbreviations to month numbers.
var monthNumbers = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "june": time.June, "july": time.July,
	"august": time.August, "september": time.September, "october": time.October,
	"november": time.November, "december": time.December,
}

// monthNamesOrdered lists month tokens in a fixed lookup order, full names
// before abbreviations, so year-token construction is deterministic.
var monthNamesOrdered = []string{
	"january", "february", "march", "april", "may", "june",
	"july", "august", "september", "october", "november", "december",
	"jan", "feb", "mar", "apr", "jun", "jul", "aug", "sep", "oct", "nov", "dec",
}

var (
	monthDayPattern = regexp.MustCompile(`([A-Za-z]+)\s+(\d{1,2})`)
	dayMonthPattern = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)`)
	yearPattern     = regexp.MustCompile(`\b(20\d\d)\b`)
	dayTokenPattern = regexp.MustCompile(`\b(\d{1,2})\b`)
)

// Normalize parses a raw date string into a calendar date, resolving missing
// years against the reference date. The attempt order is fixed: known
// formats, month/day token extraction with next-year rollover, then
// year-token construction. Returns false when no attempt succeeds; callers
// decide what an unparseable date means (see UnparseablePolicy).
func Normalize(raw string, reference time.Time) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "Not specified" {
		return time.Time{}, false
	}

	for _, layout := range knownFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return midnight(t), true
		}
	}

	if t, ok := extractMonthDay(raw, reference); ok {
		return t, true
	}

	if t, ok := constructFromYearToken(raw); ok {
		return t, true
	}

	return time.Time{}, false
}

// extractMonthDay finds a (month-name, day) or (day, month-name) pair and
// assumes the reference year, rolling forward one year when the resulting
// date has already passed. Impossible combinations (February 30) are treated
// as unparseable, not errors.
func extractMonthDay(raw string, reference time.Time) (time.Time, bool) {
	ref := midnight(reference)

	if m := monthDayPattern.FindStringSubmatch(raw); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[1])]; ok {
			day, _ := strconv.Atoi(m[2])
			if t, ok := buildDate(reference.Year(), month, day); ok {
				if t.Before(ref) {
					if rolled, ok := buildDate(reference.Year()+1, month, day); ok {
						return rolled, true
					}
					return time.Time{}, false
				}
				return t, true
			}
		}
	}

	if m := dayMonthPattern.FindStringSubmatch(raw); m != nil {
		if month, ok := monthNumbers[strings.ToLower(m[2])]; ok {
			day, _ := strconv.Atoi(m[1])
			if t, ok := buildDate(reference.Year(), month, day); ok {
				if t.Before(ref) {
					if rolled, ok := buildDate(reference.Year()+1, month, day); ok {
						return rolled, true
					}
					return time.Time{}, false
				}
				return t, true
			}
		}
	}

	return time.Time{}, false
}

// constructFromYearToken builds a date directly from an explicit 4-digit year
// token plus a month name and a 1-2 digit day token, without rollover logic.
func constructFromYearToken(raw string) (time.Time, bool) {
	yearMatch := yearPattern.FindStringSubmatch(raw)
	if yearMatch == nil {
		return time.Time{}, false
	}
	year, _ := strconv.Atoi(yearMatch[1])

	lower := strings.ToLower(raw)
	for _, name := range monthNamesOrdered {
		if !strings.Contains(lower, name) {
			continue
		}
		month := monthNumbers[name]
		dayMatch := dayTokenPattern.FindStringSubmatch(raw)
		if dayMatch == nil {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(dayMatch[1])
		return buildDate(year, month, day)
	}

	return time.Time{}, false
}

// buildDate constructs a midnight UTC date, rejecting day/month combinations
// that do not exist on the calendar.
func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	if day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysUntil returns the whole days from the reference date to the given
// date, never negative.
func DaysUntil(date, reference time.Time) int {
	days := int(midnight(date).Sub(midnight(reference)).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}
