// Package types defines the structured records shared across the event
// discovery pipeline.
package types

import "time"

// NotSpecified is the rendering for optional fields that have no value.
// It is applied only at presentation boundaries (API responses, CSV rows);
// internally an absent value is the empty string.
const NotSpecified = "Not specified"

// Render returns s, or the NotSpecified sentinel when s is empty.
func Render(s string) string {
	if s == "" {
		return NotSpecified
	}
	return s
}

// Speaker is one person presenting at an event. Name is required for a
// speaker to be recorded; the remaining fields are optional.
type Speaker struct {
	Name    string `json:"name"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Detail  string `json:"detail,omitempty"`
}

// Event is one advertised happening. Two events with the same URL are the
// same event; the corpus loader merges duplicate rows into a single Event
// with an accumulated speaker list.
type Event struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	RawDate     string    `json:"date,omitempty"`
	RawTime     string    `json:"time,omitempty"`
	Location    string    `json:"location,omitempty"`
	URL         string    `json:"url"`
	Host        string    `json:"host,omitempty"`
	Speakers    []Speaker `json:"speakers,omitempty"`
	Detail      string    `json:"detail,omitempty"`

	// Derived during a ranking pass; never persisted back to the corpus.
	ParsedDate         *time.Time `json:"-"`
	RelevanceScore     float64    `json:"relevance_score"`
	RelevanceHighlight string     `json:"relevance_highlight,omitempty"`
	RecencyScore       float64    `json:"recency_score"`
	CombinedScore      float64    `json:"combined_score"`
	FormattedDate      string     `json:"formatted_date,omitempty"`
}

// HasSpeaker reports whether a speaker with the given name is already
// recorded on the event.
func (e *Event) HasSpeaker(name string) bool {
	for _, s := range e.Speakers {
		if s.Name == name {
			return true
		}
	}
	return false
}

// AddSpeaker appends a speaker unless one with the same name is present.
// Speakers without a name are ignored.
func (e *Event) AddSpeaker(s Speaker) {
	if s.Name == "" || s.Name == NotSpecified {
		return
	}
	if e.HasSpeaker(s.Name) {
		return
	}
	e.Speakers = append(e.Speakers, s)
}

// DateTime combines the raw date and time strings for display.
func (e *Event) DateTime() string {
	switch {
	case e.RawDate != "" && e.RawTime != "":
		return e.RawDate + " " + e.RawTime
	case e.RawDate != "":
		return e.RawDate
	default:
		return e.RawTime
	}
}
