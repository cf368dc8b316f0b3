// Package corpus loads the event corpus from CSV files. The corpus format
// stores one row per speaker, so rows sharing an event URL are merged back
// into a single event with a speaker list.
package corpus

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/networkai/event-scout/internal/types"
)

// columnAliases maps the header names that have appeared across corpus
// revisions onto canonical field names.
var columnAliases = map[string]string{
	"event_name":      "title",
	"event_title":     "title",
	"title":           "title",
	"description":     "description",
	"event_summary":   "description",
	"event_date":      "date",
	"date":            "date",
	"event_time":      "time",
	"time":            "time",
	"location":        "location",
	"event_location":  "location",
	"url":             "url",
	"event_url":       "url",
	"host":            "host",
	"host_name":       "host",
	"host_company":    "host",
	"event_detail":    "detail",
	"speaker_name":    "speaker_name",
	"speaker_title":   "speaker_title",
	"speaker_company": "speaker_company",
	"speaker_detail":  "speaker_detail",
	"speaker_details": "speaker_detail",
}

// Load reads events from the CSV file at path, merging rows that share an
// event URL. Events missing both a URL and a title are skipped. The returned
// slice preserves the order in which events first appear in the file.
func Load(path string) ([]*types.Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	return Read(f)
}

// Read parses CSV event data from r. See Load for merge semantics.
func Read(r io.Reader) ([]*types.Event, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read corpus header: %w", err)
	}

	columns := make([]string, len(header))
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		columns[i] = columnAliases[key]
	}

	var (
		events []*types.Event
		byURL  = make(map[string]*types.Event)
	)

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read corpus row: %w", err)
		}

		fields := make(map[string]string)
		for i, value := range record {
			if i >= len(columns) || columns[i] == "" {
				continue
			}
			fields[columns[i]] = clean(value)
		}

		url := fields["url"]
		title := fields["title"]
		if url == "" && title == "" {
			continue
		}

		key := url
		if key == "" {
			key = title
		}

		event, exists := byURL[key]
		if !exists {
			event = &types.Event{
				Title:       title,
				Description: fields["description"],
				RawDate:     fields["date"],
				RawTime:     fields["time"],
				Location:    fields["location"],
				URL:         url,
				Host:        fields["host"],
				Detail:      fields["detail"],
			}
			byURL[key] = event
			events = append(events, event)
		}

		event.AddSpeaker(types.Speaker{
			Name:    fields["speaker_name"],
			Title:   fields["speaker_title"],
			Company: fields["speaker_company"],
			Detail:  fields["speaker_detail"],
		})
	}

	return events, nil
}

// clean trims whitespace and collapses placeholder values to empty strings.
func clean(value string) string {
	v := strings.TrimSpace(value)
	if strings.EqualFold(v, types.NotSpecified) || strings.EqualFold(v, "N/A") {
		return ""
	}
	return v
}
