package scrape

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/networkai/event-scout/internal/types"
)

// corpusHeader is the column layout written to the event corpus CSV. Each
// speaker gets its own row; speakerless events get a single row of
// placeholders.
var corpusHeader = []string{
	"event_name", "description", "event_date", "event_time", "location",
	"url", "host_name", "event_detail", "speaker_name", "speaker_title",
	"speaker_company", "speaker_detail",
}

// AppendEvents writes events to the corpus CSV at path, creating the file
// with a header row when it does not exist yet.
func AppendEvents(path string, events []*types.Event) error {
	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer f.Close()

	writer := csv.NewWriter(f)
	if writeHeader {
		if err := writer.Write(corpusHeader); err != nil {
			return fmt.Errorf("failed to write corpus header: %w", err)
		}
	}

	for _, event := range events {
		for _, row := range eventRows(event) {
			if err := writer.Write(row); err != nil {
				return fmt.Errorf("failed to write corpus row: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush corpus rows: %w", err)
	}
	return nil
}

func eventRows(event *types.Event) [][]string {
	base := []string{
		types.Render(event.Title),
		types.Render(event.Description),
		types.Render(event.RawDate),
		types.Render(event.RawTime),
		types.Render(event.Location),
		types.Render(event.URL),
		types.Render(event.Host),
		types.Render(event.Detail),
	}

	if len(event.Speakers) == 0 {
		row := append(append([]string{}, base...),
			types.NotSpecified, types.NotSpecified, types.NotSpecified, types.NotSpecified)
		return [][]string{row}
	}

	rows := make([][]string, 0, len(event.Speakers))
	for _, sp := range event.Speakers {
		row := append(append([]string{}, base...),
			types.Render(sp.Name),
			types.Render(sp.Title),
			types.Render(sp.Company),
			types.Render(sp.Detail))
		rows = append(rows, row)
	}
	return rows
}
