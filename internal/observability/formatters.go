// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/networkai/event-scout/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSpeakersToShow is the default number of speakers to display
	maxSpeakersToShow = 3
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintKeywords outputs the keyword set driving a search.
func (p *Printer) PrintKeywords(kws []string) {
	p.printBox("Search Keywords", strings.Join(kws, ", "))
}

// PrintEvent outputs a human-readable summary of one ranked event.
func (p *Printer) PrintEvent(rank int, event *types.Event) {
	if event == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("When:     %s\n", event.FormattedDate))
	sb.WriteString(fmt.Sprintf("Where:    %s\n", types.Render(event.Location)))
	sb.WriteString(fmt.Sprintf("Host:     %s\n", types.Render(event.Host)))
	sb.WriteString(fmt.Sprintf("Score:    %.2f (relevance %.2f, recency %.2f)\n",
		event.CombinedScore, event.RelevanceScore, event.RecencyScore))

	if event.RelevanceHighlight != "" {
		sb.WriteString(fmt.Sprintf("Why:      %s\n", event.RelevanceHighlight))
	}

	if len(event.Speakers) > 0 {
		sb.WriteString("Speakers:\n")
		count := min(len(event.Speakers), maxSpeakersToShow)
		for i := 0; i < count; i++ {
			sp := event.Speakers[i]
			sb.WriteString(fmt.Sprintf("  • %s", sp.Name))
			if sp.Title != "" {
				sb.WriteString(fmt.Sprintf(" (%s)", sp.Title))
			}
			sb.WriteString("\n")
		}
		if len(event.Speakers) > maxSpeakersToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(event.Speakers)-maxSpeakersToShow))
		}
	}

	if event.URL != "" {
		sb.WriteString(fmt.Sprintf("Link:     %s\n", event.URL))
	}

	p.printBox(fmt.Sprintf("#%d  %s", rank, types.Render(event.Title)), strings.TrimRight(sb.String(), "\n"))
}
