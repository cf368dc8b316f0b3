package scrape

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Progress tracks which event URLs have already been scraped so interrupted
// runs can resume without re-fetching pages. State is persisted to a JSON
// file after every batch.
type Progress struct {
	path    string
	scraped map[string]bool
}

type progressFile struct {
	UpdatedAt   time.Time `json:"updated_at"`
	ScrapedURLs []string  `json:"scraped_urls"`
}

// LoadProgress reads prior scrape state from path. A missing file starts
// fresh.
func LoadProgress(path string) (*Progress, error) {
	p := &Progress{path: path, scraped: make(map[string]bool)}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return p, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read scrape progress: %w", err)
	}

	var state progressFile
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to parse scrape progress: %w", err)
	}
	for _, url := range state.ScrapedURLs {
		p.scraped[url] = true
	}
	return p, nil
}

// Seen reports whether a URL was already scraped.
func (p *Progress) Seen(url string) bool {
	return p.scraped[url]
}

// Mark records a URL as scraped. Call Save to persist.
func (p *Progress) Mark(url string) {
	p.scraped[url] = true
}

// Count returns how many URLs have been scraped.
func (p *Progress) Count() int {
	return len(p.scraped)
}

// Save writes the current state to disk.
func (p *Progress) Save() error {
	state := progressFile{UpdatedAt: time.Now().UTC()}
	for url := range p.scraped {
		state.ScrapedURLs = append(state.ScrapedURLs, url)
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode scrape progress: %w", err)
	}
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write scrape progress: %w", err)
	}
	return nil
}
