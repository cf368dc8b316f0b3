package scrape

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/networkai/event-scout/internal/types"
)

// eventPrompt tells Firecrawl what to pull from an individual event page.
const eventPrompt = `Extract the event details from this page as JSON with these fields:
event_name, description, event_date, event_time, location, host_name,
and speakers (an array of objects with name, title, company, detail).
Use empty strings for fields that are not present.`

// ExtractEventLinks pulls lu.ma event URLs out of a listing page's HTML.
// Calendar and city index links are skipped; only individual event pages
// are returned, deduplicated in document order.
func ExtractEventLinks(html, base string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse listing page: %w", err)
	}

	baseURL, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}

		resolved, err := baseURL.Parse(href)
		if err != nil {
			return
		}
		resolved.RawQuery = ""
		resolved.Fragment = ""

		if !isEventURL(resolved) {
			return
		}

		link := resolved.String()
		if !seen[link] {
			seen[link] = true
			links = append(links, link)
		}
	})

	return links, nil
}

// isEventURL reports whether a URL points at an individual lu.ma event page.
func isEventURL(u *url.URL) bool {
	if !strings.HasSuffix(u.Hostname(), "lu.ma") {
		return false
	}

	path := strings.Trim(u.Path, "/")
	if path == "" || strings.Contains(path, "/") {
		return false
	}
	// City index pages like /sf and /nyc share the single-segment shape
	// with event pages but use short lowercase slugs.
	if len(path) <= 4 && path == strings.ToLower(path) {
		return false
	}
	return true
}

// ParseEvent decodes a Firecrawl structured extraction into an Event.
func ParseEvent(data []byte, pageURL string) (*types.Event, error) {
	var parsed struct {
		Name        string `json:"event_name"`
		Description string `json:"description"`
		Date        string `json:"event_date"`
		Time        string `json:"event_time"`
		Location    string `json:"location"`
		Host        string `json:"host_name"`
		Speakers    []struct {
			Name    string `json:"name"`
			Title   string `json:"title"`
			Company string `json:"company"`
			Detail  string `json:"detail"`
		} `json:"speakers"`
	}
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse event extraction: %w", err)
	}

	event := &types.Event{
		Title:       strings.TrimSpace(parsed.Name),
		Description: strings.TrimSpace(parsed.Description),
		RawDate:     strings.TrimSpace(parsed.Date),
		RawTime:     strings.TrimSpace(parsed.Time),
		Location:    strings.TrimSpace(parsed.Location),
		URL:         pageURL,
		Host:        strings.TrimSpace(parsed.Host),
	}
	for _, sp := range parsed.Speakers {
		event.AddSpeaker(types.Speaker{
			Name:    strings.TrimSpace(sp.Name),
			Title:   strings.TrimSpace(sp.Title),
			Company: strings.TrimSpace(sp.Company),
			Detail:  strings.TrimSpace(sp.Detail),
		})
	}
	return event, nil
}
