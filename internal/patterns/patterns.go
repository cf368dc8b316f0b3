// Package patterns matches a user's product description against known B2B
// workflow patterns to seed the conversation with better follow-ups.
package patterns

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed patterns.json
var patternData []byte

//go:embed patterns_schema.json
var patternSchema []byte

// Pattern describes one recognized business workflow. Keywords is a
// pipe-separated list of trigger terms.
type Pattern struct {
	Name        string   `json:"name"`
	Keywords    string   `json:"keywords"`
	Description string   `json:"description"`
	EventTypes  []string `json:"event_types"`
}

// Library holds the validated pattern set.
type Library struct {
	patterns []Pattern
}

// Load parses and validates the embedded pattern library.
func Load() (*Library, error) {
	return parse(patternData)
}

// parse validates raw pattern JSON against the schema and decodes it.
func parse(data []byte) (*Library, error) {
	schemaLoader := gojsonschema.NewBytesLoader(patternSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("failed to validate pattern library: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, desc := range result.Errors() {
			problems = append(problems, desc.String())
		}
		return nil, fmt.Errorf("invalid pattern library: %s", strings.Join(problems, "; "))
	}

	var patterns []Pattern
	if err := json.Unmarshal(data, &patterns); err != nil {
		return nil, fmt.Errorf("failed to parse pattern library: %w", err)
	}

	return &Library{patterns: patterns}, nil
}

// All returns every pattern in the library.
func (l *Library) All() []Pattern {
	return l.patterns
}

// FindMatching returns the patterns whose trigger keywords appear in the
// product description, in library order.
func (l *Library) FindMatching(product string) []Pattern {
	text := strings.ToLower(product)

	var matched []Pattern
	for _, pattern := range l.patterns {
		for _, keyword := range strings.Split(pattern.Keywords, "|") {
			kw := strings.ToLower(strings.TrimSpace(keyword))
			if kw != "" && strings.Contains(text, kw) {
				matched = append(matched, pattern)
				break
			}
		}
	}
	return matched
}
