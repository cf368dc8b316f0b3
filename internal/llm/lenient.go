// Package llm - lenient.go extracts structured JSON from free-form model
// output. Models wrap JSON in markdown fences, prepend prose, or append
// commentary even when told not to; every capability-calling component goes
// through the same fixed fallback chain: direct parse, fenced block,
// bracket matching, failure.
package llm

import (
	"encoding/json"
	"strings"
)

// CleanJSONBlock removes markdown code block wrappers from JSON responses.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	// Handle ```json ... ``` blocks
	if strings.HasPrefix(text, "```json") {
		text = strings.TrimPrefix(text, "```json")
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	// Handle generic ``` ... ``` blocks
	if strings.HasPrefix(text, "```") {
		text = strings.TrimPrefix(text, "```")
		// Skip potential language identifier on first line
		if idx := strings.Index(text, "\n"); idx >= 0 {
			firstLine := text[:idx]
			if len(firstLine) < 20 && !strings.Contains(firstLine, " ") && !strings.Contains(firstLine, "{") && !strings.Contains(firstLine, "[") {
				text = text[idx+1:]
			}
		}
		if idx := strings.LastIndex(text, "```"); idx >= 0 {
			text = text[:idx]
		}
		return strings.TrimSpace(text)
	}

	return text
}

// ExtractJSONObject recovers a JSON object from free-form model text.
// Attempts, in order: direct parse, fenced-block extraction, brace-matching
// extraction of the first top-level object. Returns false when no valid
// object is recoverable.
func ExtractJSONObject(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if isJSONObject(trimmed) {
		return trimmed, true
	}

	cleaned := CleanJSONBlock(trimmed)
	if isJSONObject(cleaned) {
		return cleaned, true
	}

	if candidate, ok := matchDelimited(trimmed, '{', '}'); ok && isJSONObject(candidate) {
		return candidate, true
	}

	return "", false
}

// ExtractJSONArray recovers a JSON array from free-form model text, using
// the same fallback chain as ExtractJSONObject.
func ExtractJSONArray(text string) (string, bool) {
	trimmed := strings.TrimSpace(text)
	if isJSONArray(trimmed) {
		return trimmed, true
	}

	cleaned := CleanJSONBlock(trimmed)
	if isJSONArray(cleaned) {
		return cleaned, true
	}

	if candidate, ok := matchDelimited(trimmed, '[', ']'); ok && isJSONArray(candidate) {
		return candidate, true
	}

	return "", false
}

func isJSONObject(s string) bool {
	return strings.HasPrefix(s, "{") && json.Valid([]byte(s))
}

func isJSONArray(s string) bool {
	return strings.HasPrefix(s, "[") && json.Valid([]byte(s))
}

// matchDelimited finds the first balanced open..close span, respecting JSON
// string literals and escapes.
func matchDelimited(text string, open, close byte) (string, bool) {
	start := strings.IndexByte(text, open)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch {
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case !inString && c == open:
			depth++
		case !inString && c == close:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
