package voice

import (
	"regexp"
	"strings"
)

// spokenForms rewrites terms that TTS engines mispronounce when read
// literally.
var spokenForms = []struct {
	pattern *regexp.Regexp
	spoken  string
}{
	{regexp.MustCompile(`\bB2B\b`), "B to B"},
	{regexp.MustCompile(`\bB2C\b`), "B to C"},
	{regexp.MustCompile(`\bSaaS\b`), "sass"},
	{regexp.MustCompile(`\bAPI\b`), "A P I"},
	{regexp.MustCompile(`\bCRM\b`), "C R M"},
	{regexp.MustCompile(`\bAI\b`), "A I"},
	{regexp.MustCompile(`\bML\b`), "M L"},
	{regexp.MustCompile(`\be\.g\.`), "for example"},
	{regexp.MustCompile(`\bi\.e\.`), "that is"},
}

var urlPattern = regexp.MustCompile(`https?://\S+`)

// EnhanceForSpeech rewrites text so it reads naturally when spoken: URLs are
// dropped, awkward abbreviations get spoken forms, and the result always ends
// with terminal punctuation so the voice does not trail off.
func EnhanceForSpeech(text string) string {
	result := urlPattern.ReplaceAllString(text, "")
	for _, form := range spokenForms {
		result = form.pattern.ReplaceAllString(result, form.spoken)
	}

	result = strings.Join(strings.Fields(result), " ")
	if result == "" {
		return result
	}
	if !strings.ContainsAny(result[len(result)-1:], ".!?") {
		result += "."
	}
	return result
}
