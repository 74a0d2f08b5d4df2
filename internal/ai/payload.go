package ai

import "strings"

// ExtractPayload strips the markdown code fences that chat models like to wrap around
// structured output, e.g. ```json ... ``` or ``` ... ```, and trims surrounding
// whitespace. Every call site that parses model output as JSON must go through this
// rather than rolling its own unwrapping.
func ExtractPayload(text string) string {
	s := strings.TrimSpace(text)
	if s == "" {
		return ""
	}
	if strings.HasPrefix(s, "```") {
		// Drop the opening fence line, which may carry a language tag.
		if idx := strings.Index(s, "\n"); idx >= 0 {
			s = strings.TrimSpace(s[idx+1:])
		} else {
			// A single-line fence keeps its language tag on the same line.
			s = strings.TrimPrefix(s, "```")
			s = strings.TrimPrefix(s, "json")
			s = strings.TrimSpace(s)
		}
		if end := strings.LastIndex(s, "```"); end >= 0 {
			s = strings.TrimSpace(s[:end])
		}
	}
	return strings.TrimSpace(s)
}
