package ai

import (
	"strings"

	"github.com/tidwall/gjson"
)

// ExtractJSON pulls the first JSON object out of a model reply. Models
// wrap structured output in markdown fences or prose often enough that
// strict unmarshaling of the raw reply is a reliability bug.
func ExtractJSON(raw string) (string, bool) {
	s := strings.TrimSpace(raw)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.Index(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", false
	}

	candidate := s[start : end+1]
	if !gjson.Valid(candidate) {
		return "", false
	}
	return candidate, true
}

// Field reads a path from a JSON document
func Field(doc, path string) gjson.Result {
	return gjson.Get(doc, path)
}

// StringSlice reads an array of strings from a path, skipping non-strings
func StringSlice(doc, path string) []string {
	var out []string
	for _, r := range gjson.Get(doc, path).Array() {
		if r.Type == gjson.String {
			out = append(out, r.String())
		}
	}
	return out
}
