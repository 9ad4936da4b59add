package llm

import (
	"strings"

	"github.com/tidwall/gjson"
)

// Model output format is not contractually guaranteed. Every extraction here
// is fallible and callers must supply a safe default on failure.

// ExtractBetweenMarkers returns the text between the first occurrence of
// start and the last occurrence of end, trimmed. The boolean is false when
// either marker is missing or they are out of order.
func ExtractBetweenMarkers(text, start, end string) (string, bool) {
	si := strings.Index(text, start)
	ei := strings.LastIndex(text, end)
	if si == -1 || ei == -1 || si+len(start) > ei {
		return "", false
	}
	return strings.TrimSpace(text[si+len(start) : ei]), true
}

// ExtractJSONObject scans text for the first balanced top-level JSON object
// and returns it when it parses as valid JSON. Used as the fallback when the
// model ignored the delimiter markers it was asked for.
func ExtractJSONObject(text string) (string, bool) {
	depth := 0
	start := -1
	inString := false
	escaped := false
	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if depth > 0 {
				inString = true
			}
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth > 0 {
				depth--
				if depth == 0 && start >= 0 {
					candidate := text[start : i+1]
					if gjson.Valid(candidate) {
						return candidate, true
					}
					start = -1
				}
			}
		}
	}
	return "", false
}

// CleanPayload trims a generated query payload for literal execution and
// display: surrounding whitespace, markdown code fences, and a leading
// language tag on the fence line.
func CleanPayload(payload string) string {
	s := strings.TrimSpace(payload)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```")
		if nl := strings.IndexByte(s, '\n'); nl >= 0 {
			firstLine := strings.TrimSpace(s[:nl])
			if len(firstLine) <= 12 && !strings.ContainsAny(firstLine, " \t{}();") {
				s = s[nl+1:]
			}
		}
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
