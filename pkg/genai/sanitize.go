package genai

import "strings"

// StripFences removes the markdown code fences some models wrap around JSON
// answers despite being told not to. It runs before any structural parsing.
func StripFences(s string) string {
	clean := strings.TrimSpace(s)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	return strings.TrimSpace(clean)
}
