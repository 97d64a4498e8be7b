package catalog

import "strings"

// Tokenize splits a comma-separated categories field into distinct tags.
// Each piece is trimmed, empty pieces are dropped, and duplicates are
// collapsed case-insensitively while keeping the first-seen casing for
// display. Malformed input just yields fewer tokens.
func Tokenize(categories string) []string {
	if strings.TrimSpace(categories) == "" {
		return nil
	}

	seen := make(map[string]struct{})
	var tags []string
	for _, piece := range strings.Split(categories, ",") {
		tag := strings.TrimSpace(piece)
		if tag == "" {
			continue
		}
		key := strings.ToLower(tag)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, tag)
	}
	return tags
}
