package article

import "strings"

// NormalizeTags cleans an ordered tag sequence: entries are trimmed,
// empty/whitespace-only entries dropped, and duplicates removed keeping the
// first occurrence. The result is never nil.
//
// An empty result means "no tags". During an update that is an instruction
// to clear the article's tag set, never "leave tags unchanged"; the
// provided/absent distinction is carried separately by the caller.
func NormalizeTags(raw []string) []string {
	tags := make([]string, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		tags = append(tags, t)
	}
	return tags
}

// SplitTags parses a comma-separated tag string and normalizes the result.
func SplitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return NormalizeTags(strings.Split(s, ","))
}
