package comment

import "strings"

// blockedWords is the moderation blocklist. Matching is case-insensitive
// substring containment, so embedded obscenities are caught too.
var blockedWords = []string{"fuck", "shit", "bitch", "asshole", "cunt"}

// containsBlockedWord reports whether the content trips the word filter.
func containsBlockedWord(content string) bool {
	normalized := strings.ToLower(content)
	for _, word := range blockedWords {
		if strings.Contains(normalized, word) {
			return true
		}
	}
	return false
}
