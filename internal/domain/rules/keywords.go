package rules

// keywordVocabulary is the fixed set of ideal-partner trait words offered by
// the input form. Selection order is kept for display; matching ignores it.
var keywordVocabulary = []string{
	"阳光", "知性", "幽默", "高冷", "温柔", "活泼",
	"成熟", "可爱", "优雅", "率真", "神秘", "开朗",
}

// Keywords returns the fixed trait vocabulary in display order.
func Keywords() []string {
	out := make([]string, len(keywordVocabulary))
	copy(out, keywordVocabulary)
	return out
}

// IsKeyword reports whether the word belongs to the fixed vocabulary.
func IsKeyword(word string) bool {
	for _, k := range keywordVocabulary {
		if k == word {
			return true
		}
	}
	return false
}

// NormalizeKeywords drops words outside the vocabulary and duplicates while
// preserving the caller's selection order.
func NormalizeKeywords(words []string) []string {
	seen := make(map[string]bool, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		if !IsKeyword(w) || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}
