package domain

// defaultSuffixLiterals is the flourish list as written; DefaultSuffixes
// removes the repeated entry.
var defaultSuffixLiterals = []string{
	"ドン！", "だっちゃ", "ナリ", "おじゃ", "ザンス", "なのだ", "ブー", "だってばよ", "なのら", "でやんす",
	"ですぅ♡", "にゃ", "でちゅ", "ぷん", "ぴょん", "ござる", "だべぇ", "ダゾ", "ばぶ", "ですわ", "でちゅ",
}

// DefaultSuffixes returns the deduplicated flourish list in first-seen order.
func DefaultSuffixes() []string {
	return DedupeSuffixes(defaultSuffixLiterals)
}

// DedupeSuffixes drops empty and repeated entries, keeping first-seen order.
func DedupeSuffixes(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
