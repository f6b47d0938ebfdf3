package frequency

// stopWords holds common English function words that never rank.
var stopWords = func() map[string]struct{} {
	words := []string{
		"a", "an", "the", "is", "are", "was", "were", "be", "been", "being",
		"have", "has", "had", "do", "does", "did", "will", "would", "should",
		"can", "could", "may", "might", "must", "i", "you", "he", "she", "it",
		"we", "they", "me", "him", "her", "us", "them", "my", "your", "his",
		"its", "our", "their", "mine", "yours", "hers", "ours", "theirs",
		"myself", "yourself", "himself", "herself", "itself", "ourselves",
		"themselves", "what", "which", "who", "whom", "this", "that", "these",
		"those", "am", "in", "on", "at", "by", "for", "with", "about", "against",
		"between", "into", "through", "during", "before", "after", "above",
		"below", "to", "from", "up", "down", "out", "off", "over", "under",
		"again", "further", "then", "once", "here", "there", "when", "where",
		"why", "how", "all", "any", "both", "each", "few", "more", "most",
		"other", "some", "such", "no", "nor", "not", "only", "own", "same",
		"so", "than", "too", "very", "s", "t", "just", "don", "now", "of", "and",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}()

// IsStopWord reports whether word is excluded from ranking.
func IsStopWord(word string) bool {
	_, ok := stopWords[word]
	return ok
}
