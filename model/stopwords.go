package model

// defaultStopWords 是固定的英文停用词表，拟合词表时剔除。
// 这些高频虚词对词法相似度没有区分度，保留只会稀释 IDF 权重。
var defaultStopWords = map[string]struct{}{}

func init() {
	words := []string{
		"a", "about", "above", "after", "again", "against", "all", "am",
		"an", "and", "any", "are", "as", "at", "be", "because", "been",
		"before", "being", "below", "between", "both", "but", "by", "can",
		"did", "do", "does", "doing", "down", "during", "each", "few",
		"for", "from", "further", "had", "has", "have", "having", "he",
		"her", "here", "hers", "him", "his", "how", "i", "if",
		"in", "into", "is", "it", "its", "just", "me", "more",
		"most", "my", "no", "nor", "not", "now", "of", "off",
		"on", "once", "only", "or", "other", "our", "out", "over",
		"own", "s", "same", "she", "should", "so", "some", "such",
		"t", "than", "that", "the", "their", "theirs", "them", "then",
		"there", "these", "they", "this", "those", "through", "to", "too",
		"under", "until", "up", "very", "was", "we", "were", "what",
		"when", "where", "which", "while", "who", "whom", "why", "will",
		"with", "you", "your", "yours",
	}
	for _, w := range words {
		defaultStopWords[w] = struct{}{}
	}
}

// IsStopWord 判断一个词是否在默认停用词表中。
func IsStopWord(word string) bool {
	_, ok := defaultStopWords[word]
	return ok
}
