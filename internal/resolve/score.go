package resolve

import "strings"

// Scoring tiers. Exact matches beat prefixes, prefixes beat substrings,
// substrings beat pure similarity, so resolution order is explainable.
const (
	scoreExact       = 1.0
	scorePrefix      = 0.92
	scoreTokenPrefix = 0.88
	scoreSubstring   = 0.80
	// similarity scores are scaled below this ceiling
	similarityCeiling = 0.75
)

// score rates how well a normalized query matches one normalized alias.
func score(query, alias string) float64 {
	if query == "" || alias == "" {
		return 0
	}
	if query == alias {
		return scoreExact
	}
	if strings.HasPrefix(alias, query) {
		return scorePrefix
	}
	for _, tok := range tokens(alias) {
		if strings.HasPrefix(tok, query) {
			return scoreTokenPrefix
		}
	}
	if strings.Contains(alias, query) {
		return scoreSubstring
	}
	return tokenSimilarity(query, alias) * similarityCeiling
}

// tokenSimilarity matches each query token against its best alias token
// by edit distance and averages the per-token ratios.
func tokenSimilarity(query, alias string) float64 {
	qTokens := tokens(query)
	aTokens := tokens(alias)
	if len(qTokens) == 0 || len(aTokens) == 0 {
		return 0
	}

	var total float64
	for _, q := range qTokens {
		best := 0.0
		for _, a := range aTokens {
			if r := ratio(q, a); r > best {
				best = r
			}
		}
		total += best
	}
	return total / float64(len(qTokens))
}

// ratio is 1 - normalized Levenshtein distance.
func ratio(a, b string) float64 {
	if a == b {
		return 1
	}
	longest := len(a)
	if len(b) > longest {
		longest = len(b)
	}
	if longest == 0 {
		return 0
	}
	return 1 - float64(levenshtein(a, b))/float64(longest)
}

func levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = minInt(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func minInt(values ...int) int {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}
