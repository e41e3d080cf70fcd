package domainset

// Matcher provides functionality for matching domain names against a set of rules.
type Matcher interface {
	// Match returns whether the domain is matched by the matcher.
	Match(domain string) bool
}

// MaxLinearKeywords is the maximum number of keyword rules under which a
// linear matcher can outperform the automaton.
const MaxLinearKeywords = 8

// NewKeywordMatcher returns a [Matcher] for the keyword set:
// a linear scan for small sets, an Aho-Corasick automaton otherwise.
func NewKeywordMatcher(keywords []string) Matcher {
	if len(keywords) <= MaxLinearKeywords {
		return KeywordLinearMatcher(keywords)
	}
	return KeywordAutomatonFromSlice(keywords)
}
