package domainset

// ReconcileStats counts the entries removed by each stage of [Reconcile].
type ReconcileStats struct {
	// SuffixCovered is the number of blacklist entries already subsumed by
	// an explicit suffix rule.
	SuffixCovered int `json:"suffixCovered"`

	// Whitelisted is the number of entries covered by a whitelist entry.
	Whitelisted int `json:"whitelisted"`

	// KeywordMatched is the number of entries containing a blacklisted keyword.
	KeywordMatched int `json:"keywordMatched"`

	// Deduplicated is the number of redundant entries collapsed at the end.
	Deduplicated int `json:"deduplicated"`
}

// Reconcile filters blacklist against the suffix rules, the whitelist and
// the keyword set, then deduplicates and sorts the surviving entries:
//
//  1. Blacklist entries covered by an entry in suffixes are dropped, and
//     the suffix rules themselves join the result set.
//  2. Entries covered by a whitelist entry are dropped.
//  3. Entries containing any of the keywords as a substring are dropped.
//  4. The survivors are deduplicated.
//  5. The survivors are sorted for output.
//
// Deduplication runs last among the filters because the earlier stages can
// newly expose coverage relationships. Every entry in suffixes must be of
// [KindSuffix]. The input slices are not modified.
func Reconcile(blacklist, whitelist, suffixes []Entry, keywords []string, oracle SuffixOracle) ([]Entry, ReconcileStats) {
	var stats ReconcileStats

	suffixTrie := DomainTrieFromEntries(suffixes)
	out := make([]Entry, 0, len(suffixes)+len(blacklist))
	out = append(out, suffixes...)
	for _, e := range blacklist {
		if suffixTrie.Covers(e.Host, true) {
			stats.SuffixCovered++
			continue
		}
		out = append(out, e)
	}

	if len(whitelist) > 0 {
		whiteTrie := DomainTrieFromEntries(whitelist)
		n := 0
		for _, e := range out {
			if whiteTrie.Covers(e.Host, false) {
				stats.Whitelisted++
				continue
			}
			out[n] = e
			n++
		}
		out = out[:n]
	}

	if len(keywords) > 0 {
		km := NewKeywordMatcher(keywords)
		n := 0
		for _, e := range out {
			if km.Match(e.Host) {
				stats.KeywordMatched++
				continue
			}
			out[n] = e
			n++
		}
		out = out[:n]
	}

	deduped := Dedupe(out)
	stats.Deduplicated = len(out) - len(deduped)
	out = deduped

	SortEntries(out, oracle)
	return out, stats
}
