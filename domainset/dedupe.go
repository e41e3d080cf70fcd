package domainset

// Dedupe returns the subset of entries in which no entry covers another,
// preferring the broadest form: an entry is dropped if a strictly broader
// suffix entry in the same set covers it, and an exact entry is dropped in
// favor of the suffix entry over the identical labels. Exact duplicates
// collapse to their first occurrence. The result is deterministic for a
// fixed input set.
func Dedupe(entries []Entry) []Entry {
	trie := DomainTrieFromEntries(entries)
	out := make([]Entry, 0, len(entries))
	seen := make(map[Entry]struct{}, len(entries))

	for _, e := range entries {
		if _, ok := seen[e]; ok {
			continue
		}
		seen[e] = struct{}{}
		if trie.coversStrictly(e) {
			continue
		}
		out = append(out, e)
	}
	return out
}
