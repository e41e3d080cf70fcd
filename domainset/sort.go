package domainset

import (
	"slices"
	"strings"
)

// SuffixOracle is the public-suffix lookup consumed by [SortEntries].
type SuffixOracle interface {
	// RegistrableSuffix returns the registrable domain (eTLD+1) of domain,
	// or false if domain has none.
	RegistrableSuffix(domain string) (string, bool)
}

type sortKey struct {
	group string
	text  string
	entry Entry
}

// SortEntries sorts entries in place, grouping entries that share a
// registrable suffix together. Entries are ordered by registrable suffix
// first and full textual form second; entries whose host has no registrable
// suffix group under their own textual form. The sort is stable: entries
// with identical keys retain their relative input order.
func SortEntries(entries []Entry, oracle SuffixOracle) {
	keyed := make([]sortKey, len(entries))
	for i, e := range entries {
		text := e.String()
		group, ok := oracle.RegistrableSuffix(e.Host)
		if !ok {
			group = text
		}
		keyed[i] = sortKey{
			group: group,
			text:  text,
			entry: e,
		}
	}

	slices.SortStableFunc(keyed, func(a, b sortKey) int {
		if c := strings.Compare(a.group, b.group); c != 0 {
			return c
		}
		return strings.Compare(a.text, b.text)
	})

	for i := range keyed {
		entries[i] = keyed[i].entry
	}
}
