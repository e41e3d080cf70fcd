// Package domainset implements the domain indexing and deduplication engine:
// a suffix-aware trie over domain names, a multi-pattern keyword automaton,
// a deduplication pass that collapses redundant entries, and a
// locality-preserving sort.
package domainset

import (
	"errors"
	"fmt"
	"strings"
)

// EntryKind is the match semantics of a domain entry.
type EntryKind uint8

const (
	// KindDomain matches only the literal hostname.
	KindDomain EntryKind = iota

	// KindSuffix matches the hostname and every subdomain of it.
	KindSuffix
)

// Entry is a single domain rule. The textual form uses a leading '.'
// to mark suffix entries; internally the marker is carried as Kind,
// never as part of Host.
type Entry struct {
	Kind EntryKind
	Host string
}

var errEmptyEntry = errors.New("empty domain entry")

// ParseEntry parses the textual form of a domain entry.
// It rejects empty entries, a bare ".", and entries with empty labels.
func ParseEntry(s string) (Entry, error) {
	kind := KindDomain
	if strings.HasPrefix(s, ".") {
		kind = KindSuffix
		s = s[1:]
	}
	if s == "" {
		return Entry{}, errEmptyEntry
	}
	if s[0] == '.' || s[len(s)-1] == '.' || strings.Contains(s, "..") {
		return Entry{}, fmt.Errorf("domain entry %q has an empty label", s)
	}
	return Entry{Kind: kind, Host: s}, nil
}

// String returns the textual form of the entry.
func (e Entry) String() string {
	if e.Kind == KindSuffix {
		return "." + e.Host
	}
	return e.Host
}

// Covers returns whether the entry's match set includes host.
func (e Entry) Covers(host string) bool {
	if e.Kind == KindDomain {
		return e.Host == host
	}
	return host == e.Host ||
		len(host) > len(e.Host) && host[len(host)-len(e.Host)-1] == '.' && host[len(host)-len(e.Host):] == e.Host
}
