package domainset

import (
	"slices"
	"testing"
)

func mustEntries(t *testing.T, ss ...string) []Entry {
	t.Helper()
	entries := make([]Entry, len(ss))
	for i, s := range ss {
		e, err := ParseEntry(s)
		if err != nil {
			t.Fatal(err)
		}
		entries[i] = e
	}
	return entries
}

func entryStrings(entries []Entry) []string {
	ss := make([]string, len(entries))
	for i, e := range entries {
		ss[i] = e.String()
	}
	return ss
}

func TestDomainTrieFind(t *testing.T) {
	trie := DomainTrieFromEntries(mustEntries(t,
		".ads.example.com",
		"tracker.example.com",
		".example.org",
		"example.org",
		".net",
	))

	for _, c := range []struct {
		domain     string
		suffixOnly bool
		want       []string
	}{
		{"sub.ads.example.com", false, []string{".ads.example.com"}},
		{"ads.example.com", false, []string{".ads.example.com"}},
		{"example.com", false, nil},
		{"tracker.example.com", false, []string{"tracker.example.com"}},
		{"tracker.example.com", true, nil},
		{"sub.tracker.example.com", false, []string{"tracker.example.com"}},
		{"sub.tracker.example.com", true, nil},
		{"a.example.org", false, []string{".example.org", "example.org"}},
		{"a.example.org", true, []string{".example.org"}},
		{"example.org", false, []string{".example.org", "example.org"}},
		{"example.org", true, []string{".example.org"}},
		{"a.b.net", false, []string{".net"}},
		{"unrelated.io", false, nil},
	} {
		got := entryStrings(trie.Find(c.domain, c.suffixOnly))
		slices.Sort(got)
		want := slices.Clone(c.want)
		slices.Sort(want)
		if !slices.Equal(got, want) {
			t.Errorf("Find(%q, %v) = %v, want %v", c.domain, c.suffixOnly, got, c.want)
		}
	}
}

func TestDomainTrieCovers(t *testing.T) {
	trie := DomainTrieFromEntries(mustEntries(t,
		".b.com",
		"exact.c.com",
	))

	for _, c := range []struct {
		domain     string
		suffixOnly bool
		want       bool
	}{
		{"b.com", true, true},
		{"a.b.com", true, true},
		{"deep.a.b.com", true, true},
		{"notb.com", true, false},
		{"c.com", true, false},
		{"exact.c.com", true, false},
		{"exact.c.com", false, true},
		{"sub.exact.c.com", false, true},
		{"other.c.com", false, false},
	} {
		if got := trie.Covers(c.domain, c.suffixOnly); got != c.want {
			t.Errorf("Covers(%q, %v) = %v, want %v", c.domain, c.suffixOnly, got, c.want)
		}
	}
}

func TestDomainTrieHas(t *testing.T) {
	trie := DomainTrieFromEntries(mustEntries(t, ".b.com", "c.com"))

	for _, c := range []struct {
		entry string
		want  bool
	}{
		{".b.com", true},
		{"b.com", false},
		{"c.com", true},
		{".c.com", false},
		{"a.b.com", false},
	} {
		e, err := ParseEntry(c.entry)
		if err != nil {
			t.Fatal(err)
		}
		if got := trie.Has(e); got != c.want {
			t.Errorf("Has(%q) = %v, want %v", c.entry, got, c.want)
		}
	}
}

func TestDomainTrieInsertIdempotent(t *testing.T) {
	var trie DomainTrie
	e := Entry{Kind: KindSuffix, Host: "example.com"}
	trie.Insert(e)
	trie.Insert(e)
	if trie.Len() != 1 {
		t.Errorf("Len() = %d, want 1", trie.Len())
	}

	trie.Insert(Entry{Kind: KindDomain, Host: "example.com"})
	if trie.Len() != 2 {
		t.Errorf("Len() = %d, want 2", trie.Len())
	}
}

func TestDomainTrieRules(t *testing.T) {
	want := []string{".b.com", "a.b.com", "c.com", ".c.com"}
	trie := DomainTrieFromEntries(mustEntries(t, want...))

	n, seq := trie.Rules()
	if n != len(want) {
		t.Errorf("Rules() count = %d, want %d", n, len(want))
	}

	got := slices.AppendSeq(make([]string, 0, n), seq)
	slices.Sort(got)
	wantSorted := slices.Clone(want)
	slices.Sort(wantSorted)
	if !slices.Equal(got, wantSorted) {
		t.Errorf("Rules() = %v, want %v", got, wantSorted)
	}
}
