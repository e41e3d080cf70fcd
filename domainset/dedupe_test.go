package domainset

import (
	"slices"
	"testing"
)

func testDedupe(t *testing.T, in, want []string) {
	t.Helper()
	got := entryStrings(Dedupe(mustEntries(t, in...)))
	if !slices.Equal(got, slices.Clone(want)) {
		t.Errorf("Dedupe(%v) = %v, want %v", in, got, want)
	}
}

func TestDedupe(t *testing.T) {
	t.Run("SuffixSubsumesSubdomain", func(t *testing.T) {
		testDedupe(t,
			[]string{"a.b.com", ".b.com", "c.com"},
			[]string{".b.com", "c.com"},
		)
	})
	t.Run("SuffixBeatsExactTwin", func(t *testing.T) {
		testDedupe(t,
			[]string{"b.com", ".b.com"},
			[]string{".b.com"},
		)
		testDedupe(t,
			[]string{".b.com", "b.com"},
			[]string{".b.com"},
		)
	})
	t.Run("ExactDuplicates", func(t *testing.T) {
		testDedupe(t,
			[]string{"a.com", "b.com", "a.com", "b.com"},
			[]string{"a.com", "b.com"},
		)
	})
	t.Run("NestedSuffixes", func(t *testing.T) {
		testDedupe(t,
			[]string{".a.b.com", ".b.com", "x.a.b.com"},
			[]string{".b.com"},
		)
	})
	t.Run("ExactDoesNotSubsume", func(t *testing.T) {
		testDedupe(t,
			[]string{"b.com", "a.b.com"},
			[]string{"b.com", "a.b.com"},
		)
	})
	t.Run("Empty", func(t *testing.T) {
		if got := Dedupe(nil); len(got) != 0 {
			t.Errorf("Dedupe(nil) = %v, want empty", got)
		}
	})
}

func TestDedupeIdempotent(t *testing.T) {
	in := mustEntries(t, "a.b.com", ".b.com", "c.com", ".c.com", "c.com", "d.org")
	once := Dedupe(in)
	twice := Dedupe(once)
	if !slices.Equal(once, twice) {
		t.Errorf("Dedupe not idempotent: %v != %v", once, twice)
	}
}

func TestDedupePreservesCoverage(t *testing.T) {
	in := mustEntries(t, "a.b.com", ".b.com", "c.com", "x.y.z.net", ".z.net")
	out := Dedupe(in)
	trie := DomainTrieFromEntries(out)
	for _, e := range in {
		if !trie.Covers(e.Host, false) {
			t.Errorf("deduplicated set does not cover %v", e)
		}
	}
}
