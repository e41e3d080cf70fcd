package domainset

import (
	"fmt"
	"testing"
)

var keywordCases = []struct {
	keywords []string
	domain   string
	want     bool
}{
	{[]string{"ads"}, "ads.example.com", true},
	{[]string{"ads"}, "loads.example.com", true},
	{[]string{"ads"}, "example.com", false},
	{[]string{"tracker", "analytics"}, "cdn.analytics.example.org", true},
	{[]string{"tracker", "analytics"}, "cdn.example.org", false},
	{[]string{"ab", "b"}, "xaby", true},
	{[]string{"ab", "b"}, "xay", false},
	{[]string{"aaa"}, "aabaaa", true},
	{[]string{"aaa"}, "aabaab", false},
	{nil, "example.com", false},
	{[]string{""}, "example.com", false},
	{[]string{"", "ads"}, "ads.example.com", true},
	{[]string{"", "ads"}, "example.com", false},
}

func testKeywordMatcher(t *testing.T, m Matcher, domain string, want bool) {
	t.Helper()
	if got := m.Match(domain); got != want {
		t.Errorf("Match(%q) = %v, want %v", domain, got, want)
	}
}

func TestKeywordLinearMatcher(t *testing.T) {
	for _, c := range keywordCases {
		testKeywordMatcher(t, KeywordLinearMatcher(c.keywords), c.domain, c.want)
	}
}

func TestKeywordAutomaton(t *testing.T) {
	for _, c := range keywordCases {
		testKeywordMatcher(t, KeywordAutomatonFromSlice(c.keywords), c.domain, c.want)
	}
}

func TestKeywordMatcherParity(t *testing.T) {
	keywords := []string{"ad", "ads", "track", "rack", "metric", "stat", "tag", "pixel", "count", "spy"}
	domains := []string{
		"example.com",
		"ads.example.com",
		"stracker.example.com",
		"pixel.stats.example.org",
		"barrack.example.net",
		"advert.example.io",
		"clean.example.io",
		"t",
		"",
	}
	linear := KeywordLinearMatcher(keywords)
	automaton := KeywordAutomatonFromSlice(keywords)
	for _, domain := range domains {
		if l, a := linear.Match(domain), automaton.Match(domain); l != a {
			t.Errorf("Match(%q): linear = %v, automaton = %v", domain, l, a)
		}
	}
}

func TestNewKeywordMatcher(t *testing.T) {
	small := make([]string, MaxLinearKeywords)
	large := make([]string, MaxLinearKeywords+1)
	for i := range small {
		small[i] = fmt.Sprintf("kw%d", i)
	}
	for i := range large {
		large[i] = fmt.Sprintf("kw%d", i)
	}

	if _, ok := NewKeywordMatcher(small).(KeywordLinearMatcher); !ok {
		t.Errorf("NewKeywordMatcher(%d keywords) is not a KeywordLinearMatcher", len(small))
	}
	if _, ok := NewKeywordMatcher(large).(*KeywordAutomaton); !ok {
		t.Errorf("NewKeywordMatcher(%d keywords) is not a *KeywordAutomaton", len(large))
	}

	m := NewKeywordMatcher(large)
	testKeywordMatcher(t, m, "xkw8x.example.com", true)
	testKeywordMatcher(t, m, "example.com", false)
}

func BenchmarkKeywordMatchers(b *testing.B) {
	keywords := []string{"ads", "track", "metric", "stat", "tagman", "pixel", "count", "spy", "beacon", "telemetry"}
	domain := "cdn.static.assets.example-site.com"

	b.Run("Linear", func(b *testing.B) {
		m := KeywordLinearMatcher(keywords)
		for b.Loop() {
			m.Match(domain)
		}
	})
	b.Run("Automaton", func(b *testing.B) {
		m := KeywordAutomatonFromSlice(keywords)
		for b.Loop() {
			m.Match(domain)
		}
	})
}
