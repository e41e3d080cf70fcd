package domainset

import "strings"

// KeywordLinearMatcher matches keyword rules by iterating over the keywords.
// Empty keywords are ignored.
type KeywordLinearMatcher []string

// Match implements [Matcher.Match].
func (klm KeywordLinearMatcher) Match(domain string) bool {
	for _, keyword := range klm {
		if keyword == "" {
			continue
		}
		if strings.Contains(domain, keyword) {
			return true
		}
	}
	return false
}

// KeywordAutomaton is an Aho-Corasick automaton over a set of keywords.
// Once built, a match scan is linear in the length of the input,
// independent of the number of keywords.
type KeywordAutomaton struct {
	states []automatonState
}

type automatonState struct {
	next   map[byte]int32
	fail   int32
	output bool
}

// KeywordAutomatonFromSlice builds a [KeywordAutomaton] from the keyword set.
// Empty keywords are ignored.
func KeywordAutomatonFromSlice(keywords []string) *KeywordAutomaton {
	a := &KeywordAutomaton{
		states: make([]automatonState, 1, 1+len(keywords)*8),
	}

	for _, keyword := range keywords {
		if keyword == "" {
			continue
		}
		s := int32(0)
		for i := 0; i < len(keyword); i++ {
			c := keyword[i]
			t, ok := a.states[s].next[c]
			if !ok {
				t = int32(len(a.states))
				a.states = append(a.states, automatonState{})
				if a.states[s].next == nil {
					a.states[s].next = make(map[byte]int32)
				}
				a.states[s].next[c] = t
			}
			s = t
		}
		a.states[s].output = true
	}

	// Overlay failure links breadth-first: each state's failure target is
	// the longest proper suffix of its path that is also a path from the
	// root. A state is a match state if its own path is a keyword or its
	// failure chain reaches a match state.
	queue := make([]int32, 0, len(a.states)-1)
	for _, t := range a.states[0].next {
		queue = append(queue, t)
	}
	for i := 0; i < len(queue); i++ {
		s := queue[i]
		sf := a.states[s].fail
		for c, t := range a.states[s].next {
			f := sf
			for {
				if n, ok := a.states[f].next[c]; ok {
					a.states[t].fail = n
					break
				}
				if f == 0 {
					a.states[t].fail = 0
					break
				}
				f = a.states[f].fail
			}
			if a.states[a.states[t].fail].output {
				a.states[t].output = true
			}
			queue = append(queue, t)
		}
	}

	return a
}

// Match implements [Matcher.Match]. It returns whether domain contains any
// of the automaton's keywords as a substring.
func (a *KeywordAutomaton) Match(domain string) bool {
	s := int32(0)
	for i := 0; i < len(domain); i++ {
		c := domain[i]
		for {
			if t, ok := a.states[s].next[c]; ok {
				s = t
				break
			}
			if s == 0 {
				break
			}
			s = a.states[s].fail
		}
		if a.states[s].output {
			return true
		}
	}
	return false
}
