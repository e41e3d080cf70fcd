package domainset

import "iter"

// DomainTrie indexes domain entries by their labels, read right to left.
// A path from the root to a node spells the labels of a domain in
// right-to-left order; terminal flags on the node record which entry
// kinds end there. Unlike a pure suffix trie, inserting a broad suffix
// does not purge narrower descendants: every inserted entry stays
// addressable so that coverage relationships can be queried afterwards.
//
// A DomainTrie must not be modified once queries have begun.
type DomainTrie struct {
	root trieNode
	size int
}

type trieNode struct {
	children map[string]*trieNode
	domain   bool
	suffix   bool
}

func (n *trieNode) child(label string) *trieNode {
	c := n.children[label]
	if c == nil {
		c = &trieNode{}
		if n.children == nil {
			n.children = map[string]*trieNode{label: c}
		} else {
			n.children[label] = c
		}
	}
	return c
}

// DomainTrieFromEntries builds a trie over the given entries.
func DomainTrieFromEntries(entries []Entry) *DomainTrie {
	var t DomainTrie
	for _, e := range entries {
		t.Insert(e)
	}
	return &t
}

// Insert adds the entry to the trie. Inserting an entry that is already
// present is a no-op.
func (t *DomainTrie) Insert(e Entry) {
	node := &t.root
	host := e.Host

	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		node = node.child(host[i+1:])
		host = host[:i]
	}
	node = node.child(host)

	switch e.Kind {
	case KindSuffix:
		if !node.suffix {
			node.suffix = true
			t.size++
		}
	default:
		if !node.domain {
			node.domain = true
			t.size++
		}
	}
}

// Len returns the number of distinct entries in the trie.
func (t *DomainTrie) Len() int {
	return t.size
}

// Find returns every inserted entry whose labels are a suffix of, or equal
// to, domain's labels. When suffixOnly is true, only suffix entries count;
// otherwise both entry kinds count, including an exact entry equal to
// domain itself.
func (t *DomainTrie) Find(domain string, suffixOnly bool) []Entry {
	var found []Entry
	node := &t.root
	host := domain

	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		next := node.children[host[i+1:]]
		if next == nil {
			return found
		}
		// host shares its backing prefix with domain, so domain[i+1:]
		// is exactly the labels consumed so far.
		found = next.appendTerminals(found, domain[i+1:], suffixOnly)
		node = next
		host = host[:i]
	}

	if next := node.children[host]; next != nil {
		found = next.appendTerminals(found, domain, suffixOnly)
	}
	return found
}

func (n *trieNode) appendTerminals(found []Entry, host string, suffixOnly bool) []Entry {
	if n.suffix {
		found = append(found, Entry{Kind: KindSuffix, Host: host})
	}
	if !suffixOnly && n.domain {
		found = append(found, Entry{Kind: KindDomain, Host: host})
	}
	return found
}

// Covers returns whether some inserted entry covers domain.
// When suffixOnly is true, only suffix entries are considered.
func (t *DomainTrie) Covers(domain string, suffixOnly bool) bool {
	node := &t.root
	host := domain

	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		next := node.children[host[i+1:]]
		if next == nil {
			return false
		}
		if next.suffix || !suffixOnly && next.domain {
			return true
		}
		node = next
		host = host[:i]
	}

	next := node.children[host]
	return next != nil && (next.suffix || !suffixOnly && next.domain)
}

// Has returns whether the entry was inserted verbatim.
func (t *DomainTrie) Has(e Entry) bool {
	node := &t.root
	host := e.Host

	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		node = node.children[host[i+1:]]
		if node == nil {
			return false
		}
		host = host[:i]
	}

	node = node.children[host]
	if node == nil {
		return false
	}
	if e.Kind == KindSuffix {
		return node.suffix
	}
	return node.domain
}

// coversStrictly returns whether e is covered by a strictly broader suffix
// entry in the trie: a suffix entry on a proper ancestor of e's terminal
// node, or, for an exact entry, a suffix entry on the terminal node itself.
func (t *DomainTrie) coversStrictly(e Entry) bool {
	node := &t.root
	host := e.Host

	for i := len(host) - 1; i >= 0; i-- {
		if host[i] != '.' {
			continue
		}
		next := node.children[host[i+1:]]
		if next == nil {
			return false
		}
		if next.suffix {
			return true
		}
		node = next
		host = host[:i]
	}

	next := node.children[host]
	return next != nil && next.suffix && e.Kind == KindDomain
}

// Rules returns the number of entries and an iterator over their textual
// forms. The iteration order is indeterminate.
func (t *DomainTrie) Rules() (int, iter.Seq[string]) {
	return t.size, func(yield func(string) bool) {
		t.root.walk("", yield)
	}
}

func (n *trieNode) walk(host string, yield func(string) bool) bool {
	if n.suffix && !yield("."+host) {
		return false
	}
	if n.domain && !yield(host) {
		return false
	}
	for label, child := range n.children {
		childHost := label
		if host != "" {
			childHost = label + "." + host
		}
		if !child.walk(childHost, yield) {
			return false
		}
	}
	return true
}
