// Package prefixset parses and merges IP prefix lists.
package prefixset

import (
	"net/netip"
	"strings"

	"github.com/MoeYc/Surge/bytestrings"
	"go4.org/netipx"
)

// AppendFromText parses the prefix list text into sb and returns the number
// of lines that could not be parsed. A line may carry a CIDR prefix, a bare
// address, or an address range like 10.0.0.0-10.0.0.255. Comment lines and
// trailing comments start with '#'.
func AppendFromText(sb *netipx.IPSetBuilder, text string) (invalid int) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = strings.TrimSpace(bytestrings.TrimTrailingComment(line, '#'))
		if line == "" {
			continue
		}

		if prefix, err := netip.ParsePrefix(line); err == nil {
			sb.AddPrefix(prefix)
			continue
		}
		if addr, err := netip.ParseAddr(line); err == nil {
			sb.Add(addr)
			continue
		}
		if r, err := netipx.ParseIPRange(line); err == nil {
			sb.AddRange(r)
			continue
		}
		invalid++
	}
	return invalid
}

// IPSetFromText parses prefixes from the text and builds a prefix set.
// Unparsable lines are dropped.
func IPSetFromText(text string) (*netipx.IPSet, error) {
	var sb netipx.IPSetBuilder
	AppendFromText(&sb, text)
	return sb.IPSet()
}

// IPSetToText returns the text representation of the prefix set.
func IPSetToText(s *netipx.IPSet) []byte {
	prefixes := s.Prefixes()
	b := make([]byte, 0, 20*len(prefixes))
	for _, prefix := range prefixes {
		b = prefix.AppendTo(b)
		b = append(b, '\n')
	}
	return b
}
