// Package ruletext parses the text formats domain rules are published in:
// hosts files, dnsmasq configuration, AdGuard filter lists, plain domain
// lists, keyword lists, and the plaintext domain-set form.
package ruletext

import (
	"fmt"
	"net/netip"
	"strings"

	"github.com/MoeYc/Surge/bytestrings"
	"github.com/MoeYc/Surge/domainset"
)

// Result collects the rules parsed out of one source text.
type Result struct {
	// Black holds the blocking entries.
	Black []domainset.Entry

	// White holds the exception entries.
	White []domainset.Entry

	// Keywords holds the keyword rules.
	Keywords []string

	// Invalid is the number of lines that should have carried a rule
	// but could not be parsed.
	Invalid int
}

// Formats accepted by [Parse].
const (
	FormatHosts     = "hosts"
	FormatDnsmasq   = "dnsmasq"
	FormatAdGuard   = "adguard"
	FormatPlain     = "plain"
	FormatDomainSet = "domainset"
	FormatKeywords  = "keywords"
)

// Parse parses text in the named format.
func Parse(format, text string) (Result, error) {
	switch format {
	case FormatHosts:
		return ParseHosts(text), nil
	case FormatDnsmasq:
		return ParseDnsmasq(text), nil
	case FormatAdGuard:
		return ParseAdGuard(text), nil
	case FormatPlain:
		return ParsePlain(text), nil
	case FormatDomainSet:
		return ParseDomainSet(text)
	case FormatKeywords:
		return ParseKeywords(text), nil
	default:
		return Result{}, fmt.Errorf("unknown rule text format %q", format)
	}
}

// hostsSelfNames are the names a stock hosts file maps to the local machine.
// They carry no blocking intent and are dropped.
var hostsSelfNames = map[string]struct{}{
	"localhost":             {},
	"localhost.localdomain": {},
	"local":                 {},
	"broadcasthost":         {},
	"ip6-localhost":         {},
	"ip6-loopback":          {},
	"ip6-localnet":          {},
	"ip6-mcastprefix":       {},
	"ip6-allnodes":          {},
	"ip6-allrouters":        {},
	"ip6-allhosts":          {},
}

// ParseHosts parses hosts file text. Every hostname mapped to an address
// becomes an exact entry, except the names a hosts file conventionally
// maps to the local machine.
func ParseHosts(text string) (r Result) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = bytestrings.TrimTrailingComment(line, '#')
		addr, rest := bytestrings.CutField(line)
		if addr == "" {
			continue
		}
		if _, err := netip.ParseAddr(addr); err != nil {
			r.Invalid++
			continue
		}
		for {
			var name string
			name, rest = bytestrings.CutField(rest)
			if name == "" {
				break
			}
			host, ok := normalizeHost(name)
			if !ok {
				r.Invalid++
				continue
			}
			if _, ok := hostsSelfNames[host]; ok {
				continue
			}
			r.Black = append(r.Black, domainset.Entry{Kind: domainset.KindDomain, Host: host})
		}
	}
	return r
}

// ParseDnsmasq parses dnsmasq configuration text, extracting the domains of
// address=, server= and local= directives as suffix entries. dnsmasq domain
// directives apply to the named domain and all of its subdomains.
func ParseDnsmasq(text string) (r Result) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = strings.TrimSpace(bytestrings.TrimTrailingComment(line, '#'))
		if line == "" {
			continue
		}

		var rest string
		switch {
		case strings.HasPrefix(line, "address=/"):
			rest = line[len("address=/"):]
		case strings.HasPrefix(line, "server=/"):
			rest = line[len("server=/"):]
		case strings.HasPrefix(line, "local=/"):
			rest = line[len("local=/"):]
		default:
			r.Invalid++
			continue
		}

		// A directive may name several domains: address=/a.com/b.com/0.0.0.0
		// The final segment is the target address, possibly empty.
		segments := strings.Split(rest, "/")
		if len(segments) < 2 {
			r.Invalid++
			continue
		}
		for _, segment := range segments[:len(segments)-1] {
			host, ok := normalizeHost(segment)
			if !ok {
				r.Invalid++
				continue
			}
			r.Black = append(r.Black, domainset.Entry{Kind: domainset.KindSuffix, Host: host})
		}
	}
	return r
}

// ParseAdGuard parses AdGuard-style filter list text. `||domain^` rules
// become suffix entries, plain domain and hosts-style lines become exact
// entries, and `@@` exception rules go to the whitelist with the same
// translation. Cosmetic, regex, wildcard and modifier rules address
// page content or need a URL to evaluate, so they are skipped.
func ParseAdGuard(text string) (r Result) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = strings.TrimSpace(line)
		if line == "" || line[0] == '!' || line[0] == '#' {
			continue
		}

		white := false
		if strings.HasPrefix(line, "@@") {
			white = true
			line = line[2:]
		}

		if strings.ContainsAny(line, "*$") ||
			strings.Contains(line, "##") ||
			strings.Contains(line, "#@#") ||
			strings.Contains(line, "#%#") ||
			(strings.HasPrefix(line, "/") && strings.HasSuffix(line, "/")) {
			continue
		}

		kind := domainset.KindDomain
		if strings.HasPrefix(line, "||") {
			kind = domainset.KindSuffix
			line = line[2:]
		} else if strings.HasPrefix(line, "|") {
			// |https://example.com^ anchors a full URL.
			continue
		}
		line = strings.TrimSuffix(line, "|")
		line = strings.TrimSuffix(line, "^")

		if strings.ContainsAny(line, "/^|") {
			continue
		}

		// hosts-style lines appear in lists served to both consumers.
		if addr, rest := bytestrings.CutField(line); rest != "" {
			if _, err := netip.ParseAddr(addr); err != nil {
				r.Invalid++
				continue
			}
			sub := ParseHosts(line)
			r.Invalid += sub.Invalid
			if white {
				r.White = append(r.White, sub.Black...)
			} else {
				r.Black = append(r.Black, sub.Black...)
			}
			continue
		}

		host, ok := normalizeHost(line)
		if !ok {
			r.Invalid++
			continue
		}
		e := domainset.Entry{Kind: kind, Host: host}
		if white {
			r.White = append(r.White, e)
		} else {
			r.Black = append(r.Black, e)
		}
	}
	return r
}

// ParsePlain parses one domain per line, with an optional leading '.'
// marking a suffix entry.
func ParsePlain(text string) (r Result) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = strings.TrimSpace(bytestrings.TrimTrailingComment(line, '#'))
		if line == "" {
			continue
		}

		kind := domainset.KindDomain
		if line[0] == '.' {
			kind = domainset.KindSuffix
			line = line[1:]
		}
		host, ok := normalizeHost(line)
		if !ok {
			r.Invalid++
			continue
		}
		r.Black = append(r.Black, domainset.Entry{Kind: kind, Host: host})
	}
	return r
}

// ParseDomainSet parses the plaintext domain-set form, one rule per line:
//
//	domain:www.example.com
//	suffix:example.com
//	keyword:example
//
// Unlike the lenient list formats, a line that fails to parse is an error:
// domain-set files are produced by tooling, not scraped from the wild.
func ParseDomainSet(text string) (r Result, err error) {
	for line := range bytestrings.NonEmptyLines(text) {
		if line[0] == '#' {
			continue
		}
		switch {
		case strings.HasPrefix(line, "domain:"):
			host, ok := normalizeHost(line[len("domain:"):])
			if !ok {
				return r, fmt.Errorf("invalid domain rule: %q", line)
			}
			r.Black = append(r.Black, domainset.Entry{Kind: domainset.KindDomain, Host: host})
		case strings.HasPrefix(line, "suffix:"):
			host, ok := normalizeHost(line[len("suffix:"):])
			if !ok {
				return r, fmt.Errorf("invalid suffix rule: %q", line)
			}
			r.Black = append(r.Black, domainset.Entry{Kind: domainset.KindSuffix, Host: host})
		case strings.HasPrefix(line, "keyword:"):
			keyword := line[len("keyword:"):]
			if keyword == "" {
				return r, fmt.Errorf("empty keyword rule: %q", line)
			}
			r.Keywords = append(r.Keywords, keyword)
		default:
			return r, fmt.Errorf("invalid line: %q", line)
		}
	}
	return r, nil
}

// ParseKeywords parses one keyword per line.
func ParseKeywords(text string) (r Result) {
	for line := range bytestrings.NonEmptyLines(text) {
		line = strings.TrimSpace(bytestrings.TrimTrailingComment(line, '#'))
		if line == "" {
			continue
		}
		r.Keywords = append(r.Keywords, line)
	}
	return r
}

// AppendDomainSetText appends the domain-set textual form of entries and
// keywords to b.
func AppendDomainSetText(b []byte, entries []domainset.Entry, keywords []string) []byte {
	for _, e := range entries {
		switch e.Kind {
		case domainset.KindSuffix:
			b = append(b, "suffix:"...)
		default:
			b = append(b, "domain:"...)
		}
		b = append(b, e.Host...)
		b = append(b, '\n')
	}
	for _, keyword := range keywords {
		b = append(b, "keyword:"...)
		b = append(b, keyword...)
		b = append(b, '\n')
	}
	return b
}

// normalizeHost lowercases host, strips an ignorable trailing dot, and
// reports whether the result is a plausible DNS name. IP literals are not
// domain rules and are rejected here.
func normalizeHost(host string) (string, bool) {
	host = strings.ToLower(strings.TrimSuffix(host, "."))
	if host == "" || len(host) > 253 {
		return "", false
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return "", false
	}

	labelStart := 0
	for i := 0; i <= len(host); i++ {
		if i < len(host) && host[i] != '.' {
			c := host[i]
			if c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '-' || c == '_' {
				continue
			}
			return "", false
		}
		if i == labelStart || i-labelStart > 63 {
			return "", false
		}
		labelStart = i + 1
	}
	return host, true
}
