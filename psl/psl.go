// Package psl answers public-suffix questions about domain names,
// backed by the embedded public suffix list in [golang.org/x/net/publicsuffix].
package psl

import (
	"net/netip"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Oracle looks up domains in the public suffix list.
// The zero value is ready to use and safe for concurrent use.
type Oracle struct{}

// RegistrableSuffix returns the registrable domain (eTLD+1) of domain.
// It returns false if domain is an IP literal, is itself a public suffix,
// or has no registrable domain.
func (Oracle) RegistrableSuffix(domain string) (string, bool) {
	host := normalize(domain)
	if host == "" {
		return "", false
	}
	if _, err := netip.ParseAddr(host); err == nil {
		return "", false
	}

	d, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return "", false
	}
	return d, true
}

// IsICANNOrPrivate returns whether domain's public suffix is managed by
// ICANN or listed in the private section of the public suffix list.
func (Oracle) IsICANNOrPrivate(domain string) bool {
	host := normalize(domain)
	if host == "" {
		return false
	}

	suffix, icann := publicsuffix.PublicSuffix(host)
	// A private-section match yields a multi-label suffix with icann unset.
	return icann || strings.IndexByte(suffix, '.') >= 0
}

// IsIPLiteral returns whether domain is an IPv4 or IPv6 address literal.
func (Oracle) IsIPLiteral(domain string) bool {
	host := strings.TrimPrefix(strings.TrimSuffix(domain, "]"), "[")
	_, err := netip.ParseAddr(host)
	return err == nil
}

func normalize(domain string) string {
	return strings.ToLower(strings.TrimSuffix(domain, "."))
}
