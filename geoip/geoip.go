// Package geoip filters prefix sets by country, backed by a GeoLite2
// Country database.
package geoip

import (
	"fmt"
	"net"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"go4.org/netipx"
)

// Config is the configuration for a country filter.
type Config struct {
	// Path is the path to the GeoLite2 Country database.
	Path string `json:"path"`

	// DropCountries lists the ISO 3166-1 country codes whose prefixes
	// are removed from the set.
	DropCountries []string `json:"dropCountries"`
}

// Enabled returns whether the configuration asks for any filtering.
func (c Config) Enabled() bool {
	return c.Path != "" && len(c.DropCountries) > 0
}

// Filter drops prefixes registered to configured countries.
type Filter struct {
	db   *geoip2.Reader
	drop map[string]struct{}
}

// OpenFilter opens the configured database and returns the filter.
func (c Config) OpenFilter() (*Filter, error) {
	db, err := geoip2.Open(c.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GeoIP database %s: %w", c.Path, err)
	}
	drop := make(map[string]struct{}, len(c.DropCountries))
	for _, code := range c.DropCountries {
		drop[strings.ToUpper(code)] = struct{}{}
	}
	return &Filter{db: db, drop: drop}, nil
}

// Apply returns s with the prefixes of dropped countries removed, along
// with the number of prefixes removed. A prefix's country is determined
// by its first address. Addresses the database does not know stay in
// the set.
func (f *Filter) Apply(s *netipx.IPSet) (*netipx.IPSet, int, error) {
	var sb netipx.IPSetBuilder
	sb.AddSet(s)

	var dropped int
	for _, prefix := range s.Prefixes() {
		record, err := f.db.Country(net.IP(prefix.Addr().AsSlice()))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to look up %s: %w", prefix, err)
		}
		if _, ok := f.drop[record.Country.IsoCode]; !ok {
			continue
		}
		sb.RemovePrefix(prefix)
		dropped++
	}

	out, err := sb.IPSet()
	if err != nil {
		return nil, 0, err
	}
	return out, dropped, nil
}

// Close closes the underlying database.
func (f *Filter) Close() error {
	return f.db.Close()
}
