// Package build orchestrates ruleset builds: fetching the configured
// sources, folding and reconciling the rule sets, and writing the output
// files.
package build

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MoeYc/Surge/geoip"
	"github.com/MoeYc/Surge/jsoncfg"
	"github.com/MoeYc/Surge/ruletext"
	"github.com/MoeYc/Surge/source"
)

// Config is the build tool configuration.
type Config struct {
	// CacheDir is the directory for cached source downloads.
	// Empty disables the cache.
	CacheDir string `json:"cacheDir,omitzero"`

	// OutputDir is the directory the built rule files are written to.
	OutputDir string `json:"outputDir"`

	// UserAgent is sent with every fetch request.
	UserAgent string `json:"userAgent,omitzero"`

	// Interval is the rebuild interval in serve mode. Zero builds once.
	Interval jsoncfg.Duration `json:"interval,omitzero"`

	// RuleSets lists the domain rulesets to build.
	RuleSets []RuleSetConfig `json:"ruleSets,omitzero"`

	// PrefixSets lists the IP prefix rulesets to build.
	PrefixSets []PrefixSetConfig `json:"prefixSets,omitzero"`
}

// RuleSetConfig describes one domain ruleset.
type RuleSetConfig struct {
	// Name identifies the ruleset.
	Name string `json:"name"`

	// Output is the output file name. Defaults to Name + ".txt".
	Output string `json:"output,omitzero"`

	// Blacklists are the blocking rule sources.
	Blacklists []source.Config `json:"blacklists"`

	// Whitelists are the exception rule sources. Every entry they
	// produce whitelists, regardless of polarity in the source text.
	Whitelists []source.Config `json:"whitelists,omitzero"`

	// Suffixes are sources whose entries are applied as suffix rules,
	// subsuming narrower blacklist entries.
	Suffixes []source.Config `json:"suffixes,omitzero"`

	// Keywords are keyword rule sources.
	Keywords []source.Config `json:"keywords,omitzero"`

	// ExtraKeywords are keyword rules given inline.
	ExtraKeywords []string `json:"extraKeywords,omitzero"`
}

// OutputName returns the ruleset's output file name.
func (c RuleSetConfig) OutputName() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Name + ".txt"
}

// PrefixSetConfig describes one IP prefix ruleset.
type PrefixSetConfig struct {
	// Name identifies the prefix set.
	Name string `json:"name"`

	// Output is the output file name. Defaults to Name + ".txt".
	Output string `json:"output,omitzero"`

	// Sources are the prefix list sources.
	Sources []source.Config `json:"sources"`

	// GeoIP optionally drops prefixes by country.
	GeoIP geoip.Config `json:"geoip,omitzero"`
}

// OutputName returns the prefix set's output file name.
func (c PrefixSetConfig) OutputName() string {
	if c.Output != "" {
		return c.Output
	}
	return c.Name + ".txt"
}

// Validate checks the configuration for problems a build would only
// discover midway.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("outputDir must be set")
	}
	if len(c.RuleSets)+len(c.PrefixSets) == 0 {
		return errors.New("no rulesets configured")
	}

	names := make(map[string]struct{}, len(c.RuleSets)+len(c.PrefixSets))
	checkName := func(kind, name string) error {
		if name == "" {
			return fmt.Errorf("%s with empty name", kind)
		}
		if strings.ContainsAny(name, "/\\") {
			return fmt.Errorf("%s name %q contains a path separator", kind, name)
		}
		if _, ok := names[name]; ok {
			return fmt.Errorf("duplicate ruleset name %q", name)
		}
		names[name] = struct{}{}
		return nil
	}

	for i := range c.RuleSets {
		rsc := &c.RuleSets[i]
		if err := checkName("ruleset", rsc.Name); err != nil {
			return err
		}
		if len(rsc.Blacklists) == 0 {
			return fmt.Errorf("ruleset %q has no blacklist sources", rsc.Name)
		}
		for _, keyword := range rsc.ExtraKeywords {
			if keyword == "" {
				return fmt.Errorf("ruleset %q has an empty extra keyword", rsc.Name)
			}
		}
		for _, sources := range [][]source.Config{rsc.Blacklists, rsc.Whitelists, rsc.Suffixes, rsc.Keywords} {
			for i := range sources {
				if err := validateSource(rsc.Name, &sources[i]); err != nil {
					return err
				}
			}
		}
	}

	for i := range c.PrefixSets {
		psc := &c.PrefixSets[i]
		if err := checkName("prefix set", psc.Name); err != nil {
			return err
		}
		if len(psc.Sources) == 0 {
			return fmt.Errorf("prefix set %q has no sources", psc.Name)
		}
		for i := range psc.Sources {
			if err := validateSource(psc.Name, &psc.Sources[i]); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateSource(ruleset string, sc *source.Config) error {
	if sc.Name == "" {
		return fmt.Errorf("ruleset %q has a source with empty name", ruleset)
	}
	if strings.ContainsAny(sc.Name, "/\\") {
		return fmt.Errorf("source name %q contains a path separator", sc.Name)
	}
	if len(sc.URLs) == 0 {
		return fmt.Errorf("source %q has no URLs", sc.Name)
	}
	if sc.Format != "" {
		if _, err := ruletext.Parse(sc.Format, ""); err != nil {
			return fmt.Errorf("source %q: %w", sc.Name, err)
		}
	}
	return nil
}
