package build

import (
	"time"

	"github.com/MoeYc/Surge/domainset"
	"github.com/MoeYc/Surge/jsoncfg"
)

// Report records the outcome of one build.
type Report struct {
	// Time is when the build started.
	Time time.Time `json:"time"`

	// Duration is how long the build took.
	Duration jsoncfg.Duration `json:"duration"`

	// RuleSets holds the per-ruleset outcomes.
	RuleSets []RuleSetReport `json:"ruleSets,omitzero"`

	// PrefixSets holds the per-prefix-set outcomes.
	PrefixSets []PrefixSetReport `json:"prefixSets,omitzero"`
}

// RuleSetReport records the outcome of building one domain ruleset.
type RuleSetReport struct {
	Name string `json:"name"`

	// Entries is the number of entries in the final ruleset.
	Entries int `json:"entries"`

	// Keywords is the number of keyword rules applied.
	Keywords int `json:"keywords"`

	// Invalid is the number of source lines that failed to parse.
	Invalid int `json:"invalid"`

	// BroadSuffixes is the number of suffix rules dropped for covering
	// an entire public suffix.
	BroadSuffixes int `json:"broadSuffixes"`

	// Stats breaks down the entries removed during reconciliation.
	Stats domainset.ReconcileStats `json:"stats"`

	// Written is whether the output file changed on disk.
	Written bool `json:"written"`
}

// PrefixSetReport records the outcome of building one prefix set.
type PrefixSetReport struct {
	Name string `json:"name"`

	// Prefixes is the number of prefixes in the final set.
	Prefixes int `json:"prefixes"`

	// Invalid is the number of source lines that failed to parse.
	Invalid int `json:"invalid"`

	// GeoIPDropped is the number of prefixes removed by the country filter.
	GeoIPDropped int `json:"geoipDropped"`

	// Written is whether the output file changed on disk.
	Written bool `json:"written"`
}
