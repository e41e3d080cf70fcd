// Ruleset converter takes a domain rule file in hosts, dnsmasq, AdGuard,
// plain or domain-set format, and converts it to a plain or domain-set
// ruleset file, optionally deduplicating and sorting the entries.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/MoeYc/Surge/domainset"
	"github.com/MoeYc/Surge/mmap"
	"github.com/MoeYc/Surge/psl"
	"github.com/MoeYc/Surge/ruletext"
)

var (
	inHosts      = flag.String("inHosts", "", "Path to input file in hosts format.")
	inDnsmasq    = flag.String("inDnsmasq", "", "Path to input file in dnsmasq configuration format.")
	inAdGuard    = flag.String("inAdGuard", "", "Path to input file in AdGuard filter list format.")
	inPlain      = flag.String("inPlain", "", "Path to input file in plain domain list format.")
	inDomainSet  = flag.String("inDomainSet", "", "Path to input file in domain-set format.")
	outPlain     = flag.String("outPlain", "", "Path to output file in plain domain list format.")
	outDomainSet = flag.String("outDomainSet", "", "Path to output file in domain-set format.")
	dedupe       = flag.Bool("dedupe", false, "Drop entries covered by a broader suffix entry in the set.")
	sortEntries  = flag.Bool("sort", false, "Sort entries, grouping entries under the same registrable domain.")
)

func main() {
	flag.Parse()

	var (
		inCount  int
		inPath   string
		inFormat string
	)

	for _, in := range []struct {
		path   *string
		format string
	}{
		{inHosts, ruletext.FormatHosts},
		{inDnsmasq, ruletext.FormatDnsmasq},
		{inAdGuard, ruletext.FormatAdGuard},
		{inPlain, ruletext.FormatPlain},
		{inDomainSet, ruletext.FormatDomainSet},
	} {
		if *in.path != "" {
			inCount++
			inPath = *in.path
			inFormat = in.format
		}
	}

	if inCount != 1 {
		fmt.Fprintln(os.Stderr, "Exactly one of -inHosts, -inDnsmasq, -inAdGuard, -inPlain, -inDomainSet must be specified.")
		flag.Usage()
		os.Exit(1)
	}

	if *outPlain == "" && *outDomainSet == "" {
		fmt.Fprintln(os.Stderr, "Specify output file paths with -outPlain and/or -outDomainSet.")
		flag.Usage()
		os.Exit(1)
	}

	data, unmap, err := mmap.ReadFile[string](inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to read input file:", err)
		os.Exit(1)
	}
	defer unmap()

	res, err := ruletext.Parse(inFormat, data)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to parse input file:", err)
		os.Exit(1)
	}
	if res.Invalid > 0 {
		fmt.Fprintln(os.Stderr, "Skipped invalid lines:", res.Invalid)
	}

	entries := res.Black
	if *dedupe {
		entries = domainset.Dedupe(entries)
	}
	if *sortEntries {
		domainset.SortEntries(entries, psl.Oracle{})
	}

	if *outPlain != "" {
		b := make([]byte, 0, 32*len(entries))
		for _, e := range entries {
			if e.Kind == domainset.KindSuffix {
				b = append(b, '.')
			}
			b = append(b, e.Host...)
			b = append(b, '\n')
		}
		if err = os.WriteFile(*outPlain, b, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write output file:", err)
			os.Exit(1)
		}
	}

	if *outDomainSet != "" {
		b := ruletext.AppendDomainSetText(nil, entries, res.Keywords)
		if err = os.WriteFile(*outDomainSet, b, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, "Failed to write output file:", err)
			os.Exit(1)
		}
	}
}
