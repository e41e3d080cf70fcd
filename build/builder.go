package build

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/MoeYc/Surge"
	"github.com/MoeYc/Surge/domainset"
	"github.com/MoeYc/Surge/jsoncfg"
	"github.com/MoeYc/Surge/prefixset"
	"github.com/MoeYc/Surge/psl"
	"github.com/MoeYc/Surge/ruletext"
	"github.com/MoeYc/Surge/source"
	"go.uber.org/zap"
	"go4.org/netipx"
)

// Builder builds the configured rulesets.
type Builder struct {
	cfg        Config
	fetcher    *source.Fetcher
	oracle     psl.Oracle
	logger     *zap.Logger
	lastReport atomic.Pointer[Report]
}

// NewBuilder validates the configuration, creates the cache and output
// directories, and returns a [Builder].
func NewBuilder(cfg Config, logger *zap.Logger) (*Builder, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	if cfg.CacheDir != "" {
		if err := os.MkdirAll(cfg.CacheDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = "surge-build/" + surge.Version
	}

	return &Builder{
		cfg:     cfg,
		fetcher: source.NewFetcher(cfg.CacheDir, userAgent, logger),
		logger:  logger,
	}, nil
}

// LastReport returns the report of the last successful build,
// or nil before the first one completes.
func (b *Builder) LastReport() *Report {
	return b.lastReport.Load()
}

// Build builds every configured ruleset and returns the report.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	start := time.Now()
	report := &Report{Time: start}

	for i := range b.cfg.RuleSets {
		rr, err := b.buildRuleSet(ctx, &b.cfg.RuleSets[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build ruleset %s: %w", b.cfg.RuleSets[i].Name, err)
		}
		report.RuleSets = append(report.RuleSets, rr)
	}

	for i := range b.cfg.PrefixSets {
		pr, err := b.buildPrefixSet(ctx, &b.cfg.PrefixSets[i])
		if err != nil {
			return nil, fmt.Errorf("failed to build prefix set %s: %w", b.cfg.PrefixSets[i].Name, err)
		}
		report.PrefixSets = append(report.PrefixSets, pr)
	}

	report.Duration = jsoncfg.Duration(time.Since(start))
	b.lastReport.Store(report)
	b.logger.Info("Finished build",
		zap.Duration("duration", report.Duration.Value()),
		zap.Int("ruleSets", len(report.RuleSets)),
		zap.Int("prefixSets", len(report.PrefixSets)),
	)
	return report, nil
}

type sourceRole uint8

const (
	roleBlack sourceRole = iota
	roleWhite
	roleSuffix
	roleKeyword
)

func (r sourceRole) defaultFormat() string {
	if r == roleKeyword {
		return ruletext.FormatKeywords
	}
	return ruletext.FormatPlain
}

type sourceJob struct {
	role sourceRole
	cfg  *source.Config
}

type sourceResult struct {
	res ruletext.Result
	err error
}

func (b *Builder) buildRuleSet(ctx context.Context, rsc *RuleSetConfig) (rr RuleSetReport, err error) {
	rr.Name = rsc.Name

	// Source order is part of the contract: first occurrence wins during
	// deduplication, so the fold must see sources in configuration order.
	var jobs []sourceJob
	for _, group := range []struct {
		role    sourceRole
		sources []source.Config
	}{
		{roleBlack, rsc.Blacklists},
		{roleWhite, rsc.Whitelists},
		{roleSuffix, rsc.Suffixes},
		{roleKeyword, rsc.Keywords},
	} {
		for i := range group.sources {
			jobs = append(jobs, sourceJob{role: group.role, cfg: &group.sources[i]})
		}
	}

	// Each source is fetched and parsed by its own goroutine into its own
	// slot. Folding into the shared sets happens strictly after every
	// producer has finished.
	results := make([]sourceResult, len(jobs))
	var wg sync.WaitGroup
	wg.Add(len(jobs))
	for i, job := range jobs {
		go func() {
			defer wg.Done()
			results[i] = b.fetchAndParse(ctx, job)
		}()
	}
	wg.Wait()

	var (
		black, white, suffixes []domainset.Entry
		keywords               []string
	)
	for i, job := range jobs {
		r := results[i]
		if r.err != nil {
			return rr, r.err
		}
		rr.Invalid += r.res.Invalid
		switch job.role {
		case roleBlack:
			for _, e := range r.res.Black {
				if e.Kind == domainset.KindSuffix && b.dropBroadSuffix(rsc.Name, job.cfg.Name, e.Host, &rr) {
					continue
				}
				black = append(black, e)
			}
			white = append(white, r.res.White...)
			keywords = append(keywords, r.res.Keywords...)
		case roleWhite:
			white = append(white, r.res.Black...)
			white = append(white, r.res.White...)
		case roleSuffix:
			for _, e := range r.res.Black {
				if b.dropBroadSuffix(rsc.Name, job.cfg.Name, e.Host, &rr) {
					continue
				}
				suffixes = append(suffixes, domainset.Entry{Kind: domainset.KindSuffix, Host: e.Host})
			}
		case roleKeyword:
			keywords = append(keywords, r.res.Keywords...)
		}
	}
	keywords = append(keywords, rsc.ExtraKeywords...)

	entries, stats := domainset.Reconcile(black, white, suffixes, keywords, b.oracle)
	rr.Entries = len(entries)
	rr.Keywords = len(keywords)
	rr.Stats = stats

	text := make([]byte, 0, 32*len(entries))
	for _, e := range entries {
		if e.Kind == domainset.KindSuffix {
			text = append(text, '.')
		}
		text = append(text, e.Host...)
		text = append(text, '\n')
	}

	rr.Written, err = WriteFileIfChanged(filepath.Join(b.cfg.OutputDir, rsc.OutputName()), text)
	if err != nil {
		return rr, err
	}

	b.logger.Info("Built ruleset",
		zap.String("ruleset", rsc.Name),
		zap.Int("entries", rr.Entries),
		zap.Int("invalid", rr.Invalid),
		zap.Int("suffixCovered", stats.SuffixCovered),
		zap.Int("whitelisted", stats.Whitelisted),
		zap.Int("keywordMatched", stats.KeywordMatched),
		zap.Int("deduplicated", stats.Deduplicated),
		zap.Bool("written", rr.Written),
	)
	return rr, nil
}

func (b *Builder) fetchAndParse(ctx context.Context, job sourceJob) sourceResult {
	text, err := b.fetcher.Fetch(ctx, *job.cfg)
	if err != nil {
		return sourceResult{err: err}
	}
	format := job.cfg.Format
	if format == "" {
		format = job.role.defaultFormat()
	}
	res, err := ruletext.Parse(format, text)
	if err != nil {
		return sourceResult{err: fmt.Errorf("failed to parse source %s: %w", job.cfg.Name, err)}
	}
	return sourceResult{res: res}
}

// dropBroadSuffix reports whether host, used as a suffix rule, would cover
// an entire public suffix. Such a rule is almost always an upstream mistake
// and would blackhole every site under the suffix.
func (b *Builder) dropBroadSuffix(ruleset, src, host string, rr *RuleSetReport) bool {
	if _, ok := b.oracle.RegistrableSuffix(host); ok {
		return false
	}
	if !b.oracle.IsICANNOrPrivate(host) {
		return false
	}
	rr.BroadSuffixes++
	b.logger.Warn("Dropping suffix rule covering a public suffix",
		zap.String("ruleset", ruleset),
		zap.String("source", src),
		zap.String("host", host),
	)
	return true
}

func (b *Builder) buildPrefixSet(ctx context.Context, psc *PrefixSetConfig) (pr PrefixSetReport, err error) {
	pr.Name = psc.Name

	texts := make([]string, len(psc.Sources))
	errs := make([]error, len(psc.Sources))
	var wg sync.WaitGroup
	wg.Add(len(psc.Sources))
	for i := range psc.Sources {
		go func() {
			defer wg.Done()
			texts[i], errs[i] = b.fetcher.Fetch(ctx, psc.Sources[i])
		}()
	}
	wg.Wait()

	var sb netipx.IPSetBuilder
	for i := range psc.Sources {
		if errs[i] != nil {
			return pr, errs[i]
		}
		pr.Invalid += prefixset.AppendFromText(&sb, texts[i])
	}

	s, err := sb.IPSet()
	if err != nil {
		return pr, err
	}

	if psc.GeoIP.Enabled() {
		f, err := psc.GeoIP.OpenFilter()
		if err != nil {
			return pr, err
		}
		defer f.Close()
		s, pr.GeoIPDropped, err = f.Apply(s)
		if err != nil {
			return pr, err
		}
	}

	prefixes := s.Prefixes()
	pr.Prefixes = len(prefixes)

	pr.Written, err = WriteFileIfChanged(filepath.Join(b.cfg.OutputDir, psc.OutputName()), prefixset.IPSetToText(s))
	if err != nil {
		return pr, err
	}

	b.logger.Info("Built prefix set",
		zap.String("prefixSet", psc.Name),
		zap.Int("prefixes", pr.Prefixes),
		zap.Int("invalid", pr.Invalid),
		zap.Int("geoipDropped", pr.GeoIPDropped),
		zap.Bool("written", pr.Written),
	)
	return pr, nil
}
