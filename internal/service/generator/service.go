package generator

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/superyngo/wenget-bucket/internal/config"
	"github.com/superyngo/wenget-bucket/internal/github"
	"github.com/superyngo/wenget-bucket/internal/logger"
	"github.com/superyngo/wenget-bucket/internal/manifest"
	"github.com/superyngo/wenget-bucket/internal/source"
)

// rateLimitLogInterval is how many sources are processed between
// remaining-quota status messages.
const rateLimitLogInterval = 10

// Service resolves both source lists into one manifest document.
// Processing is strictly sequential: one URL at a time with a fixed pacing
// delay between requests, so the single accumulator needs no locking.
type Service struct {
	cfg     *config.Config
	client  *github.Client
	builder *manifest.Builder
}

// NewService wires a generator run. The builder lives for exactly one run
// and is finalized once by Generate.
func NewService(cfg *config.Config, client *github.Client) *Service {
	return &Service{
		cfg:     cfg,
		client:  client,
		builder: manifest.NewBuilder(),
	}
}

// Generate walks the script list first (gist calls are unauthenticated and
// cheap on the quota), then the package list, and writes the aggregated
// manifest. Nothing is persisted unless the whole run succeeds.
func (s *Service) Generate(ctx context.Context, sourcesPath, scriptsPath, outputPath string) error {
	scriptURLs := loadOptionalList(ctx, scriptsPath)

	logger.Infof(ctx, "Found %d script sources", len(scriptURLs))

	if err := s.walkSources(ctx, scriptURLs, "resolving scripts", s.processScriptSource); err != nil {
		return err
	}

	packageURLs, err := source.LoadList(sourcesPath)
	if err != nil {
		return err
	}

	logger.Infof(ctx, "Found %d package sources", len(packageURLs))

	if err := s.walkSources(ctx, packageURLs, "resolving packages", s.processPackageSource); err != nil {
		return err
	}

	logger.InfoKV(ctx, "Saving manifest", "path", outputPath)

	doc := s.builder.Build(time.Now())
	if err := manifest.Write(outputPath, doc); err != nil {
		return err
	}

	s.logSummary(ctx, len(packageURLs))

	return nil
}

// walkSources runs handler over each URL sequentially with pacing between
// sources. Per-source failures are logged inside the handlers and never stop
// the walk; only context cancellation aborts it.
func (s *Service) walkSources(ctx context.Context, urls []string, description string, handler func(context.Context, string)) error {
	if len(urls) == 0 {
		return nil
	}

	bar := progressbar.Default(int64(len(urls)), description)
	defer func() { _ = bar.Finish() }()

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return err
		}

		logger.Infof(ctx, "[%d/%d] %s", i+1, len(urls), url)
		handler(ctx, url)

		_ = bar.Add(1)

		if (i+1)%rateLimitLogInterval == 0 {
			if remaining := s.client.RateLimitRemaining(); remaining != "" {
				logger.Infof(ctx, "Rate limit: %s remaining", remaining)
			}
		}

		if i < len(urls)-1 {
			if err := pace(ctx, s.cfg.PacingInterval); err != nil {
				return err
			}
		}
	}

	return nil
}

// processPackageSource resolves one repository URL into a package record.
func (s *Service) processPackageSource(ctx context.Context, url string) {
	pkg, err := s.resolvePackage(ctx, url)
	if err != nil {
		logger.Warnf(ctx, "Skipping %s: %v", url, err)
		return
	}

	s.builder.AddPackage(*pkg)
	logger.Infof(ctx, "Resolved %s with %d platforms", pkg.Name, len(pkg.Platforms))
}

// processScriptSource resolves one gist or raw URL into script records.
func (s *Service) processScriptSource(ctx context.Context, url string) {
	scripts := s.resolveScripts(ctx, url)
	if len(scripts) == 0 {
		return
	}

	s.builder.AddScripts(scripts...)

	for _, script := range scripts {
		logger.Infof(ctx, "Resolved script %s (%s)", script.Name, script.ScriptType)
	}
}

// logSummary prints end-of-run statistics.
func (s *Service) logSummary(ctx context.Context, attempted int) {
	logger.Infof(ctx, "Generation complete: %d/%d packages, %d scripts",
		s.builder.PackageCount(), attempted, s.builder.ScriptCount())

	for _, line := range sortedStats(s.builder.PlatformCoverage()) {
		logger.Infof(ctx, "Platform coverage: %s", line)
	}

	for _, line := range sortedStats(s.builder.ScriptTypeCounts()) {
		logger.Infof(ctx, "Script types: %s", line)
	}
}

// loadOptionalList loads a source list, treating an unset path or a missing
// file as empty rather than fatal.
func loadOptionalList(ctx context.Context, path string) []string {
	if path == "" {
		return nil
	}

	urls, err := source.LoadList(path)
	if err != nil {
		logger.Infof(ctx, "Script source list %s not readable, continuing without scripts", path)
		return nil
	}

	return urls
}

// pace waits the fixed inter-request interval unless the run is canceled.
func pace(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// sortedStats renders a count map as deterministic "key: n" lines.
func sortedStats(stats map[string]int) []string {
	keys := make([]string, 0, len(stats))
	for key := range stats {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, fmt.Sprintf("%s: %d", key, stats[key]))
	}

	return lines
}
