package manifest

import "time"

// PlatformAsset points at the downloadable artifact chosen for one platform key.
type PlatformAsset struct {
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

// Package describes one bucket entry resolved from a repository's latest release.
// Platforms holds at most one asset per platform key, always the
// highest-priority candidate seen.
type Package struct {
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	Repo        string                   `json:"repo"`
	Homepage    string                   `json:"homepage"`
	License     *string                  `json:"license"`
	Platforms   map[string]PlatformAsset `json:"platforms"`
}

// Script describes one installable script resolved from a gist or raw URL.
type Script struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	URL         string `json:"url"`
	ScriptType  string `json:"script_type"`
	Repo        string `json:"repo"`
}

// Manifest is the aggregated document consumed by the installer.
// Scripts is omitted entirely when no script sources resolved.
type Manifest struct {
	Packages    []Package `json:"packages"`
	LastUpdated string    `json:"last_updated"`
	Scripts     []Script  `json:"scripts,omitempty"`
}

// timestampLayout is an ISO-8601-like UTC stamp, matching what the installer expects.
const timestampLayout = "2006-01-02T15:04:05Z"

// Builder accumulates records from both pipelines in source-list order.
// It is created at run start and finalized exactly once by Build.
type Builder struct {
	packages []Package
	scripts  []Script
}

// NewBuilder returns an empty accumulator.
func NewBuilder() *Builder {
	return &Builder{}
}

// AddPackage appends a resolved package record.
func (b *Builder) AddPackage(pkg Package) {
	b.packages = append(b.packages, pkg)
}

// AddScripts appends resolved script records.
func (b *Builder) AddScripts(scripts ...Script) {
	b.scripts = append(b.scripts, scripts...)
}

// PackageCount returns the number of accumulated packages.
func (b *Builder) PackageCount() int {
	return len(b.packages)
}

// ScriptCount returns the number of accumulated scripts.
func (b *Builder) ScriptCount() int {
	return len(b.scripts)
}

// PlatformCoverage counts packages per platform key for summary logging.
func (b *Builder) PlatformCoverage() map[string]int {
	stats := make(map[string]int)
	for _, pkg := range b.packages {
		for key := range pkg.Platforms {
			stats[key]++
		}
	}

	return stats
}

// ScriptTypeCounts counts scripts per type for summary logging.
func (b *Builder) ScriptTypeCounts() map[string]int {
	stats := make(map[string]int)
	for _, script := range b.scripts {
		stats[script.ScriptType]++
	}

	return stats
}

// Build finalizes the document with the given timestamp. The packages array
// is always present, even when empty; scripts only when non-empty.
func (b *Builder) Build(now time.Time) *Manifest {
	packages := b.packages
	if packages == nil {
		packages = make([]Package, 0)
	}

	return &Manifest{
		Packages:    packages,
		LastUpdated: now.UTC().Format(timestampLayout),
		Scripts:     b.scripts,
	}
}
