package platform

import "sort"

// Normalized platform names used in manifest keys.
const (
	Windows = "windows"
	Linux   = "linux"
	Darwin  = "darwin"
	FreeBSD = "freebsd"
)

// archiveExtensions lists portable archive/executable suffixes the installer
// can handle. Installer-style assets (.msi, .dmg, .deb, ...) are deliberately
// excluded. Compound suffixes must be tested before shorter ones so .tar.gz
// is not mis-split as .gz; longestFirst takes care of the ordering.
var archiveExtensions = []string{
	".exe",
	".zip", ".7z", ".rar",
	".tar.gz", ".tgz",
	".tar.xz", ".txz",
	".tar.bz2", ".tbz2",
}

// platformKeywords maps filename tokens to normalized platform names.
// Keywords intentionally overlap (win vs pc-windows); scanning is
// longest-first so the more specific token wins.
var platformKeywords = map[string]string{
	"win":        Windows,
	"windows":    Windows,
	"pc-windows": Windows,

	"linux":         Linux,
	"unknown-linux": Linux,

	"darwin":       Darwin,
	"macos":        Darwin,
	"mac":          Darwin,
	"osx":          Darwin,
	"apple":        Darwin,
	"apple-darwin": Darwin,

	"freebsd": FreeBSD,
}

// archKeywords maps filename tokens to normalized architectures.
// Bare "x86" is ambiguous and handled separately in Detect.
var archKeywords = map[string]string{
	"x86_64": "x86_64",
	"x86-64": "x86_64",
	"amd64":  "x86_64",
	"x64":    "x86_64",
	"win64":  "x86_64",

	"i686":  "i686",
	"i386":  "i686",
	"win32": "i686",

	"aarch64": "aarch64",
	"arm64":   "aarch64",

	"armv7":  "armv7",
	"armhf":  "armv7",
	"armv7l": "armv7",

	"armv6": "armv6",
	// Generic ARM, assume v6. Shortest token, so it is checked last.
	"arm": "armv6",
}

// skipArchTokens marks architectures that exist in upstream releases but are
// deliberately unsupported; any asset mentioning one is not classifiable.
var skipArchTokens = []string{
	"s390x",
	"ppc64",
	"ppc64le",
	"riscv64",
	"mips",
	"mipsel",
}

// compilerTokens are the toolchain markers recognized for priority selection.
var compilerTokens = []string{
	"gnu",
	"musl",
	"msvc",
	"gnueabihf",
	"musleabihf",
	"musleabi",
}

// compilerPriority ranks toolchains per platform; higher wins when several
// assets classify to the same platform key. The empty string is the
// no-toolchain baseline.
var compilerPriority = map[string]map[string]int{
	Linux: {
		"musl":       3,
		"musleabihf": 3,
		"musleabi":   3,
		"gnu":        2,
		"gnueabihf":  2,
		"":           1,
	},
	Windows: {
		"msvc": 3,
		"gnu":  2,
		"musl": 1,
		"":     1,
	},
	Darwin:  {"": 1},
	FreeBSD: {"": 1},
}

// archDefaults is applied when no architecture token matched.
// Darwin has no default: assuming one would be wrong half the time,
// so the key degrades to the bare platform name instead.
var archDefaults = map[string]string{
	Windows: "x86_64",
	Linux:   "x86_64",
	FreeBSD: "x86_64",
	Darwin:  "",
}

// Pre-sorted scan orders, longest keyword first. First match wins, so the
// ordering is the precedence rule.
var (
	extensionScanOrder []string
	platformScanOrder  []string
	archScanOrder      []string
	compilerScanOrder  []string
)

func init() {
	extensionScanOrder = longestFirst(archiveExtensions)

	platformScanOrder = longestFirstKeys(platformKeywords)
	archScanOrder = longestFirstKeys(archKeywords)
	compilerScanOrder = longestFirst(compilerTokens)
}

// longestFirst returns a copy of tokens sorted by descending length.
// Equal lengths fall back to lexicographic order to keep scans deterministic.
func longestFirst(tokens []string) []string {
	sorted := append([]string(nil), tokens...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}

		return sorted[i] < sorted[j]
	})

	return sorted
}

// longestFirstKeys returns the map keys sorted by descending length.
func longestFirstKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	return longestFirst(keys)
}
