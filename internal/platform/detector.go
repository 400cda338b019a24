package platform

import "strings"

// Detect classifies a release asset filename into a canonical platform key
// ("<platform>-<arch>", e.g. "linux-x86_64"). It reports ok=false when the
// asset is not a portable archive/executable, mentions an unsupported
// architecture, or names no recognizable platform.
//
// When the platform is detected but the architecture is not and no default
// applies (Darwin), the bare platform name is returned; HasArchitecture lets
// callers spot such degraded keys.
func Detect(filename string) (string, bool) {
	lower := strings.ToLower(filename)

	ext, ok := matchExtension(lower)
	if !ok {
		return "", false
	}

	osName := matchToken(lower, platformScanOrder, platformKeywords)
	if osName == "" {
		// An .exe with no platform marker is still a Windows binary.
		if ext == ".exe" {
			osName = Windows
		} else {
			return "", false
		}
	}

	for _, token := range skipArchTokens {
		if strings.Contains(lower, token) {
			return "", false
		}
	}

	arch := matchToken(lower, archScanOrder, archKeywords)

	if arch == "" && strings.Contains(lower, "x86") &&
		!strings.Contains(lower, "x86_64") && !strings.Contains(lower, "x86-64") {
		// Bare "x86" is ambiguous: 32-bit Macs are long gone, so on Darwin it
		// means x86_64; elsewhere the unqualified token conventionally means 32-bit.
		if osName == Darwin {
			arch = "x86_64"
		} else {
			arch = "i686"
		}
	}

	if arch == "" {
		arch = archDefaults[osName]
	}

	if arch == "" {
		return osName, true
	}

	return osName + "-" + arch, true
}

// AssetPriority ranks an asset among others that classify to the same
// platform key, based on its toolchain token. Linux prefers musl over gnu,
// Windows prefers msvc over gnu over musl; Darwin and FreeBSD are flat.
func AssetPriority(filename, key string) int {
	compiler := matchCompiler(strings.ToLower(filename))

	osName := key
	if i := strings.IndexByte(key, '-'); i >= 0 {
		osName = key[:i]
	}

	priorities, ok := compilerPriority[osName]
	if !ok {
		return 1
	}

	priority, ok := priorities[compiler]
	if !ok {
		return 1
	}

	return priority
}

// HasArchitecture reports whether the key carries an architecture component.
// A bare platform key means "best effort, unknown architecture".
func HasArchitecture(key string) bool {
	return strings.Contains(key, "-")
}

// matchExtension returns the matching archive/executable suffix, compound
// suffixes first.
func matchExtension(lower string) (string, bool) {
	for _, ext := range extensionScanOrder {
		if strings.HasSuffix(lower, ext) {
			return ext, true
		}
	}

	return "", false
}

// matchToken scans keywords in the given order and returns the normalized
// value of the first one contained in the filename.
func matchToken(lower string, order []string, table map[string]string) string {
	for _, keyword := range order {
		if strings.Contains(lower, keyword) {
			return table[keyword]
		}
	}

	return ""
}

// matchCompiler returns the toolchain token found in the filename, or "".
func matchCompiler(lower string) string {
	for _, token := range compilerScanOrder {
		if strings.Contains(lower, token) {
			return token
		}
	}

	return ""
}
