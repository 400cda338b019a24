// Package platform classifies release asset filenames into canonical
// platform keys and ranks competing assets by toolchain priority.
//
// Classification is a pure table lookup in fixed precedence order:
// extension, platform keyword, unsupported-architecture skip list,
// architecture keyword, ambiguous-x86 resolution, per-platform default.
// All keyword scans are longest-token-first so overlapping keywords
// ("win" vs "pc-windows") resolve to the most specific match.
package platform
