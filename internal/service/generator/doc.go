// Package generator orchestrates a manifest generation run: it walks the
// script and package source lists strictly sequentially with a fixed pacing
// delay, resolves each source through the hosting API, accumulates records in
// source-list order and writes the validated manifest document in one shot.
//
// Per-source failures (unparseable URLs, missing releases, unusable assets,
// exhausted retries) are logged and skipped; only a missing package source
// list, cancellation or a failed manifest write abort the run.
package generator
