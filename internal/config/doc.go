// Package config defines generator settings and provides helpers to load and
// validate them in YAML format.
//
// The Config type holds hosting-API tunables: base URL, pacing interval,
// retry budget and timeouts. Zero values are replaced with production
// defaults so an absent settings file is never an error.
package config
