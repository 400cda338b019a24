// Package github is a minimal hosting-API client covering exactly what the
// generator needs: repository metadata, latest releases, gist file listings
// and raw-content peeks.
//
// Requests carry an optional bearer token (never on gist or raw calls) and
// are retried a fixed number of times with a fixed delay. A 404 is treated
// as permanently missing and escalates immediately.
package github
