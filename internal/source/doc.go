// Package source loads the plain-text source lists and parses the URL
// shapes they may contain: repository URLs, gist URLs and raw content URLs.
package source
