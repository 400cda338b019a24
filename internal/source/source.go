package source

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// URL shapes accepted in the source lists. First match wins, so the
// .git-stripping pattern is tried before the permissive one.
var (
	repoPatterns = []*regexp.Regexp{
		regexp.MustCompile(`github\.com/([^/]+)/([^/]+?)(?:\.git)?$`),
		regexp.MustCompile(`github\.com/([^/]+)/([^/]+)`),
	}

	gistPatterns = []*regexp.Regexp{
		regexp.MustCompile(`gist\.github\.com/[^/]+/([a-f0-9]+)`),
		regexp.MustCompile(`gist\.githubusercontent\.com/[^/]+/([a-f0-9]+)`),
	}

	rawRepoPattern = regexp.MustCompile(`raw\.githubusercontent\.com/([^/]+)/([^/]+)`)
)

// LoadList reads a plain-text source list, one URL per line.
// Blank lines and lines starting with '#' are ignored.
func LoadList(path string) ([]string, error) {
	file, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("open source list: %w", err)
	}

	defer func() { _ = file.Close() }()

	var urls []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		urls = append(urls, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read source list: %w", err)
	}

	return urls, nil
}

// ParseRepoURL extracts owner and repository name from a repository URL.
func ParseRepoURL(url string) (owner, repo string, ok bool) {
	for _, pattern := range repoPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], m[2], true
		}
	}

	return "", "", false
}

// ParseGistID extracts the gist identifier from a gist URL.
func ParseGistID(url string) (string, bool) {
	for _, pattern := range gistPatterns {
		if m := pattern.FindStringSubmatch(url); m != nil {
			return m[1], true
		}
	}

	return "", false
}

// IsRawScriptURL reports whether the URL points at a raw content host and
// should be treated as a direct script file rather than a gist.
func IsRawScriptURL(url string) bool {
	lower := strings.ToLower(url)

	return strings.Contains(lower, "raw.githubusercontent.com") || strings.HasPrefix(lower, "https://raw.")
}

// RepoURLFromRaw derives the originating repository URL from a raw content
// URL of the host/owner/repo/... shape. ok=false when the URL does not match,
// in which case callers fall back to the raw URL itself as the origin.
func RepoURLFromRaw(rawURL string) (string, bool) {
	m := rawRepoPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}

	return fmt.Sprintf("https://github.com/%s/%s", m[1], m[2]), true
}
