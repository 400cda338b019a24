package generator

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/superyngo/wenget-bucket/internal/logger"
	"github.com/superyngo/wenget-bucket/internal/manifest"
	"github.com/superyngo/wenget-bucket/internal/source"
)

// Script types recognized in the manifest.
const (
	scriptTypeBash       = "bash"
	scriptTypeBatch      = "batch"
	scriptTypePowershell = "powershell"
	scriptTypePython     = "python"
)

// scriptTypeByExtension is the fixed suffix table for script typing.
var scriptTypeByExtension = map[string]string{
	".ps1": scriptTypePowershell,
	".sh":  scriptTypeBash,
	".bat": scriptTypeBatch,
	".cmd": scriptTypeBatch,
	".py":  scriptTypePython,
}

// scriptExtensions is the strip order for deriving script names.
var scriptExtensions = []string{".ps1", ".sh", ".bat", ".cmd", ".py"}

// resolveScripts dispatches a script source URL by shape: raw content hosts
// are direct files, everything else is treated as a gist. Failures yield an
// empty slice; the source is skipped, never fatal.
func (s *Service) resolveScripts(ctx context.Context, url string) []manifest.Script {
	if source.IsRawScriptURL(url) {
		return s.resolveRawScript(ctx, url)
	}

	return s.resolveGistScripts(ctx, url)
}

// resolveRawScript builds a script record from a direct file URL, sniffing
// the shebang when the filename has no recognized extension.
func (s *Service) resolveRawScript(ctx context.Context, url string) []manifest.Script {
	filename := rawFilename(url)

	scriptType, ok := detectScriptType(filename)
	if !ok {
		logger.Infof(ctx, "No extension detected, checking shebang for %s", filename)

		head, err := s.client.FetchHead(ctx, url, s.cfg.SniffBytes)
		if err != nil {
			logger.Warnf(ctx, "Failed to fetch content for shebang detection: %v", err)
			return nil
		}

		scriptType, ok = detectScriptTypeFromShebang(head)
		if !ok {
			logger.Warnf(ctx, "Cannot detect script type of %s from shebang, skipping", filename)
			return nil
		}

		logger.Infof(ctx, "Detected %s from shebang", scriptType)
	}

	origin := url
	if repoURL, ok := source.RepoURLFromRaw(url); ok {
		origin = repoURL
	}

	return []manifest.Script{{
		Name:        stripScriptExtension(filename),
		Description: fmt.Sprintf("%s from %s", filename, origin),
		URL:         url,
		ScriptType:  scriptType,
		Repo:        origin,
	}}
}

// resolveGistScripts expands a gist into one record per recognized file.
// Unrecognized extensions are skipped with a diagnostic; there is no shebang
// fallback for gist files.
func (s *Service) resolveGistScripts(ctx context.Context, url string) []manifest.Script {
	id, ok := source.ParseGistID(url)
	if !ok {
		logger.Warnf(ctx, "Invalid gist URL: %s", url)
		return nil
	}

	gist, err := s.client.GetGist(ctx, id)
	if err != nil {
		logger.Warnf(ctx, "Failed to fetch gist %s: %v", id, err)
		return nil
	}

	// Deterministic output order regardless of JSON map ordering.
	filenames := make([]string, 0, len(gist.Files))
	for filename := range gist.Files {
		filenames = append(filenames, filename)
	}

	sort.Strings(filenames)

	var scripts []manifest.Script

	for _, filename := range filenames {
		scriptType, ok := detectScriptType(filename)
		if !ok {
			logger.Infof(ctx, "Skipping non-script gist file: %s", filename)
			continue
		}

		description := gist.Description
		if description == "" {
			description = fmt.Sprintf("%s from gist", filename)
		}

		scripts = append(scripts, manifest.Script{
			Name:        stripScriptExtension(filename),
			Description: description,
			URL:         gist.Files[filename].RawURL,
			ScriptType:  scriptType,
			Repo:        gist.HTMLURL,
		})
	}

	return scripts
}

// rawFilename derives the filename from the tail of a raw content URL.
func rawFilename(url string) string {
	trimmed := strings.TrimRight(url, "/")
	if i := strings.LastIndexByte(trimmed, '/'); i >= 0 {
		return trimmed[i+1:]
	}

	return trimmed
}

// detectScriptType types a script by filename extension.
func detectScriptType(filename string) (string, bool) {
	lower := strings.ToLower(filename)
	for ext, scriptType := range scriptTypeByExtension {
		if strings.HasSuffix(lower, ext) {
			return scriptType, true
		}
	}

	return "", false
}

// detectScriptTypeFromShebang types a script by its first line. Powershell
// markers are checked before the generic "sh" substring so pwsh shebangs do
// not register as bash.
func detectScriptTypeFromShebang(head []byte) (string, bool) {
	line := head
	if i := bytes.IndexByte(head, '\n'); i >= 0 {
		line = head[:i]
	}

	first := strings.TrimSpace(string(line))
	if !strings.HasPrefix(first, "#!") {
		return "", false
	}

	lower := strings.ToLower(first)

	switch {
	case strings.Contains(lower, "pwsh"), strings.Contains(lower, "powershell"):
		return scriptTypePowershell, true
	case strings.Contains(lower, "python"):
		return scriptTypePython, true
	case strings.Contains(lower, "bash"), strings.Contains(lower, "sh"):
		return scriptTypeBash, true
	default:
		return "", false
	}
}

// stripScriptExtension removes the first matching known extension.
func stripScriptExtension(filename string) string {
	lower := strings.ToLower(filename)
	for _, ext := range scriptExtensions {
		if strings.HasSuffix(lower, ext) {
			return filename[:len(filename)-len(ext)]
		}
	}

	return filename
}
