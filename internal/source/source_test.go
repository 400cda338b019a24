package source

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestLoadList skips blanks and comments and preserves order.
func TestLoadList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "sources.txt")
	contents := `# package sources
https://github.com/octo/alpha

  https://github.com/octo/beta
# trailing comment
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	urls, err := LoadList(path)
	require.NoError(t, err)
	require.Equal(t, []string{
		"https://github.com/octo/alpha",
		"https://github.com/octo/beta",
	}, urls)
}

// TestLoadListMissing surfaces a missing file as an error.
func TestLoadListMissing(t *testing.T) {
	t.Parallel()

	_, err := LoadList(filepath.Join(t.TempDir(), "absent.txt"))
	require.Error(t, err)
}

// TestParseRepoURL covers the accepted repository URL shapes.
func TestParseRepoURL(t *testing.T) {
	t.Parallel()

	cases := map[string][2]string{
		"https://github.com/octo/tool":          {"octo", "tool"},
		"https://github.com/octo/tool.git":      {"octo", "tool"},
		"http://github.com/octo/tool":           {"octo", "tool"},
		"https://github.com/octo/tool/releases": {"octo", "tool"},
		"github.com/octo/my-tool":               {"octo", "my-tool"},
	}

	for url, want := range cases {
		owner, repo, ok := ParseRepoURL(url)
		require.True(t, ok, url)
		require.Equal(t, want[0], owner, url)
		require.Equal(t, want[1], repo, url)
	}

	_, _, ok := ParseRepoURL("https://example.com/octo/tool")
	require.False(t, ok)
}

// TestParseGistID covers both gist hosts.
func TestParseGistID(t *testing.T) {
	t.Parallel()

	id, ok := ParseGistID("https://gist.github.com/octo/0123456789abcdef")
	require.True(t, ok)
	require.Equal(t, "0123456789abcdef", id)

	id, ok = ParseGistID("https://gist.githubusercontent.com/octo/deadbeef/raw")
	require.True(t, ok)
	require.Equal(t, "deadbeef", id)

	_, ok = ParseGistID("https://github.com/octo/tool")
	require.False(t, ok)
}

// TestIsRawScriptURL covers the raw-host dispatch rule.
func TestIsRawScriptURL(t *testing.T) {
	t.Parallel()

	require.True(t, IsRawScriptURL("https://raw.githubusercontent.com/octo/tool/main/install.sh"))
	require.True(t, IsRawScriptURL("https://RAW.githubusercontent.com/octo/tool/main/install.sh"))
	require.True(t, IsRawScriptURL("https://raw.example.com/install.sh"))
	require.False(t, IsRawScriptURL("https://gist.github.com/octo/deadbeef"))
	require.False(t, IsRawScriptURL("https://github.com/octo/tool"))
}

// TestRepoURLFromRaw derives the origin repository, falling back when the
// URL does not match the host/owner/repo shape.
func TestRepoURLFromRaw(t *testing.T) {
	t.Parallel()

	repo, ok := RepoURLFromRaw("https://raw.githubusercontent.com/octo/tool/refs/heads/main/install.sh")
	require.True(t, ok)
	require.Equal(t, "https://github.com/octo/tool", repo)

	_, ok = RepoURLFromRaw("https://raw.example.com/install.sh")
	require.False(t, ok)
}
