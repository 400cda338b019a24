package github

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/superyngo/wenget-bucket/internal/config"
)

// testClient returns a client pointed at the given server with fast retries.
func testClient(t *testing.T, serverURL, token string) *Client {
	t.Helper()

	cfg := &config.Config{
		APIBaseURL: serverURL,
		RetryDelay: 5 * time.Millisecond,
	}
	require.NoError(t, config.Validate(cfg))

	return NewClient(cfg, token)
}

// TestGetRepository checks headers, token attachment and decoding.
func TestGetRepository(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/repos/octo/tool", r.URL.Path)
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		require.Equal(t, acceptHeader, r.Header.Get("Accept"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))

		w.Header().Set(rateLimitRemainingHeader, "41")
		_, _ = w.Write([]byte(`{
			"name": "tool",
			"description": "a tool",
			"html_url": "https://github.com/octo/tool",
			"homepage": "https://tool.dev",
			"license": {"spdx_id": "MIT"}
		}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, "secret")

	repo, err := client.GetRepository(context.Background(), "octo", "tool")
	require.NoError(t, err)
	require.Equal(t, "tool", repo.Name)
	require.Equal(t, "https://github.com/octo/tool", repo.HTMLURL)
	require.NotNil(t, repo.License)
	require.Equal(t, "MIT", repo.License.SPDXID)
	require.Equal(t, "41", client.RateLimitRemaining())
}

// TestNotFoundIsNotRetried ensures a 404 burns exactly one attempt.
func TestNotFoundIsNotRetried(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := testClient(t, server.URL, "")

	_, err := client.GetLatestRelease(context.Background(), "octo", "tool")
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, 1, calls)
}

// TestRetryOnServerError ensures transient failures are retried with the
// fixed delay until success.
func TestRetryOnServerError(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		_, _ = w.Write([]byte(`{"tag_name": "v1.0.0", "assets": []}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, "")

	release, err := client.GetLatestRelease(context.Background(), "octo", "tool")
	require.NoError(t, err)
	require.Equal(t, "v1.0.0", release.TagName)
	require.Equal(t, 3, calls)
}

// TestRetryBudgetExhaustion ensures the attempt cap escalates the last error.
func TestRetryBudgetExhaustion(t *testing.T) {
	t.Parallel()

	var calls int

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := testClient(t, server.URL, "")

	_, err := client.GetRepository(context.Background(), "octo", "tool")
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNotFound)
	require.Equal(t, 3, calls)
}

// TestGistRequestsAreAnonymous pins the contract that gist calls never carry
// the configured token.
func TestGistRequestsAreAnonymous(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/gists/abc123", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"description": "helpers",
			"html_url": "https://gist.github.com/octo/abc123",
			"files": {"install.sh": {"filename": "install.sh", "raw_url": "https://gist.githubusercontent.com/raw/install.sh"}}
		}`))
	}))
	defer server.Close()

	client := testClient(t, server.URL, "secret")

	gist, err := client.GetGist(context.Background(), "abc123")
	require.NoError(t, err)
	require.Equal(t, "helpers", gist.Description)
	require.Len(t, gist.Files, 1)
	require.Equal(t, "install.sh", gist.Files["install.sh"].Filename)
}

// TestFetchHead checks the byte cap and the anonymous request.
func TestFetchHead(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte("#!/usr/bin/env bash\necho hello\n"))
	}))
	defer server.Close()

	client := testClient(t, server.URL, "secret")

	head, err := client.FetchHead(context.Background(), server.URL+"/script", 10)
	require.NoError(t, err)
	require.Equal(t, []byte("#!/usr/bin"), head)
}

// TestContextCancellationStopsRetries ensures cancellation wins over the
// retry delay.
func TestContextCancellationStopsRetries(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	cfg := &config.Config{APIBaseURL: server.URL, RetryDelay: time.Minute}
	require.NoError(t, config.Validate(cfg))
	client := NewClient(cfg, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.GetRepository(ctx, "octo", "tool")
	require.Error(t, err)
}
