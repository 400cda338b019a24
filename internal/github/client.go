package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/superyngo/wenget-bucket/internal/config"
	"github.com/superyngo/wenget-bucket/internal/logger"
)

const (
	// acceptHeader is the stable REST API media type.
	acceptHeader = "application/vnd.github.v3+json"

	// rateLimitRemainingHeader reports the remaining request quota.
	rateLimitRemainingHeader = "X-RateLimit-Remaining"

	// errorBodyLimit bounds how much of an error response is read for
	// rate-limit classification.
	errorBodyLimit = 4096
)

// ErrNotFound marks a 404 from the hosting API. It is never retried:
// a missing repository or release will not appear on a second attempt.
var ErrNotFound = errors.New("resource not found")

// Client talks to the hosting API with a fixed-delay retry budget.
// It is used strictly sequentially, so no internal locking is needed.
type Client struct {
	httpClient  *http.Client
	baseURL     string
	userAgent   string
	token       string
	maxAttempts int
	retryDelay  time.Duration

	// rateLimitRemaining mirrors the last seen quota header, "" until known.
	rateLimitRemaining string
}

// NewClient builds a client from generator settings and an optional bearer
// token. An empty token only degrades the request quota, never correctness.
func NewClient(cfg *config.Config, token string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:     strings.TrimRight(cfg.APIBaseURL, "/"),
		userAgent:   cfg.UserAgent,
		token:       token,
		maxAttempts: cfg.MaxAttempts,
		retryDelay:  cfg.RetryDelay,
	}
}

// GetRepository fetches repository metadata for owner/repo.
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*Repository, error) {
	var repository Repository
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo), true, &repository); err != nil {
		return nil, err
	}

	return &repository, nil
}

// GetLatestRelease fetches the latest published release of owner/repo.
func (c *Client) GetLatestRelease(ctx context.Context, owner, repo string) (*Release, error) {
	var release Release
	if err := c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo), true, &release); err != nil {
		return nil, err
	}

	return &release, nil
}

// GetGist fetches a gist's file listing. The call is always unauthenticated:
// workflow tokens historically lack gist scope and get rejected, while
// anonymous access to public gists always works.
func (c *Client) GetGist(ctx context.Context, id string) (*Gist, error) {
	var gist Gist
	if err := c.getJSON(ctx, fmt.Sprintf("%s/gists/%s", c.baseURL, id), false, &gist); err != nil {
		return nil, err
	}

	return &gist, nil
}

// FetchHead downloads at most n bytes from a raw content URL, without
// credentials and without retries; callers treat failures as a skip signal.
func (c *Client) FetchHead(ctx context.Context, url string, n int64) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", url, resp.Status)
	}

	head, err := io.ReadAll(io.LimitReader(resp.Body, n))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", url, err)
	}

	return head, nil
}

// RateLimitRemaining returns the last quota value reported by the API,
// or "" if no API response has been seen yet.
func (c *Client) RateLimitRemaining() string {
	return c.rateLimitRemaining
}

// getJSON performs a GET with the client's retry budget and decodes the
// response into out. A 404 escalates immediately; every other failure is
// retried after a fixed delay until the budget runs out.
func (c *Client) getJSON(ctx context.Context, url string, withAuth bool, out any) error {
	var lastErr error

	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			logger.Infof(ctx, "Waiting %s before retry (%d/%d)", c.retryDelay, attempt, c.maxAttempts)

			if err := sleep(ctx, c.retryDelay); err != nil {
				return err
			}
		}

		lastErr = c.tryJSON(ctx, url, withAuth, out)
		if lastErr == nil {
			return nil
		}

		if errors.Is(lastErr, ErrNotFound) || ctx.Err() != nil {
			return lastErr
		}

		logger.Warnf(ctx, "Request to %s failed: %v", url, lastErr)
	}

	return fmt.Errorf("request failed after %d attempts: %w", c.maxAttempts, lastErr)
}

// tryJSON is a single request attempt.
func (c *Client) tryJSON(ctx context.Context, url string, withAuth bool, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("User-Agent", c.userAgent)

	if withAuth && c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", url, err)
	}

	defer func() { _ = resp.Body.Close() }()

	if remaining := resp.Header.Get(rateLimitRemainingHeader); remaining != "" {
		c.rateLimitRemaining = remaining
	}

	switch resp.StatusCode {
	case http.StatusOK:
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response from %s: %w", url, err)
		}

		return nil

	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, url)

	case http.StatusForbidden:
		// Rate limiting and permission denial share the status code and
		// cannot be told apart reliably; both are retried, only the log
		// message differs.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyLimit))
		if strings.Contains(strings.ToLower(string(body)), "rate limit") || c.rateLimitRemaining == "0" {
			logger.Warnf(ctx, "Rate limit exceeded, remaining quota: %s", c.rateLimitRemaining)
		} else {
			logger.Warnf(ctx, "Permission denied (403) for %s, possibly a private resource", url)
		}

		return fmt.Errorf("forbidden: %s", url)

	default:
		return fmt.Errorf("unexpected status %s from %s", resp.Status, url)
	}
}

// sleep waits for the duration unless the context is canceled first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
