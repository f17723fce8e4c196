// Package githubapi talks to the GitHub REST API and the raw content host.
// Every request is bounded by its own timeout; the access token is only ever
// sent to the API host so bulk README downloads stay anonymous.

package githubapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/thep200/github-showcase/cfg"
	"github.com/thep200/github-showcase/internal/limiter"
	"github.com/thep200/github-showcase/pkg/log"
)

const (
	acceptHeader  = "application/vnd.github+json"
	versionHeader = "X-GitHub-Api-Version"
)

type RequestOptions struct {
	Method  string
	Headers map[string]string
}

type Response struct {
	URL        string
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Fetcher struct {
	Logger      log.Logger
	Config      *cfg.Config
	client      *http.Client
	apiHost     string
	rateLimiter *limiter.RateLimiter
}

// NewFetcher uses http.DefaultClient when client is nil. Timeouts come from
// the per-request bound, not from the client.
func NewFetcher(logger log.Logger, config *cfg.Config, client *http.Client) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	apiHost := ""
	if u, err := url.Parse(config.GithubApi.ApiUrl); err == nil {
		apiHost = u.Host
	}
	return &Fetcher{
		Logger:      logger,
		Config:      config,
		client:      client,
		apiHost:     apiHost,
		rateLimiter: limiter.NewRateLimiter(config.GithubApi.RequestsPerSecond),
	}
}

// ApplyHeaders sets the API headers on h. Authorization is added only for the
// API host and only when a token is configured.
func (f *Fetcher) ApplyHeaders(rawURL string, h http.Header) {
	h.Set("Accept", acceptHeader)
	h.Set(versionHeader, f.Config.GithubApi.ApiVersion)
	if f.Config.GithubApi.UserAgent != "" {
		h.Set("User-Agent", f.Config.GithubApi.UserAgent)
	}

	token := f.Config.Token()
	if token == "" {
		return
	}
	u, err := url.Parse(rawURL)
	if err != nil || u.Host != f.apiHost {
		return
	}
	h.Set("Authorization", "Bearer "+token)
}

// Request performs one bounded request. It returns *TimeoutError when the
// bound is exceeded and *RemoteError on a non-2xx status.
func (f *Fetcher) Request(ctx context.Context, rawURL string, opts RequestOptions, timeout time.Duration) (*Response, error) {
	if err := f.rateLimiter.Wait(ctx, time.Duration(f.Config.GithubApi.ThrottleDelay)*time.Millisecond); err != nil {
		return nil, err
	}

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	method := opts.Method
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(reqCtx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("cannot build request: %w", err)
	}
	for k, v := range opts.Headers {
		req.Header.Set(k, v)
	}
	f.ApplyHeaders(rawURL, req.Header)

	f.Logger.Debug(ctx, "GET %s", rawURL)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, f.classify(ctx, reqCtx, rawURL, timeout, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, f.classify(ctx, reqCtx, rawURL, timeout, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		remoteErr := &RemoteError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
		f.handleRateLimit(ctx, resp, remoteErr)
		return nil, remoteErr
	}

	return &Response{
		URL:        rawURL,
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       body,
	}, nil
}

func (f *Fetcher) classify(parent, reqCtx context.Context, rawURL string, timeout time.Duration, err error) error {
	if parent.Err() != nil {
		return parent.Err()
	}
	if errors.Is(reqCtx.Err(), context.DeadlineExceeded) {
		return &TimeoutError{URL: rawURL, Timeout: timeout}
	}
	return fmt.Errorf("cannot send request to %s: %w", rawURL, err)
}

// handleRateLimit marks remoteErr when GitHub reports an exhausted quota.
// The caller is not made to wait.
func (f *Fetcher) handleRateLimit(ctx context.Context, resp *http.Response, remoteErr *RemoteError) {
	if resp.StatusCode != http.StatusForbidden && resp.StatusCode != http.StatusTooManyRequests {
		return
	}
	if resp.Header.Get("X-RateLimit-Remaining") != "0" {
		return
	}

	remoteErr.RateLimited = true
	if reset, err := strconv.ParseInt(resp.Header.Get("X-RateLimit-Reset"), 10, 64); err == nil {
		remoteErr.ResetAt = time.Unix(reset, 0).UTC()
	}
	f.Logger.Warn(ctx, "Rate limit hit for %s, resets at %s", remoteErr.URL, remoteErr.ResetAt.Format(time.RFC3339))
}
