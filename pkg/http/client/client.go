package client

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/swellbound/surfcast/internal/observability/metrics"
)

type Response struct {
	StatusCode int
	Body       []byte
}

type Interface interface {
	Get(ctx context.Context, path string) (*Response, error)
}

type Client struct {
	name       string
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	retry      RetryPolicy
	GetFunc    func(ctx context.Context, path string) (*Response, error)
}

type Options struct {
	// Name labels this client's retry metrics, e.g. "model" or "buoy".
	Name    string
	BaseURL string
	Timeout time.Duration
	// Headers are attached to every request, e.g. an API key header.
	Headers map[string]string
	// Retry overrides the default retry policy when non-nil.
	Retry *RetryPolicy
}

func New(opts Options) *Client {
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}

	retry := DefaultRetryPolicy()
	if opts.Retry != nil {
		retry = *opts.Retry
		if retry.sleep == nil {
			retry.sleep = sleepContext
		}
	}

	return &Client{
		name:    opts.Name,
		baseURL: opts.BaseURL,
		headers: opts.Headers,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
		},
		retry: retry,
	}
}

// Get fetches the given path, retrying transient failures per the client's
// retry policy. Callers see only the final success or a terminal
// *ProviderError.
func (c *Client) Get(ctx context.Context, path string) (*Response, error) {
	if c.GetFunc != nil {
		return c.GetFunc(ctx, path)
	}

	var fullURL string
	if c.baseURL == "" {
		fullURL = path // If no base URL, treat path as full URL
	} else {
		fullURL = c.baseURL + path
	}

	transientAttempts := 0
	rateLimitAttempts := 0

	for {
		resp, perr := c.doOnce(ctx, fullURL)
		if perr == nil {
			return resp, nil
		}

		switch {
		case perr.Category == CategoryRateLimited && rateLimitAttempts < c.retry.RateLimitRetries:
			rateLimitAttempts++
			metrics.UpstreamRetry(c.name)
			log.Debug().Str("url", fullURL).Int("attempt", rateLimitAttempts).
				Msg("Rate limited, waiting before retry")
		case c.retry.Retryable(perr.Category) && transientAttempts < c.retry.MaxAttempts-1:
			transientAttempts++
			metrics.UpstreamRetry(c.name)
			log.Debug().Str("url", fullURL).Str("category", string(perr.Category)).
				Int("attempt", transientAttempts).Msg("Transient fetch failure, retrying")
		default:
			return nil, perr
		}

		if err := c.retry.wait(ctx, perr.Category); err != nil {
			return nil, &ProviderError{Category: CategoryTimeout, Err: err}
		}
	}
}

func (c *Client) doOnce(ctx context.Context, fullURL string) (*Response, *ProviderError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, &ProviderError{Category: CategoryConnection, Err: err}
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, categorizeTransportError(err)
	}
	defer func(body io.ReadCloser) {
		if closeErr := body.Close(); closeErr != nil {
			log.Debug().Err(closeErr).Msg("Error closing response body")
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, categorizeStatus(resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &ProviderError{Category: CategoryConnection, Err: err}
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
