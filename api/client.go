// Package api is the HTTP adapter for the lifting-log service. Every
// method returns a typed outcome: sentinel errors for authoritative
// rejections, *TransientError for network and server hiccups. Nothing
// panics across this boundary.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultGETRetries = 2
)

// Client talks to a lifting-log server.
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        zerolog.Logger
	getRetries uint64
}

// Option modifies a Client during construction.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client (primarily for
// timeouts and tests).
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log zerolog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

// WithGETRetries sets how many times idempotent reads are retried on
// transient failures. Writes are never retried.
func WithGETRetries(retries uint64) Option {
	return func(c *Client) {
		c.getRetries = retries
	}
}

// New creates a Client for the server at baseURL.
func New(baseURL string, options ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("[api.New] baseURL is required")
	}

	client := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: defaultTimeout},
		log:        zerolog.Nop(),
		getRetries: defaultGETRetries,
	}

	for _, opt := range options {
		opt(client)
	}

	return client, nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errors.Wrap(err, "[api.newRequest] http.NewRequestWithContext")
	}
	req.Header.Set("X-Request-ID", uuid.New().String())
	return req, nil
}

// do executes the request. Transport-level failures come back as
// *TransientError; the response status is not inspected here.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	c.log.Debug().
		Str("request_id", req.Header.Get("X-Request-ID")).
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Msg("api request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TransientError{Cause: err}
	}
	return resp, nil
}

// statusError classifies a non-2xx response: 5xx and 429 are
// transient, everything else is authoritative.
func (c *Client) statusError(resp *http.Response) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode, Detail: c.errorDetail(resp)}
	if resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests {
		return &TransientError{Cause: statusErr}
	}
	return statusErr
}

// roundTrip sends a single JSON request and decodes the JSON response
// into out when out is non-nil.
func (c *Client) roundTrip(ctx context.Context, method, path, bearer string, in, out any) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Wrap(err, "[api.roundTrip] marshal request body")
		}
		body = bytes.NewReader(payload)
	}

	req, err := c.newRequest(ctx, method, path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.statusError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return errors.Wrap(err, "[api.roundTrip] decode response")
		}
	}
	return nil
}

// getJSON is roundTrip for idempotent reads, with bounded exponential
// backoff on transient failures.
func (c *Client) getJSON(ctx context.Context, path, bearer string, out any) error {
	operation := func() error {
		err := c.roundTrip(ctx, http.MethodGet, path, bearer, nil, out)
		if err != nil && !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), c.getRetries), ctx)
	return backoff.Retry(operation, policy)
}
