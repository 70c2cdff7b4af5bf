// SPDX-License-Identifier: Apache-2.0
// Copyright Authors of spyglass

// Package client talks to the spyglass backend over the connect unary JSON
// protocol.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultService is the fully qualified backend service name.
const DefaultService = "proto.Kube"

const (
	contentType     = "application/json"
	protocolHeader  = "Connect-Protocol-Version"
	protocolVersion = "1"
	maxErrorBody    = 64 << 10
)

// Option configures a client.
type Option func(*Client)

// WithHTTPClient swaps the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithService overrides the service name.
func WithService(s string) Option {
	return func(c *Client) {
		if s != "" {
			c.service = s
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) {
		c.log = l
	}
}

// WithTimeout bounds each call.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// Client is a backend connection. It is safe for concurrent use and meant
// to be created once and passed around.
type Client struct {
	base    *url.URL
	service string
	http    *http.Client
	timeout time.Duration
	log     zerolog.Logger
}

// New returns a client for the backend at baseURL.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, ErrNoBackend
	}
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid backend url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid backend url %q: unsupported scheme %q", baseURL, u.Scheme)
	}

	c := Client{
		base:    u,
		service: DefaultService,
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(&c)
	}

	return &c, nil
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string {
	return c.base.String()
}

// GetContexts lists the kube contexts known to the backend, sorted.
func (c *Client) GetContexts(ctx context.Context) ([]string, error) {
	var out contextsReply
	if err := c.call(ctx, "GetContexts", empty{}, &out); err != nil {
		return nil, err
	}
	sort.Strings(out.Contexts)

	return out.Contexts, nil
}

// GetDefaultContext returns the backend's current kube context.
func (c *Client) GetDefaultContext(ctx context.Context) (string, error) {
	var out contextReply
	if err := c.call(ctx, "GetDefaultContext", empty{}, &out); err != nil {
		return "", err
	}

	return out.Context, nil
}

// Discover lists the API groups served by a kube context, sorted by group
// version.
func (c *Client) Discover(ctx context.Context, kubeContext string) ([]API, error) {
	var out discoverReply
	if err := c.call(ctx, "Discover", discoverRequest{Context: kubeContext}, &out); err != nil {
		return nil, err
	}
	kk := make([]string, 0, len(out.Apis))
	for k := range out.Apis {
		kk = append(kk, k)
	}
	sort.Strings(kk)
	apis := make([]API, 0, len(kk))
	for _, k := range kk {
		apis = append(apis, out.Apis[k])
	}

	return apis, nil
}

func (c *Client) endpoint(method string) string {
	return c.base.JoinPath(c.service, method).String()
}

func (c *Client) call(ctx context.Context, method string, in, out any) error {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", method, err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(method), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build %s request: %w", method, err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set(protocolHeader, protocolVersion)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s: %w", method, ctx.Err())
		}
		return fmt.Errorf("%s: %w", method, err)
	}
	defer func() { _ = resp.Body.Close() }()

	c.log.Debug().
		Str("method", method).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("Backend call")

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if errors.Is(err, context.Canceled) || ctx.Err() != nil {
			return fmt.Errorf("%s: %w", method, context.Canceled)
		}
		return fmt.Errorf("decode %s reply: %w", method, err)
	}

	return nil
}

func decodeError(resp *http.Response) error {
	e := StatusError{HTTPStatus: resp.StatusCode}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err := json.Unmarshal(raw, &e); err != nil || e.Code == "" {
		e.Code = codeFromHTTP(resp.StatusCode)
		if e.Message == "" {
			e.Message = strings.TrimSpace(string(raw))
		}
	}

	return &e
}

func codeFromHTTP(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid_argument"
	case http.StatusUnauthorized:
		return "unauthenticated"
	case http.StatusForbidden:
		return "permission_denied"
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusRequestTimeout:
		return CodeDeadlineExceeded
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return CodeUnavailable
	default:
		return "unknown"
	}
}
