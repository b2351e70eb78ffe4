package blockfrost

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	eParser "github.com/go-errors/errors"
	"github.com/valyala/fasthttp"
)

var (
	// ErrNotFound means the requested component does not exist.
	ErrNotFound = errors.New("not found")
	// ErrBadRequest means the request was rejected as malformed.
	ErrBadRequest = errors.New("bad request")
	// ErrUnauthorized means the project id is missing or invalid.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrRateLimited covers usage limit, rate limit and auto-ban responses.
	ErrRateLimited = errors.New("rate limited")
	// ErrServer means Blockfrost failed to serve the request.
	ErrServer = errors.New("internal server error")
	// ErrUnknown is any other non-200 status.
	ErrUnknown = errors.New("unknown error")
)

const defaultTimeout = 10 * time.Second

// Client is a minimal Blockfrost REST client.
type Client struct {
	baseURL   string
	projectID string
	timeout   time.Duration
	http      *fasthttp.Client
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the deadline of a single request.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithHTTPClient replaces the underlying fasthttp client.
func WithHTTPClient(client *fasthttp.Client) Option {
	return func(c *Client) {
		c.http = client
	}
}

// WithMaxConnsPerHost limits concurrent connections to the api host.
func WithMaxConnsPerHost(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.http.MaxConnsPerHost = n
		}
	}
}

// NewClient creates a client for the given network base url,
// e.g., https://cardano-mainnet.blockfrost.io/api/v0.
func NewClient(baseURL, projectID string, opts ...Option) *Client {
	c := &Client{
		baseURL:   baseURL,
		projectID: projectID,
		timeout:   defaultTimeout,
		http: &fasthttp.Client{
			Name:               "asset-badge",
			MaxConnWaitTimeout: 10 * time.Second,
			MaxConnsPerHost:    20,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

type errorResponse struct {
	StatusCode int    `json:"status_code"`
	Error      string `json:"error"`
	Message    string `json:"message"`
}

func (c *Client) get(ctx context.Context, route string, target interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer func() {
		fasthttp.ReleaseRequest(req)
		fasthttp.ReleaseResponse(resp)
	}()

	req.Header.SetMethod("GET")
	req.Header.Set("project_id", c.projectID)
	req.SetRequestURI(c.baseURL + route)

	deadline := time.Now().Add(c.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	// fasthttp has no context support, the deadline is the closest match.
	if err := c.http.DoDeadline(req, resp, deadline); err != nil {
		return eParser.WrapPrefix(err, "GET "+route, 0)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	body := resp.Body()
	status := resp.StatusCode()

	if status == fasthttp.StatusOK {
		if err := json.Unmarshal(body, target); err != nil {
			return eParser.WrapPrefix(err, "decode "+route, 0)
		}
		return nil
	}

	return statusError(status, route, body)
}

func statusError(status int, route string, body []byte) error {
	errRes := &errorResponse{}
	msg := string(body)
	if err := json.Unmarshal(body, errRes); err == nil && errRes.Message != "" {
		msg = errRes.Message
	}

	switch {
	case status == fasthttp.StatusNotFound:
		return eParser.WrapPrefix(ErrNotFound, route, 0)
	case status == fasthttp.StatusBadRequest:
		return eParser.WrapPrefix(ErrBadRequest, msg, 0)
	case status == fasthttp.StatusForbidden:
		return eParser.WrapPrefix(ErrUnauthorized, msg, 0)
	case status == fasthttp.StatusPaymentRequired,
		status == fasthttp.StatusTeapot,
		status == fasthttp.StatusTooManyRequests:
		return eParser.WrapPrefix(ErrRateLimited, msg, 0)
	case status >= 500:
		return eParser.WrapPrefix(ErrServer, fmt.Sprintf("status=%d %s", status, msg), 0)
	}

	return eParser.WrapPrefix(ErrUnknown, fmt.Sprintf("status=%d %s", status, msg), 0)
}
