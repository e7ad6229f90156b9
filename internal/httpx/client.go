// Package httpx is the shared transport of the facade: one configured HTTP
// client wrapped in an explicit middleware chain.
package httpx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	HeaderRequestID = "X-Request-ID"
	ContentTypeJSON = "application/json"

	DefaultTimeout = 10 * time.Second

	maxResponseBody = 16 << 20
)

// Request is one outbound call. Body is JSON encoded unless it is []byte.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Header http.Header
	Body   any

	payload []byte
}

type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

type Handler func(ctx context.Context, req *Request) (*Response, error)

type Middleware func(next Handler) Handler

// Chain wraps h so that mws[0] is the outermost middleware.
func Chain(h Handler, mws ...Middleware) Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}

type Client struct {
	baseURL string
	http    *http.Client
	mws     []Middleware
	handler Handler
}

type Option func(*Client)

func WithMiddleware(mws ...Middleware) Option {
	return func(c *Client) { c.mws = append(c.mws, mws...) }
}

// WithHTTPClient replaces the underlying client. Its Timeout is kept as is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// NewClient builds the transport. Classification of failures is always the
// innermost step; extra middlewares run around it in the given order.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	mws := append(append([]Middleware{}, c.mws...), Classify())
	c.handler = Chain(c.send, mws...)
	return c
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do runs req through the middleware chain. On a non-2xx status both the
// response and an *apierr.Error are returned.
func (c *Client) Do(ctx context.Context, req *Request) (*Response, error) {
	if req.Header == nil {
		req.Header = http.Header{}
	}
	if req.Body != nil && req.payload == nil {
		b, err := encodeBody(req.Body)
		if err != nil {
			return nil, fmt.Errorf("encode %s %s: %w", req.Method, req.Path, err)
		}
		req.payload = b
	}
	return c.handler(ctx, req)
}

func (c *Client) Get(ctx context.Context, path string, query url.Values, out any) error {
	return c.call(ctx, &Request{Method: http.MethodGet, Path: path, Query: query}, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPost, Path: path, Body: body}, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPut, Path: path, Body: body}, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out any) error {
	return c.call(ctx, &Request{Method: http.MethodPatch, Path: path, Body: body}, out)
}

func (c *Client) Delete(ctx context.Context, path string, out any) error {
	return c.call(ctx, &Request{Method: http.MethodDelete, Path: path}, out)
}

// Raw fetches a binary resource and returns its body and content type.
func (c *Client) Raw(ctx context.Context, path string) ([]byte, string, error) {
	req := &Request{Method: http.MethodGet, Path: path, Header: http.Header{"Accept": {"*/*"}}}
	res, err := c.Do(ctx, req)
	if err != nil {
		return nil, "", err
	}
	return res.Body, res.Header.Get("Content-Type"), nil
}

func (c *Client) call(ctx context.Context, req *Request, out any) error {
	res, err := c.Do(ctx, req)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(res.Body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(res.Body, out); err != nil {
		return fmt.Errorf("decode %s %s: %w", req.Method, req.Path, err)
	}
	return nil
}

// send is the end of the chain: exactly one HTTP round trip.
func (c *Client) send(ctx context.Context, req *Request) (*Response, error) {
	target := c.baseURL + req.Path
	if len(req.Query) > 0 {
		target += "?" + req.Query.Encode()
	}
	var body io.Reader
	if req.payload != nil {
		body = bytes.NewReader(req.payload)
	}
	hreq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, err
	}
	hreq.Header.Set("Content-Type", ContentTypeJSON)
	hreq.Header.Set("Accept", ContentTypeJSON)
	for k, vs := range req.Header {
		hreq.Header[k] = vs
	}

	res, err := c.http.Do(hreq)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	b, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBody))
	if err != nil {
		return nil, err
	}
	return &Response{StatusCode: res.StatusCode, Header: res.Header, Body: b}, nil
}

func encodeBody(v any) ([]byte, error) {
	switch b := v.(type) {
	case []byte:
		return b, nil
	case json.RawMessage:
		return b, nil
	default:
		return json.Marshal(v)
	}
}
