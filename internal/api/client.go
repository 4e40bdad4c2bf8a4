package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/atomicstack/evsched/internal/logging/events"
	"github.com/atomicstack/evsched/internal/notify"
)

// GenericFailureMessage is enqueued once for every failed, non-silent call.
const GenericFailureMessage = "An error occurred. Please try again."

const (
	defaultTimeout   = 10 * time.Second
	defaultDetailTTL = 30 * time.Second
	maxBodyBytes     = 4 << 20
)

// Options configures a Client.
type Options struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Notifier   notify.Notifier
	DetailTTL  time.Duration
}

// Request describes one outbound call.
type Request struct {
	Method   string
	Path     string
	RawQuery string
	JSON     interface{}
	Form     url.Values
	// Silent suppresses the generic failure notification for this call.
	Silent bool
	// Out, when non-nil, receives the decoded and validated JSON body.
	Out interface{}
}

// Response is the raw outcome of a successful call.
type Response struct {
	Status    int
	Body      []byte
	RequestID string
}

// Client wraps outbound calls to the event scheduler server.
type Client struct {
	base     *url.URL
	http     *http.Client
	notifier notify.Notifier
	validate *validator.Validate
	details  *cache.Cache
	group    singleflight.Group
}

// New constructs a client for the server at opts.BaseURL.
func New(opts Options) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(opts.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseURL)
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	ttl := opts.DetailTTL
	if ttl <= 0 {
		ttl = defaultDetailTTL
	}
	return &Client{
		base:     base,
		http:     httpClient,
		notifier: opts.Notifier,
		validate: validator.New(),
		details:  cache.New(ttl, 2*ttl),
	}, nil
}

// URL resolves a server path against the base URL.
func (c *Client) URL(path, rawQuery string) string {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	u.RawQuery = rawQuery
	return u.String()
}

// Call issues exactly one request. On failure it enqueues one generic error
// notification (unless req.Silent) and returns the error to the caller.
func (c *Client) Call(ctx context.Context, req Request) (*Response, error) {
	id := uuid.NewString()
	resp, err := c.do(ctx, id, req)
	if err != nil {
		events.API.Failure(id, err, req.Silent)
		if !req.Silent && c.notifier != nil {
			c.notifier.Enqueue(GenericFailureMessage, notify.KindError)
		}
		return nil, err
	}
	return resp, nil
}

func (c *Client) do(ctx context.Context, id string, req Request) (*Response, error) {
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	target := c.URL(req.Path, req.RawQuery)

	var (
		body        io.Reader
		contentType = "application/json"
	)
	switch {
	case req.Form != nil:
		body = strings.NewReader(req.Form.Encode())
		contentType = "application/x-www-form-urlencoded"
	case req.JSON != nil:
		payload, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", contentType)
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Request-ID", id)

	events.API.Request(id, method, target)
	httpResp, err := c.http.Do(httpReq)
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	defer httpResp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(httpResp.Body, maxBodyBytes))
	if err != nil {
		return nil, &TransportError{Err: err}
	}
	events.API.Response(id, httpResp.StatusCode)
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return nil, &HTTPStatusError{Code: httpResp.StatusCode, Method: method, URL: target}
	}

	if req.Out != nil {
		if err := json.Unmarshal(data, req.Out); err != nil {
			return nil, &SchemaError{Err: err}
		}
		if err := c.validate.Struct(req.Out); err != nil {
			return nil, &SchemaError{Err: err}
		}
	}
	return &Response{Status: httpResp.StatusCode, Body: data, RequestID: id}, nil
}
