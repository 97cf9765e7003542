package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "livefyre-go/1.0"
)

var tracer = otel.Tracer("livefyre/client")

// Request is one outbound call to a Livefyre API.
type Request struct {
	Method string
	URL    string
	Query  url.Values
	Header http.Header
	Body   []byte
}

// Response is the status and raw body of a completed call.
type Response struct {
	StatusCode int
	Body       []byte
}

// Sender performs a single request without retrying.
type Sender interface {
	Send(ctx context.Context, req Request) (Response, error)
}

type Options struct {
	Timeout   time.Duration
	UserAgent string
	Logger    *zap.Logger
	Metrics   *Metrics
}

// Client is the net/http implementation of Sender.
type Client struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
	metrics   *Metrics
}

func New(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = defaultUserAgent
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	httpClient := http.Client{
		Timeout: opts.Timeout,
	}

	c := &Client{
		client:    &httpClient,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
		metrics:   opts.Metrics,
	}
	httpClient.Transport = c
	return c
}

func (c *Client) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", c.userAgent)
	return http.DefaultTransport.RoundTrip(req)
}

func (c *Client) Send(ctx context.Context, r Request) (Response, error) {
	ctx, span := tracer.Start(ctx, "Client.Send", trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()

	target, err := url.Parse(r.URL)
	if err != nil {
		span.RecordError(err)
		return Response{}, errors.Wrap(err, "parse url")
	}
	if len(r.Query) > 0 {
		q := target.Query()
		for k, vs := range r.Query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		target.RawQuery = q.Encode()
	}

	span.SetAttributes(
		attribute.String("http.method", r.Method),
		attribute.String("http.host", target.Host),
		attribute.String("http.path", target.Path),
	)

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, r.Method, target.String(), body)
	if err != nil {
		span.RecordError(err)
		return Response{}, errors.Wrap(err, "create request")
	}
	for k, vs := range r.Header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	c.logger.Debug("sending request",
		zap.String("method", r.Method),
		zap.String("host", target.Host),
		zap.String("path", target.Path),
	)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		c.metrics.observe(r.Method, target.Host, "error", time.Since(start))
		span.RecordError(err)
		span.SetStatus(codes.Error, "request failed")
		return Response{}, errors.Wrap(err, "perform request")
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		span.RecordError(err)
		return Response{}, errors.Wrap(err, "read response body")
	}

	elapsed := time.Since(start)
	c.metrics.observe(r.Method, target.Host, strconv.Itoa(resp.StatusCode), elapsed)
	span.SetAttributes(attribute.Int("http.status_code", resp.StatusCode))

	c.logger.Debug("received response",
		zap.String("method", r.Method),
		zap.String("path", target.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", elapsed),
	)

	return Response{StatusCode: resp.StatusCode, Body: respBody}, nil
}

var _ Sender = (*Client)(nil)
