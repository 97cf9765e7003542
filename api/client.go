// Package api issues Livefyre REST calls for networks, sites and collections.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

var tracer = otel.Tracer("livefyre/api")

const (
	defaultTokenTTL = livefyre.DefaultExpires - time.Hour
	mimeJSON        = "application/json"
)

// Client performs Livefyre API operations over a client.Sender.
type Client struct {
	sender   client.Sender
	logger   *zap.Logger
	tokens   *cache.Cache
	tokenTTL time.Duration
}

type Option func(*Client)

func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) { c.logger = logger }
}

// WithTokenTTL sets how long a system token is reused. Zero disables reuse.
// Values that would outlive the token are clamped to an hour short of expiry.
func WithTokenTTL(ttl time.Duration) Option {
	return func(c *Client) { c.tokenTTL = ttl }
}

func New(sender client.Sender, opts ...Option) *Client {
	c := &Client{
		sender:   sender,
		logger:   zap.NewNop(),
		tokenTTL: defaultTokenTTL,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.tokenTTL > defaultTokenTTL {
		c.logger.Warn("token ttl exceeds system token lifetime, clamping",
			zap.Duration("requested", c.tokenTTL),
			zap.Duration("ttl", defaultTokenTTL),
		)
		c.tokenTTL = defaultTokenTTL
	}
	c.tokens = cache.New(c.tokenTTL, time.Hour)
	return c
}

// systemToken returns a cached system token for network, signing a new one when needed.
func (c *Client) systemToken(network *livefyre.Network) (string, error) {
	if c.tokenTTL <= 0 {
		return network.BuildSystemToken()
	}

	key := network.URN()
	if x, found := c.tokens.Get(key); found {
		return x.(string), nil
	}

	token, err := network.BuildSystemToken()
	if err != nil {
		return "", err
	}
	c.tokens.Set(key, token, cache.DefaultExpiration)
	return token, nil
}

func lftokenHeader(token string) http.Header {
	return http.Header{"Authorization": {"lftoken " + token}}
}

func jsonHeader(token string) http.Header {
	h := lftokenHeader(token)
	h.Set("Content-Type", mimeJSON)
	h.Set("Accept", mimeJSON)
	return h
}

// call sends req and fails with a RemoteServiceError unless the status is want.
func (c *Client) call(ctx context.Context, op string, req client.Request, want int) ([]byte, error) {
	resp, err := c.sender.Send(ctx, req)
	if err != nil {
		c.logger.Error("livefyre request failed", zap.String("op", op), zap.Error(err))
		return nil, errors.Wrap(err, op)
	}
	if resp.StatusCode != want {
		c.logger.Warn("unexpected livefyre status",
			zap.String("op", op),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &livefyre.RemoteServiceError{Op: op, StatusCode: resp.StatusCode, Body: string(resp.Body)}
	}
	return resp.Body, nil
}

type envelope[T any] struct {
	Data T `json:"data"`
}

func decodeData[T any](op string, body []byte) (T, error) {
	var env envelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		var zero T
		return zero, errors.Wrapf(err, "%s: decode response", op)
	}
	return env.Data, nil
}

func marshal(op string, v any) ([]byte, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrapf(err, "%s: encode request", op)
	}
	return b, nil
}
