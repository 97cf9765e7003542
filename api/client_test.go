package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

const (
	testNetworkName = "test.fyre.co"
	testNetworkKey  = "testkeytest"
	testSiteID      = "314159"
	testSiteKey     = "sitekeytest"
)

// fakeSender records requests and replays queued responses in order.
type fakeSender struct {
	requests  []client.Request
	responses []client.Response
	err       error
}

func (f *fakeSender) reply(status int, body string) *fakeSender {
	f.responses = append(f.responses, client.Response{StatusCode: status, Body: []byte(body)})
	return f
}

func (f *fakeSender) Send(_ context.Context, req client.Request) (client.Response, error) {
	f.requests = append(f.requests, req)
	if f.err != nil {
		return client.Response{}, f.err
	}
	if len(f.responses) == 0 {
		return client.Response{StatusCode: http.StatusInternalServerError}, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeSender) last(t *testing.T) client.Request {
	t.Helper()
	require.NotEmpty(t, f.requests)
	return f.requests[len(f.requests)-1]
}

func decodeBody(t *testing.T, req client.Request) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &m))
	return m
}

func newTestNetwork() *livefyre.Network {
	return livefyre.NewNetwork(testNetworkName, testNetworkKey)
}

func TestSystemTokenIsCached(t *testing.T) {
	network := newTestNetwork()
	c := New(&fakeSender{})

	first, err := c.systemToken(network)
	require.NoError(t, err)
	second, err := c.systemToken(network)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.True(t, network.ValidateSystemToken(first))
}

func TestSystemTokenWithoutCache(t *testing.T) {
	network := newTestNetwork()
	c := New(&fakeSender{}, WithTokenTTL(0))

	token, err := c.systemToken(network)
	require.NoError(t, err)
	assert.True(t, network.ValidateSystemToken(token))
}

func TestCallUnexpectedStatus(t *testing.T) {
	sender := (&fakeSender{}).reply(http.StatusForbidden, "nope")
	c := New(sender)

	_, err := c.call(context.Background(), "lookup", client.Request{Method: http.MethodGet, URL: "http://x"}, http.StatusOK)
	require.ErrorIs(t, err, livefyre.ErrRemoteService)

	var remote *livefyre.RemoteServiceError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusForbidden, remote.StatusCode)
	assert.Equal(t, "nope", remote.Body)
}

func TestTokenTTLClampedBelowExpiry(t *testing.T) {
	c := New(&fakeSender{}, WithTokenTTL(48*time.Hour))
	assert.Equal(t, defaultTokenTTL, c.tokenTTL)
	assert.Less(t, c.tokenTTL, livefyre.DefaultExpires)

	network := newTestNetwork()
	token, err := c.systemToken(network)
	require.NoError(t, err)

	_, expiresAt, found := c.tokens.GetWithExpiration(network.URN())
	require.True(t, found)
	claims, err := network.DecodeUserToken(token)
	require.NoError(t, err)
	expires, ok := claims.Int64("expires")
	require.True(t, ok)
	assert.True(t, expiresAt.Unix() < expires, "cached token must be evicted before it expires")

	short := New(&fakeSender{}, WithTokenTTL(time.Minute))
	assert.Equal(t, time.Minute, short.tokenTTL)
}
