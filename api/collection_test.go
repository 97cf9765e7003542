package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/livefyre"
)

func newTestCollection(t *testing.T) *livefyre.Collection {
	t.Helper()
	site := newTestNetwork().Site(testSiteID, testSiteKey)
	col, err := site.Collection("articleId", "title", "http://livefyre.com", nil)
	require.NoError(t, err)
	return col
}

func TestCreateCollection(t *testing.T) {
	sender := (&fakeSender{}).reply(http.StatusOK, `{"status":"ok","data":{"collectionId":"12345"}}`)
	c := New(sender)
	col := newTestCollection(t)

	outcome, err := c.CreateOrUpdateCollection(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, livefyre.SyncCreated, outcome)

	id, err := col.CollectionID()
	require.NoError(t, err)
	assert.Equal(t, "12345", id)

	req := sender.last(t)
	assert.Equal(t, http.MethodPost, req.Method)
	assert.Equal(t, "https://test.quill.fyre.co/api/v3.0/site/314159/collection/create/", req.URL)
	assert.Equal(t, "1", req.Query.Get("sync"))

	body := decodeBody(t, req)
	assert.Equal(t, "articleId", body["articleId"])
	assert.NotEmpty(t, body["checksum"])
	assert.NotEmpty(t, body["collectionMeta"])
}

func TestCreateCollectionConflictUpdates(t *testing.T) {
	sender := (&fakeSender{}).
		reply(http.StatusConflict, `{}`).
		reply(http.StatusOK, `{}`)
	c := New(sender)
	col := newTestCollection(t)

	outcome, err := c.CreateOrUpdateCollection(context.Background(), col)
	require.NoError(t, err)
	assert.Equal(t, livefyre.SyncUpdated, outcome)

	require.Len(t, sender.requests, 2)
	assert.Equal(t, "https://test.quill.fyre.co/api/v3.0/site/314159/collection/update/", sender.requests[1].URL)
	assert.Equal(t, sender.requests[0].Body, sender.requests[1].Body)

	_, err = col.CollectionID()
	assert.ErrorIs(t, err, livefyre.ErrCollectionIDUnset)
}

func TestCreateCollectionUpdateFails(t *testing.T) {
	sender := (&fakeSender{}).
		reply(http.StatusConflict, `{}`).
		reply(http.StatusInternalServerError, `boom`)
	c := New(sender)

	outcome, err := c.CreateOrUpdateCollection(context.Background(), newTestCollection(t))
	assert.Equal(t, livefyre.SyncFailed, outcome)
	assert.ErrorIs(t, err, livefyre.ErrRemoteService)
}

func TestCreateCollectionUnexpectedStatus(t *testing.T) {
	sender := (&fakeSender{}).reply(http.StatusBadRequest, `bad`)
	c := New(sender)

	outcome, err := c.CreateOrUpdateCollection(context.Background(), newTestCollection(t))
	assert.Equal(t, livefyre.SyncFailed, outcome)

	var remote *livefyre.RemoteServiceError
	require.ErrorAs(t, err, &remote)
	assert.Equal(t, http.StatusBadRequest, remote.StatusCode)
	assert.Len(t, sender.requests, 1)
}

func TestCreateCollectionTransportError(t *testing.T) {
	sender := &fakeSender{err: errors.New("dial failed")}
	c := New(sender)

	outcome, err := c.CreateOrUpdateCollection(context.Background(), newTestCollection(t))
	assert.Equal(t, livefyre.SyncFailed, outcome)
	assert.ErrorContains(t, err, "dial failed")
}

func TestGetCollectionContent(t *testing.T) {
	sender := (&fakeSender{}).reply(http.StatusOK, `{"headDocument":{}}`)
	c := New(sender)
	site := newTestNetwork().Site(testSiteID, testSiteKey)
	col, err := site.Collection("???", "title", "http://livefyre.com", nil)
	require.NoError(t, err)

	content, err := c.GetCollectionContent(context.Background(), col)
	require.NoError(t, err)
	assert.JSONEq(t, `{"headDocument":{}}`, string(content))
	assert.Equal(t, "https://test.bootstrap.fyre.co/bs3/test.fyre.co/314159/Pz8_/init", sender.last(t).URL)
}
