package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/livefyre"
)

func TestFormatCursorTime(t *testing.T) {
	ts := time.Date(2024, 3, 5, 7, 8, 9, 123456789, time.FixedZone("x", 3600))
	assert.Equal(t, "2024-03-05T06:08:09.123Z", FormatCursorTime(ts))
}

func TestGetTimelineStreamValidation(t *testing.T) {
	sender := &fakeSender{}
	c := New(sender)

	_, err := c.GetTimelineStream(context.Background(), newTestNetwork(), "", 10, "", "")
	assert.ErrorIs(t, err, livefyre.ErrInvalidArgument)
	assert.Empty(t, sender.requests)
}

func TestTopicStreamCursor(t *testing.T) {
	network := newTestNetwork()
	topic, err := livefyre.NewTopic(network, "1", "One")
	require.NoError(t, err)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	sender := (&fakeSender{}).
		reply(http.StatusOK, `{"data":{"states":{}},"meta":{"cursor":{"hasPrev":true,"hasNext":true,"prev":"2023-12-31T00:00:00.000Z","next":"2024-01-01T00:00:00.000Z"}}}`).
		reply(http.StatusOK, `{"data":{},"meta":{"cursor":{"hasPrev":false,"hasNext":true,"prev":null,"next":"2023-12-31T00:00:00.000Z"}}}`)
	c := New(sender)

	cursor := c.TopicStreamCursor(network, topic, 20, start)
	assert.Equal(t, "urn:livefyre:test.fyre.co:topic=1:topicStream", cursor.Resource())
	assert.True(t, cursor.HasNext())

	page, err := cursor.Next(context.Background())
	require.NoError(t, err)
	assert.True(t, page.Meta.Cursor.HasPrev)
	assert.NotEmpty(t, page.Raw)

	req := sender.last(t)
	assert.Equal(t, "https://test.bootstrap.fyre.co/api/v4/timeline/", req.URL)
	assert.Equal(t, cursor.Resource(), req.Query.Get("resource"))
	assert.Equal(t, "20", req.Query.Get("limit"))
	assert.Equal(t, "2024-01-01T00:00:00.000Z", req.Query.Get("until"))
	assert.False(t, req.Query.Has("since"))
	assert.True(t, cursor.HasNext())
	assert.True(t, cursor.HasPrevious())

	_, err = cursor.Next(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2023-12-31T00:00:00.000Z", sender.last(t).Query.Get("until"))
	assert.False(t, cursor.HasNext())
}

func TestPersonalStreamCursorPrevious(t *testing.T) {
	network := newTestNetwork()
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	sender := (&fakeSender{}).
		reply(http.StatusOK, `{"data":{},"meta":{"cursor":{"hasPrev":true,"hasNext":false,"prev":"2024-01-01T00:00:00.000Z","next":null}}}`)
	c := New(sender)

	cursor := c.PersonalStreamCursor(network, "alice", 5, start)
	assert.Equal(t, "urn:livefyre:test.fyre.co:user=alice:personalStream", cursor.Resource())

	_, err := cursor.Previous(context.Background())
	require.NoError(t, err)

	req := sender.last(t)
	assert.Equal(t, "2024-01-01T00:00:00.000Z", req.Query.Get("since"))
	assert.False(t, req.Query.Has("until"))
	assert.False(t, cursor.HasPrevious())
	assert.True(t, cursor.HasNext())
}

func TestCursorKeepsStateOnError(t *testing.T) {
	sender := (&fakeSender{}).reply(http.StatusBadGateway, "")
	c := New(sender)
	cursor := c.PersonalStreamCursor(newTestNetwork(), "alice", 5, time.Unix(0, 0))

	_, err := cursor.Next(context.Background())
	assert.ErrorIs(t, err, livefyre.ErrRemoteService)
	assert.True(t, cursor.HasNext())
}
