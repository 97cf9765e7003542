package api

import (
	"context"
	"time"

	"github.com/totegamma/livefyre"
)

// TimelineCursor pages through a timeline resource. Next moves to older
// items and Previous to newer ones. Not safe for concurrent use.
type TimelineCursor struct {
	client   *Client
	core     livefyre.Core
	resource string
	limit    int

	olderBound  string
	newerBound  string
	hasNext     bool
	hasPrevious bool
}

// NewTimelineCursor starts a cursor at t.
func (c *Client) NewTimelineCursor(core livefyre.Core, resource string, limit int, t time.Time) *TimelineCursor {
	start := FormatCursorTime(t)
	return &TimelineCursor{
		client:      c,
		core:        core,
		resource:    resource,
		limit:       limit,
		olderBound:  start,
		newerBound:  start,
		hasNext:     true,
		hasPrevious: true,
	}
}

// TopicStreamCursor pages through the stream of content tagged with topic.
func (c *Client) TopicStreamCursor(core livefyre.Core, topic livefyre.Topic, limit int, t time.Time) *TimelineCursor {
	return c.NewTimelineCursor(core, topic.ID+":topicStream", limit, t)
}

// PersonalStreamCursor pages through the personal stream of user.
func (c *Client) PersonalStreamCursor(network *livefyre.Network, user string, limit int, t time.Time) *TimelineCursor {
	return c.NewTimelineCursor(network, network.UserURN(user)+":personalStream", limit, t)
}

func (tc *TimelineCursor) Resource() string  { return tc.resource }
func (tc *TimelineCursor) HasNext() bool     { return tc.hasNext }
func (tc *TimelineCursor) HasPrevious() bool { return tc.hasPrevious }

// Next fetches the page older than the cursor.
func (tc *TimelineCursor) Next(ctx context.Context) (*TimelinePage, error) {
	page, err := tc.client.GetTimelineStream(ctx, tc.core, tc.resource, tc.limit, tc.olderBound, "")
	if err != nil {
		return nil, err
	}
	tc.advance(page.Meta.Cursor)
	return page, nil
}

// Previous fetches the page newer than the cursor.
func (tc *TimelineCursor) Previous(ctx context.Context) (*TimelinePage, error) {
	page, err := tc.client.GetTimelineStream(ctx, tc.core, tc.resource, tc.limit, "", tc.newerBound)
	if err != nil {
		return nil, err
	}
	tc.advance(page.Meta.Cursor)
	return page, nil
}

func (tc *TimelineCursor) advance(meta CursorMeta) {
	tc.hasNext = meta.HasPrev && meta.Prev != nil
	tc.hasPrevious = meta.HasNext && meta.Next != nil
	if meta.Prev != nil {
		tc.olderBound = *meta.Prev
	}
	if meta.Next != nil {
		tc.newerBound = *meta.Next
	}
}
