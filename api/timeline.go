package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

// CursorTimeLayout is the timestamp format of timeline cursors.
const CursorTimeLayout = "2006-01-02T15:04:05.000Z"

// FormatCursorTime renders t in UTC as a timeline cursor.
func FormatCursorTime(t time.Time) string {
	return t.UTC().Format(CursorTimeLayout)
}

// CursorMeta is the paging state returned with a timeline page.
type CursorMeta struct {
	HasNext bool    `json:"hasNext"`
	HasPrev bool    `json:"hasPrev"`
	Next    *string `json:"next"`
	Prev    *string `json:"prev"`
}

// TimelinePage is one page of a timeline stream.
type TimelinePage struct {
	Data json.RawMessage `json:"data"`
	Meta struct {
		Cursor CursorMeta `json:"cursor"`
	} `json:"meta"`

	// Raw is the full response body.
	Raw json.RawMessage `json:"-"`
}

// GetTimelineStream reads a page of resource. At most one of until and since
// should be set; empty values are omitted.
func (c *Client) GetTimelineStream(ctx context.Context, core livefyre.Core, resource string, limit int, until, since string) (*TimelinePage, error) {
	if resource == "" {
		return nil, livefyre.InvalidArgumentError{Field: "resource", Reason: "must not be empty"}
	}

	ctx, span := tracer.Start(ctx, "Api.GetTimelineStream")
	defer span.End()

	token, err := c.systemToken(core.Network())
	if err != nil {
		return nil, err
	}

	q := url.Values{"resource": {resource}}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if until != "" {
		q.Set("until", until)
	} else if since != "" {
		q.Set("since", since)
	}

	body, err := c.call(ctx, "get timeline stream", client.Request{
		Method: http.MethodGet,
		URL:    core.Network().BootstrapURL() + "/api/v4/timeline/",
		Query:  q,
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	var page TimelinePage
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, errors.Wrap(err, "get timeline stream: decode response")
	}
	page.Raw = body
	return &page, nil
}
