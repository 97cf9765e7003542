package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

func streamBase(network *livefyre.Network) string {
	return network.QuillURL() + "/api/v4/"
}

func multipleTopicPath(core livefyre.Core) string {
	return streamBase(core.Network()) + core.URN() + ":topics/"
}

func pageQuery(limit, offset int) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		q.Set("offset", strconv.Itoa(offset))
	}
	return q
}

// GetTopic fetches one topic by its caller-chosen id. It returns nil when
// Livefyre has no such topic.
func (c *Client) GetTopic(ctx context.Context, core livefyre.Core, id string) (*livefyre.Topic, error) {
	ctx, span := tracer.Start(ctx, "Api.GetTopic")
	defer span.End()

	token, err := c.systemToken(core.Network())
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "get topic", client.Request{
		Method: http.MethodGet,
		URL:    streamBase(core.Network()) + livefyre.TopicURN(core, id) + "/",
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := decodeData[struct {
		Topic *livefyre.Topic `json:"topic"`
	}]("get topic", body)
	if err != nil {
		return nil, err
	}
	return data.Topic, nil
}

// GetTopics lists the topics owned by core. Zero limit or offset is omitted.
func (c *Client) GetTopics(ctx context.Context, core livefyre.Core, limit, offset int) ([]livefyre.Topic, error) {
	ctx, span := tracer.Start(ctx, "Api.GetTopics")
	defer span.End()

	token, err := c.systemToken(core.Network())
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "get topics", client.Request{
		Method: http.MethodGet,
		URL:    multipleTopicPath(core),
		Query:  pageQuery(limit, offset),
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := decodeData[struct {
		Topics []livefyre.Topic `json:"topics"`
	}]("get topics", body)
	if err != nil {
		return nil, err
	}
	return data.Topics, nil
}

// CreateOrUpdateTopic upserts a single topic.
func (c *Client) CreateOrUpdateTopic(ctx context.Context, core livefyre.Core, id, label string) (livefyre.Topic, error) {
	topics, err := c.CreateOrUpdateTopics(ctx, core, map[string]string{id: label})
	if err != nil {
		return livefyre.Topic{}, err
	}
	return topics[0], nil
}

// CreateOrUpdateTopics upserts topics given as id to label.
func (c *Client) CreateOrUpdateTopics(ctx context.Context, core livefyre.Core, labels map[string]string) ([]livefyre.Topic, error) {
	topics := make([]livefyre.Topic, 0, len(labels))
	for id, label := range labels {
		topic, err := livefyre.NewTopic(core, id, label)
		if err != nil {
			return nil, err
		}
		topics = append(topics, topic)
	}

	ctx, span := tracer.Start(ctx, "Api.CreateOrUpdateTopics")
	defer span.End()

	token, err := c.systemToken(core.Network())
	if err != nil {
		return nil, err
	}
	body, err := marshal("create topics", map[string]any{"topics": topics})
	if err != nil {
		return nil, err
	}

	_, err = c.call(ctx, "create topics", client.Request{
		Method: http.MethodPost,
		URL:    multipleTopicPath(core),
		Header: jsonHeader(token),
		Body:   body,
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return topics, nil
}

// DeleteTopic removes one topic.
func (c *Client) DeleteTopic(ctx context.Context, core livefyre.Core, topic livefyre.Topic) (bool, error) {
	n, err := c.DeleteTopics(ctx, core, []livefyre.Topic{topic})
	return n == 1, err
}

// DeleteTopics removes topics and returns how many Livefyre deleted.
func (c *Client) DeleteTopics(ctx context.Context, core livefyre.Core, topics []livefyre.Topic) (int, error) {
	ctx, span := tracer.Start(ctx, "Api.DeleteTopics")
	defer span.End()

	token, err := c.systemToken(core.Network())
	if err != nil {
		return 0, err
	}
	body, err := marshal("delete topics", map[string]any{"delete": livefyre.TopicIDs(topics)})
	if err != nil {
		return 0, err
	}

	resp, err := c.call(ctx, "delete topics", client.Request{
		Method: http.MethodPatch,
		URL:    multipleTopicPath(core),
		Header: jsonHeader(token),
		Body:   body,
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}

	data, err := decodeData[struct {
		Deleted int `json:"deleted"`
	}]("delete topics", resp)
	if err != nil {
		return 0, err
	}
	return data.Deleted, nil
}
