package api

import (
	"context"
	"net/http"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

// ReplaceResult reports the changes made by a replace call.
type ReplaceResult struct {
	Added   int `json:"added"`
	Removed int `json:"removed"`
}

func collectionTopicsPath(site *livefyre.Site, collectionID string) string {
	return streamBase(site.Network()) + site.URN() + ":collection=" + collectionID + ":topics/"
}

func checkTopicsBelong(network *livefyre.Network, topics []livefyre.Topic) error {
	for _, t := range topics {
		if !livefyre.BelongsToNetwork(network, t.ID) {
			return livefyre.InvalidArgumentError{Field: "topics", Reason: "topic " + t.ID + " does not belong to " + network.URN()}
		}
	}
	return nil
}

// GetCollectionTopics lists the topic ids attached to a collection.
func (c *Client) GetCollectionTopics(ctx context.Context, site *livefyre.Site, collectionID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "Api.GetCollectionTopics")
	defer span.End()

	token, err := c.systemToken(site.Network())
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "get collection topics", client.Request{
		Method: http.MethodGet,
		URL:    collectionTopicsPath(site, collectionID),
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := decodeData[struct {
		TopicIDs []string `json:"topicIds"`
	}]("get collection topics", body)
	if err != nil {
		return nil, err
	}
	return data.TopicIDs, nil
}

// AddCollectionTopics attaches topics to a collection.
func (c *Client) AddCollectionTopics(ctx context.Context, site *livefyre.Site, collectionID string, topics []livefyre.Topic) (int, error) {
	result, err := c.modifyCollectionTopics(ctx, "add collection topics", http.MethodPost, site, collectionID,
		map[string]any{"topicIds": livefyre.TopicIDs(topics)}, topics)
	return result.Added, err
}

// ReplaceCollectionTopics makes topics the exact set attached to a collection.
func (c *Client) ReplaceCollectionTopics(ctx context.Context, site *livefyre.Site, collectionID string, topics []livefyre.Topic) (ReplaceResult, error) {
	return c.modifyCollectionTopics(ctx, "replace collection topics", http.MethodPut, site, collectionID,
		map[string]any{"topicIds": livefyre.TopicIDs(topics)}, topics)
}

// RemoveCollectionTopics detaches topics from a collection.
func (c *Client) RemoveCollectionTopics(ctx context.Context, site *livefyre.Site, collectionID string, topics []livefyre.Topic) (int, error) {
	result, err := c.modifyCollectionTopics(ctx, "remove collection topics", http.MethodPatch, site, collectionID,
		map[string]any{"delete": livefyre.TopicIDs(topics)}, topics)
	return result.Removed, err
}

func (c *Client) modifyCollectionTopics(
	ctx context.Context,
	op, method string,
	site *livefyre.Site,
	collectionID string,
	payload map[string]any,
	topics []livefyre.Topic,
) (ReplaceResult, error) {
	if collectionID == "" {
		return ReplaceResult{}, livefyre.InvalidArgumentError{Field: "collectionId", Reason: "must not be empty"}
	}
	if err := checkTopicsBelong(site.Network(), topics); err != nil {
		return ReplaceResult{}, err
	}

	ctx, span := tracer.Start(ctx, "Api.ModifyCollectionTopics")
	defer span.End()

	token, err := c.systemToken(site.Network())
	if err != nil {
		return ReplaceResult{}, err
	}
	body, err := marshal(op, payload)
	if err != nil {
		return ReplaceResult{}, err
	}

	resp, err := c.call(ctx, op, client.Request{
		Method: method,
		URL:    collectionTopicsPath(site, collectionID),
		Header: jsonHeader(token),
		Body:   body,
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return ReplaceResult{}, err
	}

	return decodeData[ReplaceResult](op, resp)
}
