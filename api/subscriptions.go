package api

import (
	"context"
	"net/http"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

func userSubscriptionPath(network *livefyre.Network, userID string) string {
	return streamBase(network) + network.UserURN(userID) + ":subscriptions/"
}

// GetSubscriptions lists the topics userID is subscribed to.
func (c *Client) GetSubscriptions(ctx context.Context, network *livefyre.Network, userID string) ([]livefyre.Subscription, error) {
	ctx, span := tracer.Start(ctx, "Api.GetSubscriptions")
	defer span.End()

	token, err := c.systemToken(network)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "get subscriptions", client.Request{
		Method: http.MethodGet,
		URL:    userSubscriptionPath(network, userID),
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := decodeData[struct {
		Subscriptions []livefyre.Subscription `json:"subscriptions"`
	}]("get subscriptions", body)
	if err != nil {
		return nil, err
	}
	return data.Subscriptions, nil
}

// AddSubscriptions subscribes the owner of userToken to topics.
func (c *Client) AddSubscriptions(ctx context.Context, network *livefyre.Network, userToken string, topics []livefyre.Topic) (int, error) {
	result, err := c.modifySubscriptions(ctx, "add subscriptions", http.MethodPost, "subscriptions", network, userToken, topics)
	return result.Added, err
}

// ReplaceSubscriptions makes topics the exact subscription set of the token owner.
func (c *Client) ReplaceSubscriptions(ctx context.Context, network *livefyre.Network, userToken string, topics []livefyre.Topic) (ReplaceResult, error) {
	return c.modifySubscriptions(ctx, "replace subscriptions", http.MethodPut, "subscriptions", network, userToken, topics)
}

// RemoveSubscriptions unsubscribes the token owner from topics.
func (c *Client) RemoveSubscriptions(ctx context.Context, network *livefyre.Network, userToken string, topics []livefyre.Topic) (int, error) {
	result, err := c.modifySubscriptions(ctx, "remove subscriptions", http.MethodPatch, "delete", network, userToken, topics)
	return result.Removed, err
}

func (c *Client) modifySubscriptions(
	ctx context.Context,
	op, method, field string,
	network *livefyre.Network,
	userToken string,
	topics []livefyre.Topic,
) (ReplaceResult, error) {
	if err := checkTopicsBelong(network, topics); err != nil {
		return ReplaceResult{}, err
	}
	userID, err := network.UserIDFromToken(userToken)
	if err != nil {
		return ReplaceResult{}, err
	}

	ctx, span := tracer.Start(ctx, "Api.ModifySubscriptions")
	defer span.End()

	userURN := network.UserURN(userID)
	subs := make([]livefyre.Subscription, 0, len(topics))
	for _, t := range topics {
		subs = append(subs, livefyre.NewSubscription(t.ID, userURN))
	}

	body, err := marshal(op, map[string]any{field: subs})
	if err != nil {
		return ReplaceResult{}, err
	}

	resp, err := c.call(ctx, op, client.Request{
		Method: method,
		URL:    userSubscriptionPath(network, userID),
		Header: jsonHeader(userToken),
		Body:   body,
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return ReplaceResult{}, err
	}

	return decodeData[ReplaceResult](op, resp)
}

// GetSubscribers lists the subscriptions to topic.
func (c *Client) GetSubscribers(ctx context.Context, network *livefyre.Network, topic livefyre.Topic, limit, offset int) ([]livefyre.Subscription, error) {
	ctx, span := tracer.Start(ctx, "Api.GetSubscribers")
	defer span.End()

	token, err := c.systemToken(network)
	if err != nil {
		return nil, err
	}

	body, err := c.call(ctx, "get subscribers", client.Request{
		Method: http.MethodGet,
		URL:    streamBase(network) + topic.ID + ":subscribers/",
		Query:  pageQuery(limit, offset),
		Header: lftokenHeader(token),
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	data, err := decodeData[struct {
		Subscriptions []livefyre.Subscription `json:"subscriptions"`
	}]("get subscribers", body)
	if err != nil {
		return nil, err
	}
	return data.Subscriptions, nil
}
