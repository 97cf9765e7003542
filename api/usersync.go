package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

const idPlaceholder = "{id}"

// SetUserSyncURL registers the url Livefyre pulls user profiles from.
// The template must contain the literal {id} placeholder.
func (c *Client) SetUserSyncURL(ctx context.Context, network *livefyre.Network, urlTemplate string) error {
	if !strings.Contains(urlTemplate, idPlaceholder) {
		return livefyre.InvalidArgumentError{Field: "urlTemplate", Reason: "does not contain " + idPlaceholder}
	}

	ctx, span := tracer.Start(ctx, "Api.SetUserSyncURL")
	defer span.End()

	token, err := c.systemToken(network)
	if err != nil {
		return err
	}

	_, err = c.call(ctx, "set user sync url", client.Request{
		Method: http.MethodPost,
		URL:    network.QuillURL() + "/",
		Query: url.Values{
			"actor_token":      {token},
			"pull_profile_url": {urlTemplate},
		},
	}, http.StatusNoContent)
	if err != nil {
		span.RecordError(err)
	}
	return err
}

// SyncUser asks Livefyre to pull the profile of userID again.
func (c *Client) SyncUser(ctx context.Context, network *livefyre.Network, userID string) error {
	if userID == "" {
		return livefyre.InvalidArgumentError{Field: "userId", Reason: "must not be empty"}
	}

	ctx, span := tracer.Start(ctx, "Api.SyncUser")
	defer span.End()

	token, err := c.systemToken(network)
	if err != nil {
		return err
	}

	_, err = c.call(ctx, "sync user", client.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/api/v3_0/user/%s/refresh", network.QuillURL(), url.PathEscape(userID)),
		Query:  url.Values{"lftoken": {token}},
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
	}
	return err
}
