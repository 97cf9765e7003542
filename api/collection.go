package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/totegamma/livefyre"
	"github.com/totegamma/livefyre/client"
)

// CreateOrUpdateCollection creates the collection, falling back to an update
// when Livefyre reports that it already exists. On create the collection id
// is recorded on col.
func (c *Client) CreateOrUpdateCollection(ctx context.Context, col *livefyre.Collection) (livefyre.SyncOutcome, error) {
	ctx, span := tracer.Start(ctx, "Api.CreateOrUpdateCollection")
	defer span.End()
	span.SetAttributes(attribute.String("articleId", col.ArticleID()))

	payload, err := col.Payload()
	if err != nil {
		span.RecordError(err)
		return livefyre.SyncFailed, err
	}
	body, err := marshal("create collection", payload)
	if err != nil {
		return livefyre.SyncFailed, err
	}

	resp, err := c.invokeCollectionAPI(ctx, col, "create", body)
	if err != nil {
		span.RecordError(err)
		return livefyre.SyncFailed, err
	}

	switch resp.StatusCode {
	case http.StatusOK:
		data, err := decodeData[struct {
			CollectionID string `json:"collectionId"`
		}]("create collection", resp.Body)
		if err != nil {
			return livefyre.SyncFailed, err
		}
		if data.CollectionID == "" {
			return livefyre.SyncFailed, errors.New("create collection: response has no collectionId")
		}
		col.SetCollectionID(data.CollectionID)
		c.logger.Info("collection created",
			zap.String("articleId", col.ArticleID()),
			zap.String("collectionId", data.CollectionID),
		)
		return livefyre.SyncCreated, nil

	case http.StatusConflict:
		resp, err = c.invokeCollectionAPI(ctx, col, "update", body)
		if err != nil {
			span.RecordError(err)
			return livefyre.SyncFailed, err
		}
		if resp.StatusCode != http.StatusOK {
			err := &livefyre.RemoteServiceError{Op: "update collection", StatusCode: resp.StatusCode, Body: string(resp.Body)}
			span.RecordError(err)
			return livefyre.SyncFailed, err
		}
		c.logger.Info("collection updated", zap.String("articleId", col.ArticleID()))
		return livefyre.SyncUpdated, nil

	default:
		err := &livefyre.RemoteServiceError{Op: "create collection", StatusCode: resp.StatusCode, Body: string(resp.Body)}
		span.RecordError(err)
		return livefyre.SyncFailed, err
	}
}

func (c *Client) invokeCollectionAPI(ctx context.Context, col *livefyre.Collection, method string, body []byte) (client.Response, error) {
	site := col.Site()
	resp, err := c.sender.Send(ctx, client.Request{
		Method: http.MethodPost,
		URL:    fmt.Sprintf("%s/api/v3.0/site/%s/collection/%s/", site.Network().QuillURL(), site.ID(), method),
		Query:  url.Values{"sync": {"1"}},
		Header: http.Header{"Content-Type": {mimeJSON}, "Accept": {mimeJSON}},
		Body:   body,
	})
	if err != nil {
		return client.Response{}, errors.Wrapf(err, "%s collection", method)
	}
	return resp, nil
}

// GetCollectionContent reads the collection's bootstrap document.
func (c *Client) GetCollectionContent(ctx context.Context, col *livefyre.Collection) (json.RawMessage, error) {
	ctx, span := tracer.Start(ctx, "Api.GetCollectionContent")
	defer span.End()

	site := col.Site()
	network := site.Network()
	body, err := c.call(ctx, "get collection content", client.Request{
		Method: http.MethodGet,
		URL: fmt.Sprintf("%s/bs3/%s/%s/%s/init",
			network.BootstrapURL(), network.Name(), site.ID(), livefyre.EncodeArticleID(col.ArticleID())),
		Header: http.Header{"Accept": {mimeJSON}},
	}, http.StatusOK)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return json.RawMessage(body), nil
}
