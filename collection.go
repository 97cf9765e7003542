package livefyre

import (
	"unicode/utf8"

	"github.com/totegamma/livefyre/jwt"
)

// reservedAttributes are set from typed fields and may not come from Extensions.
var reservedAttributes = map[string]struct{}{
	"type": {}, "topics": {}, "tags": {}, "articleId": {}, "url": {}, "title": {}, "iss": {},
}

// Collection is the comment thread of one article on a site.
// It is immutable apart from the collection id assigned by a sync.
type Collection struct {
	site          *Site
	collectionID  string
	articleID     string
	title         string
	url           string
	options       CollectionOptions
	networkIssued bool
}

// NewCollection validates its inputs and builds a collection.
func NewCollection(site *Site, articleID, title, url string, opts *CollectionOptions) (*Collection, error) {
	if site == nil {
		return nil, invalid("site", "must not be nil")
	}
	if articleID == "" {
		return nil, invalid("articleId", "must not be empty")
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return nil, invalid("title", "is longer than %d characters", maxTitleLength)
	}
	if !isValidFullURL(url) {
		return nil, invalid("url", "%q is not a valid absolute url", url)
	}

	var options CollectionOptions
	if opts != nil {
		options = *opts
	}
	if !options.Type.Valid() {
		return nil, invalid("type", "%q is not a recognized collection type", options.Type)
	}
	for k := range options.Extensions {
		if _, ok := reservedAttributes[k]; ok {
			return nil, invalid("extensions", "%q is a reserved attribute", k)
		}
	}

	networkIssued := false
	for _, topic := range options.Topics {
		if IsNetworkTopic(site.Network(), topic.ID) {
			networkIssued = true
			break
		}
	}

	return &Collection{
		site:          site,
		articleID:     articleID,
		title:         title,
		url:           url,
		options:       options,
		networkIssued: networkIssued,
	}, nil
}

func (c *Collection) Site() *Site                { return c.site }
func (c *Collection) ArticleID() string          { return c.articleID }
func (c *Collection) Title() string              { return c.title }
func (c *Collection) URL() string                { return c.url }
func (c *Collection) Options() CollectionOptions { return c.options }
func (c *Collection) NetworkIssued() bool        { return c.networkIssued }

// BuildSystemToken delegates to the owning network.
func (c *Collection) BuildSystemToken() (string, error) {
	return c.site.BuildSystemToken()
}

// CollectionID returns the id Livefyre assigned on create.
func (c *Collection) CollectionID() (string, error) {
	if c.collectionID == "" {
		return "", ErrCollectionIDUnset
	}
	return c.collectionID, nil
}

// SetCollectionID records the id assigned by Livefyre. Not safe for concurrent use.
func (c *Collection) SetCollectionID(id string) {
	c.collectionID = id
}

func (c *Collection) URN() (string, error) {
	id, err := c.CollectionID()
	if err != nil {
		return "", err
	}
	return c.site.URN() + ":collection=" + id, nil
}

// Attributes is the attribute set that is signed and checksummed.
func (c *Collection) Attributes() map[string]any {
	attrs := make(map[string]any, len(c.options.Extensions)+6)
	for k, v := range c.options.Extensions {
		attrs[k] = v
	}
	if c.options.Type != TypeDefault {
		attrs["type"] = string(c.options.Type)
	}
	if c.options.Tags != "" {
		attrs["tags"] = c.options.Tags
	}
	if len(c.options.Topics) > 0 {
		attrs["topics"] = c.options.Topics
	}
	attrs["articleId"] = c.articleID
	attrs["url"] = c.url
	attrs["title"] = c.title
	return attrs
}

// BuildCollectionMetaToken signs the collection attributes.
// Network-issued collections are signed with the network key and carry the
// network urn as issuer; all others are signed with the site key.
func (c *Collection) BuildCollectionMetaToken() (string, error) {
	claims := jwt.Claims(c.Attributes())
	key := c.site.Key()
	if c.networkIssued {
		claims["iss"] = c.site.Network().URN()
		key = c.site.Network().Key()
	}

	token, err := jwt.Create(key, claims)
	if err != nil {
		return "", &TokenError{Op: "build collection meta token", Err: err}
	}
	return token, nil
}

// BuildChecksum fingerprints the collection attributes.
func (c *Collection) BuildChecksum() (string, error) {
	return Checksum(c.Attributes())
}

// Payload is the body sent to the collection create and update endpoints.
type Payload struct {
	ArticleID      string `json:"articleId"`
	Checksum       string `json:"checksum"`
	CollectionMeta string `json:"collectionMeta"`
}

func (c *Collection) Payload() (Payload, error) {
	checksum, err := c.BuildChecksum()
	if err != nil {
		return Payload{}, err
	}
	meta, err := c.BuildCollectionMetaToken()
	if err != nil {
		return Payload{}, err
	}
	return Payload{
		ArticleID:      c.articleID,
		Checksum:       checksum,
		CollectionMeta: meta,
	}, nil
}
