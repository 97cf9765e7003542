package livefyre

import (
	"time"
)

const (
	// DefaultExpires is the lifetime of a system token.
	DefaultExpires = 24 * time.Hour

	systemUser = "system"

	maxTitleLength = 255
	maxLabelLength = 128
)

// Core is an owner of topics and timelines: a Network or a Site.
type Core interface {
	URN() string
	Network() *Network
}

// CollectionType selects the Livefyre application a collection is rendered with.
type CollectionType string

const (
	TypeDefault      CollectionType = ""
	TypeReviews      CollectionType = "reviews"
	TypeSidenotes    CollectionType = "sidenotes"
	TypeRatings      CollectionType = "ratings"
	TypeCounting     CollectionType = "counting"
	TypeLiveblog     CollectionType = "liveblog"
	TypeLivechat     CollectionType = "livechat"
	TypeLivecomments CollectionType = "livecomments"
)

// Valid reports whether t is one of the recognized collection types.
func (t CollectionType) Valid() bool {
	switch t {
	case TypeDefault, TypeReviews, TypeSidenotes, TypeRatings, TypeCounting,
		TypeLiveblog, TypeLivechat, TypeLivecomments:
		return true
	default:
		return false
	}
}

// CollectionOptions are the optional attributes of a collection.
type CollectionOptions struct {
	Type   CollectionType
	Tags   string
	Topics []Topic

	// Extensions are merged verbatim into the collection attributes.
	Extensions map[string]any
}

// SyncOutcome is the terminal state of a collection create-or-update.
type SyncOutcome int

const (
	SyncFailed SyncOutcome = iota
	SyncCreated
	SyncUpdated
)

func (o SyncOutcome) String() string {
	switch o {
	case SyncCreated:
		return "created"
	case SyncUpdated:
		return "updated"
	default:
		return "failed"
	}
}
