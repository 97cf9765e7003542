package livefyre

import (
	"time"
)

// SubscriptionType is the kind of stream a subscription feeds.
type SubscriptionType string

const SubscriptionPersonalStream SubscriptionType = "personalStream"

// Subscription links a user (By) to a topic (To).
type Subscription struct {
	To        string           `json:"to"`
	By        string           `json:"by"`
	Type      SubscriptionType `json:"type"`
	CreatedAt int64            `json:"createdAt,omitempty"`
}

// NewSubscription subscribes the user urn to topicID's personal stream.
func NewSubscription(topicID, userURN string) Subscription {
	return Subscription{To: topicID, By: userURN, Type: SubscriptionPersonalStream}
}

// Validate checks the subscription type.
func (s Subscription) Validate() error {
	if s.Type != SubscriptionPersonalStream {
		return invalid("type", "unknown subscription type %q", s.Type)
	}
	return nil
}

func (s Subscription) CreatedAtTime() time.Time {
	return time.Unix(s.CreatedAt, 0).UTC()
}
