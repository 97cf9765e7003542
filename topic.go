package livefyre

import (
	"strings"
	"time"
	"unicode/utf8"
)

const topicSegment = ":topic="

// Topic tags content for personalized streams. It is scoped to a network or a site.
type Topic struct {
	ID         string `json:"id"`
	Label      string `json:"label"`
	CreatedAt  int64  `json:"createdAt,omitempty"`
	ModifiedAt int64  `json:"modifiedAt,omitempty"`
}

// NewTopic builds a topic owned by core.
func NewTopic(core Core, id, label string) (Topic, error) {
	if id == "" {
		return Topic{}, invalid("id", "must not be empty")
	}
	if label == "" || utf8.RuneCountInString(label) > maxLabelLength {
		return Topic{}, invalid("label", "must be 1 to %d characters", maxLabelLength)
	}
	return Topic{ID: TopicURN(core, id), Label: label}, nil
}

// TopicURN is the full id of topic id owned by core.
func TopicURN(core Core, id string) string {
	return core.URN() + topicSegment + id
}

// TruncatedID is the caller-chosen part of the id, after the topic segment.
func (t Topic) TruncatedID() string {
	i := strings.LastIndex(t.ID, topicSegment)
	if i < 0 {
		return t.ID
	}
	return t.ID[i+len(topicSegment):]
}

func (t Topic) CreatedAtTime() time.Time  { return time.Unix(t.CreatedAt, 0).UTC() }
func (t Topic) ModifiedAtTime() time.Time { return time.Unix(t.ModifiedAt, 0).UTC() }

// TopicIDs returns the ids of topics in order.
func TopicIDs(topics []Topic) []string {
	ids := make([]string, 0, len(topics))
	for _, t := range topics {
		ids = append(ids, t.ID)
	}
	return ids
}
