package livefyre

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopic(t *testing.T) {
	site := newTestSite()

	topic, err := NewTopic(site.Network(), "1", "UNO")
	require.NoError(t, err)
	assert.Equal(t, "urn:livefyre:test.fyre.co:topic=1", topic.ID)
	assert.Equal(t, "1", topic.TruncatedID())

	topic, err = NewTopic(site, "2", "DOS")
	require.NoError(t, err)
	assert.Equal(t, "urn:livefyre:test.fyre.co:site=314159:topic=2", topic.ID)
	assert.Equal(t, "2", topic.TruncatedID())
}

func TestNewTopicLabel(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	_, err := NewTopic(network, "1", "")
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTopic(network, "1", strings.Repeat("x", 129))
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = NewTopic(network, "1", strings.Repeat("x", 128))
	assert.NoError(t, err)
}

func TestIsNetworkTopic(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	assert.True(t, IsNetworkTopic(network, "urn:livefyre:test.fyre.co:topic=1"))
	assert.False(t, IsNetworkTopic(network, "urn:livefyre:test.fyre.co:site=1:topic=1"))
	assert.False(t, IsNetworkTopic(network, "urn:livefyre:other.fyre.co:topic=1"))
	assert.False(t, IsNetworkTopic(network, ""))
}

func TestEncodeArticleID(t *testing.T) {
	assert.Equal(t, "YQ==", EncodeArticleID("a"))
	assert.Equal(t, "YWI=", EncodeArticleID("ab"))
	assert.Equal(t, "YWJj", EncodeArticleID("abc"))
	assert.Equal(t, "Pz8_", EncodeArticleID("???"))
	for _, id := range []string{"a", "ab", "abc", "abcd", "article-42"} {
		assert.Zero(t, len(EncodeArticleID(id))%4, id)
	}
}

func TestSubscriptionValidate(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)
	sub := NewSubscription("urn:livefyre:test.fyre.co:topic=1", network.UserURN("bob"))
	assert.NoError(t, sub.Validate())

	sub.Type = "other"
	assert.ErrorIs(t, sub.Validate(), ErrInvalidArgument)
}
