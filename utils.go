package livefyre

import (
	"encoding/base64"
	"net/url"
	"strings"
)

func isAlphanumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z' || '0' <= c && c <= '9') {
			return false
		}
	}
	return true
}

func isValidFullURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}

// EncodeArticleID encodes an article id the way the bootstrap service keys
// collections: base64url, padded to a multiple of four.
func EncodeArticleID(articleID string) string {
	return base64.URLEncoding.EncodeToString([]byte(articleID))
}

// IsNetworkTopic reports whether topicID is scoped to the network itself
// rather than to one of its sites.
func IsNetworkTopic(network *Network, topicID string) bool {
	urn := network.URN()
	if !strings.HasPrefix(topicID, urn) {
		return false
	}
	return !strings.HasPrefix(strings.TrimPrefix(topicID, urn), ":site=")
}

// BelongsToNetwork reports whether topicID was issued under network.
func BelongsToNetwork(network *Network, topicID string) bool {
	return strings.HasPrefix(topicID, network.URN()+":")
}
