package livefyre

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLegacyChecksum(t *testing.T) {
	checksum, err := LegacyChecksum("title", "url", "tags")
	require.NoError(t, err)
	assert.Equal(t, "323f0074333c0c8c01951c0b3bf5f794", checksum)
}

func TestChecksumOrderIndependent(t *testing.T) {
	a := map[string]any{}
	a["title"] = "title"
	a["url"] = "url"
	a["tags"] = "tags"

	b := map[string]any{}
	b["tags"] = "tags"
	b["url"] = "url"
	b["title"] = "title"

	ca, err := Checksum(a)
	require.NoError(t, err)
	cb, err := Checksum(b)
	require.NoError(t, err)

	assert.Equal(t, ca, cb)
	// md5 of {"tags":"tags","title":"title","url":"url"}
	assert.Equal(t, "16636384cd772ec14e6704bd0b033186", ca)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{32}$`), ca)
}

func TestChecksumDetectsChanges(t *testing.T) {
	site := newTestSite()
	a, err := site.Collection("id", "title", "http://example.com", nil)
	require.NoError(t, err)
	b, err := site.Collection("id", "title 2", "http://example.com", nil)
	require.NoError(t, err)

	ca, err := a.BuildChecksum()
	require.NoError(t, err)
	cb, err := b.BuildChecksum()
	require.NoError(t, err)
	assert.NotEqual(t, ca, cb)

	again, err := a.BuildChecksum()
	require.NoError(t, err)
	assert.Equal(t, ca, again)
}
