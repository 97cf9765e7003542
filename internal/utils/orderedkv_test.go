package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKVMapKeepsOrder(t *testing.T) {
	om := OrderedKVMap[string]{
		"title": {Value: "title", Order: 2},
		"url":   {Value: "url", Order: 0},
		"tags":  {Value: "tags", Order: 1},
	}

	b, err := om.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"url":"url","tags":"tags","title":"title"}`, string(b))
}

func TestCanonicalJSONSortsKeys(t *testing.T) {
	b, err := CanonicalJSON(map[string]any{
		"url":       "http://example.com/a?x=1&y=<2>",
		"articleId": "42",
		"title":     "hello",
	})
	require.NoError(t, err)
	assert.Equal(t, `{"articleId":"42","title":"hello","url":"http://example.com/a?x=1&y=<2>"}`, string(b))
}

func TestCanonicalJSONNested(t *testing.T) {
	b, err := CanonicalJSON(map[string]any{
		"b": []any{map[string]any{"z": 1, "a": 2}},
		"a": nil,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"a":null,"b":[{"a":2,"z":1}]}`, string(b))
}

func TestCanonicalJSONEmpty(t *testing.T) {
	b, err := CanonicalJSON(map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(b))
}
