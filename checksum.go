package livefyre

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/pkg/errors"

	"github.com/totegamma/livefyre/internal/utils"
)

// Checksum fingerprints an attribute set so Livefyre can skip no-op updates.
// Keys are sorted before serialization, so insertion order does not matter.
//
// MD5 is used for change detection only and carries no security guarantee;
// it is kept for compatibility with the checksums Livefyre already stores.
func Checksum(attrs map[string]any) (string, error) {
	b, err := utils.CanonicalJSON(attrs)
	if err != nil {
		return "", errors.Wrap(err, "serialize attributes")
	}
	return digest(b), nil
}

// LegacyChecksum is the three-field checksum of the first SDK generation.
// Its fields are serialized in the historical order url, tags, title.
func LegacyChecksum(title, url, tags string) (string, error) {
	b, err := utils.OrderedKVMap[string]{
		"url":   {Value: url, Order: 0},
		"tags":  {Value: tags, Order: 1},
		"title": {Value: title, Order: 2},
	}.MarshalJSON()
	if err != nil {
		return "", errors.Wrap(err, "serialize attributes")
	}
	return digest(b), nil
}

func digest(b []byte) string {
	sum := md5.Sum(b)
	return hex.EncodeToString(sum[:])
}
