package jwt

import (
	"encoding/json"
	"fmt"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

// ErrEmptyKey is returned when signing or verifying with an empty secret.
var ErrEmptyKey = errors.New("jwt: empty signing key")

// Claims is the decoded payload of a token.
type Claims map[string]any

// Create signs claims with key using HS256.
// Claims are serialized as a JSON object with sorted keys.
func Create(key string, claims Claims) (string, error) {
	if key == "" {
		return "", ErrEmptyKey
	}

	token := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.MapClaims(claims))
	signed, err := token.SignedString([]byte(key))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}

	return signed, nil
}

// Decode verifies the token signature with key and returns its claims.
func Decode(key, token string) (Claims, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	parsed, err := gojwt.Parse(token, func(t *gojwt.Token) (any, error) {
		if _, ok := t.Method.(*gojwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(key), nil
	}, gojwt.WithValidMethods([]string{gojwt.SigningMethodHS256.Alg()}), gojwt.WithJSONNumber())
	if err != nil {
		return nil, errors.Wrap(err, "parse token")
	}

	claims, ok := parsed.Claims.(gojwt.MapClaims)
	if !ok || !parsed.Valid {
		return nil, errors.New("invalid token claims")
	}

	return Claims(claims), nil
}

// String returns the string claim stored under name.
func (c Claims) String(name string) (string, bool) {
	v, ok := c[name].(string)
	return v, ok
}

// Int64 returns the numeric claim stored under name.
func (c Claims) Int64(name string) (int64, bool) {
	switch v := c[name].(type) {
	case json.Number:
		if i, err := v.Int64(); err == nil {
			return i, true
		}
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return int64(f), true
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
