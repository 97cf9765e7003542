package livefyre

import (
	"fmt"
	"strings"
	"time"

	"github.com/totegamma/livefyre/jwt"
)

// Network is the root tenant. It holds the key that signs user and system tokens.
type Network struct {
	name string
	key  string
	ssl  bool
}

// NewNetwork returns a network with ssl enabled.
func NewNetwork(name, key string) *Network {
	return &Network{name: name, key: key, ssl: true}
}

func (n *Network) Name() string { return n.name }
func (n *Network) Key() string  { return n.key }
func (n *Network) SSL() bool    { return n.ssl }

// SetSSL switches between https and http endpoints.
func (n *Network) SetSSL(ssl bool) { n.ssl = ssl }

// Network returns n, so that a Network can act as a Core.
func (n *Network) Network() *Network { return n }

// ShortName is the first dot-delimited segment of the network name.
func (n *Network) ShortName() string {
	return strings.SplitN(n.name, ".", 2)[0]
}

func (n *Network) URN() string {
	return "urn:livefyre:" + n.name
}

func (n *Network) UserURN(user string) string {
	return n.URN() + ":user=" + user
}

// Site returns a site belonging to this network.
func (n *Network) Site(id, key string) *Site {
	return &Site{network: n, id: id, key: key}
}

// QuillURL is the base url of the write API.
func (n *Network) QuillURL() string {
	if n.ssl {
		return fmt.Sprintf("https://%s.quill.fyre.co", n.ShortName())
	}
	return fmt.Sprintf("http://quill.%s.fyre.co", n.ShortName())
}

// BootstrapURL is the base url of the read API.
func (n *Network) BootstrapURL() string {
	if n.ssl {
		return fmt.Sprintf("https://%s.bootstrap.fyre.co", n.ShortName())
	}
	return fmt.Sprintf("http://bootstrap.%s.fyre.co", n.ShortName())
}

// BuildUserAuthToken signs a token identifying userID on this network.
// The token expires the given duration from now, truncated to whole seconds.
func (n *Network) BuildUserAuthToken(userID, displayName string, expires time.Duration) (string, error) {
	if !isAlphanumeric(userID) {
		return "", invalid("userId", "%q is not alphanumeric", userID)
	}
	if n.name == "" {
		return "", invalid("network.name", "must not be empty")
	}

	claims := jwt.Claims{
		"domain":       n.name,
		"user_id":      userID,
		"display_name": displayName,
		"expires":      time.Now().UTC().Add(expires).Unix(),
	}

	token, err := jwt.Create(n.key, claims)
	if err != nil {
		return "", &TokenError{Op: "build user auth token", Err: err}
	}
	return token, nil
}

// BuildSystemToken signs the token used for server-to-server calls.
func (n *Network) BuildSystemToken() (string, error) {
	return n.BuildUserAuthToken(systemUser, systemUser, DefaultExpires)
}

// ValidateSystemToken reports whether token is an unexpired system token
// signed by this network. Decoding failures count as invalid.
func (n *Network) ValidateSystemToken(token string) bool {
	claims, err := jwt.Decode(n.key, token)
	if err != nil {
		return false
	}

	domain, _ := claims.String("domain")
	userID, _ := claims.String("user_id")
	expires, ok := claims.Int64("expires")
	if !ok {
		return false
	}

	return domain == n.name &&
		userID == systemUser &&
		expires >= time.Now().UTC().Unix()
}

// DecodeUserToken verifies token with the network key and returns its claims.
func (n *Network) DecodeUserToken(token string) (jwt.Claims, error) {
	claims, err := jwt.Decode(n.key, token)
	if err != nil {
		return nil, &TokenError{Op: "decode user token", Err: err}
	}
	return claims, nil
}

// UserIDFromToken extracts the user id of a token signed by this network.
func (n *Network) UserIDFromToken(token string) (string, error) {
	claims, err := n.DecodeUserToken(token)
	if err != nil {
		return "", err
	}
	userID, ok := claims.String("user_id")
	if !ok || userID == "" {
		return "", &TokenError{Op: "decode user token", Err: fmt.Errorf("missing user_id claim")}
	}
	return userID, nil
}
