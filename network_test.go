package livefyre

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/totegamma/livefyre/jwt"
)

const (
	testNetworkName = "test.fyre.co"
	testNetworkKey  = "testkeytest"
	testSiteID      = "314159"
	testSiteKey     = "sitekeytest"
)

func TestNetworkIdentity(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	assert.Equal(t, "urn:livefyre:test.fyre.co", network.URN())
	assert.Equal(t, "urn:livefyre:test.fyre.co:user=bob", network.UserURN("bob"))
	assert.Equal(t, "test", network.ShortName())
	assert.True(t, network.SSL())

	site := network.Site(testSiteID, testSiteKey)
	assert.Equal(t, "urn:livefyre:test.fyre.co:site=314159", site.URN())
	assert.Same(t, network, site.Network())
}

func TestNetworkEndpoints(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)
	assert.Equal(t, "https://test.quill.fyre.co", network.QuillURL())
	assert.Equal(t, "https://test.bootstrap.fyre.co", network.BootstrapURL())

	network.SetSSL(false)
	assert.Equal(t, "http://quill.test.fyre.co", network.QuillURL())
	assert.Equal(t, "http://bootstrap.test.fyre.co", network.BootstrapURL())
}

func TestBuildUserAuthToken(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	before := time.Now().UTC().Unix()
	token, err := network.BuildUserAuthToken("some", "user", time.Hour)
	require.NoError(t, err)

	claims, err := jwt.Decode(testNetworkKey, token)
	require.NoError(t, err)

	domain, _ := claims.String("domain")
	userID, _ := claims.String("user_id")
	displayName, _ := claims.String("display_name")
	expires, ok := claims.Int64("expires")
	require.True(t, ok)

	assert.Equal(t, testNetworkName, domain)
	assert.Equal(t, "some", userID)
	assert.Equal(t, "user", displayName)
	assert.GreaterOrEqual(t, expires, before+3600)
	assert.LessOrEqual(t, expires, time.Now().UTC().Unix()+3600)
}

func TestBuildUserAuthTokenRejectsNonAlphanumeric(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	for _, userID := range []string{"fjaowie.123", "", "a b", "x_y", "ünï"} {
		_, err := network.BuildUserAuthToken(userID, "", time.Second)
		assert.ErrorIs(t, err, ErrInvalidArgument, userID)
	}
}

func TestBuildUserAuthTokenValidatesBeforeSigning(t *testing.T) {
	network := NewNetwork(testNetworkName, "")

	_, err := network.BuildUserAuthToken("bad.id", "", time.Second)
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrToken)
}

func TestBuildUserAuthTokenEmptyKey(t *testing.T) {
	network := NewNetwork(testNetworkName, "")

	_, err := network.BuildUserAuthToken("system", "system", time.Second)
	assert.ErrorIs(t, err, ErrToken)
}

func TestValidateSystemToken(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	token, err := network.BuildSystemToken()
	require.NoError(t, err)
	assert.True(t, network.ValidateSystemToken(token))

	userToken, err := network.BuildUserAuthToken("system", "testName", 24*time.Hour)
	require.NoError(t, err)
	assert.True(t, network.ValidateSystemToken(userToken))
}

func TestValidateSystemTokenExpired(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	token, err := network.BuildUserAuthToken("system", "system", -time.Minute)
	require.NoError(t, err)
	assert.False(t, network.ValidateSystemToken(token))
}

func TestValidateSystemTokenRejects(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	userToken, err := network.BuildUserAuthToken("bob", "bob", time.Hour)
	require.NoError(t, err)
	assert.False(t, network.ValidateSystemToken(userToken), "non-system user")

	other := NewNetwork("other.fyre.co", testNetworkKey)
	otherToken, err := other.BuildSystemToken()
	require.NoError(t, err)
	assert.False(t, network.ValidateSystemToken(otherToken), "other domain")

	wrongKey := NewNetwork(testNetworkName, "wrong")
	assert.False(t, wrongKey.ValidateSystemToken(otherToken), "bad signature")

	assert.False(t, network.ValidateSystemToken(""))
	assert.False(t, network.ValidateSystemToken("garbage"))
}

func TestUserIDFromToken(t *testing.T) {
	network := NewNetwork(testNetworkName, testNetworkKey)

	token, err := network.BuildUserAuthToken("alice", "Alice", time.Hour)
	require.NoError(t, err)

	userID, err := network.UserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)

	_, err = NewNetwork(testNetworkName, "other").UserIDFromToken(token)
	assert.ErrorIs(t, err, ErrToken)
}
