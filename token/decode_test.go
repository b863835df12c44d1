package token

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/auth-gateway/models"
)

func signMapClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(testJWTConfig.Key))
	require.NoError(t, err)
	return raw
}

func TestDecodeUnverified(t *testing.T) {
	t.Run("decodes a token minted by this service", func(t *testing.T) {
		issuer := NewIssuer(testJWTConfig)
		identity := testIdentity()

		raw, err := issuer.Issue(identity, models.NewRoleSet("Admin", "User"))
		require.NoError(t, err)

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, identity.ID, decoded.Subject)
		assert.Equal(t, identity.Email, decoded.Email)
		assert.Equal(t, identity.Name, decoded.Name)
		assert.ElementsMatch(t, []string{"Admin", "User"}, decoded.Roles)
	})

	t.Run("falls back to WS-era claim keys", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{
			"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "user-42",
			"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress":   "bob@example.com",
			"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name":           "Bob",
			"http://schemas.microsoft.com/ws/2008/06/identity/claims/role":         []interface{}{"User"},
		})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, "user-42", decoded.Subject)
		assert.Equal(t, "bob@example.com", decoded.Email)
		assert.Equal(t, "Bob", decoded.Name)
		assert.Equal(t, []string{"User"}, decoded.Roles)
	})

	t.Run("short keys win over URI keys", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{
			"sub": "short-sub",
			"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier": "uri-sub",
			"name":        "Short Name",
			"unique_name": "Unique Name",
		})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, "short-sub", decoded.Subject)
		assert.Equal(t, "Short Name", decoded.Name)
	})

	t.Run("name falls back to unique_name", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{
			"sub":         "user-1",
			"unique_name": "Unique Name",
		})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, "Unique Name", decoded.Name)
	})

	t.Run("single role string becomes a one-element list", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{
			"sub":  "user-1",
			"role": "Admin",
		})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, []string{"Admin"}, decoded.Roles)
	})

	t.Run("missing keys fail soft", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{"iss": "someone"})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Empty(t, decoded.Subject)
		assert.Empty(t, decoded.Email)
		assert.Empty(t, decoded.Name)
		assert.Empty(t, decoded.Roles)
	})

	t.Run("expired token still decodes", func(t *testing.T) {
		raw := signMapClaims(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": 1000,
		})

		decoded, err := DecodeUnverified(raw)
		require.NoError(t, err)
		assert.Equal(t, "user-1", decoded.Subject)
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		for _, raw := range []string{"", "not-a-token", "a.b"} {
			_, err := DecodeUnverified(raw)
			assert.ErrorIs(t, err, ErrTokenMalformed)
		}
	})
}
