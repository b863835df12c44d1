package token

import (
	"github.com/golang-jwt/jwt/v5"
)

// Claim keys tried in priority order when decoding tokens client-side.
// The long URI forms are emitted by WS-* era issuers; tokens minted by
// this service use the short forms.
var (
	subjectClaimKeys = []string{
		"sub",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/nameidentifier",
	}
	emailClaimKeys = []string{
		"email",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/emailaddress",
	}
	nameClaimKeys = []string{
		"name",
		"unique_name",
		"http://schemas.xmlsoap.org/ws/2005/05/identity/claims/name",
	}
	roleClaimKeys = []string{
		"roles",
		"role",
		"http://schemas.microsoft.com/ws/2008/06/identity/claims/role",
	}
)

// UnverifiedClaims is the client-side identity view decoded from a token
// WITHOUT verifying its signature or expiry. Display-only: never use it
// for an authorization decision.
type UnverifiedClaims struct {
	Subject string
	Email   string
	Name    string
	Roles   []string
}

// DecodeUnverified extracts identity claims from a token without any
// verification. Each semantic field is resolved through an ordered list
// of claim keys; missing keys fail soft to the zero value. The only
// error case is a structurally unparseable token.
func DecodeUnverified(rawToken string) (*UnverifiedClaims, error) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(rawToken, claims); err != nil {
		return nil, ErrTokenMalformed
	}

	return &UnverifiedClaims{
		Subject: firstStringClaim(claims, subjectClaimKeys),
		Email:   firstStringClaim(claims, emailClaimKeys),
		Name:    firstStringClaim(claims, nameClaimKeys),
		Roles:   firstRoleClaim(claims, roleClaimKeys),
	}, nil
}

// firstStringClaim returns the first key present with a string value
func firstStringClaim(claims jwt.MapClaims, keys []string) string {
	for _, key := range keys {
		if value, ok := claims[key].(string); ok {
			return value
		}
	}
	return ""
}

// firstRoleClaim returns the first key present holding either a single
// role string or a list of role strings
func firstRoleClaim(claims jwt.MapClaims, keys []string) []string {
	for _, key := range keys {
		switch value := claims[key].(type) {
		case string:
			return []string{value}
		case []interface{}:
			roles := make([]string, 0, len(value))
			for _, item := range value {
				if role, ok := item.(string); ok {
					roles = append(roles, role)
				}
			}
			return roles
		}
	}
	return nil
}
