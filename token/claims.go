// Package token issues and validates the signed bearer tokens that carry
// identity and role claims between the auth gateway and its clients.
package token

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/auth-gateway/models"
)

// Claims represents the claims embedded in an issued token
type Claims struct {
	jwt.RegisteredClaims
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Roles []string `json:"roles,omitempty"`
}

// Identity returns the identity view carried by the claims
func (c *Claims) Identity() models.Identity {
	return models.Identity{
		ID:    c.Subject,
		Email: c.Email,
		Name:  c.Name,
	}
}

// RoleSet returns the role claims as a set
func (c *Claims) RoleSet() models.RoleSet {
	return models.NewRoleSet(c.Roles...)
}
