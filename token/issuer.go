package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/upb/auth-gateway/config"
	"github.com/upb/auth-gateway/models"
)

// Issuer builds and signs bearer tokens. It is a pure function of its
// inputs, the clock, and the process-wide signing key loaded at startup,
// so it is safe for unbounded concurrent use.
type Issuer struct {
	key      []byte
	issuer   string
	audience string
	expiry   time.Duration
	now      func() time.Time
}

// NewIssuer creates a token issuer from the given JWT configuration.
// The configuration is assumed validated; an empty key is a startup
// misconfiguration, not a per-request condition.
func NewIssuer(cfg config.JWTConfig) *Issuer {
	return &Issuer{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   cfg.Expiry(),
		now:      time.Now,
	}
}

// Issue mints a signed token embedding the identity and its current role
// set. Roles are captured as of issuance time; later role changes only
// affect future tokens.
func (i *Issuer) Issue(identity models.Identity, roles models.RoleSet) (string, error) {
	now := i.now()

	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(), // jti, reserved for future revocation support
			Subject:   identity.ID,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.expiry)),
		},
		Email: identity.Email,
		Name:  identity.Name,
		Roles: roles.Names(),
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := jwtToken.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
