package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/upb/auth-gateway/config"
)

var (
	// ErrInvalidToken is the only validation failure callers should surface.
	// The sentinels below wrap it so that errors.Is(err, ErrInvalidToken)
	// holds for every failure mode; the distinction is for internal logs only.
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenMalformed is returned when the token is structurally invalid
	ErrTokenMalformed = fmt.Errorf("%w: malformed", ErrInvalidToken)

	// ErrInvalidSignature is returned when the signature does not verify
	ErrInvalidSignature = fmt.Errorf("%w: signature verification failed", ErrInvalidToken)

	// ErrInvalidIssuer is returned when the issuer claim does not match
	ErrInvalidIssuer = fmt.Errorf("%w: issuer mismatch", ErrInvalidToken)

	// ErrInvalidAudience is returned when the audience claim does not match
	ErrInvalidAudience = fmt.Errorf("%w: audience mismatch", ErrInvalidToken)

	// ErrTokenExpired is returned when the token is past its expiry
	ErrTokenExpired = fmt.Errorf("%w: expired", ErrInvalidToken)
)

// Validator verifies bearer tokens signed by the Issuer. It is stateless
// and side-effect-free: safe to call concurrently and repeatedly for the
// same token.
type Validator struct {
	key      []byte
	issuer   string
	audience string
	now      func() time.Time
}

// NewValidator creates a token validator from the given JWT configuration
func NewValidator(cfg config.JWTConfig) *Validator {
	return &Validator{
		key:      []byte(cfg.Key),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		now:      time.Now,
	}
}

// Validate checks structure, signature, issuer, audience, and expiry in
// that order, short-circuiting on the first failure. On success it returns
// the extracted claims; the role store is never consulted.
func (v *Validator) Validate(rawToken string) (*Claims, error) {
	claims := &Claims{}

	parsed, err := jwt.ParseWithClaims(rawToken, claims,
		func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return v.key, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(v.now),
		jwt.WithIssuer(v.issuer),
		jwt.WithAudience(v.audience),
		jwt.WithExpirationRequired(),
	)

	if err != nil {
		return nil, mapParseError(err)
	}

	if !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// mapParseError converts jwt library errors into the package sentinels so
// that internal logs can tell failure modes apart while callers collapse
// everything to ErrInvalidToken.
func mapParseError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSignature
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrInvalidIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrInvalidAudience
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrTokenExpired
	default:
		return fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
}
