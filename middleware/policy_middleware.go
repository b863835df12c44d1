package middleware

import (
	"net/http"

	"github.com/upb/auth-gateway/policy"
	"github.com/upb/auth-gateway/utils"
	"go.uber.org/zap"
)

// PolicyMiddleware enforces named authorization policies against the
// role claims of the authenticated caller
type PolicyMiddleware struct {
	registry *policy.Registry
	logger   *zap.Logger
}

// NewPolicyMiddleware creates a new PolicyMiddleware
func NewPolicyMiddleware(registry *policy.Registry, logger *zap.Logger) *PolicyMiddleware {
	return &PolicyMiddleware{
		registry: registry,
		logger:   logger,
	}
}

// Require is a middleware that evaluates the named policy against the
// caller's roles. Must run after RequireAuth. The 403 body carries one
// fixed message; the deny reason goes to the log only.
func (m *PolicyMiddleware) Require(policyName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := GetRequestIDFromContext(ctx)

			claims := GetClaimsFromContext(ctx)
			if claims == nil {
				m.logger.Error("claims not found in context",
					zap.String("request_id", requestID))
				_ = utils.WriteUnauthorized(w, "Authentication required")
				return
			}

			decision := m.registry.Evaluate(policyName, claims.RoleSet())
			if !decision.Allowed {
				m.logger.Warn("request blocked by policy",
					zap.String("request_id", requestID),
					zap.String("policy", policyName),
					zap.String("reason", decision.Reason),
					zap.Strings("caller_roles", claims.Roles))
				_ = utils.WriteForbidden(w, "Insufficient permissions")
				return
			}

			m.logger.Debug("policy check passed",
				zap.String("request_id", requestID),
				zap.String("policy", policyName))

			next.ServeHTTP(w, r)
		})
	}
}
