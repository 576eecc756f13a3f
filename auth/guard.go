package auth

import (
	"strings"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

const identityKey = "identity"

// Guard authorizes admin requests: the bearer token is verified once
// upstream of every admin handler and the resolved email must be on the
// allow-list.
type Guard struct {
	verifier TokenVerifier
	allowed  []string
	env      string
	log      *zap.Logger
}

// NewGuard builds a guard over the configured admin emails. Matching is
// case-insensitive.
func NewGuard(verifier TokenVerifier, adminEmails []string, env string, log *zap.Logger) *Guard {
	allowed := make([]string, 0, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			allowed = append(allowed, email)
		}
	}
	return &Guard{verifier: verifier, allowed: allowed, env: env, log: log}
}

// RequireAdmin is the admin-party middleware. On success the verified
// identity is stored in the request context for handlers and the audit
// trail.
func (g *Guard) RequireAdmin(ctx iris.Context) {
	raw := bearerToken(ctx)
	if raw == "" {
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(iris.Map{"error": "unauthorized", "message": "missing credentials"})
		return
	}

	ident, err := g.verifier.Verify(ctx.Request().Context(), raw)
	if err != nil {
		body := iris.Map{"error": "unauthorized", "message": "invalid credentials"}
		if g.env != "production" {
			body["detail"] = err.Error()
		}
		ctx.StatusCode(iris.StatusUnauthorized)
		ctx.JSON(body)
		return
	}

	if !slices.Contains(g.allowed, strings.ToLower(ident.Email)) {
		g.log.Warn("admin access denied", zap.String("email", ident.Email), zap.String("subject", ident.Subject))
		body := iris.Map{"error": "forbidden", "message": "admin access required"}
		if g.env != "production" {
			body["detail"] = "email " + ident.Email + " is not an administrator"
		}
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(body)
		return
	}

	ctx.Values().Set(identityKey, ident)
	ctx.Next()
}

// IdentityFromCtx returns the identity RequireAdmin stored on the request.
func IdentityFromCtx(ctx iris.Context) (Identity, bool) {
	ident, ok := ctx.Values().Get(identityKey).(Identity)
	return ident, ok
}

func bearerToken(ctx iris.Context) string {
	header := ctx.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
