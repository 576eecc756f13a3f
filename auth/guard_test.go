package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

type stubVerifier struct {
	identities map[string]Identity
}

func (s *stubVerifier) Verify(ctx context.Context, token string) (Identity, error) {
	ident, ok := s.identities[token]
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	return ident, nil
}

// buildTestApp wires a minimal admin party behind the guard.
func buildTestApp(t *testing.T, guard *Guard) *iris.Application {
	t.Helper()
	app := iris.New()

	admin := app.Party("/api/admin", guard.RequireAdmin)
	admin.Get("/ping", func(ctx iris.Context) {
		ident, ok := IdentityFromCtx(ctx)
		if !ok {
			ctx.StatusCode(iris.StatusInternalServerError)
			return
		}
		ctx.JSON(iris.Map{"email": ident.Email})
	})

	if err := app.Build(); err != nil {
		t.Fatalf("building test app: %v", err)
	}
	return app
}

func TestGuardRequireAdmin(t *testing.T) {
	verifier := &stubVerifier{identities: map[string]Identity{
		"admin-token":   {Subject: "sub-1", Email: "farm@example.com"},
		"visitor-token": {Subject: "sub-2", Email: "visitor@example.com"},
	}}
	guard := NewGuard(verifier, []string{"Farm@Example.com"}, "test", zap.NewNop())
	app := buildTestApp(t, guard)

	do := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/ping", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp := httptest.NewRecorder()
		app.ServeHTTP(resp, req)
		return resp
	}

	if resp := do(""); resp.Code != http.StatusUnauthorized {
		t.Errorf("no token: %d, want 401", resp.Code)
	}
	if resp := do("garbage"); resp.Code != http.StatusUnauthorized {
		t.Errorf("rejected token: %d, want 401", resp.Code)
	}
	if resp := do("visitor-token"); resp.Code != http.StatusForbidden {
		t.Errorf("non-admin email: %d, want 403", resp.Code)
	}

	// Allow-list matching is case-insensitive.
	if resp := do("admin-token"); resp.Code != http.StatusOK {
		t.Errorf("admin email: %d, want 200 (body: %s)", resp.Code, resp.Body.String())
	}
}

func TestBearerToken(t *testing.T) {
	ctxFor := func(header string) string {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		app := iris.New()
		var got string
		app.Get("/", func(ctx iris.Context) {
			got = bearerToken(ctx)
		})
		if err := app.Build(); err != nil {
			t.Fatalf("building app: %v", err)
		}
		app.ServeHTTP(httptest.NewRecorder(), req)
		return got
	}

	if got := ctxFor("Bearer abc"); got != "abc" {
		t.Errorf("bearer = %q, want abc", got)
	}
	if got := ctxFor("bearer abc"); got != "abc" {
		t.Errorf("scheme should match case-insensitively, got %q", got)
	}
	if got := ctxFor("Basic abc"); got != "" {
		t.Errorf("non-bearer schemes must be ignored, got %q", got)
	}
	if got := ctxFor(""); got != "" {
		t.Errorf("missing header must yield empty, got %q", got)
	}
}
