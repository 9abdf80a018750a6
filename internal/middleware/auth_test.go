package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/internal/auth"
	"github.com/stretchr/testify/require"
)

func setupAuth(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, auth.InitJWTSecret("middleware-test-secret"))
	auth.InitSessions(auth.NewMemorySessionStore(), "cookie-secret", time.Hour)
}

func authRouter() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(), func(ctx *gin.Context) {
		identity := ctx.MustGet("user").(Identity)
		ctx.JSON(http.StatusOK, identity)
	})
	r.GET("/admin", RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	// Wired the way the admin routes are in production.
	r.GET("/manage", RequireAuth(), RequireAdmin(), func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func TestRequireAuth_NoCredentials(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Contains(t, w.Body.String(), "Not authenticated")
}

func TestRequireAuth_BearerToken(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(12, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":12`)

	// Token resolution persists a session for follow-up requests.
	cookies := w.Result().Cookies()
	var sessionCookie *http.Cookie
	for _, c := range cookies {
		if c.Name == auth.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)

	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req2.AddCookie(sessionCookie)
	r.ServeHTTP(w2, req2)

	require.Equal(t, http.StatusOK, w2.Code)
	require.Contains(t, w2.Body.String(), `"id":12`)
}

func TestRequireAuth_TokenCookie(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(5, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":5`)
}

func TestRequireAuth_BadTokenFallsThroughToCookie(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(8, "user")
	require.NoError(t, err)

	// A broken bearer token must not reject the request outright when the
	// token cookie still verifies.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"id":8`)
}

func TestRequireAuth_ForgedSessionCookie(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: "forged-session-id"})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAdmin_AdminToken(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(1, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_UserToken(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(2, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Contains(t, w.Body.String(), "Admin privileges required")
}

func TestRequireAdmin_UserSession(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	session, err := auth.NewSession(3, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: auth.EncodeCookie(session.ID)})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_AdminSession(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	session, err := auth.NewSession(4, "admin")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: auth.EncodeCookie(session.ID)})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_AdminTokenCookie(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(9, "admin")
	require.NoError(t, err)

	// An admin whose only credential is the token cookie must clear both
	// middlewares on the chained admin routes.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manage", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin_UserTokenCookie(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(10, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manage", nil)
	req.AddCookie(&http.Cookie{Name: "token", Value: token})
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdmin_ReusesResolvedIdentity(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(11, "admin")
	require.NoError(t, err)

	// The admin gate must not adopt the token a second time, so a chained
	// request persists exactly one session.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/manage", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	sessionCookies := 0
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			sessionCookies++
		}
	}
	require.Equal(t, 1, sessionCookies)
}

func TestRequireAdmin_NoCredentials(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestResolveIdentity_BearerToken(t *testing.T) {
	setupAuth(t)

	token, err := auth.GenerateJWT(21, "user")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)
	ctx.Request.Header.Set("Authorization", "Bearer "+token)

	identity, ok := ResolveIdentity(ctx)
	require.True(t, ok)
	require.Equal(t, uint(21), identity.UserID)

	// The status check must not mint a session.
	require.Empty(t, w.Result().Cookies())
}

func TestResolveIdentity_NoCredentials(t *testing.T) {
	setupAuth(t)

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)
	ctx.Request = httptest.NewRequest(http.MethodGet, "/api/auth/check", nil)

	_, ok := ResolveIdentity(ctx)
	require.False(t, ok)
}

func TestTokenReplayResolvesSameIdentity(t *testing.T) {
	setupAuth(t)
	r := authRouter()

	token, err := auth.GenerateJWT(77, "user")
	require.NoError(t, err)

	// Fresh request with no session: replaying the token must resolve the
	// identity that was issued it.
	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Contains(t, w.Body.String(), `"id":77`)
	}
}
