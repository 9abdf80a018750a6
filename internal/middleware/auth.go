package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/internal/auth"
	"github.com/portfolio-dev/portfolio/internal/types"
)

// Identity is the resolved caller placed in the request context.
type Identity struct {
	UserID uint   `json:"id"`
	Role   string `json:"role"`
}

// CookieDomain is the domain attribute for cookies the middleware issues.
var CookieDomain string

const sessionCookieMaxAge = 60 * 60 * 24

// RequireAuth resolves the caller via the active session, then the
// Authorization header, then the token cookie. The first method that
// succeeds wins; a failed verification is logged and the next method is
// tried. Token-based resolution persists a session so later requests
// resolve on the session path.
func RequireAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if identity, ok := resolveSession(ctx); ok {
			setIdentity(ctx, identity)
			ctx.Next()
			return
		}

		if claims, ok := verifiedClaims(ctx); ok {
			adoptClaims(ctx, claims)
			ctx.Next()
			return
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
	}
}

// RequireAdmin gates a route to admin identities. An identity a preceding
// RequireAuth already placed in the context is honored as-is; standing
// alone, the gate resolves the caller through the same session, bearer
// and token-cookie chain, so every credential mode that can authenticate
// an admin also admits one.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		if value, exists := ctx.Get(types.ContextUserKey); exists {
			if identity, ok := value.(Identity); ok {
				if identity.Role == types.RoleAdmin {
					ctx.Next()
					return
				}
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required."})
				return
			}
		}

		resolved := false

		if identity, ok := resolveSession(ctx); ok {
			if identity.Role == types.RoleAdmin {
				setIdentity(ctx, identity)
				ctx.Next()
				return
			}
			resolved = true
		}

		if !resolved {
			if claims, ok := verifiedClaims(ctx); ok {
				if claims.Role == types.RoleAdmin {
					adoptClaims(ctx, claims)
					ctx.Next()
					return
				}
				resolved = true
			}
		}

		if resolved {
			ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. Admin privileges required."})
			return
		}

		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
	}
}

// ResolveIdentity reports the caller's identity without gating the request
// and without persisting anything. Any credential the auth chain accepts
// counts. Used by the public authentication-status endpoint.
func ResolveIdentity(ctx *gin.Context) (Identity, bool) {
	if identity, ok := resolveSession(ctx); ok {
		return identity, true
	}

	if claims, ok := verifiedClaims(ctx); ok {
		return Identity{UserID: claims.ID, Role: claims.Role}, true
	}

	return Identity{}, false
}

// verifiedClaims checks the Authorization header and then the token cookie
// for a verifiable JWT. Failures are logged and the next source is tried.
func verifiedClaims(ctx *gin.Context) (auth.Claims, bool) {
	if tokenString := bearerToken(ctx); tokenString != "" {
		claims, err := auth.VerifyJWT(tokenString)
		if err == nil {
			return claims, true
		}
		log.Printf("Token verification failed: %v", err)
	}

	if cookie, err := ctx.Cookie("token"); err == nil && cookie != "" {
		claims, err := auth.VerifyJWT(cookie)
		if err == nil {
			return claims, true
		}
		log.Printf("Cookie token verification failed: %v", err)
	}

	return auth.Claims{}, false
}

func resolveSession(ctx *gin.Context) (Identity, bool) {
	cookie, err := ctx.Cookie(auth.SessionCookieName)
	if err != nil || cookie == "" {
		return Identity{}, false
	}

	record, err := auth.ResolveCookie(cookie)
	if err != nil {
		if !errors.Is(err, auth.ErrSessionNotFound) {
			log.Printf("Session lookup failed: %v", err)
		}
		return Identity{}, false
	}

	return Identity{UserID: record.UserID, Role: record.Role}, true
}

func bearerToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}

	return parts[1]
}

// adoptClaims persists a session for a token-authenticated caller and sets
// the session cookie. Session persistence is best effort: the token already
// proved the identity.
func adoptClaims(ctx *gin.Context, claims auth.Claims) {
	session, err := auth.NewSession(claims.ID, claims.Role)
	if err != nil {
		log.Printf("Failed to persist session from token: %v", err)
	} else {
		SetSessionCookie(ctx, session.ID)
	}

	setIdentity(ctx, Identity{UserID: claims.ID, Role: claims.Role})
}

// SetSessionCookie issues the signed session cookie.
func SetSessionCookie(ctx *gin.Context, sessionID string) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    auth.EncodeCookie(sessionID),
		Path:     "/",
		Domain:   CookieDomain,
		MaxAge:   sessionCookieMaxAge,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearSessionCookie expires the session cookie.
func ClearSessionCookie(ctx *gin.Context) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   CookieDomain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})
}

func setIdentity(ctx *gin.Context, identity Identity) {
	ctx.Set(types.ContextUserKey, identity)
}
