package auth

import (
	"testing"
	"time"

	"github.com/portfolio-dev/portfolio/internal/models"
	"github.com/stretchr/testify/require"
)

func TestCookieCodec_RoundTrip(t *testing.T) {
	codec := NewCookieCodec([]byte("cookie-secret"))

	encoded := codec.EncodeSessionID("session-123")
	require.NotEqual(t, "session-123", encoded)

	decoded, ok := codec.DecodeSessionID(encoded)
	require.True(t, ok)
	require.Equal(t, "session-123", decoded)
}

func TestCookieCodec_TamperedSignature(t *testing.T) {
	codec := NewCookieCodec([]byte("cookie-secret"))

	encoded := codec.EncodeSessionID("session-123")
	_, ok := codec.DecodeSessionID(encoded + "x")
	require.False(t, ok)

	_, ok = codec.DecodeSessionID("session-456." + "AAAA")
	require.False(t, ok)
}

func TestCookieCodec_WrongSecret(t *testing.T) {
	encoded := NewCookieCodec([]byte("secret-a")).EncodeSessionID("session-123")

	_, ok := NewCookieCodec([]byte("secret-b")).DecodeSessionID(encoded)
	require.False(t, ok)
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()

	session := models.Session{ID: "abc", UserID: 7, Role: "user", ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, store.Create(session))

	got, err := store.Get("abc")
	require.NoError(t, err)
	require.Equal(t, uint(7), got.UserID)

	require.NoError(t, store.Delete("abc"))
	_, err = store.Get("abc")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemorySessionStore_DeleteExpired(t *testing.T) {
	store := NewMemorySessionStore()

	require.NoError(t, store.Create(models.Session{ID: "stale", UserID: 1, Role: "user", ExpiresAt: time.Now().Add(-time.Minute)}))
	require.NoError(t, store.Create(models.Session{ID: "live", UserID: 2, Role: "user", ExpiresAt: time.Now().Add(time.Hour)}))

	require.NoError(t, store.DeleteExpired(time.Now()))

	_, err := store.Get("stale")
	require.ErrorIs(t, err, ErrSessionNotFound)
	_, err = store.Get("live")
	require.NoError(t, err)
}

func TestNewSessionAndResolveCookie(t *testing.T) {
	InitSessions(NewMemorySessionStore(), "cookie-secret", time.Hour)

	session, err := NewSession(9, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, session.ID)

	resolved, err := ResolveCookie(EncodeCookie(session.ID))
	require.NoError(t, err)
	require.Equal(t, uint(9), resolved.UserID)
	require.Equal(t, "admin", resolved.Role)
}

func TestResolveCookie_Expired(t *testing.T) {
	store := NewMemorySessionStore()
	InitSessions(store, "cookie-secret", time.Hour)

	expired := models.Session{ID: "old", UserID: 1, Role: "user", ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, store.Create(expired))

	_, err := ResolveCookie(EncodeCookie("old"))
	require.ErrorIs(t, err, ErrSessionNotFound)

	// Expired records are reaped on access.
	_, err = store.Get("old")
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestDestroyCookie(t *testing.T) {
	store := NewMemorySessionStore()
	InitSessions(store, "cookie-secret", time.Hour)

	session, err := NewSession(3, "user")
	require.NoError(t, err)

	DestroyCookie(EncodeCookie(session.ID))
	_, err = store.Get(session.ID)
	require.ErrorIs(t, err, ErrSessionNotFound)
}
