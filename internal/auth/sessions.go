package auth

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/models"
	"gorm.io/gorm"
)

const SessionCookieName = "portfolio_session"

var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists server-side login sessions.
type SessionStore interface {
	Create(session models.Session) error
	Get(id string) (models.Session, error)
	Delete(id string) error
	DeleteExpired(before time.Time) error
}

var (
	Sessions   SessionStore
	sessionTTL = 24 * time.Hour
	codec      CookieCodec
)

// InitSessions wires the session store and the cookie signing secret.
func InitSessions(store SessionStore, cookieSecret string, ttl time.Duration) {
	Sessions = store
	codec = NewCookieCodec([]byte(cookieSecret))
	if ttl > 0 {
		sessionTTL = ttl
	}
}

// StartSessionSweeper deletes expired sessions on the given interval until
// the context is cancelled. Resolution already reaps lazily; the sweeper
// clears rows for sessions that are never presented again.
func StartSessionSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := Sessions.DeleteExpired(time.Now()); err != nil {
					log.Printf("Expired session sweep failed: %v", err)
				}
			}
		}
	}()
}

// NewSession creates and persists a session for the given identity and
// returns it for cookie issuance.
func NewSession(userID uint, role string) (models.Session, error) {
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		ExpiresAt: time.Now().Add(sessionTTL),
	}

	if err := Sessions.Create(session); err != nil {
		return models.Session{}, err
	}

	return session, nil
}

// ResolveCookie maps a session cookie value back to a live session.
func ResolveCookie(cookieValue string) (models.Session, error) {
	id, ok := codec.DecodeSessionID(cookieValue)
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}

	session, err := Sessions.Get(id)
	if err != nil {
		return models.Session{}, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = Sessions.Delete(session.ID)
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

// EncodeCookie signs a session id for the cookie value.
func EncodeCookie(sessionID string) string {
	return codec.EncodeSessionID(sessionID)
}

// DestroyCookie removes the session a cookie value points at, if any.
func DestroyCookie(cookieValue string) {
	if id, ok := codec.DecodeSessionID(cookieValue); ok {
		_ = Sessions.Delete(id)
	}
}

// CookieCodec signs session ids so the cookie value cannot be forged.
type CookieCodec struct {
	secret []byte
}

func NewCookieCodec(secret []byte) CookieCodec {
	secretCopy := make([]byte, len(secret))
	copy(secretCopy, secret)
	return CookieCodec{secret: secretCopy}
}

func (c CookieCodec) EncodeSessionID(sessionID string) string {
	if len(c.secret) == 0 {
		return sessionID
	}

	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(sessionID))
	sig := mac.Sum(nil)

	return sessionID + "." + base64.RawURLEncoding.EncodeToString(sig)
}

func (c CookieCodec) DecodeSessionID(cookieValue string) (string, bool) {
	if len(c.secret) == 0 {
		return cookieValue, cookieValue != ""
	}

	id, sigB64, ok := strings.Cut(cookieValue, ".")
	if !ok || id == "" || sigB64 == "" {
		return "", false
	}

	sig, err := base64.RawURLEncoding.DecodeString(sigB64)
	if err != nil || len(sig) != sha256.Size {
		return "", false
	}

	mac := hmac.New(sha256.New, c.secret)
	_, _ = mac.Write([]byte(id))
	expected := mac.Sum(nil)
	if subtle.ConstantTimeCompare(sig, expected) != 1 {
		return "", false
	}

	return id, true
}

// GormSessionStore keeps sessions in the database alongside everything else.
type GormSessionStore struct{}

func (GormSessionStore) Create(session models.Session) error {
	return db.DB.Create(&session).Error
}

func (GormSessionStore) Get(id string) (models.Session, error) {
	var session models.Session
	if err := db.DB.Where("id = ?", id).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrSessionNotFound
		}
		return models.Session{}, err
	}
	return session, nil
}

func (GormSessionStore) Delete(id string) error {
	return db.DB.Where("id = ?", id).Delete(&models.Session{}).Error
}

func (GormSessionStore) DeleteExpired(before time.Time) error {
	return db.DB.Where("expires_at < ?", before).Delete(&models.Session{}).Error
}

// MemorySessionStore is an in-process store used in tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Session)}
}

func (m *MemorySessionStore) Create(session models.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[session.ID] = session
	return nil
}

func (m *MemorySessionStore) Get(id string) (models.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return models.Session{}, ErrSessionNotFound
	}
	return session, nil
}

func (m *MemorySessionStore) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *MemorySessionStore) DeleteExpired(before time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, session := range m.sessions {
		if session.ExpiresAt.Before(before) {
			delete(m.sessions, id)
		}
	}
	return nil
}
