// Package gate implements the admin access gate. The original shipped the
// secret to the browser and kept a base64 marker in local storage; that was a
// deterrent, not a boundary. Here the comparison happens server-side and a
// successful unlock issues a signed token backed by a revocable server-side
// marker, so logout actually locks the gate again.
package gate

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/carex-health/carex-api/pkg/metrics"
	"github.com/carex-health/carex-api/pkg/session"
)

// PasskeyLength is the exact length of the admin passkey.
const PasskeyLength = 6

var (
	// ErrPasskeyLength means the entry was not 6 characters; no comparison
	// was attempted.
	ErrPasskeyLength = errors.New("passkey must be 6 characters")
	// ErrPasskeyMismatch means a 6-character entry did not match the secret.
	ErrPasskeyMismatch = errors.New("passkey mismatch")
	// ErrSessionInvalid means the token is missing, malformed, expired, or
	// its marker was revoked.
	ErrSessionInvalid = errors.New("invalid session")
)

// Config carries the gate secrets. PasskeyHash (bcrypt) is preferred; the
// plaintext Passkey is a fallback for local setups.
type Config struct {
	Passkey     string
	PasskeyHash string
	TokenSecret string
	TokenExpiry time.Duration
}

// Session is an unlocked admin session.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type Service struct {
	cfg      Config
	sessions session.Store
	metrics  *metrics.Metrics
}

func NewService(cfg Config, sessions session.Store, m *metrics.Metrics) *Service {
	if cfg.TokenExpiry <= 0 {
		cfg.TokenExpiry = 12 * time.Hour
	}
	return &Service{cfg: cfg, sessions: sessions, metrics: m}
}

// Unlock compares the entered passkey with the configured secret and, on a
// match, persists a session marker and returns a signed token.
func (s *Service) Unlock(ctx context.Context, passkey string) (*Session, error) {
	if len(passkey) != PasskeyLength {
		s.countAttempt("bad_length")
		return nil, ErrPasskeyLength
	}

	if !s.passkeyMatches(passkey) {
		s.countAttempt("mismatch")
		return nil, ErrPasskeyMismatch
	}

	sessionID := uuid.New().String()
	expiresAt := time.Now().Add(s.cfg.TokenExpiry)

	if err := s.sessions.Put(ctx, sessionID, s.cfg.TokenExpiry); err != nil {
		return nil, fmt.Errorf("failed to persist session marker: %w", err)
	}

	claims := jwt.MapClaims{
		"sub": "admin",
		"sid": sessionID,
		"iat": time.Now().Unix(),
		"exp": expiresAt.Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.cfg.TokenSecret))
	if err != nil {
		return nil, fmt.Errorf("failed to sign session token: %w", err)
	}

	s.countAttempt("success")
	return &Session{Token: token, ExpiresAt: expiresAt}, nil
}

// Verify checks the token signature and expiry, then requires the session
// marker to still exist. A revoked marker locks the gate even for a token
// that has not expired.
func (s *Service) Verify(ctx context.Context, token string) error {
	sessionID, err := s.parseSessionID(token)
	if err != nil {
		return ErrSessionInvalid
	}

	exists, err := s.sessions.Exists(ctx, sessionID)
	if err != nil {
		return fmt.Errorf("failed to check session marker: %w", err)
	}
	if !exists {
		return ErrSessionInvalid
	}
	return nil
}

// Logout revokes the session marker. An invalid token is already logged out.
func (s *Service) Logout(ctx context.Context, token string) error {
	sessionID, err := s.parseSessionID(token)
	if err != nil {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to revoke session marker: %w", err)
	}
	return nil
}

func (s *Service) passkeyMatches(passkey string) bool {
	if s.cfg.PasskeyHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.cfg.PasskeyHash), []byte(passkey)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(s.cfg.Passkey), []byte(passkey)) == 1
}

func (s *Service) parseSessionID(token string) (string, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.cfg.TokenSecret), nil
	})
	if err != nil || !parsed.Valid {
		return "", ErrSessionInvalid
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrSessionInvalid
	}
	sessionID, ok := claims["sid"].(string)
	if !ok || sessionID == "" {
		return "", ErrSessionInvalid
	}
	return sessionID, nil
}

func (s *Service) countAttempt(outcome string) {
	if s.metrics != nil {
		s.metrics.GateUnlockAttempts.WithLabelValues(outcome).Inc()
	}
}
