package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/redeescolar/school-portal/internal/core/domain"
)

var (
	ErrTokenInvalid = errors.New("invalid session token")
	ErrTokenExpired = errors.New("session token expired")
)

// DefaultSessionTTL bounds a session when no TTL is configured.
const DefaultSessionTTL = 24 * time.Hour

// SessionCodec signs and verifies session tokens (HS256 JWT). The signing
// key is process-wide configuration; rotating it invalidates every
// outstanding token. The codec performs no I/O.
type SessionCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewSessionCodec(secret string, ttl time.Duration) *SessionCodec {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionCodec{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue serializes claims into a signed token expiring after the codec TTL.
// IssuedAt and ExpiresAt are set here; callers fill the rest.
func (c *SessionCodec) Issue(claims *domain.SessionClaims) (string, error) {
	now := c.now().UTC()
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(c.ttl))

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(c.secret)
}

// Verify checks the signature and expiry of a token. Expired and tampered
// tokens are distinguishable to callers (ErrTokenExpired vs ErrTokenInvalid)
// so the gate can log them apart, but both mean "reauthenticate".
func (c *SessionCodec) Verify(token string) (*domain.SessionClaims, error) {
	claims := &domain.SessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return c.now() }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !parsed.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
