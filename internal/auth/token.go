package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/models"

	"github.com/golang-jwt/jwt/v4"
)

// ErrUnauthenticated covers every way a credential can be bad: missing,
// malformed, expired or carrying an invalid signature. Callers must not
// distinguish these cases in responses.
var ErrUnauthenticated = errors.New("invalid or expired credential")

// Principal is the verified identity attached to a request.
type Principal struct {
	UserID uint
	Email  string
	Role   models.UserRole
}

func (p Principal) IsAdmin() bool {
	return p.Role == models.RoleAdmin
}

type claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// Manager issues and verifies the signed bearer credential. Every caller,
// middleware and handler alike, goes through the same Verify routine; there
// is deliberately no unverified decode path.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret []byte, ttl time.Duration) *Manager {
	return &Manager{secret: secret, ttl: ttl}
}

// TTL returns the credential lifetime, used to size the auth cookie.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue signs a credential for u, expiring after the configured TTL.
func (m *Manager) Issue(u *models.User) (string, error) {
	now := time.Now()
	c := claims{
		Email: u.Email,
		Role:  string(u.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(u.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(m.secret)
}

// Verify validates the signature and expiry of a credential and returns
// the principal it encodes.
func (m *Manager) Verify(credential string) (*Principal, error) {
	if credential == "" {
		return nil, ErrUnauthenticated
	}
	c := &claims{}
	token, err := jwt.ParseWithClaims(credential, c, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: %v", ErrUnauthenticated, err)
	}
	id, err := strconv.ParseUint(c.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrUnauthenticated)
	}
	return &Principal{
		UserID: uint(id),
		Email:  c.Email,
		Role:   models.UserRole(c.Role),
	}, nil
}
