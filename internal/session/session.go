package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"feedback-survey/internal/models"
	"feedback-survey/internal/repository"
)

// ErrUnauthenticated means the request carries no usable session.
var ErrUnauthenticated = errors.New("unauthenticated")

type Options struct {
	Secret     string
	TTL        time.Duration
	CookieName string
	Secure     bool
}

// Manager binds identities to clients with a signed cookie token.
type Manager struct {
	secret  []byte
	ttl     time.Duration
	cookie  string
	secure  bool
	revoker repository.SessionRevoker
	now     func() time.Time
}

type claims struct {
	UserID int64  `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

func NewManager(opts Options, revoker repository.SessionRevoker) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Manager{
		secret:  []byte(opts.Secret),
		ttl:     opts.TTL,
		cookie:  opts.CookieName,
		secure:  opts.Secure,
		revoker: revoker,
		now:     time.Now,
	}
}

// Establish issues a session for id and sets it on the response.
func (m *Manager) Establish(w http.ResponseWriter, id models.Identity) error {
	now := m.now()
	expires := now.Add(m.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		UserID: id.UserID,
		Name:   id.Name,
		Email:  id.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	})
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    signed,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Resolve returns the identity bound to the request. A missing, invalid,
// expired or revoked token yields ErrUnauthenticated; other errors come from
// the revocation store.
func (m *Manager) Resolve(r *http.Request) (models.Identity, error) {
	c, err := m.parse(r)
	if err != nil {
		return models.Identity{}, err
	}
	revoked, err := m.revoker.IsRevoked(r.Context(), c.ID)
	if err != nil {
		return models.Identity{}, err
	}
	if revoked {
		return models.Identity{}, ErrUnauthenticated
	}
	return models.Identity{UserID: c.UserID, Name: c.Name, Email: c.Email}, nil
}

// Clear revokes the request's session, if any, and removes the cookie.
func (m *Manager) Clear(w http.ResponseWriter, r *http.Request) error {
	http.SetCookie(w, &http.Cookie{
		Name:     m.cookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})

	c, err := m.parse(r)
	if err != nil {
		return nil
	}
	return m.revoker.Revoke(r.Context(), c.ID, c.ExpiresAt.Time)
}

func (m *Manager) parse(r *http.Request) (*claims, error) {
	cookie, err := r.Cookie(m.cookie)
	if err != nil || cookie.Value == "" {
		return nil, ErrUnauthenticated
	}

	var c claims
	token, err := jwt.ParseWithClaims(cookie.Value, &c,
		func(*jwt.Token) (any, error) { return m.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid || c.ID == "" || c.UserID == 0 {
		return nil, ErrUnauthenticated
	}
	return &c, nil
}
