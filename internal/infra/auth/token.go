package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	CookieName = "admin_token"
	sessionTTL = 7 * 24 * time.Hour
	RoleAdmin  = "admin"
)

// ErrUnauthenticated covers missing, expired and tampered tokens alike;
// callers cannot distinguish them. ErrForbidden means the signature was
// fine but the role claim is not admin.
var (
	ErrUnauthenticated = errors.New("missing or invalid session")
	ErrForbidden       = errors.New("admin role required")
)

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies the stateless admin session token.
type TokenManager struct {
	secret        []byte
	secureCookies bool
}

func NewTokenManager(secret string, secureCookies bool) *TokenManager {
	return &TokenManager{
		secret:        []byte(secret),
		secureCookies: secureCookies,
	}
}

func (m *TokenManager) Sign(role, subject string) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

func (m *TokenManager) Verify(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrUnauthenticated
	}
	return claims, nil
}

// RequireAdmin extracts the session cookie and checks signature, expiry
// and the role claim. It is the gate in front of every admin operation.
func (m *TokenManager) RequireAdmin(r *http.Request) (*Claims, error) {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	claims, err := m.Verify(cookie.Value)
	if err != nil {
		return nil, err
	}
	if claims.Role != RoleAdmin {
		return nil, ErrForbidden
	}
	return claims, nil
}

func (m *TokenManager) SessionCookie(token string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(sessionTTL.Seconds()),
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}

func (m *TokenManager) ClearCookie() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secureCookies,
		SameSite: http.SameSiteStrictMode,
	}
}
