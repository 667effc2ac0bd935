package auth

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session token.
const SessionCookieName = "worktrack_session"

// LoginCookieName carries the pre-session CSRF token handed out by the login form.
const LoginCookieName = "worktrack_login"

const (
	sessionIssuer = "worktrack"
	loginAudience = "login"
	loginTokenTTL = time.Hour
)

// ErrNoSession is returned when the request carries no valid session cookie.
var ErrNoSession = errors.New("no valid session")

// Claims is the JWT payload of a session cookie.
type Claims struct {
	Username  string `json:"username"`
	CSRFToken string `json:"csrf"`
	jwtlib.RegisteredClaims
}

// Session is a parsed, validated session.
type Session struct {
	UserID    int64
	Username  string
	CSRFToken string
	ExpiresAt time.Time
}

// SessionManager issues and validates session cookies signed with HS256.
type SessionManager struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessionManager creates a SessionManager. secure marks cookies Secure (production only).
func NewSessionManager(secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{secret: []byte(secret), ttl: ttl, secure: secure}
}

// Issue signs a new session for id, sets it as a cookie on w, and returns the session.
// Each login gets a fresh CSRF token.
func (m *SessionManager) Issue(w http.ResponseWriter, id *Identity) (*Session, error) {
	now := time.Now()
	expires := now.Add(m.ttl)
	csrf := rand.Text()

	claims := Claims{
		Username:  id.Username,
		CSRFToken: csrf,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(id.UserID, 10),
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expires),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return nil, fmt.Errorf("signing session: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(m.ttl.Seconds()),
		Expires:  expires,
	})

	return &Session{
		UserID:    id.UserID,
		Username:  id.Username,
		CSRFToken: csrf,
		ExpiresAt: expires,
	}, nil
}

// IssueLoginToken sets a short-lived signed cookie holding a fresh CSRF token for the login
// form and returns the token.
func (m *SessionManager) IssueLoginToken(w http.ResponseWriter) (string, error) {
	now := time.Now()
	expires := now.Add(loginTokenTTL)
	csrf := rand.Text()

	claims := Claims{
		CSRFToken: csrf,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    sessionIssuer,
			Audience:  jwtlib.ClaimStrings{loginAudience},
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(expires),
		},
	}
	token, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("signing login token: %w", err)
	}

	http.SetCookie(w, &http.Cookie{
		Name:     LoginCookieName,
		Value:    token,
		Path:     "/login",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(loginTokenTTL.Seconds()),
		Expires:  expires,
	})

	return csrf, nil
}

// LoginToken returns the CSRF token from a valid login cookie on r.
func (m *SessionManager) LoginToken(r *http.Request) (string, error) {
	cookie, err := r.Cookie(LoginCookieName)
	if err != nil || cookie.Value == "" {
		return "", ErrNoSession
	}

	claims := &Claims{}
	_, err = jwtlib.ParseWithClaims(cookie.Value, claims, func(t *jwtlib.Token) (any, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithIssuer(sessionIssuer),
		jwtlib.WithAudience(loginAudience),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoSession, err)
	}
	if claims.CSRFToken == "" {
		return "", ErrNoSession
	}
	return claims.CSRFToken, nil
}

// ClearLoginToken expires the login cookie.
func (m *SessionManager) ClearLoginToken(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     LoginCookieName,
		Value:    "",
		Path:     "/login",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}

// Parse validates the session cookie on r.
func (m *SessionManager) Parse(r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, ErrNoSession
	}

	parsed, err := jwtlib.ParseWithClaims(cookie.Value, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return m.secret, nil
	},
		jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Name}),
		jwtlib.WithIssuer(sessionIssuer),
		jwtlib.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoSession, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrNoSession
	}

	userID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || claims.CSRFToken == "" {
		return nil, ErrNoSession
	}

	return &Session{
		UserID:    userID,
		Username:  claims.Username,
		CSRFToken: claims.CSRFToken,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
}
