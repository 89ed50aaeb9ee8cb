package auth

import (
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/taskflow/taskboard/internal/core/domain"
)

// CookieName is the cookie carrying the session token.
const CookieName = "auth_token"

// SessionExtractor reads the session cookie from request headers.
type SessionExtractor struct {
	codec *TokenCodec
	log   zerolog.Logger
}

func NewSessionExtractor(codec *TokenCodec, log zerolog.Logger) *SessionExtractor {
	return &SessionExtractor{codec: codec, log: log}
}

// Extract returns the identity claimed by the session cookie, or nil when
// the cookie is absent, expired or corrupt. It never fails.
func (s *SessionExtractor) Extract(header http.Header) *domain.Identity {
	token := sessionToken(header)
	if token == "" {
		return nil
	}

	identity, err := s.codec.Decode(token)
	if err != nil {
		s.log.Debug().Err(err).Msg("discarding session cookie")
		return nil
	}
	return &identity
}

func sessionToken(header http.Header) string {
	if header == nil {
		return ""
	}
	r := http.Request{Header: header}
	c, err := r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

// SessionCookie builds the cookie set after a successful login. Its Max-Age
// mirrors the token lifetime.
func SessionCookie(token string, ttl time.Duration, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearedSessionCookie overwrites the session cookie with an empty value.
// A negative MaxAge is how net/http emits "Max-Age=0".
func ClearedSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
