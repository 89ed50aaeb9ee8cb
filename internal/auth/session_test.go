package auth

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestSessionExtractor_Extract(t *testing.T) {
	c := mustCodec(t, "secret")
	s := NewSessionExtractor(c, zerolog.Nop())
	token, _ := c.Issue(testIdentity())

	t.Run("no header", func(t *testing.T) {
		if s.Extract(nil) != nil {
			t.Fatal("expected nil identity")
		}
	})

	t.Run("other cookies only", func(t *testing.T) {
		h := http.Header{"Cookie": {"theme=dark; lang=es"}}
		if s.Extract(h) != nil {
			t.Fatal("expected nil identity")
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		h := http.Header{"Cookie": {CookieName + "=garbage"}}
		if s.Extract(h) != nil {
			t.Fatal("expected nil identity")
		}
	})

	t.Run("valid among others", func(t *testing.T) {
		h := http.Header{"Cookie": {"theme=dark; " + CookieName + "=" + token + "; lang=es"}}
		id := s.Extract(h)
		if id == nil || id.ID != "u-1" {
			t.Fatalf("expected identity u-1, got %+v", id)
		}
	})
}

func TestSessionCookie_Attributes(t *testing.T) {
	rec := httptest.NewRecorder()
	http.SetCookie(rec, SessionCookie("tok", 7*24*time.Hour, true))
	got := rec.Header().Get("Set-Cookie")

	for _, want := range []string{CookieName + "=tok", "Path=/", "Max-Age=604800", "HttpOnly", "Secure", "SameSite=Lax"} {
		if !strings.Contains(got, want) {
			t.Fatalf("expected %q in %q", want, got)
		}
	}
}

func TestClearedSessionCookie(t *testing.T) {
	rec := httptest.NewRecorder()
	http.SetCookie(rec, ClearedSessionCookie(false))
	got := rec.Header().Get("Set-Cookie")

	if !strings.HasPrefix(got, CookieName+"=;") {
		t.Fatalf("expected empty %s cookie, got %q", CookieName, got)
	}
	if !strings.Contains(got, "Max-Age=0") {
		t.Fatalf("expected Max-Age=0, got %q", got)
	}
	if strings.Contains(got, "Secure") {
		t.Fatalf("did not expect Secure outside production, got %q", got)
	}
}
