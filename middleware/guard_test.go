package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	goSession "github.com/MrEthical07/goSession"
)

func newGuardedHandler(t *testing.T, mode Mode) (*goSession.Engine, http.Handler) {
	t.Helper()

	engine, err := goSession.New().Build()
	if err != nil {
		t.Fatalf("building engine: %v", err)
	}
	t.Cleanup(engine.Close)

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := AccountFromContext(r.Context())
		if !ok {
			t.Error("guarded handler reached without an account in context")
			return
		}
		_, _ = w.Write([]byte("Hello, " + account.Username + "!"))
	})

	return engine, Guard(engine, mode)(inner)
}

func registerAndLogin(t *testing.T, engine *goSession.Engine) string {
	t.Helper()

	ctx := context.Background()
	if err := engine.Register(ctx, goSession.RegisterRequest{Username: "alice", Password: "secret", Bio: "hi"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	sid, err := engine.Authenticate(ctx, "alice", "secret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	return sid
}

func TestGuardCookieMode(t *testing.T) {
	engine, handler := newGuardedHandler(t, ModeCookie)
	sid := registerAndLogin(t, engine)

	t.Run("valid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: sid})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if got := rec.Body.String(); got != "Hello, alice!" {
			t.Fatalf("body %q", got)
		}
	})

	t.Run("no cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status %d, want 200 advisory", rec.Code)
		}
		if got := rec.Body.String(); got != NotLoggedInText {
			t.Fatalf("body %q", got)
		}
	})

	t.Run("unknown session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
		if got := rec.Body.String(); got != InvalidSessionText {
			t.Fatalf("body %q", got)
		}
	})
}

func TestGuardBearerMode(t *testing.T) {
	engine, handler := newGuardedHandler(t, ModeBearer)
	sid := registerAndLogin(t, engine)

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.Header.Set("Authorization", "Bearer "+sid)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status %d", rec.Code)
		}
		if got := rec.Body.String(); got != "Hello, alice!" {
			t.Fatalf("body %q", got)
		}
	})

	t.Run("no header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK || rec.Body.String() != NotLoggedInText {
			t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("status %d, want 401", rec.Code)
		}
		if got := rec.Body.String(); got != InvalidTokenText {
			t.Fatalf("body %q", got)
		}
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/home", nil)
		req.Header.Set("Authorization", "Basic abc123")
		rec := httptest.NewRecorder()

		handler.ServeHTTP(rec, req)

		// Unparseable credentials read as "no session presented".
		if rec.Code != http.StatusOK || rec.Body.String() != NotLoggedInText {
			t.Fatalf("status %d body %q", rec.Code, rec.Body.String())
		}
	})
}

func TestGuardNilEngine(t *testing.T) {
	handler := Guard(nil, ModeCookie)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Error("inner handler must not run without an engine")
	}))

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", rec.Code)
	}
}

func TestAccountFromContextMissing(t *testing.T) {
	if _, ok := AccountFromContext(context.Background()); ok {
		t.Fatal("bare context must not yield an account")
	}
}
