package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	goSession "github.com/MrEthical07/goSession"
)

// Mode selects where Guard looks for the session identifier.
type Mode int

const (
	// ModeCookie reads the identifier from the "sid" cookie.
	ModeCookie Mode = iota
	// ModeBearer reads the identifier from the Authorization header as a
	// bearer credential.
	ModeBearer
)

// SessionCookieName is the cookie Guard reads in [ModeCookie].
const SessionCookieName = "sid"

const (
	// NotLoggedInText is rendered when a request carries no session
	// identifier.
	NotLoggedInText = "Not logged in. Log in by going to /login or create an account at /signup"
	// InvalidSessionText is rendered in [ModeCookie] when the identifier is
	// unknown.
	InvalidSessionText = "Session is invalid. Please log in by going to /login"
	// InvalidTokenText is rendered in [ModeBearer] when the identifier is
	// unknown.
	InvalidTokenText = "Token is invalid"
)

type accountContextKey struct{}

// AccountFromContext returns the account injected by [Guard], if any.
func AccountFromContext(ctx context.Context) (*goSession.Account, bool) {
	account, ok := ctx.Value(accountContextKey{}).(*goSession.Account)
	return account, ok
}

// Guard wraps next with session resolution. A missing identifier answers 200
// with the not-logged-in advisory (an expected state); an unknown identifier
// answers 401 with the mode's invalid advisory. On success the resolved
// account is placed in the request context.
func Guard(engine *goSession.Engine, mode Mode) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if engine == nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			sessionID := extractSessionID(r, mode)

			account, err := engine.Resolve(r.Context(), sessionID)
			if err != nil {
				writeResolveFailure(w, mode, err)
				return
			}

			ctx := context.WithValue(r.Context(), accountContextKey{}, account)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractSessionID(r *http.Request, mode Mode) string {
	switch mode {
	case ModeBearer:
		token, _ := bearerToken(r.Header.Get("Authorization"))
		return token
	default:
		cookie, err := r.Cookie(SessionCookieName)
		if err != nil {
			return ""
		}
		return cookie.Value
	}
}

func writeResolveFailure(w http.ResponseWriter, mode Mode, err error) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")

	switch {
	case errors.Is(err, goSession.ErrNoSession):
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(NotLoggedInText))
	case errors.Is(err, goSession.ErrSessionInvalid):
		w.WriteHeader(http.StatusUnauthorized)
		if mode == ModeBearer {
			_, _ = w.Write([]byte(InvalidTokenText))
			return
		}
		_, _ = w.Write([]byte(InvalidSessionText))
	default:
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	}
}

func bearerToken(value string) (string, bool) {
	const bearer = "Bearer "
	if !strings.HasPrefix(value, bearer) {
		return "", false
	}

	token := value[len(bearer):]
	if token == "" {
		return "", false
	}

	return token, true
}
