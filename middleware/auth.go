// middleware/auth.go
package middleware

import (
	"context"
	"net/http"
	"strings"

	"hausa-platform/apperr"
	"hausa-platform/services"

	"github.com/gorilla/sessions"
)

// SessionName cookie oturumunun adı.
const SessionName = "session"

type ctxKey int

const identityKey ctxKey = iota

// Identity doğrulanmış isteğin sahibi.
type Identity struct {
	UserID    string
	SessionID string
	Username  string
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// UserID isteğin kullanıcısını döner; anonim istekte boştur.
func UserID(r *http.Request) string {
	id, _ := IdentityFrom(r.Context())
	return id.UserID
}

var errNoCredentials = apperr.New(apperr.Unauthorized, "authentication required")

// Auth cookie oturumunu, yoksa Bearer JWT'yi kabul eder; oturum satırı açık olmalıdır.
func Auth(auth *services.Auth, store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := identify(r, auth, store)
			if err != nil {
				apperr.Write(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		})
	}
}

// OptionalAuth kimlik varsa context'e ekler, yoksa isteği anonim geçirir.
func OptionalAuth(auth *services.Auth, store sessions.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if id, err := identify(r, auth, store); err == nil {
				r = r.WithContext(WithIdentity(r.Context(), id))
			}
			next.ServeHTTP(w, r)
		})
	}
}

func identify(r *http.Request, auth *services.Auth, store sessions.Store) (Identity, error) {
	var id Identity

	// Session kontrolü
	session, _ := store.Get(r, SessionName)
	if ok, _ := session.Values["authenticated"].(bool); ok {
		id.UserID, _ = session.Values["user_id"].(string)
		id.SessionID, _ = session.Values["session_id"].(string)
		id.Username, _ = session.Values["username"].(string)
	} else {
		// JWT token kontrolü
		header := r.Header.Get("Authorization")
		if header == "" {
			return id, errNoCredentials
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return id, apperr.New(apperr.Unauthorized, "invalid authorization header")
		}
		claims, err := auth.ParseToken(strings.TrimSpace(parts[1]))
		if err != nil {
			return id, err
		}
		id = Identity{UserID: claims.Subject, SessionID: claims.SessionID, Username: claims.Username}
	}

	if id.UserID == "" || id.SessionID == "" {
		return id, errNoCredentials
	}
	if _, err := auth.Authenticate(r.Context(), id.UserID, id.SessionID); err != nil {
		return id, err
	}
	return id, nil
}
