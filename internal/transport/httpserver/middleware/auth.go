package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	userdomain "budget-app-go/internal/domain/user"
	"budget-app-go/internal/token"
	"budget-app-go/pkg/logger"
)

type contextKey int

const (
	userKey contextKey = iota
	requestInfoKey
)

// User is the authenticated identity carried through the request context.
type User struct {
	ID    uint
	Email string
}

// Authenticator resolves bearer tokens to users for protected routes.
type Authenticator struct {
	tokens *token.Manager
	users  *userdomain.Service
	log    logger.Logger
}

func NewAuthenticator(tokens *token.Manager, users *userdomain.Service, log logger.Logger) *Authenticator {
	return &Authenticator{tokens: tokens, users: users, log: log}
}

func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bearer, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		subject, err := a.tokens.Verify(bearer)
		if err != nil {
			a.log.BusinessError("auth: token rejected", err, "path", r.URL.Path)
			unauthorized(w)
			return
		}

		authed, err := a.users.GetByEmail(r.Context(), subject)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				a.log.BusinessError("auth: token subject unknown", err, "path", r.URL.Path)
				unauthorized(w)
				return
			}
			a.log.InternalError("auth: user lookup failed", err, "path", r.URL.Path)
			writeEnvelope(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user := User{ID: authed.ID, Email: authed.Email}
		if info := requestInfoFromContext(r.Context()); info != nil {
			info.userID = &user.ID
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), user)))
	})
}

func WithUser(ctx context.Context, user User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

func UserFromContext(ctx context.Context) (User, bool) {
	user, ok := ctx.Value(userKey).(User)
	if !ok || user.ID == 0 {
		return User{}, false
	}
	return user, true
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeEnvelope(w, http.StatusUnauthorized, "Not authenticated")
}

// writeEnvelope duplicates the handler package's error shape; importing it
// here would cycle.
func writeEnvelope(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"detail": detail,
		"code":   nil,
	})
}
