package http

import (
	"context"
	"net/http"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

// Identity arrives pre-authenticated from the gateway in trusted headers.
// This service consumes the identity only; it never validates credentials.
const (
	headerUserID    = "X-User-Id"
	headerUserEmail = "X-User-Email"
	headerUserName  = "X-User-Name"
)

type userKey struct{}

// UserFromContext returns the authenticated caller, if any.
func UserFromContext(ctx context.Context) (domain.User, bool) {
	user, ok := ctx.Value(userKey{}).(domain.User)
	return user, ok
}

// ContextWithUser is exported for handler tests.
func ContextWithUser(ctx context.Context, user domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, user)
}

// RequireIdentity rejects requests the gateway did not authenticate.
func RequireIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := domain.User{
			ID:       r.Header.Get(headerUserID),
			Email:    r.Header.Get(headerUserEmail),
			FullName: r.Header.Get(headerUserName),
		}
		if user.ID == "" {
			writeError(w, http.StatusUnauthorized, codeIdentityRequired, "authenticated identity required")
			return
		}
		next.ServeHTTP(w, r.WithContext(ContextWithUser(r.Context(), user)))
	})
}
