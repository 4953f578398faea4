package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/model"
)

// UserIDHeader carries the identity of an authenticated user. Authentication
// itself happens in front of this service.
const UserIDHeader = "X-User-ID"

type userIDKey struct{}

// UserIdentity stores the caller's identity in the request context.
// Requests without the header act as the local user.
func UserIdentity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(UserIDHeader))
		if userID == "" {
			userID = model.LocalUserID
		}
		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

// WithUserID returns a copy of ctx carrying userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the identity set by UserIdentity, or the local
// user when there is none.
func UserIDFromContext(ctx context.Context) string {
	if userID, ok := ctx.Value(userIDKey{}).(string); ok && userID != "" {
		return userID
	}
	return model.LocalUserID
}
