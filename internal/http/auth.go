package httpapi

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/draft"
)

type contextKey string

const identityKey contextKey = "identity"

// ExtractUserMiddleware reads the ambient session identity that the
// auth proxy in front of this service injects as headers.
func ExtractUserMiddleware(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Traefik BasicAuth sets this header
			userID := r.Header.Get("X-Auth-User")

			// Also check common alternatives
			if userID == "" {
				userID = r.Header.Get("X-Forwarded-User")
			}
			if userID == "" {
				userID = r.Header.Get("Remote-User")
			}

			if userID == "" {
				log.Warn("authentication failed: no user header found")
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			userName := r.Header.Get("X-Auth-Name")
			if userName == "" {
				userName = userID
			}

			id := draft.Identity{UserID: userID, UserName: userName}
			ctx := context.WithValue(r.Context(), identityKey, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func GetIdentity(r *http.Request) draft.Identity {
	id, ok := r.Context().Value(identityKey).(draft.Identity)
	if !ok {
		return draft.Identity{}
	}
	return id
}
