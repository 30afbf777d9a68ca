package middleware

import (
	"net/http"
	"strings"

	"github.com/Rutuja-Parab/policyzen/internal"
	"github.com/Rutuja-Parab/policyzen/pkg/logger"
)

const ActorHeader = "X-User-ID"

// Actor attaches the caller id from X-User-ID for attribution. It is not
// verified and grants nothing.
func Actor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actorID := strings.TrimSpace(r.Header.Get(ActorHeader))
		if actorID == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := internal.ContextWithActor(r.Context(), actorID)
		ctx = logger.With(ctx, "userID", actorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
