package authz

import (
	"net/http"

	"github.com/vollink/vollink-api/internal/models"
)

// RequireActor returns a middleware that ensures the requester is
// authenticated as the given actor type. Ownership of individual resources
// is checked inside the services, not here.
func RequireActor(required models.ActorType) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actorType, ok := ActorTypeFromRequest(r)
			if !ok || actorType != required {
				http.Error(w, "insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
