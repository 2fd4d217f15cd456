package authz

import (
	"context"
	"net/http"

	"github.com/vollink/vollink-api/internal/models"
)

type contextKey string

const (
	actorIDKey   contextKey = "actor_id"
	actorTypeKey contextKey = "actor_type"
)

// WithIdentity stores the authenticated actor on the context.
func WithIdentity(ctx context.Context, actorID string, actorType models.ActorType) context.Context {
	if actorID != "" {
		ctx = context.WithValue(ctx, actorIDKey, actorID)
	}
	if models.IsValidActorType(actorType) {
		ctx = context.WithValue(ctx, actorTypeKey, actorType)
	}
	return ctx
}

func ActorIDFromRequest(r *http.Request) (string, bool) {
	id, ok := r.Context().Value(actorIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func ActorTypeFromRequest(r *http.Request) (models.ActorType, bool) {
	t, ok := r.Context().Value(actorTypeKey).(models.ActorType)
	if !ok || !models.IsValidActorType(t) {
		return "", false
	}
	return t, true
}
