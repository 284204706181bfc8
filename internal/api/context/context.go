// Package context carries the authenticated user id through request contexts
// of both transports.
package context

import (
	"context"
)

type userIDKey struct{}

// Manager stores and reads the authenticated user id. Values set by clients
// through gRPC metadata or HTTP headers are never consulted.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

// SetUserIDToContext returns a copy of ctx carrying userID.
func (m *Manager) SetUserIDToContext(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// GetUserIDFromContext returns the user id set by SetUserIDToContext. An empty
// id counts as absent.
func (m *Manager) GetUserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}
