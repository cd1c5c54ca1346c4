package auth

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/mfonseca/acamp/internal/models"
	"github.com/mfonseca/acamp/internal/storage"
)

// ProfileStorage defines the interface for role profile lookups.
type ProfileStorage interface {
	// GetProfile returns the profile for the given user ID, or an error
	// when no profile row exists.
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
}

// RoleResolver maps an authenticated identity to exactly one role.
//
// The mapping is fail-safe: no identity, a missing profile row, or a lookup
// failure all resolve to viewer. Lookup failures are logged for operational
// visibility but never surfaced to the caller.
type RoleResolver struct {
	storage ProfileStorage
}

// NewRoleResolver creates a role resolver backed by the given profile
// storage.
func NewRoleResolver(storage ProfileStorage) *RoleResolver {
	return &RoleResolver{storage: storage}
}

// Resolve returns the role for the given user ID. userID may be empty
// (unauthenticated), in which case the result is viewer.
func (r *RoleResolver) Resolve(ctx context.Context, userID string) models.Role {
	if userID == "" {
		return models.RoleViewer
	}

	profile, err := r.storage.GetProfile(ctx, userID)
	if err != nil || profile == nil {
		// Missing profile or lookup failure: default to the most
		// restrictive role rather than failing the request. A user
		// without a profile row is an expected state, not an error.
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			slog.Error("Role resolution failed, defaulting to viewer",
				"user_id", userID,
				"error", err,
			)
		}
		return models.RoleViewer
	}

	return profile.Role
}

// Allowed reports whether role is a member of the allow-list. Both the
// route guard and the render-time capability gate use it, so the two
// defense layers cannot drift apart.
func Allowed(role models.Role, allowed ...models.Role) bool {
	return slices.Contains(allowed, role)
}
