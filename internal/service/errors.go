// Package service implements the role-checked operations behind every
// page. Each mutating operation resolves the caller's role from the
// authenticated identity as its first step and rejects before touching
// storage; handlers never re-implement the check and never trust a
// client-supplied role.
package service

import (
	"context"
	"errors"
	"strings"

	"github.com/mfonseca/acamp/internal/auth"
	"github.com/mfonseca/acamp/internal/models"
)

var (
	// ErrAccessDenied is returned when the caller's resolved role is not
	// in the operation's allow-list. It carries no detail on purpose.
	ErrAccessDenied = errors.New("access denied")
)

// FieldError describes a validation failure on a single form field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates per-field validation failures. Input that
// fails validation never reaches storage.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Field + ": " + f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// AsValidation extracts a ValidationError from err, or nil.
func AsValidation(err error) *ValidationError {
	var v *ValidationError
	if errors.As(err, &v) {
		return v
	}
	return nil
}

// roleChecker centralizes the role gate every service shares.
type roleChecker struct {
	roles *auth.RoleResolver
}

// authorize resolves the caller's role and checks it against the
// allow-list. An empty caller ID (no session) is always denied; the route
// guard should have redirected it long before it got here.
func (c roleChecker) authorize(ctx context.Context, callerID string, allowed ...models.Role) error {
	if callerID == "" {
		return ErrAccessDenied
	}
	role := c.roles.Resolve(ctx, callerID)
	if !auth.Allowed(role, allowed...) {
		return ErrAccessDenied
	}
	return nil
}

// anyRole is the allow-list for read operations: every authenticated
// caller, whatever the role.
var anyRole = []models.Role{models.RoleAdmin, models.RoleEditor, models.RoleViewer}

// editors is the allow-list for people/payment mutations.
var editors = []models.Role{models.RoleAdmin, models.RoleEditor}
