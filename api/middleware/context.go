package middleware

import (
	"context"

	"github.com/google/uuid"

	"github.com/taglinkbr/taglink-backend/pkg/enums"
)

type contextKey string

const (
	ctxUserID contextKey = "user_id"
	ctxRole   contextKey = "role"
)

func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	return context.WithValue(ctx, ctxUserID, userID)
}

func WithRole(ctx context.Context, role enums.UserRole) context.Context {
	return context.WithValue(ctx, ctxRole, role)
}

// UserIDFromContext returns uuid.Nil when the request was not authenticated.
func UserIDFromContext(ctx context.Context) uuid.UUID {
	id, _ := ctx.Value(ctxUserID).(uuid.UUID)
	return id
}

func RoleFromContext(ctx context.Context) enums.UserRole {
	role, _ := ctx.Value(ctxRole).(enums.UserRole)
	return role
}
