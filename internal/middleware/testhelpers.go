package middleware

import (
	"context"

	"github.com/google/uuid"
	"github.com/habitkit/habit-api/internal/request"
)

// SetOwnerInContext is a helper function for testing - sets owner in context
// This is exported so other test packages can use it
func SetOwnerInContext(ctx context.Context, ownerID uuid.UUID) context.Context {
	return request.WithOwner(ctx, ownerID)
}
