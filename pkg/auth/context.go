package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Operator identifies who is performing counts and exports. The ID is minted
// at sign-in; the name is the free-form display name stamped onto runs.
type Operator struct {
	ID   uuid.UUID
	Name string
}

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const operatorKey contextKey = "operator"

// ErrOperatorNotFound is returned when no operator exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrOperatorNotFound = errors.New("operator not found in context")

// OperatorFromCtx extracts the signed-in operator from the request context.
// Returns ErrOperatorNotFound if no operator is set (unauthenticated request).
func OperatorFromCtx(ctx context.Context) (Operator, error) {
	op, ok := ctx.Value(operatorKey).(Operator)
	if !ok || op.ID == uuid.Nil {
		return Operator{}, ErrOperatorNotFound
	}
	return op, nil
}

// WithOperator returns a new context with the given operator attached.
// Used by the session middleware after validating the cookie.
func WithOperator(ctx context.Context, op Operator) context.Context {
	return context.WithValue(ctx, operatorKey, op)
}
