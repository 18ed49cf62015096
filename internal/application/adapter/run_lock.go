// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"
)

// RunLock serializes bulk rule runs so that at most one run per user is
// in flight at a time.
type RunLock interface {
	// Acquire attempts to take the run lock for a user. It returns false
	// when another run already holds it.
	Acquire(ctx context.Context, userID uuid.UUID) (bool, error)

	// Release frees the run lock for a user.
	Release(ctx context.Context, userID uuid.UUID) error
}
