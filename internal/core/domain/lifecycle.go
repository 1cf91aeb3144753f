package domain

import "fmt"

// Lifecycle is implemented by every soft-deletable entity
type Lifecycle interface {
	IsActive() bool
}

// RequireActive fails with ErrDeactivated when the entity is soft-deleted.
// Used for parents: a deactivated parent blocks operations on its children.
func RequireActive(entity string, l Lifecycle) error {
	if !l.IsActive() {
		return fmt.Errorf("%w: %s", ErrDeactivated, entity)
	}
	return nil
}
