package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/planinfo-service/internal/domain"
)

// UserRepository - persistence for users
type UserRepository interface {
	// List returns all users ordered by creation time
	List(ctx context.Context) ([]*domain.User, error)

	// GetByID returns domain.ErrUserNotFound when the user does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail returns domain.ErrUserNotFound when no user has the email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Create inserts the user and fills ID/timestamps; domain.ErrUserExists on duplicate email
	Create(ctx context.Context, user *domain.User) error

	// Update stores name/email/age and refreshes UpdatedAt
	Update(ctx context.Context, user *domain.User) error

	// Delete removes the user; domain.ErrUserNotFound when nothing was deleted
	Delete(ctx context.Context, id uuid.UUID) error

	// Count returns the number of stored users
	Count(ctx context.Context) (int64, error)
}
