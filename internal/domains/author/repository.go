package author

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for authors. The store is
// treated as an opaque collection reachable by id and by field; the
// shipped implementation is Postgres but nothing above this interface
// depends on that.
type Repository interface {
	// Create inserts a new author. The store enforces email uniqueness;
	// a violation surfaces as ErrEmailAlreadyExists.
	Create(ctx context.Context, a *Author) (*Author, error)

	// GetByID returns ErrAuthorNotFound if the id does not resolve.
	// The password hash is not loaded.
	GetByID(ctx context.Context, id uuid.UUID) (*Author, error)

	// GetByEmailWithPassword loads an author including the stored hash.
	// Only the login path may use this.
	GetByEmailWithPassword(ctx context.Context, email string) (*Author, error)

	// GetByIDWithPassword loads an author including the stored hash,
	// for password change detection on update.
	GetByIDWithPassword(ctx context.Context, id uuid.UUID) (*Author, error)

	// FindByNamePrefix matches names case-insensitively by prefix.
	// No match is an empty slice, not an error.
	FindByNamePrefix(ctx context.Context, prefix string) ([]Author, error)

	// List returns one page of authors plus the total count.
	List(ctx context.Context, limit, offset int) ([]Author, int64, error)

	// Update persists the full merged record and refreshes updated_at.
	Update(ctx context.Context, a *Author) (*Author, error)

	// Delete removes the record and returns it. No cascade: books
	// referencing the author keep their dangling reference.
	Delete(ctx context.Context, id uuid.UUID) (*Author, error)
}
