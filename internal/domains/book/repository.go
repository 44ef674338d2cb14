package book

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the data access contract for books.
type Repository interface {
	Create(ctx context.Context, b *Book) (*Book, error)

	// GetByID resolves the author reference when populate is true.
	// Returns ErrBookNotFound if the id does not resolve.
	GetByID(ctx context.Context, id uuid.UUID, populate bool) (*Book, error)

	// FindByTitlePrefix matches titles case-insensitively by prefix.
	FindByTitlePrefix(ctx context.Context, prefix string) ([]Book, error)

	// List returns one page of books with the author reference resolved
	// on each item, plus the total count.
	List(ctx context.Context, limit, offset int) ([]Book, int64, error)

	// ListByAuthorID returns every book referencing the given author.
	ListByAuthorID(ctx context.Context, authorID uuid.UUID) ([]Book, error)

	Update(ctx context.Context, b *Book) (*Book, error)

	Delete(ctx context.Context, id uuid.UUID) (*Book, error)
}
