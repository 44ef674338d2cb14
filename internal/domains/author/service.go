package author

import (
	"context"

	"github.com/google/uuid"

	"authors-api/internal/domains/book"
	"authors-api/internal/shared"
)

// BookLister is the slice of the book domain the author service needs
// to expand an author's books. Kept narrow so the dependency stays
// one-way (author -> book).
type BookLister interface {
	ListByAuthorID(ctx context.Context, authorID uuid.UUID) ([]book.Book, error)
}

// Service is the business logic contract for the author domain.
type Service interface {
	List(ctx context.Context, params shared.PageParams) ([]Author, int64, error)

	Create(ctx context.Context, req CreateAuthorRequest) (*Author, error)

	// GetByID optionally expands the author's books.
	GetByID(ctx context.Context, id string, includeBooks bool) (*Author, error)

	FindByNamePrefix(ctx context.Context, prefix string) ([]Author, error)

	// Update merges only submitted fields, re-validates and persists.
	// A submitted password is re-hashed only when it differs from the
	// stored credential.
	Update(ctx context.Context, id string, req UpdateAuthorRequest) (*Author, error)

	Delete(ctx context.Context, id string) (*Author, error)

	// Login verifies credentials and issues a bearer token. Unknown
	// email and wrong password fail identically.
	Login(ctx context.Context, req LoginRequest) (string, error)

	// SetProfileImage attaches an uploaded file location to an author.
	SetProfileImage(ctx context.Context, id string, location string) (*Author, error)
}
