package book

import (
	"context"

	"authors-api/internal/shared"
)

// Service is the business logic contract for the book domain.
type Service interface {
	List(ctx context.Context, params shared.PageParams) ([]Book, int64, error)

	Create(ctx context.Context, req CreateBookRequest) (*Book, error)

	GetByID(ctx context.Context, id string) (*Book, error)

	FindByTitlePrefix(ctx context.Context, prefix string) ([]Book, error)

	Update(ctx context.Context, id string, req UpdateBookRequest) (*Book, error)

	Delete(ctx context.Context, id string) (*Book, error)
}
