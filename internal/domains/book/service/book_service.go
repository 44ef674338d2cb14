package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"authors-api/internal/domains/book"
	"authors-api/internal/shared"
)

// bookService implements book.Service.
type bookService struct {
	repo book.Repository
}

func NewBookService(repo book.Repository) book.Service {
	return &bookService{repo: repo}
}

func (s *bookService) List(ctx context.Context, params shared.PageParams) ([]book.Book, int64, error) {
	return s.repo.List(ctx, params.Limit, params.Offset())
}

func (s *bookService) Create(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	newBook := &book.Book{
		Title: req.Title,
		Pages: req.Pages,
	}
	if req.Author != nil && *req.Author != "" {
		// Weak reference: the author is not required to exist. An empty
		// string means no author, same as the update path. The id format
		// was already checked by Validate.
		authorID, err := uuid.Parse(*req.Author)
		if err != nil {
			return nil, fmt.Errorf("parse author id: %w", err)
		}
		newBook.AuthorID = &authorID
	}
	if req.Publisher != nil {
		newBook.Publisher = &book.Publisher{
			Name:    req.Publisher.Name,
			Country: req.Publisher.Country,
		}
	}

	return s.repo.Create(ctx, newBook)
}

func (s *bookService) GetByID(ctx context.Context, id string) (*book.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.GetByID(ctx, bookID, true)
}

func (s *bookService) FindByTitlePrefix(ctx context.Context, prefix string) ([]book.Book, error) {
	return s.repo.FindByTitlePrefix(ctx, prefix)
}

func (s *bookService) Update(ctx context.Context, id string, req book.UpdateBookRequest) (*book.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, bookID, false)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		existing.Title = *req.Title
	}
	if req.Pages != nil {
		existing.Pages = req.Pages
	}
	if req.Publisher != nil {
		existing.Publisher = &book.Publisher{
			Name:    req.Publisher.Name,
			Country: req.Publisher.Country,
		}
	}
	if req.Author != nil {
		if *req.Author == "" {
			// Submitted empty: clear the reference.
			existing.AuthorID = nil
		} else {
			authorID, err := uuid.Parse(*req.Author)
			if err != nil {
				return nil, fmt.Errorf("parse author id: %w", err)
			}
			existing.AuthorID = &authorID
		}
	}

	return s.repo.Update(ctx, existing)
}

func (s *bookService) Delete(ctx context.Context, id string) (*book.Book, error) {
	bookID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, bookID)
}

func parseID(id string) (uuid.UUID, error) {
	bookID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, book.ErrBookNotFound
	}
	return bookID, nil
}
