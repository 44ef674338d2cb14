package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"authors-api/internal/domains/author"
	"authors-api/internal/shared"
	"authors-api/pkg/jwt"
)

// authorService implements author.Service.
type authorService struct {
	repo       author.Repository
	books      author.BookLister
	jwtManager *jwt.Manager
	bcryptCost int
}

func NewAuthorService(repo author.Repository, books author.BookLister, jwtManager *jwt.Manager, bcryptCost int) author.Service {
	return &authorService{
		repo:       repo,
		books:      books,
		jwtManager: jwtManager,
		bcryptCost: bcryptCost,
	}
}

func (s *authorService) List(ctx context.Context, params shared.PageParams) ([]author.Author, int64, error) {
	return s.repo.List(ctx, params.Limit, params.Offset())
}

func (s *authorService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// The plaintext never reaches the store.
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	newAuthor := &author.Author{
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Name:         req.Name,
		Country:      req.Country,
		ProfileImage: req.ProfileImage,
	}

	return s.repo.Create(ctx, newAuthor)
}

func (s *authorService) GetByID(ctx context.Context, id string, includeBooks bool) (*author.Author, error) {
	authorID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetByID(ctx, authorID)
	if err != nil {
		return nil, err
	}

	if includeBooks {
		books, err := s.books.ListByAuthorID(ctx, authorID)
		if err != nil {
			return nil, fmt.Errorf("list books for author: %w", err)
		}
		a.Books = books
	}

	return a, nil
}

func (s *authorService) FindByNamePrefix(ctx context.Context, prefix string) ([]author.Author, error) {
	return s.repo.FindByNamePrefix(ctx, prefix)
}

func (s *authorService) Update(ctx context.Context, id string, req author.UpdateAuthorRequest) (*author.Author, error) {
	authorID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Loaded with the stored hash so an unchanged password is carried
	// through untouched.
	existing, err := s.repo.GetByIDWithPassword(ctx, authorID)
	if err != nil {
		return nil, err
	}

	req.ApplyToEntity(existing)

	if req.Password != nil {
		// Re-hash only when the submitted password differs from the
		// stored credential.
		if bcrypt.CompareHashAndPassword([]byte(existing.PasswordHash), []byte(*req.Password)) != nil {
			passwordHash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
			if err != nil {
				return nil, fmt.Errorf("hash password: %w", err)
			}
			existing.PasswordHash = string(passwordHash)
		}
	}

	return s.repo.Update(ctx, existing)
}

func (s *authorService) Delete(ctx context.Context, id string) (*author.Author, error) {
	authorID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return s.repo.Delete(ctx, authorID)
}

func (s *authorService) Login(ctx context.Context, req author.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", author.ErrMissingCredentials
	}

	a, err := s.repo.GetByEmailWithPassword(ctx, req.Email)
	if err != nil {
		// Never reveal whether the email exists.
		return "", author.ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(req.Password)) != nil {
		return "", author.ErrInvalidCredentials
	}

	token, err := s.jwtManager.Generate(a.ID.String(), a.Email)
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}

func (s *authorService) SetProfileImage(ctx context.Context, id string, location string) (*author.Author, error) {
	authorID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByIDWithPassword(ctx, authorID)
	if err != nil {
		return nil, err
	}

	existing.ProfileImage = &location

	return s.repo.Update(ctx, existing)
}

// parseID maps a malformed identifier to not-found: an id that can't
// exist can't resolve.
func parseID(id string) (uuid.UUID, error) {
	authorID, err := uuid.Parse(id)
	if err != nil {
		return uuid.Nil, author.ErrAuthorNotFound
	}
	return authorID, nil
}
