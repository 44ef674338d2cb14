package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"authors-api/internal/domains/book"
)

// postgresRepository implements book.Repository. The author reference is
// a weak one: no foreign key, so deleting an author simply leaves book
// rows whose author_id no longer resolves.
type postgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) book.Repository {
	return &postgresRepository{pool: pool}
}

const bookColumns = `id, title, author_id, pages, publisher, created_at, updated_at`

func scanBook(row pgx.Row) (*book.Book, error) {
	var (
		b         book.Book
		publisher []byte
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Pages,
		&publisher,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalPublisher(publisher, &b); err != nil {
		return nil, err
	}
	return &b, nil
}

// scanPopulatedBook reads a row from the LEFT JOIN against authors and
// attaches the resolved author when the reference still exists.
func scanPopulatedBook(row pgx.Row) (*book.Book, error) {
	var (
		b          book.Book
		publisher  []byte
		refID      *uuid.UUID
		refEmail   *string
		refName    *string
		refCountry *string
		refImage   *string
	)
	err := row.Scan(
		&b.ID,
		&b.Title,
		&b.AuthorID,
		&b.Pages,
		&publisher,
		&b.CreatedAt,
		&b.UpdatedAt,
		&refID,
		&refEmail,
		&refName,
		&refCountry,
		&refImage,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalPublisher(publisher, &b); err != nil {
		return nil, err
	}
	if refID != nil {
		b.Author = &book.AuthorRef{
			ID:           *refID,
			Email:        *refEmail,
			Name:         *refName,
			Country:      refCountry,
			ProfileImage: refImage,
		}
	}
	return &b, nil
}

func unmarshalPublisher(data []byte, b *book.Book) error {
	if len(data) == 0 {
		return nil
	}
	var p book.Publisher
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("failed to decode publisher document: %w", err)
	}
	b.Publisher = &p
	return nil
}

func marshalPublisher(b *book.Book) ([]byte, error) {
	if b.Publisher == nil {
		return nil, nil
	}
	data, err := json.Marshal(b.Publisher)
	if err != nil {
		return nil, fmt.Errorf("failed to encode publisher document: %w", err)
	}
	return data, nil
}

func (r *postgresRepository) Create(ctx context.Context, b *book.Book) (*book.Book, error) {
	publisher, err := marshalPublisher(b)
	if err != nil {
		return nil, err
	}

	query := `
        INSERT INTO books (title, author_id, pages, publisher)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + bookColumns

	created, err := scanBook(r.pool.QueryRow(ctx, query,
		b.Title,
		b.AuthorID,
		b.Pages,
		publisher,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create book: %w", err)
	}
	return created, nil
}

const populatedSelect = `
        SELECT b.id, b.title, b.author_id, b.pages, b.publisher, b.created_at, b.updated_at,
               a.id, a.email, a.name, a.country, a.profile_image
        FROM books b
        LEFT JOIN authors a ON a.id = b.author_id`

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID, populate bool) (*book.Book, error) {
	var (
		b   *book.Book
		err error
	)
	if populate {
		b, err = scanPopulatedBook(r.pool.QueryRow(ctx, populatedSelect+` WHERE b.id = $1`, id))
	} else {
		b, err = scanBook(r.pool.QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id))
	}
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to get book by id: %w", err)
	}
	return b, nil
}

func (r *postgresRepository) FindByTitlePrefix(ctx context.Context, prefix string) ([]book.Book, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE title ILIKE $1
        ORDER BY title`

	rows, err := r.pool.Query(ctx, query, escapeLikePrefix(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search books: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows, scanBook)
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]book.Book, int64, error) {
	query := populatedSelect + `
        ORDER BY b.created_at, b.id
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list books: %w", err)
	}
	defer rows.Close()

	items, err := collectBooks(rows, scanPopulatedBook)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM books`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count books: %w", err)
	}

	return items, total, nil
}

func (r *postgresRepository) ListByAuthorID(ctx context.Context, authorID uuid.UUID) ([]book.Book, error) {
	query := `
        SELECT ` + bookColumns + `
        FROM books
        WHERE author_id = $1
        ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list books by author: %w", err)
	}
	defer rows.Close()

	return collectBooks(rows, scanBook)
}

func (r *postgresRepository) Update(ctx context.Context, b *book.Book) (*book.Book, error) {
	publisher, err := marshalPublisher(b)
	if err != nil {
		return nil, err
	}

	query := `
        UPDATE books
        SET title = $2, author_id = $3, pages = $4, publisher = $5, updated_at = now()
        WHERE id = $1
        RETURNING ` + bookColumns

	updated, err := scanBook(r.pool.QueryRow(ctx, query,
		b.ID,
		b.Title,
		b.AuthorID,
		b.Pages,
		publisher,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to update book: %w", err)
	}
	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*book.Book, error) {
	query := `DELETE FROM books WHERE id = $1 RETURNING ` + bookColumns

	deleted, err := scanBook(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, book.ErrBookNotFound
		}
		return nil, fmt.Errorf("failed to delete book: %w", err)
	}
	return deleted, nil
}

func collectBooks(rows pgx.Rows, scan func(pgx.Row) (*book.Book, error)) ([]book.Book, error) {
	books := []book.Book{}
	for rows.Next() {
		b, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan book row: %w", err)
		}
		books = append(books, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read book rows: %w", err)
	}
	return books, nil
}

func escapeLikePrefix(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
