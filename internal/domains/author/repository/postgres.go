package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"authors-api/internal/domains/author"
	"authors-api/pkg/cache"
)

// postgresRepository implements author.Repository on pgxpool with a
// redis read-through cache for single-entity and list reads.
type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) author.Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	authorCacheKeyPrefix = "author:"
	authorListKeyPrefix  = "authors:list:"
	cacheTTL             = 15 * time.Minute
)

// authorColumns excludes password_hash: the hash only leaves the store
// through GetByEmailWithPassword.
const authorColumns = `id, email, name, country, profile_image, created_at, updated_at`

func scanAuthor(row pgx.Row) (*author.Author, error) {
	var a author.Author
	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.Country,
		&a.ProfileImage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        INSERT INTO authors (email, password_hash, name, country, profile_image)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.Email,
		a.PasswordHash,
		a.Name,
		a.Country,
		a.ProfileImage,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// The store is the sole enforcer of email uniqueness.
			return nil, author.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	r.invalidateListCache(ctx)

	return created, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached author.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	r.cache.Set(ctx, cacheKey, a, cacheTTL)

	return a, nil
}

func (r *postgresRepository) GetByEmailWithPassword(ctx context.Context, email string) (*author.Author, error) {
	query := `
        SELECT id, email, password_hash, name, country, profile_image, created_at, updated_at
        FROM authors
        WHERE email = $1`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, email).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Country,
		&a.ProfileImage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by email: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) GetByIDWithPassword(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `
        SELECT id, email, password_hash, name, country, profile_image, created_at, updated_at
        FROM authors
        WHERE id = $1`

	var a author.Author
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&a.ID,
		&a.Email,
		&a.PasswordHash,
		&a.Name,
		&a.Country,
		&a.ProfileImage,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}
	return &a, nil
}

func (r *postgresRepository) FindByNamePrefix(ctx context.Context, prefix string) ([]author.Author, error) {
	query := `
        SELECT ` + authorColumns + `
        FROM authors
        WHERE name ILIKE $1
        ORDER BY name`

	rows, err := r.pool.Query(ctx, query, escapeLikePrefix(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search authors: %w", err)
	}
	defer rows.Close()

	return collectAuthors(rows)
}

// cachedAuthorList is the shape stored under authors:list:* keys.
type cachedAuthorList struct {
	Items []author.Author `json:"items"`
	Total int64           `json:"total"`
}

func (r *postgresRepository) List(ctx context.Context, limit, offset int) ([]author.Author, int64, error) {
	cacheKey := fmt.Sprintf("%sl%d:o%d", authorListKeyPrefix, limit, offset)

	var cached cachedAuthorList
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return cached.Items, cached.Total, nil
	}

	query := `
        SELECT ` + authorColumns + `
        FROM authors
        ORDER BY created_at, id
        LIMIT $1 OFFSET $2`

	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list authors: %w", err)
	}
	defer rows.Close()

	items, err := collectAuthors(rows)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count authors: %w", err)
	}

	r.cache.Set(ctx, cacheKey, cachedAuthorList{Items: items, Total: total}, cacheTTL)

	return items, total, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *author.Author) (*author.Author, error) {
	query := `
        UPDATE authors
        SET email = $2, password_hash = $3, name = $4, country = $5,
            profile_image = $6, updated_at = now()
        WHERE id = $1
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query,
		a.ID,
		a.Email,
		a.PasswordHash,
		a.Name,
		a.Country,
		a.ProfileImage,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, author.ErrEmailAlreadyExists
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())
	r.invalidateListCache(ctx)

	return updated, nil
}

func (r *postgresRepository) Delete(ctx context.Context, id uuid.UUID) (*author.Author, error) {
	query := `DELETE FROM authors WHERE id = $1 RETURNING ` + authorColumns

	deleted, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, author.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to delete author: %w", err)
	}

	r.cache.Delete(ctx, authorCacheKeyPrefix+id.String())
	r.invalidateListCache(ctx)

	return deleted, nil
}

func (r *postgresRepository) invalidateListCache(ctx context.Context) {
	r.cache.DeletePattern(ctx, authorListKeyPrefix+"*")
}

func collectAuthors(rows pgx.Rows) ([]author.Author, error) {
	authors := []author.Author{}
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author row: %w", err)
		}
		authors = append(authors, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read author rows: %w", err)
	}
	return authors, nil
}

// escapeLikePrefix neutralizes LIKE metacharacters in user input.
func escapeLikePrefix(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(s)
}
