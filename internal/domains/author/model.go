package author

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"authors-api/internal/domains/book"
)

// Author is the domain entity. The password is only ever persisted as a
// bcrypt hash and never serialized into responses.
type Author struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Email string    `json:"email" db:"email"`

	PasswordHash string `json:"-" db:"password_hash"`

	Name         string  `json:"name" db:"name"`
	Country      *string `json:"country,omitempty" db:"country"`
	ProfileImage *string `json:"profileImage,omitempty" db:"profile_image"`

	// Books is derived, not stored: populated on demand from the book
	// records referencing this author.
	Books []book.Book `json:"books,omitempty"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AllowedCountries an author may declare. Stored uppercase.
var AllowedCountries = []string{
	"SPAIN", "ITALY", "USA", "GERMANY", "JAPAN",
	"ENGLAND", "COLOMBIA", "RUSSIA", "UNITED STATES", "ARGENTINA",
}

// NormalizeCountry trims and uppercases a submitted country value.
func NormalizeCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}

// IsAllowedCountry reports whether the (normalized) value is in the enum.
func IsAllowedCountry(country string) bool {
	for _, c := range AllowedCountries {
		if c == country {
			return true
		}
	}
	return false
}
