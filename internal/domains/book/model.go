package book

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Book is the domain entity. The author is a weak reference: a book may
// exist without one, and deleting an author leaves the reference dangling.
type Book struct {
	ID    uuid.UUID `json:"id" db:"id"`
	Title string    `json:"title" db:"title"`

	AuthorID *uuid.UUID `json:"authorId,omitempty" db:"author_id"`

	// Author is the populated form of AuthorID, resolved at read time.
	// Nil when the book has no author or the reference no longer resolves.
	Author *AuthorRef `json:"author,omitempty"`

	Pages     *int       `json:"pages,omitempty" db:"pages"`
	Publisher *Publisher `json:"publisher,omitempty" db:"publisher"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AuthorRef is the book domain's view of an author. Defined here so the
// book package never imports the author package.
type AuthorRef struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Country      *string   `json:"country,omitempty"`
	ProfileImage *string   `json:"profileImage,omitempty"`
}

// Publisher is a nested document stored inside the book record.
type Publisher struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

// PublisherCountries is the enum subset a publisher may declare.
var PublisherCountries = []string{"SPAIN", "ITALY", "USA", "GERMANY", "JAPAN"}

// NormalizePublisherCountry trims and uppercases a submitted value.
func NormalizePublisherCountry(country string) string {
	return strings.ToUpper(strings.TrimSpace(country))
}
