package book

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func publisherCountryValues() []interface{} {
	values := make([]interface{}, len(PublisherCountries))
	for i, c := range PublisherCountries {
		values[i] = c
	}
	return values
}

// PublisherRequest is the nested publisher payload on create/update.
type PublisherRequest struct {
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
}

func (r *PublisherRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Country != "" {
		r.Country = NormalizePublisherCountry(r.Country)
	}
}

func (r PublisherRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Name,
			validation.Required.Error("publisher name is required"),
			validation.Length(3, 20).Error("publisher name must be 3-20 characters"),
		),
		validation.Field(&r.Country,
			validation.In(publisherCountryValues()...).Error("publisher country is not in the allowed list"),
		),
	)
}

// CreateBookRequest - POST /book
type CreateBookRequest struct {
	Title     string            `json:"title"`
	Author    *string           `json:"author,omitempty"`
	Pages     *int              `json:"pages,omitempty"`
	Publisher *PublisherRequest `json:"publisher,omitempty"`
}

func (r *CreateBookRequest) Normalize() {
	r.Title = strings.TrimSpace(r.Title)
	if r.Publisher != nil {
		r.Publisher.Normalize()
	}
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error("title is required"),
			validation.Length(3, 20).Error("title must be 3-20 characters"),
		),
		validation.Field(&r.Author,
			is.UUID.Error("author must be a valid id"),
		),
		validation.Field(&r.Pages,
			validation.When(r.Pages != nil,
				validation.Required.Error("pages must be at least 1"),
				validation.Min(1).Error("pages must be at least 1"),
				validation.Max(1000).Error("pages must be at most 1000"),
			),
		),
		validation.Field(&r.Publisher),
	)
}

// UpdateBookRequest - PUT /book/:id
// Only submitted fields are merged, and a submitted field must satisfy
// the create rules; blank values are rejected. The one exception is an
// explicit empty author string, which clears the reference.
type UpdateBookRequest struct {
	Title     *string           `json:"title,omitempty"`
	Author    *string           `json:"author,omitempty"`
	Pages     *int              `json:"pages,omitempty"`
	Publisher *PublisherRequest `json:"publisher,omitempty"`
}

func (r *UpdateBookRequest) Normalize() {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		r.Title = &title
	}
	if r.Publisher != nil {
		r.Publisher.Normalize()
	}
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.When(r.Title != nil,
				validation.Required.Error("title cannot be empty"),
				validation.Length(3, 20).Error("title must be 3-20 characters"),
			),
		),
		validation.Field(&r.Author,
			validation.When(r.Author != nil && *r.Author != "",
				is.UUID.Error("author must be a valid id"),
			),
		),
		validation.Field(&r.Pages,
			validation.When(r.Pages != nil,
				validation.Required.Error("pages must be at least 1"),
				validation.Min(1).Error("pages must be at least 1"),
				validation.Max(1000).Error("pages must be at most 1000"),
			),
		),
		validation.Field(&r.Publisher),
	)
}
