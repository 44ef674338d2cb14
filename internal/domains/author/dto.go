package author

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
)

func countryValues() []interface{} {
	values := make([]interface{}, len(AllowedCountries))
	for i, c := range AllowedCountries {
		values[i] = c
	}
	return values
}

// CreateAuthorRequest - POST /author
type CreateAuthorRequest struct {
	Email        string  `json:"email"`
	Password     string  `json:"password"`
	Name         string  `json:"name"`
	Country      *string `json:"country,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

// Normalize trims whitespace and uppercases the country before
// validation, mirroring what the schema enforces on write.
func (r *CreateAuthorRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Name = strings.TrimSpace(r.Name)
	if r.Country != nil {
		normalized := NormalizeCountry(*r.Country)
		r.Country = &normalized
	}
}

func (r CreateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.Required.Error("email is required"),
			is.Email.Error("invalid email format"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 0).Error("password must be at least 8 characters"),
		),
		validation.Field(&r.Name,
			validation.Required.Error("name is required"),
			validation.Length(3, 20).Error("name must be 3-20 characters"),
		),
		validation.Field(&r.Country,
			validation.When(r.Country != nil,
				validation.Required.Error("country cannot be empty"),
				validation.In(countryValues()...).Error("country is not in the allowed list"),
			),
		),
	)
}

// UpdateAuthorRequest - PUT /author/:id
// All fields optional: only submitted fields are merged into the record.
// A submitted field must satisfy the same rules as on create; blank
// values are rejected, not merged.
type UpdateAuthorRequest struct {
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	Name         *string `json:"name,omitempty"`
	Country      *string `json:"country,omitempty"`
	ProfileImage *string `json:"profileImage,omitempty"`
}

func (r *UpdateAuthorRequest) Normalize() {
	if r.Email != nil {
		email := strings.TrimSpace(*r.Email)
		r.Email = &email
	}
	if r.Name != nil {
		name := strings.TrimSpace(*r.Name)
		r.Name = &name
	}
	if r.Country != nil {
		normalized := NormalizeCountry(*r.Country)
		r.Country = &normalized
	}
}

func (r UpdateAuthorRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email,
			validation.When(r.Email != nil,
				validation.Required.Error("email cannot be empty"),
				is.Email.Error("invalid email format"),
			),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != nil,
				validation.Required.Error("password cannot be empty"),
				validation.Length(8, 0).Error("password must be at least 8 characters"),
			),
		),
		validation.Field(&r.Name,
			validation.When(r.Name != nil,
				validation.Required.Error("name cannot be empty"),
				validation.Length(3, 20).Error("name must be 3-20 characters"),
			),
		),
		validation.Field(&r.Country,
			validation.When(r.Country != nil,
				validation.Required.Error("country cannot be empty"),
				validation.In(countryValues()...).Error("country is not in the allowed list"),
			),
		),
	)
}

// ApplyToEntity merges only the submitted fields into the existing author.
// The password is handled separately by the service because it needs the
// change-detection check before re-hashing.
func (r *UpdateAuthorRequest) ApplyToEntity(a *Author) {
	if r.Email != nil {
		a.Email = *r.Email
	}
	if r.Name != nil {
		a.Name = *r.Name
	}
	if r.Country != nil {
		a.Country = r.Country
	}
	if r.ProfileImage != nil {
		a.ProfileImage = r.ProfileImage
	}
}

// LoginRequest - POST /author/login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token string `json:"token"`
}
