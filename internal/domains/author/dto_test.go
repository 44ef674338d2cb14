package author

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func validCreateRequest() CreateAuthorRequest {
	return CreateAuthorRequest{
		Email:    "jane@example.com",
		Password: "12345678",
		Name:     "Jane Doe",
	}
}

func TestCreateAuthorRequestValid(t *testing.T) {
	req := validCreateRequest()
	req.Normalize()
	assert.NoError(t, req.Validate())
}

func TestCreateAuthorRequestCountryNormalization(t *testing.T) {
	req := validCreateRequest()
	req.Country = strPtr("  spain ")
	req.Normalize()

	require.NotNil(t, req.Country)
	assert.Equal(t, "SPAIN", *req.Country)
	assert.NoError(t, req.Validate())
}

func TestCreateAuthorRequestViolations(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*CreateAuthorRequest)
		field  string
	}{
		{"missing email", func(r *CreateAuthorRequest) { r.Email = "" }, "Email"},
		{"bad email", func(r *CreateAuthorRequest) { r.Email = "not-an-email" }, "Email"},
		{"short password", func(r *CreateAuthorRequest) { r.Password = "1234567" }, "Password"},
		{"missing password", func(r *CreateAuthorRequest) { r.Password = "" }, "Password"},
		{"short name", func(r *CreateAuthorRequest) { r.Name = "ab" }, "Name"},
		{"long name", func(r *CreateAuthorRequest) { r.Name = "abcdefghijklmnopqrstu" }, "Name"},
		{"unknown country", func(r *CreateAuthorRequest) { r.Country = strPtr("NARNIA") }, "Country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)
			req.Normalize()

			err := req.Validate()
			require.Error(t, err)

			verrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			assert.Contains(t, verrs, tc.field)
		})
	}
}

func TestUpdateAuthorRequestPartial(t *testing.T) {
	// Empty update is valid: nothing to merge, nothing violated.
	req := UpdateAuthorRequest{}
	req.Normalize()
	assert.NoError(t, req.Validate())

	// Present fields still obey the field constraints.
	req = UpdateAuthorRequest{Name: strPtr("ab")}
	req.Normalize()
	assert.Error(t, req.Validate())

	req = UpdateAuthorRequest{Country: strPtr("italy")}
	req.Normalize()
	assert.NoError(t, req.Validate())
	assert.Equal(t, "ITALY", *req.Country)
}

func TestUpdateAuthorRequestRejectsBlankFields(t *testing.T) {
	// A submitted empty string is a violation, not a merge of nothing:
	// otherwise an update could blank out a required field.
	cases := []struct {
		name  string
		req   UpdateAuthorRequest
		field string
	}{
		{"empty email", UpdateAuthorRequest{Email: strPtr("")}, "Email"},
		{"empty password", UpdateAuthorRequest{Password: strPtr("")}, "Password"},
		{"empty name", UpdateAuthorRequest{Name: strPtr("")}, "Name"},
		{"whitespace name", UpdateAuthorRequest{Name: strPtr("   ")}, "Name"},
		{"empty country", UpdateAuthorRequest{Country: strPtr("")}, "Country"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.req.Normalize()
			err := tc.req.Validate()
			require.Error(t, err)

			verrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			assert.Contains(t, verrs, tc.field)
		})
	}
}

func TestUpdateAuthorRequestApplyToEntity(t *testing.T) {
	a := Author{
		Email: "jane@example.com",
		Name:  "Jane Doe",
	}

	req := UpdateAuthorRequest{Name: strPtr("Janet Doe")}
	req.ApplyToEntity(&a)

	assert.Equal(t, "Janet Doe", a.Name)
	assert.Equal(t, "jane@example.com", a.Email, "unsubmitted fields stay untouched")
	assert.Nil(t, a.Country)
}

func TestIsAllowedCountry(t *testing.T) {
	assert.True(t, IsAllowedCountry("SPAIN"))
	assert.True(t, IsAllowedCountry("UNITED STATES"))
	assert.False(t, IsAllowedCountry("spain"), "only normalized values are in the enum")
	assert.False(t, IsAllowedCountry("NARNIA"))
}
