package book

import (
	"testing"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

func TestCreateBookRequestValid(t *testing.T) {
	req := CreateBookRequest{
		Title:  "My Book Title",
		Author: strPtr("7b8a1b09-6d45-4a52-9f0a-3f2f54c0a111"),
		Pages:  intPtr(300),
		Publisher: &PublisherRequest{
			Name:    "Penguin Books",
			Country: "usa",
		},
	}
	req.Normalize()

	require.NoError(t, req.Validate())
	assert.Equal(t, "USA", req.Publisher.Country)
}

func TestCreateBookRequestMinimal(t *testing.T) {
	// Only the title is required.
	req := CreateBookRequest{Title: "Haiku"}
	req.Normalize()
	assert.NoError(t, req.Validate())
}

func TestCreateBookRequestViolations(t *testing.T) {
	cases := []struct {
		name  string
		req   CreateBookRequest
		field string
	}{
		{"missing title", CreateBookRequest{}, "Title"},
		{"short title", CreateBookRequest{Title: "ab"}, "Title"},
		{"long title", CreateBookRequest{Title: "abcdefghijklmnopqrstu"}, "Title"},
		{"zero pages", CreateBookRequest{Title: "My Book", Pages: intPtr(0)}, "Pages"},
		{"too many pages", CreateBookRequest{Title: "My Book", Pages: intPtr(1001)}, "Pages"},
		{"bad author id", CreateBookRequest{Title: "My Book", Author: strPtr("not-a-uuid")}, "Author"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := tc.req
			req.Normalize()

			err := req.Validate()
			require.Error(t, err)

			verrs, ok := err.(validation.Errors)
			require.True(t, ok, "expected validation.Errors, got %T", err)
			assert.Contains(t, verrs, tc.field)
		})
	}
}

func TestPublisherRequestViolations(t *testing.T) {
	req := CreateBookRequest{
		Title:     "My Book",
		Publisher: &PublisherRequest{Name: "ab"},
	}
	req.Normalize()
	assert.Error(t, req.Validate(), "nested publisher name too short")

	req = CreateBookRequest{
		Title:     "My Book",
		Publisher: &PublisherRequest{Name: ""},
	}
	req.Normalize()
	assert.Error(t, req.Validate(), "nested publisher name empty")

	req = CreateBookRequest{
		Title:     "My Book",
		Publisher: &PublisherRequest{Name: "Penguin", Country: "COLOMBIA"},
	}
	req.Normalize()
	assert.Error(t, req.Validate(), "COLOMBIA is not in the publisher enum subset")
}

func TestUpdateBookRequestPartial(t *testing.T) {
	req := UpdateBookRequest{}
	req.Normalize()
	assert.NoError(t, req.Validate())

	req = UpdateBookRequest{Title: strPtr("ab")}
	req.Normalize()
	assert.Error(t, req.Validate())

	// Empty author string clears the reference and passes validation.
	req = UpdateBookRequest{Author: strPtr("")}
	req.Normalize()
	assert.NoError(t, req.Validate())
}

func TestUpdateBookRequestRejectsBlankFields(t *testing.T) {
	// A submitted empty title or zero page count is a violation, not a
	// merge of nothing.
	cases := []struct {
		name  string
		req   UpdateBookRequest
		field string
	}{
		{"empty title", UpdateBookRequest{Title: strPtr("")}, "Title"},
		{"whitespace title", UpdateBookRequest{Title: strPtr("   ")}, "Title"},
		{"zero pages", UpdateBookRequest{Pages: intPtr(0)}, "Pages"},
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
