package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authors-api/internal/domains/author"
	"authors-api/internal/shared"
	"authors-api/internal/shared/middleware"
	"authors-api/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testAdminEmail = "admin@gmail.com"

// mockService implements author.Service with pluggable functions.
type mockService struct {
	listFn             func(ctx context.Context, params shared.PageParams) ([]author.Author, int64, error)
	createFn           func(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error)
	getByIDFn          func(ctx context.Context, id string, includeBooks bool) (*author.Author, error)
	findByNamePrefixFn func(ctx context.Context, prefix string) ([]author.Author, error)
	updateFn           func(ctx context.Context, id string, req author.UpdateAuthorRequest) (*author.Author, error)
	deleteFn           func(ctx context.Context, id string) (*author.Author, error)
	loginFn            func(ctx context.Context, req author.LoginRequest) (string, error)
	setProfileImageFn  func(ctx context.Context, id string, location string) (*author.Author, error)
}

func (m *mockService) List(ctx context.Context, params shared.PageParams) ([]author.Author, int64, error) {
	return m.listFn(ctx, params)
}

func (m *mockService) Create(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
	return m.createFn(ctx, req)
}

func (m *mockService) GetByID(ctx context.Context, id string, includeBooks bool) (*author.Author, error) {
	return m.getByIDFn(ctx, id, includeBooks)
}

func (m *mockService) FindByNamePrefix(ctx context.Context, prefix string) ([]author.Author, error) {
	return m.findByNamePrefixFn(ctx, prefix)
}

func (m *mockService) Update(ctx context.Context, id string, req author.UpdateAuthorRequest) (*author.Author, error) {
	return m.updateFn(ctx, id, req)
}

func (m *mockService) Delete(ctx context.Context, id string) (*author.Author, error) {
	return m.deleteFn(ctx, id)
}

func (m *mockService) Login(ctx context.Context, req author.LoginRequest) (string, error) {
	return m.loginFn(ctx, req)
}

func (m *mockService) SetProfileImage(ctx context.Context, id string, location string) (*author.Author, error) {
	return m.setProfileImageFn(ctx, id, location)
}

// mockStorage implements storage.Storage in memory.
type mockStorage struct {
	saved   []string
	removed []string
	saveErr error
}

func (m *mockStorage) Save(ctx context.Context, originalName string, data []byte, contentType string) (string, error) {
	if m.saveErr != nil {
		return "", m.saveErr
	}
	location := "public/stored_" + originalName
	m.saved = append(m.saved, location)
	return location, nil
}

func (m *mockStorage) Remove(ctx context.Context, location string) error {
	m.removed = append(m.removed, location)
	return nil
}

var testJWT = jwt.NewManager("test-secret", time.Hour)

// newRouter wires the handler the same way the HTTP server does,
// including the auth gate on mutating routes.
func newRouter(svc author.Service, store *mockStorage) *gin.Engine {
	h := NewAuthorHandler(svc, store, testAdminEmail)

	router := gin.New()
	group := router.Group("/author")
	{
		group.GET("", h.List)
		group.POST("", h.Create)
		group.POST("/login", h.Login)
		group.POST("/image-upload", h.UploadImage)
		group.GET("/name/:name", h.GetByName)
		group.GET("/:id", h.GetByID)
		group.PUT("/:id", middleware.Auth(testJWT), h.Update)
		group.DELETE("/:id", middleware.Auth(testJWT), h.Delete)
	}
	return router
}

func bearerFor(t *testing.T, authorID, email string) string {
	t.Helper()
	token, err := testJWT.Generate(authorID, email)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestListEnvelope(t *testing.T) {
	svc := &mockService{
		listFn: func(ctx context.Context, params shared.PageParams) ([]author.Author, int64, error) {
			assert.Equal(t, 2, params.Page)
			assert.Equal(t, 5, params.Limit)
			return []author.Author{{Name: "Jane Doe"}}, 11, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/author?page=2&limit=5", nil)
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Pagination struct {
			TotalItems  int64 `json:"totalItems"`
			TotalPages  int   `json:"totalPages"`
			CurrentPage int   `json:"currentPage"`
		} `json:"pagination"`
		Data []author.Author `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, int64(11), body.Pagination.TotalItems)
	assert.Equal(t, 3, body.Pagination.TotalPages)
	assert.Equal(t, 2, body.Pagination.CurrentPage)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "Jane Doe", body.Data[0].Name)
}

func TestListRejectsBadPageParams(t *testing.T) {
	svc := &mockService{
		listFn: func(ctx context.Context, params shared.PageParams) ([]author.Author, int64, error) {
			t.Fatal("service must not be reached on bad page params")
			return nil, 0, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	for _, query := range []string{"?page=abc", "?limit=0", "?page=-1", "?limit=x"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/author"+query, nil)
		router.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "query %q", query)
	}
}

func TestCreateReturns201(t *testing.T) {
	svc := &mockService{
		createFn: func(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
			return &author.Author{ID: uuid.New(), Email: req.Email, Name: req.Name}, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	payload := `{"email":"a@x.com","password":"12345678","name":"Jane Doe"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/author", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "password",
		"credentials must never appear in a response body")
}

func TestCreateConflictOnDuplicateEmail(t *testing.T) {
	svc := &mockService{
		createFn: func(ctx context.Context, req author.CreateAuthorRequest) (*author.Author, error) {
			return nil, author.ErrEmailAlreadyExists
		},
	}
	router := newRouter(svc, &mockStorage{})

	payload := `{"email":"a@x.com","password":"12345678","name":"Jane Doe"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/author", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestGetByNameEmptyResult(t *testing.T) {
	svc := &mockService{
		findByNamePrefixFn: func(ctx context.Context, prefix string) ([]author.Author, error) {
			return nil, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/author/name/zzz", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String(), "empty result ships an empty list body")
}

func TestGetByIDForwardsIncludeBooks(t *testing.T) {
	id := uuid.New()
	svc := &mockService{
		getByIDFn: func(ctx context.Context, gotID string, includeBooks bool) (*author.Author, error) {
			assert.Equal(t, id.String(), gotID)
			assert.True(t, includeBooks)
			return &author.Author{ID: id, Name: "Jane Doe"}, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/author/"+id.String()+"?includeBooks=true", nil)
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateOwnership(t *testing.T) {
	ownerID := uuid.New()
	svc := &mockService{
		updateFn: func(ctx context.Context, id string, req author.UpdateAuthorRequest) (*author.Author, error) {
			return &author.Author{ID: ownerID, Name: "Janet Doe"}, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	send := func(t *testing.T, header string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/author/"+ownerID.String(),
			bytes.NewBufferString(`{"name":"Janet Doe"}`))
		req.Header.Set("Content-Type", "application/json")
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("no token", func(t *testing.T) {
		rec := send(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("someone else's token", func(t *testing.T) {
		rec := send(t, bearerFor(t, uuid.New().String(), "other@x.com"))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "not authorized")
	})

	t.Run("owner token", func(t *testing.T) {
		rec := send(t, bearerFor(t, ownerID.String(), "owner@x.com"))
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("admin token", func(t *testing.T) {
		rec := send(t, bearerFor(t, uuid.New().String(), testAdminEmail))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestDeleteOwnership(t *testing.T) {
	ownerID := uuid.New()
	deleted := false
	svc := &mockService{
		deleteFn: func(ctx context.Context, id string) (*author.Author, error) {
			deleted = true
			return &author.Author{ID: ownerID}, nil
		},
	}
	router := newRouter(svc, &mockStorage{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/author/"+ownerID.String(), nil)
	req.Header.Set("Authorization", bearerFor(t, uuid.New().String(), "other@x.com"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, deleted, "service must not be reached for a non-owner")

	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodDelete, "/author/"+ownerID.String(), nil)
	req.Header.Set("Authorization", bearerFor(t, ownerID.String(), "owner@x.com"))
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, deleted)
}

func TestLoginStatuses(t *testing.T) {
	svc := &mockService{
		loginFn: func(ctx context.Context, req author.LoginRequest) (string, error) {
			switch {
			case req.Email == "" || req.Password == "":
				return "", author.ErrMissingCredentials
			case req.Email == "a@x.com" && req.Password == "12345678":
				return "issued-token", nil
			default:
				return "", author.ErrInvalidCredentials
			}
		},
	}
	router := newRouter(svc, &mockStorage{})

	post := func(t *testing.T, payload string) *httptest.ResponseRecorder {
		t.Helper()
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/author/login", bytes.NewBufferString(payload))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing fields", func(t *testing.T) {
		rec := post(t, `{"email":"a@x.com"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("bad credentials", func(t *testing.T) {
		rec := post(t, `{"email":"a@x.com","password":"wrong"}`)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, rec.Body.String(), "incorrect email and/or password")
	})

	t.Run("success", func(t *testing.T) {
		rec := post(t, `{"email":"a@x.com","password":"12345678"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"token":"issued-token"}`, rec.Body.String())
	})
}

func TestUploadImage(t *testing.T) {
	buildRequest := func(t *testing.T, withFile bool, authorID string) *http.Request {
		t.Helper()
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		if withFile {
			part, err := writer.CreateFormFile("file", "avatar.png")
			require.NoError(t, err)
			_, err = part.Write([]byte("png-bytes"))
			require.NoError(t, err)
		}
		if authorID != "" {
			require.NoError(t, writer.WriteField("authorId", authorID))
		}
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, "/author/image-upload", &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		return req
	}

	t.Run("attaches the stored location", func(t *testing.T) {
		id := uuid.New()
		svc := &mockService{
			setProfileImageFn: func(ctx context.Context, gotID string, location string) (*author.Author, error) {
				assert.Equal(t, id.String(), gotID)
				return &author.Author{ID: id, ProfileImage: &location}, nil
			},
		}
		store := &mockStorage{}
		router := newRouter(svc, store)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, buildRequest(t, true, id.String()))

		require.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, store.saved, 1)
		assert.Contains(t, store.saved[0], "avatar.png")
		assert.Empty(t, store.removed)
	})

	t.Run("missing file", func(t *testing.T) {
		router := newRouter(&mockService{}, &mockStorage{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, buildRequest(t, false, uuid.New().String()))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing authorId", func(t *testing.T) {
		router := newRouter(&mockService{}, &mockStorage{})
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, buildRequest(t, true, ""))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown author rolls the file back", func(t *testing.T) {
		svc := &mockService{
			setProfileImageFn: func(ctx context.Context, id string, location string) (*author.Author, error) {
				return nil, author.ErrAuthorNotFound
			},
		}
		store := &mockStorage{}
		router := newRouter(svc, store)

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, buildRequest(t, true, uuid.New().String()))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		require.Len(t, store.saved, 1)
		require.Len(t, store.removed, 1)
		assert.Equal(t, store.saved[0], store.removed[0])
	})
}
