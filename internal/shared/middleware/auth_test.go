package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authors-api/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestAuth(t *testing.T) {
	manager := jwt.NewManager("test-secret", time.Hour)

	request := func(t *testing.T, header string) *httptest.ResponseRecorder {
		t.Helper()
		router := gin.New()
		router.GET("/protected", Auth(manager), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"authorID": c.GetString(CtxAuthorID),
				"email":    c.GetString(CtxAuthorEmail),
			})
		})

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing header", func(t *testing.T) {
		rec := request(t, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong scheme", func(t *testing.T) {
		rec := request(t, "Basic dXNlcjpwYXNz")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer without token", func(t *testing.T) {
		rec := request(t, "Bearer")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("garbage token", func(t *testing.T) {
		rec := request(t, "Bearer not.a.token")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := jwt.NewManager("other-secret", time.Hour).Generate("some-id", "a@x.com")
		require.NoError(t, err)
		rec := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := jwt.NewManager("test-secret", -time.Minute).Generate("some-id", "a@x.com")
		require.NoError(t, err)
		rec := request(t, "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token exposes the identity", func(t *testing.T) {
		token, err := manager.Generate("some-id", "a@x.com")
		require.NoError(t, err)
		rec := request(t, "Bearer "+token)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"authorID":"some-id","email":"a@x.com"}`, rec.Body.String())
	})
}
