package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"authors-api/internal/domains/author"
	"authors-api/internal/infrastructure/storage"
	"authors-api/internal/shared"
	"authors-api/internal/shared/middleware"
	"authors-api/internal/shared/response"
	"authors-api/pkg/logger"
)

// AuthorHandler exposes the author domain over HTTP. Stateless: only
// dependencies.
type AuthorHandler struct {
	service    author.Service
	storage    storage.Storage
	adminEmail string
}

func NewAuthorHandler(service author.Service, storage storage.Storage, adminEmail string) *AuthorHandler {
	return &AuthorHandler{
		service:    service,
		storage:    storage,
		adminEmail: adminEmail,
	}
}

// List handles GET /author?page&limit
func (h *AuthorHandler) List(c *gin.Context) {
	params, err := shared.ParsePageParams(c.Query("page"), c.Query("limit"))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	items, total, err := h.service.List(c.Request.Context(), params)
	if err != nil {
		h.handleError(c, err)
		return
	}

	response.Paginated(c, items, response.Pagination{
		TotalItems:  total,
		TotalPages:  params.TotalPages(total),
		CurrentPage: params.Page,
	})
}

// Create handles POST /author
func (h *AuthorHandler) Create(c *gin.Context) {
	var req author.CreateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// GetByName handles GET /author/name/:name — case-insensitive prefix search.
func (h *AuthorHandler) GetByName(c *gin.Context) {
	authors, err := h.service.FindByNamePrefix(c.Request.Context(), c.Param("name"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if len(authors) == 0 {
		// Empty result surfaces as not-found with an empty list body.
		c.JSON(http.StatusNotFound, []author.Author{})
		return
	}
	c.JSON(http.StatusOK, authors)
}

// GetByID handles GET /author/:id?includeBooks=true
func (h *AuthorHandler) GetByID(c *gin.Context) {
	includeBooks := c.Query("includeBooks") == "true"

	a, err := h.service.GetByID(c.Request.Context(), c.Param("id"), includeBooks)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update handles PUT /author/:id — owner or admin only.
func (h *AuthorHandler) Update(c *gin.Context) {
	if !h.isOwnerOrAdmin(c, c.Param("id")) {
		response.Unauthorized(c, author.ErrNotAuthorized.Error())
		return
	}

	var req author.UpdateAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// Delete handles DELETE /author/:id — owner or admin only. Books
// referencing the author are left untouched.
func (h *AuthorHandler) Delete(c *gin.Context) {
	if !h.isOwnerOrAdmin(c, c.Param("id")) {
		response.Unauthorized(c, author.ErrNotAuthorized.Error())
		return
	}

	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

// Login handles POST /author/login
func (h *AuthorHandler) Login(c *gin.Context) {
	var req author.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, author.ErrMissingCredentials.Error())
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, author.LoginResponse{Token: token})
}

// UploadImage handles POST /author/image-upload (multipart: file, authorId).
func (h *AuthorHandler) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file field is required")
		return
	}

	authorID := c.PostForm("authorId")
	if authorID == "" {
		response.BadRequest(c, "authorId field is required")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.handleError(c, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		h.handleError(c, err)
		return
	}

	location, err := h.storage.Save(
		c.Request.Context(),
		fileHeader.Filename,
		data,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		h.handleError(c, err)
		return
	}

	updated, err := h.service.SetProfileImage(c.Request.Context(), authorID, location)
	if err != nil {
		if errors.Is(err, author.ErrAuthorNotFound) {
			// Roll back the stored file when the owner doesn't exist.
			if removeErr := h.storage.Remove(c.Request.Context(), location); removeErr != nil {
				logger.Error("failed to remove orphaned upload", removeErr)
			}
		}
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, updated)
}

// isOwnerOrAdmin compares the authenticated identity against the path
// id (canonical UUID text, exact match) and the configured admin email.
func (h *AuthorHandler) isOwnerOrAdmin(c *gin.Context, pathID string) bool {
	claimID := c.GetString(middleware.CtxAuthorID)
	claimEmail := c.GetString(middleware.CtxAuthorEmail)

	if parsed, err := uuid.Parse(pathID); err == nil {
		pathID = parsed.String()
	}
	if parsed, err := uuid.Parse(claimID); err == nil {
		claimID = parsed.String()
	}

	return (claimID != "" && claimID == pathID) || (claimEmail != "" && claimEmail == h.adminEmail)
}

func (h *AuthorHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, author.ErrAuthorNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, author.ErrEmailAlreadyExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, author.ErrMissingCredentials):
		response.BadRequest(c, err.Error())
	case errors.Is(err, author.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	default:
		logger.Error("author handler failure", err)
		response.InternalServerError(c, "internal server error")
	}
}
