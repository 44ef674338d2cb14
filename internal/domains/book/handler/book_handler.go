package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"authors-api/internal/domains/book"
	"authors-api/internal/shared"
	"authors-api/internal/shared/response"
	"authors-api/pkg/logger"
)

// BookHandler exposes the book domain over HTTP.
type BookHandler struct {
	service book.Service
}

func NewBookHandler(service book.Service) *BookHandler {
	return &BookHandler{service: service}
}

// List handles GET /book?page&limit — each item carries its resolved author.
func (h *BookHandler) List(c *gin.Context) {
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

// Create handles POST /book
func (h *BookHandler) Create(c *gin.Context) {
	var req book.CreateBookRequest
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

// GetByTitle handles GET /book/title/:title — case-insensitive prefix search.
func (h *BookHandler) GetByTitle(c *gin.Context) {
	books, err := h.service.FindByTitlePrefix(c.Request.Context(), c.Param("title"))
	if err != nil {
		h.handleError(c, err)
		return
	}

	if len(books) == 0 {
		c.JSON(http.StatusNotFound, []book.Book{})
		return
	}
	c.JSON(http.StatusOK, books)
}

// GetByID handles GET /book/:id — the author reference is resolved.
func (h *BookHandler) GetByID(c *gin.Context) {
	b, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// Update handles PUT /book/:id — partial merge plus re-validation.
func (h *BookHandler) Update(c *gin.Context) {
	var req book.UpdateBookRequest
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

// Delete handles DELETE /book/:id
func (h *BookHandler) Delete(c *gin.Context) {
	deleted, err := h.service.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, deleted)
}

func (h *BookHandler) handleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, verrs)
	case errors.Is(err, book.ErrBookNotFound):
		response.NotFound(c, err.Error())
	default:
		logger.Error("book handler failure", err)
		response.InternalServerError(c, "internal server error")
	}
}
