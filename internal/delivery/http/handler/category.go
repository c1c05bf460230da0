package handler

import (
	"errors"
	"net/http"

	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/middleware"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/request"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/response"
	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/category"
)

// CategoryHandler handles HTTP requests for categories
type CategoryHandler struct {
	service *category.Service
	logger  *logger.Logger
}

// NewCategoryHandler creates a new category handler
func NewCategoryHandler(service *category.Service, log *logger.Logger) *CategoryHandler {
	return &CategoryHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/categories
// @Summary Create a new category
// @Description Create a category with a case-insensitively unique name. Admin only.
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body category.CreateInput true "Category details"
// @Success 201 {object} map[string]interface{} "Category created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 403 {object} map[string]string "Admin role required"
// @Failure 409 {object} map[string]string "Category name already in use"
// @Router /categories [post]
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in category.CreateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), middleware.AuthFromContext(r.Context()), in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, created)
}

// GetByID handles GET /api/v1/categories/:id
// @Summary Get a category by ID
// @Description Get a category together with its active-product count
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{} "Category details"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [get]
func (h *CategoryHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, found)
}

// List handles GET /api/v1/categories
// @Summary List all categories
// @Description Get all categories ordered by name, each with its active-product count
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{} "List of categories"
// @Router /categories [get]
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := h.service.List(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, categories)
}

// ListNames handles GET /api/v1/categories/names
// @Summary List active category names
// @Description Get the distinct names of active categories, ordered ascending
// @Tags Categories
// @Produce json
// @Success 200 {object} map[string]interface{} "List of names"
// @Router /categories/names [get]
func (h *CategoryHandler) ListNames(w http.ResponseWriter, r *http.Request) {
	names, err := h.service.ListActiveNames(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, names)
}

// Update handles PUT /api/v1/categories/:id
// @Summary Update a category
// @Description Update supplied category fields; renames re-check name uniqueness. Admin only.
// @Tags Categories
// @Accept json
// @Produce json
// @Param id path int true "Category ID"
// @Param category body category.UpdateInput true "Updated fields"
// @Success 200 {object} map[string]interface{} "Category updated successfully"
// @Failure 404 {object} map[string]string "Category not found"
// @Failure 409 {object} map[string]string "Category name already in use"
// @Router /categories/{id} [put]
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	var in category.UpdateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), middleware.AuthFromContext(r.Context()), id, in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, updated)
}

// ToggleActive handles PUT /api/v1/categories/:id/toggle
// @Summary Toggle a category's active flag
// @Description Flip the category between active and inactive. Admin only.
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{} "Category toggled"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id}/toggle [put]
func (h *CategoryHandler) ToggleActive(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	toggled, err := h.service.ToggleActive(r.Context(), middleware.AuthFromContext(r.Context()), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toggled)
}

// Delete handles DELETE /api/v1/categories/:id
// @Summary Delete a category
// @Description Physically remove the category, all of its products and their reviews. Admin only.
// @Tags Categories
// @Produce json
// @Param id path int true "Category ID"
// @Success 204 "Category deleted"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /categories/{id} [delete]
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	if err := h.service.Delete(r.Context(), middleware.AuthFromContext(r.Context()), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// handleError maps service layer errors to HTTP responses
func (h *CategoryHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, domain.ErrDuplicateName):
		response.Error(w, http.StatusConflict, "A category with this name already exists")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Admin role required")
	default:
		h.logger.Error("Internal error in category handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
