package handler

import (
	"errors"
	"net/http"

	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/middleware"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/request"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/response"
	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/review"
)

// ReviewHandler handles HTTP requests for product reviews
type ReviewHandler struct {
	service *review.Service
	logger  *logger.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(service *review.Service, log *logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		service: service,
		logger:  log,
	}
}

// Create handles POST /api/v1/products/:id/reviews
// @Summary Create a review
// @Description Add a review for an active product. One review per user per product. Any authenticated user may review.
// @Tags Reviews
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param review body review.CreateInput true "Review details"
// @Success 201 {object} map[string]interface{} "Review created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Authentication required"
// @Failure 404 {object} map[string]string "Product not found"
// @Failure 409 {object} map[string]string "User already reviewed this product"
// @Router /products/{id}/reviews [post]
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var in review.CreateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	in.ProductID = productID

	created, err := h.service.Create(r.Context(), middleware.AuthFromContext(r.Context()), in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, created)
}

// ListByProduct handles GET /api/v1/products/:id/reviews
// @Summary List reviews for a product
// @Description Get reviews for a product, newest first
// @Tags Reviews
// @Produce json
// @Param id path int true "Product ID"
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{} "List of reviews"
// @Router /products/{id}/reviews [get]
func (h *ReviewHandler) ListByProduct(w http.ResponseWriter, r *http.Request) {
	productID, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	limit, offset := request.GetPaginationParams(r)

	reviews, total, err := h.service.ListByProduct(r.Context(), productID, limit, offset)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Paginated(w, reviews, total, limit, offset)
}

// handleError maps service layer errors to HTTP responses
func (h *ReviewHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusConflict, "You have already reviewed this product")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, "Authentication required")
	default:
		h.logger.Error("Internal error in review handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
