package handler

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/middleware"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/request"
	"github.com/ZattoxSan23/tienda-catalog/internal/delivery/http/response"
	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/product"
)

// ProductHandler handles HTTP requests for products
type ProductHandler struct {
	service *product.Service
	logger  *logger.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(service *product.Service, log *logger.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  log,
	}
}

// productView is the display form of a product, with the derived price fields.
type productView struct {
	*domain.Product
	FinalPrice         decimal.Decimal `json:"final_price"`
	DiscountPercentage decimal.Decimal `json:"discount_percentage"`
	HasDiscount        bool            `json:"has_discount"`
}

func toView(p *domain.Product) productView {
	return productView{
		Product:            p,
		FinalPrice:         p.FinalPrice(),
		DiscountPercentage: p.DiscountPercentage(),
		HasDiscount:        p.HasDiscount(),
	}
}

func toViews(products []*domain.Product) []productView {
	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toView(p))
	}
	return views
}

// UpdateStockRequest represents the request body for overwriting stock
type UpdateStockRequest struct {
	Quantity int `json:"quantity"`
}

// List handles GET /api/v1/products
// @Summary List products with filtering, sorting and pagination
// @Description Filter active products by search text, category (id takes precedence over name), brand, price range, featured/discount/stock flags. Sort by price_asc, price_desc, rating or newest.
// @Tags Products
// @Produce json
// @Param search query string false "Text matched against name, description and tags"
// @Param categoryId query int false "Category ID filter (wins over category)"
// @Param category query string false "Category name filter"
// @Param brand query string false "Brand exact match"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param isFeatured query bool false "Featured flag"
// @Param onDiscount query bool false "Only discounted products"
// @Param inStock query bool false "Only products with stock"
// @Param sortBy query string false "price_asc | price_desc | rating | newest"
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(20)
// @Success 200 {object} map[string]interface{} "Page of products"
// @Router /products [get]
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := domain.ProductFilter{
		Search:       r.URL.Query().Get("search"),
		CategoryID:   request.GetInt64Query(r, "categoryId"),
		CategoryName: r.URL.Query().Get("category"),
		Brand:        r.URL.Query().Get("brand"),
		MinPrice:     request.GetDecimalQuery(r, "minPrice"),
		MaxPrice:     request.GetDecimalQuery(r, "maxPrice"),
		IsFeatured:   request.GetBoolQuery(r, "isFeatured"),
		OnDiscount:   request.GetBoolQuery(r, "onDiscount"),
		InStock:      request.GetBoolQuery(r, "inStock"),
		SortBy:       r.URL.Query().Get("sortBy"),
		Page:         request.GetIntQuery(r, "page", 1),
		PageSize:     request.GetIntQuery(r, "pageSize", 20),
	}

	page, err := h.service.ListFiltered(r.Context(), filter)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Page(w, toViews(page.Products), page.TotalCount, page.TotalPages, page.Page, page.PageSize)
}

// ListFeatured handles GET /api/v1/products/featured
// @Summary List featured products
// @Description Get the newest featured products
// @Tags Products
// @Produce json
// @Param count query int false "Number of products" default(8)
// @Success 200 {object} map[string]interface{} "List of featured products"
// @Router /products/featured [get]
func (h *ProductHandler) ListFeatured(w http.ResponseWriter, r *http.Request) {
	count := request.GetIntQuery(r, "count", 0)

	products, err := h.service.ListFeatured(r.Context(), count)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toViews(products))
}

// ListBrands handles GET /api/v1/products/brands
// @Summary List brands
// @Description Get the distinct brands of active products
// @Tags Products
// @Produce json
// @Success 200 {object} map[string]interface{} "List of brands"
// @Router /products/brands [get]
func (h *ProductHandler) ListBrands(w http.ResponseWriter, r *http.Request) {
	brands, err := h.service.Brands(r.Context())
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, brands)
}

// ListByCategoryName handles GET /api/v1/products/category/{name}
// @Summary List products by category name
// @Description Get active products whose cached category name matches exactly
// @Tags Products
// @Produce json
// @Param name path string true "Category name"
// @Success 200 {object} map[string]interface{} "List of products"
// @Router /products/category/{name} [get]
func (h *ProductHandler) ListByCategoryName(w http.ResponseWriter, r *http.Request) {
	name := request.GetURLParam(r, "name")
	if name == "" {
		response.Error(w, http.StatusBadRequest, "Missing category name")
		return
	}

	products, err := h.service.ListByCategoryName(r.Context(), name)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toViews(products))
}

// ListByCategoryID handles GET /api/v1/categories/{id}/products
// @Summary List products in a category
// @Description Get active products linked to a category by id
// @Tags Products
// @Produce json
// @Param id path int true "Category ID"
// @Success 200 {object} map[string]interface{} "List of products"
// @Router /categories/{id}/products [get]
func (h *ProductHandler) ListByCategoryID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid category ID")
		return
	}

	products, err := h.service.ListByCategoryID(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toViews(products))
}

// GetByID handles GET /api/v1/products/:id
// @Summary Get a product by ID
// @Description Get an active product including its denormalized rating and derived price fields
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{} "Product details"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	found, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toView(found))
}

// Create handles POST /api/v1/products
// @Summary Create a new product
// @Description Create a product; a supplied category id must exist and its name is cached on the product. Admin only.
// @Tags Products
// @Accept json
// @Produce json
// @Param product body product.CreateInput true "Product details"
// @Success 201 {object} map[string]interface{} "Product created successfully"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Category not found"
// @Router /products [post]
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	var in product.CreateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), middleware.AuthFromContext(r.Context()), in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Created(w, toView(created))
}

// Update handles PUT /api/v1/products/:id
// @Summary Update a product
// @Description Partially update a product; discount price, color, size, material, image, sku and tags always overwrite (omission clears them). Admin only.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param product body product.UpdateInput true "Updated fields"
// @Success 200 {object} map[string]interface{} "Product updated successfully"
// @Failure 404 {object} map[string]string "Product or category not found"
// @Router /products/{id} [put]
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var in product.UpdateInput
	if err := request.DecodeJSON(r, &in); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), middleware.AuthFromContext(r.Context()), id, in)
	if err != nil {
		h.handleError(w, err)
		return
	}

	response.Success(w, toView(updated))
}

// UpdateStock handles PUT /api/v1/products/:id/stock
// @Summary Overwrite a product's stock
// @Description Set the stock count to the given quantity (not an increment). Admin only.
// @Tags Products
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param stock body UpdateStockRequest true "New stock quantity"
// @Success 204 "Stock updated"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id}/stock [put]
func (h *ProductHandler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	var req UpdateStockRequest
	if err := request.DecodeJSON(r, &req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.UpdateStock(r.Context(), middleware.AuthFromContext(r.Context()), id, req.Quantity); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// Delete handles DELETE /api/v1/products/:id
// @Summary Soft-delete a product
// @Description Mark the product inactive; its reviews are kept. Admin only.
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 204 "Product deleted"
// @Failure 404 {object} map[string]string "Product not found"
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := request.GetInt64Param(r, "id")
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	if err := h.service.Delete(r.Context(), middleware.AuthFromContext(r.Context()), id); err != nil {
		h.handleError(w, err)
		return
	}

	response.NoContent(w)
}

// handleError maps service layer errors to HTTP responses
func (h *ProductHandler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, "Product or category not found")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrUnauthorized):
		response.Error(w, http.StatusUnauthorized, "Authentication required")
	case errors.Is(err, domain.ErrForbidden):
		response.Error(w, http.StatusForbidden, "Admin role required")
	default:
		h.logger.Error("Internal error in product handler", err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
