package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/product"
)

func newProductHandler() (*ProductHandler, *MockProductRepository, *MockCategoryRepository, *MockCache, *MockEventPublisher) {
	mockRepo := new(MockProductRepository)
	mockCategories := new(MockCategoryRepository)
	mockCache := new(MockCache)
	mockPublisher := new(MockEventPublisher)
	log := logger.New("test")
	service := product.NewService(mockRepo, mockCategories, mockCache, mockPublisher, 0, log)
	return NewProductHandler(service, log), mockRepo, mockCategories, mockCache, mockPublisher
}

func TestProductHandler_List_ParsesFilter(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	mockRepo.On("FindFiltered", mock.Anything, mock.MatchedBy(func(f domain.ProductFilter) bool {
		return f.Search == "chip" &&
			f.CategoryID != nil && *f.CategoryID == 3 &&
			f.CategoryName == "Snacks" &&
			f.Brand == "Lays" &&
			f.MinPrice != nil && f.MinPrice.Equal(decimal.NewFromInt(1)) &&
			f.MaxPrice != nil && f.MaxPrice.Equal(decimal.NewFromInt(5)) &&
			f.OnDiscount != nil && *f.OnDiscount &&
			f.SortBy == domain.SortPriceAsc &&
			f.Page == 2 && f.PageSize == 10
	})).Return([]*domain.Product{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/products?search=chip&categoryId=3&category=Snacks&brand=Lays&minPrice=1&maxPrice=5&onDiscount=true&sortBy=price_asc&page=2&pageSize=10", nil)

	w := doRequest(handler.List, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_List_PaginationMetadata(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	products := []*domain.Product{{ID: 1, Name: "Chips", Price: decimal.NewFromInt(2)}}
	mockRepo.On("FindFiltered", mock.Anything, mock.Anything).Return(products, 45, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?page=3&pageSize=20", nil)
	w := doRequest(handler.List, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Pagination map[string]int `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, 45, response.Pagination["total_count"])
	assert.Equal(t, 3, response.Pagination["total_pages"])
	assert.Equal(t, 3, response.Pagination["page"])
	assert.Equal(t, 20, response.Pagination["page_size"])
}

func TestProductHandler_GetByID_IncludesDerivedFields(t *testing.T) {
	handler, _, _, mockCache, _ := newProductHandler()

	discount := decimal.NewFromInt(8)
	p := &domain.Product{
		ID:            10,
		Name:          "Chips",
		Price:         decimal.NewFromInt(10),
		DiscountPrice: &discount,
	}
	mockCache.On("GetProduct", mock.Anything, int64(10)).Return(p, nil)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/10", nil), 10)
	w := doRequest(handler.GetByID, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data struct {
			FinalPrice         string `json:"final_price"`
			DiscountPercentage string `json:"discount_percentage"`
			HasDiscount        bool   `json:"has_discount"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "8", response.Data.FinalPrice)
	assert.Equal(t, "20", response.Data.DiscountPercentage)
	assert.True(t, response.Data.HasDiscount)
}

func TestProductHandler_GetByID_NotFound(t *testing.T) {
	handler, mockRepo, _, mockCache, _ := newProductHandler()

	mockCache.On("GetProduct", mock.Anything, int64(99)).Return(nil, assert.AnError)
	mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/99", nil), 99)
	w := doRequest(handler.GetByID, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Create_Success(t *testing.T) {
	handler, mockRepo, _, mockCache, mockPublisher := newProductHandler()

	body, _ := json.Marshal(map[string]any{"name": "Chips", "price": "2.50"})
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Product")).Run(func(args mock.Arguments) {
		args.Get(1).(*domain.Product).ID = 10
	}).Return(nil)
	mockRepo.On("GetByID", mock.Anything, int64(10)).Return(&domain.Product{ID: 10, Name: "Chips", Price: decimal.NewFromFloat(2.50)}, nil)
	mockCache.On("InvalidateCategoryList", mock.Anything).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_Create_CategoryNotFound(t *testing.T) {
	handler, _, mockCategories, _, _ := newProductHandler()

	body, _ := json.Marshal(map[string]any{"name": "Chips", "price": "2.50", "category_id": 99})
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

	mockCategories.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_Create_NonAdmin(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	body, _ := json.Marshal(map[string]any{"name": "Chips", "price": "2.50"})
	req := asCustomer(httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestProductHandler_Create_InvalidPrice(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	body, _ := json.Marshal(map[string]any{"name": "Chips", "price": "0"})
	req := asAdmin(httptest.NewRequest(http.MethodPost, "/api/v1/products", bytes.NewReader(body)))

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestProductHandler_UpdateStock_Success(t *testing.T) {
	handler, mockRepo, _, mockCache, mockPublisher := newProductHandler()

	body, _ := json.Marshal(map[string]int{"quantity": 7})
	req := asAdmin(withIDParam(httptest.NewRequest(http.MethodPut, "/api/v1/products/10/stock", bytes.NewReader(body)), 10))

	mockRepo.On("UpdateStock", mock.Anything, int64(10), 7).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, int64(10)).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	w := doRequest(handler.UpdateStock, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_UpdateStock_NegativeQuantity(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	body, _ := json.Marshal(map[string]int{"quantity": -1})
	req := asAdmin(withIDParam(httptest.NewRequest(http.MethodPut, "/api/v1/products/10/stock", bytes.NewReader(body)), 10))

	w := doRequest(handler.UpdateStock, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "UpdateStock")
}

func TestProductHandler_Delete_NotFound(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	req := asAdmin(withIDParam(httptest.NewRequest(http.MethodDelete, "/api/v1/products/99", nil), 99))

	mockRepo.On("Delete", mock.Anything, int64(99)).Return(domain.ErrNotFound)

	w := doRequest(handler.Delete, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProductHandler_ListFeatured_Success(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	mockRepo.On("ListFeatured", mock.Anything, 8).Return([]*domain.Product{
		{ID: 1, Name: "Chips", Price: decimal.NewFromInt(2), IsFeatured: true},
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/featured", nil)
	w := doRequest(handler.ListFeatured, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockRepo.AssertExpectations(t)
}

func TestProductHandler_ListBrands_Success(t *testing.T) {
	handler, mockRepo, _, _, _ := newProductHandler()

	mockRepo.On("ListBrands", mock.Anything).Return([]string{"Generic", "Lays"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/brands", nil)
	w := doRequest(handler.ListBrands, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response["data"], 2)
}
