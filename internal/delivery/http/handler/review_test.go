package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
	"github.com/ZattoxSan23/tienda-catalog/internal/usecase/review"
)

func newReviewHandler() (*ReviewHandler, *MockReviewRepository, *MockCache, *MockEventPublisher) {
	mockRepo := new(MockReviewRepository)
	mockCache := new(MockCache)
	mockPublisher := new(MockEventPublisher)
	log := logger.New("test")
	service := review.NewService(mockRepo, mockCache, mockPublisher, log)
	return NewReviewHandler(service, log), mockRepo, mockCache, mockPublisher
}

func reviewBody(t *testing.T) []byte {
	body, err := json.Marshal(map[string]any{
		"user_id":  7,
		"username": "john",
		"rating":   5,
		"comment":  "Great!",
	})
	assert.NoError(t, err)
	return body
}

func TestReviewHandler_Create_Success(t *testing.T) {
	handler, mockRepo, mockCache, mockPublisher := newReviewHandler()

	req := asCustomer(withIDParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/products/42/reviews", bytes.NewReader(reviewBody(t))), 42))

	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *domain.Review) bool {
		return r.ProductID == 42 && r.UserID == 7 && r.Rating == 5
	})).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, int64(42)).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockRepo.AssertExpectations(t)

	var response map[string]any
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(t, response, "data")
}

func TestReviewHandler_Create_Unauthenticated(t *testing.T) {
	handler, mockRepo, _, _ := newReviewHandler()

	req := withIDParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/products/42/reviews", bytes.NewReader(reviewBody(t))), 42)

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestReviewHandler_Create_ProductNotFound(t *testing.T) {
	handler, mockRepo, _, _ := newReviewHandler()

	req := asCustomer(withIDParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/products/99/reviews", bytes.NewReader(reviewBody(t))), 99))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(domain.ErrNotFound)

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReviewHandler_Create_AlreadyReviewed(t *testing.T) {
	handler, mockRepo, _, _ := newReviewHandler()

	req := asCustomer(withIDParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/products/42/reviews", bytes.NewReader(reviewBody(t))), 42))

	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Review")).Return(domain.ErrAlreadyExists)

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestReviewHandler_Create_InvalidRating(t *testing.T) {
	handler, mockRepo, _, _ := newReviewHandler()

	body, _ := json.Marshal(map[string]any{"user_id": 7, "username": "john", "rating": 9})
	req := asCustomer(withIDParam(
		httptest.NewRequest(http.MethodPost, "/api/v1/products/42/reviews", bytes.NewReader(body)), 42))

	w := doRequest(handler.Create, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestReviewHandler_ListByProduct_Success(t *testing.T) {
	handler, mockRepo, mockCache, _ := newReviewHandler()

	reviews := []*domain.Review{
		{ID: 2, ProductID: 42, UserID: 8, Username: "jane", Rating: 4},
		{ID: 1, ProductID: 42, UserID: 7, Username: "john", Rating: 5},
	}

	mockCache.On("GetReviewsList", mock.Anything, int64(42), 20, 0).Return(reviews, 2, nil)

	req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/42/reviews", nil), 42)
	w := doRequest(handler.ListByProduct, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Data       []map[string]any `json:"data"`
		Pagination map[string]int   `json:"pagination"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Len(t, response.Data, 2)
	assert.Equal(t, 2, response.Pagination["total"])
	assert.Equal(t, 20, response.Pagination["limit"])
	mockRepo.AssertNotCalled(t, "CountByProductID")
}

func TestReviewHandler_ListByProduct_InvalidID(t *testing.T) {
	handler, _, _, _ := newReviewHandler()

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc/reviews", nil), "id", "abc")
	w := doRequest(handler.ListByProduct, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
