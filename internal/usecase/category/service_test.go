package category

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ZattoxSan23/tienda-catalog/internal/domain"
	"github.com/ZattoxSan23/tienda-catalog/internal/pkg/logger"
)

// MockCategoryRepository is a mock implementation of domain.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) List(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) ListActiveNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCategoryRepository) ExistsByName(ctx context.Context, name string, excludeID int64) (bool, error) {
	args := m.Called(ctx, name, excludeID)
	return args.Bool(0), args.Error(1)
}

func (m *MockCategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	args := m.Called(ctx, category)
	return args.Error(0)
}

func (m *MockCategoryRepository) Delete(ctx context.Context, id int64) ([]int64, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int64), args.Error(1)
}

// MockCache is a mock implementation of Cache
type MockCache struct {
	mock.Mock
}

func (m *MockCache) GetCategoryList(ctx context.Context) ([]*domain.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Category), args.Error(1)
}

func (m *MockCache) SetCategoryList(ctx context.Context, categories []*domain.Category) error {
	args := m.Called(ctx, categories)
	return args.Error(0)
}

func (m *MockCache) InvalidateCategoryList(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockCache) InvalidateAllProductCache(ctx context.Context, productID int64) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	args := m.Called(ctx, subject, data)
	return args.Error(0)
}

func adminUser() domain.AuthContext {
	return domain.AuthContext{Authenticated: true, UserID: 1, Role: domain.RoleAdmin}
}

func customerUser() domain.AuthContext {
	return domain.AuthContext{Authenticated: true, UserID: 2, Role: "Customer"}
}

func newTestService() (*Service, *MockCategoryRepository, *MockCache, *MockEventPublisher) {
	mockRepo := new(MockCategoryRepository)
	mockCache := new(MockCache)
	mockPublisher := new(MockEventPublisher)
	service := NewService(mockRepo, mockCache, mockPublisher, logger.New("test"))
	return service, mockRepo, mockCache, mockPublisher
}

func TestService_Create_Success(t *testing.T) {
	service, mockRepo, mockCache, mockPublisher := newTestService()

	in := CreateInput{Name: "Snacks"}

	mockRepo.On("ExistsByName", mock.Anything, "Snacks", int64(0)).Return(false, nil)
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Category")).Return(nil)
	mockCache.On("InvalidateCategoryList", mock.Anything).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	category, err := service.Create(context.Background(), adminUser(), in)

	assert.NoError(t, err)
	assert.Equal(t, "Snacks", category.Name)
	assert.True(t, category.IsActive)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_Create_DuplicateName(t *testing.T) {
	service, mockRepo, mockCache, _ := newTestService()

	in := CreateInput{Name: "snacks"}

	mockRepo.On("ExistsByName", mock.Anything, "snacks", int64(0)).Return(true, nil)

	category, err := service.Create(context.Background(), adminUser(), in)

	assert.Error(t, err)
	assert.Equal(t, domain.ErrDuplicateName, err)
	assert.Nil(t, category)
	mockRepo.AssertNotCalled(t, "Create")
	mockCache.AssertNotCalled(t, "InvalidateCategoryList")
}

func TestService_Create_Unauthenticated(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	category, err := service.Create(context.Background(), domain.AuthContext{}, CreateInput{Name: "Snacks"})

	assert.Equal(t, domain.ErrUnauthorized, err)
	assert.Nil(t, category)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_NonAdmin(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	category, err := service.Create(context.Background(), customerUser(), CreateInput{Name: "Snacks"})

	assert.Equal(t, domain.ErrForbidden, err)
	assert.Nil(t, category)
	mockRepo.AssertNotCalled(t, "Create")
}

func TestService_Create_InvalidName(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	category, err := service.Create(context.Background(), adminUser(), CreateInput{Name: ""})

	assert.Equal(t, domain.ErrInvalidInput, err)
	assert.Nil(t, category)
	mockRepo.AssertNotCalled(t, "ExistsByName")
}

func TestService_List_CacheHit(t *testing.T) {
	service, mockRepo, mockCache, _ := newTestService()

	expected := []*domain.Category{
		{ID: 1, Name: "Chips", IsActive: true},
		{ID: 2, Name: "Soda", IsActive: true},
	}

	mockCache.On("GetCategoryList", mock.Anything).Return(expected, nil)

	categories, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	mockRepo.AssertNotCalled(t, "List")
}

func TestService_List_CacheMiss(t *testing.T) {
	service, mockRepo, mockCache, _ := newTestService()

	expected := []*domain.Category{{ID: 1, Name: "Chips", IsActive: true}}

	mockCache.On("GetCategoryList", mock.Anything).Return(nil, assert.AnError)
	mockRepo.On("List", mock.Anything).Return(expected, nil)
	mockCache.On("SetCategoryList", mock.Anything, expected).Return(nil)

	categories, err := service.List(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, categories)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_Update_RenameChecksUniqueness(t *testing.T) {
	service, mockRepo, mockCache, mockPublisher := newTestService()

	existing := &domain.Category{ID: 5, Name: "Snacks", IsActive: true}
	newName := "Drinks"

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	mockRepo.On("ExistsByName", mock.Anything, "Drinks", int64(5)).Return(false, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return c.Name == "Drinks"
	})).Return(nil)
	mockCache.On("InvalidateCategoryList", mock.Anything).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	updated, err := service.Update(context.Background(), adminUser(), 5, UpdateInput{Name: &newName})

	assert.NoError(t, err)
	assert.Equal(t, "Drinks", updated.Name)
	mockRepo.AssertExpectations(t)
}

func TestService_Update_RenameToTakenName(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	existing := &domain.Category{ID: 5, Name: "Snacks", IsActive: true}
	newName := "Drinks"

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	mockRepo.On("ExistsByName", mock.Anything, "Drinks", int64(5)).Return(true, nil)

	updated, err := service.Update(context.Background(), adminUser(), 5, UpdateInput{Name: &newName})

	assert.Equal(t, domain.ErrDuplicateName, err)
	assert.Nil(t, updated)
	mockRepo.AssertNotCalled(t, "Update")
}

func TestService_Update_NotFound(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	mockRepo.On("GetByID", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	updated, err := service.Update(context.Background(), adminUser(), 99, UpdateInput{})

	assert.Equal(t, domain.ErrNotFound, err)
	assert.Nil(t, updated)
}

func TestService_ToggleActive(t *testing.T) {
	service, mockRepo, mockCache, mockPublisher := newTestService()

	existing := &domain.Category{ID: 5, Name: "Snacks", IsActive: true}

	mockRepo.On("GetByID", mock.Anything, int64(5)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.Category) bool {
		return !c.IsActive
	})).Return(nil)
	mockCache.On("InvalidateCategoryList", mock.Anything).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	toggled, err := service.ToggleActive(context.Background(), adminUser(), 5)

	assert.NoError(t, err)
	assert.False(t, toggled.IsActive)
	mockRepo.AssertExpectations(t)
}

func TestService_Delete_CascadeInvalidatesRemovedProducts(t *testing.T) {
	service, mockRepo, mockCache, mockPublisher := newTestService()

	removed := []int64{10, 11, 12}

	mockRepo.On("Delete", mock.Anything, int64(5)).Return(removed, nil)
	mockCache.On("InvalidateCategoryList", mock.Anything).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, int64(10)).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, int64(11)).Return(nil)
	mockCache.On("InvalidateAllProductCache", mock.Anything, int64(12)).Return(nil)
	mockPublisher.On("Publish", mock.Anything, "catalog.events", mock.Anything).Return(nil).Maybe()

	err := service.Delete(context.Background(), adminUser(), 5)

	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)
	mockCache.AssertExpectations(t)
}

func TestService_Delete_NotFound(t *testing.T) {
	service, mockRepo, mockCache, _ := newTestService()

	mockRepo.On("Delete", mock.Anything, int64(99)).Return(nil, domain.ErrNotFound)

	err := service.Delete(context.Background(), adminUser(), 99)

	assert.Equal(t, domain.ErrNotFound, err)
	mockCache.AssertNotCalled(t, "InvalidateCategoryList")
}

func TestService_Delete_NonAdmin(t *testing.T) {
	service, mockRepo, _, _ := newTestService()

	err := service.Delete(context.Background(), customerUser(), 5)

	assert.Equal(t, domain.ErrForbidden, err)
	mockRepo.AssertNotCalled(t, "Delete")
}
