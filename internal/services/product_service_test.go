package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id string) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockPublisher records published product events.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishProductEvent(event models.ProductEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

func ptr[T any](v T) *T { return &v }

func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e models.ProductEvent) bool { return e.Type == eventType })
}

func TestProductService_GetAllProducts(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Product A", Price: 10.0, Image: "a.png"},
		{ID: "2", Name: "Product B", Price: 20.0, Image: "b.png"},
	}
	mockRepo.On("GetAll", ctx).Return(expectedProducts, nil).Once()

	products, err := service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, expectedProducts, products)

	// An empty store yields an empty list, not nil.
	mockRepo.On("GetAll", ctx).Return(nil, nil).Once()
	products, err = service.GetAllProducts(ctx)
	assert.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	expectedProduct := &models.Product{ID: "1", Name: "Product A", Price: 10.0, Image: "a.png"}
	mockRepo.On("GetByID", ctx, "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID(ctx, "1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)

	mockRepo.On("GetByID", ctx, "99").Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	product, err = service.GetProductByID(ctx, "99")
	assert.Nil(t, product)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*models.Product).ID = "generated"
		}).
		Return(nil).Once()
	publisher.On("PublishProductEvent", eventOfType(models.ProductCreated)).Return(nil).Once()

	product, err := service.CreateProduct(ctx, models.CreateProductRequest{
		Name:  "  Pen ",
		Price: ptr(1.5),
		Image: "http://x/p.png",
	})
	require.NoError(t, err)
	assert.Equal(t, "generated", product.ID)
	assert.Equal(t, "Pen", product.Name)
	assert.Equal(t, 1.5, product.Price)
	assert.Equal(t, "http://x/p.png", product.Image)

	// Store failures are passed through untouched.
	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(errors.New("database error")).Once()
	_, err = service.CreateProduct(ctx, models.CreateProductRequest{Name: "Pen", Price: ptr(1.0), Image: "p.png"})
	assert.EqualError(t, err, "database error")

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_CreateProductValidation(t *testing.T) {
	tests := []struct {
		name   string
		req    models.CreateProductRequest
		fields []string
	}{
		{"missing name", models.CreateProductRequest{Price: ptr(1.0), Image: "p.png"}, []string{"name"}},
		{"blank name", models.CreateProductRequest{Name: "   ", Price: ptr(1.0), Image: "p.png"}, []string{"name"}},
		{"missing price", models.CreateProductRequest{Name: "Pen", Image: "p.png"}, []string{"price"}},
		{"missing image", models.CreateProductRequest{Name: "Pen", Price: ptr(1.0)}, []string{"image"}},
		{"empty body", models.CreateProductRequest{}, []string{"name", "price", "image"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockProductRepository)
			service := services.NewProductService(mockRepo, nil)

			product, err := service.CreateProduct(context.Background(), tt.req)
			assert.Nil(t, product)

			var verr *services.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, services.MsgMissingFields, verr.Message)
			for _, f := range tt.fields {
				assert.Contains(t, verr.Fields, f)
			}
			assert.Len(t, verr.Fields, len(tt.fields))
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestProductService_CreateProductAllowsZeroPrice(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	mockRepo.On("Create", ctx, mock.AnythingOfType("*models.Product")).Return(nil).Once()
	product, err := service.CreateProduct(ctx, models.CreateProductRequest{Name: "Free", Price: ptr(0.0), Image: "f.png"})
	require.NoError(t, err)
	assert.Zero(t, product.Price)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	patch := models.ProductPatch{Price: ptr(12.0)}
	updated := &models.Product{ID: "1", Name: "Product A", Price: 12.0, Image: "a.png"}
	mockRepo.On("Update", ctx, "1", patch).Return(updated, nil).Once()
	publisher.On("PublishProductEvent", eventOfType(models.ProductUpdated)).Return(nil).Once()

	product, err := service.UpdateProduct(ctx, "1", patch)
	require.NoError(t, err)
	assert.Equal(t, updated, product)

	missing := models.ProductPatch{Name: ptr("Ghost")}
	mockRepo.On("Update", ctx, "99", missing).Return(nil, fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	_, err = service.UpdateProduct(ctx, "99", missing)
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_UpdateProductTrimsFields(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	trimmed := models.ProductPatch{Name: ptr("Pen"), Image: ptr("pen.png")}
	mockRepo.On("Update", ctx, "1", trimmed).Return(&models.Product{ID: "1", Name: "Pen", Image: "pen.png"}, nil).Once()

	product, err := service.UpdateProduct(ctx, "1", models.ProductPatch{Name: ptr("  Pen  "), Image: ptr(" pen.png ")})
	require.NoError(t, err)
	assert.Equal(t, "Pen", product.Name)
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProductValidation(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo, nil)

	var verr *services.ValidationError
	_, err := service.UpdateProduct(context.Background(), "1", models.ProductPatch{})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "No fields to update", verr.Message)

	_, err = service.UpdateProduct(context.Background(), "1", models.ProductPatch{Name: ptr(" "), Image: ptr("")})
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "name")
	assert.Contains(t, verr.Fields, "image")

	mockRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductService_DeleteProduct(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Delete", ctx, "1").Return(nil).Once()
	publisher.On("PublishProductEvent", mock.MatchedBy(func(e models.ProductEvent) bool {
		return e.Type == models.ProductDeleted && e.ProductID == "1"
	})).Return(nil).Once()
	assert.NoError(t, service.DeleteProduct(ctx, "1"))

	// No event is published for a failed delete.
	mockRepo.On("Delete", ctx, "99").Return(fmt.Errorf("product with ID 99: %w", repositories.ErrProductNotFound)).Once()
	assert.ErrorIs(t, service.DeleteProduct(ctx, "99"), repositories.ErrProductNotFound)

	mockRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestProductService_PublishFailureDoesNotFailWrite(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockProductRepository)
	publisher := new(MockPublisher)
	service := services.NewProductService(mockRepo, publisher)

	mockRepo.On("Delete", ctx, "1").Return(nil).Once()
	publisher.On("PublishProductEvent", mock.Anything).Return(errors.New("broker down")).Once()

	assert.NoError(t, service.DeleteProduct(ctx, "1"))
	publisher.AssertExpectations(t)
}

func TestValidationError_Error(t *testing.T) {
	err := &services.ValidationError{Message: "bad", Fields: map[string]string{"price": "x", "name": "y"}}
	assert.Equal(t, "bad (name: y, price: x)", err.Error())
	assert.Equal(t, "bad", (&services.ValidationError{Message: "bad"}).Error())
}
