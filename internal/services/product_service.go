package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"catalog/internal/models"
	"catalog/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MsgMissingFields is the message returned for incomplete product payloads.
const MsgMissingFields = "Please provide all fields"

// EventPublisher delivers product change notifications.
type EventPublisher interface {
	PublishProductEvent(event models.ProductEvent) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo     repositories.ProductRepository
	events   EventPublisher
	validate *validator.Validate
}

// NewProductService creates a new ProductService. events may be nil, in which
// case no product events are published.
func NewProductService(repo repositories.ProductRepository, events EventPublisher) *ProductService {
	v := validator.New(validator.WithRequiredStructEnabled())
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	return &ProductService{
		repo:     repo,
		events:   events,
		validate: v,
	}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(ctx context.Context, id string) (*models.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// CreateProduct validates req and persists a new product.
func (s *ProductService) CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, toValidationError(err)
	}

	product := &models.Product{
		Name:  strings.TrimSpace(req.Name),
		Price: *req.Price,
		Image: strings.TrimSpace(req.Image),
	}
	if err := s.repo.Create(ctx, product); err != nil {
		return nil, err
	}

	s.publish(models.ProductCreated, product.ID, product.Name)
	return product, nil
}

// UpdateProduct applies the supplied fields of patch to the product with the given ID.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	product, err := s.repo.Update(ctx, id, trimPatch(patch))
	if err != nil {
		return nil, err
	}

	s.publish(models.ProductUpdated, product.ID, product.Name)
	return product, nil
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.publish(models.ProductDeleted, id, "")
	return nil
}

func (s *ProductService) publish(eventType, id, name string) {
	if s.events == nil {
		return
	}
	event := models.ProductEvent{
		Type:       eventType,
		ProductID:  id,
		Name:       name,
		OccurredAt: time.Now().UTC(),
	}
	if err := s.events.PublishProductEvent(event); err != nil {
		log.Printf("Warning: failed to publish %s event for product %s: %v", eventType, id, err)
	}
}

func validatePatch(patch models.ProductPatch) error {
	if patch.IsEmpty() {
		return &ValidationError{Message: "No fields to update"}
	}
	fields := map[string]string{}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		fields["name"] = "must not be blank"
	}
	if patch.Image != nil && strings.TrimSpace(*patch.Image) == "" {
		fields["image"] = "must not be blank"
	}
	if len(fields) > 0 {
		return &ValidationError{Message: MsgMissingFields, Fields: fields}
	}
	return nil
}

// trimPatch strips surrounding whitespace the same way CreateProduct does.
func trimPatch(patch models.ProductPatch) models.ProductPatch {
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		patch.Name = &name
	}
	if patch.Image != nil {
		image := strings.TrimSpace(*patch.Image)
		patch.Image = &image
	}
	return patch
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate product: %w", err)
	}
	fields := make(map[string]string, len(verrs))
	for _, e := range verrs {
		fields[jsonName(e.Field())] = fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
	return &ValidationError{Message: MsgMissingFields, Fields: fields}
}

func jsonName(field string) string {
	return strings.ToLower(field)
}
