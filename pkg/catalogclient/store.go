package catalogclient

import (
	"context"
	"errors"
	"sync"

	"catalog/internal/models"
)

// Result is what every store action reports back to the view.
type Result struct {
	Success bool
	Message string
	Fields  FormErrors
}

// API is the subset of Client the Store needs.
type API interface {
	ListProducts(ctx context.Context) ([]models.Product, error)
	CreateProduct(ctx context.Context, req models.CreateProductRequest) (*models.Product, error)
	UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) (*models.Product, error)
	DeleteProduct(ctx context.Context, id string) (string, error)
}

// Store mirrors the server's product list. Each action makes exactly one API
// call and changes the local list only when the call succeeds.
type Store struct {
	api      API
	mu       sync.RWMutex
	products []models.Product
}

// NewStore creates an empty Store backed by api.
func NewStore(api API) *Store {
	return &Store{api: api}
}

// Products returns a copy of the current list.
func (s *Store) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Product, len(s.products))
	copy(out, s.products)
	return out
}

// FetchProducts replaces the local list with the server's.
func (s *Store) FetchProducts(ctx context.Context) Result {
	products, err := s.api.ListProducts(ctx)
	if err != nil {
		return failure(err)
	}
	s.mu.Lock()
	s.products = products
	s.mu.Unlock()
	return Result{Success: true, Message: "Products fetched successfully"}
}

// SubmitForm validates form and, only if it is valid, creates the product.
func (s *Store) SubmitForm(ctx context.Context, form ProductForm) Result {
	if errs := form.Validate(); len(errs) > 0 {
		return Result{Success: false, Message: "Please fill all fields correctly", Fields: errs}
	}
	req, err := form.Request()
	if err != nil {
		return failure(err)
	}
	return s.CreateProduct(ctx, req)
}

// CreateProduct creates a product and appends it to the local list.
func (s *Store) CreateProduct(ctx context.Context, req models.CreateProductRequest) Result {
	if req.Name == "" || req.Image == "" || req.Price == nil {
		return Result{Success: false, Message: "Please fill in all fields."}
	}
	product, err := s.api.CreateProduct(ctx, req)
	if err != nil {
		return failure(err)
	}
	s.mu.Lock()
	s.products = append(s.products, *product)
	s.mu.Unlock()
	return Result{Success: true, Message: "Product created successfully"}
}

// UpdateProduct updates a product and replaces the local copy.
func (s *Store) UpdateProduct(ctx context.Context, id string, patch models.ProductPatch) Result {
	product, err := s.api.UpdateProduct(ctx, id, patch)
	if err != nil {
		return failure(err)
	}
	s.mu.Lock()
	for i := range s.products {
		if s.products[i].ID == id {
			s.products[i] = *product
		}
	}
	s.mu.Unlock()
	return Result{Success: true, Message: "Product updated successfully"}
}

// DeleteProduct deletes a product and drops it from the local list.
func (s *Store) DeleteProduct(ctx context.Context, id string) Result {
	msg, err := s.api.DeleteProduct(ctx, id)
	if err != nil {
		return failure(err)
	}
	s.mu.Lock()
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	s.products = kept
	s.mu.Unlock()
	return Result{Success: true, Message: msg}
}

func failure(err error) Result {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return Result{Success: false, Message: apiErr.Message, Fields: FormErrors(apiErr.Fields)}
	}
	return Result{Success: false, Message: err.Error()}
}
