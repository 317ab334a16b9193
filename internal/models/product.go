package models

import "time"

// Product represents a catalog entry.
type Product struct {
	ID        string    `json:"_id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"not null"`
	Price     float64   `json:"price" gorm:"not null"`
	Image     string    `json:"image" gorm:"not null"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateProductRequest is the body accepted when creating a product.
// Price is a pointer so a missing price is distinguishable from zero.
type CreateProductRequest struct {
	Name  string   `json:"name" validate:"required,notblank"`
	Price *float64 `json:"price" validate:"required"`
	Image string   `json:"image" validate:"required,notblank"`
}

// ProductPatch carries the fields of a partial update. Nil fields are left untouched.
type ProductPatch struct {
	Name  *string  `json:"name,omitempty"`
	Price *float64 `json:"price,omitempty"`
	Image *string  `json:"image,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return p.Name == nil && p.Price == nil && p.Image == nil
}

// Apply copies the supplied fields onto product.
func (p ProductPatch) Apply(product *Product) {
	if p.Name != nil {
		product.Name = *p.Name
	}
	if p.Price != nil {
		product.Price = *p.Price
	}
	if p.Image != nil {
		product.Image = *p.Image
	}
}
