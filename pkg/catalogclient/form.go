package catalogclient

import (
	"math"
	"strconv"
	"strings"

	"catalog/internal/models"
)

// ProductForm holds the raw text a user typed into the product form.
type ProductForm struct {
	Name  string
	Price string
	Image string
}

// FormErrors maps a form field to the message shown under it.
type FormErrors map[string]string

// Validate checks the form before anything is sent: name and image must be
// non-blank and price must parse as a positive number.
func (f ProductForm) Validate() FormErrors {
	errs := FormErrors{}
	if strings.TrimSpace(f.Name) == "" {
		errs["name"] = "Product name is required"
	}
	price := strings.TrimSpace(f.Price)
	if price == "" {
		errs["price"] = "Price is required"
	} else if _, ok := parsePrice(price); !ok {
		errs["price"] = "Price must be a positive number"
	}
	if strings.TrimSpace(f.Image) == "" {
		errs["image"] = "Image URL is required"
	}
	return errs
}

// Request converts a valid form into an API request.
func (f ProductForm) Request() (models.CreateProductRequest, error) {
	price, err := strconv.ParseFloat(strings.TrimSpace(f.Price), 64)
	if err != nil {
		return models.CreateProductRequest{}, err
	}
	return models.CreateProductRequest{
		Name:  strings.TrimSpace(f.Name),
		Price: &price,
		Image: strings.TrimSpace(f.Image),
	}, nil
}

// Patch converts the non-empty fields of the form into a partial update.
// Invalid entries are reported like Validate does.
func (f ProductForm) Patch() (models.ProductPatch, FormErrors) {
	var patch models.ProductPatch
	errs := FormErrors{}
	if name := strings.TrimSpace(f.Name); name != "" {
		patch.Name = &name
	}
	if price := strings.TrimSpace(f.Price); price != "" {
		if v, ok := parsePrice(price); ok {
			patch.Price = &v
		} else {
			errs["price"] = "Price must be a positive number"
		}
	}
	if image := strings.TrimSpace(f.Image); image != "" {
		patch.Image = &image
	}
	return patch, errs
}

// parsePrice accepts finite numbers greater than zero. ParseFloat also
// understands "NaN" and "Inf", which are not prices.
func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, false
	}
	return v, true
}
