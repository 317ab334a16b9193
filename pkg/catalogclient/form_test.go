package catalogclient_test

import (
	"testing"

	"catalog/pkg/catalogclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductFormValidate(t *testing.T) {
	tests := []struct {
		name string
		form catalogclient.ProductForm
		want catalogclient.FormErrors
	}{
		{
			name: "valid",
			form: catalogclient.ProductForm{Name: "Pen", Price: "1.50", Image: "http://img/pen.png"},
			want: catalogclient.FormErrors{},
		},
		{
			name: "everything missing",
			form: catalogclient.ProductForm{Name: "  ", Price: "", Image: ""},
			want: catalogclient.FormErrors{
				"name":  "Product name is required",
				"price": "Price is required",
				"image": "Image URL is required",
			},
		},
		{
			name: "price not a number",
			form: catalogclient.ProductForm{Name: "Pen", Price: "abc", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price zero",
			form: catalogclient.ProductForm{Name: "Pen", Price: "0", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price NaN",
			form: catalogclient.ProductForm{Name: "Pen", Price: "NaN", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price lowercase nan",
			form: catalogclient.ProductForm{Name: "Pen", Price: "nan", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price Inf",
			form: catalogclient.ProductForm{Name: "Pen", Price: "Inf", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price Infinity",
			form: catalogclient.ProductForm{Name: "Pen", Price: "Infinity", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
		{
			name: "price negative",
			form: catalogclient.ProductForm{Name: "Pen", Price: "-3", Image: "x"},
			want: catalogclient.FormErrors{"price": "Price must be a positive number"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.form.Validate())
		})
	}
}

func TestProductFormRequest(t *testing.T) {
	req, err := catalogclient.ProductForm{Name: " Pen ", Price: " 2.5 ", Image: " x "}.Request()
	require.NoError(t, err)
	assert.Equal(t, "Pen", req.Name)
	assert.Equal(t, "x", req.Image)
	require.NotNil(t, req.Price)
	assert.Equal(t, 2.5, *req.Price)

	_, err = catalogclient.ProductForm{Name: "Pen", Price: "two", Image: "x"}.Request()
	assert.Error(t, err)
}

func TestProductFormPatch(t *testing.T) {
	patch, errs := catalogclient.ProductForm{Price: "9"}.Patch()
	assert.Empty(t, errs)
	assert.Nil(t, patch.Name)
	assert.Nil(t, patch.Image)
	require.NotNil(t, patch.Price)
	assert.Equal(t, 9.0, *patch.Price)

	patch, errs = catalogclient.ProductForm{Name: "Pen", Price: "-1"}.Patch()
	assert.Equal(t, catalogclient.FormErrors{"price": "Price must be a positive number"}, errs)
	require.NotNil(t, patch.Name)
	assert.Equal(t, "Pen", *patch.Name)
	assert.Nil(t, patch.Price)

	for _, price := range []string{"NaN", "Inf", "-Infinity"} {
		patch, errs = catalogclient.ProductForm{Price: price}.Patch()
		assert.Equal(t, catalogclient.FormErrors{"price": "Price must be a positive number"}, errs, price)
		assert.Nil(t, patch.Price, price)
	}
}
