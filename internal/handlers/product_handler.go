package handlers

import (
	"errors"
	"log"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes mounts the product routes under /products. Write routes are
// wrapped in guard when one is given.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, guard ...fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	write := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), handler)
	}
	productRoutes.Post("/", write(h.HandleCreateProduct)...)
	productRoutes.Put("/:id", write(h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", write(h.HandleDeleteProduct)...)
}

// HandleGetProducts returns every stored product.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondMessage(c, fiber.StatusInternalServerError, msgServerError)
	}
	return respondData(c, fiber.StatusOK, products)
}

// HandleGetProductByID returns a single product.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id := c.Params("id")
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return h.fail(c, "getting product "+id, err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleCreateProduct creates a product from a {name, price, image} body.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var req models.CreateProductRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create product body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	product, err := h.service.CreateProduct(c.UserContext(), req)
	if err != nil {
		return h.fail(c, "creating product", err)
	}
	return respondData(c, fiber.StatusCreated, product)
}

// HandleUpdateProduct applies a partial update to a product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	var patch models.ProductPatch
	if err := c.BodyParser(&patch); err != nil {
		log.Printf("Error parsing update body for product %s: %v", id, err)
		return respondMessage(c, fiber.StatusBadRequest, msgInvalidBody)
	}

	product, err := h.service.UpdateProduct(c.UserContext(), id, patch)
	if err != nil {
		return h.fail(c, "updating product "+id, err)
	}
	return respondData(c, fiber.StatusOK, product)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return h.fail(c, "deleting product "+id, err)
	}
	return respondMessage(c, fiber.StatusOK, "Product deleted")
}

// fail maps service errors onto the response envelope.
func (h *ProductHandler) fail(c *fiber.Ctx, action string, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(Envelope{
			Success: false,
			Message: verr.Message,
			Errors:  verr.Fields,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return respondMessage(c, fiber.StatusNotFound, msgNotFound)
	default:
		log.Printf("Error %s: %v", action, err)
		return respondMessage(c, fiber.StatusInternalServerError, msgServerError)
	}
}
