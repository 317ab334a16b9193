package handlers

import (
	"errors"
	"fmt"
	"log"

	"catalog/internal/models"
	"catalog/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// RegisterRoutes registers the authentication routes.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
}

// LoginRequest represents the request body for login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var user models.User
	if err := c.BodyParser(&user); err != nil {
		log.Printf("Error parsing register request body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if resp, ok := h.check(user); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	if err := h.authService.RegisterUser(c.UserContext(), &user); err != nil {
		if errors.Is(err, services.ErrUserExists) {
			return respondMessage(c, fiber.StatusConflict, err.Error())
		}
		log.Printf("Error registering user: %v", err)
		return respondMessage(c, fiber.StatusInternalServerError, msgServerError)
	}

	user.Password = ""
	return c.Status(fiber.StatusCreated).JSON(Envelope{
		Success: true,
		Message: "User registered successfully",
		Data:    user,
	})
}

// HandleLogin handles user login and issues a JWT.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing login request body: %v", err)
		return respondMessage(c, fiber.StatusBadRequest, msgInvalidBody)
	}
	if resp, ok := h.check(req); !ok {
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	}

	token, err := h.authService.LoginUser(c.UserContext(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return respondMessage(c, fiber.StatusUnauthorized, "Authentication failed")
		}
		log.Printf("Error during login for user %s: %v", req.Username, err)
		return respondMessage(c, fiber.StatusInternalServerError, msgServerError)
	}

	return c.JSON(Envelope{
		Success: true,
		Message: "Login successful",
		Data:    fiber.Map{"token": token},
	})
}

func (h *AuthHandler) check(v any) (Envelope, bool) {
	err := h.validate.Struct(v)
	if err == nil {
		return Envelope{}, true
	}
	fields := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, e := range verrs {
			fields[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
	}
	return Envelope{Success: false, Message: "Validation failed", Errors: fields}, false
}
