package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"farm-advisor/internal/models"
)

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Name     string `json:"name" example:"Sarvesh"`
	Email    string `json:"email" example:"sarvesh@example.com"`
	Phone    string `json:"phone" example:"+91-9000000000"`
	Password string `json:"password" example:"secret"`
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email" example:"sarvesh@example.com"`
	Password string `json:"password" example:"secret"`
}

// LoginResponse carries the session token.
type LoginResponse struct {
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Register godoc
// @Summary Register a new account
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Account details"
// @Success 201 {object} models.User
// @Failure 400 {object} ErrorResponse "Bad request - missing fields"
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /api/v1/auth/register [post]
func (r *routes) handleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Name == "" || req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "name, email, and password are required",
		})
	}

	user, err := r.auth.Register(req.Name, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateAccount) {
			return c.Status(fiber.StatusConflict).JSON(ErrorResponse{
				Error: "This email is already registered",
			})
		}
		r.l.Error(err, map[string]any{"email": req.Email})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to register account",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login godoc
// @Summary Log in and obtain a session token
// @Description Rejections do not distinguish unknown email from wrong password.
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} LoginResponse
// @Failure 400 {object} ErrorResponse "Bad request"
// @Failure 401 {object} ErrorResponse "Invalid credentials"
// @Router /api/v1/auth/login [post]
func (r *routes) handleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "Invalid request body",
		})
	}

	if req.Email == "" || req.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "email and password are required",
		})
	}

	token, claims, err := r.auth.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Error: "Invalid email or password",
			})
		}
		r.l.Error(err, map[string]any{"email": req.Email})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to log in",
		})
	}

	return c.JSON(LoginResponse{
		Token: token,
		Name:  claims.Name,
		Email: claims.Email,
		Role:  claims.Role,
	})
}

// Logout godoc
// @Summary Log out the current session
// @Tags Accounts
// @Produce json
// @Success 200 {object} fiber.Map
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Security BearerAuth
// @Router /api/v1/auth/logout [post]
func (r *routes) handleLogout(c *fiber.Ctx) error {
	claims := sessionClaims(c)
	if claims == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "No active session",
		})
	}

	if err := r.auth.Logout(claims); err != nil {
		r.l.Error(err, map[string]any{"email": claims.Email})
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "Failed to log out",
		})
	}

	return c.JSON(fiber.Map{"status": "logged out"})
}
