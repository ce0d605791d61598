package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"farm-advisor/internal/services/auth"
)

const claimsLocalKey = "claims"

// extractToken strips the optional "Bearer " prefix from the header value.
func extractToken(authHeader string) string {
	if len(authHeader) > 7 && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return authHeader
}

// requireAuth validates the session token and stores the claims for the
// handler chain.
func (r *routes) requireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Authorization header is required",
		})
	}

	claims, err := r.auth.ValidateToken(extractToken(authHeader))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
			Error: "Invalid token",
		})
	}

	c.Locals(claimsLocalKey, claims)
	return c.Next()
}

// requireAdmin allows only administrator sessions through.
func (r *routes) requireAdmin(c *fiber.Ctx) error {
	claims := sessionClaims(c)
	if claims == nil || claims.Role != auth.RoleAdmin {
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{
			Error: "Administrator role required",
		})
	}
	return c.Next()
}

func sessionClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocalKey).(*auth.Claims)
	return claims
}
