package auth

import (
	"fmt"
	"strings"

	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const (
	CtxUserIDKey      = "user_id"
	CtxUserRoleKey    = "user_role"
	CtxLocationIDsKey = "location_ids"
)

// Protect parses the bearer token and re-resolves the user from the store
// on every request, so a deleted user is locked out as soon as the row is
// gone, not when the token expires.
func Protect(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "No token, authorization denied")
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return fiber.NewError(fiber.StatusUnauthorized, "Authorization header must be 'Bearer <token>'")
		}

		tokenStr := parts[1]

		token, err := jwt.ParseWithClaims(tokenStr, &JWTCustomClaims{}, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		claims, ok := token.Claims.(*JWTCustomClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		var user models.User
		if err := database.DB.Preload("Locations").First(&user, "id = ?", claims.UserID).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "User not found")
		}

		locationIDs := make([]uint, 0, len(user.Locations))
		for _, loc := range user.Locations {
			locationIDs = append(locationIDs, loc.ID)
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxUserRoleKey, user.Role)
		c.Locals(CtxLocationIDsKey, locationIDs)

		return c.Next()
	}
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleVal := c.Locals(CtxUserRoleKey)
		role, ok := roleVal.(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, fmt.Sprintf("Role '%s' not allowed", role))
	}
}

// RequireLocation checks the locationId carried in the body or query
// against the caller's location set.
func RequireLocation() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locID := c.Query("locationId")
		if locID == "" {
			var body struct {
				LocationID string `json:"locationId"`
			}
			if err := c.BodyParser(&body); err == nil {
				locID = body.LocationID
			}
		}
		if locID == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Location required")
		}

		locationIDs, ok := c.Locals(CtxLocationIDsKey).([]uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		for _, id := range locationIDs {
			if fmt.Sprint(id) == locID {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "No access to this location")
	}
}
