package auth

import (
	"fmt"
	"strings"

	"pos-backend/internal/config"
	"pos-backend/internal/database"
	"pos-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

type LocationInput struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
}

type RegisterRequest struct {
	Name     string          `json:"name"`
	Email    string          `json:"email"`
	Password string          `json:"password"` // optional, PIN-only staff skip it
	Role     models.UserRole `json:"role"`
	Pin      string          `json:"pin"` // optional 4-digit shift PIN
	Location *LocationInput  `json:"location"`
}

type LoginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	SelectedLocation *uint  `json:"selected_location"`
}

type PinLoginRequest struct {
	Pin string `json:"pin"`
}

func userPayload(user *models.User) fiber.Map {
	return fiber.Map{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}
}

// POST /api/auth/register
func RegisterHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Name == "" || body.Email == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name & email required")
		}

		var count int64
		database.DB.Model(&models.User{}).Where("email = ?", body.Email).Count(&count)
		if count > 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Email already registered")
		}

		role := body.Role
		if role == "" {
			role = models.RoleStaff
		}

		user := models.User{
			Name:  body.Name,
			Email: body.Email,
			Role:  role,
		}

		if body.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
			}
			user.PasswordHash = string(hash)
		}
		if body.Pin != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(body.Pin), bcrypt.DefaultCost)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not hash PIN")
			}
			user.PinHash = string(hash)
		}

		// Location is found-or-created by name and attached to the user
		if body.Location != nil && body.Location.Name != "" {
			var loc models.Location
			err := database.DB.Where("name = ?", body.Location.Name).First(&loc).Error
			if err != nil {
				loc = models.Location{
					Name:    body.Location.Name,
					Address: body.Location.Address,
					City:    body.Location.City,
					State:   body.Location.State,
				}
				if err := database.DB.Create(&loc).Error; err != nil {
					return fiber.NewError(fiber.StatusInternalServerError, "Could not create location")
				}
			}
			user.Locations = []models.Location{loc}
		}

		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		// Badge QR payload is derived from the identity, so it can only be
		// minted once the row exists.
		if user.QRData == "" {
			user.QRData = fmt.Sprintf("staff:%d", user.ID)
			if err := database.DB.Model(&user).Update("qr_data", user.QRData).Error; err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
			}
		}

		token, err := GenerateToken(cfg.JWTSecret, &user, false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"message": "Registered",
			"token":   token,
			"user":    userPayload(&user),
		})
	}
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		if body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Email & password required")
		}

		var user models.User
		if err := database.DB.Preload("Locations").Where("email = ?", body.Email).First(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		if user.PasswordHash == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		}

		if body.SelectedLocation != nil {
			allowed := false
			for _, loc := range user.Locations {
				if loc.ID == *body.SelectedLocation {
					allowed = true
					break
				}
			}
			if !allowed {
				return fiber.NewError(fiber.StatusForbidden, "No access to selected location")
			}
		}

		token, err := GenerateToken(cfg.JWTSecret, &user, false)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"message": "Logged in",
			"token":   token,
			"user":    userPayload(&user),
		})
	}
}

// POST /api/auth/pin-login
//
// Shift login for staff: no email, just the 4-digit PIN. PINs are stored
// hashed, so every staff hash is checked until one matches.
func PinLoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body PinLoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		if body.Pin == "" {
			return fiber.NewError(fiber.StatusBadRequest, "PIN is required")
		}

		var staff []models.User
		if err := database.DB.Preload("Locations").Where("role = ?", models.RoleStaff).Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load staff")
		}

		var matched *models.User
		for i := range staff {
			if staff[i].PinHash == "" {
				continue
			}
			if bcrypt.CompareHashAndPassword([]byte(staff[i].PinHash), []byte(body.Pin)) == nil {
				matched = &staff[i]
				break
			}
		}
		if matched == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid PIN")
		}

		token, err := GenerateToken(cfg.JWTSecret, matched, true)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"message": "PIN login success",
			"token":   token,
			"user":    userPayload(matched),
		})
	}
}

// POST /api/auth/logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Tokens are stateless; nothing to invalidate server-side.
		return c.JSON(fiber.Map{
			"message": "Logged out successfully",
		})
	}
}

// GET /api/auth/profile
func ProfileHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals(CtxUserIDKey).(uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		var user models.User
		if err := database.DB.Preload("Locations").First(&user, "id = ?", userID).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}

		locations := make([]fiber.Map, 0, len(user.Locations))
		for _, loc := range user.Locations {
			locations = append(locations, fiber.Map{
				"id":      loc.ID,
				"name":    loc.Name,
				"address": loc.Address,
				"city":    loc.City,
				"state":   loc.State,
			})
		}

		return c.JSON(fiber.Map{
			"user": fiber.Map{
				"id":        user.ID,
				"name":      user.Name,
				"email":     user.Email,
				"role":      user.Role,
				"locations": locations,
			},
		})
	}
}

// GET /api/auth/staff
//
// Staff users scoped to the caller's locations.
func ListStaffHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		locationIDs, ok := c.Locals(CtxLocationIDsKey).([]uint)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Not authenticated")
		}

		query := database.DB.Preload("Locations").Where("role = ?", models.RoleStaff)
		if len(locationIDs) > 0 {
			query = query.
				Joins("JOIN user_locations ON user_locations.user_id = users.id").
				Where("user_locations.location_id IN ?", locationIDs).
				Distinct("users.*")
		}

		var staff []models.User
		if err := query.Find(&staff).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load staff")
		}

		return c.JSON(staff)
	}
}
