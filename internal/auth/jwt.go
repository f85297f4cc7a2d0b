package auth

import (
	"time"

	"pos-backend/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

type JWTCustomClaims struct {
	UserID      uint            `json:"user_id"`
	Email       string          `json:"email"`
	Role        models.UserRole `json:"role"`
	LocationIDs []uint          `json:"location_ids"`
	Shift       bool            `json:"shift,omitempty"` // set on PIN logins
	jwt.RegisteredClaims
}

func GenerateToken(secret string, user *models.User, shift bool) (string, error) {
	locationIDs := make([]uint, 0, len(user.Locations))
	for _, loc := range user.Locations {
		locationIDs = append(locationIDs, loc.ID)
	}

	claims := &JWTCustomClaims{
		UserID:      user.ID,
		Email:       user.Email,
		Role:        user.Role,
		LocationIDs: locationIDs,
		Shift:       shift,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
