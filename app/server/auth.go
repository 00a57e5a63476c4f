package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const tokenExpiry = 60 * time.Minute

type tokenClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// CreateToken issues a signed access token for email, valid for one hour.
func (s *Server) CreateToken(email string) (string, error) {
	claims := tokenClaims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.JWTSecret))
}

func (s *Server) validateToken(tokenString string) (*tokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(s.JWTSecret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*tokenClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

// BearerAuth guards the student routes. Both a missing credential and a bad
// one answer 403, which is the status the dashboard reads as session expiry.
func (s *Server) BearerAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		bearer := strings.TrimSpace(c.Get("Authorization"))
		if len(bearer) < 7 || !strings.EqualFold(bearer[:7], "Bearer ") {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Not authenticated"})
		}

		claims, err := s.validateToken(strings.TrimSpace(bearer[7:]))
		if err != nil {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"detail": "Invalid or expired token"})
		}

		c.Locals("user_email", claims.Email)
		return c.Next()
	}
}
