// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"

	"devluck_backend/internals/configs"
)

// AuthMiddleware memverifikasi bearer token dan menyimpan klaim user ke locals.
// Token issuance ditangani layanan auth terpisah; di sini hanya verifikasi.
func AuthMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		secretKey := configs.JWTSecret
		if secretKey == "" {
			log.Println("[ERROR] JWT_SECRET empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT Secret")
		}

		claims := jwt.MapClaims{}
		if _, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "Unexpected signing method")
			}
			return []byte(secretKey), nil
		}); err != nil {
			log.Println("[ERROR] Token parse failed:", err)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid or expired token")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader != "" {
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing or invalid")
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer ")), nil
	}

	// fallback cookie (SPA)
	if tok := c.Cookies("access_token"); tok != "" {
		return tok, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Authorization header missing or invalid")
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if id, ok := claims["id"].(string); ok && id != "" {
		c.Locals("user_id", id)
	}
	if email, ok := claims["email"].(string); ok && email != "" {
		c.Locals("user_email", email)
	}
	if role, ok := claims["role"].(string); ok && role != "" {
		c.Locals("user_role", role)
	}
}
