package middleware

import (
	"errors"
	"strings"

	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

type AuthMiddleware struct {
	Tokens *services.TokenService
}

func NewAuthMiddleware(tokens *services.TokenService) *AuthMiddleware {
	return &AuthMiddleware{Tokens: tokens}
}

// bearerToken mengambil token dari "Bearer <token>"
func bearerToken(ctx *fiber.Ctx) (string, error) {
	authHeader := ctx.Get("Authorization")
	if authHeader == "" {
		return "", errors.New("Missing Authorization header")
	}
	tokenParts := strings.Fields(authHeader)
	if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
		return "", errors.New("Invalid Authorization header format")
	}
	return tokenParts[1], nil
}

func unauthorized(ctx *fiber.Ctx, message string) error {
	return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": message,
	})
}

func (m *AuthMiddleware) authenticate(ctx *fiber.Ctx, tokenString, tokenType string) error {
	claims, err := m.Tokens.Parse(tokenString, tokenType)
	if err != nil {
		return unauthorized(ctx, "Unauthorized: "+strings.TrimPrefix(err.Error(), services.ErrUnauthorized.Error()+": "))
	}

	// Simpan userID dan role ke context
	ctx.Locals("userID", claims.UserID)
	ctx.Locals("role", claims.Role)
	ctx.Locals("claims", claims)
	return ctx.Next()
}

// Access hanya menerima access token yang belum dicabut
func (m *AuthMiddleware) Access(ctx *fiber.Ctx) error {
	tokenString, err := bearerToken(ctx)
	if err != nil {
		return unauthorized(ctx, err.Error())
	}
	return m.authenticate(ctx, tokenString, services.TokenTypeAccess)
}

// Refresh menerima refresh token dari header Authorization atau cookie refresh_token
func (m *AuthMiddleware) Refresh(ctx *fiber.Ctx) error {
	tokenString, err := bearerToken(ctx)
	if err != nil {
		tokenString = ctx.Cookies("refresh_token")
		if tokenString == "" {
			return unauthorized(ctx, err.Error())
		}
	}
	return m.authenticate(ctx, tokenString, services.TokenTypeRefresh)
}

// ClaimsFrom mengambil claims yang disimpan Access/Refresh
func ClaimsFrom(ctx *fiber.Ctx) (*services.Claims, bool) {
	claims, ok := ctx.Locals("claims").(*services.Claims)
	return claims, ok
}
