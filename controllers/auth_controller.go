package controllers

import (
	"shipops-app/config"
	"shipops-app/middleware"
	"shipops-app/models"
	"shipops-app/services"

	"github.com/gofiber/fiber/v2"
)

type AuthController struct {
	Users  *services.UserService
	Tokens *services.TokenService
}

func NewAuthController(users *services.UserService, tokens *services.TokenService) *AuthController {
	return &AuthController{Users: users, Tokens: tokens}
}

func (c *AuthController) Register(ctx *fiber.Ctx) error {
	var input models.RegisterInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}

	user, err := c.Users.Register(ctx.UserContext(), input)
	if err != nil {
		return respondError(ctx, err)
	}

	return success(ctx, fiber.StatusCreated, "User berhasil dibuat", user)
}

func (c *AuthController) Login(ctx *fiber.Ctx) error {
	var input models.LoginInput
	if err := parseBody(ctx, &input); err != nil {
		return respondError(ctx, err)
	}

	user, err := c.Users.Authenticate(ctx.UserContext(), input.Email, input.Password)
	if err != nil {
		return respondError(ctx, err)
	}

	pair, err := c.Tokens.IssuePair(user)
	if err != nil {
		return respondError(ctx, err)
	}

	ctx.Cookie(config.GetTokenCookie(pair.RefreshToken))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":       true,
		"message":       "Login successful",
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"user_role":     user.Role,
		"data":          user,
	})
}

// Refresh dipanggil setelah middleware Refresh, identitas diambil dari refresh token
func (c *AuthController) Refresh(ctx *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return fail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	user, err := c.Users.GetUserByID(ctx.UserContext(), claims.UserID)
	if err != nil {
		return respondError(ctx, err)
	}

	access, err := c.Tokens.IssueAccessToken(user)
	if err != nil {
		return respondError(ctx, err)
	}

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success":      true,
		"message":      "Token refreshed",
		"access_token": access,
	})
}

// Logout mencabut access token yang sedang dipakai beserta refresh token
// milik user yang sama dari cookie atau body
func (c *AuthController) Logout(ctx *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return fail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}

	c.Tokens.Revoke(claims)

	refresh := ctx.Cookies("refresh_token")
	if len(ctx.Body()) > 0 {
		var input models.LogoutInput
		if err := ctx.BodyParser(&input); err == nil && input.RefreshToken != "" {
			refresh = input.RefreshToken
		}
	}
	if refresh != "" {
		if rc, err := c.Tokens.Parse(refresh, services.TokenTypeRefresh); err == nil && rc.UserID == claims.UserID {
			c.Tokens.Revoke(rc)
		}
	}

	// Hapus token dari cookie
	ctx.Cookie(config.GetTokenCookie(""))

	return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
		"success": true,
		"message": "Berhasil logout",
	})
}

func (c *AuthController) Me(ctx *fiber.Ctx) error {
	claims, ok := middleware.ClaimsFrom(ctx)
	if !ok {
		return fail(ctx, fiber.StatusUnauthorized, "Unauthorized")
	}
	user, err := c.Users.GetUserByID(ctx.UserContext(), claims.UserID)
	if err != nil {
		return respondError(ctx, err)
	}
	return success(ctx, fiber.StatusOK, "User found", user)
}
