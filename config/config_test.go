package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDefaults(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("JWT_ACCESS_EXPIRATION", "")
	t.Setenv("SEED_PORTS", "")
	setDefaults()

	assert.Equal(t, "/api/v1", MAIN_ROUTES)
	assert.Equal(t, time.Hour, AccessTokenTTL())
	assert.Equal(t, "http://127.0.0.1:5173,http://localhost:5173", AllowedOrigins())
	assert.Empty(t, SeedPorts)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", " https://b.example.com, https://a.example.com ,")
	t.Setenv("JWT_ACCESS_EXPIRATION", "120")
	t.Setenv("COOKIE_SECURE", "false")
	t.Setenv("SEED_PORTS", "Belawan, Dumai,,")
	setDefaults()

	assert.Equal(t, "https://a.example.com,https://b.example.com", AllowedOrigins())
	assert.Equal(t, 2*time.Minute, AccessTokenTTL())
	assert.False(t, CookieSecure)
	assert.Equal(t, []string{"Belawan", "Dumai"}, SeedPorts)
}

func TestTokenCookie(t *testing.T) {
	c := GetTokenCookie("abc")
	assert.Equal(t, "refresh_token", c.Name)
	assert.True(t, c.Expires.After(time.Now()))

	cleared := GetTokenCookie("")
	assert.True(t, cleared.Expires.Before(time.Now()))
}
