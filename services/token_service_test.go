package services_test

import (
	"context"
	"testing"
	"time"

	"shipops-app/models"
	"shipops-app/repositories"
	"shipops-app/services"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlocklistPurge(t *testing.T) {
	b := services.NewBlocklist()
	b.Add("", time.Now().Add(time.Hour))
	b.Add("old", time.Now().Add(-time.Minute))
	b.Add("live", time.Now().Add(time.Hour))

	assert.Equal(t, 2, b.Len())
	assert.True(t, b.Contains("old"))
	assert.Equal(t, 1, b.Purge())
	assert.False(t, b.Contains("old"))
	assert.True(t, b.Contains("live"))
}

func TestBlocklistJanitorStops(t *testing.T) {
	b := services.NewBlocklist()
	b.Add("old", time.Now().Add(-time.Minute))

	ctx, cancel := context.WithCancel(context.Background())
	b.StartJanitor(ctx, 10*time.Millisecond)
	assert.Eventually(t, func() bool { return b.Len() == 0 }, time.Second, 10*time.Millisecond)
	cancel()
}

func TestTokenService(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Minute, time.Hour, services.NewBlocklist())
	user := &models.User{ID: 5, Role: models.RoleAdmin}

	pair, err := tokens.IssuePair(user)
	require.NoError(t, err)

	claims, err := tokens.Parse(pair.AccessToken, services.TokenTypeAccess)
	require.NoError(t, err)
	assert.Equal(t, uint(5), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.NotEmpty(t, claims.ID)

	// refresh token tidak bisa dipakai sebagai access token
	_, err = tokens.Parse(pair.RefreshToken, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = tokens.Parse(pair.RefreshToken, services.TokenTypeRefresh)
	require.NoError(t, err)

	tokens.Revoke(claims)
	_, err = tokens.Parse(pair.AccessToken, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Contains(t, err.Error(), "revoked")
}

func TestTokenServiceRejectsForeignAndExpired(t *testing.T) {
	tokens := services.NewTokenService("secret", time.Minute, time.Hour, services.NewBlocklist())
	other := services.NewTokenService("other", time.Minute, time.Hour, services.NewBlocklist())
	user := &models.User{ID: 1, Role: models.RoleUser}

	foreign, err := other.IssueAccessToken(user)
	require.NoError(t, err)
	_, err = tokens.Parse(foreign, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, services.Claims{
		UserID:    1,
		TokenType: services.TokenTypeAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("secret"))
	require.NoError(t, err)
	_, err = tokens.Parse(signed, services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
	assert.Contains(t, err.Error(), "expired")

	_, err = tokens.Parse("garbage", services.TokenTypeAccess)
	assert.ErrorIs(t, err, services.ErrUnauthorized)
}

func TestUserService(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	users := services.NewUserService(repositories.NewUserRepository(db))

	u, err := users.Register(ctx, models.RegisterInput{Username: "budi", Email: " Budi@Example.com ", Password: "rahasia"})
	require.NoError(t, err)
	assert.Equal(t, "budi@example.com", u.Email)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.NotEqual(t, "rahasia", u.Password)

	_, err = users.Register(ctx, models.RegisterInput{Username: "budi2", Email: "budi@example.com", Password: "rahasia"})
	assert.ErrorIs(t, err, services.ErrConflict)

	got, err := users.Authenticate(ctx, "BUDI@example.com", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = users.Authenticate(ctx, "budi@example.com", "salah")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = users.Authenticate(ctx, "nobody@example.com", "rahasia")
	assert.ErrorIs(t, err, services.ErrUnauthorized)

	_, err = users.GetUserByID(ctx, u.ID+10)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
