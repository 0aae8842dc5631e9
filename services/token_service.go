package services

import (
	"errors"
	"fmt"
	"time"

	"shipops-app/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"
)

type Claims struct {
	UserID    uint   `json:"user_id"`
	Role      string `json:"role"`
	TokenType string `json:"type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenService struct {
	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	blocklist  *Blocklist
}

func NewTokenService(secret string, accessTTL, refreshTTL time.Duration, blocklist *Blocklist) *TokenService {
	return &TokenService{
		secret:     []byte(secret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		blocklist:  blocklist,
	}
}

func (s *TokenService) sign(userID uint, role, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userID),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *TokenService) IssueAccessToken(user *models.User) (string, error) {
	return s.sign(user.ID, user.Role, TokenTypeAccess, s.accessTTL)
}

func (s *TokenService) IssuePair(user *models.User) (TokenPair, error) {
	access, err := s.IssueAccessToken(user)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, err := s.sign(user.ID, user.Role, TokenTypeRefresh, s.refreshTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Parse memvalidasi signature, masa berlaku, tipe token, dan blocklist
func (s *TokenService) Parse(tokenString, expectedType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: token has expired", ErrUnauthorized)
		}
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", ErrUnauthorized)
	}
	if claims.TokenType != expectedType {
		return nil, fmt.Errorf("%w: %s token required", ErrUnauthorized, expectedType)
	}
	if s.blocklist.Contains(claims.ID) {
		return nil, fmt.Errorf("%w: token has been revoked", ErrUnauthorized)
	}
	return claims, nil
}

// Revoke memasukkan jti ke blocklist sampai token kedaluwarsa
func (s *TokenService) Revoke(claims *Claims) {
	expiresAt := time.Now().Add(s.refreshTTL)
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}
	s.blocklist.Add(claims.ID, expiresAt)
}
