package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipops-app/models"
	"shipops-app/repositories"
	"shipops-app/utils"

	"gorm.io/gorm"
)

type UserService struct {
	repo *repositories.UserRepository
}

func NewUserService(repo *repositories.UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Register membuat user baru dengan role default user
func (s *UserService) Register(ctx context.Context, in models.RegisterInput) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: username atau email sudah terdaftar", ErrConflict)
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: username atau email sudah terdaftar", ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// Authenticate mencari user berdasarkan email lalu mencocokkan password
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: email atau password salah", ErrUnauthorized)
		}
		return nil, err
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, fmt.Errorf("%w: email atau password salah", ErrUnauthorized)
	}
	return user, nil
}

func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user %d", ErrNotFound, id)
		}
		return nil, err
	}
	return user, nil
}
