package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"shipops-app/models"
	"shipops-app/utils"

	"gorm.io/gorm"
)

type VesselService struct {
	DB *gorm.DB
}

func NewVesselService(db *gorm.DB) *VesselService {
	return &VesselService{DB: db}
}

func (s *VesselService) List(ctx context.Context) ([]models.Vessel, error) {
	vessels := []models.Vessel{}
	err := s.DB.WithContext(ctx).Order("name").Find(&vessels).Error
	return vessels, err
}

func (s *VesselService) Get(ctx context.Context, id uint) (*models.Vessel, error) {
	var vessel models.Vessel
	if err := s.DB.WithContext(ctx).First(&vessel, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vessel %d", ErrNotFound, id)
		}
		return nil, err
	}
	return &vessel, nil
}

func (s *VesselService) Create(ctx context.Context, in models.VesselInput) (*models.Vessel, error) {
	vessel := models.Vessel{Name: strings.TrimSpace(in.Name)}
	if vessel.Name == "" {
		return nil, fmt.Errorf("%w: nama vessel diperlukan", ErrInvalidInput)
	}
	if err := s.DB.WithContext(ctx).Create(&vessel).Error; err != nil {
		if utils.IsDuplicateKeyError(err) {
			return nil, fmt.Errorf("%w: vessel %s sudah ada", ErrConflict, vessel.Name)
		}
		return nil, err
	}
	return &vessel, nil
}
