package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"shipops-app/master/port"
	"shipops-app/models"
	"shipops-app/repositories"

	"gorm.io/gorm"
)

var dateBerthLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseDateBerth menerima tanggal saja atau tanggal + jam
func ParseDateBerth(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range dateBerthLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: format date_berth tidak dikenali '%s'", ErrInvalidInput, value)
}

type VoyageService struct {
	DB   *gorm.DB
	repo *repositories.VoyageRepository
}

func NewVoyageService(db *gorm.DB) *VoyageService {
	return &VoyageService{DB: db, repo: repositories.NewVoyageRepository(db)}
}

func (s *VoyageService) List(ctx context.Context) ([]models.Voyage, error) {
	return s.repo.List(ctx)
}

func (s *VoyageService) Get(ctx context.Context, id uint) (*models.Voyage, error) {
	voyage, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: voyage %d", ErrNotFound, id)
		}
		return nil, err
	}
	return voyage, nil
}

// Create memberi voyage_no otomatis: nomor terbesar untuk vessel + tahun yang sama ditambah satu
func (s *VoyageService) Create(ctx context.Context, in models.VoyageInput) (*models.Voyage, error) {
	dateBerth, err := ParseDateBerth(in.DateBerth)
	if err != nil {
		return nil, err
	}

	var voyage models.Voyage
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// kunci vessel supaya dua request paralel tidak mendapat nomor yang sama
		var vessel models.Vessel
		if err := lockForUpdate(tx).First(&vessel, in.VesselID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: vessel %d", ErrNotFound, in.VesselID)
			}
			return err
		}
		var p port.Port
		if err := tx.First(&p, in.PortID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: port %d", ErrNotFound, in.PortID)
			}
			return err
		}

		next, err := s.repo.NextVoyageNo(tx, in.VesselID, in.VoyageYr)
		if err != nil {
			return err
		}

		voyage = models.Voyage{
			VesselID:  in.VesselID,
			PortID:    in.PortID,
			VoyageNo:  next,
			VoyageYr:  in.VoyageYr,
			BerthLoc:  strings.TrimSpace(in.BerthLoc),
			DateBerth: &dateBerth,
		}
		if err := tx.Create(&voyage).Error; err != nil {
			return err
		}
		voyage.Vessel = &vessel
		voyage.Port = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &voyage, nil
}
