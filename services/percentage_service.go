package services

import (
	"context"
	"errors"
	"fmt"

	"shipops-app/master/port"
	"shipops-app/models"
	"shipops-app/repositories"

	"gorm.io/gorm"
)

type PercentageService struct {
	DB   *gorm.DB
	repo *repositories.PercentageRepository
}

func NewPercentageService(db *gorm.DB) *PercentageService {
	return &PercentageService{DB: db, repo: repositories.NewPercentageRepository(db)}
}

// SummaryByPort hanya port yang sudah punya voyage, urut nama port
func (s *PercentageService) SummaryByPort(ctx context.Context) ([]PortPercentageSummary, error) {
	rows, err := s.repo.PortAggregates(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]PortPercentageSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, BuildPortPercentageSummary(r))
	}
	return out, nil
}

// ByPort port tanpa voyage dikembalikan dengan angka nol
func (s *PercentageService) ByPort(ctx context.Context, portID uint) (*PortPercentageSummary, error) {
	agg, found, err := s.repo.PortAggregateByID(ctx, portID)
	if err != nil {
		return nil, err
	}
	if !found {
		var p port.Port
		if err := s.DB.WithContext(ctx).First(&p, portID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: port %d", ErrNotFound, portID)
			}
			return nil, err
		}
		agg = repositories.PortAggregate{PortID: p.ID, PortName: p.Name}
	}
	summary := BuildPortPercentageSummary(agg)
	return &summary, nil
}

func (s *PercentageService) ForMovement(ctx context.Context, movementID uint) (*models.PercentageContainerMovement, error) {
	pct, err := s.repo.FindByMovementID(ctx, movementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: percentage untuk container movement %d", ErrNotFound, movementID)
		}
		return nil, err
	}
	return pct, nil
}
