package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shipops-app/controllers/idgen"
	"shipops-app/master/port"
	"shipops-app/models"
	"shipops-app/types"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CostEstimate hasil hitung biaya satu voyage
//
//	cost1 = pengajuan x TL + tidak diajukan x tidak TL
//	cost2 = ACC x TL + tidak ACC x tidak TL
//	final = tidak ACC x tidak TL + realisasi x TL + shipside yes/no + turun CY
type CostEstimate struct {
	EstimationCost1 decimal.Decimal
	EstimationCost2 decimal.Decimal
	FinalCost       decimal.Decimal
	Breakdown       map[string]interface{}
}

type categoryCost struct {
	key                     string
	bongkaran, pengajuan    int
	acc, realisasi          int
	shipsideYes, shipsideNo int
	rate                    models.RateSet
}

func mul(count int, rate decimal.Decimal) decimal.Decimal {
	return rate.Mul(decimal.NewFromInt(int64(count)))
}

func (c categoryCost) compute() (cost1, cost2, final decimal.Decimal, detail map[string]interface{}) {
	notSubmitted := clampZero(c.bongkaran - c.pengajuan)
	notApproved := clampZero(c.bongkaran - c.acc)
	turunCY := clampZero(c.acc - c.realisasi - c.shipsideYes - c.shipsideNo)

	cost1 = mul(c.pengajuan, c.rate.TL).Add(mul(notSubmitted, c.rate.TdkTL))
	cost2 = mul(c.acc, c.rate.TL).Add(mul(notApproved, c.rate.TdkTL))
	final = mul(notApproved, c.rate.TdkTL).
		Add(mul(c.realisasi, c.rate.TL)).
		Add(mul(c.shipsideYes, c.rate.ShipsideYes)).
		Add(mul(c.shipsideNo, c.rate.ShipsideNo)).
		Add(mul(turunCY, c.rate.TurunCY))

	detail = map[string]interface{}{
		"bongkaran":      c.bongkaran,
		"pengajuan":      c.pengajuan,
		"acc":            c.acc,
		"tidak_diajukan": notSubmitted,
		"tidak_tl":       notApproved,
		"realisasi":      c.realisasi,
		"shipside_yes":   c.shipsideYes,
		"shipside_no":    c.shipsideNo,
		"turun_cy":       turunCY,
		"cost1":          cost1.Round(2).InexactFloat64(),
		"cost2":          cost2.Round(2).InexactFloat64(),
		"final_cost":     final.Round(2).InexactFloat64(),
	}
	return
}

// EstimateCost menghitung biaya per kategori 20mt, 40mt, 20fl, 40fl lalu dijumlahkan
func EstimateCost(cm *models.ContainerMovement, rate *models.CostRate) CostEstimate {
	b, pg, acc := cm.Bongkaran(), cm.Pengajuan(), cm.AccPengajuan()
	realisasi, yes, no := cm.Realisasi(), cm.ShipsideYes(), cm.ShipsideNo()
	e20, e40, f20, f40 := rate.Rates()

	cats := []categoryCost{
		{"20mt", b.Empty20DC, pg.Empty20DC, acc.Empty20DC, realisasi.Empty20DC, yes.Empty20DC, no.Empty20DC, e20},
		{"40mt", b.Empty40HC, pg.Empty40HC, acc.Empty40HC, realisasi.Empty40HC, yes.Empty40HC, no.Empty40HC, e40},
		{"20fl", b.Full20DC, pg.Full20DC, acc.Full20DC, realisasi.Full20DC, yes.Full20DC, no.Full20DC, f20},
		{"40fl", b.Full40HC, pg.Full40HC, acc.Full40HC, realisasi.Full40HC, yes.Full40HC, no.Full40HC, f40},
	}

	est := CostEstimate{
		EstimationCost1: decimal.Zero,
		EstimationCost2: decimal.Zero,
		FinalCost:       decimal.Zero,
		Breakdown:       map[string]interface{}{},
	}
	for _, c := range cats {
		cost1, cost2, final, detail := c.compute()
		est.EstimationCost1 = est.EstimationCost1.Add(cost1)
		est.EstimationCost2 = est.EstimationCost2.Add(cost2)
		est.FinalCost = est.FinalCost.Add(final)
		est.Breakdown[c.key] = detail
	}
	est.EstimationCost1 = est.EstimationCost1.Round(2)
	est.EstimationCost2 = est.EstimationCost2.Round(2)
	est.FinalCost = est.FinalCost.Round(2)
	est.Breakdown["cost_rate_id"] = rate.ID
	return est
}

type CostService struct {
	DB *gorm.DB
}

func NewCostService(db *gorm.DB) *CostService {
	return &CostService{DB: db}
}

func (s *CostService) ListRates(ctx context.Context, portID uint) ([]models.CostRate, error) {
	q := s.DB.WithContext(ctx).Model(&models.CostRate{})
	if portID > 0 {
		q = q.Where("port_id = ?", portID)
	}
	rates := []models.CostRate{}
	err := q.Order("port_id").Find(&rates).Error
	return rates, err
}

func (s *CostService) CreateRate(ctx context.Context, in models.CostRateInput) (*models.CostRate, error) {
	if in.PortID == nil || *in.PortID == 0 {
		return nil, fmt.Errorf("%w: port_id diperlukan", ErrInvalidInput)
	}
	if neg := in.Negatives(); len(neg) > 0 {
		return nil, fmt.Errorf("%w: tarif tidak boleh negatif: %v", ErrInvalidInput, neg)
	}

	rate := models.CostRate{PortID: *in.PortID}
	in.Apply(&rate)

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensurePort(tx, rate.PortID); err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.CostRate{}).Where("port_id = ?", rate.PortID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("%w: cost rate untuk port ini sudah ada, gunakan PUT untuk update", ErrConflict)
		}
		if err := tx.Create(&rate).Error; err != nil {
			return err
		}
		return s.recomputeForPort(tx, rate.PortID)
	})
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *CostService) UpdateRate(ctx context.Context, id uint, in models.CostRateInput) (*models.CostRate, error) {
	if neg := in.Negatives(); len(neg) > 0 {
		return nil, fmt.Errorf("%w: tarif tidak boleh negatif: %v", ErrInvalidInput, neg)
	}

	var rate models.CostRate
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rate, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cost rate %d", ErrNotFound, id)
			}
			return err
		}
		oldPortID := rate.PortID
		if in.PortID != nil && *in.PortID != rate.PortID {
			if err := ensurePort(tx, *in.PortID); err != nil {
				return err
			}
			rate.PortID = *in.PortID
		}
		in.Apply(&rate)
		if err := tx.Save(&rate).Error; err != nil {
			return err
		}
		if oldPortID != rate.PortID {
			if err := s.recomputeForPort(tx, oldPortID); err != nil {
				return err
			}
		}
		return s.recomputeForPort(tx, rate.PortID)
	})
	if err != nil {
		return nil, err
	}
	return &rate, nil
}

func (s *CostService) DeleteRate(ctx context.Context, id uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rate models.CostRate
		if err := tx.First(&rate, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cost rate %d", ErrNotFound, id)
			}
			return err
		}
		if err := tx.Delete(&rate).Error; err != nil {
			return err
		}
		// estimasi tanpa tarif tidak berlaku lagi
		return tx.Where("voyage_id IN (?)", tx.Model(&models.Voyage{}).Select("id").Where("port_id = ?", rate.PortID)).
			Delete(&models.VoyageCostEstimation{}).Error
	})
}

// GetEstimation mengembalikan nil tanpa error kalau estimasi belum pernah dihitung
func (s *CostService) GetEstimation(ctx context.Context, voyageID uint) (*models.VoyageCostEstimation, error) {
	if err := ensureVoyage(s.DB.WithContext(ctx), voyageID); err != nil {
		return nil, err
	}
	var est models.VoyageCostEstimation
	err := s.DB.WithContext(ctx).Where("voyage_id = ?", voyageID).First(&est).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *CostService) Recompute(ctx context.Context, voyageID uint) (*models.VoyageCostEstimation, error) {
	var est *models.VoyageCostEstimation
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureVoyage(tx, voyageID); err != nil {
			return err
		}
		var err error
		est, err = s.RecomputeForVoyage(tx, voyageID)
		return err
	})
	return est, err
}

// RecomputeForVoyage dipanggil di dalam transaksi tahap. ErrCostRateMissing kalau port belum punya tarif.
func (s *CostService) RecomputeForVoyage(tx *gorm.DB, voyageID uint) (*models.VoyageCostEstimation, error) {
	var voyage models.Voyage
	if err := tx.First(&voyage, voyageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: voyage %d", ErrNotFound, voyageID)
		}
		return nil, err
	}

	var cm models.ContainerMovement
	if err := tx.Where("voyage_id = ?", voyageID).First(&cm).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: container movement untuk voyage %d", ErrNotFound, voyageID)
		}
		return nil, err
	}

	var rate models.CostRate
	if err := tx.Where("port_id = ?", voyage.PortID).First(&rate).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCostRateMissing
		}
		return nil, err
	}

	result := EstimateCost(&cm, &rate)

	var est models.VoyageCostEstimation
	err := tx.Where("voyage_id = ?", voyageID).First(&est).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	isNew := errors.Is(err, gorm.ErrRecordNotFound)
	if isNew {
		est = models.VoyageCostEstimation{
			ID:       types.SnowflakeID(idgen.GenerateID()),
			VoyageID: voyageID,
		}
	}
	est.EstimationCost1 = result.EstimationCost1
	est.EstimationCost2 = result.EstimationCost2
	est.FinalCost = result.FinalCost
	est.Breakdown = datatypes.JSONMap(result.Breakdown)
	est.ComputedAt = time.Now()

	if isNew {
		err = tx.Create(&est).Error
	} else {
		err = tx.Save(&est).Error
	}
	if err != nil {
		return nil, err
	}
	return &est, nil
}

func (s *CostService) recomputeForPort(tx *gorm.DB, portID uint) error {
	var voyageIDs []uint
	err := tx.Model(&models.ContainerMovement{}).
		Joins("JOIN voyages ON voyages.id = container_movements.voyage_id").
		Where("voyages.port_id = ?", portID).
		Pluck("container_movements.voyage_id", &voyageIDs).Error
	if err != nil {
		return err
	}
	for _, id := range voyageIDs {
		if _, err := s.RecomputeForVoyage(tx, id); err != nil && !errors.Is(err, ErrCostRateMissing) {
			return err
		}
	}
	return nil
}

func ensurePort(tx *gorm.DB, portID uint) error {
	var count int64
	if err := tx.Model(&port.Port{}).Where("id = ?", portID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: port %d", ErrNotFound, portID)
	}
	return nil
}

func ensureVoyage(tx *gorm.DB, voyageID uint) error {
	var count int64
	if err := tx.Model(&models.Voyage{}).Where("id = ?", voyageID).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return fmt.Errorf("%w: voyage %d", ErrNotFound, voyageID)
	}
	return nil
}
