package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"shipops-app/models"
	"shipops-app/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ContainerMovementService menjalankan setiap tahap dalam satu transaksi:
// kunci baris, validasi, hitung ulang turunan, simpan, lalu hitung ulang biaya.
type ContainerMovementService struct {
	DB   *gorm.DB
	Cost *CostService
}

func NewContainerMovementService(db *gorm.DB, cost *CostService) *ContainerMovementService {
	return &ContainerMovementService{DB: db, Cost: cost}
}

func lockForUpdate(tx *gorm.DB) *gorm.DB {
	switch tx.Dialector.Name() {
	case "postgres", "mysql":
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	default:
		// sqlite dan sqlserver tidak mendukung SELECT ... FOR UPDATE
		return tx
	}
}

// RecordBongkaran membuat movement baru untuk voyage, satu voyage hanya boleh satu movement
func (s *ContainerMovementService) RecordBongkaran(ctx context.Context, in models.BongkaranInput) (*models.ContainerMovement, error) {
	var cm models.ContainerMovement
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureVoyage(tx, in.VoyageID); err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.ContainerMovement{}).Where("voyage_id = ?", in.VoyageID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrMovementExists
		}

		counts := in.Counts()
		cm = models.ContainerMovement{
			VoyageID:           in.VoyageID,
			BongkaranEmpty20DC: counts.Empty20DC,
			BongkaranEmpty40HC: counts.Empty40HC,
			BongkaranFull20DC:  counts.Full20DC,
			BongkaranFull40HC:  counts.Full40HC,
		}
		if err := tx.Create(&cm).Error; err != nil {
			if utils.IsDuplicateKeyError(err) {
				return ErrMovementExists
			}
			return err
		}
		return s.afterStage(tx, &cm)
	})
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// RecordPengajuan tidak boleh turun di bawah ACC yang sudah tersimpan
func (s *ContainerMovementService) RecordPengajuan(ctx context.Context, in models.PengajuanInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		c := in.Counts()
		if v := CheckAccAgainstPengajuan(cm.AccPengajuan(), c); len(v) > 0 {
			return &ViolationError{Message: "Pengajuan lebih kecil dari ACC pengajuan yang tersimpan", Violations: v}
		}
		cm.PengajuanEmpty20DC = c.Empty20DC
		cm.PengajuanEmpty40HC = c.Empty40HC
		cm.PengajuanFull20DC = c.Full20DC
		cm.PengajuanFull40HC = c.Full40HC
		return nil
	})
}

// RecordAccPengajuan dibatasi pengajuan di atasnya dan realisasi + shipside yang sudah tersimpan
func (s *ContainerMovementService) RecordAccPengajuan(ctx context.Context, in models.AccPengajuanInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		acc := in.Counts()
		if v := CheckAccAgainstPengajuan(acc, cm.Pengajuan()); len(v) > 0 {
			return &ViolationError{Message: "ACC pengajuan melebihi pengajuan", Violations: v}
		}
		next := *cm
		applyAcc(&next, acc)
		if err := checkHandled(&next); err != nil {
			return err
		}
		applyAcc(cm, acc)
		return nil
	})
}

func applyAcc(cm *models.ContainerMovement, acc models.Counts) {
	cm.AccPengajuanEmpty20DC = acc.Empty20DC
	cm.AccPengajuanEmpty40HC = acc.Empty40HC
	cm.AccPengajuanFull20DC = acc.Full20DC
	cm.AccPengajuanFull40HC = acc.Full40HC
}

// RecordRealisasi divalidasi bersama nilai shipside yang sudah tersimpan
func (s *ContainerMovementService) RecordRealisasi(ctx context.Context, in models.RealisasiInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		next := *cm
		in.RealisasiFields.ApplyTo(&next)
		if err := checkHandled(&next); err != nil {
			return err
		}
		in.RealisasiFields.ApplyTo(cm)
		return nil
	})
}

// RecordShipside divalidasi bersama nilai realisasi yang sudah tersimpan
func (s *ContainerMovementService) RecordShipside(ctx context.Context, in models.ShipsideInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		next := *cm
		in.ShipsideFields.ApplyTo(&next)
		if err := checkHandled(&next); err != nil {
			return err
		}
		in.ShipsideFields.ApplyTo(cm)
		if in.Obstacles != nil {
			cm.Obstacles = *in.Obstacles
		}
		return nil
	})
}

func (s *ContainerMovementService) RecordRealisasiShipside(ctx context.Context, in models.RealisasiShipsideInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		next := *cm
		in.RealisasiFields.ApplyTo(&next)
		in.ShipsideFields.ApplyTo(&next)
		if err := checkHandled(&next); err != nil {
			return err
		}
		in.RealisasiFields.ApplyTo(cm)
		in.ShipsideFields.ApplyTo(cm)
		if in.Obstacles != nil {
			cm.Obstacles = *in.Obstacles
		}
		return nil
	})
}

func (s *ContainerMovementService) UpdateObstacles(ctx context.Context, in models.ObstaclesInput) (*models.ContainerMovement, error) {
	return s.update(ctx, in.ID, func(cm *models.ContainerMovement) error {
		cm.Obstacles = in.Obstacles
		return nil
	})
}

func checkHandled(cm *models.ContainerMovement) error {
	if v := CheckHandledAgainstAcc(cm.Handled(), cm.AccPengajuan()); len(v) > 0 {
		return &ViolationError{Message: "Realisasi + shipside melebihi ACC pengajuan", Violations: v}
	}
	return nil
}

func (s *ContainerMovementService) update(ctx context.Context, id uint, mutate func(cm *models.ContainerMovement) error) (*models.ContainerMovement, error) {
	var cm models.ContainerMovement
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockForUpdate(tx).First(&cm, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: container movement %d", ErrNotFound, id)
			}
			return err
		}
		if err := mutate(&cm); err != nil {
			return err
		}
		return s.afterStage(tx, &cm)
	})
	if err != nil {
		return nil, err
	}
	return &cm, nil
}

// afterStage menghitung ulang total turunan dan rasio lalu menyimpan semuanya
func (s *ContainerMovementService) afterStage(tx *gorm.DB, cm *models.ContainerMovement) error {
	ApplyAccTotals(cm)
	ApplyRealisasiTotals(cm)
	if err := tx.Omit(clause.Associations).Save(cm).Error; err != nil {
		return err
	}

	pct, err := SavePercentage(tx, cm)
	if err != nil {
		return err
	}
	cm.Percentage = pct

	if s.Cost != nil {
		if _, err := s.Cost.RecomputeForVoyage(tx, cm.VoyageID); err != nil {
			if !errors.Is(err, ErrCostRateMissing) {
				return err
			}
			log.Printf("cost estimation dilewati untuk voyage %d: port belum punya cost rate", cm.VoyageID)
		}
	}
	return nil
}

// SavePercentage membuat atau memperbarui baris rasio milik movement
func SavePercentage(tx *gorm.DB, cm *models.ContainerMovement) (*models.PercentageContainerMovement, error) {
	var pct models.PercentageContainerMovement
	err := tx.Where("container_movement_id = ?", cm.ID).First(&pct).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	ApplyPercentage(cm, &pct)
	if pct.ID == 0 {
		err = tx.Create(&pct).Error
	} else {
		err = tx.Save(&pct).Error
	}
	if err != nil {
		return nil, err
	}
	return &pct, nil
}
