package repositories

import (
	"context"

	"shipops-app/models"

	"gorm.io/gorm"
)

type PercentageRepository struct {
	DB *gorm.DB
}

func NewPercentageRepository(DB *gorm.DB) *PercentageRepository {
	return &PercentageRepository{DB: DB}
}

// PortAggregate jumlah box per ukuran untuk satu port.
// tb = bongkaran, tp = pengajuan, ta = acc, tl = realisasi + shipside
type PortAggregate struct {
	PortID   uint    `gorm:"column:port_id"`
	PortName string  `gorm:"column:port_name"`
	TB20     float64 `gorm:"column:tb20"`
	TB40     float64 `gorm:"column:tb40"`
	TP20     float64 `gorm:"column:tp20"`
	TP40     float64 `gorm:"column:tp40"`
	TA20     float64 `gorm:"column:ta20"`
	TA40     float64 `gorm:"column:ta40"`
	TL20     float64 `gorm:"column:tl20"`
	TL40     float64 `gorm:"column:tl40"`
}

const sqlPortAggregate = `SELECT p.id AS port_id, p.name AS port_name,
	COALESCE(SUM(COALESCE(cm.bongkaran_empty_20dc, 0) + COALESCE(cm.bongkaran_full_20dc, 0)), 0) AS tb20,
	COALESCE(SUM(COALESCE(cm.bongkaran_empty_40hc, 0) + COALESCE(cm.bongkaran_full_40hc, 0)), 0) AS tb40,
	COALESCE(SUM(COALESCE(cm.pengajuan_empty_20dc, 0) + COALESCE(cm.pengajuan_full_20dc, 0)), 0) AS tp20,
	COALESCE(SUM(COALESCE(cm.pengajuan_empty_40hc, 0) + COALESCE(cm.pengajuan_full_40hc, 0)), 0) AS tp40,
	COALESCE(SUM(COALESCE(cm.acc_pengajuan_empty_20dc, 0) + COALESCE(cm.acc_pengajuan_full_20dc, 0)), 0) AS ta20,
	COALESCE(SUM(COALESCE(cm.acc_pengajuan_empty_40hc, 0) + COALESCE(cm.acc_pengajuan_full_40hc, 0)), 0) AS ta40,
	COALESCE(SUM(COALESCE(cm.total_realisasi_20dc, 0)), 0) AS tl20,
	COALESCE(SUM(COALESCE(cm.total_realisasi_40hc, 0)), 0) AS tl40
	FROM ports p
	INNER JOIN voyages v ON v.port_id = p.id
	LEFT JOIN container_movements cm ON cm.voyage_id = v.id`

// PortAggregates port tanpa voyage tidak ikut (INNER JOIN ke voyages)
func (r *PercentageRepository) PortAggregates(ctx context.Context) ([]PortAggregate, error) {
	rows := []PortAggregate{}
	err := r.DB.WithContext(ctx).
		Raw(sqlPortAggregate + " GROUP BY p.id, p.name ORDER BY p.name ASC").
		Scan(&rows).Error
	return rows, err
}

// PortAggregateByID found=false jika port belum punya voyage
func (r *PercentageRepository) PortAggregateByID(ctx context.Context, portID uint) (agg PortAggregate, found bool, err error) {
	rows := []PortAggregate{}
	err = r.DB.WithContext(ctx).
		Raw(sqlPortAggregate+" WHERE p.id = ? GROUP BY p.id, p.name", portID).
		Scan(&rows).Error
	if err != nil || len(rows) == 0 {
		return PortAggregate{}, false, err
	}
	return rows[0], true, nil
}

func (r *PercentageRepository) FindByMovementID(ctx context.Context, movementID uint) (*models.PercentageContainerMovement, error) {
	var pct models.PercentageContainerMovement
	err := r.DB.WithContext(ctx).Where("container_movement_id = ?", movementID).First(&pct).Error
	return &pct, err
}
