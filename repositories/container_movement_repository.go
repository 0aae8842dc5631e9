package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"shipops-app/models"
	"shipops-app/utils"

	"gorm.io/gorm"
)

type ContainerMovementRepository struct {
	DB *gorm.DB
}

func NewContainerMovementRepository(DB *gorm.DB) *ContainerMovementRepository {
	return &ContainerMovementRepository{DB: DB}
}

// MovementRow baris monitoring: movement + kolom vessel/voyage/port yang sudah diratakan
type MovementRow struct {
	models.ContainerMovement
	VesselName      *string    `json:"vessel_name"`
	VoyageNumber    *string    `json:"voyage_number"`
	VoyageYear      *int       `json:"voyage_year"`
	VoyageBerthLoc  *string    `json:"voyage_berth_loc"`
	VoyageDateBerth *time.Time `json:"voyage_date_berth"`
	PortID          *uint      `json:"port_id"`
	PortName        *string    `json:"port_name"`
	VoyageCreatedAt *time.Time `json:"voyage_created_at"`
}

type PortMovementSummary struct {
	PortID         uint   `json:"port_id"`
	PortName       string `json:"port_name"`
	TotalPengajuan int64  `json:"total_pengajuan"`
	AccPengajuan   int64  `json:"acc_pengajuan"`
	TotalRealisasi int64  `json:"total_realisasi"`
}

var movementSortColumns = map[string]string{
	"vessel_name":       "vessels.name",
	"voyage_number":     "voyages.voyage_no",
	"voyage_year":       "voyages.voyage_yr",
	"port_name":         "ports.name",
	"voyage_date_berth": "voyages.date_berth",
	"created_at":        "container_movements.created_at",
	"updated_at":        "container_movements.updated_at",
	"voyage_created_at": "voyages.created_at",
}

// castText ekspresi CAST ke teks sesuai dialect
func castText(db *gorm.DB, column string) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "CAST(" + column + " AS CHAR)"
	case "sqlserver":
		return "CAST(" + column + " AS VARCHAR(20))"
	default:
		return "CAST(" + column + " AS TEXT)"
	}
}

// likeEscaper membuat % dan _ dari input user dicari apa adanya
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func (r *ContainerMovementRepository) base(ctx context.Context, field, q string) *gorm.DB {
	db := r.DB.WithContext(ctx).Model(&models.ContainerMovement{}).
		Joins("JOIN voyages ON voyages.id = container_movements.voyage_id").
		Joins("LEFT JOIN vessels ON vessels.id = voyages.vessel_id").
		Joins("LEFT JOIN ports ON ports.id = voyages.port_id")

	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return db
	}
	like := "%" + likeEscaper.Replace(q) + "%"

	columns := map[string]string{
		"vessel_name":   "LOWER(vessels.name)",
		"voyage_number": "LOWER(voyages.voyage_no)",
		"voyage_year":   castText(r.DB, "voyages.voyage_yr"),
		"port_name":     "LOWER(ports.name)",
		"obstacles":     "LOWER(container_movements.obstacles)",
	}

	if col, ok := columns[field]; ok {
		return db.Where(col+" LIKE ? ESCAPE '!'", like)
	}

	// field "all" atau tidak dikenal: cari di semua kolom
	conds := make([]string, 0, len(columns))
	args := make([]interface{}, 0, len(columns))
	for _, col := range columns {
		conds = append(conds, col+" LIKE ? ESCAPE '!'")
		args = append(args, like)
	}
	return db.Where("("+strings.Join(conds, " OR ")+")", args...)
}

func orderClause(p utils.Pagination) string {
	col, ok := movementSortColumns[p.SortBy]
	if !ok {
		col = movementSortColumns["created_at"]
	}
	return fmt.Sprintf("%s %s, container_movements.id %s", col, strings.ToUpper(p.SortOrder), strings.ToUpper(p.SortOrder))
}

func (r *ContainerMovementRepository) preload(db *gorm.DB) *gorm.DB {
	return db.Preload("Voyage.Vessel").Preload("Voyage.Port").Preload("Percentage")
}

// List mengembalikan satu halaman movement beserta total baris yang cocok dengan pencarian
func (r *ContainerMovementRepository) List(ctx context.Context, p utils.Pagination) ([]MovementRow, int64, error) {
	var total int64
	if err := r.base(ctx, p.Field, p.Query).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cms []models.ContainerMovement
	err := r.preload(r.base(ctx, p.Field, p.Query)).
		Order(orderClause(p)).
		Limit(p.Limit()).
		Offset(p.Offset()).
		Find(&cms).Error
	if err != nil {
		return nil, 0, err
	}
	return toRows(cms), total, nil
}

// ListAll tanpa paging, dipakai untuk export
func (r *ContainerMovementRepository) ListAll(ctx context.Context, p utils.Pagination) ([]MovementRow, error) {
	var cms []models.ContainerMovement
	err := r.preload(r.base(ctx, p.Field, p.Query)).
		Order(orderClause(p)).
		Find(&cms).Error
	if err != nil {
		return nil, err
	}
	return toRows(cms), nil
}

func (r *ContainerMovementRepository) FindByID(ctx context.Context, id uint) (*MovementRow, error) {
	var cm models.ContainerMovement
	if err := r.preload(r.DB.WithContext(ctx)).First(&cm, id).Error; err != nil {
		return nil, err
	}
	row := toRow(cm)
	return &row, nil
}

// SummaryByPort total box pengajuan, acc dan realisasi per port
func (r *ContainerMovementRepository) SummaryByPort(ctx context.Context) ([]PortMovementSummary, error) {
	sqlSummary := `SELECT p.id AS port_id, p.name AS port_name,
	COALESCE(SUM(COALESCE(cm.pengajuan_empty_20dc, 0) + COALESCE(cm.pengajuan_empty_40hc, 0)
		+ COALESCE(cm.pengajuan_full_20dc, 0) + COALESCE(cm.pengajuan_full_40hc, 0)), 0) AS total_pengajuan,
	COALESCE(SUM(COALESCE(cm.acc_pengajuan_empty_20dc, 0) + COALESCE(cm.acc_pengajuan_empty_40hc, 0)
		+ COALESCE(cm.acc_pengajuan_full_20dc, 0) + COALESCE(cm.acc_pengajuan_full_40hc, 0)), 0) AS acc_pengajuan,
	COALESCE(SUM(COALESCE(cm.total_realisasi_20dc, 0) + COALESCE(cm.total_realisasi_40hc, 0)), 0) AS total_realisasi
	FROM ports p
	INNER JOIN voyages v ON v.port_id = p.id
	LEFT JOIN container_movements cm ON cm.voyage_id = v.id
	GROUP BY p.id, p.name
	ORDER BY p.name ASC`

	summaries := []PortMovementSummary{}
	if err := r.DB.WithContext(ctx).Raw(sqlSummary).Scan(&summaries).Error; err != nil {
		return nil, err
	}
	return summaries, nil
}

func toRows(cms []models.ContainerMovement) []MovementRow {
	rows := make([]MovementRow, 0, len(cms))
	for _, cm := range cms {
		rows = append(rows, toRow(cm))
	}
	return rows
}

func toRow(cm models.ContainerMovement) MovementRow {
	row := MovementRow{}
	if v := cm.Voyage; v != nil {
		row.VoyageNumber = &v.VoyageNo
		row.VoyageYear = &v.VoyageYr
		row.VoyageBerthLoc = &v.BerthLoc
		row.VoyageDateBerth = v.DateBerth
		row.PortID = &v.PortID
		row.VoyageCreatedAt = &v.CreatedAt
		if v.Vessel != nil {
			row.VesselName = &v.Vessel.Name
		}
		if v.Port != nil {
			row.PortName = &v.Port.Name
		}
	}
	cm.Voyage = nil
	row.ContainerMovement = cm
	return row
}
