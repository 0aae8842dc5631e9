package repositories

import (
	"context"
	"strconv"
	"strings"

	"shipops-app/models"

	"gorm.io/gorm"
)

type VoyageRepository struct {
	DB *gorm.DB
}

func NewVoyageRepository(DB *gorm.DB) *VoyageRepository {
	return &VoyageRepository{DB: DB}
}

func (r *VoyageRepository) List(ctx context.Context) ([]models.Voyage, error) {
	voyages := []models.Voyage{}
	err := r.DB.WithContext(ctx).Preload("Vessel").Preload("Port").Order("id").Find(&voyages).Error
	return voyages, err
}

func (r *VoyageRepository) GetByID(ctx context.Context, id uint) (*models.Voyage, error) {
	var voyage models.Voyage
	err := r.DB.WithContext(ctx).Preload("Vessel").Preload("Port").First(&voyage, id).Error
	return &voyage, err
}

// NextVoyageNo nomor voyage berikutnya untuk vessel + tahun. Nomor yang bukan angka diabaikan
func (r *VoyageRepository) NextVoyageNo(tx *gorm.DB, vesselID uint, year int) (string, error) {
	var numbers []string
	err := tx.Model(&models.Voyage{}).
		Where("vessel_id = ? AND voyage_yr = ?", vesselID, year).
		Pluck("voyage_no", &numbers).Error
	if err != nil {
		return "", err
	}

	last := 0
	for _, no := range numbers {
		n, err := strconv.Atoi(strings.TrimSpace(no))
		if err == nil && n > last {
			last = n
		}
	}
	return strconv.Itoa(last + 1), nil
}
