package migration

import (
	"shipops-app/master/port"
	"shipops-app/models"

	"gorm.io/gorm"
)

// Models urutan dependensi foreign key, tabel induk lebih dulu
func Models() []interface{} {
	return []interface{}{
		&models.User{},
		&port.Port{},
		&models.Vessel{},
		&models.Voyage{},
		&models.ContainerMovement{},
		&models.PercentageContainerMovement{},
		&models.CostRate{},
		&models.VoyageCostEstimation{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}
