package database

import (
	"fmt"

	"shipops-app/migration"

	"gorm.io/gorm"
)

// CleanDatabase drop semua tabel aplikasi lalu membuat ulang
func CleanDatabase(db *gorm.DB) error {
	tables := migration.Models()
	// drop dari tabel anak ke induk
	for i := len(tables) - 1; i >= 0; i-- {
		if err := db.Migrator().DropTable(tables[i]); err != nil {
			return fmt.Errorf("drop table: %w", err)
		}
	}
	return migration.Migrate(db)
}
