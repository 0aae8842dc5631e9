package database

import (
	"fmt"

	"shipops-app/migration"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// OpenMemoryDatabase membuka sqlite in-memory yang sudah dimigrasi.
// name harus unik per pemakai supaya database tidak saling berbagi.
func OpenMemoryDatabase(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	cfg := NewGormConfig()
	db, err := gorm.Open(sqlite.Open(dsn), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := migration.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}
