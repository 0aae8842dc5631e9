package port

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// FirstOrCreateByName dipakai seeder CSV, port baru dibuat tanpa code
func FirstOrCreateByName(db *gorm.DB, name string) (*Port, error) {
	name = strings.TrimSpace(name)
	var existing Port
	err := db.Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	p := Port{Name: name}
	if err := db.Create(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func SeedPort(db *gorm.DB, names []string) error {
	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			continue
		}
		if _, err := FirstOrCreateByName(db, name); err != nil {
			return err
		}
	}
	return nil
}
