package database

import (
	"errors"
	"log"

	"shipops-app/config"
	"shipops-app/master/port"
	"shipops-app/models"
	"shipops-app/utils"

	"gorm.io/gorm"
)

func RunSeeders(db *gorm.DB) {
	SeedUserMaster(db)
	if err := port.SeedPort(db, config.SeedPorts); err != nil {
		log.Println("Gagal seed port:", err)
	}
}

// SeedUserMaster membuat akun admin kalau email admin belum terdaftar
func SeedUserMaster(db *gorm.DB) {
	hash, err := utils.HashPassword(config.AdminPassword)
	if err != nil {
		log.Println("Gagal hash password admin:", err)
		return
	}

	users := []models.User{
		{
			Username: config.AdminUsername,
			Password: hash,
			Email:    config.AdminEmail,
			Role:     models.RoleAdmin,
		},
	}

	for _, user := range users {
		var existing models.User
		err := db.Where("email = ?", user.Email).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := db.Create(&user).Error; err != nil {
				log.Println("Gagal insert user:", user.Username, err)
			} else {
				log.Println("Insert user:", user.Username)
			}
		}
	}
}
