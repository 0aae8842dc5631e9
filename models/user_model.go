package models

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Username  string    `json:"username" gorm:"size:100;uniqueIndex;not null"`
	Password  string    `json:"-" gorm:"column:password_hash;size:200;not null"`
	Email     string    `json:"email" gorm:"size:100;uniqueIndex;not null"`
	Role      string    `json:"role" gorm:"size:20;not null;default:user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterInput struct {
	Username string `json:"username" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=100"`
	Password string `json:"password" validate:"required,min=6"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LogoutInput refresh token opsional, dipakai client yang tidak menyimpan cookie
type LogoutInput struct {
	RefreshToken string `json:"refresh_token"`
}
