package port

import "time"

type Port struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"size:100;uniqueIndex;not null"`
	Code      *string   `json:"code" gorm:"size:20;uniqueIndex"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PortInput struct {
	Name string  `json:"name" validate:"required,max=100"`
	Code *string `json:"code" validate:"omitempty,max=20"`
}
