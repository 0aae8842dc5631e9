package models

import (
	"shipops-app/master/port"
	"time"
)

type Voyage struct {
	ID        uint       `json:"id" gorm:"primaryKey"`
	VesselID  uint       `json:"vessel_id" gorm:"not null;index"`
	Vessel    *Vessel    `json:"vessel,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	PortID    uint       `json:"port_id" gorm:"not null;index"`
	Port      *port.Port `json:"port,omitempty" gorm:"constraint:OnDelete:RESTRICT"`
	VoyageNo  string     `json:"voyage_no" gorm:"size:50;not null"`
	VoyageYr  int        `json:"voyage_yr" gorm:"not null;index"`
	BerthLoc  string     `json:"berth_loc" gorm:"size:100"`
	DateBerth *time.Time `json:"date_berth"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// VoyageInput menerima date_berth dalam format 2006-01-02 atau RFC3339
type VoyageInput struct {
	VesselID  uint   `json:"vessel_id" validate:"required"`
	PortID    uint   `json:"port_id" validate:"required"`
	VoyageYr  int    `json:"voyage_yr" validate:"required,min=1900,max=9999"`
	BerthLoc  string `json:"berth_loc" validate:"max=100"`
	DateBerth string `json:"date_berth" validate:"required"`
}
