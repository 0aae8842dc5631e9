package models

import "time"

// ContainerMovement satu baris per voyage, diisi bertahap dari bongkaran sampai realisasi
type ContainerMovement struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	VoyageID uint    `json:"voyage_id" gorm:"not null;uniqueIndex"`
	Voyage   *Voyage `json:"voyage,omitempty" gorm:"constraint:OnDelete:CASCADE"`

	BongkaranEmpty20DC int `json:"bongkaran_empty_20dc" gorm:"not null;default:0"`
	BongkaranEmpty40HC int `json:"bongkaran_empty_40hc" gorm:"not null;default:0"`
	BongkaranFull20DC  int `json:"bongkaran_full_20dc" gorm:"not null;default:0"`
	BongkaranFull40HC  int `json:"bongkaran_full_40hc" gorm:"not null;default:0"`

	PengajuanEmpty20DC int `json:"pengajuan_empty_20dc" gorm:"not null;default:0"`
	PengajuanEmpty40HC int `json:"pengajuan_empty_40hc" gorm:"not null;default:0"`
	PengajuanFull20DC  int `json:"pengajuan_full_20dc" gorm:"not null;default:0"`
	PengajuanFull40HC  int `json:"pengajuan_full_40hc" gorm:"not null;default:0"`

	AccPengajuanEmpty20DC int `json:"acc_pengajuan_empty_20dc" gorm:"not null;default:0"`
	AccPengajuanEmpty40HC int `json:"acc_pengajuan_empty_40hc" gorm:"not null;default:0"`
	AccPengajuanFull20DC  int `json:"acc_pengajuan_full_20dc" gorm:"not null;default:0"`
	AccPengajuanFull40HC  int `json:"acc_pengajuan_full_40hc" gorm:"not null;default:0"`

	TotalPengajuan20DC int `json:"total_pengajuan_20dc" gorm:"not null;default:0"`
	TotalPengajuan40HC int `json:"total_pengajuan_40hc" gorm:"not null;default:0"`
	TeusPengajuan      int `json:"teus_pengajuan" gorm:"not null;default:0"`

	RealisasiMxd20DC int `json:"realisasi_mxd_20dc" gorm:"not null;default:0"`
	RealisasiMxd40HC int `json:"realisasi_mxd_40hc" gorm:"not null;default:0"`
	RealisasiFxd20DC int `json:"realisasi_fxd_20dc" gorm:"not null;default:0"`
	RealisasiFxd40HC int `json:"realisasi_fxd_40hc" gorm:"not null;default:0"`

	ShipsideYesMxd20DC int `json:"shipside_yes_mxd_20dc" gorm:"not null;default:0"`
	ShipsideYesMxd40HC int `json:"shipside_yes_mxd_40hc" gorm:"not null;default:0"`
	ShipsideYesFxd20DC int `json:"shipside_yes_fxd_20dc" gorm:"not null;default:0"`
	ShipsideYesFxd40HC int `json:"shipside_yes_fxd_40hc" gorm:"not null;default:0"`
	ShipsideNoMxd20DC  int `json:"shipside_no_mxd_20dc" gorm:"not null;default:0"`
	ShipsideNoMxd40HC  int `json:"shipside_no_mxd_40hc" gorm:"not null;default:0"`
	ShipsideNoFxd20DC  int `json:"shipside_no_fxd_20dc" gorm:"not null;default:0"`
	ShipsideNoFxd40HC  int `json:"shipside_no_fxd_40hc" gorm:"not null;default:0"`

	TotalRealisasi20DC int `json:"total_realisasi_20dc" gorm:"not null;default:0"`
	TotalRealisasi40HC int `json:"total_realisasi_40hc" gorm:"not null;default:0"`
	TeusRealisasi      int `json:"teus_realisasi" gorm:"not null;default:0"`

	TurunCY20DC int `json:"turun_cy_20dc" gorm:"not null;default:0"`
	TurunCY40HC int `json:"turun_cy_40hc" gorm:"not null;default:0"`
	TeusTurunCY int `json:"teus_turun_cy" gorm:"not null;default:0"`

	PercentageVessel float64 `json:"percentage_vessel" gorm:"not null;default:0"`
	Obstacles        string  `json:"obstacles" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Percentage *PercentageContainerMovement `json:"percentage,omitempty" gorm:"foreignKey:ContainerMovementID;constraint:OnDelete:CASCADE"`
}

// Counts jumlah box per kategori (empty/full x 20dc/40hc)
type Counts struct {
	Empty20DC int `json:"empty_20dc"`
	Empty40HC int `json:"empty_40hc"`
	Full20DC  int `json:"full_20dc"`
	Full40HC  int `json:"full_40hc"`
}

func (c Counts) Total20DC() int { return c.Empty20DC + c.Full20DC }
func (c Counts) Total40HC() int { return c.Empty40HC + c.Full40HC }
func (c Counts) Total() int     { return c.Total20DC() + c.Total40HC() }

// Sub mengurangi per kategori
func (c Counts) Sub(o Counts) Counts {
	return Counts{
		Empty20DC: c.Empty20DC - o.Empty20DC,
		Empty40HC: c.Empty40HC - o.Empty40HC,
		Full20DC:  c.Full20DC - o.Full20DC,
		Full40HC:  c.Full40HC - o.Full40HC,
	}
}

func (c Counts) Add(o Counts) Counts {
	return Counts{
		Empty20DC: c.Empty20DC + o.Empty20DC,
		Empty40HC: c.Empty40HC + o.Empty40HC,
		Full20DC:  c.Full20DC + o.Full20DC,
		Full40HC:  c.Full40HC + o.Full40HC,
	}
}

func (cm *ContainerMovement) Bongkaran() Counts {
	return Counts{cm.BongkaranEmpty20DC, cm.BongkaranEmpty40HC, cm.BongkaranFull20DC, cm.BongkaranFull40HC}
}

func (cm *ContainerMovement) Pengajuan() Counts {
	return Counts{cm.PengajuanEmpty20DC, cm.PengajuanEmpty40HC, cm.PengajuanFull20DC, cm.PengajuanFull40HC}
}

func (cm *ContainerMovement) AccPengajuan() Counts {
	return Counts{cm.AccPengajuanEmpty20DC, cm.AccPengajuanEmpty40HC, cm.AccPengajuanFull20DC, cm.AccPengajuanFull40HC}
}

// Realisasi: mxd dihitung sebagai empty, fxd sebagai full
func (cm *ContainerMovement) Realisasi() Counts {
	return Counts{cm.RealisasiMxd20DC, cm.RealisasiMxd40HC, cm.RealisasiFxd20DC, cm.RealisasiFxd40HC}
}

func (cm *ContainerMovement) ShipsideYes() Counts {
	return Counts{cm.ShipsideYesMxd20DC, cm.ShipsideYesMxd40HC, cm.ShipsideYesFxd20DC, cm.ShipsideYesFxd40HC}
}

func (cm *ContainerMovement) ShipsideNo() Counts {
	return Counts{cm.ShipsideNoMxd20DC, cm.ShipsideNoMxd40HC, cm.ShipsideNoFxd20DC, cm.ShipsideNoFxd40HC}
}

// Handled = realisasi + shipside yes + shipside no per kategori
func (cm *ContainerMovement) Handled() Counts {
	return cm.Realisasi().Add(cm.ShipsideYes()).Add(cm.ShipsideNo())
}

type PercentageContainerMovement struct {
	ID                  uint `json:"id" gorm:"primaryKey"`
	ContainerMovementID uint `json:"container_movement_id" gorm:"not null;uniqueIndex"`

	Pengajuan20DC float64 `json:"pengajuan_20dc"`
	Pengajuan40HC float64 `json:"pengajuan_40hc"`
	Pengajuan     float64 `json:"pengajuan"`

	Acc20DC float64 `json:"acc_20dc"`
	Acc40HC float64 `json:"acc_40hc"`
	Acc     float64 `json:"acc"`

	TL20DC float64 `json:"tl_20dc"`
	TL40HC float64 `json:"tl_40hc"`
	TL     float64 `json:"tl"`

	Realisasi20DC float64 `json:"realisasi_20dc"`
	Realisasi40HC float64 `json:"realisasi_40hc"`
	Realisasi     float64 `json:"realisasi"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
