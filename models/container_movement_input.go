package models

type BongkaranInput struct {
	VoyageID           uint `json:"voyage_id" validate:"required"`
	BongkaranEmpty20DC int  `json:"bongkaran_empty_20dc" validate:"min=0"`
	BongkaranEmpty40HC int  `json:"bongkaran_empty_40hc" validate:"min=0"`
	BongkaranFull20DC  int  `json:"bongkaran_full_20dc" validate:"min=0"`
	BongkaranFull40HC  int  `json:"bongkaran_full_40hc" validate:"min=0"`
}

func (in BongkaranInput) Counts() Counts {
	return Counts{in.BongkaranEmpty20DC, in.BongkaranEmpty40HC, in.BongkaranFull20DC, in.BongkaranFull40HC}
}

type PengajuanInput struct {
	ID                 uint `json:"id" validate:"required"`
	PengajuanEmpty20DC int  `json:"pengajuan_empty_20dc" validate:"min=0"`
	PengajuanEmpty40HC int  `json:"pengajuan_empty_40hc" validate:"min=0"`
	PengajuanFull20DC  int  `json:"pengajuan_full_20dc" validate:"min=0"`
	PengajuanFull40HC  int  `json:"pengajuan_full_40hc" validate:"min=0"`
}

func (in PengajuanInput) Counts() Counts {
	return Counts{in.PengajuanEmpty20DC, in.PengajuanEmpty40HC, in.PengajuanFull20DC, in.PengajuanFull40HC}
}

type AccPengajuanInput struct {
	ID                    uint `json:"id" validate:"required"`
	AccPengajuanEmpty20DC int  `json:"acc_pengajuan_empty_20dc" validate:"min=0"`
	AccPengajuanEmpty40HC int  `json:"acc_pengajuan_empty_40hc" validate:"min=0"`
	AccPengajuanFull20DC  int  `json:"acc_pengajuan_full_20dc" validate:"min=0"`
	AccPengajuanFull40HC  int  `json:"acc_pengajuan_full_40hc" validate:"min=0"`
}

func (in AccPengajuanInput) Counts() Counts {
	return Counts{in.AccPengajuanEmpty20DC, in.AccPengajuanEmpty40HC, in.AccPengajuanFull20DC, in.AccPengajuanFull40HC}
}

type RealisasiFields struct {
	RealisasiMxd20DC int `json:"realisasi_mxd_20dc" validate:"min=0"`
	RealisasiMxd40HC int `json:"realisasi_mxd_40hc" validate:"min=0"`
	RealisasiFxd20DC int `json:"realisasi_fxd_20dc" validate:"min=0"`
	RealisasiFxd40HC int `json:"realisasi_fxd_40hc" validate:"min=0"`
}

type ShipsideFields struct {
	ShipsideYesMxd20DC int `json:"shipside_yes_mxd_20dc" validate:"min=0"`
	ShipsideYesMxd40HC int `json:"shipside_yes_mxd_40hc" validate:"min=0"`
	ShipsideYesFxd20DC int `json:"shipside_yes_fxd_20dc" validate:"min=0"`
	ShipsideYesFxd40HC int `json:"shipside_yes_fxd_40hc" validate:"min=0"`
	ShipsideNoMxd20DC  int `json:"shipside_no_mxd_20dc" validate:"min=0"`
	ShipsideNoMxd40HC  int `json:"shipside_no_mxd_40hc" validate:"min=0"`
	ShipsideNoFxd20DC  int `json:"shipside_no_fxd_20dc" validate:"min=0"`
	ShipsideNoFxd40HC  int `json:"shipside_no_fxd_40hc" validate:"min=0"`
}

type RealisasiInput struct {
	ID uint `json:"id" validate:"required"`
	RealisasiFields
}

type ShipsideInput struct {
	ID uint `json:"id" validate:"required"`
	ShipsideFields
	Obstacles *string `json:"obstacles"`
}

type RealisasiShipsideInput struct {
	ID uint `json:"id" validate:"required"`
	RealisasiFields
	ShipsideFields
	Obstacles *string `json:"obstacles"`
}

type ObstaclesInput struct {
	ID        uint   `json:"id" validate:"required"`
	Obstacles string `json:"obstacles"`
}

func (f RealisasiFields) ApplyTo(cm *ContainerMovement) {
	cm.RealisasiMxd20DC = f.RealisasiMxd20DC
	cm.RealisasiMxd40HC = f.RealisasiMxd40HC
	cm.RealisasiFxd20DC = f.RealisasiFxd20DC
	cm.RealisasiFxd40HC = f.RealisasiFxd40HC
}

func (f ShipsideFields) ApplyTo(cm *ContainerMovement) {
	cm.ShipsideYesMxd20DC = f.ShipsideYesMxd20DC
	cm.ShipsideYesMxd40HC = f.ShipsideYesMxd40HC
	cm.ShipsideYesFxd20DC = f.ShipsideYesFxd20DC
	cm.ShipsideYesFxd40HC = f.ShipsideYesFxd40HC
	cm.ShipsideNoMxd20DC = f.ShipsideNoMxd20DC
	cm.ShipsideNoMxd40HC = f.ShipsideNoMxd40HC
	cm.ShipsideNoFxd20DC = f.ShipsideNoFxd20DC
	cm.ShipsideNoFxd40HC = f.ShipsideNoFxd40HC
}
