package services

import (
	"math"

	"shipops-app/models"
	"shipops-app/repositories"

	"golang.org/x/exp/constraints"
)

// TEU = box 20ft + 2 x box 40ft
func TEU[T constraints.Integer | constraints.Float](count20, count40 T) T {
	return count20 + 2*count40
}

// Pct persentase num/den dibulatkan 2 desimal, 0 kalau den <= 0
func Pct[T constraints.Integer | constraints.Float](num, den T) float64 {
	if den <= 0 {
		return 0
	}
	return Round2(float64(num) / float64(den) * 100)
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clampZero[T constraints.Integer](v T) T {
	if v < 0 {
		return 0
	}
	return v
}

// ApplyAccTotals mengisi total pengajuan dari nilai ACC
func ApplyAccTotals(cm *models.ContainerMovement) {
	acc := cm.AccPengajuan()
	cm.TotalPengajuan20DC = acc.Total20DC()
	cm.TotalPengajuan40HC = acc.Total40HC()
	cm.TeusPengajuan = TEU(cm.TotalPengajuan20DC, cm.TotalPengajuan40HC)
}

// ApplyRealisasiTotals mengisi total realisasi, turun CY dan persentase vessel
func ApplyRealisasiTotals(cm *models.ContainerMovement) {
	handled := cm.Handled()
	cm.TotalRealisasi20DC = handled.Total20DC()
	cm.TotalRealisasi40HC = handled.Total40HC()
	cm.TeusRealisasi = TEU(cm.TotalRealisasi20DC, cm.TotalRealisasi40HC)

	turun := cm.AccPengajuan().Sub(handled)
	cm.TurunCY20DC = turun.Total20DC()
	cm.TurunCY40HC = turun.Total40HC()
	cm.TeusTurunCY = TEU(cm.TurunCY20DC, cm.TurunCY40HC)

	cm.PercentageVessel = PercentageVessel(cm.TeusRealisasi, cm.TeusPengajuan)
}

// PercentageVessel rasio teus realisasi terhadap teus pengajuan (bukan x100)
func PercentageVessel(teusRealisasi, teusPengajuan int) float64 {
	if teusPengajuan <= 0 {
		return 0
	}
	return float64(teusRealisasi) / float64(teusPengajuan)
}

// ApplyPercentage menghitung ulang rasio antar tahap untuk satu movement
func ApplyPercentage(cm *models.ContainerMovement, p *models.PercentageContainerMovement) {
	b, pg, acc := cm.Bongkaran(), cm.Pengajuan(), cm.AccPengajuan()
	tl20, tl40 := cm.TotalRealisasi20DC, cm.TotalRealisasi40HC

	p.ContainerMovementID = cm.ID

	p.Pengajuan20DC = Pct(pg.Total20DC(), b.Total20DC())
	p.Pengajuan40HC = Pct(pg.Total40HC(), b.Total40HC())
	p.Pengajuan = Pct(pg.Total(), b.Total())

	p.Acc20DC = Pct(acc.Total20DC(), pg.Total20DC())
	p.Acc40HC = Pct(acc.Total40HC(), pg.Total40HC())
	p.Acc = Pct(acc.Total(), pg.Total())

	p.TL20DC = Pct(acc.Total20DC(), b.Total20DC())
	p.TL40HC = Pct(acc.Total40HC(), b.Total40HC())
	p.TL = Pct(acc.Total(), b.Total())

	p.Realisasi20DC = Pct(tl20, pg.Total20DC())
	p.Realisasi40HC = Pct(tl40, pg.Total40HC())
	p.Realisasi = Pct(tl20+tl40, pg.Total())
}

// SizeRatios rasio per ukuran untuk ringkasan per port
type SizeRatios struct {
	Pengajuan float64 `json:"pengajuan"`
	Acc       float64 `json:"acc"`
	TL        float64 `json:"tl"`
	Realisasi float64 `json:"realisasi"`
}

type PortPercentages struct {
	SizeRatios
	BySize map[string]SizeRatios `json:"by_size"`
}

type SizeTotals struct {
	Size20DC float64 `json:"20dc"`
	Size40HC float64 `json:"40hc"`
	Overall  float64 `json:"overall"`
}

type PortTotals struct {
	Bongkaran SizeTotals `json:"bongkaran"`
	Pengajuan SizeTotals `json:"pengajuan"`
	Acc       SizeTotals `json:"acc"`
	TLSS      SizeTotals `json:"tlss"`
}

type PortPercentageSummary struct {
	PortID      uint            `json:"port_id"`
	PortName    string          `json:"port_name"`
	Percentages PortPercentages `json:"percentages"`
	Totals      PortTotals      `json:"totals"`
}

func sizeTotals(v20, v40 float64) SizeTotals {
	return SizeTotals{Size20DC: v20, Size40HC: v40, Overall: v20 + v40}
}

func ratios(tb, tp, ta, tl float64) SizeRatios {
	return SizeRatios{
		Pengajuan: Pct(tp, tb),
		Acc:       Pct(ta, tp),
		TL:        Pct(ta, tb),
		Realisasi: Pct(tl, tp),
	}
}

// BuildPortPercentageSummary: pengajuan = tp/tb, acc = ta/tp, tl = ta/tb, realisasi = tlss/tp
func BuildPortPercentageSummary(a repositories.PortAggregate) PortPercentageSummary {
	totals := PortTotals{
		Bongkaran: sizeTotals(a.TB20, a.TB40),
		Pengajuan: sizeTotals(a.TP20, a.TP40),
		Acc:       sizeTotals(a.TA20, a.TA40),
		TLSS:      sizeTotals(a.TL20, a.TL40),
	}
	return PortPercentageSummary{
		PortID:   a.PortID,
		PortName: a.PortName,
		Percentages: PortPercentages{
			SizeRatios: ratios(totals.Bongkaran.Overall, totals.Pengajuan.Overall, totals.Acc.Overall, totals.TLSS.Overall),
			BySize: map[string]SizeRatios{
				"20dc": ratios(a.TB20, a.TP20, a.TA20, a.TL20),
				"40hc": ratios(a.TB40, a.TP40, a.TA40, a.TL40),
			},
		},
		Totals: totals,
	}
}
