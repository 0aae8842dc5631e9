package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
	"time"

	"shipops-app/master/port"
	"shipops-app/models"
	"shipops-app/services"

	"gorm.io/gorm"
)

// Kolom CSV Ship Operation Data. Kolom bertanda .1 adalah blok realisasi
// karena nama kolom total pengajuan dan total realisasi sama di file asli.
const (
	colVessel    = "VESSEL ID (DMY)"
	colBerthLoc  = "BERTH LOCATION"
	colVoyageNo  = "Voyage No."
	colVoyageYr  = "Voyage Yr"
	colDateBerth = "Date Berth"
	colObstacles = "OBSTACLES"

	colPercentageVessel = "PERSENTASE/VESSEL"
)

var requiredColumns = []string{colVessel, colBerthLoc, colVoyageNo, colVoyageYr}

var dateBerthLayouts = []string{
	"02/01/2006 15.04",
	"02/01/2006 15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

type SeedResult struct {
	Rows    int
	Created int
	Skipped int
}

type csvRow struct {
	values []string
	index  map[string]int
}

func (r csvRow) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.values) {
		return ""
	}
	return strings.TrimSpace(r.values[i])
}

func (r csvRow) intVal(name string) int {
	v, err := strconv.ParseFloat(strings.ReplaceAll(r.get(name), ",", ""), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return int(v)
}

func (r csvRow) floatVal(name string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSuffix(r.get(name), "%"), 64)
	if err != nil || math.IsNaN(v) {
		return 0
	}
	return v
}

func parseDateBerth(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateBerthLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// SeedCSV mengimpor seluruh file dalam satu transaksi. Nilai turunan diambil
// apa adanya dari CSV, baris rasio dihitung ulang dari jumlah box.
// Voyage yang sudah punya container movement dilewati.
func SeedCSV(db *gorm.DB, r io.Reader) (SeedResult, error) {
	var result SeedResult

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return result, fmt.Errorf("baca CSV: %w", err)
	}
	if len(records) < 2 {
		return result, errors.New("CSV kosong")
	}

	index := map[string]int{}
	for i, h := range records[0] {
		header := strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
		index[header] = i
		// header persentase di file asli memuat baris kedua berisi rumus
		if strings.HasPrefix(header, colPercentageVessel) {
			index[colPercentageVessel] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return result, fmt.Errorf("kolom %q tidak ditemukan di CSV", col)
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, values := range records[1:] {
			row := csvRow{values: values, index: index}
			if row.get(colVessel) == "" {
				continue
			}
			result.Rows++

			created, err := seedRow(tx, row)
			if err != nil {
				return fmt.Errorf("baris %d: %w", result.Rows+1, err)
			}
			if created {
				result.Created++
			} else {
				result.Skipped++
			}
		}
		return nil
	})
	return result, err
}

func seedRow(tx *gorm.DB, row csvRow) (bool, error) {
	vessel, err := firstOrCreateVessel(tx, row.get(colVessel))
	if err != nil {
		return false, err
	}
	p, err := port.FirstOrCreateByName(tx, row.get(colBerthLoc))
	if err != nil {
		return false, err
	}

	voyageNo := row.get(colVoyageNo)
	voyageYr := row.intVal(colVoyageYr)

	var voyage models.Voyage
	err = tx.Where("vessel_id = ? AND port_id = ? AND voyage_no = ? AND voyage_yr = ?",
		vessel.ID, p.ID, voyageNo, voyageYr).First(&voyage).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		voyage = models.Voyage{
			VesselID:  vessel.ID,
			PortID:    p.ID,
			VoyageNo:  voyageNo,
			VoyageYr:  voyageYr,
			BerthLoc:  p.Name,
			DateBerth: parseDateBerth(row.get(colDateBerth)),
		}
		if err := tx.Create(&voyage).Error; err != nil {
			return false, err
		}
	case err != nil:
		return false, err
	default:
		var count int64
		if err := tx.Model(&models.ContainerMovement{}).Where("voyage_id = ?", voyage.ID).Count(&count).Error; err != nil {
			return false, err
		}
		if count > 0 {
			log.Printf("⚠️ Voyage %s %s/%d sudah punya container movement, skip", vessel.Name, voyageNo, voyageYr)
			return false, nil
		}
	}

	cm := movementFromRow(row)
	cm.VoyageID = voyage.ID
	if err := tx.Create(&cm).Error; err != nil {
		return false, err
	}
	if _, err := services.SavePercentage(tx, &cm); err != nil {
		return false, err
	}
	return true, nil
}

func firstOrCreateVessel(tx *gorm.DB, name string) (*models.Vessel, error) {
	var vessel models.Vessel
	err := tx.Where("name = ?", name).First(&vessel).Error
	if err == nil {
		return &vessel, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	vessel = models.Vessel{Name: name}
	if err := tx.Create(&vessel).Error; err != nil {
		return nil, err
	}
	return &vessel, nil
}

func movementFromRow(row csvRow) models.ContainerMovement {
	return models.ContainerMovement{
		BongkaranEmpty20DC: row.intVal("TOTAL BONGKARAN_EMPTY_20 DC"),
		BongkaranEmpty40HC: row.intVal("TOTAL BONGKARAN_EMPTY_40 HC"),
		BongkaranFull20DC:  row.intVal("TOTAL BONGKARAN_FULL_20 DC"),
		BongkaranFull40HC:  row.intVal("TOTAL BONGKARAN_FULL_40 HC"),

		PengajuanEmpty20DC: row.intVal("PENGAJUAN KE PLANNER_EMPTY_20 DC"),
		PengajuanEmpty40HC: row.intVal("PENGAJUAN KE PLANNER_EMPTY_40 HC"),
		PengajuanFull20DC:  row.intVal("PENGAJUAN KE PLANNER_FULL_20 DC"),
		PengajuanFull40HC:  row.intVal("PENGAJUAN KE PLANNER_FULL_40 HC"),

		AccPengajuanEmpty20DC: row.intVal("ACC PENGAJUAN_EMPTY_20 DC"),
		AccPengajuanEmpty40HC: row.intVal("ACC PENGAJUAN_EMPTY_40 HC"),
		AccPengajuanFull20DC:  row.intVal("ACC PENGAJUAN_FULL_20 DC"),
		AccPengajuanFull40HC:  row.intVal("ACC PENGAJUAN_FULL_40 HC"),

		TotalPengajuan20DC: row.intVal("0_TOTAL_BOX_20 DC"),
		TotalPengajuan40HC: row.intVal("0_40 HC"),
		TeusPengajuan:      row.intVal("0_TEUS"),

		RealisasiMxd20DC: row.intVal("REALISASI ALL DEPO_ALL DEPO_MXD_20 DC"),
		RealisasiMxd40HC: row.intVal("REALISASI ALL DEPO_ALL DEPO_MXD_40 HC"),
		RealisasiFxd20DC: row.intVal("REALISASI ALL DEPO_ALL DEPO_FXD_20 DC"),
		RealisasiFxd40HC: row.intVal("REALISASI ALL DEPO_ALL DEPO_FXD_40 HC"),

		ShipsideYesMxd20DC: row.intVal("SHIPSIDE_YES_MXD_20 DC"),
		ShipsideYesMxd40HC: row.intVal("SHIPSIDE_YES_MXD_40 HC"),
		ShipsideYesFxd20DC: row.intVal("SHIPSIDE_YES_FXD_20 DC"),
		ShipsideYesFxd40HC: row.intVal("SHIPSIDE_YES_FXD_40 HC"),
		ShipsideNoMxd20DC:  row.intVal("SHIPSIDE_NO_MXD_20 DC"),
		ShipsideNoMxd40HC:  row.intVal("SHIPSIDE_NO_MXD_40 HC"),
		ShipsideNoFxd20DC:  row.intVal("SHIPSIDE_NO_FXD_20 DC"),
		ShipsideNoFxd40HC:  row.intVal("SHIPSIDE_NO_FXD_40 HC"),

		TotalRealisasi20DC: row.intVal("0_TOTAL_BOX_20 DC.1"),
		TotalRealisasi40HC: row.intVal("0_40 HC.1"),
		TeusRealisasi:      row.intVal("0_TEUS.1"),

		TurunCY20DC: row.intVal("TURUN CY_BOX_20 DC"),
		TurunCY40HC: row.intVal("TURUN CY_BOX_40 HC"),
		TeusTurunCY: row.intVal("TURUN CY_TEUS"),

		PercentageVessel: row.floatVal(colPercentageVessel),
		Obstacles:        row.get(colObstacles),
	}
}
