package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"shipops-app/models"
	"shipops-app/repositories"

	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const MonitoringSheet = "Monitoring"

type monitoringColumn struct {
	header string
	value  func(r *repositories.MovementRow) interface{}
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

var monitoringColumns = []monitoringColumn{
	{"Vessel", func(r *repositories.MovementRow) interface{} { return strOrEmpty(r.VesselName) }},
	{"Voyage No", func(r *repositories.MovementRow) interface{} { return strOrEmpty(r.VoyageNumber) }},
	{"Voyage Yr", func(r *repositories.MovementRow) interface{} {
		if r.VoyageYear == nil {
			return ""
		}
		return *r.VoyageYear
	}},
	{"Port", func(r *repositories.MovementRow) interface{} { return strOrEmpty(r.PortName) }},
	{"Berth Location", func(r *repositories.MovementRow) interface{} { return strOrEmpty(r.VoyageBerthLoc) }},
	{"Date Berth", func(r *repositories.MovementRow) interface{} {
		if r.VoyageDateBerth == nil {
			return ""
		}
		return r.VoyageDateBerth.Format("2006-01-02 15:04")
	}},
	{"Bongkaran Empty 20DC", func(r *repositories.MovementRow) interface{} { return r.BongkaranEmpty20DC }},
	{"Bongkaran Empty 40HC", func(r *repositories.MovementRow) interface{} { return r.BongkaranEmpty40HC }},
	{"Bongkaran Full 20DC", func(r *repositories.MovementRow) interface{} { return r.BongkaranFull20DC }},
	{"Bongkaran Full 40HC", func(r *repositories.MovementRow) interface{} { return r.BongkaranFull40HC }},
	{"Pengajuan Empty 20DC", func(r *repositories.MovementRow) interface{} { return r.PengajuanEmpty20DC }},
	{"Pengajuan Empty 40HC", func(r *repositories.MovementRow) interface{} { return r.PengajuanEmpty40HC }},
	{"Pengajuan Full 20DC", func(r *repositories.MovementRow) interface{} { return r.PengajuanFull20DC }},
	{"Pengajuan Full 40HC", func(r *repositories.MovementRow) interface{} { return r.PengajuanFull40HC }},
	{"ACC Empty 20DC", func(r *repositories.MovementRow) interface{} { return r.AccPengajuanEmpty20DC }},
	{"ACC Empty 40HC", func(r *repositories.MovementRow) interface{} { return r.AccPengajuanEmpty40HC }},
	{"ACC Full 20DC", func(r *repositories.MovementRow) interface{} { return r.AccPengajuanFull20DC }},
	{"ACC Full 40HC", func(r *repositories.MovementRow) interface{} { return r.AccPengajuanFull40HC }},
	{"Total Pengajuan 20DC", func(r *repositories.MovementRow) interface{} { return r.TotalPengajuan20DC }},
	{"Total Pengajuan 40HC", func(r *repositories.MovementRow) interface{} { return r.TotalPengajuan40HC }},
	{"TEUs Pengajuan", func(r *repositories.MovementRow) interface{} { return r.TeusPengajuan }},
	{"Realisasi MXD 20DC", func(r *repositories.MovementRow) interface{} { return r.RealisasiMxd20DC }},
	{"Realisasi MXD 40HC", func(r *repositories.MovementRow) interface{} { return r.RealisasiMxd40HC }},
	{"Realisasi FXD 20DC", func(r *repositories.MovementRow) interface{} { return r.RealisasiFxd20DC }},
	{"Realisasi FXD 40HC", func(r *repositories.MovementRow) interface{} { return r.RealisasiFxd40HC }},
	{"Shipside Yes MXD 20DC", func(r *repositories.MovementRow) interface{} { return r.ShipsideYesMxd20DC }},
	{"Shipside Yes MXD 40HC", func(r *repositories.MovementRow) interface{} { return r.ShipsideYesMxd40HC }},
	{"Shipside Yes FXD 20DC", func(r *repositories.MovementRow) interface{} { return r.ShipsideYesFxd20DC }},
	{"Shipside Yes FXD 40HC", func(r *repositories.MovementRow) interface{} { return r.ShipsideYesFxd40HC }},
	{"Shipside No MXD 20DC", func(r *repositories.MovementRow) interface{} { return r.ShipsideNoMxd20DC }},
	{"Shipside No MXD 40HC", func(r *repositories.MovementRow) interface{} { return r.ShipsideNoMxd40HC }},
	{"Shipside No FXD 20DC", func(r *repositories.MovementRow) interface{} { return r.ShipsideNoFxd20DC }},
	{"Shipside No FXD 40HC", func(r *repositories.MovementRow) interface{} { return r.ShipsideNoFxd40HC }},
	{"Total Realisasi 20DC", func(r *repositories.MovementRow) interface{} { return r.TotalRealisasi20DC }},
	{"Total Realisasi 40HC", func(r *repositories.MovementRow) interface{} { return r.TotalRealisasi40HC }},
	{"TEUs Realisasi", func(r *repositories.MovementRow) interface{} { return r.TeusRealisasi }},
	{"Turun CY 20DC", func(r *repositories.MovementRow) interface{} { return r.TurunCY20DC }},
	{"Turun CY 40HC", func(r *repositories.MovementRow) interface{} { return r.TurunCY40HC }},
	{"TEUs Turun CY", func(r *repositories.MovementRow) interface{} { return r.TeusTurunCY }},
	{"Percentage Vessel", func(r *repositories.MovementRow) interface{} { return r.PercentageVessel }},
	{"Obstacles", func(r *repositories.MovementRow) interface{} { return r.Obstacles }},
}

// WriteMonitoringWorkbook menulis tabel monitoring ke xlsx
func WriteMonitoringWorkbook(w io.Writer, rows []repositories.MovementRow) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", MonitoringSheet); err != nil {
		return err
	}

	for col, c := range monitoringColumns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(MonitoringSheet, cell, c.header); err != nil {
			return err
		}
	}

	for i := range rows {
		for col, c := range monitoringColumns {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(MonitoringSheet, cell, c.value(&rows[i])); err != nil {
				return err
			}
		}
	}

	if err := f.SetPanes(MonitoringSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return err
	}

	_, err := f.WriteTo(w)
	return err
}

type UploadResult struct {
	TotalRows     int      `json:"total_rows"`
	SuccessCount  int      `json:"success_count"`
	SkippedCount  int      `json:"skipped_count"`
	ErrorCount    int      `json:"error_count"`
	SkippedItems  []string `json:"skipped_items"`
	ErrorMessages []string `json:"error_messages"`
}

var bongkaranCountHeaders = []string{
	"bongkaran_empty_20dc",
	"bongkaran_empty_40hc",
	"bongkaran_full_20dc",
	"bongkaran_full_40hc",
}

// ImportBongkaran membaca sheet pertama. Kolom dikenali dari header:
// voyage_id, atau vessel_name + voyage_no + voyage_yr, lalu empat kolom bongkaran_*.
// Setiap baris disimpan dalam transaksinya sendiri.
func (s *ContainerMovementService) ImportBongkaran(ctx context.Context, r io.Reader) (*UploadResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: file excel tidak bisa dibaca", ErrInvalidInput)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: file excel tidak punya sheet", ErrInvalidInput)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: file excel harus berisi header dan minimal satu baris data", ErrInvalidInput)
	}

	index := map[string]int{}
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	_, hasVoyageID := index["voyage_id"]
	_, hasVessel := index["vessel_name"]
	if !hasVoyageID && !hasVessel {
		return nil, fmt.Errorf("%w: header voyage_id atau vessel_name wajib ada", ErrInvalidInput)
	}

	cell := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	result := &UploadResult{
		TotalRows:     len(rows) - 1,
		SkippedItems:  []string{},
		ErrorMessages: []string{},
	}

	for i, row := range rows[1:] {
		rowNum := i + 2

		if len(strings.TrimSpace(strings.Join(row, ""))) == 0 {
			continue
		}

		voyageID, label, err := s.resolveVoyage(ctx, row, cell, hasVoyageID)
		if err != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: %v", rowNum, err))
			continue
		}

		counts := make([]int, len(bongkaranCountHeaders))
		var parseErr error
		for j, h := range bongkaranCountHeaders {
			raw := cell(row, h)
			if raw == "" {
				continue
			}
			n, err := strconv.Atoi(raw)
			if err != nil || n < 0 {
				parseErr = fmt.Errorf("nilai %s tidak valid '%s'", h, raw)
				break
			}
			counts[j] = n
		}
		if parseErr != nil {
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: %v", rowNum, parseErr))
			continue
		}

		_, err = s.RecordBongkaran(ctx, models.BongkaranInput{
			VoyageID:           voyageID,
			BongkaranEmpty20DC: counts[0],
			BongkaranEmpty40HC: counts[1],
			BongkaranFull20DC:  counts[2],
			BongkaranFull40HC:  counts[3],
		})
		switch {
		case err == nil:
			result.SuccessCount++
		case errors.Is(err, ErrMovementExists):
			result.SkippedCount++
			result.SkippedItems = append(result.SkippedItems, label)
		default:
			result.ErrorCount++
			result.ErrorMessages = append(result.ErrorMessages, fmt.Sprintf("Row %d: %v", rowNum, err))
		}
	}

	return result, nil
}

func (s *ContainerMovementService) resolveVoyage(ctx context.Context, row []string, cell func([]string, string) string, byID bool) (uint, string, error) {
	if byID {
		raw := cell(row, "voyage_id")
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || id == 0 {
			return 0, "", fmt.Errorf("voyage_id tidak valid '%s'", raw)
		}
		return uint(id), "voyage " + raw, nil
	}

	vesselName := cell(row, "vessel_name")
	voyageNo := cell(row, "voyage_no")
	year, err := strconv.Atoi(cell(row, "voyage_yr"))
	if vesselName == "" || voyageNo == "" || err != nil {
		return 0, "", errors.New("vessel_name, voyage_no dan voyage_yr wajib diisi")
	}

	var voyage models.Voyage
	err = s.DB.WithContext(ctx).
		Joins("JOIN vessels ON vessels.id = voyages.vessel_id").
		Where("vessels.name = ? AND voyages.voyage_no = ? AND voyages.voyage_yr = ?", vesselName, voyageNo, year).
		First(&voyage).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, "", fmt.Errorf("voyage %s %s/%d tidak ditemukan", vesselName, voyageNo, year)
		}
		return 0, "", err
	}
	return voyage.ID, fmt.Sprintf("%s %s/%d", vesselName, voyageNo, year), nil
}
