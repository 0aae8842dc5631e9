package services_test

import (
	"bytes"
	"context"
	"testing"

	"shipops-app/models"
	"shipops-app/repositories"
	"shipops-app/services"
	"shipops-app/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf := &bytes.Buffer{}
	_, err := f.WriteTo(buf)
	require.NoError(t, err)
	return buf
}

func TestWriteMonitoringWorkbook(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedVoyage(t, db, "KM Lestari", "Pontianak")
	svc := services.NewContainerMovementService(db, nil)

	_, err := svc.RecordBongkaran(ctx, models.BongkaranInput{VoyageID: f.Voyage.ID, BongkaranEmpty20DC: 3})
	require.NoError(t, err)

	rows, err := repositories.NewContainerMovementRepository(db).ListAll(ctx, utils.Pagination{SortBy: "created_at", SortOrder: "desc"})
	require.NoError(t, err)
	require.Len(t, rows, 1)

	buf := &bytes.Buffer{}
	require.NoError(t, services.WriteMonitoringWorkbook(buf, rows))

	x, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer x.Close()

	got, err := x.GetRows(services.MonitoringSheet)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Vessel", got[0][0])
	assert.Equal(t, "KM Lestari", got[1][0])
	assert.Equal(t, "1", got[1][1])
	assert.Equal(t, "Pontianak", got[1][3])
	assert.Equal(t, "2025-03-01 08:00", got[1][5])
	assert.Equal(t, "3", got[1][6])
}

func TestImportBongkaran(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	a := seedVoyage(t, db, "KM Satu", "Ambon")
	b := seedVoyage(t, db, "KM Dua", "Ambon")
	svc := services.NewContainerMovementService(db, nil)

	_, err := svc.RecordBongkaran(ctx, models.BongkaranInput{VoyageID: b.Voyage.ID})
	require.NoError(t, err)

	buf := workbook(t, [][]interface{}{
		{"vessel_name", "voyage_no", "voyage_yr", "bongkaran_empty_20dc", "bongkaran_full_40hc"},
		{"KM Satu", "1", 2025, 7, 2},
		{"KM Dua", "1", 2025, 1, 1},
		{"KM Tiga", "1", 2025, 1, 1},
		{"KM Satu", "1", 2025, "x", 1},
	})

	result, err := svc.ImportBongkaran(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 4, result.TotalRows)
	assert.Equal(t, 1, result.SuccessCount)
	assert.Equal(t, 1, result.SkippedCount)
	assert.Equal(t, 2, result.ErrorCount)
	assert.Equal(t, []string{"KM Dua 1/2025"}, result.SkippedItems)

	var cm models.ContainerMovement
	require.NoError(t, db.Where("voyage_id = ?", a.Voyage.ID).First(&cm).Error)
	assert.Equal(t, 7, cm.BongkaranEmpty20DC)
	assert.Equal(t, 2, cm.BongkaranFull40HC)
}

func TestImportBongkaranByVoyageID(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedVoyage(t, db, "KM Empat", "Sorong")
	svc := services.NewContainerMovementService(db, nil)

	buf := workbook(t, [][]interface{}{
		{"voyage_id", "bongkaran_full_20dc"},
		{f.Voyage.ID, 5},
	})
	result, err := svc.ImportBongkaran(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, 1, result.SuccessCount)
}

func TestImportBongkaranRejectsBadFile(t *testing.T) {
	db := newTestDB(t)
	svc := services.NewContainerMovementService(db, nil)

	_, err := svc.ImportBongkaran(context.Background(), bytes.NewBufferString("bukan excel"))
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	buf := workbook(t, [][]interface{}{{"foo", "bar"}, {1, 2}})
	_, err = svc.ImportBongkaran(context.Background(), buf)
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}
