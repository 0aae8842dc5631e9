package services_test

import (
	"context"
	"testing"

	"shipops-app/models"
	"shipops-app/services"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) *decimal.Decimal {
	d := decimal.NewFromInt(v)
	return &d
}

func flatRate() *models.CostRate {
	return &models.CostRate{
		ID:              9,
		TdkTL20MT:       decimal.NewFromInt(100),
		TL20MT:          decimal.NewFromInt(10),
		ShipsideYes20MT: decimal.NewFromInt(5),
		ShipsideNo20MT:  decimal.NewFromInt(7),
		TurunCY20MT:     decimal.NewFromInt(3),
		TdkTL40FL:       decimal.NewFromInt(200),
		TL40FL:          decimal.NewFromInt(20),
	}
}

func TestEstimateCost(t *testing.T) {
	cm := &models.ContainerMovement{
		BongkaranEmpty20DC:    10,
		PengajuanEmpty20DC:    8,
		AccPengajuanEmpty20DC: 6,
		RealisasiMxd20DC:      2,
		ShipsideYesMxd20DC:    1,
		ShipsideNoMxd20DC:     1,

		BongkaranFull40HC:    4,
		PengajuanFull40HC:    4,
		AccPengajuanFull40HC: 4,
		RealisasiFxd40HC:     4,
	}

	est := services.EstimateCost(cm, flatRate())

	// 20mt: cost1 = 8x10 + 2x100 = 280, cost2 = 6x10 + 4x100 = 460
	// final = 4x100 + 2x10 + 1x5 + 1x7 + 2x3 = 438
	// 40fl: cost1 = cost2 = final = 4x20 = 80
	assert.True(t, decimal.NewFromInt(360).Equal(est.EstimationCost1), est.EstimationCost1.String())
	assert.True(t, decimal.NewFromInt(540).Equal(est.EstimationCost2), est.EstimationCost2.String())
	assert.True(t, decimal.NewFromInt(518).Equal(est.FinalCost), est.FinalCost.String())

	detail, ok := est.Breakdown["20mt"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 2, detail["tidak_diajukan"])
	assert.Equal(t, 4, detail["tidak_tl"])
	assert.Equal(t, 2, detail["turun_cy"])
	assert.Equal(t, uint(9), est.Breakdown["cost_rate_id"])
}

func TestEstimateCostClampsNegativeCounts(t *testing.T) {
	// pengajuan melebihi bongkaran tidak menghasilkan biaya negatif
	cm := &models.ContainerMovement{
		BongkaranEmpty20DC:    2,
		PengajuanEmpty20DC:    5,
		AccPengajuanEmpty20DC: 5,
	}
	est := services.EstimateCost(cm, flatRate())

	detail := est.Breakdown["20mt"].(map[string]interface{})
	assert.Equal(t, 0, detail["tidak_diajukan"])
	assert.Equal(t, 0, detail["tidak_tl"])
	assert.True(t, decimal.NewFromInt(50).Equal(est.EstimationCost1))
	assert.False(t, est.FinalCost.IsNegative())
}

func TestCostRateLifecycle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedVoyage(t, db, "KM Sinar", "Tanjung Priok")

	costs := services.NewCostService(db)
	movements := services.NewContainerMovementService(db, costs)

	_, err := movements.RecordBongkaran(ctx, models.BongkaranInput{VoyageID: f.Voyage.ID, BongkaranEmpty20DC: 10})
	require.NoError(t, err)

	// belum ada tarif: estimasi kosong tanpa error
	est, err := costs.GetEstimation(ctx, f.Voyage.ID)
	require.NoError(t, err)
	assert.Nil(t, est)

	_, err = costs.CreateRate(ctx, models.CostRateInput{PortID: &f.Port.ID, TdkTL20MT: dec(-1)})
	assert.ErrorIs(t, err, services.ErrInvalidInput)

	rate, err := costs.CreateRate(ctx, models.CostRateInput{PortID: &f.Port.ID, TdkTL20MT: dec(100)})
	require.NoError(t, err)

	// tarif baru langsung menghitung voyage yang sudah ada
	est, err = costs.GetEstimation(ctx, f.Voyage.ID)
	require.NoError(t, err)
	require.NotNil(t, est)
	assert.True(t, decimal.NewFromInt(1000).Equal(est.EstimationCost1), est.EstimationCost1.String())

	_, err = costs.CreateRate(ctx, models.CostRateInput{PortID: &f.Port.ID})
	assert.ErrorIs(t, err, services.ErrConflict)

	_, err = costs.UpdateRate(ctx, rate.ID, models.CostRateInput{TdkTL20MT: dec(50)})
	require.NoError(t, err)
	est, err = costs.GetEstimation(ctx, f.Voyage.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(500).Equal(est.EstimationCost1), est.EstimationCost1.String())

	rates, err := costs.ListRates(ctx, f.Port.ID)
	require.NoError(t, err)
	assert.Len(t, rates, 1)

	require.NoError(t, costs.DeleteRate(ctx, rate.ID))
	est, err = costs.GetEstimation(ctx, f.Voyage.ID)
	require.NoError(t, err)
	assert.Nil(t, est)

	assert.ErrorIs(t, costs.DeleteRate(ctx, rate.ID), services.ErrNotFound)
}

func TestCostRateUnknownPort(t *testing.T) {
	db := newTestDB(t)
	costs := services.NewCostService(db)

	missing := uint(404)
	_, err := costs.CreateRate(context.Background(), models.CostRateInput{PortID: &missing})
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = costs.CreateRate(context.Background(), models.CostRateInput{})
	assert.ErrorIs(t, err, services.ErrInvalidInput)
}

func TestRecomputeWithoutRate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	f := seedVoyage(t, db, "KM Bahari", "Belawan")
	costs := services.NewCostService(db)

	_, err := services.NewContainerMovementService(db, costs).
		RecordBongkaran(ctx, models.BongkaranInput{VoyageID: f.Voyage.ID, BongkaranFull20DC: 1})
	require.NoError(t, err)

	_, err = costs.Recompute(ctx, f.Voyage.ID)
	assert.ErrorIs(t, err, services.ErrCostRateMissing)

	_, err = costs.GetEstimation(ctx, 999)
	assert.ErrorIs(t, err, services.ErrNotFound)
}
