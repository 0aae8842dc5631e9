package services_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"shipops-app/database"
	"shipops-app/master/port"
	"shipops-app/models"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.OpenMemoryDatabase(fmt.Sprintf("services_%s_%d", name, time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	Vessel models.Vessel
	Port   port.Port
	Voyage models.Voyage
}

func seedVoyage(t *testing.T, db *gorm.DB, vesselName, portName string) fixture {
	t.Helper()
	var f fixture
	f.Vessel = models.Vessel{Name: vesselName}
	require.NoError(t, db.Create(&f.Vessel).Error)

	p, err := port.FirstOrCreateByName(db, portName)
	require.NoError(t, err)
	f.Port = *p

	berth := time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)
	f.Voyage = models.Voyage{
		VesselID:  f.Vessel.ID,
		PortID:    f.Port.ID,
		VoyageNo:  "1",
		VoyageYr:  2025,
		BerthLoc:  portName,
		DateBerth: &berth,
	}
	require.NoError(t, db.Create(&f.Voyage).Error)
	return f
}
