package port_test

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipops-app/config"
	"shipops-app/database"
	"shipops-app/master/port"
	"shipops-app/models"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setup(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := database.OpenMemoryDatabase(fmt.Sprintf("port_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	app := fiber.New()
	port.SetupPortRoutes(app, db, func(c *fiber.Ctx) error { return c.Next() })
	return app, db
}

func call(t *testing.T, app *fiber.App, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var raw []byte
	if body != nil {
		var err error
		raw, err = sonic.Marshal(body)
		require.NoError(t, err)
	}
	req := httptest.NewRequest(method, config.MAIN_ROUTES+"/ports"+path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	buf := new(bytes.Buffer)
	_, err = buf.ReadFrom(resp.Body)
	require.NoError(t, err)
	require.NoError(t, sonic.Unmarshal(buf.Bytes(), &out))
	return resp.StatusCode, out
}

func TestPortCRUD(t *testing.T) {
	app, db := setup(t)

	status, body := call(t, app, http.MethodPost, "/", fiber.Map{"name": " Tanjung Priok ", "code": " tpk "})
	require.Equal(t, http.StatusCreated, status, body)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "Tanjung Priok", data["name"])
	assert.Equal(t, "TPK", data["code"])
	id := int(data["id"].(float64))

	status, _ = call(t, app, http.MethodPost, "/", fiber.Map{"name": "Tanjung Priok"})
	assert.Equal(t, http.StatusConflict, status)

	status, _ = call(t, app, http.MethodPost, "/", fiber.Map{"name": ""})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = call(t, app, http.MethodPut, fmt.Sprintf("/%d", id), fiber.Map{"name": "Priok", "code": ""})
	require.Equal(t, http.StatusOK, status, body)
	assert.Nil(t, body["data"].(map[string]interface{})["code"])

	status, _ = call(t, app, http.MethodPut, "/999", fiber.Map{"name": "X"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = call(t, app, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	vessel := models.Vessel{Name: "KM Uji"}
	require.NoError(t, db.Create(&vessel).Error)
	require.NoError(t, db.Create(&models.Voyage{VesselID: vessel.ID, PortID: uint(id), VoyageNo: "1", VoyageYr: 2025}).Error)

	status, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/%d", id), nil)
	assert.Equal(t, http.StatusConflict, status)

	require.NoError(t, db.Where("port_id = ?", id).Delete(&models.Voyage{}).Error)
	status, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/%d", id), nil)
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, app, http.MethodDelete, fmt.Sprintf("/%d", id), nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestSeedPort(t *testing.T) {
	_, db := setup(t)

	require.NoError(t, port.SeedPort(db, []string{"Belawan", " ", "Belawan", "Dumai"}))

	var count int64
	require.NoError(t, db.Model(&port.Port{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	p, err := port.FirstOrCreateByName(db, " Dumai ")
	require.NoError(t, err)
	assert.Equal(t, "Dumai", p.Name)
}
