package routes_test

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"shipops-app/database"
	"shipops-app/routes"
	"shipops-app/services"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t     *testing.T
	app   *fiber.App
	token string
}

func newTestApp(t *testing.T) *testClient {
	t.Helper()
	db, err := database.OpenMemoryDatabase(fmt.Sprintf("routes_%d", time.Now().UnixNano()))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	tokens := services.NewTokenService("test-secret", time.Minute, time.Hour, services.NewBlocklist())
	return &testClient{t: t, app: routes.NewApp(routes.NewDeps(db, tokens))}
}

func (c *testClient) do(method, path string, body interface{}) (int, map[string]interface{}, *http.Response) {
	c.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := sonic.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.app.Test(req, -1)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(c.t, sonic.Unmarshal(raw, &out), string(raw))
	}
	return resp.StatusCode, out, resp
}

func (c *testClient) login(email, password string) map[string]interface{} {
	c.t.Helper()
	status, body, _ := c.do(http.MethodPost, "/auth/login", fiber.Map{"email": email, "password": password})
	require.Equal(c.t, http.StatusOK, status, body)
	c.token = body["access_token"].(string)
	return body
}

func id(body map[string]interface{}) uint {
	return uint(body["data"].(map[string]interface{})["id"].(float64))
}

func assertViolation(t *testing.T, body map[string]interface{}, field string, value, limit int) {
	t.Helper()
	violations, ok := body["violations"].([]interface{})
	require.True(t, ok, body)
	require.Len(t, violations, 1)
	v := violations[0].(map[string]interface{})
	assert.Equal(t, field, v["field"])
	assert.Equal(t, float64(value), v["value"])
	assert.Equal(t, float64(limit), v["max"])
}

func TestAuthFlow(t *testing.T) {
	c := newTestApp(t)

	status, body, _ := c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "sari", "email": "sari@example.com", "password": "rahasia"})
	require.Equal(t, http.StatusCreated, status, body)

	status, body, _ = c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "sari", "email": "bukan-email", "password": "1"})
	assert.Equal(t, http.StatusBadRequest, status)
	errs := body["errors"].(map[string]interface{})
	assert.Equal(t, "email", errs["email"])
	assert.Equal(t, "min", errs["password"])

	status, _, _ = c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "sari", "email": "sari@example.com", "password": "rahasia"})
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = c.do(http.MethodPost, "/auth/login", fiber.Map{"email": "sari@example.com", "password": "salah"})
	assert.Equal(t, http.StatusUnauthorized, status)

	loginBody := c.login("sari@example.com", "rahasia")
	assert.Equal(t, "user", loginBody["user_role"])
	refresh := loginBody["refresh_token"].(string)

	status, body, _ = c.do(http.MethodGet, "/auth/me", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "sari", body["data"].(map[string]interface{})["username"])

	// access token tidak diterima di endpoint refresh
	status, _, _ = c.do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	access := c.token
	c.token = refresh
	status, body, _ = c.do(http.MethodPost, "/auth/refresh", nil)
	require.Equal(t, http.StatusOK, status, body)
	assert.NotEmpty(t, body["access_token"])

	c.token = access
	status, _, _ = c.do(http.MethodPost, "/auth/logout", fiber.Map{"refresh_token": refresh})
	require.Equal(t, http.StatusOK, status)

	status, body, _ = c.do(http.MethodGet, "/auth/me", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body["message"], "revoked")

	// refresh token ikut dicabut saat logout
	c.token = refresh
	status, body, _ = c.do(http.MethodPost, "/auth/refresh", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Contains(t, body["message"], "revoked")
}

func TestRefreshFromCookie(t *testing.T) {
	c := newTestApp(t)
	_, _, _ = c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "andi", "email": "andi@example.com", "password": "rahasia"})
	body := c.login("andi@example.com", "rahasia")

	cookie := &http.Cookie{Name: "refresh_token", Value: body["refresh_token"].(string)}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	resp, err := c.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.AddCookie(cookie)
	resp, err = c.app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/auth/refresh", nil)
	req.AddCookie(cookie)
	resp, err = c.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c := newTestApp(t)
	for _, path := range []string{"/vessels", "/voyages", "/ports", "/container_movements", "/cost/cost-rates", "/percentages/summary-by-port"} {
		status, body, _ := c.do(http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnauthorized, status, path)
		assert.Equal(t, false, body["success"], path)
	}

	status, body, _ := c.do(http.MethodGet, "/percentages/ping", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["ok"])

	status, _, resp := c.do(http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, resp.Header.Get(fiber.HeaderXRequestID))
}

func TestContainerMovementFlow(t *testing.T) {
	c := newTestApp(t)
	_, _, _ = c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "ops", "email": "ops@example.com", "password": "rahasia"})
	c.login("ops@example.com", "rahasia")

	status, body, _ := c.do(http.MethodPost, "/vessels/", fiber.Map{"name": "KM Cahaya"})
	require.Equal(t, http.StatusCreated, status, body)
	vesselID := id(body)

	status, _, _ = c.do(http.MethodPost, "/vessels/", fiber.Map{"name": "KM Cahaya"})
	assert.Equal(t, http.StatusConflict, status)

	status, body, _ = c.do(http.MethodPost, "/ports/", fiber.Map{"name": "Tanjung Emas", "code": "smg"})
	require.Equal(t, http.StatusCreated, status, body)
	portID := id(body)
	assert.Equal(t, "SMG", body["data"].(map[string]interface{})["code"])

	status, body, _ = c.do(http.MethodPost, "/voyages/", fiber.Map{
		"vessel_id": vesselID, "port_id": portID, "voyage_yr": 2025, "date_berth": "2025-04-10T09:30",
	})
	require.Equal(t, http.StatusCreated, status, body)
	voyageID := id(body)
	assert.Equal(t, "1", body["data"].(map[string]interface{})["voyage_no"])

	status, body, _ = c.do(http.MethodPost, "/container_movements/bongkaran", fiber.Map{
		"voyage_id": voyageID, "bongkaran_empty_20dc": 10, "bongkaran_full_40hc": 4,
	})
	require.Equal(t, http.StatusCreated, status, body)
	movementID := id(body)

	status, _, _ = c.do(http.MethodPost, "/container_movements/bongkaran", fiber.Map{"voyage_id": voyageID})
	assert.Equal(t, http.StatusBadRequest, status)

	status, _, _ = c.do(http.MethodPost, "/container_movements/pengajuan", fiber.Map{
		"id": movementID, "pengajuan_empty_20dc": 8, "pengajuan_full_40hc": 4,
	})
	require.Equal(t, http.StatusOK, status)

	status, body, _ = c.do(http.MethodPost, "/container_movements/acc_pengajuan", fiber.Map{
		"id": movementID, "acc_pengajuan_empty_20dc": 9,
	})
	require.Equal(t, http.StatusBadRequest, status)
	violations := body["violations"].([]interface{})
	require.Len(t, violations, 1)
	assert.Equal(t, "acc_pengajuan_empty_20dc", violations[0].(map[string]interface{})["field"])

	status, body, _ = c.do(http.MethodPost, "/container_movements/acc_pengajuan", fiber.Map{
		"id": movementID, "acc_pengajuan_empty_20dc": 8, "acc_pengajuan_full_40hc": 2,
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, float64(12), body["data"].(map[string]interface{})["teus_pengajuan"])

	status, body, _ = c.do(http.MethodPost, "/container_movements/realisasi_shipside", fiber.Map{
		"id": movementID, "realisasi_mxd_20dc": 7, "shipside_yes_mxd_20dc": 2,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assertViolation(t, body, "realisasi_shipside_mxd_20dc", 9, 8)

	status, _, _ = c.do(http.MethodPost, "/container_movements/realisasi_shipside", fiber.Map{
		"id": movementID, "realisasi_mxd_20dc": 6, "shipside_yes_mxd_20dc": 2, "realisasi_fxd_40hc": 1, "obstacles": "antri",
	})
	require.Equal(t, http.StatusOK, status)

	// tahap sebelumnya tidak boleh diturunkan di bawah tahap sesudahnya
	status, body, _ = c.do(http.MethodPost, "/container_movements/pengajuan", fiber.Map{
		"id": movementID, "pengajuan_empty_20dc": 5, "pengajuan_full_40hc": 4,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assertViolation(t, body, "acc_pengajuan_empty_20dc", 8, 5)

	status, body, _ = c.do(http.MethodPost, "/container_movements/acc_pengajuan", fiber.Map{
		"id": movementID, "acc_pengajuan_empty_20dc": 7, "acc_pengajuan_full_40hc": 2,
	})
	require.Equal(t, http.StatusBadRequest, status)
	assertViolation(t, body, "realisasi_shipside_mxd_20dc", 8, 7)

	status, body, _ = c.do(http.MethodGet, "/container_movements?q=cahaya&field=vessel_name&per_page=5", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(1), body["total"])
	assert.Equal(t, float64(5), body["per_page"])
	assert.Equal(t, false, body["has_next"])
	row := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "KM Cahaya", row["vessel_name"])
	assert.Equal(t, "Tanjung Emas", row["port_name"])
	assert.Equal(t, "antri", row["obstacles"])

	status, body, _ = c.do(http.MethodGet, "/container_movements?q=tidak-ada", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(0), body["total"])

	// wildcard dari user dicari sebagai karakter biasa
	for _, q := range []string{"%25", "_", "km%25cahaya"} {
		status, body, _ = c.do(http.MethodGet, "/container_movements?q="+q, nil)
		require.Equal(t, http.StatusOK, status)
		assert.Equal(t, float64(0), body["total"], q)
	}

	status, _, _ = c.do(http.MethodGet, fmt.Sprintf("/container_movements/%d", movementID), nil)
	assert.Equal(t, http.StatusOK, status)
	status, _, _ = c.do(http.MethodGet, "/container_movements/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, body, _ = c.do(http.MethodGet, "/container_movements/summary-by-port", nil)
	require.Equal(t, http.StatusOK, status)
	summary := body["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(12), summary["total_pengajuan"])
	assert.Equal(t, float64(10), summary["acc_pengajuan"])
	assert.Equal(t, float64(9), summary["total_realisasi"])

	status, body, _ = c.do(http.MethodGet, fmt.Sprintf("/percentages/by-port/%d", portID), nil)
	require.Equal(t, http.StatusOK, status)
	pct := body["data"].(map[string]interface{})["percentages"].(map[string]interface{})
	assert.Equal(t, 85.71, pct["pengajuan"])
	assert.Equal(t, 83.33, pct["acc"])
	assert.Equal(t, 75.0, pct["realisasi"])

	status, body, _ = c.do(http.MethodGet, fmt.Sprintf("/percentages/container-movements/%d", movementID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, 75.0, body["data"].(map[string]interface{})["realisasi"])

	status, _, resp := c.do(http.MethodGet, "/container_movements/export", nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".xlsx")

	// port masih dipakai voyage
	status, _, _ = c.do(http.MethodDelete, fmt.Sprintf("/ports/%d", portID), nil)
	assert.Equal(t, http.StatusConflict, status)
}

func TestCostEndpoints(t *testing.T) {
	c := newTestApp(t)
	_, _, _ = c.do(http.MethodPost, "/auth/register", fiber.Map{"username": "fin", "email": "fin@example.com", "password": "rahasia"})
	c.login("fin@example.com", "rahasia")

	_, body, _ := c.do(http.MethodPost, "/vessels/", fiber.Map{"name": "KM Damai"})
	vesselID := id(body)
	_, body, _ = c.do(http.MethodPost, "/ports/", fiber.Map{"name": "Balikpapan"})
	portID := id(body)
	_, body, _ = c.do(http.MethodPost, "/voyages/", fiber.Map{"vessel_id": vesselID, "port_id": portID, "voyage_yr": 2025, "date_berth": "2025-06-01"})
	voyageID := id(body)

	status, body, _ := c.do(http.MethodGet, fmt.Sprintf("/cost/cost-estimation/%d", voyageID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Nil(t, body["data"].(map[string]interface{})["final_cost"])

	status, _, _ = c.do(http.MethodGet, "/cost/cost-estimation/9999", nil)
	assert.Equal(t, http.StatusNotFound, status)

	_, _, _ = c.do(http.MethodPost, "/container_movements/bongkaran", fiber.Map{"voyage_id": voyageID, "bongkaran_full_20dc": 3})

	status, body, _ = c.do(http.MethodPost, "/cost/cost-rates", fiber.Map{"port_id": portID, "tdk_tl_20fl": 250})
	require.Equal(t, http.StatusCreated, status, body)
	rateID := id(body)

	status, _, _ = c.do(http.MethodPost, "/cost/cost-rates", fiber.Map{"port_id": portID})
	assert.Equal(t, http.StatusConflict, status)

	status, body, _ = c.do(http.MethodGet, fmt.Sprintf("/cost/cost-estimation/%d", voyageID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(750), body["data"].(map[string]interface{})["estimation_cost1"])

	status, _, _ = c.do(http.MethodPut, fmt.Sprintf("/cost/cost-rates/%d", rateID), fiber.Map{"tdk_tl_20fl": -5})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body, _ = c.do(http.MethodPost, fmt.Sprintf("/cost/cost-estimation/%d", voyageID), nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body, _ = c.do(http.MethodGet, fmt.Sprintf("/cost/cost-rates?port_id=%d", portID), nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["data"], 1)

	status, _, _ = c.do(http.MethodDelete, fmt.Sprintf("/cost/cost-rates/%d", rateID), nil)
	require.Equal(t, http.StatusOK, status)
	status, _, _ = c.do(http.MethodDelete, fmt.Sprintf("/cost/cost-rates/%d", rateID), nil)
	assert.Equal(t, http.StatusNotFound, status)
}
