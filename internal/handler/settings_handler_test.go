package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusmart/internal/domain"
	"campusmart/internal/models"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type memStore struct {
	rows map[string]*models.SystemSetting
}

func (s *memStore) GetByKey(key string) (*models.SystemSetting, error) {
	row, ok := s.rows[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *memStore) GetAll() ([]models.SystemSetting, error) {
	out := make([]models.SystemSetting, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (s *memStore) UpdateValue(key, value string, updatedBy uint) error {
	row, ok := s.rows[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Value = value
	row.UpdatedBy = &updatedBy
	return nil
}

type memRecorder struct {
	actions []string
}

func (r *memRecorder) Record(adminID uint, action, entityType, entityID string, detail interface{}, ip string) error {
	r.actions = append(r.actions, action)
	return nil
}

func settingsTestRouter(rows ...models.SystemSetting) (*gin.Engine, *memStore, *memRecorder) {
	gin.SetMode(gin.TestMode)
	store := &memStore{rows: map[string]*models.SystemSetting{}}
	for i := range rows {
		r := rows[i]
		store.rows[r.Key] = &r
	}
	rec := &memRecorder{}
	svc := settings.NewService(store, rec, settings.NewCache(time.Minute))
	h := NewSettingsHandler(svc)

	r := gin.New()
	// Mirror production routing: the status probe is ungated, the rest
	// sits behind an identity stub standing in for admin auth.
	adminStub := func(c *gin.Context) { c.Set("admin_id", uint(1)) }
	r.GET("/admin/settings/public/status", h.PublicStatus)
	r.GET("/admin/settings", adminStub, h.List)
	r.GET("/admin/settings/:key", adminStub, h.GetByKey)
	r.PUT("/admin/settings/:key", adminStub, h.Update)
	r.PUT("/admin/settings/bulk", adminStub, h.UpdateBulk)
	r.POST("/admin/settings/maintenance/toggle", adminStub, h.ToggleMaintenance)
	r.POST("/admin/settings/emergency/shutdown", adminStub, h.EmergencyShutdown)
	return r, store, rec
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func defaultRows() []models.SystemSetting {
	return []models.SystemSetting{
		{Key: domain.SettingMaintenanceMode, Value: "false", Type: "boolean", Category: "system"},
		{Key: domain.SettingMaintenanceMessage, Value: "brb", Type: "string", Category: "system"},
		{Key: domain.SettingAPIEnabled, Value: "true", Type: "boolean", Category: "system"},
		{Key: domain.SettingRegistrationEnabled, Value: "true", Type: "boolean", Category: "features"},
		{Key: domain.SettingLoginEnabled, Value: "true", Type: "boolean", Category: "features"},
		{Key: domain.SettingProductCreationEnabled, Value: "true", Type: "boolean", Category: "features"},
		{Key: domain.SettingProductEditingEnabled, Value: "true", Type: "boolean", Category: "features"},
		{Key: domain.SettingWishlistEnabled, Value: "true", Type: "boolean", Category: "features"},
		{Key: domain.SettingMaxProductsPerUser, Value: "20", Type: "number", Category: "limits"},
	}
}

func TestPublicStatusShape(t *testing.T) {
	r, _, _ := settingsTestRouter(defaultRows()...)
	w := doJSON(r, http.MethodGet, "/admin/settings/public/status", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	for _, key := range []string{
		"maintenance_mode", "maintenance_message", "registration_enabled",
		"login_enabled", "product_creation_enabled", "product_editing_enabled",
		"wishlist_enabled", "api_enabled",
	} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, false, got["maintenance_mode"])
	assert.Equal(t, "brb", got["maintenance_message"])
	assert.Equal(t, true, got["api_enabled"])
}

func TestListGroupsByCategory(t *testing.T) {
	r, _, _ := settingsTestRouter(defaultRows()...)
	w := doJSON(r, http.MethodGet, "/admin/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Settings map[string][]map[string]interface{} `json:"settings"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got.Settings["system"], 3)
	assert.Len(t, got.Settings["features"], 5)
	assert.Len(t, got.Settings["limits"], 1)
}

func TestGetByKey(t *testing.T) {
	r, _, _ := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodGet, "/admin/settings/max_products_per_user", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, float64(20), got["value"])
	assert.Equal(t, "number", got["type"])

	w = doJSON(r, http.MethodGet, "/admin/settings/no_such_key", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateSetting(t *testing.T) {
	r, store, rec := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodPut, "/admin/settings/max_products_per_user", gin.H{"value": 30})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "30", store.rows[domain.SettingMaxProductsPerUser].Value)
	assert.Equal(t, []string{domain.ActionSettingUpdated}, rec.actions)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, domain.SettingMaxProductsPerUser, got["key"])
	assert.Equal(t, float64(30), got["value"])
	assert.NotEmpty(t, got["message"])
}

func TestUpdateSettingErrors(t *testing.T) {
	r, _, _ := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodPut, "/admin/settings/no_such_key", gin.H{"value": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(r, http.MethodPut, "/admin/settings/max_products_per_user", gin.H{"value": "abc"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateBulkSkipsInvalid(t *testing.T) {
	r, store, _ := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodPut, "/admin/settings/bulk", gin.H{
		"settings": []gin.H{
			{"key": domain.SettingWishlistEnabled, "value": false},
			{"key": "ghost", "value": 1},
			{"key": domain.SettingMaxProductsPerUser, "value": "oops"},
		},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var got struct {
		Message string                   `json:"message"`
		Updates []map[string]interface{} `json:"updates"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Updates, 1)
	assert.Equal(t, domain.SettingWishlistEnabled, got.Updates[0]["key"])
	assert.Equal(t, false, got.Updates[0]["value"])
	assert.NotEmpty(t, got.Message)
	assert.Equal(t, "false", store.rows[domain.SettingWishlistEnabled].Value)
	assert.Equal(t, "20", store.rows[domain.SettingMaxProductsPerUser].Value)
}

func TestToggleMaintenanceEndpoint(t *testing.T) {
	r, store, _ := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodPost, "/admin/settings/maintenance/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, true, got["maintenance_mode"])
	assert.NotEmpty(t, got["message"])
	assert.Equal(t, "true", store.rows[domain.SettingMaintenanceMode].Value)

	w = doJSON(r, http.MethodPost, "/admin/settings/maintenance/toggle", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["maintenance_mode"])
}

func TestEmergencyShutdownEndpoint(t *testing.T) {
	r, store, rec := settingsTestRouter(defaultRows()...)

	w := doJSON(r, http.MethodPost, "/admin/settings/emergency/shutdown", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["api_enabled"])
	assert.Equal(t, true, got["maintenance_mode"])
	assert.NotEmpty(t, got["message"])
	assert.Equal(t, "false", store.rows[domain.SettingAPIEnabled].Value)
	assert.Equal(t, "true", store.rows[domain.SettingMaintenanceMode].Value)
	assert.Equal(t, []string{domain.ActionEmergencyShutdown}, rec.actions)

	// Status probe reflects the shutdown immediately.
	w = doJSON(r, http.MethodGet, "/admin/settings/public/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, false, got["api_enabled"])
	assert.Equal(t, true, got["maintenance_mode"])
}
