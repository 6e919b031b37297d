package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"campusmart/internal/domain"
	"campusmart/internal/models"
	"campusmart/internal/settings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type stubStore struct {
	rows map[string]*models.SystemSetting
	err  error
}

func (s *stubStore) GetByKey(key string) (*models.SystemSetting, error) {
	if s.err != nil {
		return nil, s.err
	}
	row, ok := s.rows[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return row, nil
}

func (s *stubStore) GetAll() ([]models.SystemSetting, error) { return nil, s.err }

func (s *stubStore) UpdateValue(key, value string, updatedBy uint) error { return nil }

type noopRecorder struct{}

func (noopRecorder) Record(adminID uint, action, entityType, entityID string, detail interface{}, ip string) error {
	return nil
}

func gateService(rows map[string]string) *settings.Service {
	store := &stubStore{rows: map[string]*models.SystemSetting{}}
	for k, v := range rows {
		typ := "boolean"
		if k == domain.SettingMaintenanceMessage {
			typ = "string"
		}
		store.rows[k] = &models.SystemSetting{Key: k, Value: v, Type: typ}
	}
	return settings.NewService(store, noopRecorder{}, settings.NewCache(time.Minute))
}

func serve(mw gin.HandlerFunc) *httptest.ResponseRecorder {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/probe", mw, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAPIEnabledBlocksWhenDisabled(t *testing.T) {
	svc := gateService(map[string]string{domain.SettingAPIEnabled: "false"})
	w := serve(APIEnabled(svc))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "api disabled")
}

func TestAPIEnabledPassesWhenEnabled(t *testing.T) {
	svc := gateService(map[string]string{domain.SettingAPIEnabled: "true"})
	w := serve(APIEnabled(svc))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAPIEnabledFailsOpenWhenStoreDown(t *testing.T) {
	store := &stubStore{err: errors.New("connection refused")}
	svc := settings.NewService(store, noopRecorder{}, settings.NewCache(time.Minute))
	w := serve(APIEnabled(svc))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceBlocksWithMessage(t *testing.T) {
	svc := gateService(map[string]string{
		domain.SettingMaintenanceMode:    "true",
		domain.SettingMaintenanceMessage: "back at noon",
	})
	w := serve(Maintenance(svc))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "back at noon")
}

func TestMaintenancePassesWhenOff(t *testing.T) {
	svc := gateService(map[string]string{domain.SettingMaintenanceMode: "false"})
	w := serve(Maintenance(svc))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMaintenanceFailsOpenOnMissingRow(t *testing.T) {
	svc := gateService(nil)
	w := serve(Maintenance(svc))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireFeatureBlocksDisabledFlag(t *testing.T) {
	svc := gateService(map[string]string{domain.SettingWishlistEnabled: "false"})
	w := serve(RequireFeature(svc, domain.SettingWishlistEnabled))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), domain.SettingWishlistEnabled)
}

func TestRequireFeatureFailsOpenOnUnknownFlag(t *testing.T) {
	svc := gateService(nil)
	w := serve(RequireFeature(svc, "some_future_flag"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdminRoleOrdering(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := []struct {
		role    string
		minRole string
		code    int
	}{
		{domain.RoleModerator, domain.RoleModerator, http.StatusOK},
		{domain.RoleModerator, domain.RoleAdmin, http.StatusForbidden},
		{domain.RoleAdmin, domain.RoleModerator, http.StatusOK},
		{domain.RoleAdmin, domain.RoleSuperAdmin, http.StatusForbidden},
		{domain.RoleSuperAdmin, domain.RoleSuperAdmin, http.StatusOK},
	}
	for _, tc := range cases {
		r := gin.New()
		r.GET("/x", func(c *gin.Context) {
			c.Set("admin_role", tc.role)
		}, RequireAdminRole(tc.minRole), func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"ok": true})
		})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))
		assert.Equal(t, tc.code, w.Code, "role %s min %s", tc.role, tc.minRole)
	}
}
