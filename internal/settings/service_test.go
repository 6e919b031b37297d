package settings

import (
	"errors"
	"testing"
	"time"

	"campusmart/internal/domain"
	"campusmart/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStore struct {
	rows      map[string]*models.SystemSetting
	getErr    error
	updateErr error
	updates   int
}

func newFakeStore(rows ...models.SystemSetting) *fakeStore {
	s := &fakeStore{rows: make(map[string]*models.SystemSetting)}
	for i := range rows {
		r := rows[i]
		s.rows[r.Key] = &r
	}
	return s
}

func (s *fakeStore) GetByKey(key string) (*models.SystemSetting, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	row, ok := s.rows[key]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *row
	return &cp, nil
}

func (s *fakeStore) GetAll() ([]models.SystemSetting, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	out := make([]models.SystemSetting, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	return out, nil
}

func (s *fakeStore) UpdateValue(key, value string, updatedBy uint) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	row, ok := s.rows[key]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	row.Value = value
	row.UpdatedBy = &updatedBy
	s.updates++
	return nil
}

type auditEntry struct {
	adminID    uint
	action     string
	entityType string
	entityID   string
	detail     interface{}
}

type fakeRecorder struct {
	entries []auditEntry
	err     error
}

func (r *fakeRecorder) Record(adminID uint, action, entityType, entityID string, detail interface{}, ip string) error {
	if r.err != nil {
		return r.err
	}
	r.entries = append(r.entries, auditEntry{adminID, action, entityType, entityID, detail})
	return nil
}

func newTestService(store *fakeStore, rec *fakeRecorder) *Service {
	return NewService(store, rec, NewCache(time.Minute))
}

func boolSetting(key, value string) models.SystemSetting {
	return models.SystemSetting{Key: key, Value: value, Type: "boolean"}
}

func TestGetFailsOpenOnMissingKey(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeRecorder{})
	assert.Equal(t, true, svc.GetBool("nope", true))
	assert.Equal(t, false, svc.GetBool("nope", false))
	assert.Equal(t, 20, svc.GetInt("nope", 20))
	assert.Equal(t, "x", svc.GetString("nope", "x"))
}

func TestGetFailsOpenOnStoreError(t *testing.T) {
	store := newFakeStore(boolSetting(domain.SettingAPIEnabled, "false"))
	store.getErr = errors.New("connection refused")
	svc := newTestService(store, &fakeRecorder{})
	// The store says false, but reads must not trust a broken store.
	assert.True(t, svc.GetBool(domain.SettingAPIEnabled, true))
}

func TestGetCachesReads(t *testing.T) {
	store := newFakeStore(boolSetting(domain.SettingMaintenanceMode, "true"))
	svc := newTestService(store, &fakeRecorder{})

	assert.True(t, svc.GetBool(domain.SettingMaintenanceMode, false))
	// Break the store; the cached value keeps serving.
	store.getErr = errors.New("down")
	assert.True(t, svc.GetBool(domain.SettingMaintenanceMode, false))
}

func TestUpdatePersistsAuditsAndInvalidates(t *testing.T) {
	store := newFakeStore(models.SystemSetting{Key: domain.SettingMaxProductsPerUser, Value: "20", Type: "number"})
	rec := &fakeRecorder{}
	svc := newTestService(store, rec)

	// Prime the cache with the old value.
	assert.Equal(t, 20, svc.GetInt(domain.SettingMaxProductsPerUser, 0))

	decoded, err := svc.Update(domain.SettingMaxProductsPerUser, float64(25), 7, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, float64(25), decoded)
	assert.Equal(t, "25", store.rows[domain.SettingMaxProductsPerUser].Value)

	require.Len(t, rec.entries, 1)
	e := rec.entries[0]
	assert.Equal(t, uint(7), e.adminID)
	assert.Equal(t, domain.ActionSettingUpdated, e.action)
	assert.Equal(t, domain.SettingMaxProductsPerUser, e.entityID)

	// The stale cached value must be gone.
	assert.Equal(t, 25, svc.GetInt(domain.SettingMaxProductsPerUser, 0))
}

func TestUpdateUnknownKey(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeRecorder{})
	_, err := svc.Update("ghost", "v", 1, "")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestUpdateInvalidNumber(t *testing.T) {
	store := newFakeStore(models.SystemSetting{Key: "n", Value: "1", Type: "number"})
	svc := newTestService(store, &fakeRecorder{})
	_, err := svc.Update("n", "abc", 1, "")
	assert.ErrorIs(t, err, ErrInvalidValue)
	assert.Equal(t, "1", store.rows["n"].Value)
}

func TestUpdateFailsClosedOnAuditError(t *testing.T) {
	store := newFakeStore(boolSetting(domain.SettingLoginEnabled, "true"))
	rec := &fakeRecorder{err: errors.New("log table full")}
	svc := newTestService(store, rec)

	_, err := svc.Update(domain.SettingLoginEnabled, false, 1, "")
	require.Error(t, err)
	// The store was written before the audit failure; subsequent reads
	// must see the persisted value, not a stale cache entry.
	assert.False(t, svc.GetBool(domain.SettingLoginEnabled, true))
}

func TestUpdateBulkSkipsBadEntries(t *testing.T) {
	store := newFakeStore(
		boolSetting(domain.SettingWishlistEnabled, "true"),
		models.SystemSetting{Key: domain.SettingMaxProductsPerUser, Value: "20", Type: "number"},
	)
	rec := &fakeRecorder{}
	svc := newTestService(store, rec)

	applied, err := svc.UpdateBulk([]BulkEntry{
		{Key: domain.SettingWishlistEnabled, Value: false},
		{Key: "unknown_key", Value: "x"},
		{Key: domain.SettingMaxProductsPerUser, Value: "not a number"},
	}, 3, "")
	require.NoError(t, err)
	require.Len(t, applied, 1)
	assert.Equal(t, domain.SettingWishlistEnabled, applied[0].Key)
	assert.Equal(t, false, applied[0].Value)
	// One audit entry per applied change, none for skips.
	assert.Len(t, rec.entries, 1)
	assert.Equal(t, "20", store.rows[domain.SettingMaxProductsPerUser].Value)
}

func TestUpdateBulkAbortsOnStoreFailure(t *testing.T) {
	store := newFakeStore(boolSetting(domain.SettingWishlistEnabled, "true"))
	store.updateErr = errors.New("deadlock")
	svc := newTestService(store, &fakeRecorder{})

	applied, err := svc.UpdateBulk([]BulkEntry{{Key: domain.SettingWishlistEnabled, Value: false}}, 1, "")
	assert.Error(t, err)
	assert.Empty(t, applied)
}

func TestToggleMaintenance(t *testing.T) {
	store := newFakeStore(boolSetting(domain.SettingMaintenanceMode, "false"))
	rec := &fakeRecorder{}
	svc := newTestService(store, rec)

	on, err := svc.ToggleMaintenance(2, "")
	require.NoError(t, err)
	assert.True(t, on)
	assert.Equal(t, "true", store.rows[domain.SettingMaintenanceMode].Value)

	off, err := svc.ToggleMaintenance(2, "")
	require.NoError(t, err)
	assert.False(t, off)
	assert.Equal(t, "false", store.rows[domain.SettingMaintenanceMode].Value)

	require.Len(t, rec.entries, 2)
	assert.Equal(t, domain.ActionMaintenanceToggled, rec.entries[0].action)
}

func TestToggleMaintenanceMissingRowFails(t *testing.T) {
	store := newFakeStore()
	rec := &fakeRecorder{}
	svc := newTestService(store, rec)
	// The row is always seeded; if it is somehow gone the write must
	// surface the store's not-found instead of silently succeeding.
	_, err := svc.ToggleMaintenance(1, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, rec.entries)
}

func TestEmergencyShutdown(t *testing.T) {
	store := newFakeStore(
		boolSetting(domain.SettingAPIEnabled, "true"),
		boolSetting(domain.SettingMaintenanceMode, "false"),
	)
	rec := &fakeRecorder{}
	svc := newTestService(store, rec)

	require.NoError(t, svc.EmergencyShutdown(9, "10.0.0.2"))
	assert.Equal(t, "false", store.rows[domain.SettingAPIEnabled].Value)
	assert.Equal(t, "true", store.rows[domain.SettingMaintenanceMode].Value)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, domain.ActionEmergencyShutdown, rec.entries[0].action)

	// Idempotent: a second call lands on the same state.
	require.NoError(t, svc.EmergencyShutdown(9, "10.0.0.2"))
	assert.Equal(t, "false", store.rows[domain.SettingAPIEnabled].Value)
	assert.Equal(t, "true", store.rows[domain.SettingMaintenanceMode].Value)
	assert.Len(t, rec.entries, 2)
}

func TestStatusFailsOpen(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("down")
	svc := newTestService(store, &fakeRecorder{})

	st := svc.Status()
	assert.False(t, st.MaintenanceMode)
	assert.True(t, st.APIEnabled)
	assert.True(t, st.RegistrationEnabled)
	assert.True(t, st.LoginEnabled)
	assert.True(t, st.ProductCreationEnabled)
	assert.True(t, st.ProductEditingEnabled)
	assert.True(t, st.WishlistEnabled)
	assert.Empty(t, st.MaintenanceMessage)
}

func TestAllGroupsByCategory(t *testing.T) {
	store := newFakeStore(
		models.SystemSetting{Key: "a", Value: "true", Type: "boolean", Category: "features"},
		models.SystemSetting{Key: "b", Value: "5", Type: "number", Category: "limits"},
		models.SystemSetting{Key: "c", Value: "x", Type: "string"},
	)
	svc := newTestService(store, &fakeRecorder{})

	grouped, err := svc.All()
	require.NoError(t, err)
	assert.Len(t, grouped["features"], 1)
	assert.Len(t, grouped["limits"], 1)
	// Uncategorized rows land under general.
	require.Len(t, grouped[domain.CategoryGeneral], 1)
	assert.Equal(t, "c", grouped[domain.CategoryGeneral][0].Key)
	assert.Equal(t, float64(5), grouped["limits"][0].Value)
}

func TestGetByKeyNotFound(t *testing.T) {
	svc := newTestService(newFakeStore(), &fakeRecorder{})
	_, err := svc.GetByKey("ghost")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}
