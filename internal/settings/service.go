package settings

import (
	"errors"
	"fmt"
	"time"

	"campusmart/internal/domain"
	"campusmart/internal/models"

	"gorm.io/gorm"
)

var ErrSettingNotFound = errors.New("setting not found")

// Store is the persistence surface the service needs. Implemented by
// repository.SettingRepository; tests substitute a fake.
type Store interface {
	GetByKey(key string) (*models.SystemSetting, error)
	GetAll() ([]models.SystemSetting, error)
	UpdateValue(key, value string, updatedBy uint) error
}

// Recorder writes the activity log entry for a settings mutation.
// Implemented by repository.ActivityLogRepository.
type Recorder interface {
	Record(adminID uint, action, entityType, entityID string, detail interface{}, ip string) error
}

// Service is the single path for typed settings access. Reads used by
// public feature checks go through Get and fail open; administrative
// writes fail closed and keep the audit trail consistent with the
// store.
type Service struct {
	store Store
	audit Recorder
	cache *Cache
}

func NewService(store Store, audit Recorder, cache *Cache) *Service {
	return &Service{store: store, audit: audit, cache: cache}
}

// View is the admin-facing shape of one setting with its decoded value.
type View struct {
	ID          uint        `json:"id"`
	Key         string      `json:"key"`
	Value       interface{} `json:"value"`
	Type        string      `json:"type"`
	Description string      `json:"description"`
	Category    string      `json:"category"`
	UpdatedAt   time.Time   `json:"updatedAt"`
	UpdatedBy   *uint       `json:"updatedBy"`
}

func viewOf(row *models.SystemSetting) *View {
	return &View{
		ID:          row.ID,
		Key:         row.Key,
		Value:       Decode(ParseType(row.Type), row.Value),
		Type:        row.Type,
		Description: row.Description,
		Category:    row.Category,
		UpdatedAt:   row.UpdatedAt,
		UpdatedBy:   row.UpdatedBy,
	}
}

// Get returns the decoded value for key, or def when the key is not
// cached and cannot be read. Any failure — missing row, unreachable
// store — collapses to def: this path backs public feature checks and
// must never propagate an error.
func (s *Service) Get(key string, def interface{}) interface{} {
	if v, ok := s.cache.Get(key); ok {
		return v
	}
	row, err := s.store.GetByKey(key)
	if err != nil {
		return def
	}
	v := Decode(ParseType(row.Type), row.Value)
	s.cache.Put(key, v)
	return v
}

func (s *Service) GetBool(key string, def bool) bool {
	if b, ok := s.Get(key, def).(bool); ok {
		return b
	}
	return def
}

func (s *Service) GetInt(key string, def int) int {
	switch v := s.Get(key, def).(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return def
}

func (s *Service) GetString(key, def string) string {
	if v, ok := s.Get(key, def).(string); ok {
		return v
	}
	return def
}

// All returns every setting decoded and grouped by category. Admin
// console reads always go live, bypassing the cache.
func (s *Service) All() (map[string][]*View, error) {
	rows, err := s.store.GetAll()
	if err != nil {
		return nil, err
	}
	grouped := make(map[string][]*View)
	for i := range rows {
		cat := rows[i].Category
		if cat == "" {
			cat = domain.CategoryGeneral
		}
		grouped[cat] = append(grouped[cat], viewOf(&rows[i]))
	}
	return grouped, nil
}

// GetByKey returns one setting live from the store.
func (s *Service) GetByKey(key string) (*View, error) {
	row, err := s.store.GetByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return nil, err
	}
	return viewOf(row), nil
}

// Update coerces raw into the setting's declared type, persists it,
// records the mutation, and invalidates the cache. Returns the decoded
// value. Unknown keys fail with ErrSettingNotFound; a failed audit
// write aborts the mutation.
func (s *Service) Update(key string, raw interface{}, adminID uint, ip string) (interface{}, error) {
	row, err := s.store.GetByKey(key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
		}
		return nil, err
	}
	stored, decoded, err := Coerce(ParseType(row.Type), raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	if err := s.store.UpdateValue(key, stored, adminID); err != nil {
		return nil, err
	}
	// The store changed; new reads must not see the old value even if
	// the audit write below fails.
	defer s.cache.InvalidateAll()
	if err := s.audit.Record(adminID, domain.ActionSettingUpdated, "setting", key, map[string]interface{}{
		"key": key,
		"old": row.Value,
		"new": stored,
	}, ip); err != nil {
		return nil, err
	}
	return decoded, nil
}

// BulkEntry is one key/value pair of a bulk update request.
type BulkEntry struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// Applied reports one successfully persisted bulk entry.
type Applied struct {
	Key   string      `json:"key"`
	Value interface{} `json:"value"`
}

// UpdateBulk applies each entry with Update's coercion rules. Entries
// with unknown keys or unparseable numbers are skipped rather than
// aborting the batch; admins commonly submit a whole form where only
// some fields changed validity. The cache is invalidated once at the
// end. Store or audit failures still abort: partial tolerance covers
// bad input, not a broken backend.
func (s *Service) UpdateBulk(entries []BulkEntry, adminID uint, ip string) ([]Applied, error) {
	applied := make([]Applied, 0, len(entries))
	defer func() {
		if len(applied) > 0 {
			s.cache.InvalidateAll()
		}
	}()
	for _, e := range entries {
		row, err := s.store.GetByKey(e.Key)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return applied, err
		}
		stored, decoded, err := Coerce(ParseType(row.Type), e.Value)
		if err != nil {
			continue
		}
		if err := s.store.UpdateValue(e.Key, stored, adminID); err != nil {
			return applied, err
		}
		if err := s.audit.Record(adminID, domain.ActionSettingUpdated, "setting", e.Key, map[string]interface{}{
			"key": e.Key,
			"old": row.Value,
			"new": stored,
		}, ip); err != nil {
			return applied, err
		}
		applied = append(applied, Applied{Key: e.Key, Value: decoded})
	}
	return applied, nil
}

// ToggleMaintenance flips maintenance_mode and returns the new state.
// The current state is read through the fail-open path; the write
// itself fails if the seeded row is gone.
func (s *Service) ToggleMaintenance(adminID uint, ip string) (bool, error) {
	current := s.GetBool(domain.SettingMaintenanceMode, false)
	next := !current
	if err := s.store.UpdateValue(domain.SettingMaintenanceMode, boolString(next), adminID); err != nil {
		return current, err
	}
	defer s.cache.InvalidateAll()
	if err := s.audit.Record(adminID, domain.ActionMaintenanceToggled, "setting", domain.SettingMaintenanceMode, map[string]interface{}{
		"from": current,
		"to":   next,
	}, ip); err != nil {
		return current, err
	}
	return next, nil
}

// EmergencyShutdown unconditionally disables the public API and turns
// maintenance mode on. It does not read prior state, so repeated calls
// are idempotent beyond the extra writes and log entries.
func (s *Service) EmergencyShutdown(adminID uint, ip string) error {
	if err := s.store.UpdateValue(domain.SettingAPIEnabled, "false", adminID); err != nil {
		return err
	}
	if err := s.store.UpdateValue(domain.SettingMaintenanceMode, "true", adminID); err != nil {
		return err
	}
	defer s.cache.InvalidateAll()
	return s.audit.Record(adminID, domain.ActionEmergencyShutdown, "settings", "", map[string]interface{}{
		"api_enabled":      false,
		"maintenance_mode": true,
	}, ip)
}

// StatusFlags is the aggregate public probe payload.
type StatusFlags struct {
	MaintenanceMode        bool   `json:"maintenance_mode"`
	MaintenanceMessage     string `json:"maintenance_message"`
	RegistrationEnabled    bool   `json:"registration_enabled"`
	LoginEnabled           bool   `json:"login_enabled"`
	ProductCreationEnabled bool   `json:"product_creation_enabled"`
	ProductEditingEnabled  bool   `json:"product_editing_enabled"`
	WishlistEnabled        bool   `json:"wishlist_enabled"`
	APIEnabled             bool   `json:"api_enabled"`
}

// Status resolves every public flag through the fail-open path: on any
// internal error the probe reports everything enabled and no
// maintenance, so an outage of the settings subsystem degrades to
// "everything works".
func (s *Service) Status() StatusFlags {
	return StatusFlags{
		MaintenanceMode:        s.GetBool(domain.SettingMaintenanceMode, false),
		MaintenanceMessage:     s.GetString(domain.SettingMaintenanceMessage, ""),
		RegistrationEnabled:    s.GetBool(domain.SettingRegistrationEnabled, true),
		LoginEnabled:           s.GetBool(domain.SettingLoginEnabled, true),
		ProductCreationEnabled: s.GetBool(domain.SettingProductCreationEnabled, true),
		ProductEditingEnabled:  s.GetBool(domain.SettingProductEditingEnabled, true),
		WishlistEnabled:        s.GetBool(domain.SettingWishlistEnabled, true),
		APIEnabled:             s.GetBool(domain.SettingAPIEnabled, true),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
