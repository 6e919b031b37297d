package repository

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrUnknownTable  = errors.New("unknown table")
	ErrUnknownColumn = errors.New("unknown sort column")
)

// TableSpec describes one table the browser may expose. Logical names
// map to structural identifiers through this fixed table; no
// user-supplied identifier is ever interpolated into SQL, validated or
// not.
type TableSpec struct {
	Name        string   `json:"name"`
	Table       string   `json:"-"`
	Columns     []string `json:"columns"`
	DefaultSort string   `json:"-"`
	SoftDelete  bool     `json:"-"`
}

// browsableTables is the full allow-list. Credential columns are
// deliberately absent from every spec.
var browsableTables = map[string]TableSpec{
	"users": {
		Name: "users", Table: "users", SoftDelete: true, DefaultSort: "id",
		Columns: []string{"id", "username", "email", "campus", "course", "year_of_study", "is_active", "is_suspended", "last_login_at", "created_at", "updated_at"},
	},
	"products": {
		Name: "products", Table: "products", SoftDelete: true, DefaultSort: "id",
		Columns: []string{"id", "user_id", "title", "category", "price_cents", "condition", "status", "is_active", "is_flagged", "view_count", "created_at", "updated_at"},
	},
	"wishlist_items": {
		Name: "wishlist_items", Table: "wishlist_items", SoftDelete: true, DefaultSort: "id",
		Columns: []string{"id", "user_id", "product_id", "created_at"},
	},
	"reports": {
		Name: "reports", Table: "reports", SoftDelete: true, DefaultSort: "id",
		Columns: []string{"id", "reporter_id", "product_id", "reported_user_id", "reason", "status", "created_at", "updated_at"},
	},
	"admin_accounts": {
		Name: "admin_accounts", Table: "admin_accounts", SoftDelete: true, DefaultSort: "id",
		Columns: []string{"id", "email", "full_name", "role", "is_active", "last_login_at", "created_at"},
	},
	"activity_logs": {
		Name: "activity_logs", Table: "activity_logs", DefaultSort: "created_at",
		Columns: []string{"id", "admin_id", "action", "entity_type", "entity_id", "detail", "ip", "created_at"},
	},
	"system_settings": {
		Name: "system_settings", Table: "system_settings", DefaultSort: "key",
		Columns: []string{"id", "key", "value", "type", "category", "description", "updated_by", "updated_at"},
	},
}

// ResolveTable looks a logical table name up in the allow-list.
func ResolveTable(name string) (TableSpec, error) {
	spec, ok := browsableTables[strings.ToLower(name)]
	if !ok {
		return TableSpec{}, fmt.Errorf("%w: %s", ErrUnknownTable, name)
	}
	return spec, nil
}

// BrowsableTables lists every exposed spec, sorted by name.
func BrowsableTables() []TableSpec {
	out := make([]TableSpec, 0, len(browsableTables))
	for _, spec := range browsableTables {
		out = append(out, spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// OrderClause validates a requested sort column and direction against
// the spec and returns a safe ORDER BY clause.
func (t TableSpec) OrderClause(column, order string) (string, error) {
	if column == "" {
		column = t.DefaultSort
	}
	found := false
	for _, c := range t.Columns {
		if c == column {
			found = true
			break
		}
	}
	if !found {
		return "", fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	dir := "ASC"
	if strings.EqualFold(order, "desc") {
		dir = "DESC"
	}
	return fmt.Sprintf("`%s` %s", column, dir), nil
}

// BrowserRepository pages through whitelisted tables as raw rows for
// the admin database inspector.
type BrowserRepository struct {
	db *gorm.DB
}

func NewBrowserRepository(db *gorm.DB) *BrowserRepository {
	return &BrowserRepository{db: db}
}

func (r *BrowserRepository) Browse(spec TableSpec, sortColumn, order string, page, limit int) ([]map[string]interface{}, int64, error) {
	orderBy, err := spec.OrderClause(sortColumn, order)
	if err != nil {
		return nil, 0, err
	}
	cols := make([]string, len(spec.Columns))
	for i, c := range spec.Columns {
		cols[i] = "`" + c + "`"
	}
	q := r.db.Table(spec.Table).Select(strings.Join(cols, ", "))
	if spec.SoftDelete {
		q = q.Where("deleted_at IS NULL")
	}
	var total int64
	q.Count(&total)
	var rows []map[string]interface{}
	err = q.Order(orderBy).Limit(limit).Offset((page - 1) * limit).Find(&rows).Error
	return rows, total, err
}
