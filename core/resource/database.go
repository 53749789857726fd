package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Row is a resource stored in a database table.
type Row struct {
	Name      string `gorm:"primaryKey;size:255"`
	Content   []byte
	UpdatedAt time.Time
}

// DBResolver resolves resources from rows of a table (default "resources").
type DBResolver struct {
	db    *gorm.DB
	table string
}

// NewDBResolver creates a resolver over table. An empty table name selects
// "resources".
func NewDBResolver(db *gorm.DB, table string) *DBResolver {
	if table == "" {
		table = "resources"
	}
	return &DBResolver{db: db, table: table}
}

// Migrate creates or updates the resource table.
func (r *DBResolver) Migrate() error {
	if err := r.db.Table(r.table).AutoMigrate(&Row{}); err != nil {
		return fmt.Errorf("failed to migrate table %s: %w", r.table, err)
	}
	return nil
}

// Open loads the row for name and returns its content.
func (r *DBResolver) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	clean, ok := cleanName(name)
	if !ok {
		return nil, notFound(name)
	}

	var row Row
	err := r.db.WithContext(ctx).Table(r.table).Where("name = ?", clean).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(name)
		}
		return nil, fmt.Errorf("failed to query resource %s: %w", clean, err)
	}
	return io.NopCloser(bytes.NewReader(row.Content)), nil
}

// List returns the names stored in the table under prefix.
func (r *DBResolver) List(ctx context.Context, prefix string) ([]string, error) {
	var names []string
	q := r.db.WithContext(ctx).Table(r.table).Order("name")
	if prefix != "" {
		q = q.Where("name LIKE ?", prefix+"%")
	}
	if err := q.Pluck("name", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list resources: %w", err)
	}

	filtered := names[:0]
	for _, n := range names {
		if matchesPrefix(n, prefix) {
			filtered = append(filtered, n)
		}
	}
	return filtered, nil
}

// Put inserts or replaces the row for name.
func (r *DBResolver) Put(ctx context.Context, name string, content []byte) error {
	clean, ok := cleanName(name)
	if !ok {
		return fmt.Errorf("invalid resource name %q", name)
	}
	row := Row{Name: clean, Content: content, UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Table(r.table).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"content", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to store resource %s: %w", clean, err)
	}
	return nil
}
