// Package mysqlstore is a self-hosted record store over MySQL. Records are
// kept as JSON field blobs in one generic table so the services see the same
// schemaless surface the hosted backend provides.
package mysqlstore

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"storefront/internal/store"
)

type row struct {
	ID        string `gorm:"primaryKey;size:32"`
	Tbl       string `gorm:"column:tbl;index;size:64;not null"`
	Fields    string `gorm:"type:json"`
	CreatedAt time.Time
}

func (row) TableName() string { return "records" }

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&row{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	return New(db)
}

func (s *Store) Table(name string) store.Table {
	return &table{db: s.db, name: name}
}

type table struct {
	db   *gorm.DB
	name string
}

// newRecordID mints ids in the hosted store's shape: "rec" plus an opaque
// suffix.
func newRecordID() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return "rec" + raw[:14]
}

func (t *table) toRecord(r row) (store.Record, error) {
	fields := map[string]any{}
	if r.Fields != "" {
		if err := json.Unmarshal([]byte(r.Fields), &fields); err != nil {
			return store.Record{}, err
		}
	}
	return store.Record{ID: r.ID, Fields: fields, CreatedTime: r.CreatedAt}, nil
}

func (t *table) Select(ctx context.Context, filterFormula string) ([]store.Record, error) {
	match, err := compileFormula(filterFormula)
	if err != nil {
		return nil, err
	}

	var rows []row
	if err := t.db.WithContext(ctx).Where("tbl = ?", t.name).Order("created_at").Find(&rows).Error; err != nil {
		return nil, err
	}

	var out []store.Record
	for _, r := range rows {
		rec, err := t.toRecord(r)
		if err != nil {
			return nil, err
		}
		if match(rec) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (t *table) Find(ctx context.Context, id string) (store.Record, error) {
	var r row
	err := t.db.WithContext(ctx).Where("tbl = ? AND id = ?", t.name, id).First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.Record{}, store.ErrRecordNotFound
	}
	if err != nil {
		return store.Record{}, err
	}
	return t.toRecord(r)
}

func (t *table) Create(ctx context.Context, fields map[string]any) (store.Record, error) {
	blob, err := json.Marshal(fields)
	if err != nil {
		return store.Record{}, err
	}
	r := row{ID: newRecordID(), Tbl: t.name, Fields: string(blob), CreatedAt: time.Now().UTC()}
	if err := t.db.WithContext(ctx).Create(&r).Error; err != nil {
		return store.Record{}, err
	}
	return t.toRecord(r)
}

// Update merges the given fields into the stored blob, matching the hosted
// backend's partial-update behavior.
func (t *table) Update(ctx context.Context, id string, fields map[string]any) (store.Record, error) {
	rec, err := t.Find(ctx, id)
	if err != nil {
		return store.Record{}, err
	}
	for k, v := range fields {
		rec.Fields[k] = v
	}
	blob, err := json.Marshal(rec.Fields)
	if err != nil {
		return store.Record{}, err
	}
	res := t.db.WithContext(ctx).Model(&row{}).
		Where("tbl = ? AND id = ?", t.name, id).
		Update("fields", string(blob))
	if res.Error != nil {
		return store.Record{}, res.Error
	}
	// The record can vanish between the read and the write; a zero-row
	// update must not report the stale merge as success.
	if res.RowsAffected == 0 {
		return store.Record{}, store.ErrRecordNotFound
	}
	return rec, nil
}

func (t *table) Destroy(ctx context.Context, id string) error {
	res := t.db.WithContext(ctx).Where("tbl = ? AND id = ?", t.name, id).Delete(&row{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return store.ErrRecordNotFound
	}
	return nil
}

var _ store.Store = (*Store)(nil)
