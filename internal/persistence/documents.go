// Package persistence keeps a local document table synchronized with the
// in-memory store: one JSON document per collection, rewritten after
// every mutation and read back once at startup.
package persistence

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/financeflow/internal"
)

// Collection keys. Each key owns one JSON document in the table.
const (
	KeyExpenses   = "expenses"
	KeyEarnings   = "earnings"
	KeyCategories = "categories"
	KeyBudgets    = "budgets"
)

// CollectionKeys in hydration order.
var CollectionKeys = []string{KeyExpenses, KeyEarnings, KeyCategories, KeyBudgets}

type Document struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Document) TableName() string {
	return "documents"
}

// Open connects to the document store. Sqlite file by default; a
// postgres DSN is accepted for installs that already run one.
func Open(cfg internal.StorageConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	}

	switch cfg.Driver {
	case "postgres":
		return gorm.Open(postgres.Open(cfg.Source), gormCfg)
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.Source), gormCfg)
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}

// DocumentStore is the gorm-backed key/value repository.
type DocumentStore struct {
	db *gorm.DB
}

func NewDocumentStore(db *gorm.DB) *DocumentStore {
	return &DocumentStore{db: db}
}

// Get returns the document for key; found is false when the key is absent.
func (ds *DocumentStore) Get(key string) (value string, found bool, err error) {
	var doc Document
	result := ds.db.Where("key = ?", key).First(&doc)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return "", false, nil
		}
		return "", false, result.Error
	}
	return doc.Value, true, nil
}

// Put upserts the document for key.
func (ds *DocumentStore) Put(key, value string) error {
	doc := Document{Key: key, Value: value, UpdatedAt: time.Now()}
	return ds.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&doc).Error
}

// Delete removes the document for key. Absent keys are a no-op.
func (ds *DocumentStore) Delete(key string) error {
	return ds.db.Where("key = ?", key).Delete(&Document{}).Error
}
