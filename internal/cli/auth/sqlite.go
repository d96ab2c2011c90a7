package auth

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StorageItem is a single persisted key/value pair for one server origin
type StorageItem struct {
	Namespace string    `gorm:"primaryKey;type:varchar(255)"`
	Key       string    `gorm:"primaryKey;column:item_key;type:varchar(64)"`
	Value     string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// SQLiteStore implements TokenStore on a local SQLite database, for hosts
// without a usable keyring
type SQLiteStore struct {
	db        *gorm.DB
	namespace string
}

// OpenSQLiteStore opens (and migrates) the database at path
func OpenSQLiteStore(path, namespace string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open token database: %w", err)
	}

	if err := db.AutoMigrate(&StorageItem{}); err != nil {
		return nil, fmt.Errorf("failed to migrate token database: %w", err)
	}

	return &SQLiteStore{db: db, namespace: namespace}, nil
}

func (s *SQLiteStore) SaveToken(token string) error {
	item := StorageItem{
		Namespace: s.namespace,
		Key:       AccessTokenKey,
		Value:     token,
	}
	err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&item).Error
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

func (s *SQLiteStore) LoadToken() (string, error) {
	var item StorageItem
	err := s.db.
		Where("namespace = ? AND item_key = ?", s.namespace, AccessTokenKey).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", fmt.Errorf("failed to load token: %w", err)
	}
	return item.Value, nil
}

func (s *SQLiteStore) DeleteToken() error {
	err := s.db.
		Where("namespace = ? AND item_key = ?", s.namespace, AccessTokenKey).
		Delete(&StorageItem{}).Error
	if err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// Close releases the underlying database handle
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
