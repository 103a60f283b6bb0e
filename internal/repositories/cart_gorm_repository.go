package repositories

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartRecord is one persisted cart payload, keyed per store and session.
type CartRecord struct {
	Key     string `gorm:"primaryKey;type:varchar(128)"`
	Payload []byte
}

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// Get retrieves a cart payload. An absent key is not an error.
func (r *GORMCartRepository) Get(key string) ([]byte, error) {
	var record CartRecord
	if err := r.db.First(&record, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart record %s: %w", key, err)
	}
	return record.Payload, nil
}

// Put writes a cart payload, replacing any previous one under the same key.
func (r *GORMCartRepository) Put(key string, payload []byte) error {
	record := CartRecord{Key: key, Payload: payload}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&record).Error
	if err != nil {
		return fmt.Errorf("failed to save cart record %s: %w", key, err)
	}
	return nil
}

// Delete removes a cart payload. Deleting an absent key is a no-op.
func (r *GORMCartRepository) Delete(key string) error {
	if err := r.db.Delete(&CartRecord{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("failed to delete cart record %s: %w", key, err)
	}
	return nil
}
