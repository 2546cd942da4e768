package database

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/HarmoniqaOrg/PharmOS/internal/models"
	"github.com/HarmoniqaOrg/PharmOS/internal/registry"
)

// StateStore persists the registry collections through gorm. Commit
// applies a whole change set inside one transaction, which is what the
// registry's snapshot-swap commit protocol relies on.
type StateStore struct {
	db *gorm.DB
}

func NewStateStore(db *gorm.DB) *StateStore {
	return &StateStore{db: db}
}

func (s *StateStore) Load(ctx context.Context) ([]*models.ModelEntry, []*models.VersionRecord, []*models.DeploymentSlot, error) {
	var entries []*models.ModelEntry
	var records []*models.VersionRecord
	var slots []*models.DeploymentSlot

	db := s.db.WithContext(ctx)
	if err := db.Find(&entries).Error; err != nil {
		return nil, nil, nil, err
	}
	if err := db.Find(&records).Error; err != nil {
		return nil, nil, nil, err
	}
	if err := db.Find(&slots).Error; err != nil {
		return nil, nil, nil, err
	}
	return entries, records, slots, nil
}

func (s *StateStore) Commit(ctx context.Context, cs registry.ChangeSet) error {
	if cs.Empty() {
		return nil
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, entry := range cs.Models {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(entry).Error; err != nil {
				return err
			}
		}
		for _, record := range cs.Versions {
			// Upsert on the composite key; gorm's surrogate ID stays
			// whatever the row already had.
			err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "model_id"}, {Name: "version"}},
				UpdateAll: true,
			}).Create(record).Error
			if err != nil {
				return err
			}
		}
		for _, key := range cs.RemoveVersions {
			err := tx.Where("model_id = ? AND version = ?", key.ModelID, key.Version).
				Delete(&models.VersionRecord{}).Error
			if err != nil {
				return err
			}
		}
		for _, slot := range cs.Deployments {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(slot).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
