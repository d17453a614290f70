package storage

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nulocaldev/deenquest/internal/unlock"
)

// unlockedContentModel maps to the unlocked_contents table. The composite
// primary key gives the at-most-once insert its atomicity.
type unlockedContentModel struct {
	UserID    string `gorm:"primaryKey"`
	ContentID string `gorm:"primaryKey"`
	CreatedAt time.Time
}

func (unlockedContentModel) TableName() string {
	return "unlocked_contents"
}

// unlockRepo accesses per-user unlocked content sets.
type unlockRepo struct {
	db *gorm.DB
}

// NewUnlockRepo returns a gorm-backed UnlockRepo.
func NewUnlockRepo(db *gorm.DB) unlock.UnlockRepo {
	return &unlockRepo{db: db}
}

func (r *unlockRepo) GetUnlocked(ctx context.Context, userID string) (map[string]bool, error) {
	var records []unlockedContentModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to query unlocked contents: %w", err)
	}
	unlocked := make(map[string]bool, len(records))
	for _, record := range records {
		unlocked[record.ContentID] = true
	}
	return unlocked, nil
}

func (r *unlockRepo) Add(ctx context.Context, userID, contentID string) (bool, error) {
	record := unlockedContentModel{UserID: userID, ContentID: contentID}
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record)
	if result.Error != nil {
		return false, fmt.Errorf("failed to insert unlocked content: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}
