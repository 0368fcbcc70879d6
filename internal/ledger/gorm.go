package ledger

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IssuedIDModel is one claimed ID.
type IssuedIDModel struct {
	Profile   string    `gorm:"primaryKey;size:64"`
	ID        string    `gorm:"primaryKey;size:191"`
	IssuedAt  time.Time `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}

func (IssuedIDModel) TableName() string { return "issued_ids" }

// GormLedger keeps claims in a SQL table.
type GormLedger struct {
	db  *gorm.DB
	ttl time.Duration
	now func() time.Time
}

// NewGormLedger migrates the issued_ids table and returns the ledger.
func NewGormLedger(db *gorm.DB, ttl time.Duration) (*GormLedger, error) {
	if err := db.AutoMigrate(&IssuedIDModel{}); err != nil {
		return nil, fmt.Errorf("failed to migrate issued_ids: %w", err)
	}
	return &GormLedger{db: db, ttl: ttl, now: time.Now}, nil
}

// Claim inserts the id, treating an expired earlier claim as free.
func (l *GormLedger) Claim(ctx context.Context, profile, id string) (bool, error) {
	now := l.now().UTC()
	db := l.db.WithContext(ctx)

	if err := db.Where("profile = ? AND id = ? AND expires_at <= ?", profile, id, now).
		Delete(&IssuedIDModel{}).Error; err != nil {
		return false, fmt.Errorf("failed to release expired claim: %w", err)
	}

	res := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&IssuedIDModel{
		Profile:   profile,
		ID:        id,
		IssuedAt:  now,
		ExpiresAt: now.Add(l.ttl),
	})
	if res.Error != nil {
		return false, fmt.Errorf("failed to claim id in database: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

// Prune deletes expired claims and returns how many were removed.
func (l *GormLedger) Prune(ctx context.Context) (int64, error) {
	res := l.db.WithContext(ctx).Where("expires_at <= ?", l.now().UTC()).Delete(&IssuedIDModel{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to prune issued_ids: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (l *GormLedger) Close() error {
	sqlDB, err := l.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
