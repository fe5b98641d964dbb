// Package booking persists confirmed test-drive bookings.
package booking

import (
	"context"
	"time"

	"gorm.io/gorm"

	errx "github.com/sherpa-concierge-poc/server/internal/core/error"
)

// TestDrive is one confirmed booking. Rows are written once on confirmation
// and never updated or deleted by this core.
type TestDrive struct {
	ID        uint      `gorm:"primaryKey;autoIncrement"`
	UserID    string    `gorm:"column:user_id;size:64"`
	Car       string    `gorm:"size:128"`
	Datetime  time.Time `gorm:"column:datetime"`
	Name      string    `gorm:"size:128"`
	Phone     string    `gorm:"size:32"`
	HasDL     bool      `gorm:"column:has_dl"`
	CreatedAt time.Time
}

func (TestDrive) TableName() string { return "test_drives" }

// GormRepository writes bookings through GORM.
type GormRepository struct {
	db *gorm.DB
}

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

// Create inserts the booking row.
func (r *GormRepository) Create(ctx context.Context, td *TestDrive) error {
	if err := r.db.WithContext(ctx).Create(td).Error; err != nil {
		return errx.WrapDB(err)
	}
	return nil
}
