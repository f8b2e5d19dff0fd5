package models

import (
	"time"

	"github.com/google/uuid"
)

type PlatformCollection struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID     uuid.UUID  `gorm:"type:uuid;not null;index"`
	Type         string     `gorm:"type:varchar(32);not null;index:idx_collection_period"`
	AmountCents  int64      `gorm:"not null"`
	Status       string     `gorm:"type:varchar(32);not null;index"`
	Method       string     `gorm:"type:varchar(16);not null"`
	PeriodKey    string     `gorm:"type:varchar(16);not null;index:idx_collection_period"`
	AttemptCount int        `gorm:"not null;default:0"`
	NextRetryAt  *time.Time `gorm:"index"`
	LastError    *string    `gorm:"type:text"`
	ExternalRef  *string    `gorm:"type:varchar(255)"`
	CollectedAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (PlatformCollection) TableName() string {
	return "platform_collections"
}
