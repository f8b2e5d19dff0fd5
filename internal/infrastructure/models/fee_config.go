package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessorFeeConfig struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	Processor        string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	PercentBps       int64     `gorm:"not null"`
	FixedFeeCents    int64     `gorm:"not null"`
	InstantPayoutBps int64     `gorm:"not null;default:0"`
	IsActive         bool      `gorm:"not null;default:true"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt `gorm:"index"`
}

func (ProcessorFeeConfig) TableName() string {
	return "processor_fee_configs"
}
