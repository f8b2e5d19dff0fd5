package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type HybridPaymentConfig struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID           uuid.UUID `gorm:"type:uuid;not null;index"`
	Mode               string    `gorm:"type:varchar(32);not null"`
	Rules              string    `gorm:"type:jsonb;not null;default:'[]'"`
	DefaultProcessor   string    `gorm:"type:varchar(32);not null;default:'PLATFORM'"`
	FallbackToPlatform bool      `gorm:"not null;default:false"`
	CommissionModel    string    `gorm:"type:varchar(32);not null;default:'PERCENTAGE'"`
	CommissionRateBps  int64     `gorm:"not null;default:0"`
	BoothRentCents     int64     `gorm:"not null;default:0"`
	IsActive           bool      `gorm:"not null;default:true;index"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
	DeletedAt          gorm.DeletedAt `gorm:"index"`
}

func (HybridPaymentConfig) TableName() string {
	return "hybrid_payment_configs"
}

type PaymentModeHistory struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID     uuid.UUID `gorm:"type:uuid;not null;index"`
	ConfigID     uuid.UUID `gorm:"type:uuid;not null"`
	PreviousMode *string   `gorm:"type:varchar(32)"`
	NewMode      string    `gorm:"type:varchar(32);not null"`
	ChangedBy    *string   `gorm:"type:varchar(255)"`
	CreatedAt    time.Time
}

func (PaymentModeHistory) TableName() string {
	return "payment_mode_history"
}
