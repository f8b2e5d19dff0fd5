package models

import (
	"time"

	"github.com/google/uuid"
)

type ExternalTransaction struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID            uuid.UUID  `gorm:"type:uuid;not null;index:idx_tx_barber_status"`
	Processor           string     `gorm:"type:varchar(32);not null"`
	AmountCents         int64      `gorm:"not null"`
	CommissionOwedCents int64      `gorm:"not null;default:0"`
	Status              string     `gorm:"type:varchar(32);not null;index:idx_tx_barber_status"`
	ExternalRef         *string    `gorm:"type:varchar(255);index"`
	CollectionID        *uuid.UUID `gorm:"type:uuid;index"`
	ServiceType         string     `gorm:"type:varchar(64)"`
	FallbackOccurred    bool       `gorm:"not null;default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (ExternalTransaction) TableName() string {
	return "external_transactions"
}
