package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProcessorConnection struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID    uuid.UUID `gorm:"type:uuid;not null;index:idx_conn_barber_processor"`
	Processor   string    `gorm:"type:varchar(32);not null;index:idx_conn_barber_processor"`
	Credentials string    `gorm:"type:text;not null"`
	IsActive    bool      `gorm:"not null;default:true"`
	ConnectedAt time.Time `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (ProcessorConnection) TableName() string {
	return "processor_connections"
}

type ProcessorHealth struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v7()"`
	BarberID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_health_barber_processor"`
	Processor string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_health_barber_processor"`
	Window    string    `gorm:"type:varchar(32);not null;default:''"`
	Healthy   bool      `gorm:"not null;default:true"`
	UpdatedAt time.Time
}

func (ProcessorHealth) TableName() string {
	return "processor_health"
}
