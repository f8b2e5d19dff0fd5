package entities

import (
	"time"

	"github.com/google/uuid"
)

// ProcessorType identifies a payment processor
type ProcessorType string

const (
	ProcessorStripe   ProcessorType = "STRIPE"
	ProcessorSquare   ProcessorType = "SQUARE"
	ProcessorPayPal   ProcessorType = "PAYPAL"
	ProcessorClover   ProcessorType = "CLOVER"
	ProcessorPlatform ProcessorType = "PLATFORM"
)

// AllProcessors lists every known processor type
var AllProcessors = []ProcessorType{
	ProcessorStripe,
	ProcessorSquare,
	ProcessorPayPal,
	ProcessorClover,
	ProcessorPlatform,
}

// Valid reports whether the processor type is known
func (p ProcessorType) Valid() bool {
	switch p {
	case ProcessorStripe, ProcessorSquare, ProcessorPayPal, ProcessorClover, ProcessorPlatform:
		return true
	}
	return false
}

// External reports whether the processor is a barber-owned external account
// rather than the platform's own processing
func (p ProcessorType) External() bool {
	return p.Valid() && p != ProcessorPlatform
}

// ProcessorConnection is a barber's linked external processor account
type ProcessorConnection struct {
	ID          uuid.UUID     `json:"id"`
	BarberID    uuid.UUID     `json:"barberId"`
	Processor   ProcessorType `json:"processor"`
	Credentials string        `json:"-"`
	IsActive    bool          `json:"isActive"`
	ConnectedAt time.Time     `json:"connectedAt"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// ProcessorHealth is the rolling outcome window for a (barber, processor)
// pair. Window holds the most recent outcomes oldest-first, one byte per
// attempt: 'S' for success, 'F' for failure.
type ProcessorHealth struct {
	ID        uuid.UUID     `json:"id"`
	BarberID  uuid.UUID     `json:"barberId"`
	Processor ProcessorType `json:"processor"`
	Window    string        `json:"-"`
	Healthy   bool          `json:"healthy"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

// Attempts returns the number of outcomes currently in the window
func (h *ProcessorHealth) Attempts() int {
	return len(h.Window)
}

// Failures returns the number of failed outcomes in the window
func (h *ProcessorHealth) Failures() int {
	n := 0
	for i := 0; i < len(h.Window); i++ {
		if h.Window[i] == 'F' {
			n++
		}
	}
	return n
}

// ConnectProcessorInput is the input for linking an external processor
type ConnectProcessorInput struct {
	Processor   ProcessorType `json:"processor" binding:"required"`
	Credentials string        `json:"credentials" binding:"required"`
}
