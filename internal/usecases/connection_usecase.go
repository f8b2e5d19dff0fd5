package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"booked-barber.backend/internal/domain/entities"
	domainerrors "booked-barber.backend/internal/domain/errors"
	"booked-barber.backend/internal/domain/repositories"
	"booked-barber.backend/pkg/logger"
	"booked-barber.backend/pkg/utils"
)

// ConnectionUsecase manages a barber's external processor connections
type ConnectionUsecase struct {
	connRepo repositories.ProcessorConnectionRepository
	clock    Clock
}

// NewConnectionUsecase creates a new connection usecase
func NewConnectionUsecase(connRepo repositories.ProcessorConnectionRepository, clock Clock) *ConnectionUsecase {
	return &ConnectionUsecase{connRepo: connRepo, clock: clock}
}

// Connect links an external processor account to the barber. One active
// connection per processor.
func (u *ConnectionUsecase) Connect(ctx context.Context, barberID uuid.UUID, input *entities.ConnectProcessorInput) (*entities.ProcessorConnection, error) {
	if !input.Processor.External() {
		return nil, fmt.Errorf("%w: %q is not a connectable processor", domainerrors.ErrUnknownProcessor, input.Processor)
	}
	if input.Credentials == "" {
		return nil, fmt.Errorf("%w: credentials required", domainerrors.ErrInvalidInput)
	}

	if _, err := u.connRepo.GetActive(ctx, barberID, input.Processor); err == nil {
		return nil, domainerrors.ErrAlreadyExists
	} else if !errors.Is(err, domainerrors.ErrNotFound) {
		return nil, err
	}

	now := u.clock.Now()
	conn := &entities.ProcessorConnection{
		ID:          utils.GenerateUUIDv7(),
		BarberID:    barberID,
		Processor:   input.Processor,
		Credentials: input.Credentials,
		IsActive:    true,
		ConnectedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.connRepo.Create(ctx, conn); err != nil {
		return nil, err
	}

	logger.Info(ctx, "processor connected",
		zap.String("barber_id", barberID.String()),
		zap.String("processor", string(input.Processor)))
	return conn, nil
}

// List returns the barber's connections
func (u *ConnectionUsecase) List(ctx context.Context, barberID uuid.UUID) ([]*entities.ProcessorConnection, error) {
	return u.connRepo.ListByBarber(ctx, barberID)
}

// Disconnect removes a barber's connection
func (u *ConnectionUsecase) Disconnect(ctx context.Context, barberID, id uuid.UUID) error {
	if err := u.connRepo.Delete(ctx, barberID, id); err != nil {
		return err
	}
	logger.Info(ctx, "processor disconnected",
		zap.String("barber_id", barberID.String()),
		zap.String("connection_id", id.String()))
	return nil
}
