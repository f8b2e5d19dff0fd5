package repositories

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	domainRepos "booked-barber.backend/internal/domain/repositories"
)

type contextKey string

const txKey contextKey = "tx_db"

// gormUnitOfWork runs a function inside one database transaction, carried
// on the context so every repository call inside the function joins it.
type gormUnitOfWork struct {
	db *gorm.DB
}

// NewUnitOfWork creates a transaction scope backed by the given DB
func NewUnitOfWork(db *gorm.DB) domainRepos.UnitOfWork {
	return &gormUnitOfWork{db: db}
}

// Do begins a transaction, runs fn with it on the context, and commits.
// Any error from fn rolls the whole scope back.
func (u *gormUnitOfWork) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := GetDB(ctx, u.db).Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(context.WithValue(ctx, txKey, tx)); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}

// GetDB returns the transaction carried on the context when inside a
// UnitOfWork scope, otherwise the fallback connection.
func GetDB(ctx context.Context, fallback *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return fallback
}
