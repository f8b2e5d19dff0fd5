package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createConnectionTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE processor_connections (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		processor TEXT NOT NULL,
		credentials TEXT NOT NULL,
		is_active BOOLEAN NOT NULL,
		connected_at DATETIME NOT NULL,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE processor_health (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		processor TEXT NOT NULL,
		"window" TEXT NOT NULL DEFAULT '',
		healthy BOOLEAN NOT NULL DEFAULT TRUE,
		updated_at DATETIME,
		UNIQUE (barber_id, processor)
	);`)
}

func createConfigTables(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE hybrid_payment_configs (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		rules TEXT NOT NULL DEFAULT '[]',
		default_processor TEXT NOT NULL DEFAULT 'PLATFORM',
		fallback_to_platform BOOLEAN NOT NULL DEFAULT FALSE,
		commission_model TEXT NOT NULL DEFAULT 'PERCENTAGE',
		commission_rate_bps INTEGER NOT NULL DEFAULT 0,
		booth_rent_cents INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
	mustExec(t, db, `CREATE TABLE payment_mode_history (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		config_id TEXT NOT NULL,
		previous_mode TEXT,
		new_mode TEXT NOT NULL,
		changed_by TEXT,
		created_at DATETIME
	);`)
}

func createTransactionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE external_transactions (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		processor TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		commission_owed_cents INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		external_ref TEXT,
		collection_id TEXT,
		service_type TEXT,
		fallback_occurred BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCollectionTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE platform_collections (
		id TEXT PRIMARY KEY,
		barber_id TEXT NOT NULL,
		type TEXT NOT NULL,
		amount_cents INTEGER NOT NULL,
		status TEXT NOT NULL,
		method TEXT NOT NULL,
		period_key TEXT NOT NULL,
		attempt_count INTEGER NOT NULL DEFAULT 0,
		next_retry_at DATETIME,
		last_error TEXT,
		external_ref TEXT,
		collected_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createFeeConfigTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE processor_fee_configs (
		id TEXT PRIMARY KEY,
		processor TEXT NOT NULL UNIQUE,
		percent_bps INTEGER NOT NULL,
		fixed_fee_cents INTEGER NOT NULL,
		instant_payout_bps INTEGER NOT NULL DEFAULT 0,
		is_active BOOLEAN NOT NULL DEFAULT TRUE,
		created_at DATETIME,
		updated_at DATETIME,
		deleted_at DATETIME
	);`)
}
