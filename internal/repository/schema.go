package repository

import (
	"context"
	"database/sql"
)

// schema is applied in order by Migrate. Every table is keyed by tenant first.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS auctions (
		id VARCHAR(64) NOT NULL,
		tenant_id VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		status VARCHAR(20) NOT NULL,
		PRIMARY KEY (tenant_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS lots (
		id VARCHAR(64) NOT NULL,
		tenant_id VARCHAR(64) NOT NULL,
		auction_id VARCHAR(64) NOT NULL,
		title VARCHAR(255) NOT NULL DEFAULT '',
		initial_price DECIMAL(18,2) NOT NULL,
		current_price DECIMAL(18,2) NOT NULL,
		bid_increment DECIMAL(18,2) NOT NULL DEFAULT 0,
		status VARCHAR(20) NOT NULL,
		winner_id VARCHAR(64) NULL,
		bid_count INT NOT NULL DEFAULT 0,
		closed_at DATETIME(6) NULL,
		created_at DATETIME(6) NOT NULL,
		updated_at DATETIME(6) NOT NULL,
		PRIMARY KEY (tenant_id, id),
		KEY idx_lots_auction (tenant_id, auction_id),
		FOREIGN KEY (tenant_id, auction_id) REFERENCES auctions (tenant_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS bids (
		id CHAR(26) NOT NULL COMMENT 'ULID',
		tenant_id VARCHAR(64) NOT NULL,
		lot_id VARCHAR(64) NOT NULL,
		auction_id VARCHAR(64) NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		amount DECIMAL(18,2) NOT NULL,
		created_at DATETIME(6) NOT NULL,
		PRIMARY KEY (tenant_id, id),
		KEY idx_bids_lot_amount (tenant_id, lot_id, amount),
		KEY idx_bids_user (tenant_id, user_id),
		FOREIGN KEY (tenant_id, lot_id) REFERENCES lots (tenant_id, id)
	)`,
	`CREATE TABLE IF NOT EXISTS habilitations (
		tenant_id VARCHAR(64) NOT NULL,
		user_id VARCHAR(64) NOT NULL,
		auction_id VARCHAR(64) NOT NULL,
		habilitated BOOLEAN NOT NULL DEFAULT FALSE,
		granted_at DATETIME(6) NOT NULL,
		PRIMARY KEY (tenant_id, user_id, auction_id)
	)`,
}

// Migrate creates the tables used by MySQLRepo
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return dbError("migrate", err)
		}
	}
	return nil
}
