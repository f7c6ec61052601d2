package repository

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/shopspring/decimal"
)

// MySQL error numbers the repository reacts to
const (
	errLockWaitTimeout = 1205
	errDeadlock        = 1213
	errNoReferencedRow = 1452
)

var lotColumns = []string{
	"id", "tenant_id", "auction_id", "title", "initial_price", "current_price", "bid_increment",
	"status", "winner_id", "bid_count", "closed_at", "created_at", "updated_at",
}

const bidColumns = "id, tenant_id, lot_id, auction_id, user_id, amount, created_at"

func lotSelect(alias string) string {
	if alias == "" {
		return strings.Join(lotColumns, ", ")
	}
	cols := make([]string, len(lotColumns))
	for i, c := range lotColumns {
		cols[i] = alias + "." + c
	}
	return strings.Join(cols, ", ")
}

// MySQLRepo implements AuctionDB on MySQL. Lot rows carry the price the ledger compares against.
type MySQLRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewMySQLRepo wraps an open database handle
func NewMySQLRepo(db *sql.DB) *MySQLRepo {
	return &MySQLRepo{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// OpenMySQL opens and pings a MySQL connection pool
func OpenMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w: %w", biddingerrors.ErrPersistenceUnavailable, err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w: %w", biddingerrors.ErrPersistenceUnavailable, err)
	}
	return db, nil
}

// dbError classifies a driver error. Lock contention is a concurrency conflict,
// everything else means the store is unavailable.
func dbError(op string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, err)
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) && (myErr.Number == errDeadlock || myErr.Number == errLockWaitTimeout) {
		return fmt.Errorf("%s: %w: %w", op, biddingerrors.ErrConcurrencyConflict, err)
	}
	return fmt.Errorf("%s: %w: %w", op, biddingerrors.ErrPersistenceUnavailable, err)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLot(row rowScanner) (models.Lot, error) {
	var (
		lot      models.Lot
		winnerID sql.NullString
		closedAt sql.NullTime
	)
	err := row.Scan(&lot.LotID, &lot.TenantID, &lot.AuctionID, &lot.Title, &lot.InitialPrice, &lot.CurrentPrice,
		&lot.BidIncrement, &lot.Status, &winnerID, &lot.BidCount, &closedAt, &lot.CreatedAt, &lot.UpdatedAt)
	if err != nil {
		return models.Lot{}, err
	}
	if winnerID.Valid {
		lot.WinnerID = &winnerID.String
	}
	if closedAt.Valid {
		lot.ClosedAt = &closedAt.Time
	}
	return lot, nil
}

func scanBid(row rowScanner) (models.Bid, error) {
	var b models.Bid
	err := row.Scan(&b.BidID, &b.TenantID, &b.LotID, &b.AuctionID, &b.UserID, &b.Amount, &b.CreatedAt)
	return b, err
}

// GetAuction returns an auction
func (r *MySQLRepo) GetAuction(ctx context.Context, tenantID, auctionID string) (models.Auction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, tenant_id, title, status FROM auctions WHERE tenant_id = ? AND id = ?`, tenantID, auctionID)

	var a models.Auction
	if err := row.Scan(&a.AuctionID, &a.TenantID, &a.Title, &a.Status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
		}
		return models.Auction{}, dbError("get auction "+auctionID, err)
	}
	return a, nil
}

// GetLot returns a snapshot of a lot
func (r *MySQLRepo) GetLot(ctx context.Context, tenantID, lotID string) (models.Lot, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+lotSelect("")+` FROM lots WHERE tenant_id = ? AND id = ?`, tenantID, lotID)

	lot, err := scanLot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Lot{}, fmt.Errorf("get lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
		}
		return models.Lot{}, dbError("get lot "+lotID, err)
	}
	return lot, nil
}

// IsHabilitated reports whether the user may bid in the auction. A missing record is false.
func (r *MySQLRepo) IsHabilitated(ctx context.Context, tenantID, userID, auctionID string) (bool, error) {
	var habilitated bool
	err := r.db.QueryRowContext(ctx,
		`SELECT habilitated FROM habilitations WHERE tenant_id = ? AND user_id = ? AND auction_id = ?`,
		tenantID, userID, auctionID).Scan(&habilitated)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, dbError("get habilitation", err)
	}
	return habilitated, nil
}

// AppendBid moves the lot price with a conditional update and inserts the bid in the same transaction
func (r *MySQLRepo) AppendBid(ctx context.Context, tenantID string, bid models.Bid, expectedPrice decimal.Decimal) (models.Lot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Lot{}, dbError("append bid: begin", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE lots SET current_price = ?, bid_count = bid_count + 1, updated_at = ?
		 WHERE tenant_id = ? AND id = ? AND status = ? AND current_price = CAST(? AS DECIMAL(18,2))`,
		bid.Amount, r.now(), tenantID, bid.LotID, models.LotOpenForBids, expectedPrice)
	if err != nil {
		return models.Lot{}, dbError("append bid: update lot "+bid.LotID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Lot{}, dbError("append bid: rows affected", err)
	}
	if n == 0 {
		return models.Lot{}, fmt.Errorf("append bid for lot %s: %w - expected price %s",
			bid.LotID, biddingerrors.ErrConcurrencyConflict, expectedPrice)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO bids (`+bidColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		bid.BidID, tenantID, bid.LotID, bid.AuctionID, bid.UserID, bid.Amount, bid.CreatedAt)
	if err != nil {
		return models.Lot{}, dbError("append bid: insert bid "+bid.BidID, err)
	}

	lot, err := scanLot(tx.QueryRowContext(ctx,
		`SELECT `+lotSelect("")+` FROM lots WHERE tenant_id = ? AND id = ?`, tenantID, bid.LotID))
	if err != nil {
		return models.Lot{}, dbError("append bid: reload lot "+bid.LotID, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Lot{}, dbError("append bid: commit", err)
	}
	return lot, nil
}

// Accepted amounts strictly increase, so amount order is acceptance order.
const bidsByLotQuery = `SELECT ` + bidColumns + ` FROM bids WHERE tenant_id = ? AND lot_id = ?
	ORDER BY amount ASC, created_at ASC`

// GetBidsByLot returns all bids for a lot in acceptance order
func (r *MySQLRepo) GetBidsByLot(ctx context.Context, tenantID, lotID string) ([]models.Bid, error) {
	rows, err := r.db.QueryContext(ctx, bidsByLotQuery, tenantID, lotID)
	if err != nil {
		return nil, dbError("get bids for lot "+lotID, err)
	}
	defer rows.Close()

	var bids []models.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, dbError("scan bid", err)
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("get bids for lot "+lotID, err)
	}
	if len(bids) == 0 {
		return nil, r.noBidsError(ctx, tenantID, lotID)
	}
	return bids, nil
}

// noBidsError tells an existing lot without bids apart from a lot that does not exist
func (r *MySQLRepo) noBidsError(ctx context.Context, tenantID, lotID string) error {
	var one int
	err := r.db.QueryRowContext(ctx, `SELECT 1 FROM lots WHERE tenant_id = ? AND id = ?`, tenantID, lotID).Scan(&one)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	case err != nil:
		return dbError("get bids for lot "+lotID, err)
	}
	return fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrNoBids)
}

const leadingBidQuery = `SELECT ` + bidColumns + ` FROM bids WHERE tenant_id = ? AND lot_id = ?
	ORDER BY amount DESC, created_at ASC LIMIT 1`

// GetLeadingBid returns the highest bid for a lot
func (r *MySQLRepo) GetLeadingBid(ctx context.Context, tenantID, lotID string) (models.Bid, error) {
	b, err := scanBid(r.db.QueryRowContext(ctx, leadingBidQuery, tenantID, lotID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Bid{}, fmt.Errorf("get leading bid for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	if err != nil {
		return models.Bid{}, dbError("get leading bid for lot "+lotID, err)
	}
	return b, nil
}

// UpdateLot locks the lot row, so conditional bid updates wait and then see the new status
func (r *MySQLRepo) UpdateLot(ctx context.Context, tenantID, lotID string, fn LotMutation) (models.Lot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.Lot{}, dbError("update lot: begin", err)
	}
	defer tx.Rollback()

	lot, err := scanLot(tx.QueryRowContext(ctx,
		`SELECT `+lotSelect("")+` FROM lots WHERE tenant_id = ? AND id = ? FOR UPDATE`, tenantID, lotID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Lot{}, fmt.Errorf("update lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	if err != nil {
		return models.Lot{}, dbError("update lot: lock "+lotID, err)
	}

	var leading *models.Bid
	b, err := scanBid(tx.QueryRowContext(ctx, leadingBidQuery, tenantID, lotID))
	switch {
	case err == nil:
		leading = &b
	case !errors.Is(err, sql.ErrNoRows):
		return models.Lot{}, dbError("update lot: leading bid "+lotID, err)
	}

	updated := lot
	if err := fn(&updated, leading); err != nil {
		if errors.Is(err, ErrNoChange) {
			return lot, nil
		}
		return models.Lot{}, err
	}
	updated.LotID, updated.TenantID, updated.AuctionID = lot.LotID, lot.TenantID, lot.AuctionID
	if updated.UpdatedAt.Equal(lot.UpdatedAt) {
		updated.UpdatedAt = r.now()
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE lots SET title = ?, status = ?, winner_id = ?, current_price = ?, bid_increment = ?, closed_at = ?, updated_at = ?
		 WHERE tenant_id = ? AND id = ?`,
		updated.Title, updated.Status, nullString(updated.WinnerID), updated.CurrentPrice, updated.BidIncrement,
		nullTime(updated.ClosedAt), updated.UpdatedAt, tenantID, lotID)
	if err != nil {
		return models.Lot{}, dbError("update lot "+lotID, err)
	}

	if err := tx.Commit(); err != nil {
		return models.Lot{}, dbError("update lot: commit", err)
	}
	return updated, nil
}

// GetLotsByUser returns all lots a user has bid on
func (r *MySQLRepo) GetLotsByUser(ctx context.Context, tenantID, userID string) ([]models.Lot, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT `+lotSelect("l")+` FROM lots l
		 JOIN bids b ON b.tenant_id = l.tenant_id AND b.lot_id = l.id
		 WHERE l.tenant_id = ? AND b.user_id = ?`, tenantID, userID)
	if err != nil {
		return nil, dbError("get lots for user "+userID, err)
	}
	defer rows.Close()

	var lots []models.Lot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, dbError("scan lot", err)
		}
		lots = append(lots, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, dbError("get lots for user "+userID, err)
	}
	if len(lots) == 0 {
		return nil, fmt.Errorf("get lots for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}
	return lots, nil
}

// SaveAuction creates or replaces an auction
func (r *MySQLRepo) SaveAuction(ctx context.Context, auction models.Auction) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auctions (id, tenant_id, title, status) VALUES (?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE title = VALUES(title), status = VALUES(status)`,
		auction.AuctionID, auction.TenantID, auction.Title, auction.Status)
	if err != nil {
		return dbError("save auction "+auction.AuctionID, err)
	}
	return nil
}

// SaveLot creates or replaces a lot. A new lot starts at its initial price; replacing a lot
// keeps its bid count and price once bidding started, and never reopens a closed lot.
func (r *MySQLRepo) SaveLot(ctx context.Context, lot models.Lot) error {
	if err := checkLotPrices(lot); err != nil {
		return err
	}
	if lot.BidCount == 0 {
		lot.CurrentPrice = lot.InitialPrice
	}
	now := r.now()
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = now
	}
	lot.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO lots (`+lotSelect("")+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE title = VALUES(title), initial_price = VALUES(initial_price),
		 current_price = IF(bid_count > 0, current_price, VALUES(current_price)),
		 bid_increment = VALUES(bid_increment),
		 status = IF(status IN ('SOLD', 'UNSOLD'), status, VALUES(status)),
		 updated_at = VALUES(updated_at)`,
		lot.LotID, lot.TenantID, lot.AuctionID, lot.Title, lot.InitialPrice, lot.CurrentPrice, lot.BidIncrement,
		lot.Status, nullString(lot.WinnerID), lot.BidCount, nullTime(lot.ClosedAt), lot.CreatedAt, lot.UpdatedAt)
	if err != nil {
		var myErr *mysql.MySQLError
		if errors.As(err, &myErr) && myErr.Number == errNoReferencedRow {
			return fmt.Errorf("save lot %s: %w", lot.LotID, biddingerrors.ErrAuctionNotFound)
		}
		return dbError("save lot "+lot.LotID, err)
	}
	return nil
}

// SaveHabilitation creates or replaces a habilitation record
func (r *MySQLRepo) SaveHabilitation(ctx context.Context, h models.Habilitation) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habilitations (tenant_id, user_id, auction_id, habilitated, granted_at) VALUES (?, ?, ?, ?, ?)
		 ON DUPLICATE KEY UPDATE habilitated = VALUES(habilitated), granted_at = VALUES(granted_at)`,
		h.TenantID, h.UserID, h.AuctionID, h.Habilitated, h.GrantedAt)
	if err != nil {
		return dbError("save habilitation", err)
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
