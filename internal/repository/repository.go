package repository

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoChange is returned by a LotMutation to leave the lot as stored
var ErrNoChange = errors.New("no change")

// LotMutation changes a lot while the repository holds it exclusively.
// leading is the lot's current leading bid, nil when it has none.
type LotMutation func(lot *models.Lot, leading *models.Bid) error

// AuctionDB defines the tenant-scoped storage interface for the bidding engine
type AuctionDB interface {
	GetAuction(ctx context.Context, tenantID, auctionID string) (models.Auction, error)
	GetLot(ctx context.Context, tenantID, lotID string) (models.Lot, error)
	IsHabilitated(ctx context.Context, tenantID, userID, auctionID string) (bool, error)

	// AppendBid records bid and moves the lot price to bid.Amount, but only while the lot
	// is open and its current price still equals expectedPrice. Otherwise nothing is written
	// and ErrConcurrencyConflict is returned.
	AppendBid(ctx context.Context, tenantID string, bid models.Bid, expectedPrice decimal.Decimal) (models.Lot, error)
	GetBidsByLot(ctx context.Context, tenantID, lotID string) ([]models.Bid, error)
	GetLeadingBid(ctx context.Context, tenantID, lotID string) (models.Bid, error)

	// UpdateLot runs fn with no bid able to land on the lot until the change is stored
	UpdateLot(ctx context.Context, tenantID, lotID string, fn LotMutation) (models.Lot, error)
	GetLotsByUser(ctx context.Context, tenantID, userID string) ([]models.Lot, error)

	SaveAuction(ctx context.Context, auction models.Auction) error
	SaveLot(ctx context.Context, lot models.Lot) error
	SaveHabilitation(ctx context.Context, h models.Habilitation) error
}

type tenantStore struct {
	auctions      map[string]models.Auction
	lots          map[string]models.Lot
	bids          map[string][]models.Bid        // key: lotID -> bids in acceptance order
	habilitations map[string]models.Habilitation // key: habilitationKey(userID, auctionID)
	userLots      map[string][]string            // key: userID -> lotIDs the user has bid on
}

func newTenantStore() *tenantStore {
	return &tenantStore{
		auctions:      make(map[string]models.Auction),
		lots:          make(map[string]models.Lot),
		bids:          make(map[string][]models.Bid),
		habilitations: make(map[string]models.Habilitation),
		userLots:      make(map[string][]string),
	}
}

func habilitationKey(userID, auctionID string) string {
	return userID + "|" + auctionID
}

// MemoryRepo is a concurrency-safe in-memory implementation of AuctionDB
type MemoryRepo struct {
	mu      sync.RWMutex
	tenants map[string]*tenantStore // key: tenantID
	now     func() time.Time
}

// NewMemoryRepo creates a new in-memory repository instance
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		tenants: make(map[string]*tenantStore),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// tenant returns the store for tenantID, nil if the tenant has no data. Callers hold mu.
func (r *MemoryRepo) tenant(tenantID string) *tenantStore {
	return r.tenants[tenantID]
}

func (r *MemoryRepo) tenantForWrite(tenantID string) *tenantStore {
	ts, ok := r.tenants[tenantID]
	if !ok {
		ts = newTenantStore()
		r.tenants[tenantID] = ts
	}
	return ts
}

// GetAuction returns an auction
func (r *MemoryRepo) GetAuction(_ context.Context, tenantID, auctionID string) (models.Auction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	auction, ok := ts.auctions[auctionID]
	if !ok {
		return models.Auction{}, fmt.Errorf("get auction %s: %w", auctionID, biddingerrors.ErrAuctionNotFound)
	}
	return auction, nil
}

// GetLot returns a snapshot of a lot
func (r *MemoryRepo) GetLot(_ context.Context, tenantID, lotID string) (models.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return models.Lot{}, fmt.Errorf("get lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	lot, ok := ts.lots[lotID]
	if !ok {
		return models.Lot{}, fmt.Errorf("get lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	return lot, nil
}

// IsHabilitated reports whether the user may bid in the auction. A missing record is false.
func (r *MemoryRepo) IsHabilitated(_ context.Context, tenantID, userID, auctionID string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return false, nil
	}
	h, ok := ts.habilitations[habilitationKey(userID, auctionID)]
	return ok && h.Habilitated, nil
}

// AppendBid records a bid if the lot is still open at expectedPrice
func (r *MemoryRepo) AppendBid(_ context.Context, tenantID string, bid models.Bid, expectedPrice decimal.Decimal) (models.Lot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return models.Lot{}, fmt.Errorf("append bid for lot %s: %w", bid.LotID, biddingerrors.ErrLotNotFound)
	}
	lot, ok := ts.lots[bid.LotID]
	if !ok {
		return models.Lot{}, fmt.Errorf("append bid for lot %s: %w", bid.LotID, biddingerrors.ErrLotNotFound)
	}
	if lot.Status != models.LotOpenForBids || !lot.CurrentPrice.Equal(expectedPrice) {
		return models.Lot{}, fmt.Errorf("append bid for lot %s: %w - expected price %s, status %s, price %s",
			bid.LotID, biddingerrors.ErrConcurrencyConflict, expectedPrice, lot.Status, lot.CurrentPrice)
	}

	bid.TenantID = tenantID
	ts.bids[bid.LotID] = append(ts.bids[bid.LotID], bid)

	lot.CurrentPrice = bid.Amount
	lot.BidCount++
	lot.UpdatedAt = r.now()
	ts.lots[bid.LotID] = lot

	for _, id := range ts.userLots[bid.UserID] {
		if id == bid.LotID {
			return lot, nil
		}
	}
	ts.userLots[bid.UserID] = append(ts.userLots[bid.UserID], bid.LotID)

	return lot, nil
}

// GetBidsByLot returns all bids for a lot in acceptance order
func (r *MemoryRepo) GetBidsByLot(_ context.Context, tenantID, lotID string) ([]models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	if _, ok := ts.lots[lotID]; !ok {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	bids := ts.bids[lotID]
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	return append([]models.Bid(nil), bids...), nil
}

// GetLeadingBid returns the highest bid for a lot
func (r *MemoryRepo) GetLeadingBid(_ context.Context, tenantID, lotID string) (models.Bid, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return models.Bid{}, fmt.Errorf("get leading bid for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	leading := leadingBid(ts.bids[lotID])
	if leading == nil {
		return models.Bid{}, fmt.Errorf("get leading bid for lot %s: %w", lotID, biddingerrors.ErrNoBids)
	}
	return *leading, nil
}

// leadingBid picks the highest amount, the earliest bid on ties
func leadingBid(bids []models.Bid) *models.Bid {
	if len(bids) == 0 {
		return nil
	}
	leading := bids[0]
	for _, b := range bids[1:] {
		if b.Amount.GreaterThan(leading.Amount) || (b.Amount.Equal(leading.Amount) && b.CreatedAt.Before(leading.CreatedAt)) {
			leading = b
		}
	}
	return &leading
}

// UpdateLot applies fn under the write lock shared with AppendBid
func (r *MemoryRepo) UpdateLot(_ context.Context, tenantID, lotID string, fn LotMutation) (models.Lot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.tenant(tenantID)
	if ts == nil {
		return models.Lot{}, fmt.Errorf("update lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}
	lot, ok := ts.lots[lotID]
	if !ok {
		return models.Lot{}, fmt.Errorf("update lot %s: %w", lotID, biddingerrors.ErrLotNotFound)
	}

	updated := lot
	if err := fn(&updated, leadingBid(ts.bids[lotID])); err != nil {
		if errors.Is(err, ErrNoChange) {
			return lot, nil
		}
		return models.Lot{}, err
	}
	updated.LotID, updated.TenantID, updated.AuctionID = lot.LotID, lot.TenantID, lot.AuctionID
	ts.lots[lotID] = updated

	return updated, nil
}

// GetLotsByUser returns all lots a user has bid on
func (r *MemoryRepo) GetLotsByUser(_ context.Context, tenantID, userID string) ([]models.Lot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts := r.tenant(tenantID)
	if ts == nil || len(ts.userLots[userID]) == 0 {
		return nil, fmt.Errorf("get lots for user %s: %w", userID, biddingerrors.ErrUserNoBids)
	}

	lotIDs := ts.userLots[userID]
	lots := make([]models.Lot, 0, len(lotIDs))
	for _, id := range lotIDs {
		if lot, exists := ts.lots[id]; exists {
			lots = append(lots, lot)
		}
	}
	return lots, nil
}

// SaveAuction creates or replaces an auction
func (r *MemoryRepo) SaveAuction(_ context.Context, auction models.Auction) error {
	if auction.TenantID == "" || auction.AuctionID == "" {
		return fmt.Errorf("save auction: missing tenant or auction ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenantForWrite(auction.TenantID).auctions[auction.AuctionID] = auction
	return nil
}

// SaveLot creates or replaces a lot. A new lot starts at its initial price; replacing a lot
// keeps its bid count and price once bidding started, and never reopens a closed lot.
func (r *MemoryRepo) SaveLot(_ context.Context, lot models.Lot) error {
	if lot.TenantID == "" || lot.LotID == "" {
		return fmt.Errorf("save lot: missing tenant or lot ID")
	}
	if err := checkLotPrices(lot); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	ts := r.tenantForWrite(lot.TenantID)
	if _, ok := ts.auctions[lot.AuctionID]; !ok {
		return fmt.Errorf("save lot %s: %w", lot.LotID, biddingerrors.ErrAuctionNotFound)
	}
	if existing, ok := ts.lots[lot.LotID]; ok {
		keepLiveState(&lot, existing)
	}
	if lot.BidCount == 0 {
		lot.CurrentPrice = lot.InitialPrice
	}
	now := r.now()
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = now
	}
	lot.UpdatedAt = now
	ts.lots[lot.LotID] = lot
	return nil
}

// keepLiveState carries the bidding outcome of an existing lot over a replacement
func keepLiveState(lot *models.Lot, existing models.Lot) {
	lot.CreatedAt = existing.CreatedAt
	if existing.BidCount > 0 {
		lot.CurrentPrice, lot.BidCount = existing.CurrentPrice, existing.BidCount
	}
	if existing.Status.IsTerminal() {
		lot.Status, lot.WinnerID, lot.ClosedAt = existing.Status, existing.WinnerID, existing.ClosedAt
	}
}

// checkLotPrices rejects lots whose prices cannot be stored in whole cents
func checkLotPrices(lot models.Lot) error {
	if lot.InitialPrice.IsNegative() || lot.BidIncrement.IsNegative() {
		return fmt.Errorf("save lot %s: %w - negative initial price or increment", lot.LotID, biddingerrors.ErrInvalidBid)
	}
	if !models.WholeCents(lot.InitialPrice) || !models.WholeCents(lot.BidIncrement) {
		return fmt.Errorf("save lot %s: %w - initial price %s and increment %s must be in whole cents",
			lot.LotID, biddingerrors.ErrInvalidBid, lot.InitialPrice, lot.BidIncrement)
	}
	return nil
}

// SaveHabilitation creates or replaces a habilitation record
func (r *MemoryRepo) SaveHabilitation(_ context.Context, h models.Habilitation) error {
	if h.TenantID == "" || h.UserID == "" || h.AuctionID == "" {
		return fmt.Errorf("save habilitation: missing tenant, user or auction ID")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tenantForWrite(h.TenantID).habilitations[habilitationKey(h.UserID, h.AuctionID)] = h
	return nil
}
