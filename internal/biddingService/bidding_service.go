package bidding

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/habilitation"
	"bidexpert/internal/lotstate"
	"bidexpert/internal/models"
	"bidexpert/internal/repository"
	"bidexpert/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

const defaultMaxBidAttempts = 5

// BiddingService defines the business logic for lot bidding and finalization
type BiddingService struct {
	repo        repository.AuctionDB
	gate        *habilitation.Gate
	validator   *Validator
	maxAttempts int
	now         func() time.Time
}

// Option configures a BiddingService
type Option func(*BiddingService)

// WithDefaultIncrement sets the increment used for lots that carry none
func WithDefaultIncrement(inc decimal.Decimal) Option {
	return func(s *BiddingService) { s.validator = NewValidator(inc) }
}

// WithMaxBidAttempts bounds how often a bid is revalidated after losing a race
func WithMaxBidAttempts(n int) Option {
	return func(s *BiddingService) {
		if n > 0 {
			s.maxAttempts = n
		}
	}
}

// WithClock overrides the time source for bid and finalization timestamps
func WithClock(now func() time.Time) Option {
	return func(s *BiddingService) { s.now = now }
}

// NewBiddingService creates a new BiddingService instance
func NewBiddingService(repo repository.AuctionDB, opts ...Option) *BiddingService {
	s := &BiddingService{
		repo:        repo,
		gate:        habilitation.NewGate(repo),
		validator:   NewValidator(decimal.Zero),
		maxAttempts: defaultMaxBidAttempts,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// PlaceBid validates and records a user's bid on a lot.
// Expected rejections come back as *biddingerrors.RejectionError.
func (s *BiddingService) PlaceBid(ctx context.Context, tenantID, userID, auctionID, lotID string, amount decimal.Decimal) (models.BidReceipt, error) {
	if err := s.validateInput(tenantID, userID, auctionID, lotID, amount); err != nil {
		return models.BidReceipt{}, err
	}

	ok, err := s.gate.Check(ctx, tenantID, userID, auctionID)
	if err != nil {
		return models.BidReceipt{}, fmt.Errorf("service: %w", err)
	}
	if !ok {
		return models.BidReceipt{}, biddingerrors.NotHabilitated()
	}

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		auction, lot, err := s.loadSnapshot(ctx, tenantID, auctionID, lotID)
		if err != nil {
			return models.BidReceipt{}, err
		}
		if err := s.validator.Validate(auction, lot, amount); err != nil {
			return models.BidReceipt{}, err
		}

		bid := models.Bid{
			BidID:     utils.GenerateBidID(),
			TenantID:  tenantID,
			LotID:     lotID,
			AuctionID: auctionID,
			UserID:    userID,
			Amount:    amount,
			CreatedAt: s.now(),
		}

		updated, err := s.repo.AppendBid(ctx, tenantID, bid, lot.CurrentPrice)
		if err == nil {
			return models.BidReceipt{Bid: bid, NewPrice: updated.CurrentPrice, BidCount: updated.BidCount}, nil
		}
		if !errors.Is(err, biddingerrors.ErrConcurrencyConflict) {
			return models.BidReceipt{}, fmt.Errorf("service: failed to record bid on lot %s by user %s: %w",
				lotID, userID, biddingerrors.Classify(err))
		}

		utils.Debug("bid lost a race, revalidating", map[string]any{
			"tenant_id": tenantID,
			"lot_id":    lotID,
			"attempt":   attempt,
			"amount":    amount.String(),
		})
	}

	return models.BidReceipt{}, fmt.Errorf("service: %w - lot %s still contended after %d attempts",
		biddingerrors.ErrConcurrencyConflict, lotID, s.maxAttempts)
}

// validateInput rejects malformed requests before any store is touched
func (s *BiddingService) validateInput(tenantID, userID, auctionID, lotID string, amount decimal.Decimal) error {
	if tenantID == "" || userID == "" || auctionID == "" || lotID == "" {
		return fmt.Errorf("service: %w - missing tenant, user, auction or lot ID", biddingerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return fmt.Errorf("service: %w - non-positive bid amount", biddingerrors.ErrInvalidBid)
	}
	if !validAmount(amount) {
		return fmt.Errorf("service: %w - amount %s has more than %d decimals",
			biddingerrors.ErrInvalidBid, amount, monetaryPrecision)
	}
	return nil
}

func (s *BiddingService) loadSnapshot(ctx context.Context, tenantID, auctionID, lotID string) (models.Auction, models.Lot, error) {
	auction, err := s.repo.GetAuction(ctx, tenantID, auctionID)
	if err != nil {
		return models.Auction{}, models.Lot{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, biddingerrors.Classify(err))
	}
	lot, err := s.repo.GetLot(ctx, tenantID, lotID)
	if err != nil {
		return models.Auction{}, models.Lot{}, fmt.Errorf("service: failed to load lot %s: %w", lotID, biddingerrors.Classify(err))
	}
	if lot.AuctionID != auctionID {
		return models.Auction{}, models.Lot{}, fmt.Errorf("service: %w - lot %s is not part of auction %s",
			biddingerrors.ErrLotNotFound, lotID, auctionID)
	}
	return auction, lot, nil
}

// FinalizeLot closes an open lot and assigns the leading bidder as winner.
// Finalizing a lot that is already SOLD or UNSOLD returns its recorded outcome.
func (s *BiddingService) FinalizeLot(ctx context.Context, tenantID, lotID string) (models.FinalizeResult, error) {
	if tenantID == "" || lotID == "" {
		return models.FinalizeResult{}, fmt.Errorf("service: %w - missing tenant or lot ID", biddingerrors.ErrInvalidBid)
	}

	var result models.FinalizeResult
	_, err := s.repo.UpdateLot(ctx, tenantID, lotID, func(lot *models.Lot, leading *models.Bid) error {
		res, err := lotstate.Finalize(lot, leading, s.now())
		if err != nil {
			return err
		}
		result = res
		if res.AlreadyFinalized {
			return repository.ErrNoChange
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, biddingerrors.ErrInvalidFinalizationState) {
			utils.Error("finalize called on a lot that never opened", map[string]any{
				"tenant_id": tenantID,
				"lot_id":    lotID,
				"error":     err.Error(),
			})
		}
		return models.FinalizeResult{}, fmt.Errorf("service: failed to finalize lot %s: %w", lotID, biddingerrors.Classify(err))
	}

	return result, nil
}

// TransitionLot moves a lot through the non-terminal part of its lifecycle
func (s *BiddingService) TransitionLot(ctx context.Context, tenantID, lotID string, to models.LotStatus) (models.Lot, error) {
	if tenantID == "" || lotID == "" {
		return models.Lot{}, fmt.Errorf("service: %w - missing tenant or lot ID", biddingerrors.ErrInvalidBid)
	}

	lot, err := s.repo.UpdateLot(ctx, tenantID, lotID, func(lot *models.Lot, _ *models.Bid) error {
		return lotstate.Transition(lot, to, s.now())
	})
	if err != nil {
		return models.Lot{}, fmt.Errorf("service: failed to move lot %s to %s: %w", lotID, to, biddingerrors.Classify(err))
	}
	return lot, nil
}

// GetLot returns the current snapshot of a lot
func (s *BiddingService) GetLot(ctx context.Context, tenantID, lotID string) (models.Lot, error) {
	if tenantID == "" || lotID == "" {
		return models.Lot{}, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrInvalidBid)
	}

	lot, err := s.repo.GetLot(ctx, tenantID, lotID)
	if err != nil {
		return models.Lot{}, fmt.Errorf("service: failed to get lot %s: %w", lotID, biddingerrors.Classify(err))
	}
	return lot, nil
}

// GetBidsForLot returns all bids for a lot in acceptance order
func (s *BiddingService) GetBidsForLot(ctx context.Context, tenantID, lotID string) ([]models.Bid, error) {
	if tenantID == "" || lotID == "" {
		return nil, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrInvalidBid)
	}

	bids, err := s.repo.GetBidsByLot(ctx, tenantID, lotID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get bids for lot %s: %w", lotID, biddingerrors.Classify(err))
	}
	return bids, nil
}

// GetLeadingBid returns the highest bid for a lot
func (s *BiddingService) GetLeadingBid(ctx context.Context, tenantID, lotID string) (models.Bid, error) {
	if tenantID == "" || lotID == "" {
		return models.Bid{}, fmt.Errorf("service: %w - empty lot ID", biddingerrors.ErrInvalidBid)
	}

	bid, err := s.repo.GetLeadingBid(ctx, tenantID, lotID)
	if err != nil {
		return models.Bid{}, fmt.Errorf("service: failed to get leading bid for lot %s: %w", lotID, biddingerrors.Classify(err))
	}
	return bid, nil
}

// GetLotsByUser returns all lots a user has placed bids on
func (s *BiddingService) GetLotsByUser(ctx context.Context, tenantID, userID string) ([]models.Lot, error) {
	if tenantID == "" || userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", biddingerrors.ErrInvalidBid)
	}

	lots, err := s.repo.GetLotsByUser(ctx, tenantID, userID)
	if err != nil {
		return nil, fmt.Errorf("service: failed to get lots for user %s: %w", userID, biddingerrors.Classify(err))
	}
	return lots, nil
}

// IsHabilitated reports whether a user may bid in an auction
func (s *BiddingService) IsHabilitated(ctx context.Context, tenantID, userID, auctionID string) (bool, error) {
	ok, err := s.gate.Check(ctx, tenantID, userID, auctionID)
	if err != nil {
		return false, fmt.Errorf("service: %w", err)
	}
	return ok, nil
}

// GrantHabilitation allows a user to bid in an existing auction
func (s *BiddingService) GrantHabilitation(ctx context.Context, tenantID, userID, auctionID string) (models.Habilitation, error) {
	if tenantID == "" || userID == "" || auctionID == "" {
		return models.Habilitation{}, fmt.Errorf("service: %w - missing tenant, user or auction ID", biddingerrors.ErrInvalidBid)
	}
	if _, err := s.repo.GetAuction(ctx, tenantID, auctionID); err != nil {
		return models.Habilitation{}, fmt.Errorf("service: failed to load auction %s: %w", auctionID, biddingerrors.Classify(err))
	}

	h, err := s.gate.Grant(ctx, tenantID, userID, auctionID)
	if err != nil {
		return models.Habilitation{}, fmt.Errorf("service: %w", err)
	}
	return h, nil
}
