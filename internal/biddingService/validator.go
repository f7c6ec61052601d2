package bidding

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"fmt"

	"github.com/shopspring/decimal"
)

const monetaryPrecision = models.MonetaryPrecision

// Validator enforces the minimum-increment rule against a lot snapshot
type Validator struct {
	defaultIncrement decimal.Decimal
}

// NewValidator creates a validator. defaultIncrement applies to lots without their own
// increment; zero means no default is configured.
func NewValidator(defaultIncrement decimal.Decimal) *Validator {
	return &Validator{defaultIncrement: defaultIncrement}
}

// EffectiveIncrement returns the minimum raise for lot
func (v *Validator) EffectiveIncrement(lot models.Lot) (decimal.Decimal, error) {
	if lot.BidIncrement.IsPositive() {
		return lot.BidIncrement, nil
	}
	if v.defaultIncrement.IsPositive() {
		return v.defaultIncrement, nil
	}
	return decimal.Zero, fmt.Errorf("validator: %w - lot %s has no increment and no default is set",
		biddingerrors.ErrIncrementNotConfigured, lot.LotID)
}

// MinimumBid returns current price + increment
func (v *Validator) MinimumBid(lot models.Lot) (decimal.Decimal, error) {
	inc, err := v.EffectiveIncrement(lot)
	if err != nil {
		return decimal.Zero, err
	}
	return lot.CurrentPrice.Add(inc), nil
}

// Validate checks a proposed amount against the auction and lot snapshots.
// Rejections are *biddingerrors.RejectionError values.
func (v *Validator) Validate(auction models.Auction, lot models.Lot, amount decimal.Decimal) error {
	if lot.Status != models.LotOpenForBids {
		return biddingerrors.LotNotOpen(fmt.Sprintf("lot is not open for bids (status %s)", lot.Status))
	}
	if auction.Status != models.AuctionOpen {
		return biddingerrors.LotNotOpen(fmt.Sprintf("auction is not open for bids (status %s)", auction.Status))
	}

	minimum, err := v.MinimumBid(lot)
	if err != nil {
		return err
	}
	if amount.LessThan(minimum) {
		return biddingerrors.BidTooLow(minimum)
	}
	return nil
}

// validAmount reports whether amount is a positive value in whole cents
func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && models.WholeCents(amount)
}
