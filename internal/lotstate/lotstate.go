// Package lotstate governs lot status transitions and finalization.
package lotstate

import (
	"fmt"
	"time"

	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
)

var transitions = map[models.LotStatus][]models.LotStatus{
	models.LotDraft:       {models.LotSoon, models.LotOpenForBids},
	models.LotSoon:        {models.LotOpenForBids},
	models.LotOpenForBids: {models.LotSold, models.LotUnsold},
}

// CanTransition reports whether a lot may move from one status to another
func CanTransition(from, to models.LotStatus) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition applies a manual status change. Terminal states are only reachable through Finalize.
func Transition(lot *models.Lot, to models.LotStatus, now time.Time) error {
	if !to.Valid() {
		return fmt.Errorf("lotstate: %w - unknown status %q", biddingerrors.ErrInvalidTransition, to)
	}
	if to.IsTerminal() {
		return fmt.Errorf("lotstate: %w - %s is reached by finalizing the lot", biddingerrors.ErrInvalidTransition, to)
	}
	if !CanTransition(lot.Status, to) {
		return fmt.Errorf("lotstate: %w - %s to %s", biddingerrors.ErrInvalidTransition, lot.Status, to)
	}
	lot.Status = to
	lot.UpdatedAt = now
	return nil
}

// Finalize closes an open lot using its leading bid. leading is nil when the lot has no bids.
// A lot that is already SOLD or UNSOLD is left untouched and its existing outcome is returned.
func Finalize(lot *models.Lot, leading *models.Bid, now time.Time) (models.FinalizeResult, error) {
	if lot.Status.IsTerminal() {
		res := Outcome(*lot)
		res.AlreadyFinalized = true
		res.Message = biddingerrors.ErrAlreadyFinalized.Error()
		return res, nil
	}
	if lot.Status != models.LotOpenForBids {
		return models.FinalizeResult{}, fmt.Errorf("lotstate: %w - lot %s is %s",
			biddingerrors.ErrInvalidFinalizationState, lot.LotID, lot.Status)
	}

	if leading != nil {
		winner := leading.UserID
		lot.Status = models.LotSold
		lot.WinnerID = &winner
		lot.CurrentPrice = leading.Amount
	} else {
		lot.Status = models.LotUnsold
		lot.WinnerID = nil
	}
	lot.ClosedAt = &now
	lot.UpdatedAt = now

	res := Outcome(*lot)
	if leading != nil {
		res.Message = "lot sold"
	} else {
		res.Message = "lot closed without bids"
	}
	return res, nil
}

// Outcome derives the finalization result recorded on a terminal lot
func Outcome(lot models.Lot) models.FinalizeResult {
	res := models.FinalizeResult{LotID: lot.LotID, Status: lot.Status}
	if lot.Status == models.LotSold && lot.WinnerID != nil {
		winner := *lot.WinnerID
		price := lot.CurrentPrice
		res.WinnerID = &winner
		res.FinalPrice = &price
	}
	return res
}
