package helpers

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"time"

	"github.com/shopspring/decimal"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	AuctionID string          `json:"auction_id" binding:"required"`
	LotID     string          `json:"lot_id" binding:"required"`
	UserID    string          `json:"user_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount"`
}

type BidResponse struct {
	BidID     string          `json:"bid_id"`
	LotID     string          `json:"lot_id"`
	AuctionID string          `json:"auction_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt string          `json:"created_at"`
}

// BidResult is the outcome of a bid attempt, accepted or rejected
type BidResult struct {
	Success    bool             `json:"success"`
	Kind       string           `json:"kind,omitempty"`
	Message    string           `json:"message"`
	MinimumBid *decimal.Decimal `json:"minimum_bid,omitempty"`
	NewPrice   *decimal.Decimal `json:"new_price,omitempty"`
	BidCount   int              `json:"bid_count,omitempty"`
	Bid        *BidResponse     `json:"bid,omitempty"`
}

type FinalizeResponse struct {
	Success          bool             `json:"success"`
	LotID            string           `json:"lot_id"`
	Status           models.LotStatus `json:"status"`
	WinnerID         *string          `json:"winner_id,omitempty"`
	FinalPrice       *decimal.Decimal `json:"final_price,omitempty"`
	AlreadyFinalized bool             `json:"already_finalized"`
	Message          string           `json:"message"`
}

type TransitionRequest struct {
	Status models.LotStatus `json:"status" binding:"required"`
}

type HabilitationRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type HabilitationResponse struct {
	AuctionID   string `json:"auction_id"`
	UserID      string `json:"user_id"`
	Habilitated bool   `json:"habilitated"`
}

// NewBidResponse converts a recorded bid
func NewBidResponse(bid models.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		LotID:     bid.LotID,
		AuctionID: bid.AuctionID,
		UserID:    bid.UserID,
		Amount:    bid.Amount,
		CreatedAt: bid.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

// AcceptedResult builds the result for a recorded bid
func AcceptedResult(receipt models.BidReceipt) BidResult {
	bid := NewBidResponse(receipt.Bid)
	price := receipt.NewPrice
	return BidResult{
		Success:  true,
		Message:  "bid accepted",
		NewPrice: &price,
		BidCount: receipt.BidCount,
		Bid:      &bid,
	}
}

// RejectedResult builds the result for a bid the engine refused
func RejectedResult(rej *biddingerrors.RejectionError) BidResult {
	return BidResult{
		Success:    false,
		Kind:       string(rej.Kind),
		Message:    rej.Message,
		MinimumBid: rej.Minimum,
	}
}

// NewFinalizeResponse converts a finalization outcome
func NewFinalizeResponse(res models.FinalizeResult) FinalizeResponse {
	return FinalizeResponse{
		Success:          true,
		LotID:            res.LotID,
		Status:           res.Status,
		WinnerID:         res.WinnerID,
		FinalPrice:       res.FinalPrice,
		AlreadyFinalized: res.AlreadyFinalized,
		Message:          res.Message,
	}
}
