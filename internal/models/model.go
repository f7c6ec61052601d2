package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// LotStatus is the lifecycle state of a lot
type LotStatus string

const (
	LotDraft       LotStatus = "DRAFT"
	LotSoon        LotStatus = "SOON"
	LotOpenForBids LotStatus = "OPEN_FOR_BIDS"
	LotSold        LotStatus = "SOLD"
	LotUnsold      LotStatus = "UNSOLD"
)

// IsTerminal reports whether no further transition is possible
func (s LotStatus) IsTerminal() bool {
	return s == LotSold || s == LotUnsold
}

// Valid reports whether s is a known lot status
func (s LotStatus) Valid() bool {
	switch s {
	case LotDraft, LotSoon, LotOpenForBids, LotSold, LotUnsold:
		return true
	}
	return false
}

// AuctionStatus is the state of the auction grouping the lots
type AuctionStatus string

const (
	AuctionDraft     AuctionStatus = "DRAFT"
	AuctionScheduled AuctionStatus = "SCHEDULED"
	AuctionOpen      AuctionStatus = "OPEN"
	AuctionClosed    AuctionStatus = "CLOSED"
	AuctionCancelled AuctionStatus = "CANCELLED"
)

// Auction groups lots. Only its status matters for bidding.
type Auction struct {
	AuctionID string        `json:"auction_id"`
	TenantID  string        `json:"tenant_id"`
	Title     string        `json:"title"`
	Status    AuctionStatus `json:"status"`
}

// MonetaryPrecision is the number of decimals every money value carries (cents)
const MonetaryPrecision int32 = 2

// WholeCents reports whether d has no fraction below one cent
func WholeCents(d decimal.Decimal) bool {
	return d.Equal(d.Round(MonetaryPrecision))
}

// Lot represents a single auctionable item or bundle
type Lot struct {
	LotID        string          `json:"lot_id"`
	TenantID     string          `json:"tenant_id"`
	AuctionID    string          `json:"auction_id"`
	Title        string          `json:"title"`
	InitialPrice decimal.Decimal `json:"initial_price"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	BidIncrement decimal.Decimal `json:"bid_increment"`
	Status       LotStatus       `json:"status"`
	WinnerID     *string         `json:"winner_id,omitempty"`
	BidCount     int             `json:"bid_count"`
	ClosedAt     *time.Time      `json:"closed_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Bid represents an accepted, immutable offer on a lot
type Bid struct {
	BidID     string          `json:"bid_id"`
	TenantID  string          `json:"tenant_id"`
	LotID     string          `json:"lot_id"`
	AuctionID string          `json:"auction_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// Habilitation authorizes a user to bid within an auction
type Habilitation struct {
	TenantID    string    `json:"tenant_id"`
	UserID      string    `json:"user_id"`
	AuctionID   string    `json:"auction_id"`
	Habilitated bool      `json:"habilitated"`
	GrantedAt   time.Time `json:"granted_at"`
}

// BidReceipt is returned for an accepted bid
type BidReceipt struct {
	Bid      Bid             `json:"bid"`
	NewPrice decimal.Decimal `json:"new_price"`
	BidCount int             `json:"bid_count"`
}

// FinalizeResult describes the outcome of closing a lot
type FinalizeResult struct {
	LotID            string           `json:"lot_id"`
	Status           LotStatus        `json:"status"`
	WinnerID         *string          `json:"winner_id,omitempty"`
	FinalPrice       *decimal.Decimal `json:"final_price,omitempty"`
	AlreadyFinalized bool             `json:"already_finalized"`
	Message          string           `json:"message"`
}
