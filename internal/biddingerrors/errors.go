package biddingerrors

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Repository-level errors
var (
	ErrLotNotFound     = errors.New("lot not found")
	ErrAuctionNotFound = errors.New("auction not found")
	ErrNoBids          = errors.New("no bids found for lot")
	ErrUserNoBids      = errors.New("user has not placed any bids")
)

// business logic errors
var (
	ErrInvalidBid               = errors.New("invalid bid")
	ErrNotHabilitated           = errors.New("user is not habilitated for this auction")
	ErrLotNotOpen               = errors.New("lot is not open for bids")
	ErrBidTooLow                = errors.New("bid amount too low")
	ErrAlreadyFinalized         = errors.New("lot already finalized")
	ErrInvalidFinalizationState = errors.New("lot cannot be finalized from its current state")
	ErrInvalidTransition        = errors.New("invalid lot status transition")
)

// infrastructure and configuration errors
var (
	ErrPersistenceUnavailable = errors.New("persistence unavailable")
	ErrConcurrencyConflict    = errors.New("concurrent update conflict")
	ErrIncrementNotConfigured = errors.New("bid increment not configured")
)

// Kind classifies a rejected bid for callers rendering the outcome
type Kind string

const (
	KindNotHabilitated Kind = "NOT_HABILITATED"
	KindLotNotOpen     Kind = "LOT_NOT_OPEN"
	KindBidTooLow      Kind = "BID_TOO_LOW"
)

// RejectionError is an expected, user-recoverable bid rejection.
// Message is safe to display as is.
type RejectionError struct {
	Kind    Kind
	Message string
	Minimum *decimal.Decimal
	reason  error
}

func (e *RejectionError) Error() string { return e.Message }

func (e *RejectionError) Unwrap() error { return e.reason }

// NotHabilitated builds the rejection for a user without habilitation
func NotHabilitated() *RejectionError {
	return &RejectionError{
		Kind:    KindNotHabilitated,
		Message: "you are not habilitated to bid in this auction",
		reason:  ErrNotHabilitated,
	}
}

// LotNotOpen builds the rejection for a lot or auction not accepting bids
func LotNotOpen(message string) *RejectionError {
	return &RejectionError{Kind: KindLotNotOpen, Message: message, reason: ErrLotNotOpen}
}

// BidTooLow builds the rejection carrying the minimum acceptable amount
func BidTooLow(minimum decimal.Decimal) *RejectionError {
	return &RejectionError{
		Kind:    KindBidTooLow,
		Message: "bid amount too low: minimum acceptable bid is " + minimum.StringFixed(2),
		Minimum: &minimum,
		reason:  ErrBidTooLow,
	}
}

// AsRejection extracts a RejectionError from err, if any
func AsRejection(err error) (*RejectionError, bool) {
	var rej *RejectionError
	if errors.As(err, &rej) {
		return rej, true
	}
	return nil, false
}

// IsRetryable reports whether err is a transient infrastructure failure
func IsRetryable(err error) bool {
	return errors.Is(err, ErrConcurrencyConflict) || errors.Is(err, ErrPersistenceUnavailable)
}

var known = []error{
	ErrLotNotFound, ErrAuctionNotFound, ErrNoBids, ErrUserNoBids,
	ErrInvalidBid, ErrNotHabilitated, ErrLotNotOpen, ErrBidTooLow, ErrAlreadyFinalized,
	ErrInvalidFinalizationState, ErrInvalidTransition,
	ErrPersistenceUnavailable, ErrConcurrencyConflict, ErrIncrementNotConfigured,
	context.Canceled, context.DeadlineExceeded,
}

// Classify returns err unchanged when it already carries a known kind.
// Anything else coming from a store is treated as ErrPersistenceUnavailable.
func Classify(err error) error {
	if err == nil {
		return nil
	}
	for _, k := range known {
		if errors.Is(err, k) {
			return err
		}
	}
	return fmt.Errorf("%w: %w", ErrPersistenceUnavailable, err)
}
