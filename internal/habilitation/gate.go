// Package habilitation answers whether a user may bid within an auction.
package habilitation

import (
	"context"
	"fmt"
	"time"

	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
)

// Store is the read/write side of habilitation records the gate needs
type Store interface {
	IsHabilitated(ctx context.Context, tenantID, userID, auctionID string) (bool, error)
	SaveHabilitation(ctx context.Context, h models.Habilitation) error
}

// Gate checks habilitation before a bid reaches the ledger
type Gate struct {
	store Store
	now   func() time.Time
}

// NewGate creates a gate backed by store
func NewGate(store Store) *Gate {
	return &Gate{store: store, now: func() time.Time { return time.Now().UTC() }}
}

// Check reports whether userID is habilitated for auctionID. No record means false, not an error.
func (g *Gate) Check(ctx context.Context, tenantID, userID, auctionID string) (bool, error) {
	if tenantID == "" || userID == "" || auctionID == "" {
		return false, fmt.Errorf("habilitation: %w - missing tenant, user or auction ID", biddingerrors.ErrInvalidBid)
	}

	ok, err := g.store.IsHabilitated(ctx, tenantID, userID, auctionID)
	if err != nil {
		return false, fmt.Errorf("habilitation: check user %s in auction %s: %w", userID, auctionID, biddingerrors.Classify(err))
	}
	return ok, nil
}

// Grant records that userID may bid in auctionID
func (g *Gate) Grant(ctx context.Context, tenantID, userID, auctionID string) (models.Habilitation, error) {
	if tenantID == "" || userID == "" || auctionID == "" {
		return models.Habilitation{}, fmt.Errorf("habilitation: %w - missing tenant, user or auction ID", biddingerrors.ErrInvalidBid)
	}

	h := models.Habilitation{
		TenantID:    tenantID,
		UserID:      userID,
		AuctionID:   auctionID,
		Habilitated: true,
		GrantedAt:   g.now(),
	}
	if err := g.store.SaveHabilitation(ctx, h); err != nil {
		return models.Habilitation{}, fmt.Errorf("habilitation: grant user %s in auction %s: %w", userID, auctionID, biddingerrors.Classify(err))
	}
	return h, nil
}
