package repository

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Demo fixture identifiers
const (
	DemoAuctionID = "demo-auction"
	DemoUserA     = "demo-user-a"
	DemoUserB     = "demo-user-b"
)

// SeedDemo loads one open auction with a few lots into tenantID and habilitates the demo users.
// It only inserts: an auction or lot that already exists is left as it is, so running it
// against live data never rewinds a price or reopens a closed lot.
func SeedDemo(ctx context.Context, repo AuctionDB, tenantID string) error {
	_, err := repo.GetAuction(ctx, tenantID, DemoAuctionID)
	switch {
	case errors.Is(err, biddingerrors.ErrAuctionNotFound):
		auction := models.Auction{
			AuctionID: DemoAuctionID,
			TenantID:  tenantID,
			Title:     "Demo judicial auction",
			Status:    models.AuctionOpen,
		}
		if err := repo.SaveAuction(ctx, auction); err != nil {
			return fmt.Errorf("seed auction: %w", err)
		}
	case err != nil:
		return fmt.Errorf("seed auction: %w", err)
	}

	lots := []struct {
		id, title, price, increment string
		status                      models.LotStatus
	}{
		{"lot-1", "Apartment, 2 bedrooms", "1000", "100", models.LotOpenForBids},
		{"lot-2", "Pickup truck 2019", "250.50", "25", models.LotOpenForBids},
		{"lot-3", "Office furniture set", "5000", "250", models.LotDraft},
		{"lot-4", "Industrial lathe", "800", "0", models.LotOpenForBids},
	}
	for _, l := range lots {
		_, err := repo.GetLot(ctx, tenantID, l.id)
		if err == nil {
			continue
		}
		if !errors.Is(err, biddingerrors.ErrLotNotFound) {
			return fmt.Errorf("seed lot %s: %w", l.id, err)
		}

		lot := models.Lot{
			LotID:        l.id,
			TenantID:     tenantID,
			AuctionID:    DemoAuctionID,
			Title:        l.title,
			InitialPrice: decimal.RequireFromString(l.price),
			BidIncrement: decimal.RequireFromString(l.increment),
			Status:       l.status,
		}
		if err := repo.SaveLot(ctx, lot); err != nil {
			return fmt.Errorf("seed lot %s: %w", l.id, err)
		}
	}

	for _, u := range []string{DemoUserA, DemoUserB} {
		h := models.Habilitation{TenantID: tenantID, UserID: u, AuctionID: DemoAuctionID, Habilitated: true}
		if err := repo.SaveHabilitation(ctx, h); err != nil {
			return fmt.Errorf("seed habilitation %s: %w", u, err)
		}
	}
	return nil
}
