package perftests

import (
	"context"
	"fmt"
	"testing"

	bidding "bidexpert/internal/biddingService"
	"bidexpert/internal/models"
	"bidexpert/internal/repository"

	"github.com/shopspring/decimal"
)

const (
	benchTenant  = "bench"
	benchAuction = "bench_auction"
)

func lotID(i int) string  { return fmt.Sprintf("lot_%d", i) }
func userID(i int) string { return fmt.Sprintf("user_%d", i) }

// setupService seeds an open auction with numLots lots at 100 (increment 1) and numUsers habilitated bidders
func setupService(b *testing.B, numLots, numUsers int) *bidding.BiddingService {
	b.Helper()

	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	if err := repo.SaveAuction(ctx, models.Auction{AuctionID: benchAuction, TenantID: benchTenant, Status: models.AuctionOpen}); err != nil {
		b.Fatal(err)
	}
	for i := 0; i < numLots; i++ {
		lot := models.Lot{
			LotID:        lotID(i),
			TenantID:     benchTenant,
			AuctionID:    benchAuction,
			Title:        fmt.Sprintf("Benchmark lot %d", i),
			InitialPrice: decimal.NewFromInt(100),
			BidIncrement: decimal.NewFromInt(1),
			Status:       models.LotOpenForBids,
		}
		if err := repo.SaveLot(ctx, lot); err != nil {
			b.Fatal(err)
		}
	}
	for i := 0; i < numUsers; i++ {
		h := models.Habilitation{TenantID: benchTenant, UserID: userID(i), AuctionID: benchAuction, Habilitated: true}
		if err := repo.SaveHabilitation(ctx, h); err != nil {
			b.Fatal(err)
		}
	}
	return bidding.NewBiddingService(repo, bidding.WithMaxBidAttempts(10))
}
