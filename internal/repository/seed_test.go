package repository

import (
	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()

	require.NoError(t, SeedDemo(ctx, repo, "demo"))

	auction, err := repo.GetAuction(ctx, "demo", DemoAuctionID)
	require.NoError(t, err)
	require.Equal(t, models.AuctionOpen, auction.Status)

	lot, err := repo.GetLot(ctx, "demo", "lot-2")
	require.NoError(t, err)
	require.True(t, lot.CurrentPrice.Equal(decimal.RequireFromString("250.50")))

	ok, err := repo.IsHabilitated(ctx, "demo", DemoUserA, DemoAuctionID)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = repo.GetLot(ctx, "other", "lot-1")
	require.True(t, errors.Is(err, biddingerrors.ErrLotNotFound))
}

func TestSeedDemo_KeepsLiveLots(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepo()
	require.NoError(t, SeedDemo(ctx, repo, "demo"))

	bid := models.Bid{
		BidID:     "bid1",
		TenantID:  "demo",
		LotID:     "lot-1",
		AuctionID: DemoAuctionID,
		UserID:    DemoUserA,
		Amount:    decimal.NewFromInt(5000),
		CreatedAt: time.Now(),
	}
	_, err := repo.AppendBid(ctx, "demo", bid, decimal.NewFromInt(1000))
	require.NoError(t, err)

	_, err = repo.UpdateLot(ctx, "demo", "lot-4", func(lot *models.Lot, _ *models.Bid) error {
		lot.Status = models.LotUnsold
		return nil
	})
	require.NoError(t, err)

	// a second run over live data is a no-op for existing lots
	require.NoError(t, SeedDemo(ctx, repo, "demo"))

	lot, err := repo.GetLot(ctx, "demo", "lot-1")
	require.NoError(t, err)
	require.True(t, lot.CurrentPrice.Equal(decimal.NewFromInt(5000)))
	require.Equal(t, 1, lot.BidCount)

	leading, err := repo.GetLeadingBid(ctx, "demo", "lot-1")
	require.NoError(t, err)
	require.True(t, leading.Amount.Equal(lot.CurrentPrice))

	closed, err := repo.GetLot(ctx, "demo", "lot-4")
	require.NoError(t, err)
	require.Equal(t, models.LotUnsold, closed.Status)
}

func TestSeedDemo_StoreFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockAuctionDB(ctrl)
	gomock.InOrder(
		mockRepo.EXPECT().GetAuction(gomock.Any(), "demo", DemoAuctionID).Return(models.Auction{}, biddingerrors.ErrAuctionNotFound),
		mockRepo.EXPECT().SaveAuction(gomock.Any(), gomock.Any()).Return(nil),
		mockRepo.EXPECT().GetLot(gomock.Any(), "demo", "lot-1").Return(models.Lot{}, biddingerrors.ErrLotNotFound),
		mockRepo.EXPECT().SaveLot(gomock.Any(), gomock.Any()).Return(biddingerrors.ErrPersistenceUnavailable),
	)

	err := SeedDemo(context.Background(), mockRepo, "demo")
	require.True(t, errors.Is(err, biddingerrors.ErrPersistenceUnavailable))
}

func TestSeedDemo_LookupFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockRepo := NewMockAuctionDB(ctrl)
	mockRepo.EXPECT().GetAuction(gomock.Any(), "demo", DemoAuctionID).Return(models.Auction{}, biddingerrors.ErrPersistenceUnavailable)

	err := SeedDemo(context.Background(), mockRepo, "demo")
	require.True(t, errors.Is(err, biddingerrors.ErrPersistenceUnavailable))
}
