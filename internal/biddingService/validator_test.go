package bidding

import (
	"errors"
	"testing"

	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

var openAuction = models.Auction{AuctionID: "auction1", TenantID: "tenant1", Status: models.AuctionOpen}

func lotAt(price, increment string, status models.LotStatus) models.Lot {
	return models.Lot{
		LotID:        "lot1",
		TenantID:     "tenant1",
		AuctionID:    "auction1",
		InitialPrice: decimal.RequireFromString(price),
		CurrentPrice: decimal.RequireFromString(price),
		BidIncrement: decimal.RequireFromString(increment),
		Status:       status,
	}
}

func TestValidator_Validate(t *testing.T) {
	v := NewValidator(decimal.Zero)

	tests := []struct {
		name        string
		auction     models.Auction
		lot         models.Lot
		amount      string
		wantKind    biddingerrors.Kind
		wantMinimum string
		wantError   error
	}{
		{name: "exact_minimum", auction: openAuction, lot: lotAt("1000", "100", models.LotOpenForBids), amount: "1100"},
		{name: "above_minimum", auction: openAuction, lot: lotAt("1000", "100", models.LotOpenForBids), amount: "1250.50"},
		{name: "below_minimum", auction: openAuction, lot: lotAt("1000", "100", models.LotOpenForBids), amount: "1050", wantKind: biddingerrors.KindBidTooLow, wantMinimum: "1100"},
		{name: "one_cent_short", auction: openAuction, lot: lotAt("1000", "100", models.LotOpenForBids), amount: "1099.99", wantKind: biddingerrors.KindBidTooLow, wantMinimum: "1100"},
		{name: "decimal_increment", auction: openAuction, lot: lotAt("0.10", "0.20", models.LotOpenForBids), amount: "0.30"},
		{name: "lot_draft", auction: openAuction, lot: lotAt("1000", "100", models.LotDraft), amount: "5000", wantKind: biddingerrors.KindLotNotOpen},
		{name: "lot_sold", auction: openAuction, lot: lotAt("1000", "100", models.LotSold), amount: "5000", wantKind: biddingerrors.KindLotNotOpen},
		{name: "auction_closed", auction: models.Auction{Status: models.AuctionClosed}, lot: lotAt("1000", "100", models.LotOpenForBids), amount: "5000", wantKind: biddingerrors.KindLotNotOpen},
		{name: "no_increment_no_default", auction: openAuction, lot: lotAt("1000", "0", models.LotOpenForBids), amount: "5000", wantError: biddingerrors.ErrIncrementNotConfigured},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := v.Validate(tc.auction, tc.lot, decimal.RequireFromString(tc.amount))

			switch {
			case tc.wantError != nil:
				require.True(t, errors.Is(err, tc.wantError), "expected %v, got %v", tc.wantError, err)
				_, isRejection := biddingerrors.AsRejection(err)
				require.False(t, isRejection)
			case tc.wantKind != "":
				rej, ok := biddingerrors.AsRejection(err)
				require.True(t, ok, "expected rejection, got %v", err)
				require.Equal(t, tc.wantKind, rej.Kind)
				if tc.wantMinimum != "" {
					require.True(t, rej.Minimum.Equal(decimal.RequireFromString(tc.wantMinimum)))
				}
			default:
				require.NoError(t, err)
			}
		})
	}
}

func TestValidator_DefaultIncrement(t *testing.T) {
	v := NewValidator(decimal.NewFromInt(50))

	minimum, err := v.MinimumBid(lotAt("1000", "0", models.LotOpenForBids))
	require.NoError(t, err)
	require.True(t, minimum.Equal(decimal.NewFromInt(1050)))

	// a lot-specific increment wins over the default
	minimum, err = v.MinimumBid(lotAt("1000", "100", models.LotOpenForBids))
	require.NoError(t, err)
	require.True(t, minimum.Equal(decimal.NewFromInt(1100)))
}

func TestValidAmount(t *testing.T) {
	require.True(t, validAmount(decimal.RequireFromString("1100")))
	require.True(t, validAmount(decimal.RequireFromString("1100.05")))
	require.True(t, validAmount(decimal.RequireFromString("1100.500")))
	require.False(t, validAmount(decimal.RequireFromString("1100.001")))
	require.False(t, validAmount(decimal.Zero))
	require.False(t, validAmount(decimal.NewFromInt(-5)))
}

// rejecting X on a lot at price P with increment I always reports P + I
func TestProperty_RejectionReportsMinimum(t *testing.T) {
	v := NewValidator(decimal.Zero)

	rapid.Check(t, func(t *rapid.T) {
		priceCents := rapid.Int64Range(0, 100_000_000).Draw(t, "priceCents")
		incCents := rapid.Int64Range(1, 1_000_000).Draw(t, "incCents")
		below := rapid.Int64Range(1, incCents+priceCents).Draw(t, "below")

		lot := models.Lot{
			LotID:        "lot1",
			CurrentPrice: decimal.New(priceCents, -monetaryPrecision),
			BidIncrement: decimal.New(incCents, -monetaryPrecision),
			Status:       models.LotOpenForBids,
		}
		minimum := lot.CurrentPrice.Add(lot.BidIncrement)
		amount := decimal.New(priceCents+incCents-below, -monetaryPrecision)

		rej, ok := biddingerrors.AsRejection(v.Validate(openAuction, lot, amount))
		if !ok {
			t.Fatalf("amount %s below minimum %s was accepted", amount, minimum)
		}
		if rej.Kind != biddingerrors.KindBidTooLow || !rej.Minimum.Equal(minimum) {
			t.Fatalf("got kind %s minimum %s, want %s", rej.Kind, rej.Minimum, minimum)
		}
		want := "minimum acceptable bid is " + minimum.StringFixed(monetaryPrecision)
		if rej.Message != "bid amount too low: "+want {
			t.Fatalf("message %q does not state %q", rej.Message, want)
		}

		if err := v.Validate(openAuction, lot, minimum); err != nil {
			t.Fatalf("exact minimum %s rejected: %v", minimum, err)
		}
	})
}
