package integrationtests

import (
	bidding "bidexpert/internal/biddingService"
	"bidexpert/internal/models"
	"bidexpert/internal/repository"
	"bidexpert/internal/server"
	"bidexpert/services/bidding/helpers"
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

const (
	testTenant  = "tenant1"
	testAuction = "auction1"
)

// habilitated users in every test router
var bidders = []string{"user1", "user2", "user3"}

// openLot builds an open lot in the test auction
func openLot(lotID, price, increment string) models.Lot {
	return models.Lot{
		LotID:        lotID,
		TenantID:     testTenant,
		AuctionID:    testAuction,
		Title:        lotID + " title",
		InitialPrice: decimal.RequireFromString(price),
		BidIncrement: decimal.RequireFromString(increment),
		Status:       models.LotOpenForBids,
	}
}

// bid builds a place-bid request in the test auction
func bid(lotID, userID, amount string) helpers.PlaceBidRequest {
	return helpers.PlaceBidRequest{
		AuctionID: testAuction,
		LotID:     lotID,
		UserID:    userID,
		Amount:    decimal.RequireFromString(amount),
	}
}

// SetupTestRouterWithLots initializes the router and seeds an open auction with lots
func SetupTestRouterWithLots(t *testing.T, lots ...models.Lot) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	repo := repository.NewMemoryRepo()
	if err := repo.SaveAuction(ctx, models.Auction{AuctionID: testAuction, TenantID: testTenant, Status: models.AuctionOpen}); err != nil {
		t.Fatalf("failed to seed auction: %v", err)
	}
	for _, lot := range lots {
		if err := repo.SaveLot(ctx, lot); err != nil {
			t.Fatalf("failed to seed lot %s: %v", lot.LotID, err)
		}
	}
	for _, u := range bidders {
		h := models.Habilitation{TenantID: testTenant, UserID: u, AuctionID: testAuction, Habilitated: true}
		if err := repo.SaveHabilitation(ctx, h); err != nil {
			t.Fatalf("failed to habilitate %s: %v", u, err)
		}
	}

	service := bidding.NewBiddingService(repo)
	return server.SetupRouter(service)
}

// ExecuteRequestAndParse executes an HTTP request as testTenant and parses the response envelope
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(helpers.TenantHeader, testTenant)
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
