package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	bidding "bidexpert/internal/biddingService"
	"bidexpert/internal/repository"
	"bidexpert/services/bidding/helpers"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepo()
	require.NoError(t, repository.SeedDemo(context.Background(), repo, "tenant1"))
	return SetupRouter(bidding.NewBiddingService(repo))
}

func serve(router *gin.Engine, method, path, tenant, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set(helpers.TenantHeader, tenant)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRouter_RequiresTenant(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodGet, "/lots/lot-1", "", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "tenant is required", resp["message"])
}

func TestRouter_RequestID(t *testing.T) {
	router := newTestRouter(t)

	w := serve(router, http.MethodGet, "/lots/lot-1", "tenant1", "")
	require.Equal(t, http.StatusOK, w.Code)
	_, err := uuid.Parse(w.Header().Get(requestIDHeader))
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/lots/lot-1", nil)
	req.Header.Set(helpers.TenantHeader, "tenant1")
	req.Header.Set(requestIDHeader, "abc-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestRouter_BidAndFinalize(t *testing.T) {
	router := newTestRouter(t)

	bid := `{"auction_id":"demo-auction","lot_id":"lot-1","user_id":"demo-user-a","amount":"1100"}`
	w := serve(router, http.MethodPost, "/bids", "tenant1", bid)
	require.Equal(t, http.StatusCreated, w.Code)

	// same lot is invisible from another tenant
	w = serve(router, http.MethodGet, "/lots/lot-1", "tenant2", "")
	require.Equal(t, http.StatusNotFound, w.Code)

	w = serve(router, http.MethodPost, "/lots/lot-1/finalize", "tenant1", "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data helpers.FinalizeResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "demo-user-a", *resp.Data.WinnerID)
	require.Equal(t, "1100", resp.Data.FinalPrice.String())
}

func TestRouter_Routes(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		method, path, body string
		status             int
	}{
		{http.MethodGet, "/lots/lot-1/bids", "", http.StatusOK},
		{http.MethodGet, "/lots/lot-1/leading", "", http.StatusNotFound},
		{http.MethodPatch, "/lots/lot-3/status", `{"status":"SOON"}`, http.StatusOK},
		{http.MethodGet, "/users/demo-user-a/lots", "", http.StatusOK},
		{http.MethodGet, "/auctions/demo-auction/habilitations/demo-user-b", "", http.StatusOK},
		{http.MethodPost, "/auctions/demo-auction/habilitations", `{"user_id":"demo-user-c"}`, http.StatusCreated},
		{http.MethodGet, "/items/lot-1/bids", "", http.StatusNotFound},
	}

	for _, tc := range tests {
		w := serve(router, tc.method, tc.path, "tenant1", tc.body)
		require.Equal(t, tc.status, w.Code, "%s %s", tc.method, tc.path)
	}
}

func TestRouter_EnvelopeCarriesRequestID(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/lots/missing", nil)
	req.Header.Set(helpers.TenantHeader, "tenant1")
	req.Header.Set(requestIDHeader, "req-42")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "req-42", resp["request_id"])
}
