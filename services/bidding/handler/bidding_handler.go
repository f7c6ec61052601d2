package handler

//go:generate mockgen -source=bidding_handler.go -destination=mock_service.go -package=handler

import (
	"context"
	"errors"
	"net/http"

	"bidexpert/internal/biddingerrors"
	"bidexpert/internal/models"
	"bidexpert/services/bidding/helpers"
	"bidexpert/utils"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type BiddingServiceInterface interface {
	PlaceBid(ctx context.Context, tenantID, userID, auctionID, lotID string, amount decimal.Decimal) (models.BidReceipt, error)
	FinalizeLot(ctx context.Context, tenantID, lotID string) (models.FinalizeResult, error)
	TransitionLot(ctx context.Context, tenantID, lotID string, to models.LotStatus) (models.Lot, error)
	GetLot(ctx context.Context, tenantID, lotID string) (models.Lot, error)
	GetBidsForLot(ctx context.Context, tenantID, lotID string) ([]models.Bid, error)
	GetLeadingBid(ctx context.Context, tenantID, lotID string) (models.Bid, error)
	GetLotsByUser(ctx context.Context, tenantID, userID string) ([]models.Lot, error)
	IsHabilitated(ctx context.Context, tenantID, userID, auctionID string) (bool, error)
	GrantHabilitation(ctx context.Context, tenantID, userID, auctionID string) (models.Habilitation, error)
}

type BiddingHandler struct {
	service BiddingServiceInterface
}

func NewBiddingHandler(service BiddingServiceInterface) *BiddingHandler {
	return &BiddingHandler{service: service}
}

// PlaceBidHandler handles POST /bids
func (h *BiddingHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}
	if !req.Amount.IsPositive() {
		helpers.HandleBindError(c, "PlaceBidHandler", errors.New("amount must be greater than zero"))
		return
	}

	tenantID := helpers.TenantFromRequest(c)
	receipt, err := h.service.PlaceBid(c.Request.Context(), tenantID, req.UserID, req.AuctionID, req.LotID, req.Amount)
	if err != nil {
		if rej, ok := biddingerrors.AsRejection(err); ok {
			status, _ := helpers.MapErrorToHTTP(rej)
			utils.JSONResponse(c, status, helpers.RejectedResult(rej), rej.Message)
			utils.Warn("PlaceBidHandler: bid rejected", map[string]any{
				"tenant_id": tenantID,
				"lot_id":    req.LotID,
				"user_id":   req.UserID,
				"amount":    req.Amount.String(),
				"kind":      string(rej.Kind),
			})
			return
		}
		helpers.RespondError(c, "PlaceBidHandler", err, map[string]any{
			"lot_id":  req.LotID,
			"user_id": req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.AcceptedResult(receipt), "bid accepted")
	helpers.LogSuccess("PlaceBidHandler", "bid accepted", map[string]any{
		"tenant_id": tenantID,
		"bid_id":    receipt.Bid.BidID,
		"lot_id":    receipt.Bid.LotID,
		"user_id":   receipt.Bid.UserID,
		"amount":    receipt.Bid.Amount.String(),
		"bid_count": receipt.BidCount,
	})
}

// FinalizeLotHandler handles POST /lots/:lot_id/finalize
func (h *BiddingHandler) FinalizeLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	res, err := h.service.FinalizeLot(c.Request.Context(), helpers.TenantFromRequest(c), lotID)
	if err != nil {
		helpers.RespondError(c, "FinalizeLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewFinalizeResponse(res), res.Message)
	helpers.LogSuccess("FinalizeLotHandler", res.Message, map[string]any{
		"lot_id":            lotID,
		"status":            string(res.Status),
		"already_finalized": res.AlreadyFinalized,
	})
}

// TransitionLotHandler handles PATCH /lots/:lot_id/status
func (h *BiddingHandler) TransitionLotHandler(c *gin.Context) {
	var req helpers.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "TransitionLotHandler", err)
		return
	}

	lotID := c.Param("lot_id")
	lot, err := h.service.TransitionLot(c.Request.Context(), helpers.TenantFromRequest(c), lotID, req.Status)
	if err != nil {
		helpers.RespondError(c, "TransitionLotHandler", err, map[string]any{"lot_id": lotID, "to": string(req.Status)})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot status updated")
	helpers.LogSuccess("TransitionLotHandler", "lot status updated", map[string]any{
		"lot_id": lotID,
		"status": string(lot.Status),
	})
}

// GetLotHandler handles GET /lots/:lot_id
func (h *BiddingHandler) GetLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	lot, err := h.service.GetLot(c.Request.Context(), helpers.TenantFromRequest(c), lotID)
	if err != nil {
		helpers.RespondError(c, "GetLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, lot, "lot retrieved successfully")
}

// GetBidsByLotHandler handles GET /lots/:lot_id/bids
func (h *BiddingHandler) GetBidsByLotHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	bids, err := h.service.GetBidsForLot(c.Request.Context(), helpers.TenantFromRequest(c), lotID)
	if err != nil && !errors.Is(err, biddingerrors.ErrNoBids) {
		helpers.RespondError(c, "GetBidsByLotHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByLotHandler", "bids retrieved successfully", map[string]any{
		"lot_id": lotID,
		"count":  len(resp),
	})
}

// GetLeadingBidHandler handles GET /lots/:lot_id/leading
func (h *BiddingHandler) GetLeadingBidHandler(c *gin.Context) {
	lotID := c.Param("lot_id")
	bid, err := h.service.GetLeadingBid(c.Request.Context(), helpers.TenantFromRequest(c), lotID)
	if err != nil {
		if errors.Is(err, biddingerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no leading bid found")
			utils.Info("GetLeadingBidHandler: no leading bid found", map[string]any{"lot_id": lotID})
			return
		}
		helpers.RespondError(c, "GetLeadingBidHandler", err, map[string]any{"lot_id": lotID})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(bid), "leading bid retrieved successfully")
}

// GetLotsByUserHandler handles GET /users/:user_id/lots
func (h *BiddingHandler) GetLotsByUserHandler(c *gin.Context) {
	userID := c.Param("user_id")
	lots, err := h.service.GetLotsByUser(c.Request.Context(), helpers.TenantFromRequest(c), userID)
	if err != nil && !errors.Is(err, biddingerrors.ErrUserNoBids) {
		helpers.RespondError(c, "GetLotsByUserHandler", err, map[string]any{"user_id": userID})
		return
	}

	if lots == nil {
		lots = []models.Lot{}
	}

	utils.JSONResponse(c, http.StatusOK, lots, "lots retrieved successfully")
	helpers.LogSuccess("GetLotsByUserHandler", "lots retrieved successfully", map[string]any{
		"user_id":    userID,
		"lots_count": len(lots),
	})
}

// GetHabilitationHandler handles GET /auctions/:auction_id/habilitations/:user_id
func (h *BiddingHandler) GetHabilitationHandler(c *gin.Context) {
	auctionID, userID := c.Param("auction_id"), c.Param("user_id")
	ok, err := h.service.IsHabilitated(c.Request.Context(), helpers.TenantFromRequest(c), userID, auctionID)
	if err != nil {
		helpers.RespondError(c, "GetHabilitationHandler", err, map[string]any{"auction_id": auctionID, "user_id": userID})
		return
	}

	resp := helpers.HabilitationResponse{AuctionID: auctionID, UserID: userID, Habilitated: ok}
	utils.JSONResponse(c, http.StatusOK, resp, "habilitation retrieved successfully")
}

// GrantHabilitationHandler handles POST /auctions/:auction_id/habilitations
func (h *BiddingHandler) GrantHabilitationHandler(c *gin.Context) {
	var req helpers.HabilitationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "GrantHabilitationHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	hab, err := h.service.GrantHabilitation(c.Request.Context(), helpers.TenantFromRequest(c), req.UserID, auctionID)
	if err != nil {
		helpers.RespondError(c, "GrantHabilitationHandler", err, map[string]any{"auction_id": auctionID, "user_id": req.UserID})
		return
	}

	resp := helpers.HabilitationResponse{AuctionID: hab.AuctionID, UserID: hab.UserID, Habilitated: hab.Habilitated}
	utils.JSONResponse(c, http.StatusCreated, resp, "habilitation granted")
	helpers.LogSuccess("GrantHabilitationHandler", "habilitation granted", map[string]any{
		"auction_id": auctionID,
		"user_id":    req.UserID,
	})
}
