package server

import (
	handler "bidexpert/services/bidding/handler"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(biddingService handler.BiddingServiceInterface) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestIDMiddleware)     // correlate logs across services
	router.Use(RequestLoggerMiddleware) // custom request logging
	router.Use(TenantMiddleware)

	biddingHandler := handler.NewBiddingHandler(biddingService)

	bids := router.Group("/bids")
	{
		bids.POST("", biddingHandler.PlaceBidHandler)
	}

	lots := router.Group("/lots")
	{
		lots.GET("/:lot_id", biddingHandler.GetLotHandler)
		lots.GET("/:lot_id/bids", biddingHandler.GetBidsByLotHandler)
		lots.GET("/:lot_id/leading", biddingHandler.GetLeadingBidHandler)
		lots.POST("/:lot_id/finalize", biddingHandler.FinalizeLotHandler)
		lots.PATCH("/:lot_id/status", biddingHandler.TransitionLotHandler)
	}

	users := router.Group("/users")
	{
		users.GET("/:user_id/lots", biddingHandler.GetLotsByUserHandler)
	}

	auctions := router.Group("/auctions/:auction_id")
	{
		auctions.GET("/habilitations/:user_id", biddingHandler.GetHabilitationHandler)
		auctions.POST("/habilitations", biddingHandler.GrantHabilitationHandler)
	}

	return router
}
