package routes

import (
	coreport "github.com/amirhossein-jamali/credits-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/credits-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	creditsHandler *handler.CreditsHandler,
	cronHandler *handler.CronHandler,
	healthHandler *handler.HealthHandler,
	cronToken string,
	logger coreport.Logger,
) {
	router.GET("/health", healthHandler.Check)

	// Credits routes
	creditsRoutes := router.Group("/user/:userId/credits")
	{
		creditsRoutes.GET("/balance", creditsHandler.GetBalance)
		creditsRoutes.GET("/batches", creditsHandler.GetActiveBatches)
		creditsRoutes.GET("/transactions", creditsHandler.GetTransactions)

		creditsRoutes.POST("/grant", creditsHandler.GrantCredits)
		creditsRoutes.POST("/consume", creditsHandler.ConsumeCredits)
		creditsRoutes.POST("/registration-bonus", creditsHandler.EnsureRegistrationBonus)
		creditsRoutes.POST("/freeze", creditsHandler.FreezeAccount)
		creditsRoutes.POST("/unfreeze", creditsHandler.UnfreezeAccount)
	}

	// Scheduled maintenance routes
	cronRoutes := router.Group("/cron", middleware.CronAuth(cronToken, logger))
	{
		cronRoutes.POST("/credits/sweep-expired", cronHandler.SweepExpiredBatches)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
}
