package routes

import (
	"net/http"

	"tipjar_backend/internal/handlers"
	"tipjar_backend/internal/middleware"
	"tipjar_backend/internal/models"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(ginRouter *gin.Engine, appHandlers *handlers.AppHandlers) {
	ginRouter.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authRequired := middleware.AuthMiddleware()
	creatorOnly := middleware.RoleMiddleware(models.UserRoleCreator)

	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api, authRequired)
		appHandlers.SupportHandler.RegisterRoutes(api)
		appHandlers.CreatorHandler.RegisterRoutes(api, authRequired, creatorOnly)
	}
}
