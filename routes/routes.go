package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/rafamonteiro/crm-backend/config"
	"github.com/rafamonteiro/crm-backend/database"
	"github.com/rafamonteiro/crm-backend/internal/client"
	"github.com/rafamonteiro/crm-backend/internal/company"
	"github.com/rafamonteiro/crm-backend/internal/lead"
	"github.com/rafamonteiro/crm-backend/internal/user"
	"github.com/rafamonteiro/crm-backend/middleware"

	_ "github.com/rafamonteiro/crm-backend/docs"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// Setup wires repositories, services and handlers, and mounts the API.
func Setup(r *gin.Engine, cfg *config.Config) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	r.Use(middleware.CORS(cfg.CORSAllowOrigins))

	api := r.Group("/api")
	api.Use(middleware.RateLimiter(cfg.RateLimitPerMinute))

	api.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// ========== Users ==========
	userRepo := user.NewRepository(database.DB)
	userSvc := user.NewService(userRepo)
	userHandler := user.NewHandler(userSvc)

	api.POST("/users", userHandler.Create)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.GetByID)
	api.PUT("/users/:id", userHandler.Update)
	api.PATCH("/users/:id", userHandler.Update)
	api.DELETE("/users/:id", userHandler.Remove)
	api.POST("/users/login", userHandler.Login)

	// ========== Companies ==========
	companyRepo := company.NewRepository(database.DB)
	companySvc := company.NewService(companyRepo)
	companyHandler := company.NewHandler(companySvc)

	api.POST("/companies", companyHandler.Create)
	api.GET("/companies", companyHandler.List)
	api.GET("/companies/:companyId", companyHandler.GetByID)
	api.PUT("/companies/:companyId", companyHandler.Update)
	api.PATCH("/companies/:companyId", companyHandler.Update)
	api.DELETE("/companies/:companyId", companyHandler.Remove)

	// ========== Leads (company scoped) ==========
	leadRepo := lead.NewRepository(database.DB)
	leadSvc := lead.NewService(leadRepo)
	leadHandler := lead.NewHandler(leadSvc)

	leadRoutes := api.Group("/companies/:companyId/leads")
	{
		leadRoutes.POST("", leadHandler.Create)
		leadRoutes.GET("", leadHandler.List)
		leadRoutes.GET("/:leadId", leadHandler.GetByID)
		leadRoutes.PUT("/:leadId", leadHandler.Update)
		leadRoutes.PATCH("/:leadId", leadHandler.Update)
		leadRoutes.DELETE("/:leadId", leadHandler.Remove)
	}

	// ========== Clients (company scoped) ==========
	clientRepo := client.NewRepository(database.DB)
	clientSvc := client.NewService(clientRepo, leadRepo)
	clientHandler := client.NewHandler(clientSvc)

	clientRoutes := api.Group("/companies/:companyId/clients")
	{
		clientRoutes.POST("", clientHandler.Create)
		clientRoutes.GET("", clientHandler.List)
		clientRoutes.GET("/:clientId", clientHandler.GetByID)
		clientRoutes.PUT("/:clientId", clientHandler.Update)
		clientRoutes.PATCH("/:clientId", clientHandler.Update)
		clientRoutes.DELETE("/:clientId", clientHandler.Remove)
	}
}
