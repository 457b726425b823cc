package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/rafamonteiro/crm-backend/config"
	"github.com/rafamonteiro/crm-backend/database"
	"github.com/rafamonteiro/crm-backend/internal/client"
	"github.com/rafamonteiro/crm-backend/internal/company"
	"github.com/rafamonteiro/crm-backend/internal/lead"
	"github.com/rafamonteiro/crm-backend/internal/user"
	"github.com/rafamonteiro/crm-backend/routes"
)

// @title CRM API
// @version 1.0
// @description Multi-tenant CRM backend managing companies, users, leads and clients.
// @BasePath /api
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := db.AutoMigrate(
		&company.Company{},
		&user.User{},
		&lead.Lead{},
		&client.Client{},
	); err != nil {
		log.Fatalf("DB AutoMigrate failed: %v", err)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	routes.Setup(router, cfg)

	log.Printf("The API is running on the port: %s", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
