package main

import (
	"context"
	"log"

	"github.com/rafamonteiro/crm-backend/config"
	"github.com/rafamonteiro/crm-backend/database"
	"github.com/rafamonteiro/crm-backend/internal/client"
	"github.com/rafamonteiro/crm-backend/internal/company"
	"github.com/rafamonteiro/crm-backend/internal/lead"
	"github.com/rafamonteiro/crm-backend/internal/user"
)

// Loads a demo tenant with a user, a few leads and a client converted from
// one of them. Meant for local dashboards, not production.
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

	ctx := context.Background()

	companySvc := company.NewService(company.NewRepository(db))
	userSvc := user.NewService(user.NewRepository(db))
	leadRepo := lead.NewRepository(db)
	leadSvc := lead.NewService(leadRepo)
	clientSvc := client.NewService(client.NewRepository(db), leadRepo)

	email := "contato@acme.com.br"
	phone := "+55 11 98765-4321"
	demo, err := companySvc.CreateCompany(ctx, company.CreateInput{
		Name:  "Acme Consultoria",
		Email: &email,
		Phone: &phone,
	})
	if err != nil {
		log.Fatalf("seed: create company: %v", err)
	}

	if _, err := userSvc.CreateUser(ctx, user.CreateInput{
		Name:      "Ana Souza",
		Email:     "ana.souza@acme.com.br",
		Password:  "change-me-123",
		CompanyID: demo.ID,
	}); err != nil {
		log.Fatalf("seed: create user: %v", err)
	}

	leadEmail := "vendas@horizonte.com.br"
	hot, err := leadSvc.CreateLead(ctx, demo.ID, lead.CreateInput{
		Name:   "Horizonte Distribuidora",
		Email:  &leadEmail,
		Status: lead.StatusHot,
	})
	if err != nil {
		log.Fatalf("seed: create lead: %v", err)
	}
	if _, err := leadSvc.CreateLead(ctx, demo.ID, lead.CreateInput{
		Name: "Mercado Boa Vista",
	}); err != nil {
		log.Fatalf("seed: create lead: %v", err)
	}

	if _, err := clientSvc.CreateClient(ctx, demo.ID, client.CreateInput{
		Name:         "Horizonte Distribuidora",
		Email:        &leadEmail,
		LeadOriginID: &hot.ID,
	}); err != nil {
		log.Fatalf("seed: create client: %v", err)
	}

	log.Printf("seed: completed for company %s", demo.ID)
}
