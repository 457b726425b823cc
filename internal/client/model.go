package client

import (
	"time"

	"github.com/google/uuid"

	"github.com/rafamonteiro/crm-backend/internal/lead"
)

// LeadRef is the slice of the lead row embedded in client payloads.
type LeadRef struct {
	ID     uint        `gorm:"primaryKey" json:"id"`
	Name   string      `json:"name"`
	Status lead.Status `json:"status"`
}

func (LeadRef) TableName() string {
	return "leads"
}

type Client struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:255;not null" json:"name"`
	Email        *string   `gorm:"size:255" json:"email"`
	Phone        *string   `gorm:"size:50" json:"phone"`
	CNPJ         *string   `gorm:"size:20;column:cnpj" json:"cnpj"`
	CompanyID    uuid.UUID `gorm:"type:uuid;not null;index" json:"companyId"`
	LeadOriginID *uint     `gorm:"index" json:"leadOriginId"`
	LeadOrigin   *LeadRef  `gorm:"foreignKey:LeadOriginID" json:"leadOrigin"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (Client) TableName() string {
	return "clients"
}
