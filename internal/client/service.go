package client

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

// LeadDirectory answers whether a lead exists under a given company. The
// lead repository satisfies it; the indirection keeps this package from
// reaching into the lead tables directly.
type LeadDirectory interface {
	ExistsInCompany(ctx context.Context, companyID uuid.UUID, id uint) (bool, error)
}

type CreateInput struct {
	Name         string
	Email        *string
	Phone        *string
	CNPJ         *string
	LeadOriginID *uint
}

type UpdateInput struct {
	Name       validation.OptString
	Email      validation.OptString
	Phone      validation.OptString
	CNPJ       validation.OptString
	LeadOrigin validation.OptInt
}

type Service interface {
	CreateClient(ctx context.Context, companyID uuid.UUID, input CreateInput) (*Client, error)
	GetClientsByCompany(ctx context.Context, companyID uuid.UUID) ([]Client, error)
	GetClientByID(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error)
	UpdateClient(ctx context.Context, companyID uuid.UUID, id uint, input UpdateInput) (*Client, error)
	DeleteClient(ctx context.Context, companyID uuid.UUID, id uint) error
}

type service struct {
	repo  Repository
	leads LeadDirectory
}

func NewService(repo Repository, leads LeadDirectory) Service {
	return &service{repo: repo, leads: leads}
}

func (s *service) CreateClient(ctx context.Context, companyID uuid.UUID, input CreateInput) (*Client, error) {
	if input.LeadOriginID != nil {
		if err := s.checkLeadOrigin(ctx, companyID, *input.LeadOriginID); err != nil {
			return nil, err
		}
	}

	client := &Client{
		Name:         input.Name,
		Email:        input.Email,
		Phone:        input.Phone,
		CNPJ:         input.CNPJ,
		CompanyID:    companyID,
		LeadOriginID: input.LeadOriginID,
	}
	if err := s.repo.Create(ctx, client); err != nil {
		return nil, err
	}

	// Reload so the response carries the leadOrigin sub-object.
	return s.GetClientByID(ctx, companyID, client.ID)
}

func (s *service) GetClientsByCompany(ctx context.Context, companyID uuid.UUID) ([]Client, error) {
	clients, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if clients == nil {
		clients = []Client{}
	}
	return clients, nil
}

// GetClientByID answers NotFound both for a missing id and for a client
// owned by another company.
func (s *service) GetClientByID(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error) {
	client, err := s.repo.FindByID(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}
	return client, nil
}

func (s *service) UpdateClient(ctx context.Context, companyID uuid.UUID, id uint, input UpdateInput) (*Client, error) {
	fields := map[string]interface{}{}
	if input.Name.Present && !input.Name.Null {
		fields["name"] = input.Name.Value
	}
	applyNullable(fields, "email", input.Email)
	applyNullable(fields, "phone", input.Phone)
	applyNullable(fields, "cnpj", input.CNPJ)

	if input.LeadOrigin.Present {
		if input.LeadOrigin.Null {
			// Explicit null disconnects the relation.
			fields["lead_origin_id"] = nil
		} else {
			fields["lead_origin_id"] = input.LeadOrigin.Value
		}
	}

	if len(fields) == 0 {
		return nil, apperror.Validation("No valid field to update")
	}

	// The client must exist under the company before any business rule on
	// the payload runs; a missing client answers NotFound even when the
	// requested lead origin would also fail.
	if _, err := s.GetClientByID(ctx, companyID, id); err != nil {
		return nil, err
	}

	if input.LeadOrigin.Present && !input.LeadOrigin.Null {
		if err := s.checkLeadOrigin(ctx, companyID, uint(input.LeadOrigin.Value)); err != nil {
			return nil, err
		}
	}

	err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Client not found")
	}
	if err != nil {
		return nil, err
	}

	return s.GetClientByID(ctx, companyID, id)
}

func (s *service) DeleteClient(ctx context.Context, companyID uuid.UUID, id uint) error {
	if _, err := s.GetClientByID(ctx, companyID, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("Client not found")
	}
	return err
}

// checkLeadOrigin is a business rule, not a structural lookup: a lead from
// another company fails validation, not NotFound.
func (s *service) checkLeadOrigin(ctx context.Context, companyID uuid.UUID, leadID uint) error {
	ok, err := s.leads.ExistsInCompany(ctx, companyID, leadID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Validation("Lead origin not found for this company")
	}
	return nil
}

func applyNullable(fields map[string]interface{}, column string, v validation.OptString) {
	if !v.Present {
		return
	}
	if v.Null {
		fields[column] = nil
		return
	}
	fields[column] = v.Value
}
