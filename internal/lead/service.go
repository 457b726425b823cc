package lead

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

type CreateInput struct {
	Name   string
	Email  *string
	Phone  *string
	Status Status
	CNPJ   *string
	CPF    *string
}

type UpdateInput struct {
	Name   validation.OptString
	Email  validation.OptString
	Phone  validation.OptString
	Status validation.OptString
	CNPJ   validation.OptString
	CPF    validation.OptString
}

type Service interface {
	CreateLead(ctx context.Context, companyID uuid.UUID, input CreateInput) (*Lead, error)
	GetLeadsByCompany(ctx context.Context, companyID uuid.UUID) ([]Lead, error)
	GetLeadByID(ctx context.Context, companyID uuid.UUID, id uint) (*Lead, error)
	UpdateLead(ctx context.Context, companyID uuid.UUID, id uint, input UpdateInput) (*Lead, error)
	DeleteLead(ctx context.Context, companyID uuid.UUID, id uint) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateLead(ctx context.Context, companyID uuid.UUID, input CreateInput) (*Lead, error) {
	status := input.Status
	if status == "" {
		status = StatusWarm
	}

	lead := &Lead{
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Status:    status,
		CNPJ:      input.CNPJ,
		CPF:       input.CPF,
		CompanyID: companyID,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *service) GetLeadsByCompany(ctx context.Context, companyID uuid.UUID) ([]Lead, error) {
	leads, err := s.repo.FindByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []Lead{}
	}
	return leads, nil
}

// GetLeadByID answers NotFound both for a missing id and for a lead owned
// by another company, so cross-tenant existence never leaks.
func (s *service) GetLeadByID(ctx context.Context, companyID uuid.UUID, id uint) (*Lead, error) {
	lead, err := s.repo.FindByID(ctx, companyID, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Lead not found")
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *service) UpdateLead(ctx context.Context, companyID uuid.UUID, id uint, input UpdateInput) (*Lead, error) {
	fields := map[string]interface{}{}
	if input.Name.Present && !input.Name.Null {
		fields["name"] = input.Name.Value
	}
	applyNullable(fields, "email", input.Email)
	applyNullable(fields, "phone", input.Phone)
	if input.Status.Present && !input.Status.Null {
		fields["status"] = input.Status.Value
	}
	applyNullable(fields, "cnpj", input.CNPJ)
	applyNullable(fields, "cpf", input.CPF)

	if len(fields) == 0 {
		return nil, apperror.Validation("No valid field to update")
	}

	// Ownership check before the write; the update itself runs by id only.
	if _, err := s.GetLeadByID(ctx, companyID, id); err != nil {
		return nil, err
	}

	lead, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Lead not found")
	}
	if err != nil {
		return nil, err
	}
	return lead, nil
}

func (s *service) DeleteLead(ctx context.Context, companyID uuid.UUID, id uint) error {
	if _, err := s.GetLeadByID(ctx, companyID, id); err != nil {
		return err
	}

	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("Lead not found")
	}
	return err
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
