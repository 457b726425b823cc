package company

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

type CreateInput struct {
	Name  string
	Email *string
	Phone *string
}

// UpdateInput carries tri-state fields: absent skips the column, null
// clears it, a value sets it.
type UpdateInput struct {
	Name  validation.OptString
	Email validation.OptString
	Phone validation.OptString
}

type Service interface {
	CreateCompany(ctx context.Context, input CreateInput) (*Company, error)
	GetCompanies(ctx context.Context) ([]Company, error)
	GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error)
	UpdateCompany(ctx context.Context, id uuid.UUID, input UpdateInput) (*Company, error)
	DeleteCompany(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateCompany(ctx context.Context, input CreateInput) (*Company, error) {
	company := &Company{
		Name:  input.Name,
		Email: input.Email,
		Phone: input.Phone,
	}
	if err := s.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return company, nil
}

func (s *service) GetCompanies(ctx context.Context) ([]Company, error) {
	companies, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if companies == nil {
		companies = []Company{}
	}
	return companies, nil
}

func (s *service) GetCompanyByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	company, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Company not found")
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *service) UpdateCompany(ctx context.Context, id uuid.UUID, input UpdateInput) (*Company, error) {
	fields := map[string]interface{}{}
	if input.Name.Present && !input.Name.Null {
		fields["name"] = input.Name.Value
	}
	applyNullable(fields, "email", input.Email)
	applyNullable(fields, "phone", input.Phone)

	if len(fields) == 0 {
		return nil, apperror.Validation("No valid field to update")
	}

	company, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("Company not found")
	}
	if err != nil {
		return nil, err
	}
	return company, nil
}

func (s *service) DeleteCompany(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("Company not found")
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
