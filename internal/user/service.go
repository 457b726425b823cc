package user

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/security"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

type CreateInput struct {
	Name      string
	Email     string
	Password  string
	CompanyID uuid.UUID
}

type UpdateInput struct {
	Name      validation.OptString
	CompanyID validation.OptString
	Role      validation.OptString
}

type Service interface {
	CreateUser(ctx context.Context, input CreateInput) (*User, error)
	GetUsers(ctx context.Context) ([]User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	VerifyCredentials(ctx context.Context, email, password string) (*User, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateUser(ctx context.Context, input CreateInput) (*User, error) {
	_, err := s.repo.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, apperror.Conflict("E-mail already registered")
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	// An unknown company id is left to the foreign key; the constraint
	// failure propagates as an unexpected error.
	user := &User{
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         RoleUser,
		CompanyID:    input.CompanyID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) GetUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

func (s *service) GetUserByID(ctx context.Context, id uuid.UUID) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) UpdateUser(ctx context.Context, id uuid.UUID, input UpdateInput) (*User, error) {
	fields := map[string]interface{}{}
	if input.Name.Present && !input.Name.Null {
		fields["name"] = input.Name.Value
	}
	if input.CompanyID.Present && !input.CompanyID.Null {
		fields["company_id"] = input.CompanyID.Value
	}
	if input.Role.Present && !input.Role.Null {
		fields["role"] = input.Role.Value
	}

	if len(fields) == 0 {
		return nil, apperror.Validation("No valid field to update")
	}

	user, err := s.repo.Update(ctx, id, fields)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("User not found")
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (s *service) DeleteUser(ctx context.Context, id uuid.UUID) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("User not found")
	}
	return err
}

// VerifyCredentials answers the same message for an unknown e-mail and a
// wrong password, so a caller cannot probe which one failed.
func (s *service) VerifyCredentials(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.Authentication("Invalid credentials")
	}
	if err != nil {
		return nil, err
	}

	if !security.VerifyPassword(user.PasswordHash, password) {
		return nil, apperror.Authentication("Invalid credentials")
	}

	user.PasswordHash = ""
	return user, nil
}
