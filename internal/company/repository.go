package company

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, company *Company) error
	FindAll(ctx context.Context) ([]Company, error)
	FindByID(ctx context.Context, id uuid.UUID) (*Company, error)
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Company, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, company *Company) error {
	return r.db.WithContext(ctx).Create(company).Error
}

func (r *repository) FindAll(ctx context.Context) ([]Company, error) {
	var companies []Company
	err := r.db.WithContext(ctx).Find(&companies).Error
	return companies, err
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*Company, error) {
	var company Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if err != nil {
		return nil, err
	}
	return &company, nil
}

// Update touches only the given columns and reports a missing row through
// gorm.ErrRecordNotFound so the service can map it to a 404.
func (r *repository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) (*Company, error) {
	tx := r.db.WithContext(ctx).Model(&Company{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&Company{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
