package lead

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Repository keeps every lookup scoped by company so a lead is invisible
// outside its own tenant.
type Repository interface {
	Create(ctx context.Context, lead *Lead) error
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Lead, error)
	FindByID(ctx context.Context, companyID uuid.UUID, id uint) (*Lead, error)
	ExistsInCompany(ctx context.Context, companyID uuid.UUID, id uint) (bool, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) (*Lead, error)
	Delete(ctx context.Context, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, lead *Lead) error {
	return r.db.WithContext(ctx).Create(lead).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Lead, error) {
	var leads []Lead
	err := r.db.WithContext(ctx).Where("company_id = ?", companyID).Find(&leads).Error
	return leads, err
}

func (r *repository) FindByID(ctx context.Context, companyID uuid.UUID, id uint) (*Lead, error) {
	var lead Lead
	err := r.db.WithContext(ctx).Where("id = ? AND company_id = ?", id, companyID).First(&lead).Error
	if err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repository) ExistsInCompany(ctx context.Context, companyID uuid.UUID, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Lead{}).
		Where("id = ? AND company_id = ?", id, companyID).
		Count(&count).Error
	return count > 0, err
}

// Update is unscoped; the service checks company ownership first.
func (r *repository) Update(ctx context.Context, id uint, fields map[string]interface{}) (*Lead, error) {
	tx := r.db.WithContext(ctx).Model(&Lead{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return nil, tx.Error
	}
	if tx.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}

	var lead Lead
	if err := r.db.WithContext(ctx).First(&lead, id).Error; err != nil {
		return nil, err
	}
	return &lead, nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&Lead{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
