package client

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, client *Client) error
	FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Client, error)
	FindByID(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error)
	Update(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(ctx context.Context, client *Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

func (r *repository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Client, error) {
	var clients []Client
	err := r.db.WithContext(ctx).Preload("LeadOrigin").
		Where("company_id = ?", companyID).Find(&clients).Error
	return clients, err
}

func (r *repository) FindByID(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error) {
	var client Client
	err := r.db.WithContext(ctx).Preload("LeadOrigin").
		Where("id = ? AND company_id = ?", id, companyID).First(&client).Error
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// Update is unscoped; the service checks company ownership first.
func (r *repository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	tx := r.db.WithContext(ctx).Model(&Client{}).Where("id = ?", id).Updates(fields)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id uint) error {
	tx := r.db.WithContext(ctx).Delete(&Client{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
