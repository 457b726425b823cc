package client

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/rafamonteiro/crm-backend/internal/apperror"
	"github.com/rafamonteiro/crm-backend/internal/validation"
)

type mockRepository struct {
	createFn        func(ctx context.Context, client *Client) error
	findByCompanyFn func(ctx context.Context, companyID uuid.UUID) ([]Client, error)
	findFn          func(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error)
	updateFn        func(ctx context.Context, id uint, fields map[string]interface{}) error
	deleteFn        func(ctx context.Context, id uint) error
}

func (m *mockRepository) Create(ctx context.Context, client *Client) error {
	return m.createFn(ctx, client)
}

func (m *mockRepository) FindByCompany(ctx context.Context, companyID uuid.UUID) ([]Client, error) {
	return m.findByCompanyFn(ctx, companyID)
}

func (m *mockRepository) FindByID(ctx context.Context, companyID uuid.UUID, id uint) (*Client, error) {
	return m.findFn(ctx, companyID, id)
}

func (m *mockRepository) Update(ctx context.Context, id uint, fields map[string]interface{}) error {
	return m.updateFn(ctx, id, fields)
}

func (m *mockRepository) Delete(ctx context.Context, id uint) error {
	return m.deleteFn(ctx, id)
}

type mockLeadDirectory struct {
	existsFn func(ctx context.Context, companyID uuid.UUID, id uint) (bool, error)
}

func (m *mockLeadDirectory) ExistsInCompany(ctx context.Context, companyID uuid.UUID, id uint) (bool, error) {
	return m.existsFn(ctx, companyID, id)
}

func TestCreateClientWithLeadOrigin(t *testing.T) {
	t.Parallel()

	companyID := uuid.New()
	leadID := uint(3)

	var stored *Client
	repo := &mockRepository{
		createFn: func(ctx context.Context, client *Client) error {
			client.ID = 10
			stored = client
			return nil
		},
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return &Client{
				ID:           id,
				CompanyID:    cid,
				LeadOriginID: &leadID,
				LeadOrigin:   &LeadRef{ID: leadID, Name: "Origem", Status: "HOT"},
			}, nil
		},
	}
	leads := &mockLeadDirectory{
		existsFn: func(ctx context.Context, cid uuid.UUID, id uint) (bool, error) {
			return cid == companyID && id == leadID, nil
		},
	}
	svc := NewService(repo, leads)

	created, err := svc.CreateClient(context.Background(), companyID, CreateInput{
		Name:         "Cliente Novo",
		LeadOriginID: &leadID,
	})
	require.NoError(t, err)
	require.Equal(t, &leadID, stored.LeadOriginID)
	require.NotNil(t, created.LeadOrigin)
	require.Equal(t, leadID, created.LeadOrigin.ID)
}

func TestCreateClientCrossCompanyLeadOrigin(t *testing.T) {
	t.Parallel()

	created := false
	repo := &mockRepository{
		createFn: func(ctx context.Context, client *Client) error {
			created = true
			return nil
		},
	}
	leads := &mockLeadDirectory{
		existsFn: func(ctx context.Context, cid uuid.UUID, id uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo, leads)

	leadID := uint(99)
	_, err := svc.CreateClient(context.Background(), uuid.New(), CreateInput{
		Name:         "Cliente Novo",
		LeadOriginID: &leadID,
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Equal(t, "Lead origin not found for this company", appErr.Message)
	require.False(t, created)
}

func TestUpdateClientNullDisconnectsLeadOrigin(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return &Client{ID: id, CompanyID: cid}, nil
		},
		updateFn: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			got = fields
			return nil
		},
	}
	checked := false
	leads := &mockLeadDirectory{
		existsFn: func(ctx context.Context, cid uuid.UUID, id uint) (bool, error) {
			checked = true
			return true, nil
		},
	}
	svc := NewService(repo, leads)

	_, err := svc.UpdateClient(context.Background(), uuid.New(), 10, UpdateInput{
		LeadOrigin: validation.OptInt{Present: true, Null: true},
	})
	require.NoError(t, err)
	require.Nil(t, got["lead_origin_id"])
	_, set := got["lead_origin_id"]
	require.True(t, set)
	// Disconnecting needs no existence check.
	require.False(t, checked)
}

func TestUpdateClientAbsentLeadOriginUntouched(t *testing.T) {
	t.Parallel()

	var got map[string]interface{}
	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return &Client{ID: id, CompanyID: cid}, nil
		},
		updateFn: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			got = fields
			return nil
		},
	}
	svc := NewService(repo, &mockLeadDirectory{})

	_, err := svc.UpdateClient(context.Background(), uuid.New(), 10, UpdateInput{
		Name: validation.OptString{Present: true, Value: "Renomeado"},
	})
	require.NoError(t, err)
	require.Equal(t, "Renomeado", got["name"])
	_, set := got["lead_origin_id"]
	require.False(t, set)
}

func TestUpdateClientCrossCompanyLeadOrigin(t *testing.T) {
	t.Parallel()

	updated := false
	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return &Client{ID: id, CompanyID: cid}, nil
		},
		updateFn: func(ctx context.Context, id uint, fields map[string]interface{}) error {
			updated = true
			return nil
		},
	}
	leads := &mockLeadDirectory{
		existsFn: func(ctx context.Context, cid uuid.UUID, id uint) (bool, error) {
			return false, nil
		},
	}
	svc := NewService(repo, leads)

	_, err := svc.UpdateClient(context.Background(), uuid.New(), 10, UpdateInput{
		LeadOrigin: validation.OptInt{Present: true, Value: 42},
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	require.False(t, updated)
}

func TestUpdateClientMissingClientBeatsLeadOrigin(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	checked := false
	leads := &mockLeadDirectory{
		existsFn: func(ctx context.Context, cid uuid.UUID, id uint) (bool, error) {
			checked = true
			return false, nil
		},
	}
	svc := NewService(repo, leads)

	// An absent client answers NotFound even when the requested lead
	// origin would fail validation too.
	_, err := svc.UpdateClient(context.Background(), uuid.New(), 10, UpdateInput{
		LeadOrigin: validation.OptInt{Present: true, Value: 42},
	})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindNotFound, appErr.Kind)
	require.Equal(t, "Client not found", appErr.Message)
	require.False(t, checked)
}

func TestUpdateClientRequiresField(t *testing.T) {
	t.Parallel()

	svc := NewService(&mockRepository{}, &mockLeadDirectory{})

	_, err := svc.UpdateClient(context.Background(), uuid.New(), 10, UpdateInput{})
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindValidation, appErr.Kind)
	require.Equal(t, "No valid field to update", appErr.Message)
}

func TestGetClientOtherCompanyNotFound(t *testing.T) {
	t.Parallel()

	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := NewService(repo, &mockLeadDirectory{})

	_, err := svc.GetClientByID(context.Background(), uuid.New(), 10)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindNotFound, appErr.Kind)
	require.Equal(t, "Client not found", appErr.Message)
}

func TestDeleteClientChecksOwnershipFirst(t *testing.T) {
	t.Parallel()

	deleted := false
	repo := &mockRepository{
		findFn: func(ctx context.Context, cid uuid.UUID, id uint) (*Client, error) {
			return nil, gorm.ErrRecordNotFound
		},
		deleteFn: func(ctx context.Context, id uint) error {
			deleted = true
			return nil
		},
	}
	svc := NewService(repo, &mockLeadDirectory{})

	err := svc.DeleteClient(context.Background(), uuid.New(), 10)
	var appErr *apperror.Error
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, apperror.KindNotFound, appErr.Kind)
	require.False(t, deleted)
}
