package models

import (
	"context"
	"errors"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/utils"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Client is the per-customer rollup. One row per (business, name); the name
// is the identity, so renamed customers roll up separately.
type Client struct {
	ID             int             `gorm:"primary_key" json:"id"`
	BusinessId     string          `gorm:"size:36;not null;uniqueIndex:idx_clients_business_name" json:"business_id"`
	Name           string          `gorm:"size:255;not null;uniqueIndex:idx_clients_business_name" json:"name"`
	Phone          *string         `gorm:"size:20" json:"phone"`
	Email          *string         `gorm:"size:255" json:"email"`
	TotalJobs      int             `gorm:"default:0" json:"total_jobs"`
	TotalJobAmount decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"total_job_amount"`
	LastJobDate    *time.Time      `json:"last_job_date"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewClient struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

func getOrCreateClientTx(ctx context.Context, tx *gorm.DB, businessId string, name string, phone *string, email *string) (*Client, error) {
	var client Client
	err := tx.WithContext(ctx).
		Where("business_id = ? AND name = ?", businessId, name).
		First(&client).Error
	if err == nil {
		return &client, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, utils.PersistenceError("find client", err)
	}

	client = Client{
		BusinessId:     businessId,
		Name:           name,
		Phone:          phone,
		Email:          email,
		TotalJobAmount: decimal.Zero,
	}
	if err := tx.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, utils.PersistenceError("create client", err)
	}
	return &client, nil
}

// GetOrCreateClient looks a client up by name, creating the rollup row on
// first sight. Contact details only apply on create.
func GetOrCreateClient(ctx context.Context, input *NewClient) (*Client, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := utils.ValidateStruct(input); err != nil {
		return nil, err
	}
	if input.Email != "" && !utils.IsValidEmail(input.Email) {
		return nil, utils.ValidationErrorf("invalid email %s", input.Email)
	}

	db := config.GetDB()
	return getOrCreateClientTx(ctx, db, businessId, input.Name, utils.NilIfEmpty(input.Phone), utils.NilIfEmpty(input.Email))
}

func GetClient(ctx context.Context, id int) (*Client, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	client, err := utils.FetchModel[Client](ctx, businessId, id)
	if err != nil {
		return nil, utils.NotFoundErrorf("client %d not found", id)
	}
	return client, nil
}

func ListClients(ctx context.Context) ([]*Client, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}

	db := config.GetDB()
	var clients []*Client
	err := db.WithContext(ctx).
		Where("business_id = ?", businessId).
		Order("name ASC").
		Find(&clients).Error
	if err != nil {
		return nil, utils.PersistenceError("list clients", err)
	}
	return clients, nil
}
