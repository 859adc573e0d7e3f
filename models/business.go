package models

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/utils"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Business struct {
	ID                 uuid.UUID       `gorm:"primary_key" json:"id"`
	Name               string          `gorm:"index;size:100;not null" json:"name" validate:"required"`
	Location           string          `gorm:"size:255" json:"location"`
	Timezone           string          `gorm:"size:50" json:"timezone"`
	OpeningBalance     decimal.Decimal `gorm:"type:decimal(20,4);default:0" json:"opening_balance"`
	WorkingDaysPerWeek int             `gorm:"default:6" json:"working_days_per_week"`
	IsActive           *bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt          time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

type NewBusiness struct {
	Name               string          `json:"name" validate:"required"`
	Location           string          `json:"location"`
	Timezone           string          `json:"timezone"`
	OpeningBalance     decimal.Decimal `json:"opening_balance"`
	WorkingDaysPerWeek int             `json:"working_days_per_week" validate:"omitempty,min=1,max=7"`
}

func (business *Business) StoreRedis() error {
	return utils.StoreRedis[Business](business, business.ID)
}

func (business *Business) RemoveRedis() error {
	return utils.RemoveRedisItem[Business](business.ID)
}

func (input *NewBusiness) validate(ctx context.Context, id string) error {
	if err := utils.ValidateStruct(input); err != nil {
		return err
	}
	// name
	if err := utils.ValidateUnique[Business](ctx, "", "name", input.Name, id); err != nil {
		return err
	}
	if input.OpeningBalance.IsNegative() {
		return utils.ValidationErrorf("opening balance must not be negative")
	}
	return nil
}

func CreateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	if err := input.validate(ctx, ""); err != nil {
		return nil, err
	}
	db := config.GetDB()

	timezone := "Africa/Lagos"
	if input.Timezone != "" {
		timezone = input.Timezone
	}
	if _, err := time.LoadLocation(timezone); err != nil {
		return nil, utils.ValidationErrorf("unknown timezone %s", input.Timezone)
	}
	workingDays := input.WorkingDaysPerWeek
	if workingDays == 0 {
		workingDays = 6
	}

	business := Business{
		ID:                 uuid.New(),
		Name:               input.Name,
		Location:           input.Location,
		Timezone:           timezone,
		OpeningBalance:     input.OpeningBalance,
		WorkingDaysPerWeek: workingDays,
	}
	if err := db.WithContext(ctx).Create(&business).Error; err != nil {
		return nil, utils.PersistenceError("create business", err)
	}

	return &business, nil
}

// GetBusiness reads the current business, redis first then db.
func GetBusiness(ctx context.Context) (*Business, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	return GetBusinessById(ctx, businessId)
}

func GetBusinessById(ctx context.Context, businessId string) (*Business, error) {
	cached, err := utils.RetrieveRedis[Business](businessId)
	if err == nil && cached != nil {
		return cached, nil
	}

	business, err := utils.FetchSingleModel[Business](ctx, businessId)
	if err != nil {
		return nil, utils.NotFoundErrorf("business %s not found", businessId)
	}
	_ = business.StoreRedis()
	return business, nil
}

func UpdateBusiness(ctx context.Context, input *NewBusiness) (*Business, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if err := input.validate(ctx, businessId); err != nil {
		return nil, err
	}

	business, err := GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"Name":           input.Name,
		"Location":       input.Location,
		"OpeningBalance": input.OpeningBalance,
	}
	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			return nil, utils.ValidationErrorf("unknown timezone %s", input.Timezone)
		}
		updates["Timezone"] = input.Timezone
	}
	if input.WorkingDaysPerWeek > 0 {
		updates["WorkingDaysPerWeek"] = input.WorkingDaysPerWeek
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(&business).Updates(updates).Error; err != nil {
		return nil, utils.PersistenceError("update business", err)
	}
	_ = business.RemoveRedis()

	return GetBusinessById(ctx, businessId)
}
