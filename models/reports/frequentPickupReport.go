package reports

import (
	"context"
	"time"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
)

const (
	DefaultPickupWindowDays = 17
	DefaultPickupThreshold  = 10
)

type FrequentPickupResponse struct {
	CustomerName   string `json:"customerName"`
	PickupLocation string `json:"pickupLocation"`
	Trips          int    `json:"trips"`
}

// GetFrequentPickups surfaces (customer, pickup) pairs that hit the trip
// threshold inside the trailing window. Zero arguments fall back to the
// defaults.
func GetFrequentPickups(ctx context.Context, windowDays int, threshold int) ([]*FrequentPickupResponse, error) {
	businessId, ok := utils.GetBusinessIdFromContext(ctx)
	if !ok || businessId == "" {
		return nil, utils.ValidationErrorf("business id is required")
	}
	if windowDays <= 0 {
		windowDays = DefaultPickupWindowDays
	}
	if threshold <= 0 {
		threshold = DefaultPickupThreshold
	}
	business, err := models.GetBusinessById(ctx, businessId)
	if err != nil {
		return nil, err
	}
	today, err := utils.ConvertToDate(time.Now(), business.Timezone)
	if err != nil {
		return nil, err
	}
	windowStart := today.AddDate(0, 0, -windowDays)

	db := config.GetDB()
	var result []*FrequentPickupResponse
	err = db.WithContext(ctx).Raw(
		`SELECT customer_name, pick_up AS pickup_location, COUNT(*) AS trips
		 FROM jobs
		 WHERE business_id = ? AND job_date >= ?
		 GROUP BY customer_name, pick_up
		 HAVING COUNT(*) >= ?
		 ORDER BY trips DESC, customer_name ASC`,
		businessId, windowStart, threshold).Scan(&result).Error
	if err != nil {
		return nil, utils.PersistenceError("frequent pickups", err)
	}
	return result, nil
}
