package workflow

import (
	"context"

	"github.com/abolajiii/LMBE/config"
	"github.com/abolajiii/LMBE/models"
	"github.com/abolajiii/LMBE/utils"
	"github.com/sirupsen/logrus"
)

// RebuildAggregates recomputes every Transaction and Client rollup for the
// business directly from the jobs table. Transactions that lost all their
// jobs are voided out rather than deleted, so the day row keeps its history.
func RebuildAggregates(ctx context.Context, businessId string) error {
	logger := config.GetLogger()
	if businessId == "" {
		return utils.ValidationErrorf("business id is required")
	}
	ctx = utils.SetBusinessIdInContext(ctx, businessId)
	if _, err := models.GetBusinessById(ctx, businessId); err != nil {
		return err
	}

	release, err := utils.BusinessLock(ctx, businessId, models.RebuildLock, "workflow", "RebuildAggregates")
	if err != nil {
		return err
	}
	defer release()

	db := config.GetDB()
	tx := db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return utils.PersistenceError("begin rebuild", tx.Error)
	}
	defer tx.Rollback()

	if err := models.AcquireBusinessPostingLock(tx, businessId); err != nil {
		return err
	}
	defer models.ReleaseBusinessPostingLock(tx, businessId)

	var transactionIds []int
	err = tx.Model(&models.Transaction{}).
		Where("business_id = ?", businessId).
		Pluck("id", &transactionIds).Error
	if err != nil {
		return utils.PersistenceError("list transactions for rebuild", err)
	}

	for _, transactionId := range transactionIds {
		if err := models.RecomputeTransactionAggregates(ctx, tx, businessId, transactionId); err != nil {
			config.LogError(logger, "workflow", "RebuildAggregates", "recompute transaction", transactionId, err)
			return err
		}
	}

	var clientNames []string
	err = tx.Model(&models.Client{}).
		Where("business_id = ?", businessId).
		Pluck("name", &clientNames).Error
	if err != nil {
		return utils.PersistenceError("list clients for rebuild", err)
	}

	for _, name := range clientNames {
		if err := models.RecomputeClientAggregates(ctx, tx, businessId, name); err != nil {
			config.LogError(logger, "workflow", "RebuildAggregates", "recompute client", name, err)
			return err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return utils.PersistenceError("commit rebuild", err)
	}

	logger.WithFields(logrus.Fields{
		"business_id":  businessId,
		"transactions": len(transactionIds),
		"clients":      len(clientNames),
	}).Info("rebuild.aggregates.complete")
	return nil
}
