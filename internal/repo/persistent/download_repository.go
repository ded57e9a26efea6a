package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DownloadRepository interface {
	// RecordPaidDownload debits the wallet and appends the download row in one
	// transaction. A replay with the same idempotency key returns the original
	// row with replay=true and no second debit.
	RecordPaidDownload(userID, templateID, idempotencyKey string, costCredits int) (download *entity.Download, replay bool, err error)
	HasDownloaded(userID, templateID string) (bool, error)
	ListByUser(userID string, limit, offset int) ([]*entity.Download, error)
}

type downloadRepository struct {
	db *gorm.DB
}

func NewDownloadRepository(db *gorm.DB) DownloadRepository {
	return &downloadRepository{db: db}
}

func (r *downloadRepository) RecordPaidDownload(userID, templateID, idempotencyKey string, costCredits int) (*entity.Download, bool, error) {
	if existing, err := r.findByKey(userID, templateID, idempotencyKey); err != nil {
		return nil, false, err
	} else if existing != nil {
		return existing, true, nil
	}

	var downloadModel model.DownloadModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var walletModel model.WalletModel
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&walletModel, "user_id = ?", userID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			walletModel = model.WalletModel{UserID: userID, Balance: 0}
			if err := tx.Create(&walletModel).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}

		if walletModel.Balance < costCredits {
			return ErrInsufficientCredits
		}

		balanceBefore := walletModel.Balance
		if err := tx.Model(&walletModel).
			UpdateColumn("balance", balanceBefore-costCredits).Error; err != nil {
			return err
		}

		creditTx := model.CreditTransactionModel{
			UserID:        userID,
			TemplateID:    &templateID,
			Type:          string(entity.CreditTransactionTypeDownload),
			Amount:        -costCredits,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceBefore - costCredits,
		}
		if err := tx.Create(&creditTx).Error; err != nil {
			return err
		}

		downloadModel = model.DownloadModel{
			UserID:         userID,
			TemplateID:     templateID,
			CostCredits:    costCredits,
			IdempotencyKey: idempotencyKey,
		}
		if err := tx.Create(&downloadModel).Error; err != nil {
			return err
		}

		return tx.Model(&model.TemplateModel{}).
			Where("id = ?", templateID).
			UpdateColumn("downloads_count", gorm.Expr("downloads_count + ?", 1)).Error
	})
	if err != nil {
		// A concurrent request with the same key may have won the unique index
		// race; its row is the authoritative result.
		if existing, lookupErr := r.findByKey(userID, templateID, idempotencyKey); lookupErr == nil && existing != nil {
			return existing, true, nil
		}
		return nil, false, err
	}

	return ToDownloadEntity(&downloadModel), false, nil
}

func (r *downloadRepository) findByKey(userID, templateID, idempotencyKey string) (*entity.Download, error) {
	var downloadModel model.DownloadModel
	err := r.db.Where("user_id = ? AND template_id = ? AND idempotency_key = ?",
		userID, templateID, idempotencyKey).First(&downloadModel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return ToDownloadEntity(&downloadModel), nil
}

func (r *downloadRepository) HasDownloaded(userID, templateID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.DownloadModel{}).
		Where("user_id = ? AND template_id = ?", userID, templateID).
		Count(&count).Error
	return count > 0, err
}

func (r *downloadRepository) ListByUser(userID string, limit, offset int) ([]*entity.Download, error) {
	var downloadModels []model.DownloadModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&downloadModels).Error; err != nil {
		return nil, err
	}

	downloads := make([]*entity.Download, len(downloadModels))
	for i := range downloadModels {
		downloads[i] = ToDownloadEntity(&downloadModels[i])
	}
	return downloads, nil
}
