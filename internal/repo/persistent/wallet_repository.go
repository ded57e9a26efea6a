package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type WalletRepository interface {
	GetOrCreate(userID string) (*entity.Wallet, error)
	// Credit adds amount to the wallet and records a transaction row of the
	// given type. Amount must be positive; debits happen only through the
	// download path.
	Credit(userID string, amount int, txType entity.CreditTransactionType, templateID string) (*entity.Wallet, error)
	GetTransactions(userID string, limit, offset int) ([]*entity.CreditTransaction, error)
}

type walletRepository struct {
	db *gorm.DB
}

func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetOrCreate(userID string) (*entity.Wallet, error) {
	var walletModel model.WalletModel
	if err := r.db.Where("user_id = ?", userID).First(&walletModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			walletModel = model.WalletModel{UserID: userID, Balance: 0}
			if err := r.db.Create(&walletModel).Error; err != nil {
				return nil, err
			}
		} else {
			return nil, err
		}
	}
	return ToWalletEntity(&walletModel), nil
}

func (r *walletRepository) Credit(userID string, amount int, txType entity.CreditTransactionType, templateID string) (*entity.Wallet, error) {
	var walletModel model.WalletModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
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

		balanceBefore := walletModel.Balance
		walletModel.Balance = balanceBefore + amount
		if err := tx.Model(&walletModel).
			UpdateColumn("balance", walletModel.Balance).Error; err != nil {
			return err
		}

		var templateRef *string
		if templateID != "" {
			templateRef = &templateID
		}
		creditTx := model.CreditTransactionModel{
			UserID:        userID,
			TemplateID:    templateRef,
			Type:          string(txType),
			Amount:        amount,
			BalanceBefore: balanceBefore,
			BalanceAfter:  walletModel.Balance,
		}
		return tx.Create(&creditTx).Error
	})
	if err != nil {
		return nil, err
	}

	return ToWalletEntity(&walletModel), nil
}

func (r *walletRepository) GetTransactions(userID string, limit, offset int) ([]*entity.CreditTransaction, error) {
	var transactionModels []model.CreditTransactionModel
	query := r.db.Where("user_id = ?", userID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&transactionModels).Error; err != nil {
		return nil, err
	}

	transactions := make([]*entity.CreditTransaction, len(transactionModels))
	for i := range transactionModels {
		transactions[i] = ToCreditTransactionEntity(&transactionModels[i])
	}
	return transactions, nil
}
