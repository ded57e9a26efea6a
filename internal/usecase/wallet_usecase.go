package usecase

import (
	"fmt"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"
)

type WalletUseCase interface {
	GetWallet(userID string) (*entity.Wallet, error)
	// TopUp is the development stand-in for a payment provider callback.
	TopUp(userID string, amount int) (*entity.Wallet, error)
	// Grant is the admin credit grant; it records a grant transaction.
	Grant(userID string, amount int) (*entity.Wallet, error)
	GetTransactions(userID string, limit, offset int) ([]*entity.CreditTransaction, error)
}

type walletUseCase struct {
	walletRepo persistent.WalletRepository
	logger     *logger.Logger
}

func NewWalletUseCase(walletRepo persistent.WalletRepository, logger *logger.Logger) WalletUseCase {
	return &walletUseCase{
		walletRepo: walletRepo,
		logger:     logger,
	}
}

func (uc *walletUseCase) GetWallet(userID string) (*entity.Wallet, error) {
	wallet, err := uc.walletRepo.GetOrCreate(userID)
	if err != nil {
		uc.logger.Error("Failed to get wallet for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return wallet, nil
}

func (uc *walletUseCase) TopUp(userID string, amount int) (*entity.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	wallet, err := uc.walletRepo.Credit(userID, amount, entity.CreditTransactionTypeTopUp, "")
	if err != nil {
		uc.logger.Error("Failed to top up wallet for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to top up wallet: %w", err)
	}
	return wallet, nil
}

func (uc *walletUseCase) Grant(userID string, amount int) (*entity.Wallet, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	wallet, err := uc.walletRepo.Credit(userID, amount, entity.CreditTransactionTypeGrant, "")
	if err != nil {
		uc.logger.Error("Failed to grant credits to %s: %v", userID, err)
		return nil, fmt.Errorf("failed to grant credits: %w", err)
	}
	return wallet, nil
}

func (uc *walletUseCase) GetTransactions(userID string, limit, offset int) ([]*entity.CreditTransaction, error) {
	return uc.walletRepo.GetTransactions(userID, limit, offset)
}
