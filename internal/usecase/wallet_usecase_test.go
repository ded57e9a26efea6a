package usecase

import (
	"testing"

	"sceneyard/internal/entity"
	"sceneyard/pkg/logger"

	"github.com/stretchr/testify/assert"
)

func TestTopUp_RejectsNonPositiveAmount(t *testing.T) {
	mockWallets := new(MockWalletRepository)
	uc := NewWalletUseCase(mockWallets, logger.New())

	for _, amount := range []int{0, -5} {
		wallet, err := uc.TopUp("user-1", amount)
		assert.Nil(t, wallet)
		assert.Error(t, err)
	}
	mockWallets.AssertNotCalled(t, "Credit")
}

func TestTopUp_CreditsWallet(t *testing.T) {
	mockWallets := new(MockWalletRepository)
	uc := NewWalletUseCase(mockWallets, logger.New())

	mockWallets.On("Credit", "user-1", 5, entity.CreditTransactionTypeTopUp, "").
		Return(&entity.Wallet{UserID: "user-1", Balance: 15}, nil)

	wallet, err := uc.TopUp("user-1", 5)

	assert.NoError(t, err)
	assert.Equal(t, 15, wallet.Balance)
	mockWallets.AssertExpectations(t)
}

func TestGrant_RecordsGrantTransaction(t *testing.T) {
	mockWallets := new(MockWalletRepository)
	uc := NewWalletUseCase(mockWallets, logger.New())

	mockWallets.On("Credit", "user-1", 20, entity.CreditTransactionTypeGrant, "").
		Return(&entity.Wallet{UserID: "user-1", Balance: 20}, nil)

	wallet, err := uc.Grant("user-1", 20)

	assert.NoError(t, err)
	assert.Equal(t, 20, wallet.Balance)
	mockWallets.AssertExpectations(t)
}

func TestGetWallet_CreatesWhenMissing(t *testing.T) {
	mockWallets := new(MockWalletRepository)
	uc := NewWalletUseCase(mockWallets, logger.New())

	mockWallets.On("GetOrCreate", "user-1").Return(&entity.Wallet{UserID: "user-1", Balance: 0}, nil)

	wallet, err := uc.GetWallet("user-1")

	assert.NoError(t, err)
	assert.Equal(t, 0, wallet.Balance)
	mockWallets.AssertExpectations(t)
}
