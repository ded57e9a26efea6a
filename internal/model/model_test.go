package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Email:    "test@example.com",
		Name:     "Test User",
		Role:     "user",
		Provider: "google",
		IsActive: true,
	}

	// BeforeCreate should set ID if empty
	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:    existingID,
		Email: "test@example.com",
		Name:  "Test User",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	// ID should remain unchanged if already set
	assert.Equal(t, existingID, user.ID)
}

func TestTemplateModel_BeforeCreate(t *testing.T) {
	template := &TemplateModel{
		Title:          "Test Template",
		CreditsCost:    2,
		Orientation:    "horizontal",
		PreviewAssetID: "asset-123",
	}

	err := template.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, template.ID)
}

func TestAssetModel_BeforeCreate(t *testing.T) {
	asset := &AssetModel{
		Kind:       "preview",
		StorageKey: "templates/preview/abc.mp4",
	}

	err := asset.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, asset.ID)
}

func TestLikeModel_BeforeCreate(t *testing.T) {
	like := &LikeModel{
		UserID:     "user-123",
		TemplateID: "template-123",
	}

	err := like.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, like.ID)
}

func TestDownloadModel_BeforeCreate(t *testing.T) {
	download := &DownloadModel{
		UserID:         "user-123",
		TemplateID:     "template-123",
		CostCredits:    2,
		IdempotencyKey: "key-1",
	}

	err := download.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, download.ID)
}

func TestWalletModel_BeforeCreate(t *testing.T) {
	wallet := &WalletModel{UserID: "user-123"}

	err := wallet.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, wallet.ID)
}

func TestContactMessageModel_BeforeCreate(t *testing.T) {
	message := &ContactMessageModel{
		Name:    "Jamie",
		Email:   "jamie@example.com",
		Message: "Hello",
	}

	err := message.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, message.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "templates", TemplateModel{}.TableName())
	assert.Equal(t, "assets", AssetModel{}.TableName())
	assert.Equal(t, "categories", CategoryModel{}.TableName())
	assert.Equal(t, "likes", LikeModel{}.TableName())
	assert.Equal(t, "downloads", DownloadModel{}.TableName())
	assert.Equal(t, "wallets", WalletModel{}.TableName())
	assert.Equal(t, "credit_transactions", CreditTransactionModel{}.TableName())
	assert.Equal(t, "contact_messages", ContactMessageModel{}.TableName())
}
