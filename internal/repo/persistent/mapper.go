package persistent

import (
	"sceneyard/internal/entity"
	"sceneyard/internal/model"
)

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:         m.ID,
		Email:      m.Email,
		Name:       m.Name,
		AvatarURL:  m.AvatarURL,
		Role:       entity.UserRole(m.Role),
		Provider:   m.Provider,
		ProviderID: m.ProviderID,
		IsActive:   m.IsActive,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

func ToAssetEntity(m *model.AssetModel) *entity.Asset {
	if m == nil {
		return nil
	}

	return &entity.Asset{
		ID:          m.ID,
		Kind:        entity.AssetKind(m.Kind),
		StorageKey:  m.StorageKey,
		ContentType: m.ContentType,
		SizeBytes:   m.SizeBytes,
		CreatedAt:   m.CreatedAt,
	}
}

func ToCategoryEntity(m *model.CategoryModel) entity.Category {
	return entity.Category{
		ID:   m.ID,
		Name: m.Name,
		Slug: m.Slug,
	}
}

func ToTemplateEntity(m *model.TemplateModel) *entity.Template {
	if m == nil {
		return nil
	}

	t := &entity.Template{
		ID:             m.ID,
		Title:          m.Title,
		Description:    m.Description,
		CreditsCost:    m.CreditsCost,
		Orientation:    entity.Orientation(m.Orientation),
		PreviewAsset:   ToAssetEntity(m.PreviewAsset),
		ThumbnailAsset: ToAssetEntity(m.ThumbnailAsset),
		DownloadAsset:  ToAssetEntity(m.DownloadAsset),
		LikesCount:     m.LikesCount,
		DownloadsCount: m.DownloadsCount,
		Featured:       m.Featured,
		PublishedAt:    m.PublishedAt,
		CreatedAt:      m.CreatedAt,
		UpdatedAt:      m.UpdatedAt,
	}

	for i := range m.Categories {
		t.Categories = append(t.Categories, ToCategoryEntity(&m.Categories[i]))
	}

	return t
}

func ToDownloadEntity(m *model.DownloadModel) *entity.Download {
	if m == nil {
		return nil
	}

	return &entity.Download{
		ID:             m.ID,
		UserID:         m.UserID,
		TemplateID:     m.TemplateID,
		CostCredits:    m.CostCredits,
		IdempotencyKey: m.IdempotencyKey,
		CreatedAt:      m.CreatedAt,
	}
}

func ToWalletEntity(m *model.WalletModel) *entity.Wallet {
	if m == nil {
		return nil
	}

	return &entity.Wallet{
		ID:        m.ID,
		UserID:    m.UserID,
		Balance:   m.Balance,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToCreditTransactionEntity(m *model.CreditTransactionModel) *entity.CreditTransaction {
	if m == nil {
		return nil
	}

	templateID := ""
	if m.TemplateID != nil {
		templateID = *m.TemplateID
	}

	return &entity.CreditTransaction{
		ID:            m.ID,
		UserID:        m.UserID,
		TemplateID:    templateID,
		Type:          entity.CreditTransactionType(m.Type),
		Amount:        m.Amount,
		BalanceBefore: m.BalanceBefore,
		BalanceAfter:  m.BalanceAfter,
		CreatedAt:     m.CreatedAt,
	}
}

func ToContactMessageEntity(m *model.ContactMessageModel) *entity.ContactMessage {
	if m == nil {
		return nil
	}

	return &entity.ContactMessage{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Message:   m.Message,
		Status:    entity.ContactStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
