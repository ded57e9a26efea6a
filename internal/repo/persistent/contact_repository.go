package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
)

type ContactRepository interface {
	Create(message *entity.ContactMessage) (*entity.ContactMessage, error)
	GetByID(id string) (*entity.ContactMessage, error)
	List(status string, limit, offset int) ([]*entity.ContactMessage, int64, error)
	UpdateStatus(id string, status entity.ContactStatus) error
	Delete(id string) error
}

type contactRepository struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(message *entity.ContactMessage) (*entity.ContactMessage, error) {
	contactModel := model.ContactMessageModel{
		Name:    message.Name,
		Email:   message.Email,
		Message: message.Message,
		Status:  string(entity.ContactStatusUnread),
	}
	if err := r.db.Create(&contactModel).Error; err != nil {
		return nil, err
	}
	return ToContactMessageEntity(&contactModel), nil
}

func (r *contactRepository) GetByID(id string) (*entity.ContactMessage, error) {
	var contactModel model.ContactMessageModel
	if err := r.db.First(&contactModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ToContactMessageEntity(&contactModel), nil
}

func (r *contactRepository) List(status string, limit, offset int) ([]*entity.ContactMessage, int64, error) {
	query := r.db.Model(&model.ContactMessageModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var contactModels []model.ContactMessageModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&contactModels).Error; err != nil {
		return nil, 0, err
	}

	messages := make([]*entity.ContactMessage, len(contactModels))
	for i := range contactModels {
		messages[i] = ToContactMessageEntity(&contactModels[i])
	}
	return messages, total, nil
}

func (r *contactRepository) UpdateStatus(id string, status entity.ContactStatus) error {
	result := r.db.Model(&model.ContactMessageModel{}).
		Where("id = ?", id).
		Update("status", string(status))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *contactRepository) Delete(id string) error {
	result := r.db.Delete(&model.ContactMessageModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
