package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type LikeRepository interface {
	Toggle(userID, templateID string) (liked bool, count int64, err error)
	IsLiked(userID, templateID string) (bool, error)
	CountForTemplate(templateID string) (int64, error)
	ListLikedTemplates(userID string, limit, offset int) ([]*entity.Template, error)
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

// Toggle flips the (user, template) like inside one transaction. The template
// row is locked first, then likes_count is recomputed from COUNT(*) before
// commit, so the counter always equals the number of like rows.
func (r *likeRepository) Toggle(userID, templateID string) (bool, int64, error) {
	var (
		liked bool
		count int64
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var templateModel model.TemplateModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&templateModel, "id = ?", templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrTemplateNotFound
			}
			return err
		}

		var existing model.LikeModel
		err := tx.Where("user_id = ? AND video_id = ?", userID, templateID).First(&existing).Error
		switch {
		case err == nil:
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			liked = false
		case errors.Is(err, gorm.ErrRecordNotFound):
			likeModel := &model.LikeModel{
				UserID:     userID,
				TemplateID: templateID,
			}
			if err := tx.Create(likeModel).Error; err != nil {
				return err
			}
			liked = true
		default:
			return err
		}

		if err := tx.Model(&model.LikeModel{}).
			Where("video_id = ?", templateID).
			Count(&count).Error; err != nil {
			return err
		}

		return tx.Model(&templateModel).UpdateColumn("likes_count", count).Error
	})
	if err != nil {
		return false, 0, err
	}

	return liked, count, nil
}

func (r *likeRepository) IsLiked(userID, templateID string) (bool, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("user_id = ? AND video_id = ?", userID, templateID).
		Count(&count).Error
	return count > 0, err
}

func (r *likeRepository) CountForTemplate(templateID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.LikeModel{}).
		Where("video_id = ?", templateID).
		Count(&count).Error
	return count, err
}

func (r *likeRepository) ListLikedTemplates(userID string, limit, offset int) ([]*entity.Template, error) {
	var templateModels []model.TemplateModel
	query := r.db.
		Joins("JOIN likes ON likes.video_id = templates.id").
		Where("likes.user_id = ?", userID).
		Preload("PreviewAsset").
		Preload("ThumbnailAsset").
		Preload("Categories").
		Order("likes.created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]*entity.Template, len(templateModels))
	for i := range templateModels {
		templates[i] = ToTemplateEntity(&templateModels[i])
	}
	return templates, nil
}
