package persistent

import (
	"errors"
	"time"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
)

type TemplateListParams struct {
	Limit        int
	Offset       int
	Orientation  string
	CategorySlug string
	FeaturedOnly bool
	// PublishedOnly hides drafts; the admin dashboard lists everything.
	PublishedOnly bool
}

type TemplateRepository interface {
	GetByID(id string) (*entity.Template, error)
	List(params TemplateListParams) ([]*entity.Template, int64, error)
	Create(template *entity.Template) (*entity.Template, error)
	Update(id string, fields map[string]interface{}) (*entity.Template, error)
	SoftDelete(id string) error
	SetFeatured(id string, featured bool) error
	Publish(id string) error
	AttachCategory(templateID, categoryID string) error
	DetachCategory(templateID, categoryID string) error
}

type templateRepository struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) TemplateRepository {
	return &templateRepository{db: db}
}

// GetByID loads the template with all three assets and its categories in one
// query. Soft-deleted rows are filtered by gorm's DeletedAt handling, so every
// read path shares the deleted_at IS NULL predicate.
func (r *templateRepository) GetByID(id string) (*entity.Template, error) {
	var templateModel model.TemplateModel
	err := r.db.
		Preload("PreviewAsset").
		Preload("ThumbnailAsset").
		Preload("DownloadAsset").
		Preload("Categories").
		First(&templateModel, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return ToTemplateEntity(&templateModel), nil
}

func (r *templateRepository) List(params TemplateListParams) ([]*entity.Template, int64, error) {
	query := r.db.Model(&model.TemplateModel{})

	if params.Orientation != "" {
		query = query.Where("orientation = ?", params.Orientation)
	}
	if params.FeaturedOnly {
		query = query.Where("featured = ?", true)
	}
	if params.PublishedOnly {
		query = query.Where("published_at IS NOT NULL")
	}
	if params.CategorySlug != "" {
		query = query.
			Joins("JOIN template_categories ON template_categories.template_model_id = templates.id").
			Joins("JOIN categories ON categories.id = template_categories.category_model_id").
			Where("categories.slug = ?", params.CategorySlug)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var templateModels []model.TemplateModel
	query = query.
		Preload("PreviewAsset").
		Preload("ThumbnailAsset").
		Preload("Categories").
		Order("created_at DESC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit).Offset(params.Offset)
	}
	if err := query.Find(&templateModels).Error; err != nil {
		return nil, 0, err
	}

	templates := make([]*entity.Template, len(templateModels))
	for i := range templateModels {
		templates[i] = ToTemplateEntity(&templateModels[i])
	}
	return templates, total, nil
}

// Create persists the asset rows and the template in one transaction. The
// preview asset is required, thumbnail and download are optional at creation
// time (a draft may be published before the zip is uploaded).
func (r *templateRepository) Create(template *entity.Template) (*entity.Template, error) {
	var templateModel model.TemplateModel

	err := r.db.Transaction(func(tx *gorm.DB) error {
		previewModel := assetToModel(template.PreviewAsset)
		if err := tx.Create(previewModel).Error; err != nil {
			return err
		}

		templateModel = model.TemplateModel{
			Title:          template.Title,
			Description:    template.Description,
			CreditsCost:    template.CreditsCost,
			Orientation:    string(template.Orientation),
			PreviewAssetID: previewModel.ID,
			Featured:       template.Featured,
			PublishedAt:    template.PublishedAt,
		}

		if template.ThumbnailAsset != nil {
			thumbModel := assetToModel(template.ThumbnailAsset)
			if err := tx.Create(thumbModel).Error; err != nil {
				return err
			}
			templateModel.ThumbnailAssetID = &thumbModel.ID
		}
		if template.DownloadAsset != nil {
			downloadModel := assetToModel(template.DownloadAsset)
			if err := tx.Create(downloadModel).Error; err != nil {
				return err
			}
			templateModel.DownloadAssetID = &downloadModel.ID
		}

		return tx.Create(&templateModel).Error
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(templateModel.ID)
}

// Update applies only the columns present in fields, a single UPDATE built
// from the partial input.
func (r *templateRepository) Update(id string, fields map[string]interface{}) (*entity.Template, error) {
	if len(fields) > 0 {
		result := r.db.Model(&model.TemplateModel{}).Where("id = ?", id).Updates(fields)
		if result.Error != nil {
			return nil, result.Error
		}
		if result.RowsAffected == 0 {
			return nil, ErrTemplateNotFound
		}
	}
	return r.GetByID(id)
}

func (r *templateRepository) SoftDelete(id string) error {
	result := r.db.Delete(&model.TemplateModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) SetFeatured(id string, featured bool) error {
	result := r.db.Model(&model.TemplateModel{}).Where("id = ?", id).Update("featured", featured)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}

func (r *templateRepository) Publish(id string) error {
	now := time.Now()
	result := r.db.Model(&model.TemplateModel{}).
		Where("id = ? AND published_at IS NULL", id).
		Update("published_at", &now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		// Already published or missing; distinguish for the caller.
		var count int64
		if err := r.db.Model(&model.TemplateModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrTemplateNotFound
		}
	}
	return nil
}

func (r *templateRepository) AttachCategory(templateID, categoryID string) error {
	templateModel := model.TemplateModel{ID: templateID}
	return r.db.Model(&templateModel).
		Association("Categories").
		Append(&model.CategoryModel{ID: categoryID})
}

func (r *templateRepository) DetachCategory(templateID, categoryID string) error {
	templateModel := model.TemplateModel{ID: templateID}
	return r.db.Model(&templateModel).
		Association("Categories").
		Delete(&model.CategoryModel{ID: categoryID})
}

func assetToModel(a *entity.Asset) *model.AssetModel {
	return &model.AssetModel{
		Kind:        string(a.Kind),
		StorageKey:  a.StorageKey,
		ContentType: a.ContentType,
		SizeBytes:   a.SizeBytes,
	}
}
