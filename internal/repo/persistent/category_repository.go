package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
)

type CategoryRepository interface {
	Create(category *entity.Category) (*entity.Category, error)
	List() ([]entity.Category, error)
	GetBySlug(slug string) (*entity.Category, error)
	Delete(id string) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(category *entity.Category) (*entity.Category, error) {
	categoryModel := model.CategoryModel{
		Name: category.Name,
		Slug: category.Slug,
	}
	if err := r.db.Create(&categoryModel).Error; err != nil {
		return nil, err
	}
	created := ToCategoryEntity(&categoryModel)
	return &created, nil
}

func (r *categoryRepository) List() ([]entity.Category, error) {
	var categoryModels []model.CategoryModel
	if err := r.db.Order("name ASC").Find(&categoryModels).Error; err != nil {
		return nil, err
	}

	categories := make([]entity.Category, len(categoryModels))
	for i := range categoryModels {
		categories[i] = ToCategoryEntity(&categoryModels[i])
	}
	return categories, nil
}

func (r *categoryRepository) GetBySlug(slug string) (*entity.Category, error) {
	var categoryModel model.CategoryModel
	if err := r.db.First(&categoryModel, "slug = ?", slug).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	category := ToCategoryEntity(&categoryModel)
	return &category, nil
}

func (r *categoryRepository) Delete(id string) error {
	result := r.db.Delete(&model.CategoryModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
