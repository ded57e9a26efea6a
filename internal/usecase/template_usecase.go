package usecase

import (
	"fmt"
	"path"
	"time"

	"sceneyard/internal/entity"
	"sceneyard/internal/repo/persistent"
	"sceneyard/pkg/logger"
	"sceneyard/pkg/storage"

	"github.com/google/uuid"
)

const presignExpiry = 15 * time.Minute

type AssetInput struct {
	StorageKey  string
	ContentType string
	SizeBytes   int64
}

type CreateTemplateInput struct {
	Title       string
	Description string
	CreditsCost int
	Orientation string
	Preview     AssetInput
	Thumbnail   *AssetInput
	Download    *AssetInput
	CategoryIDs []string
	Publish     bool
}

// UpdateTemplateInput carries only the fields the admin actually changed; nil
// pointers are left untouched.
type UpdateTemplateInput struct {
	Title       *string
	Description *string
	CreditsCost *int
	Orientation *string
	Featured    *bool
}

type PresignedUpload struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
}

type TemplateUseCase interface {
	GetTemplate(id string) (*entity.Template, error)
	ListTemplates(params persistent.TemplateListParams) ([]*entity.Template, int64, error)
	ListCategories() ([]entity.Category, error)
	CreateTemplate(input CreateTemplateInput) (*entity.Template, error)
	UpdateTemplate(id string, input UpdateTemplateInput) (*entity.Template, error)
	DeleteTemplate(id string) error
	SetFeatured(id string, featured bool) error
	PublishTemplate(id string) error
	CreateCategory(name, slug string) (*entity.Category, error)
	DeleteCategory(id string) error
	AttachCategory(templateID, categoryID string) error
	DetachCategory(templateID, categoryID string) error
	PresignAssetUpload(kind entity.AssetKind, filename, contentType string) (*PresignedUpload, error)
	ResolveAssetURL(asset *entity.Asset) string
}

type templateUseCase struct {
	templateRepo  persistent.TemplateRepository
	categoryRepo  persistent.CategoryRepository
	storageClient *storage.Client
	logger        *logger.Logger
}

func NewTemplateUseCase(
	templateRepo persistent.TemplateRepository,
	categoryRepo persistent.CategoryRepository,
	storageClient *storage.Client,
	logger *logger.Logger,
) TemplateUseCase {
	return &templateUseCase{
		templateRepo:  templateRepo,
		categoryRepo:  categoryRepo,
		storageClient: storageClient,
		logger:        logger,
	}
}

func (uc *templateUseCase) GetTemplate(id string) (*entity.Template, error) {
	return uc.templateRepo.GetByID(id)
}

func (uc *templateUseCase) ListTemplates(params persistent.TemplateListParams) ([]*entity.Template, int64, error) {
	return uc.templateRepo.List(params)
}

func (uc *templateUseCase) ListCategories() ([]entity.Category, error) {
	return uc.categoryRepo.List()
}

func (uc *templateUseCase) CreateTemplate(input CreateTemplateInput) (*entity.Template, error) {
	if input.Title == "" {
		return nil, fmt.Errorf("title is required")
	}
	if input.CreditsCost < 1 || input.CreditsCost > 4 {
		return nil, fmt.Errorf("credits cost must be between 1 and 4")
	}
	orientation := entity.Orientation(input.Orientation)
	if orientation != entity.OrientationHorizontal && orientation != entity.OrientationVertical {
		return nil, fmt.Errorf("orientation must be horizontal or vertical")
	}
	if input.Preview.StorageKey == "" {
		return nil, fmt.Errorf("preview asset is required")
	}

	template := &entity.Template{
		Title:       input.Title,
		Description: input.Description,
		CreditsCost: input.CreditsCost,
		Orientation: orientation,
		PreviewAsset: &entity.Asset{
			Kind:        entity.AssetKindPreview,
			StorageKey:  input.Preview.StorageKey,
			ContentType: input.Preview.ContentType,
			SizeBytes:   input.Preview.SizeBytes,
		},
	}
	if input.Thumbnail != nil {
		template.ThumbnailAsset = &entity.Asset{
			Kind:        entity.AssetKindThumbnail,
			StorageKey:  input.Thumbnail.StorageKey,
			ContentType: input.Thumbnail.ContentType,
			SizeBytes:   input.Thumbnail.SizeBytes,
		}
	}
	if input.Download != nil {
		template.DownloadAsset = &entity.Asset{
			Kind:        entity.AssetKindDownload,
			StorageKey:  input.Download.StorageKey,
			ContentType: input.Download.ContentType,
			SizeBytes:   input.Download.SizeBytes,
		}
	}
	if input.Publish {
		now := time.Now()
		template.PublishedAt = &now
	}

	created, err := uc.templateRepo.Create(template)
	if err != nil {
		uc.logger.Error("Failed to create template: %v", err)
		return nil, fmt.Errorf("failed to create template: %w", err)
	}

	for _, categoryID := range input.CategoryIDs {
		if err := uc.templateRepo.AttachCategory(created.ID, categoryID); err != nil {
			uc.logger.Error("Failed to attach category %s to template %s: %v", categoryID, created.ID, err)
		}
	}

	return uc.templateRepo.GetByID(created.ID)
}

func (uc *templateUseCase) UpdateTemplate(id string, input UpdateTemplateInput) (*entity.Template, error) {
	fields, err := buildTemplateUpdates(input)
	if err != nil {
		return nil, err
	}
	return uc.templateRepo.Update(id, fields)
}

// buildTemplateUpdates folds the defined fields of a partial update into the
// column map handed to the repository. Undefined fields never appear in the
// UPDATE statement.
func buildTemplateUpdates(input UpdateTemplateInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if input.Title != nil {
		if *input.Title == "" {
			return nil, fmt.Errorf("title cannot be empty")
		}
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.CreditsCost != nil {
		if *input.CreditsCost < 1 || *input.CreditsCost > 4 {
			return nil, fmt.Errorf("credits cost must be between 1 and 4")
		}
		fields["credits_cost"] = *input.CreditsCost
	}
	if input.Orientation != nil {
		orientation := entity.Orientation(*input.Orientation)
		if orientation != entity.OrientationHorizontal && orientation != entity.OrientationVertical {
			return nil, fmt.Errorf("orientation must be horizontal or vertical")
		}
		fields["orientation"] = *input.Orientation
	}
	if input.Featured != nil {
		fields["featured"] = *input.Featured
	}

	return fields, nil
}

func (uc *templateUseCase) DeleteTemplate(id string) error {
	return uc.templateRepo.SoftDelete(id)
}

func (uc *templateUseCase) SetFeatured(id string, featured bool) error {
	return uc.templateRepo.SetFeatured(id, featured)
}

func (uc *templateUseCase) PublishTemplate(id string) error {
	return uc.templateRepo.Publish(id)
}

func (uc *templateUseCase) CreateCategory(name, slug string) (*entity.Category, error) {
	if name == "" || slug == "" {
		return nil, fmt.Errorf("name and slug are required")
	}
	return uc.categoryRepo.Create(&entity.Category{Name: name, Slug: slug})
}

func (uc *templateUseCase) DeleteCategory(id string) error {
	return uc.categoryRepo.Delete(id)
}

func (uc *templateUseCase) AttachCategory(templateID, categoryID string) error {
	return uc.templateRepo.AttachCategory(templateID, categoryID)
}

func (uc *templateUseCase) DetachCategory(templateID, categoryID string) error {
	return uc.templateRepo.DetachCategory(templateID, categoryID)
}

// PresignAssetUpload hands the admin UI a direct-to-bucket PUT URL. The
// storage key is minted here so clients never choose their own paths.
func (uc *templateUseCase) PresignAssetUpload(kind entity.AssetKind, filename, contentType string) (*PresignedUpload, error) {
	switch kind {
	case entity.AssetKindPreview, entity.AssetKindThumbnail, entity.AssetKindDownload:
	default:
		return nil, fmt.Errorf("unknown asset kind: %s", kind)
	}

	key := fmt.Sprintf("templates/%s/%s%s", kind, uuid.New().String(), path.Ext(filename))
	uploadURL, err := uc.storageClient.PresignPut(key, contentType, presignExpiry)
	if err != nil {
		uc.logger.Error("Failed to presign upload for %s: %v", key, err)
		return nil, fmt.Errorf("failed to presign upload: %w", err)
	}

	return &PresignedUpload{UploadURL: uploadURL, StorageKey: key}, nil
}

func (uc *templateUseCase) ResolveAssetURL(asset *entity.Asset) string {
	if asset == nil {
		return ""
	}
	return uc.storageClient.PublicURL(asset.StorageKey)
}
