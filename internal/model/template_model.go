package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AssetModel struct {
	ID          string    `gorm:"type:uuid;primary_key" json:"id"`
	Kind        string    `gorm:"type:varchar(20);not null" json:"kind"`
	StorageKey  string    `gorm:"not null" json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `gorm:"default:0" json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (AssetModel) TableName() string {
	return "assets"
}

func (a *AssetModel) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

type TemplateModel struct {
	ID               string          `gorm:"type:uuid;primary_key" json:"id"`
	Title            string          `gorm:"not null" json:"title"`
	Description      string          `json:"description"`
	CreditsCost      int             `gorm:"not null;default:1" json:"credits_cost"`
	Orientation      string          `gorm:"type:varchar(10);not null;default:'horizontal'" json:"orientation"`
	PreviewAssetID   string          `gorm:"type:uuid;not null" json:"preview_asset_id"`
	ThumbnailAssetID *string         `gorm:"type:uuid" json:"thumbnail_asset_id"`
	DownloadAssetID  *string         `gorm:"type:uuid" json:"download_asset_id"`
	PreviewAsset     *AssetModel     `gorm:"foreignKey:PreviewAssetID" json:"preview_asset,omitempty"`
	ThumbnailAsset   *AssetModel     `gorm:"foreignKey:ThumbnailAssetID" json:"thumbnail_asset,omitempty"`
	DownloadAsset    *AssetModel     `gorm:"foreignKey:DownloadAssetID" json:"download_asset,omitempty"`
	Categories       []CategoryModel `gorm:"many2many:template_categories" json:"categories,omitempty"`
	LikesCount       int64           `gorm:"default:0" json:"likes_count"`
	DownloadsCount   int64           `gorm:"default:0" json:"downloads_count"`
	Featured         bool            `gorm:"default:false;index" json:"featured"`
	PublishedAt      *time.Time      `json:"published_at"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
	DeletedAt        gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (TemplateModel) TableName() string {
	return "templates"
}

func (t *TemplateModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}

type CategoryModel struct {
	ID   string `gorm:"type:uuid;primary_key" json:"id"`
	Name string `gorm:"not null" json:"name"`
	Slug string `gorm:"uniqueIndex;not null" json:"slug"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

func (c *CategoryModel) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	return nil
}
