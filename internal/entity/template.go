package entity

import "time"

type Orientation string

const (
	OrientationHorizontal Orientation = "horizontal"
	OrientationVertical   Orientation = "vertical"
)

type AssetKind string

const (
	AssetKindPreview   AssetKind = "preview"
	AssetKindThumbnail AssetKind = "thumbnail"
	AssetKindDownload  AssetKind = "download"
)

// Asset is an immutable pointer into object storage. Templates reference up to
// three of them: the preview video, an optional thumbnail, and the download zip.
type Asset struct {
	ID          string    `json:"id"`
	Kind        AssetKind `json:"kind"`
	StorageKey  string    `json:"storage_key"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

type Template struct {
	ID             string      `json:"id"`
	Title          string      `json:"title"`
	Description    string      `json:"description"`
	CreditsCost    int         `json:"credits_cost"`
	Orientation    Orientation `json:"orientation"`
	PreviewAsset   *Asset      `json:"preview_asset,omitempty"`
	ThumbnailAsset *Asset      `json:"thumbnail_asset,omitempty"`
	DownloadAsset  *Asset      `json:"download_asset,omitempty"`
	Categories     []Category  `json:"categories,omitempty"`
	LikesCount     int64       `json:"likes_count"`
	DownloadsCount int64       `json:"downloads_count"`
	Featured       bool        `json:"featured"`
	PublishedAt    *time.Time  `json:"published_at,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}
