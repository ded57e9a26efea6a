package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DownloadModel rows are append-only. The unique index over
// (user_id, template_id, idempotency_key) is what makes a retried request
// return the original row instead of debiting twice.
type DownloadModel struct {
	ID             string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID         string    `gorm:"type:uuid;not null;uniqueIndex:ux_downloads_idempotency,priority:1" json:"user_id"`
	TemplateID     string    `gorm:"type:uuid;not null;uniqueIndex:ux_downloads_idempotency,priority:2" json:"template_id"`
	CostCredits    int       `gorm:"not null" json:"cost_credits"`
	IdempotencyKey string    `gorm:"not null;uniqueIndex:ux_downloads_idempotency,priority:3" json:"idempotency_key"`
	CreatedAt      time.Time `json:"created_at"`
}

func (DownloadModel) TableName() string {
	return "downloads"
}

func (d *DownloadModel) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	return nil
}
