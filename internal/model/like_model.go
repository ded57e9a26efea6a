package model

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"time"
)

// LikeModel keeps the template reference in the legacy video_id column the
// original schema shipped with.
type LikeModel struct {
	ID         string    `gorm:"type:uuid;primary_key" json:"id"`
	UserID     string    `gorm:"type:uuid;not null;uniqueIndex:ux_likes_user_template,priority:1" json:"user_id"`
	TemplateID string    `gorm:"type:uuid;column:video_id;not null;uniqueIndex:ux_likes_user_template,priority:2" json:"template_id"`
	CreatedAt  time.Time `json:"created_at"`
}

func (LikeModel) TableName() string {
	return "likes"
}

func (l *LikeModel) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
