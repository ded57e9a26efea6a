package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID         string         `gorm:"type:uuid;primary_key" json:"id"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Name       string         `gorm:"not null" json:"name"`
	AvatarURL  string         `json:"avatar_url"`
	Role       string         `gorm:"type:varchar(20);default:'user'" json:"role"`
	Provider   string         `gorm:"type:varchar(20);default:'google'" json:"provider"`
	ProviderID string         `gorm:"index" json:"provider_id"`
	IsActive   bool           `gorm:"default:true" json:"is_active"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

func (UserModel) TableName() string {
	return "users"
}

func (u *UserModel) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	return nil
}
