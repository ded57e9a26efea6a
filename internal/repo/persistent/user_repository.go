package persistent

import (
	"errors"

	"sceneyard/internal/entity"
	"sceneyard/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	UpsertByEmail(user *entity.User) (*entity.User, bool, error)
	List(limit, offset int) ([]*entity.User, int64, error)
	UpdateRole(userID string, role entity.UserRole) error
	Delete(userID string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.First(&userModel, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) GetByEmail(email string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.First(&userModel, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

// UpsertByEmail creates the user on first sign-in or refreshes the profile
// fields the identity provider owns. The second return value reports whether a
// new row was created.
func (r *userRepository) UpsertByEmail(user *entity.User) (*entity.User, bool, error) {
	var (
		userModel model.UserModel
		created   bool
	)

	err := r.db.Transaction(func(tx *gorm.DB) error {
		err := tx.First(&userModel, "email = ?", user.Email).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			userModel = model.UserModel{
				Email:      user.Email,
				Name:       user.Name,
				AvatarURL:  user.AvatarURL,
				Role:       string(entity.RoleUser),
				Provider:   user.Provider,
				ProviderID: user.ProviderID,
				IsActive:   true,
			}
			created = true
			return tx.Create(&userModel).Error
		}
		if err != nil {
			return err
		}

		updates := map[string]interface{}{
			"name":        user.Name,
			"avatar_url":  user.AvatarURL,
			"provider":    user.Provider,
			"provider_id": user.ProviderID,
		}
		if err := tx.Model(&userModel).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&userModel, "id = ?", userModel.ID).Error
	})
	if err != nil {
		return nil, false, err
	}

	return ToUserEntity(&userModel), created, nil
}

func (r *userRepository) List(limit, offset int) ([]*entity.User, int64, error) {
	var total int64
	if err := r.db.Model(&model.UserModel{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var userModels []model.UserModel
	query := r.db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&userModels).Error; err != nil {
		return nil, 0, err
	}

	users := make([]*entity.User, len(userModels))
	for i := range userModels {
		users[i] = ToUserEntity(&userModels[i])
	}
	return users, total, nil
}

// UpdateRole refuses to demote the last remaining admin. The admin rows are
// locked for the duration of the transaction so two concurrent demotions
// cannot both pass the count check.
func (r *userRepository) UpdateRole(userID string, role entity.UserRole) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var userModel model.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&userModel, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if userModel.Role == string(entity.RoleAdmin) && role != entity.RoleAdmin {
			var admins []model.UserModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Find(&admins, "role = ?", string(entity.RoleAdmin)).Error; err != nil {
				return err
			}
			if len(admins) <= 1 {
				return ErrLastAdmin
			}
		}

		return tx.Model(&userModel).Update("role", string(role)).Error
	})
}

func (r *userRepository) Delete(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var userModel model.UserModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&userModel, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		if userModel.Role == string(entity.RoleAdmin) {
			var admins []model.UserModel
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Find(&admins, "role = ?", string(entity.RoleAdmin)).Error; err != nil {
				return err
			}
			if len(admins) <= 1 {
				return ErrLastAdmin
			}
		}

		return tx.Delete(&userModel).Error
	})
}
