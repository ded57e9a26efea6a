package main

import (
	"errors"
	"fmt"
	"time"

	"sceneyard/internal/model"
	"sceneyard/pkg/config"
	"sceneyard/pkg/database"
	"sceneyard/pkg/logger"

	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	if err := seedDatabase(db, log); err != nil {
		log.Error("Failed to seed database: %v", err)
		panic(err)
	}

	log.Info("Database seeded successfully!")
}

func seedDatabase(db *gorm.DB, log *logger.Logger) error {
	admin, err := seedAdmin(db, log)
	if err != nil {
		return err
	}

	categories, err := seedCategories(db, log)
	if err != nil {
		return err
	}

	if err := seedTemplates(db, categories, log); err != nil {
		return err
	}

	return seedWallet(db, admin, log)
}

// seedAdmin creates the bootstrap admin account. Sign-in still goes through
// Google; the row just pre-assigns the role for that email.
func seedAdmin(db *gorm.DB, log *logger.Logger) (*model.UserModel, error) {
	const adminEmail = "admin@sceneyard.app"

	var admin model.UserModel
	err := db.Where("email = ?", adminEmail).First(&admin).Error
	if err == nil {
		log.Info("Admin user already exists, skipping")
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	admin = model.UserModel{
		Email:    adminEmail,
		Name:     "SceneYard Admin",
		Role:     "admin",
		Provider: "google",
		IsActive: true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin user: %w", err)
	}

	log.Info("Created admin user %s", adminEmail)
	return &admin, nil
}

func seedCategories(db *gorm.DB, log *logger.Logger) (map[string]model.CategoryModel, error) {
	seeds := []model.CategoryModel{
		{Name: "Intros", Slug: "intros"},
		{Name: "Titles", Slug: "titles"},
		{Name: "Lower Thirds", Slug: "lower-thirds"},
		{Name: "Transitions", Slug: "transitions"},
		{Name: "Social Media", Slug: "social-media"},
		{Name: "Logo Reveals", Slug: "logo-reveals"},
	}

	categories := make(map[string]model.CategoryModel, len(seeds))
	for _, seed := range seeds {
		var category model.CategoryModel
		err := db.Where("slug = ?", seed.Slug).First(&category).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			category = seed
			if err := db.Create(&category).Error; err != nil {
				return nil, fmt.Errorf("failed to create category %s: %w", seed.Slug, err)
			}
			log.Info("Created category %s", seed.Slug)
		} else if err != nil {
			return nil, err
		}
		categories[category.Slug] = category
	}

	return categories, nil
}

type templateSeed struct {
	title       string
	description string
	creditsCost int
	orientation string
	category    string
}

func seedTemplates(db *gorm.DB, categories map[string]model.CategoryModel, log *logger.Logger) error {
	seeds := []templateSeed{
		{
			title:       "Neon Glitch Intro",
			description: "Fast glitch intro with neon accents and a logo placeholder.",
			creditsCost: 2,
			orientation: "horizontal",
			category:    "intros",
		},
		{
			title:       "Minimal Title Pack",
			description: "Twelve clean animated titles for corporate edits.",
			creditsCost: 1,
			orientation: "horizontal",
			category:    "titles",
		},
		{
			title:       "Vertical Story Promo",
			description: "9:16 promo template tuned for reels and stories.",
			creditsCost: 3,
			orientation: "vertical",
			category:    "social-media",
		},
		{
			title:       "Ink Logo Reveal",
			description: "Ink bleed logo reveal with sound design markers.",
			creditsCost: 4,
			orientation: "horizontal",
			category:    "logo-reveals",
		},
	}

	now := time.Now()
	for _, seed := range seeds {
		var count int64
		if err := db.Model(&model.TemplateModel{}).Where("title = ?", seed.title).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			preview := model.AssetModel{
				Kind:        "preview",
				StorageKey:  fmt.Sprintf("seed/previews/%s.mp4", slugify(seed.title)),
				ContentType: "video/mp4",
			}
			if err := tx.Create(&preview).Error; err != nil {
				return err
			}

			thumbnail := model.AssetModel{
				Kind:        "thumbnail",
				StorageKey:  fmt.Sprintf("seed/thumbnails/%s.jpg", slugify(seed.title)),
				ContentType: "image/jpeg",
			}
			if err := tx.Create(&thumbnail).Error; err != nil {
				return err
			}

			download := model.AssetModel{
				Kind:        "download",
				StorageKey:  fmt.Sprintf("seed/downloads/%s.zip", slugify(seed.title)),
				ContentType: "application/zip",
			}
			if err := tx.Create(&download).Error; err != nil {
				return err
			}

			template := model.TemplateModel{
				Title:            seed.title,
				Description:      seed.description,
				CreditsCost:      seed.creditsCost,
				Orientation:      seed.orientation,
				PreviewAssetID:   preview.ID,
				ThumbnailAssetID: &thumbnail.ID,
				DownloadAssetID:  &download.ID,
				PublishedAt:      &now,
			}
			if err := tx.Create(&template).Error; err != nil {
				return err
			}

			if category, ok := categories[seed.category]; ok {
				if err := tx.Model(&template).Association("Categories").Append(&category); err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return fmt.Errorf("failed to seed template %q: %w", seed.title, err)
		}

		log.Info("Created template %q", seed.title)
	}

	return nil
}

func seedWallet(db *gorm.DB, admin *model.UserModel, log *logger.Logger) error {
	var wallet model.WalletModel
	err := db.Where("user_id = ?", admin.ID).First(&wallet).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	wallet = model.WalletModel{UserID: admin.ID, Balance: 100}
	if err := db.Create(&wallet).Error; err != nil {
		return fmt.Errorf("failed to create admin wallet: %w", err)
	}

	log.Info("Funded admin wallet with %d credits", wallet.Balance)
	return nil
}

func slugify(title string) string {
	out := make([]rune, 0, len(title))
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			out = append(out, r)
		case r >= 'A' && r <= 'Z':
			out = append(out, r+('a'-'A'))
		case r == ' ' || r == '-':
			out = append(out, '-')
		}
	}
	return string(out)
}
