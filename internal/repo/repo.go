package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/gallery/internal/domain"
	"github.com/Skotchmaster/gallery/internal/models"
)

type GormRepo struct {
	DB *gorm.DB
}

func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}

// Initialize creates the tables and seeds the admin and contact rows when
// they are absent. Existing rows are never touched, so it is safe on every start.
func (r *GormRepo) Initialize(ctx context.Context) error {
	db := r.DB.WithContext(ctx)
	if err := db.AutoMigrate(&models.Product{}, &models.Admin{}, &models.Contact{}); err != nil {
		return storageErr("migrate", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var admins int64
		if err := tx.Model(&models.Admin{}).Count(&admins).Error; err != nil {
			return storageErr("count admin", err)
		}
		if admins == 0 {
			admin := models.DefaultAdmin()
			if err := tx.Create(&admin).Error; err != nil {
				return storageErr("seed admin", err)
			}
		}

		var contact models.Contact
		err := tx.Where("id = ?", models.ContactID).First(&contact).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			def := models.DefaultContact()
			if err := tx.Create(&def).Error; err != nil {
				return storageErr("seed contact", err)
			}
		case err != nil:
			return storageErr("get contact", err)
		}
		return nil
	})
}
