package repo

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Skotchmaster/gallery/internal/domain"
	"github.com/Skotchmaster/gallery/internal/models"
	"github.com/Skotchmaster/gallery/internal/transport"
)

// VerifyAdmin reports whether a stored credential matches both values exactly.
// It does not start a session.
func (r *GormRepo) VerifyAdmin(ctx context.Context, username, password string) (bool, error) {
	var count int64
	if err := r.DB.WithContext(ctx).Model(&models.Admin{}).
		Where("username = ? AND password = ?", username, password).
		Count(&count).Error; err != nil {
		return false, storageErr("verify admin", err)
	}
	return count > 0, nil
}

func (r *GormRepo) UpdateAdminCredential(ctx context.Context, req transport.CredentialRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var admin models.Admin
		if err := tx.Order("id ASC").First(&admin).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("admin: %w", domain.ErrNotFound)
			}
			return storageErr("get admin", err)
		}

		if err := tx.Model(&admin).Updates(map[string]any{
			"username": req.Username,
			"password": req.Password,
		}).Error; err != nil {
			return storageErr("update admin", err)
		}
		return nil
	})
}
