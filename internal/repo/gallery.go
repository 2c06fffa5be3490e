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

func (r *GormRepo) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := r.DB.WithContext(ctx).Order("id DESC").Find(&items).Error; err != nil {
		return nil, storageErr("list products", err)
	}
	if items == nil {
		items = []models.Product{}
	}
	return items, nil
}

func (r *GormRepo) AddProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	prod := models.Product{
		Name:  req.Name,
		Price: *req.Price,
		Stock: *req.Stock,
		Image: req.Image,
	}
	if err := r.DB.WithContext(ctx).Create(&prod).Error; err != nil {
		return nil, storageErr("add product", err)
	}
	return &prod, nil
}

// DeleteProduct removes the product with the given id. Deleting an id that
// does not exist is not an error.
func (r *GormRepo) DeleteProduct(ctx context.Context, id uint) error {
	if id == 0 {
		return nil
	}
	if err := r.DB.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return storageErr("delete product", err)
	}
	return nil
}

func (r *GormRepo) GetContact(ctx context.Context) (*models.Contact, error) {
	var contact models.Contact
	if err := r.DB.WithContext(ctx).Where("id = ?", models.ContactID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("contact: %w", domain.ErrNotFound)
		}
		return nil, storageErr("get contact", err)
	}
	return &contact, nil
}

func (r *GormRepo) UpdateContact(ctx context.Context, req transport.ContactRequest) (*models.Contact, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	contact := models.Contact{
		ID:        models.ContactID,
		Phone1:    *req.Phone1,
		Phone2:    *req.Phone2,
		Instagram: *req.Instagram,
		Email:     *req.Email,
	}
	res := r.DB.WithContext(ctx).Model(&models.Contact{}).
		Where("id = ?", models.ContactID).
		Updates(map[string]any{
			"phone1":    contact.Phone1,
			"phone2":    contact.Phone2,
			"instagram": contact.Instagram,
			"email":     contact.Email,
		})
	if res.Error != nil {
		return nil, storageErr("update contact", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("contact: %w", domain.ErrNotFound)
	}
	return &contact, nil
}
