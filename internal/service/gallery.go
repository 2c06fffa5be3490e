package service

import (
	"context"
	"fmt"

	"github.com/Skotchmaster/gallery/internal/logging"
	"github.com/Skotchmaster/gallery/internal/models"
	"github.com/Skotchmaster/gallery/internal/mykafka"
	"github.com/Skotchmaster/gallery/internal/repo"
	"github.com/Skotchmaster/gallery/internal/session"
	"github.com/Skotchmaster/gallery/internal/transport"
)

// EventPublisher is satisfied by *mykafka.Producer.
type EventPublisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type GalleryService struct {
	Repo   *repo.GormRepo
	Events EventPublisher
}

type Gallery struct {
	Products []models.Product `json:"products"`
	Contact  *models.Contact  `json:"contact"`
}

func (s *GalleryService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *GalleryService) GetContact(ctx context.Context) (*models.Contact, error) {
	return s.Repo.GetContact(ctx)
}

// Gallery is what the public page shows: every product plus the contact row.
func (s *GalleryService) Gallery(ctx context.Context) (*Gallery, error) {
	products, err := s.Repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}
	contact, err := s.Repo.GetContact(ctx)
	if err != nil {
		return nil, err
	}
	return &Gallery{Products: products, Contact: contact}, nil
}

func (s *GalleryService) Dashboard(ctx context.Context, sess *session.Session) (*Gallery, error) {
	if err := session.Authorize(sess); err != nil {
		return nil, err
	}
	return s.Gallery(ctx)
}

func (s *GalleryService) AddProduct(ctx context.Context, sess *session.Session, req transport.CreateProductRequest) (*models.Product, error) {
	if err := session.Authorize(sess); err != nil {
		return nil, err
	}

	prod, err := s.Repo.AddProduct(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mykafka.ProductTopic, fmt.Sprint(prod.ID), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

func (s *GalleryService) DeleteProduct(ctx context.Context, sess *session.Session, id uint) error {
	if err := session.Authorize(sess); err != nil {
		return err
	}
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, mykafka.ProductTopic, fmt.Sprint(id), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

func (s *GalleryService) UpdateContact(ctx context.Context, sess *session.Session, req transport.ContactRequest) (*models.Contact, error) {
	if err := session.Authorize(sess); err != nil {
		return nil, err
	}

	contact, err := s.Repo.UpdateContact(ctx, req)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, mykafka.ContactTopic, fmt.Sprint(models.ContactID), map[string]any{
		"type":    "contact_updated",
		"contact": contact,
	})
	return contact, nil
}

func (s *GalleryService) UpdateAdminCredential(ctx context.Context, sess *session.Session, req transport.CredentialRequest) error {
	if err := session.Authorize(sess); err != nil {
		return err
	}
	if err := s.Repo.UpdateAdminCredential(ctx, req); err != nil {
		return err
	}

	s.publish(ctx, mykafka.AdminTopic, req.Username, map[string]any{
		"type":     "admin_credential_updated",
		"username": req.Username,
	})
	return nil
}

func (s *GalleryService) publish(ctx context.Context, topic, key string, event map[string]any) {
	if s.Events == nil {
		return
	}
	if err := s.Events.PublishEvent(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Error("publish_event_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
