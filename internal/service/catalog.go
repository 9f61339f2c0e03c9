package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"gorm.io/gorm"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/logging"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/search"
	"github.com/Skotchmaster/storefront/internal/upload"
)

const (
	maxNameLen        = 50
	maxDescriptionLen = 80
)

type CatalogService struct {
	Repo    *repo.GormRepo
	Uploads *upload.Store
	Events  *events.Producer
	Index   *search.Index
}

type ItemInput struct {
	Name        string
	Description string
	Price       float64
	Quantity    int
}

func validateItem(in ItemInput) error {
	if in.Name == "" || len(in.Name) > maxNameLen {
		return fmt.Errorf("name must be 1-%d characters: %w", maxNameLen, ErrValidation)
	}
	if in.Description == "" || len(in.Description) > maxDescriptionLen {
		return fmt.Errorf("description must be 1-%d characters: %w", maxDescriptionLen, ErrValidation)
	}
	if in.Price < 0 {
		return fmt.Errorf("price cannot be negative: %w", ErrValidation)
	}
	if in.Quantity < 0 {
		return fmt.Errorf("quantity cannot be negative: %w", ErrValidation)
	}
	return nil
}

func (s *CatalogService) ListItems(ctx context.Context) ([]models.Item, error) {
	return s.Repo.ListItems(ctx)
}

func (s *CatalogService) GetItem(ctx context.Context, id uint) (*models.Item, error) {
	item, err := s.Repo.GetItem(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}
	return item, err
}

func (s *CatalogService) CreateItem(ctx context.Context, in ItemInput, image *multipart.FileHeader) (*models.Item, error) {
	if err := validateItem(in); err != nil {
		return nil, err
	}
	if image == nil {
		return nil, fmt.Errorf("image required: %w", ErrValidation)
	}

	imagePath, err := s.Uploads.SaveImage(image)
	if err != nil {
		if errors.Is(err, upload.ErrBadExtension) {
			return nil, fmt.Errorf("%v: %w", err, ErrValidation)
		}
		return nil, err
	}

	item := models.Item{
		Name:        in.Name,
		Description: in.Description,
		Image:       imagePath,
		Price:       in.Price,
		Quantity:    in.Quantity,
	}
	if err := s.Repo.CreateItem(ctx, &item); err != nil {
		return nil, err
	}

	s.afterChange(ctx, &item, "product_created")
	return &item, nil
}

func (s *CatalogService) UpdateItem(ctx context.Context, id uint, in ItemInput, image *multipart.FileHeader) (*models.Item, error) {
	item, err := s.GetItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validateItem(in); err != nil {
		return nil, err
	}

	item.Name = in.Name
	item.Description = in.Description
	item.Price = in.Price
	item.Quantity = in.Quantity

	// The stored image is replaced only when a new file was supplied.
	if image != nil {
		imagePath, err := s.Uploads.SaveImage(image)
		if err != nil {
			if errors.Is(err, upload.ErrBadExtension) {
				return nil, fmt.Errorf("%v: %w", err, ErrValidation)
			}
			return nil, err
		}
		item.Image = imagePath
	}

	if err := s.Repo.SaveItem(ctx, item); err != nil {
		return nil, err
	}

	s.afterChange(ctx, item, "product_updated")
	return item, nil
}

func (s *CatalogService) DeleteItem(ctx context.Context, id uint) error {
	l := logging.FromContext(ctx).With("svc", "catalog.delete")

	if err := s.Repo.DeleteItem(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("item %d: %w", id, ErrNotFound)
		}
		return err
	}

	if err := s.Index.DeleteItem(ctx, id); err != nil {
		l.Error("search deindex failed", "item_id", id, "error", err)
	}
	if err := s.Events.Publish(ctx, "product_events", fmt.Sprint(id), map[string]any{
		"type":    "product_deleted",
		"item_id": id,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}
	return nil
}

func (s *CatalogService) Search(ctx context.Context, query string, from, size int) (int64, []models.Item, error) {
	return s.Index.Search(ctx, query, from, size)
}

func (s *CatalogService) afterChange(ctx context.Context, item *models.Item, eventType string) {
	l := logging.FromContext(ctx).With("svc", "catalog")

	if err := s.Index.IndexItem(ctx, item); err != nil {
		l.Error("search index failed", "item_id", item.ID, "error", err)
	}
	if err := s.Events.Publish(ctx, "product_events", fmt.Sprint(item.ID), map[string]any{
		"type":    eventType,
		"item_id": item.ID,
		"name":    item.Name,
	}); err != nil {
		l.Error("event publish failed", "error", err)
	}
}
