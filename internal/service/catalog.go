package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/Skotchmaster/shop_demo/internal/models"
	"github.com/Skotchmaster/shop_demo/internal/mykafka"
	"github.com/Skotchmaster/shop_demo/internal/transport"
)

type CatalogService struct {
	Repo   ProductRepository
	Events Publisher
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	prod, err := s.Repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return prod, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return s.Repo.ListProducts(ctx)
}

func (s *CatalogService) AddProduct(ctx context.Context, req transport.CreateProductRequest) (*models.Product, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" {
		return nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	if err := checkNameLength(*req.Name); err != nil {
		return nil, err
	}
	if req.Price == nil {
		return nil, fmt.Errorf("price is required: %w", ErrValidation)
	}

	prod := models.Product{
		Name:  *req.Name,
		Price: *req.Price,
	}
	if req.Description != nil {
		prod.Description = *req.Description
	}

	if err := s.Repo.CreateProduct(ctx, &prod); err != nil {
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, strconv.FormatUint(uint64(prod.ID), 10), map[string]any{
		"type":      "product_created",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return &prod, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, id uint, req transport.UpdateProductRequest) (*models.Product, error) {
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, fmt.Errorf("name cannot be empty: %w", ErrValidation)
		}
		if err := checkNameLength(*req.Name); err != nil {
			return nil, err
		}
	}

	prod, err := s.Repo.PatchProduct(ctx, id, req)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return nil, err
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, strconv.FormatUint(uint64(prod.ID), 10), map[string]any{
		"type":      "product_updated",
		"productID": prod.ID,
		"name":      prod.Name,
	})
	return prod, nil
}

// DeleteProduct also drops the product from every cart.
func (s *CatalogService) DeleteProduct(ctx context.Context, id uint) error {
	if err := s.Repo.DeleteProduct(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("product %d: %w", id, ErrNotFound)
		}
		return err
	}

	publish(ctx, s.Events, mykafka.TopicProductEvents, strconv.FormatUint(uint64(id), 10), map[string]any{
		"type":      "product_deleted",
		"productID": id,
	})
	return nil
}

func checkNameLength(name string) error {
	if utf8.RuneCountInString(name) > models.ProductNameMaxLen {
		return fmt.Errorf("name longer than %d characters: %w", models.ProductNameMaxLen, ErrValidation)
	}
	return nil
}
