package service

import (
	"strconv"

	"github.com/ministore-next/internal/models"
	"github.com/ministore-next/internal/repository"

	"golang.org/x/sync/singleflight"
)

// ProductService serves catalog reads for the storefront and the cart.
type ProductService struct {
	repo repository.ProductRepository
	sfg  singleflight.Group // collapses concurrent lookups for the same product
}

// NewProductService creates a product service.
func NewProductService(repo repository.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetActiveByID returns an active product by id. Missing or inactive
// products report ErrProductNotFound.
func (s *ProductService) GetActiveByID(id uint) (*models.Product, error) {
	if id == 0 {
		return nil, ErrInvalidProduct
	}
	v, err, _ := s.sfg.Do("id:"+strconv.FormatUint(uint64(id), 10), func() (interface{}, error) {
		product, err := s.repo.GetByID(id)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductNotFound
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// GetActiveBySlug returns an active product by slug for the product page.
func (s *ProductService) GetActiveBySlug(slug string) (*models.Product, error) {
	v, err, _ := s.sfg.Do("slug:"+slug, func() (interface{}, error) {
		product, err := s.repo.GetBySlug(slug)
		if err != nil {
			return nil, err
		}
		if product == nil || !product.IsActive {
			return nil, ErrProductNotFound
		}
		return product, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.Product), nil
}

// ListActive returns the storefront catalog.
func (s *ProductService) ListActive() ([]models.Product, error) {
	return s.repo.ListActive()
}
