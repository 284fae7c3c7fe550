package repository

import (
	"errors"

	"github.com/ministore-next/internal/models"

	"gorm.io/gorm"
)

// ProductRepository is the catalog data access interface.
type ProductRepository interface {
	GetByID(id uint) (*models.Product, error)
	GetBySlug(slug string) (*models.Product, error)
	ListActive() ([]models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
}

// GormProductRepository is the GORM implementation.
type GormProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a product repository.
func NewProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// GetByID returns a product by id, nil when missing.
func (r *GormProductRepository) GetByID(id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetBySlug returns a product by slug, nil when missing.
func (r *GormProductRepository) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Where("slug = ?", slug).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// ListActive returns the storefront catalog in display order.
func (r *GormProductRepository) ListActive() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Where("is_active = ?", true).
		Order("sort_order asc, id asc").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// Create inserts a product.
func (r *GormProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update saves a product.
func (r *GormProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}
