package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is a catalog entry.
type Product struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	Slug             string         `gorm:"uniqueIndex;not null" json:"slug"`
	Name             string         `gorm:"not null" json:"name"`
	ShortDescription string         `gorm:"type:text" json:"short_description"`
	ImagePath        string         `json:"image_path"`
	Price            Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`
	IsActive         bool           `gorm:"default:true;index" json:"is_active"`
	SortOrder        int            `gorm:"default:0;index" json:"sort_order"`
	CreatedAt        time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// Snapshot returns the point-in-time data copied into a cart line.
func (p *Product) Snapshot() ProductSnapshot {
	return ProductSnapshot{
		ProductID:        p.ID,
		Name:             p.Name,
		ImagePath:        p.ImagePath,
		Slug:             p.Slug,
		ShortDescription: p.ShortDescription,
		UnitPrice:        p.Price,
	}
}
