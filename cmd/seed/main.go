package main

import (
	"github.com/ministore-next/internal/config"
	"github.com/ministore-next/internal/logger"
	"github.com/ministore-next/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("failed to migrate database: %v", err)
	}

	products := []models.Product{
		{
			Slug:             "classic-ceramic-mug",
			Name:             "Classic Ceramic Mug",
			ShortDescription: "A 350ml ceramic mug with a matte finish, dishwasher safe.",
			ImagePath:        "assets/img/classic-ceramic-mug.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(249.00)),
			IsActive:         true,
			SortOrder:        10,
		},
		{
			Slug:             "canvas-tote-bag",
			Name:             "Canvas Tote Bag",
			ShortDescription: "Heavy-duty cotton canvas tote with reinforced handles.",
			ImagePath:        "assets/img/canvas-tote-bag.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(399.50)),
			IsActive:         true,
			SortOrder:        20,
		},
		{
			Slug:             "stainless-water-bottle",
			Name:             "Stainless Water Bottle",
			ShortDescription: "Double-walled 500ml bottle that keeps drinks cold for 24 hours.",
			ImagePath:        "assets/img/stainless-water-bottle.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(749.00)),
			IsActive:         true,
			SortOrder:        30,
		},
		{
			Slug:             "linen-notebook",
			Name:             "Linen Notebook",
			ShortDescription: "A5 dotted notebook with a linen cover and 160 pages.",
			ImagePath:        "assets/img/linen-notebook.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(189.75)),
			IsActive:         true,
			SortOrder:        40,
		},
		{
			Slug:             "desk-plant-kit",
			Name:             "Desk Plant Kit",
			ShortDescription: "Succulent starter kit with pot, soil, and care guide.",
			ImagePath:        "assets/img/desk-plant-kit.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(1250.00)),
			IsActive:         true,
			SortOrder:        50,
		},
		{
			Slug:             "retired-sample",
			Name:             "Retired Sample Product",
			ShortDescription: "Kept for order history, no longer sold.",
			ImagePath:        "assets/img/retired-sample.jpg",
			Price:            models.NewMoneyFromDecimal(decimal.NewFromFloat(99.00)),
			IsActive:         false,
			SortOrder:        900,
		},
	}

	for _, prod := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", prod.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("failed to create product %s: %v", prod.Slug, err)
			} else {
				stdLog.Printf("created product: %s", prod.Slug)
			}
			continue
		}
		existing.Name = prod.Name
		existing.ShortDescription = prod.ShortDescription
		existing.ImagePath = prod.ImagePath
		existing.Price = prod.Price
		existing.IsActive = prod.IsActive
		existing.SortOrder = prod.SortOrder
		if err := models.DB.Save(&existing).Error; err != nil {
			stdLog.Printf("failed to update product %s: %v", prod.Slug, err)
		} else {
			stdLog.Printf("updated product: %s", prod.Slug)
		}
	}

	if err := models.InitDefaultUser("", ""); err != nil {
		stdLog.Printf("failed to seed default user: %v", err)
	}

	stdLog.Println("seed complete")
}
