package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/apolenov/webstore/internal/models"
)

// InitDB opens the embedded sqlite store, or postgres when a DATABASE_URL
// is provided, and migrates the products table.
func InitDB(databaseURL, dbPath string) (*gorm.DB, error) {
	var dialector gorm.Dialector
	if databaseURL != "" {
		dialector = postgres.Open(databaseURL)
	} else {
		dialector = sqlite.Open(dbPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to db: %w", err)
	}
	if err := db.AutoMigrate(&models.Product{}); err != nil {
		return nil, fmt.Errorf("migrate products: %w", err)
	}
	return db, nil
}

type ProductStore struct {
	DB *gorm.DB
}

func seedCatalog() []models.Product {
	return []models.Product{
		{Name: "T-Shirt", Price: decimal.NewFromInt(20), Image: "https://source.unsplash.com/500x500/?tshirt"},
		{Name: "Running Shoes", Price: decimal.NewFromInt(75), Image: "https://source.unsplash.com/500x500/?running-shoes"},
		{Name: "Luxury Watch", Price: decimal.NewFromInt(199), Image: "https://source.unsplash.com/500x500/?luxury-watch"},
		{Name: "Leather Wallet", Price: decimal.NewFromInt(45), Image: "https://source.unsplash.com/500x500/?leather-wallet"},
		{Name: "Wireless Headphones", Price: decimal.NewFromInt(120), Image: "https://source.unsplash.com/500x500/?wireless-headphones"},
		{Name: "Smartphone", Price: decimal.NewFromInt(699), Image: "https://source.unsplash.com/500x500/?smartphone"},
		{Name: "Backpack", Price: decimal.NewFromInt(60), Image: "https://source.unsplash.com/500x500/?backpack"},
		{Name: "Sunglasses", Price: decimal.NewFromInt(35), Image: "https://source.unsplash.com/500x500/?sunglasses"},
		{Name: "Gaming Mouse", Price: decimal.NewFromInt(55), Image: "https://source.unsplash.com/500x500/?gaming-mouse"},
		{Name: "Bluetooth Speaker", Price: decimal.NewFromInt(85), Image: "https://source.unsplash.com/500x500/?bluetooth-speaker"},
	}
}

// SeedIfEmpty inserts the fixed catalog once. Calling it on every start is
// safe: it only writes when the table has zero rows.
func (s *ProductStore) SeedIfEmpty(ctx context.Context) error {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Count(&total).Error; err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if total > 0 {
		return nil
	}

	products := seedCatalog()
	if err := s.DB.WithContext(ctx).Create(&products).Error; err != nil {
		return fmt.Errorf("seed products: %w", err)
	}
	return nil
}

func (s *ProductStore) ListProducts(ctx context.Context) ([]models.Product, error) {
	var items []models.Product
	if err := s.DB.WithContext(ctx).Model(&models.Product{}).Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// GetProduct reports a missing row via the bool, never as an error, so that
// callers can skip cart entries pointing at products that no longer exist.
func (s *ProductStore) GetProduct(ctx context.Context, id int) (*models.Product, bool, error) {
	product := models.Product{}
	if err := s.DB.WithContext(ctx).Where("ID=?", id).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &product, true, nil
}
