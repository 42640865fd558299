// internal/domain/product/service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewService creates a new product service
func NewService(db *gorm.DB, logger *logrus.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// ListRequest holds the catalog query parameters
type ListRequest struct {
	Category string
	Search   string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Sort     string
}

// SeedResult describes the outcome of a demo-data seed
type SeedResult struct {
	Created bool
	Count   int
}

// GetProducts lists products matching req, always in descending order of
// the sort field
func (s *Service) GetProducts(ctx context.Context, req *ListRequest) ([]Product, error) {
	query := s.db.WithContext(ctx).Model(&Product{})

	if req.Category != "" {
		query = query.Where("category = ?", req.Category)
	}

	if req.Search != "" {
		query = query.Where("LOWER(name) LIKE ? ESCAPE '\\'", likePattern(req.Search))
	}

	if req.MinPrice != nil {
		query = query.Where("price >= ?", *req.MinPrice)
	}

	if req.MaxPrice != nil {
		query = query.Where("price <= ?", *req.MaxPrice)
	}

	products := []Product{}
	if err := query.Order(sortColumn(req.Sort) + " DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	return products, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(ctx context.Context, id string) (*Product, error) {
	var product Product
	result := s.db.WithContext(ctx).Where("id = ?", id).First(&product)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &product, nil
}

// GetCategories returns the distinct category names, sorted
func (s *Service) GetCategories(ctx context.Context) ([]string, error) {
	categories := []string{}
	err := s.db.WithContext(ctx).
		Model(&Product{}).
		Distinct("category").
		Order("category ASC").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve categories: %w", err)
	}

	return categories, nil
}

// SeedDemoData inserts the demo catalog unless products already exist
func (s *Service) SeedDemoData(ctx context.Context) (*SeedResult, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&Product{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	if count > 0 {
		s.logger.WithField("products", count).Info("Demo data already present, skipping seed")
		return &SeedResult{Created: false, Count: int(count)}, nil
	}

	products := DemoProducts(time.Now().UTC())
	if err := s.db.WithContext(ctx).CreateInBatches(products, 50).Error; err != nil {
		return nil, fmt.Errorf("failed to seed products: %w", err)
	}

	s.logger.WithField("products", len(products)).Info("🌱 Demo catalog seeded")
	return &SeedResult{Created: true, Count: len(products)}, nil
}

// sortColumn maps the public sort key to a column. Unknown keys sort by
// creation time.
func sortColumn(sort string) string {
	switch sort {
	case "price":
		return "price"
	case "rating":
		return "rating"
	default:
		return "created_at"
	}
}

// likePattern builds a case-insensitive substring pattern, escaping the
// LIKE wildcards in term
func likePattern(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(strings.ToLower(term)) + "%"
}
