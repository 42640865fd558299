// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	"gorm.io/gorm"
)

// Migration handles database migrations
type Migration struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewMigration creates a new migration instance
func NewMigration(db *gorm.DB, logger *logrus.Logger) *Migration {
	return &Migration{
		db:     db,
		logger: logger,
	}
}

// Models lists every persisted model in dependency order. Carts live in
// Redis and are not migrated.
func Models() []any {
	return []any{
		&product.Product{},
		&product.Review{},
		&order.Order{},
		&order.OrderItem{},
	}
}

// Indexes returns the composite indexes AutoMigrate cannot express
func Indexes() []string {
	return []string{
		"CREATE INDEX IF NOT EXISTS idx_products_category_rating ON products(category, rating DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_price ON products(price)",
		"CREATE INDEX IF NOT EXISTS idx_products_created_at ON products(created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_products_name_lower ON products(LOWER(name))",

		"CREATE INDEX IF NOT EXISTS idx_reviews_product_created ON reviews(product_id, created_at DESC)",

		"CREATE INDEX IF NOT EXISTS idx_orders_user_created ON orders(user_id, created_at DESC)",
		"CREATE INDEX IF NOT EXISTS idx_order_items_order ON order_items(order_id, id)",
	}
}

// RunAutoMigrations runs GORM auto-migrations for all models
func (m *Migration) RunAutoMigrations(ctx context.Context) error {
	m.logger.Info("🔄 Running database auto-migrations...")

	for _, model := range Models() {
		m.logger.Debugf("Migrating model: %T", model)
		if err := m.db.WithContext(ctx).AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	m.logger.Info("✅ Database auto-migrations completed successfully")
	return nil
}

// CreateIndexes creates additional indexes. Individual failures are
// logged and counted but do not abort startup.
func (m *Migration) CreateIndexes(ctx context.Context) error {
	m.logger.Info("🔄 Creating additional database indexes...")

	successCount := 0
	failCount := 0
	for _, indexSQL := range Indexes() {
		if err := m.db.WithContext(ctx).Exec(indexSQL).Error; err != nil {
			m.logger.WithError(err).Warnf("⚠️ Failed to create index: %s", indexSQL)
			failCount++
			continue
		}
		successCount++
	}

	m.logger.Infof("✅ Created %d indexes successfully (%d failed)", successCount, failCount)
	return nil
}

// Run migrates the schema then creates the indexes
func (m *Migration) Run(ctx context.Context) error {
	if err := m.RunAutoMigrations(ctx); err != nil {
		return err
	}
	return m.CreateIndexes(ctx)
}
