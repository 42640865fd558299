package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/order"
	"github.com/your-org/storefront/internal/domain/product"
	gormlogger "gorm.io/gorm/logger"
)

func TestModels_DependencyOrder(t *testing.T) {
	models := Models()

	assert.Len(t, models, 4)
	assert.IsType(t, &product.Product{}, models[0])
	assert.IsType(t, &product.Review{}, models[1])
	assert.IsType(t, &order.Order{}, models[2])
	assert.IsType(t, &order.OrderItem{}, models[3])
}

func TestIndexes_AreIdempotent(t *testing.T) {
	for _, stmt := range Indexes() {
		assert.True(t, strings.HasPrefix(stmt, "CREATE INDEX IF NOT EXISTS "), stmt)
	}
}

func TestGormLogLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Environment = "development"
	cfg.Logging.Level = "debug"
	assert.Equal(t, gormlogger.Info, gormLogLevel(cfg))

	cfg.Logging.Level = "info"
	assert.Equal(t, gormlogger.Warn, gormLogLevel(cfg))

	cfg.App.Environment = "production"
	cfg.Logging.Level = "debug"
	assert.Equal(t, gormlogger.Warn, gormLogLevel(cfg))
}
