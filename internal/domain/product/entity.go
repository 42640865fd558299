// internal/domain/product/entity.go
package product

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
)

// Product represents a catalog product
type Product struct {
	ID          string          `gorm:"primaryKey;size:36" json:"id"`
	Name        string          `gorm:"not null;size:255" json:"name"`
	Description string          `gorm:"type:text" json:"description"`
	Price       decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	Category    string          `gorm:"not null;size:100;index" json:"category"`
	Image       string          `gorm:"size:500" json:"image"`
	Rating      float64         `gorm:"default:0" json:"rating"`
	ReviewCount int             `gorm:"default:0" json:"reviewCount"`
	Stock       int             `gorm:"default:100" json:"stock"`
	CreatedAt   time.Time       `gorm:"index" json:"createdAt"`
}

// Review represents a customer review of a product
type Review struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	ProductID string    `gorm:"not null;size:36;index" json:"productId"`
	UserID    string    `gorm:"not null;size:64;index" json:"userId"`
	UserName  string    `gorm:"size:255" json:"userName"`
	Rating    int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
}

// TableName overrides
func (Product) TableName() string { return "products" }
func (Review) TableName() string  { return "reviews" }

// BeforeCreate assigns a uuid when none is set
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeCreate assigns a uuid when none is set
func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
