// internal/domain/product/review_service.go
package product

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// GuestUserName is shown on reviews written by guests
const GuestUserName = "Guest User"

// CreateReviewRequest is the body of a new review
type CreateReviewRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Rating    int    `json:"rating" binding:"required"`
	Comment   string `json:"comment"`
}

// ReviewService handles review business logic
type ReviewService struct {
	db     *gorm.DB
	logger *logrus.Logger
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, logger *logrus.Logger) *ReviewService {
	return &ReviewService{
		db:     db,
		logger: logger,
	}
}

// GetReviews returns the reviews of a product, newest first
func (s *ReviewService) GetReviews(ctx context.Context, productID string) ([]Review, error) {
	reviews := []Review{}
	err := s.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("created_at DESC").
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}

	return reviews, nil
}

// CreateReview stores a review and refreshes the product's rating and
// review count in the same transaction
func (s *ReviewService) CreateReview(ctx context.Context, userID string, req *CreateReviewRequest) (*Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRating
	}

	review := Review{
		ProductID: req.ProductID,
		UserID:    userID,
		UserName:  GuestUserName,
		Rating:    req.Rating,
		Comment:   strings.TrimSpace(req.Comment),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.Where("id = ?", req.ProductID).First(&product).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Create(&review).Error; err != nil {
			return fmt.Errorf("failed to create review: %w", err)
		}

		var ratings []int
		if err := tx.Model(&Review{}).Where("product_id = ?", req.ProductID).Pluck("rating", &ratings).Error; err != nil {
			return fmt.Errorf("failed to load ratings: %w", err)
		}

		return tx.Model(&product).Updates(map[string]interface{}{
			"rating":       AverageRating(ratings),
			"review_count": len(ratings),
		}).Error
	})
	if err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"product_id": review.ProductID,
		"rating":     review.Rating,
	}).Info("Review created")

	return &review, nil
}

// AverageRating returns the mean rating rounded to one decimal place, or 0
// when there are no ratings
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}
	return math.Round(float64(sum)/float64(len(ratings))*10) / 10
}
