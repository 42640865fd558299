// internal/interfaces/http/handlers/review.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// ReviewService is the review behavior the review handler needs
type ReviewService interface {
	GetReviews(ctx context.Context, productID string) ([]product.Review, error)
	CreateReview(ctx context.Context, userID string, req *product.CreateReviewRequest) (*product.Review, error)
}

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService ReviewService
	logger        *logrus.Logger
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService ReviewService, logger *logrus.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		logger:        logger,
	}
}

// GetReviews handles GET /reviews/:productId
func (h *ReviewHandler) GetReviews(c *gin.Context) {
	reviews, err := h.reviewService.GetReviews(c.Request.Context(), c.Param("productId"))
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve reviews", err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

// CreateReview handles POST /reviews
func (h *ReviewHandler) CreateReview(c *gin.Context) {
	var req product.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusUnprocessableEntity, "Invalid review data")
		return
	}

	review, err := h.reviewService.CreateReview(c.Request.Context(), middleware.GetUserIDFromContext(c), &req)
	if err != nil {
		switch {
		case errors.Is(err, product.ErrInvalidRating):
			respondError(c, http.StatusUnprocessableEntity, "Rating must be between 1 and 5")
		case errors.Is(err, product.ErrProductNotFound):
			respondError(c, http.StatusNotFound, "Product not found")
		default:
			respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to create review", err)
		}
		return
	}

	c.JSON(http.StatusOK, review)
}
