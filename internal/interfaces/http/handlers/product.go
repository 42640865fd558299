// internal/interfaces/http/handlers/product.go
package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/product"
)

// ProductService is the catalog behavior the product handler needs
type ProductService interface {
	GetProducts(ctx context.Context, req *product.ListRequest) ([]product.Product, error)
	GetProduct(ctx context.Context, id string) (*product.Product, error)
	GetCategories(ctx context.Context) ([]string, error)
	SeedDemoData(ctx context.Context) (*product.SeedResult, error)
}

// ProductHandler handles product endpoints
type ProductHandler struct {
	productService ProductService
	logger         *logrus.Logger
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService ProductService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{
		productService: productService,
		logger:         logger,
	}
}

// GetProducts handles GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	req := &product.ListRequest{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.DefaultQuery("sort", "createdAt"),
	}

	var err error
	if req.MinPrice, err = parsePrice(c.Query("minPrice")); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid minPrice")
		return
	}
	if req.MaxPrice, err = parsePrice(c.Query("maxPrice")); err != nil {
		respondError(c, http.StatusBadRequest, "Invalid maxPrice")
		return
	}

	products, err := h.productService.GetProducts(c.Request.Context(), req)
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve products", err)
		return
	}

	c.JSON(http.StatusOK, products)
}

// parsePrice returns nil for an absent bound
func parsePrice(raw string) (*decimal.Decimal, error) {
	if raw == "" {
		return nil, nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, err
	}
	return &price, nil
}

// GetProduct handles GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	p, err := h.productService.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, product.ErrProductNotFound) {
			respondError(c, http.StatusNotFound, "Product not found")
			return
		}
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve product", err)
		return
	}

	c.JSON(http.StatusOK, p)
}

// GetCategories handles GET /categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.productService.GetCategories(c.Request.Context())
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to retrieve categories", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// InitData handles POST /init-data
func (h *ProductHandler) InitData(c *gin.Context) {
	result, err := h.productService.SeedDemoData(c.Request.Context())
	if err != nil {
		respondInternal(c, h.logger, http.StatusInternalServerError, "Failed to initialize data", err)
		return
	}

	if !result.Created {
		c.JSON(http.StatusOK, gin.H{"message": "Data already initialized"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":        "Mock data initialized successfully",
		"products_count": result.Count,
	})
}
