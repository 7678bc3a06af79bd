// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/catalog"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/pricing"
	"github.com/nexura/storefront/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=255"`
	Price        float64             `json:"price" validate:"required,min=0.01"`
	Discount     string              `json:"discount,omitempty"`
	Details      string              `json:"details,omitempty"`
	Categories   []string            `json:"categories,omitempty"`
	Colors       []string            `json:"colors,omitempty"`
	Sizes        []string            `json:"sizes,omitempty"`
	Features     []string            `json:"features,omitempty"`
	ImageURLs    map[string][]string `json:"imageUrls,omitempty"`
	DefaultImage string              `json:"defaultImage,omitempty"`
}

type UpdateProductRequest struct {
	Name         string              `json:"name,omitempty" validate:"omitempty,min=2,max=255"`
	Price        float64             `json:"price,omitempty" validate:"omitempty,min=0.01"`
	Discount     *string             `json:"discount,omitempty"`
	Details      string              `json:"details,omitempty"`
	Categories   []string            `json:"categories,omitempty"`
	Colors       []string            `json:"colors,omitempty"`
	Sizes        []string            `json:"sizes,omitempty"`
	Features     []string            `json:"features,omitempty"`
	ImageURLs    map[string][]string `json:"imageUrls,omitempty"`
	DefaultImage string              `json:"defaultImage,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product := &models.Product{
		Name:         req.Name,
		Price:        req.Price,
		Discount:     req.Discount,
		Details:      req.Details,
		Categories:   pqStringArray(req.Categories),
		Colors:       pqStringArray(req.Colors),
		Sizes:        pqStringArray(req.Sizes),
		Features:     pqStringArray(req.Features),
		ImageURLs:    models.ImageMap(req.ImageURLs),
		DefaultImage: req.DefaultImage,
		Rating:       models.RatingMap{},
		Reviews:      models.ReviewList{},
	}

	if err := s.db.Create(product).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

func (s *ProductService) GetProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListProducts loads the catalog and applies category, filter, and sort in
// memory. The catalog is small enough that the document-style filtering
// stays faithful without per-filter SQL.
func (s *ProductService) ListProducts(category string, state catalog.FilterState) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.Order("created_at DESC").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}

	return catalog.Apply(products, category, state), nil
}

func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Price > 0 {
		updates["price"] = req.Price
	}
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.Details != "" {
		updates["details"] = req.Details
	}
	if req.Categories != nil {
		updates["categories"] = pqStringArray(req.Categories)
	}
	if req.Colors != nil {
		updates["colors"] = pqStringArray(req.Colors)
	}
	if req.Sizes != nil {
		updates["sizes"] = pqStringArray(req.Sizes)
	}
	if req.Features != nil {
		updates["features"] = pqStringArray(req.Features)
	}
	if req.ImageURLs != nil {
		updates["image_urls"] = models.ImageMap(req.ImageURLs)
	}
	if req.DefaultImage != "" {
		updates["default_image"] = req.DefaultImage
	}

	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

func (s *ProductService) DeleteProduct(id uuid.UUID) error {
	product, err := s.GetProduct(id)
	if err != nil {
		return err
	}

	// Soft delete
	if err := s.db.Delete(product).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// SearchProducts is the admin-panel listing with SQL-side search and paging.
func (s *ProductService) SearchProducts(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(details) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "updated_at", "name", "price"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// PriceQuote returns the checkout totals for a single hypothetical line, for
// product pages that show the discounted price and tax up front.
func (s *ProductService) PriceQuote(id uuid.UUID, quantity int) (*pricing.LineTotals, error) {
	if quantity < 1 {
		return nil, errors.New("quantity must be at least 1")
	}

	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	totals := pricing.ComputeLine(pricing.Line{Product: product, Quantity: quantity})
	return &totals, nil
}

func pqStringArray(values []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}
