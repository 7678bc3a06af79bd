// internal/services/review_service.go
package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/reviews"
	"github.com/nexura/storefront/internal/utils"
)

const reviewDateLayout = "2 January 2006"

// ReviewService applies review mutations through the pure aggregator and
// writes the whole embedded list back in one update, together with the
// recomputed rating distribution.
type ReviewService struct {
	db *gorm.DB
}

type SubmitReviewRequest struct {
	Rating     float64 `json:"rating" validate:"required,min=1,max=5"`
	ReviewText string  `json:"reviewText" validate:"required,min=3"`
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

func (s *ReviewService) AddReview(productID, userID uuid.UUID, req *SubmitReviewRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, product, err := s.load(productID, userID)
	if err != nil {
		return nil, err
	}

	// Reviewer fields are a snapshot of the profile at submission time
	review := models.Review{
		ReviewerName:  user.Name,
		ReviewerPhoto: user.PhotoURL,
		ReviewerEmail: user.Email,
		Rating:        req.Rating,
		ReviewText:    req.ReviewText,
		Date:          time.Now().Format(reviewDateLayout),
		UserID:        user.ID.String(),
		Likes:         []string{},
	}

	updated, err := reviews.Submit(product.Reviews, review)
	if err != nil {
		return nil, err
	}

	return s.writeBack(product, updated)
}

func (s *ReviewService) EditReview(productID, userID uuid.UUID, index int, req *SubmitReviewRequest) (*models.Product, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, product, err := s.load(productID, userID)
	if err != nil {
		return nil, err
	}

	// The edit carries a fresh profile snapshot alongside the new content
	edit := models.Review{
		ReviewerName:  user.Name,
		ReviewerPhoto: user.PhotoURL,
		ReviewerEmail: user.Email,
		Rating:        req.Rating,
		ReviewText:    req.ReviewText,
		Date:          time.Now().Format(reviewDateLayout),
	}

	updated, err := reviews.Edit(product.Reviews, identity(user), index, edit)
	if err != nil {
		return nil, err
	}

	return s.writeBack(product, updated)
}

func (s *ReviewService) DeleteReview(productID, userID uuid.UUID, index int) (*models.Product, error) {
	user, product, err := s.load(productID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := reviews.Delete(product.Reviews, identity(user), index)
	if err != nil {
		return nil, err
	}

	return s.writeBack(product, updated)
}

func (s *ReviewService) ToggleLike(productID, userID uuid.UUID, index int) (*models.Product, error) {
	user, product, err := s.load(productID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := reviews.ToggleLike(product.Reviews, identity(user), index)
	if err != nil {
		return nil, err
	}

	// Likes do not shift the rating distribution; only the list changes
	if err := s.db.Model(product).Update("reviews", updated).Error; err != nil {
		return nil, fmt.Errorf("failed to save reviews: %w", err)
	}
	product.Reviews = updated
	return product, nil
}

// ListReviews returns the reviews with current profile data layered over
// the stored snapshots. The stored reviewer fields only show when the
// account no longer resolves.
func (s *ReviewService) ListReviews(productID uuid.UUID) (models.ReviewList, error) {
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(product.Reviews))
	for i := range product.Reviews {
		if id, err := uuid.Parse(product.Reviews[i].UserID); err == nil {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return product.Reviews, nil
	}

	var users []models.User
	if err := s.db.Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reviewers: %w", err)
	}

	byID := make(map[string]*models.User, len(users))
	for i := range users {
		byID[users[i].ID.String()] = &users[i]
	}

	decorated := make(models.ReviewList, len(product.Reviews))
	copy(decorated, product.Reviews)
	for i := range decorated {
		if user, ok := byID[decorated[i].UserID]; ok {
			decorated[i].ReviewerName = user.Name
			decorated[i].ReviewerPhoto = user.PhotoURL
		}
	}
	return decorated, nil
}

func (s *ReviewService) load(productID, userID uuid.UUID) (*models.User, *models.Product, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("user not found")
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errors.New("product not found")
		}
		return nil, nil, fmt.Errorf("database error: %w", err)
	}

	return &user, &product, nil
}

func (s *ReviewService) writeBack(product *models.Product, list models.ReviewList) (*models.Product, error) {
	updates := map[string]interface{}{
		"reviews": list,
		"rating":  reviews.Distribution(list),
	}
	if err := s.db.Model(product).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to save reviews: %w", err)
	}

	product.Reviews = list
	product.Rating = reviews.Distribution(list)
	return product, nil
}

func identity(user *models.User) reviews.Identity {
	return reviews.Identity{
		UserID: user.ID.String(),
		Email:  user.Email,
	}
}
