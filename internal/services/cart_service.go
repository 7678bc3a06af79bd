// internal/services/cart_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/cart"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/utils"
)

// CartService keeps a per-user write-through cart.Store in front of the
// cart_items table. Mutations apply to the snapshot first and roll back if
// the row write fails.
type CartService struct {
	db     *gorm.DB
	mu     sync.Mutex
	stores map[uuid.UUID]*cart.Store
}

type CartLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type RemoveCartLineRequest struct {
	ProductID string `json:"productId" validate:"required,uuid4"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

func NewCartService(db *gorm.DB) *CartService {
	return &CartService{
		db:     db,
		stores: make(map[uuid.UUID]*cart.Store),
	}
}

func (s *CartService) GetCart(userID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Order("created_at ASC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cart: %w", err)
	}
	return items, nil
}

func (s *CartService) AddItem(ctx context.Context, userID uuid.UUID, req *CartLineRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return errors.New("invalid product id")
	}

	// The product must still exist; carts never hold dangling lines
	var product models.Product
	if err := s.db.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("product not found")
		}
		return fmt.Errorf("database error: %w", err)
	}

	store, err := s.storeFor(userID)
	if err != nil {
		return err
	}

	key := cart.Key{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	return store.Add(ctx, key, req.Quantity)
}

func (s *CartService) UpdateQuantity(ctx context.Context, userID uuid.UUID, req *CartLineRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	store, err := s.storeFor(userID)
	if err != nil {
		return err
	}

	key := cart.Key{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	return store.SetQuantity(ctx, key, req.Quantity)
}

func (s *CartService) RemoveItem(ctx context.Context, userID uuid.UUID, req *RemoveCartLineRequest) error {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	store, err := s.storeFor(userID)
	if err != nil {
		return err
	}

	key := cart.Key{ProductID: req.ProductID, Size: req.Size, Color: req.Color}
	return store.Remove(ctx, key)
}

// ClearCart removes every line inside the caller's transaction. The cached
// store is dropped so the next read rebuilds from the table.
func (s *CartService) ClearCart(tx *gorm.DB, userID uuid.UUID) error {
	if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}

	s.mu.Lock()
	delete(s.stores, userID)
	s.mu.Unlock()

	return nil
}

func (s *CartService) storeFor(userID uuid.UUID) (*cart.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if store, ok := s.stores[userID]; ok {
		return store, nil
	}

	items, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	store := cart.NewStore(&cartRemote{db: s.db, userID: userID})
	lines := make(map[cart.Key]int, len(items))
	for _, item := range items {
		key := cart.Key{ProductID: item.ProductID.String(), Size: item.Size, Color: item.Color}
		lines[key] = item.Quantity
	}
	store.Load(lines)

	s.stores[userID] = store
	return store, nil
}

// cartRemote persists one user's cart lines.
type cartRemote struct {
	db     *gorm.DB
	userID uuid.UUID
}

func (r *cartRemote) SaveLine(ctx context.Context, key cart.Key, quantity int) error {
	productID, err := uuid.Parse(key.ProductID)
	if err != nil {
		return errors.New("invalid product id")
	}

	var item models.CartItem
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			r.userID, productID, key.Size, key.Color).
		First(&item).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			UserID:    r.userID,
			ProductID: productID,
			Size:      key.Size,
			Color:     key.Color,
			Quantity:  quantity,
		}
		if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
			return fmt.Errorf("failed to create cart line: %w", err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("database error: %w", err)
	}

	if err := r.db.WithContext(ctx).Model(&item).Update("quantity", quantity).Error; err != nil {
		return fmt.Errorf("failed to update cart line: %w", err)
	}
	return nil
}

func (r *cartRemote) DeleteLine(ctx context.Context, key cart.Key) error {
	productID, err := uuid.Parse(key.ProductID)
	if err != nil {
		return errors.New("invalid product id")
	}

	if err := r.db.WithContext(ctx).Unscoped().
		Where("user_id = ? AND product_id = ? AND size = ? AND color = ?",
			r.userID, productID, key.Size, key.Color).
		Delete(&models.CartItem{}).Error; err != nil {
		return fmt.Errorf("failed to delete cart line: %w", err)
	}
	return nil
}
