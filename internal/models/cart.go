// internal/models/cart.go
package models

import (
	"github.com/google/uuid"
)

// CartItem is one cart line. (ProductID, Size, Color) identifies a unique
// line per user; repeat adds for the same variant merge quantities.
type CartItem struct {
	BaseModel
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:1"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;uniqueIndex:idx_cart_line,priority:2"`
	Size      string    `json:"size" gorm:"size:20;uniqueIndex:idx_cart_line,priority:3"`
	Color     string    `json:"color" gorm:"size:50;uniqueIndex:idx_cart_line,priority:4"`
	Quantity  int       `json:"quantity" gorm:"not null;default:1"`

	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}
