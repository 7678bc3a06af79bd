// internal/models/order.go
package models

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/google/uuid"
)

type Order struct {
	BaseModel
	OrderID       string         `json:"orderId" gorm:"uniqueIndex;size:12;not null"`
	UserID        uuid.UUID      `json:"userId" gorm:"type:uuid;not null;index"`
	Items         OrderItemList  `json:"products" gorm:"type:jsonb"`
	Address       Address        `json:"address" gorm:"type:jsonb;serializer:json"`
	Shipping      ShippingMethod `json:"shipping" gorm:"type:varchar(20)"`
	PaymentMethod PaymentMethod  `json:"paymentMethod" gorm:"type:varchar(20)"`
	Card          *PaymentCard   `json:"card,omitempty" gorm:"type:jsonb;serializer:json"`
	UpiID         string         `json:"upiId,omitempty" gorm:"size:100"`
	TransactionID string         `json:"transactionId,omitempty" gorm:"size:64"`
	Subtotal      float64        `json:"subtotal" gorm:"type:decimal(10,2)"`
	Discount      float64        `json:"discount" gorm:"type:decimal(10,2)"`
	Tax           float64        `json:"tax" gorm:"type:decimal(10,2)"`
	Total         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	Status        OrderStatus    `json:"status" gorm:"type:varchar(30);default:'Processing';index"`
	CancelReason  string         `json:"cancelReason,omitempty" gorm:"type:text"`

	User User `json:"-" gorm:"foreignKey:UserID"`
}

// OrderItem snapshots the cart line and the product it resolved to at
// placement time, so later catalog edits never rewrite order history.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Quantity  int     `json:"quantity"`
	Product   Product `json:"product"`
}

type OrderItemList []OrderItem

func (l OrderItemList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]OrderItem{})
	}
	return json.Marshal(l)
}

func (l *OrderItemList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, l)
}
