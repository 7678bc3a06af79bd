// internal/models/common.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Base model with common fields
type BaseModel struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// JSONB type for PostgreSQL
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}

	return json.Unmarshal(bytes, j)
}

// Enums
type UserRole string

const (
	UserRoleCustomer UserRole = "customer"
	UserRoleAdmin    UserRole = "admin"
)

type ShippingMethod string

const (
	ShippingStandard ShippingMethod = "standard"
	ShippingExpress  ShippingMethod = "express"
)

type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCOD  PaymentMethod = "cod"
)

// Order lifecycle states. "success" is the terminal state the simulated UPI
// branch writes directly at placement time; the rest are admin-driven except
// "Cancellation Requested", which the owning user sets.
type OrderStatus string

const (
	OrderStatusProcessing    OrderStatus = "Processing"
	OrderStatusConfirmed     OrderStatus = "Confirmed"
	OrderStatusInTransit     OrderStatus = "In transit"
	OrderStatusDelivered     OrderStatus = "Delivered"
	OrderStatusCancelled     OrderStatus = "Cancelled"
	OrderStatusCancelRequest OrderStatus = "Cancellation Requested"
	OrderStatusPaid          OrderStatus = "success"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusProcessing, OrderStatusConfirmed, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusCancelRequest,
		OrderStatusPaid:
		return true
	}
	return false
}
