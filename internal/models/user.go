// internal/models/user.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type User struct {
	BaseModel
	Name         string      `json:"name" gorm:"size:100;not null"`
	Email        string      `json:"email" gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string      `json:"-" gorm:"size:255;not null"`
	PhotoURL     string      `json:"photoUrl" gorm:"size:1024"`
	Role         UserRole    `json:"role" gorm:"type:varchar(20);default:'customer'"`
	IsBlocked    bool        `json:"isBlocked" gorm:"default:false"`
	Addresses    AddressList `json:"addresses" gorm:"type:jsonb"`
	Cards        CardList    `json:"cards" gorm:"type:jsonb"`
	LastLoginAt  *time.Time  `json:"last_login_at"`
}

// Address is a shipping address saved on the user record (append-only list).
type Address struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
	Mobile  string `json:"mobile" validate:"required"`
}

// PaymentCard is a saved card (append-only list, no encryption boundary).
type PaymentCard struct {
	Number string `json:"number" validate:"required"`
	Name   string `json:"name" validate:"required"`
	Expiry string `json:"expiry" validate:"required"`
}

// DeletedUser is an email-keyed tombstone preventing re-signup after a
// permanent admin delete.
type DeletedUser struct {
	Email     string    `json:"email" gorm:"primaryKey;size:255"`
	DeletedAt time.Time `json:"deletedAt"`
	Reason    string    `json:"reason" gorm:"size:255"`
}

func (DeletedUser) TableName() string { return "deleted_users" }

func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashedPassword)
	return nil
}

func (u *User) CheckPassword(password string) error {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
}

type AddressList []Address

func (l AddressList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]Address{})
	}
	return json.Marshal(l)
}

func (l *AddressList) Scan(value interface{}) error {
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

type CardList []PaymentCard

func (l CardList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]PaymentCard{})
	}
	return json.Marshal(l)
}

func (l *CardList) Scan(value interface{}) error {
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
