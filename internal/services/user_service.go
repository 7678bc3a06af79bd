// internal/services/user_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/nexura/storefront/internal/database"
	"github.com/nexura/storefront/internal/models"
	"github.com/nexura/storefront/internal/utils"
)

type UserService struct {
	db *gorm.DB
}

type UpdateProfileRequest struct {
	Name     string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	PhotoURL string `json:"photoUrl,omitempty"`
}

type AddAddressRequest struct {
	Name    string `json:"name" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	Zipcode string `json:"zipcode" validate:"required"`
	Mobile  string `json:"mobile" validate:"required"`
}

type AddCardRequest struct {
	Number string `json:"number" validate:"required,min=12,max=19"`
	Name   string `json:"name" validate:"required"`
	Expiry string `json:"expiry" validate:"required,card_expiry"`
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) GetProfile(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.PhotoURL != "" {
		updates["photo_url"] = req.PhotoURL
	}

	if len(updates) > 0 {
		if err := s.db.Model(user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	return user, nil
}

func (s *UserService) AddAddress(userID uuid.UUID, req *AddAddressRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	// Addresses are append-only; the whole list is written back as one unit
	user.Addresses = append(user.Addresses, models.Address{
		Name:    req.Name,
		City:    req.City,
		State:   req.State,
		Zipcode: req.Zipcode,
		Mobile:  req.Mobile,
	})

	if err := s.db.Model(user).Update("addresses", user.Addresses).Error; err != nil {
		return nil, fmt.Errorf("failed to save address: %w", err)
	}

	return user, nil
}

func (s *UserService) AddCard(userID uuid.UUID, req *AddCardRequest) (*models.User, error) {
	// Validate request
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	user.Cards = append(user.Cards, models.PaymentCard{
		Number: req.Number,
		Name:   req.Name,
		Expiry: req.Expiry,
	})

	if err := s.db.Model(user).Update("cards", user.Cards).Error; err != nil {
		return nil, fmt.Errorf("failed to save card: %w", err)
	}

	return user, nil
}

func (s *UserService) ListUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(email) LIKE ?", searchTerm, searchTerm)
	}

	// Get total count
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	// Apply sorting and pagination
	allowedSortFields := []string{"created_at", "name", "email", "last_login_at"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *UserService) SetBlocked(userID uuid.UUID, blocked bool) (*models.User, error) {
	user, err := s.GetProfile(userID)
	if err != nil {
		return nil, err
	}

	if user.Role == models.UserRoleAdmin {
		return nil, errors.New("cannot block an admin account")
	}

	if err := s.db.Model(user).Update("is_blocked", blocked).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	user.IsBlocked = blocked
	return user, nil
}

// DeleteUser permanently removes the account and everything it owns. The
// email tombstone is written in the same transaction so the removal and the
// re-signup block cannot diverge.
func (s *UserService) DeleteUser(userID uuid.UUID, reason string) error {
	user, err := s.GetProfile(userID)
	if err != nil {
		return err
	}

	if user.Role == models.UserRoleAdmin {
		return errors.New("cannot delete an admin account")
	}

	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		tombstone := models.DeletedUser{
			Email:     user.Email,
			DeletedAt: time.Now(),
			Reason:    reason,
		}
		if err := tx.Create(&tombstone).Error; err != nil {
			return fmt.Errorf("failed to create tombstone: %w", err)
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return fmt.Errorf("failed to delete cart items: %w", err)
		}

		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.Order{}).Error; err != nil {
			return fmt.Errorf("failed to delete orders: %w", err)
		}

		if err := tx.Unscoped().Delete(user).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		return nil
	})
}
