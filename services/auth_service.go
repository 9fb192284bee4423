package services

import (
	"context"
	"crypto/subtle"
	"errors"
	"time"

	"github.com/yeremiapane/restaurant-ordering/models"
	"github.com/yeremiapane/restaurant-ordering/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CustomerAuthInput struct {
	Name        string `json:"name" validate:"required"`
	Password    string `json:"password" validate:"required"`
	TableNumber *int   `json:"tableNumber" validate:"required,gt=0"`
}

type AuthResult struct {
	Customer *models.Customer `json:"customer"`
	Token    string           `json:"token"`
	Created  bool             `json:"created"`
}

type StaffLoginInput struct {
	StaffKey string `json:"staffKey" validate:"required"`
}

type StaffLoginResult struct {
	Token     string    `json:"token"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// AuthService handles customer register-or-login, staff login and token
// revocation.
type AuthService struct {
	db       *gorm.DB
	tokens   utils.TokenStore
	staffKey string
}

// NewAuthService builds the service. An empty staffKey disables staff login.
func NewAuthService(db *gorm.DB, tokens utils.TokenStore, staffKey string) *AuthService {
	return &AuthService{db: db, tokens: tokens, staffKey: staffKey}
}

// Authenticate registers an unknown name or logs in a known one. A
// successful login moves the customer to the given table.
func (s *AuthService) Authenticate(ctx context.Context, in CustomerAuthInput) (*AuthResult, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var customer models.Customer
	created := false
	err := db.Where("name = ?", in.Name).First(&customer).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		hashed, err := hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		customer = models.Customer{Name: in.Name, Password: hashed, TableNumber: *in.TableNumber}
		if err := db.Create(&customer).Error; err != nil {
			return nil, dbError(err, "customer")
		}
		created = true
		utils.InfoLogger.Printf("Customer registered: %s (table %d)", customer.Name, customer.TableNumber)
	case err != nil:
		return nil, dbError(err, "customer")
	default:
		if err := bcrypt.CompareHashAndPassword([]byte(customer.Password), []byte(in.Password)); err != nil {
			return nil, utils.NewAuthError("invalid credentials")
		}
		if customer.TableNumber != *in.TableNumber {
			if err := db.Model(&customer).Update("table_number", *in.TableNumber).Error; err != nil {
				return nil, dbError(err, "customer")
			}
			customer.TableNumber = *in.TableNumber
		}
	}

	token, err := utils.GenerateToken(customer.ID, utils.RoleCustomer, customer.Name)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}
	return &AuthResult{Customer: &customer, Token: token, Created: created}, nil
}

func (s *AuthService) Customer(ctx context.Context, id uint) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, dbError(err, "customer")
	}
	return &customer, nil
}

// StaffLogin exchanges the shared staff key for a staff bearer token.
func (s *AuthService) StaffLogin(in StaffLoginInput) (*StaffLoginResult, error) {
	if s.staffKey == "" {
		return nil, utils.NewForbiddenError("staff login is disabled")
	}
	if err := utils.ValidateStruct(in); err != nil {
		return nil, err
	}
	if subtle.ConstantTimeCompare([]byte(in.StaffKey), []byte(s.staffKey)) != 1 {
		return nil, utils.NewAuthError("invalid staff key")
	}

	token, err := utils.GenerateToken(0, utils.RoleStaff, utils.RoleStaff)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}
	claims, err := utils.ParseToken(token)
	if err != nil {
		return nil, utils.NewInternalError("failed to issue token", err)
	}

	utils.InfoLogger.Println("Staff token issued")
	return &StaffLoginResult{Token: token, Role: utils.RoleStaff, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Logout revokes the token until its own expiry.
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.tokens.Revoke(ctx, token, ttl); err != nil {
		return utils.NewInternalError("failed to revoke token", err)
	}
	return nil
}
