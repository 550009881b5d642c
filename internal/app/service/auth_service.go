package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	"github.com/aiautoreview/aiautoreview-backend/pkg/logger"
	"github.com/aiautoreview/aiautoreview-backend/pkg/util"
	"gorm.io/gorm"
)

var (
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type AuthService interface {
	Register(businessName, name, email, password string) (*model.User, *model.Business, string, error)
	Login(email, password string) (*model.User, *model.Business, string, error)
	GetUserByID(id uint) (*model.User, error)
}

type authService struct {
	db           *gorm.DB
	userRepo     repository.UserRepository
	businessRepo repository.BusinessRepository
	jwtSecret    string
	tokenExpiry  time.Duration
}

func NewAuthService(
	db *gorm.DB,
	userRepo repository.UserRepository,
	businessRepo repository.BusinessRepository,
	jwtSecret string,
	tokenExpiry time.Duration,
) AuthService {
	return &authService{
		db:           db,
		userRepo:     userRepo,
		businessRepo: businessRepo,
		jwtSecret:    jwtSecret,
		tokenExpiry:  tokenExpiry,
	}
}

// Register creates a business and its admin user atomically. The business is
// never left behind if the user insert fails.
func (s *authService) Register(businessName, name, email, password string) (*model.User, *model.Business, string, error) {
	logger.Info("Attempting registration", map[string]interface{}{
		"email":         email,
		"business_name": businessName,
	})

	existingUser, err := s.userRepo.FindByEmail(email)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		logger.Error("Failed to check existing user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", err
	}
	if existingUser != nil {
		logger.Warn("Registration failed: email already exists", map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", ErrEmailAlreadyExists
	}

	hashedPassword, err := util.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash password", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", err
	}

	business := &model.Business{Name: businessName}
	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashedPassword,
		Role:         model.RoleAdmin,
	}

	tx := s.db.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			logger.Error("Panic during registration, rolling back", fmt.Errorf("panic: %v", r), map[string]interface{}{
				"email": email,
			})
		}
	}()

	if err := tx.Create(business).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create business", err, map[string]interface{}{
			"business_name": businessName,
		})
		return nil, nil, "", err
	}

	user.BusinessID = business.ID
	if err := tx.Create(user).Error; err != nil {
		tx.Rollback()
		logger.Error("Failed to create user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", err
	}

	if err := tx.Commit().Error; err != nil {
		logger.Error("Failed to commit registration", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", err
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, "", err
	}

	logger.Info("User registered successfully", map[string]interface{}{
		"user_id":     user.ID,
		"business_id": business.ID,
		"email":       email,
	})

	return user, business, token, nil
}

func (s *authService) Login(email, password string) (*model.User, *model.Business, string, error) {
	logger.Info("Login attempt", map[string]interface{}{
		"email": email,
	})

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Warn("Login failed: user not found", map[string]interface{}{
				"email": email,
			})
			return nil, nil, "", ErrInvalidCredentials
		}
		logger.Error("Failed to find user", err, map[string]interface{}{
			"email": email,
		})
		return nil, nil, "", err
	}

	if !util.VerifyPassword(user.PasswordHash, password) {
		logger.Warn("Login failed: invalid password", map[string]interface{}{
			"email":   email,
			"user_id": user.ID,
		})
		return nil, nil, "", ErrInvalidCredentials
	}

	business, err := s.businessRepo.FindByID(user.BusinessID)
	if err != nil {
		logger.Error("Failed to load business for user", err, map[string]interface{}{
			"user_id":     user.ID,
			"business_id": user.BusinessID,
		})
		return nil, nil, "", err
	}

	token, err := util.GenerateToken(user.ID, user.Email, string(user.Role), s.jwtSecret, s.tokenExpiry)
	if err != nil {
		logger.Error("Failed to generate token", err, map[string]interface{}{
			"user_id": user.ID,
		})
		return nil, nil, "", err
	}

	logger.Info("User logged in successfully", map[string]interface{}{
		"user_id":     user.ID,
		"business_id": business.ID,
	})

	return user, business, token, nil
}

func (s *authService) GetUserByID(id uint) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Error("Failed to fetch user", err, map[string]interface{}{
			"user_id": id,
		})
		return nil, err
	}
	return user, nil
}
