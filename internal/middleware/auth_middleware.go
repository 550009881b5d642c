package middleware

import (
	"errors"
	"strings"

	"github.com/aiautoreview/aiautoreview-backend/internal/app/model"
	"github.com/aiautoreview/aiautoreview-backend/internal/app/repository"
	apperrors "github.com/aiautoreview/aiautoreview-backend/internal/errors"
	"github.com/aiautoreview/aiautoreview-backend/pkg/util"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys for the authenticated caller
const (
	UserIDKey     = "user_id"
	BusinessIDKey = "business_id"
	UserEmailKey  = "user_email"
	UserRoleKey   = "user_role"
)

type AuthMiddleware struct {
	jwtSecret string
	userRepo  repository.UserRepository
}

func NewAuthMiddleware(jwtSecret string, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtSecret: jwtSecret,
		userRepo:  userRepo,
	}
}

// Authenticate validates the bearer token and resolves its subject. The
// caller's business id is placed in the context so every downstream query
// can be tenant scoped. A token whose user no longer exists is rejected.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		log := GetLoggerFromContext(c)

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			log.Warn("Missing authorization header", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			log.Warn("Invalid authorization header format", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			apperrors.RespondWithError(c, 401, apperrors.AuthTokenInvalid, "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := util.ValidateToken(parts[1], m.jwtSecret)
		if err != nil {
			log.Warn("Token validation failed", map[string]interface{}{
				"path":  c.Request.URL.Path,
				"error": err.Error(),
			})

			if errors.Is(err, util.ErrExpiredToken) {
				apperrors.RespondWithError(c, 401, apperrors.AuthTokenExpired, "Token has expired")
			} else {
				apperrors.RespondWithError(c, 401, apperrors.AuthTokenInvalid, "Invalid authentication token")
			}
			c.Abort()
			return
		}

		user, err := m.userRepo.FindByID(claims.UserID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				log.Warn("Token subject no longer exists", map[string]interface{}{
					"user_id": claims.UserID,
				})
				apperrors.RespondWithError(c, 401, apperrors.AuthUserNotFound, "User not found")
			} else {
				log.Error("Failed to resolve token subject", err, map[string]interface{}{
					"user_id": claims.UserID,
				})
				apperrors.InternalError(c, "")
			}
			c.Abort()
			return
		}

		c.Set(UserIDKey, user.ID)
		c.Set(BusinessIDKey, user.BusinessID)
		c.Set(UserEmailKey, user.Email)
		c.Set(UserRoleKey, user.Role)

		log.Debug("User authenticated successfully", map[string]interface{}{
			"user_id":     user.ID,
			"business_id": user.BusinessID,
		})

		c.Next()
	}
}

// GetUserID extracts the caller's user id from context
func GetUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get(UserIDKey)
	if !exists {
		return 0, false
	}
	return userID.(uint), true
}

// GetBusinessID extracts the caller's business id from context
func GetBusinessID(c *gin.Context) (uint, bool) {
	businessID, exists := c.Get(BusinessIDKey)
	if !exists {
		return 0, false
	}
	return businessID.(uint), true
}

// GetUserRole extracts the caller's role from context
func GetUserRole(c *gin.Context) (model.UserRole, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	return role.(model.UserRole), true
}
