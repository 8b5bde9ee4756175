package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"unisale-backend/dtos"
	"unisale-backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by the auth middlewares.
const (
	ContextUserID      = "user_id"
	ContextFirebaseUID = "firebase_uid"
	ContextUserEmail   = "user_email"
)

// TokenVerifier validates a bearer token with the identity provider.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*dtos.Identity, error)
}

func verifyBearer(c *gin.Context, verifier TokenVerifier) (*dtos.Identity, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		c.Abort()
		return nil, false
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
		c.Abort()
		return nil, false
	}

	identity, err := verifier.VerifyToken(c.Request.Context(), parts[1])
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return nil, false
	}

	c.Set(ContextFirebaseUID, identity.UID)
	c.Set(ContextUserEmail, identity.Email)
	return identity, true
}

// VerifyTokenMiddleware only checks the token. It guards routes that run
// before the caller has a user row, such as signup.
func VerifyTokenMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := verifyBearer(c, verifier); !ok {
			return
		}
		c.Next()
	}
}

// AuthMiddleware checks the token and resolves it to a registered user.
// A user found by email but not yet linked to the token's UID gets linked.
func AuthMiddleware(verifier TokenVerifier, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := verifyBearer(c, verifier)
		if !ok {
			return
		}

		user, err := resolveUser(db, identity)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusForbidden, gin.H{"error": "User not registered"})
			c.Abort()
			return
		}
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			c.Abort()
			return
		}

		c.Set(ContextUserID, user.ID)
		c.Next()
	}
}

func resolveUser(db *gorm.DB, identity *dtos.Identity) (*models.User, error) {
	var user models.User
	err := db.Where("firebase_uid = ?", identity.UID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) || identity.Email == "" {
		return nil, err
	}

	if err := db.Where("email = ? AND firebase_uid IS NULL", identity.Email).First(&user).Error; err != nil {
		return nil, err
	}

	uid := identity.UID
	if err := db.Model(&user).Update("firebase_uid", uid).Error; err != nil {
		return nil, err
	}
	user.FirebaseUID = &uid
	return &user, nil
}
