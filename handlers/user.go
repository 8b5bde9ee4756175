package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"unisale-backend/dtos"
	"unisale-backend/middleware"
	"unisale-backend/models"
	"unisale-backend/storage"
	"unisale-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserHandler struct {
	DB                 *gorm.DB
	Storage            storage.Client
	AllowedEmailDomain string
}

// Signup registers the holder of a verified token as a user.
func (h *UserHandler) Signup(c *gin.Context) {
	var req dtos.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	req.Name = strings.TrimSpace(req.Name)

	// The token's email is the only proof the caller owns req.Email.
	tokenEmail := c.GetString(middleware.ContextUserEmail)
	if tokenEmail == "" {
		c.JSON(http.StatusForbidden, gin.H{"error": "Authenticated account has no email address"})
		return
	}
	if !strings.EqualFold(tokenEmail, req.Email) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Email does not match authenticated user"})
		return
	}

	if err := utils.ValidateEmailDomain(req.Email, h.AllowedEmailDomain); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := h.DB.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Name:     req.Name,
		Email:    req.Email,
		Verified: true,
	}
	if uid := c.GetString(middleware.ContextFirebaseUID); uid != "" {
		user.FirebaseUID = &uid
	}

	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
			return
		}
		log.Printf("Failed to create user %s: %v", req.Email, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	utils.SendWelcomeEmail(user.Email, user.Name)

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "User registered successfully"})
}

func (h *UserHandler) loadUser(c *gin.Context, id uuid.UUID) (*models.User, bool) {
	var user models.User
	if err := h.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return nil, false
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	return &user, true
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	user, ok := h.loadUser(c, userID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dtos.NewProfileResponse(*user))
}

func (h *UserHandler) UpdateName(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dtos.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if !matchesCaller(c, userID, req.UserID) {
		return
	}

	name := strings.TrimSpace(req.Name)
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Name is required"})
		return
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", userID).Update("name", name).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Name updated successfully", "name": name})
}

func (h *UserHandler) UpdatePhoneNumber(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dtos.UpdatePhoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if !matchesCaller(c, userID, req.UserID) {
		return
	}

	if !utils.ValidatePhoneNumber(req.PhoneNumber) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number must be exactly 10 digits"})
		return
	}

	if err := h.DB.Model(&models.User{}).Where("id = ?", userID).Update("phone", req.PhoneNumber).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Phone number updated successfully"})
}

// UpdateProfilePicture stores a new picture and drops the previous one.
func (h *UserHandler) UpdateProfilePicture(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !matchesCaller(c, userID, c.PostForm("user_id")) {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No image file found"})
		return
	}
	if err := utils.ValidateFileUpload(fileHeader); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, ok := h.loadUser(c, userID)
	if !ok {
		return
	}
	previous := user.ProfilePicture

	ctx := c.Request.Context()
	imageURL, err := storage.UploadFile(ctx, h.Storage, fileHeader, storage.FolderProfilePicture)
	if err != nil {
		log.Printf("Profile picture upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image: " + err.Error()})
		return
	}

	if err := h.DB.Model(user).Update("profile_picture", imageURL).Error; err != nil {
		storage.DeleteFiles(ctx, h.Storage, []string{imageURL})
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if previous != "" && previous != models.DefaultProfilePicture {
		storage.DeleteFiles(ctx, h.Storage, []string{previous})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile picture updated successfully", "image_url": imageURL})
}

// GetUser is the public seller profile.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	user, ok := h.loadUser(c, id)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dtos.NewPublicUserResponse(*user))
}

func (h *UserHandler) GetUserID(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user_id":      userID,
		"firebase_uid": c.GetString(middleware.ContextFirebaseUID),
	})
}
