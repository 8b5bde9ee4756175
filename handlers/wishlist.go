package handlers

import (
	"errors"
	"net/http"

	"unisale-backend/dtos"
	"unisale-backend/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type WishlistHandler struct {
	DB *gorm.DB
}

// ToggleWishlist adds the image to the caller's wishlist, or removes it when
// it is already there.
func (h *WishlistHandler) ToggleWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dtos.WishlistToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !matchesCaller(c, userID, req.UsersID) {
		return
	}

	status := "added"
	err := h.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.WishlistItem
		err := tx.Where("users_id = ? AND image_url = ?", userID, req.ImageURL).First(&existing).Error
		if err == nil {
			status = "removed"
			return tx.Delete(&existing).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		return tx.Create(&models.WishlistItem{UsersID: userID, ImageURL: req.ImageURL}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	msg := "Added to wishlist"
	if status == "removed" {
		msg = "Removed from wishlist"
	}
	c.JSON(http.StatusOK, gin.H{"message": msg, "status": status})
}

// GetWishlist returns the products whose main image is on the caller's wishlist.
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !matchesCaller(c, userID, c.Query("user_id")) {
		return
	}

	images := h.DB.Model(&models.WishlistItem{}).Select("image_url").Where("users_id = ?", userID)

	products := []models.Product{}
	if err := h.DB.Where("image_url IN (?)", images).Order("created_at DESC").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// CheckWishlist reports whether the product is on the caller's wishlist.
func (h *WishlistHandler) CheckWishlist(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var product models.Product
	if err := h.DB.Select("id", "image_url").First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	var count int64
	if err := h.DB.Model(&models.WishlistItem{}).
		Where("users_id = ? AND image_url = ?", userID, product.ImageURL).
		Count(&count).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := "not_exists"
	if count > 0 {
		status = "exists"
	}
	c.JSON(http.StatusOK, gin.H{"status": status})
}
