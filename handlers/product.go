package handlers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"unisale-backend/dtos"
	"unisale-backend/models"
	"unisale-backend/storage"
	"unisale-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductHandler struct {
	DB      *gorm.DB
	Storage storage.Client
}

// GetProducts lists products filtered by search, category and condition.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	var f dtos.ProductFilter
	if err := c.ShouldBindQuery(&f); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters"})
		return
	}

	query := h.DB.Model(&models.Product{})

	if search := strings.TrimSpace(f.Search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("(LOWER(name) LIKE ? OR LOWER(description) LIKE ?)", like, like)
	}
	if f.Category != "" && f.Category != models.CategoryAll {
		query = query.Where("category = ?", f.Category)
	}
	if f.Condition != "" {
		query = query.Where("state = ?", f.Condition)
	}

	switch f.Sort {
	case models.SortLowToHigh:
		query = query.Order("price ASC").Order("created_at DESC")
	case models.SortHighToLow:
		query = query.Order("price DESC").Order("created_at DESC")
	default:
		query = query.Order("created_at DESC")
	}

	products := []models.Product{}
	if err := query.Find(&products).Error; err != nil {
		log.Printf("Failed to fetch products: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetProduct returns a product with all of its images and its seller.
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var product models.Product
	err = h.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("created_at ASC") }).
		Preload("Seller").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.NewProductDetailResponse(product))
}

// productFromForm reads the listing fields shared by both upload endpoints.
func productFromForm(c *gin.Context, userID uuid.UUID) (models.Product, string) {
	product := models.Product{
		UserID:      userID,
		Name:        strings.TrimSpace(c.PostForm("name")),
		Description: strings.TrimSpace(c.PostForm("description")),
		Category:    strings.TrimSpace(c.PostForm("category")),
		State:       strings.TrimSpace(c.PostForm("state")),
	}
	if product.State == "" {
		product.State = "Not specified"
	}
	rawPrice := strings.TrimSpace(c.PostForm("price"))

	if product.Name == "" || product.Description == "" || product.Category == "" || rawPrice == "" {
		return product, "Missing required fields"
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil || price.IsNegative() {
		return product, "Invalid price"
	}
	product.Price = price

	if raw := strings.TrimSpace(c.PostForm("original_price")); raw != "" {
		original, err := decimal.NewFromString(raw)
		if err != nil || original.IsNegative() {
			return product, "Invalid original_price"
		}
		product.OriginalPrice = decimal.NewNullDecimal(original)
	}

	if raw := strings.TrimSpace(c.PostForm("months_used")); raw != "" {
		months, err := strconv.Atoi(raw)
		if err != nil || months < 0 {
			return product, "Invalid months_used"
		}
		product.MonthsUsed = &months
	}

	return product, ""
}

// createWithImages inserts the product and one product_images row per URL.
// The first URL becomes the main image. If the insert fails the uploaded
// objects are deleted.
func (h *ProductHandler) createWithImages(c *gin.Context, product *models.Product, urls []string) error {
	product.ImageURL = urls[0]

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return err
		}
		images := make([]models.ProductImage, 0, len(urls))
		for _, url := range urls {
			images = append(images, models.ProductImage{ProductID: product.ID, ImageURL: url})
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		storage.DeleteFiles(c.Request.Context(), h.Storage, urls)
	}
	return err
}

// UploadProduct creates a product from a form with a single image.
func (h *ProductHandler) UploadProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !matchesCaller(c, userID, c.PostForm("user_id")) {
		return
	}

	product, msg := productFromForm(c, userID)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
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

	imageURL, err := storage.UploadFile(c.Request.Context(), h.Storage, fileHeader, storage.FolderProductImage)
	if err != nil {
		log.Printf("Image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image: " + err.Error()})
		return
	}

	if err := h.createWithImages(c, &product, []string{imageURL}); err != nil {
		log.Printf("Failed to save product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Product uploaded successfully",
		"product_id": product.ID,
		"image_url":  imageURL,
	})
}

// UploadProductMultiple creates a product from a form with several images.
func (h *ProductHandler) UploadProductMultiple(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	if !matchesCaller(c, userID, c.PostForm("user_id")) {
		return
	}

	product, msg := productFromForm(c, userID)
	if msg != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse form"})
		return
	}
	files := imageFiles(form)
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No images found"})
		return
	}

	// Validate everything before the first upload.
	for _, fh := range files {
		if err := utils.ValidateFileUpload(fh); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	urls, err := storage.UploadFiles(c.Request.Context(), h.Storage, files, storage.FolderProductImage)
	if err != nil {
		log.Printf("Multi-image upload failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if err := h.createWithImages(c, &product, urls); err != nil {
		log.Printf("Failed to save product: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Product uploaded successfully",
		"product_id": product.ID,
		"image_urls": urls,
	})
}

// imageFiles accepts both "images[]" and "images" field names.
func imageFiles(form *multipart.Form) []*multipart.FileHeader {
	if files := form.File["images[]"]; len(files) > 0 {
		return files
	}
	return form.File["images"]
}

// UpdateProduct lets the owner edit a listing.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	var req dtos.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": utils.SanitizeValidationError(err)})
		return
	}
	if req.Price.IsNegative() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid price"})
		return
	}

	var product models.Product
	if err := h.DB.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if product.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own products"})
		return
	}

	if err := h.DB.Model(&product).Updates(map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"category":    req.Category,
		"state":       req.State,
		"price":       *req.Price,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully"})
}
