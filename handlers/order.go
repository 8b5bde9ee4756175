package handlers

import (
	"errors"
	"log"
	"net/http"

	"unisale-backend/dtos"
	"unisale-backend/middleware"
	"unisale-backend/models"
	"unisale-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrEmptyCart = errors.New("cart is empty")

type OrderHandler struct {
	DB *gorm.DB
}

// placeOrder turns the user's cart into an order in one transaction. The user
// row is locked first so two concurrent checkouts for the same user serialize
// and the second one sees an empty cart.
func placeOrder(db *gorm.DB, userID uuid.UUID, req dtos.CheckoutRequest) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").First(&user, "id = ?", userID).Error; err != nil {
			return err
		}

		var cart []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&cart).Error; err != nil {
			return err
		}
		if len(cart) == 0 {
			return ErrEmptyCart
		}

		items := make([]models.OrderItem, 0, len(cart))
		for _, ci := range cart {
			items = append(items, models.OrderItem{
				ProductID: ci.ProductID,
				Quantity:  ci.Quantity,
				Price:     ci.Product.Price,
			})
		}

		order = models.Order{
			UserID:      userID,
			TotalAmount: models.Total(items),
			Status:      models.OrderStatusPending,
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		address := models.DeliveryAddress{
			OrderID:    order.ID,
			UserID:     userID,
			FullName:   req.FullName,
			Phone:      req.Phone,
			Address:    req.Address,
			City:       req.City,
			State:      req.State,
			Pincode:    req.Pincode,
			HostelRoom: req.HostelRoom,
		}
		if err := tx.Create(&address).Error; err != nil {
			return err
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := tx.Omit(clause.Associations).CreateInBatches(&items, 100).Error; err != nil {
			return err
		}

		if err := tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			return err
		}

		order.Items = items
		order.DeliveryAddress = &address
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// Checkout places an order from the caller's cart.
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dtos.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}
	if !matchesCaller(c, userID, req.UserID) {
		return
	}

	order, err := placeOrder(h.DB, userID, req)
	if errors.Is(err, ErrEmptyCart) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Cart is empty"})
		return
	}
	if err != nil {
		log.Printf("Checkout failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	email, _ := c.Get(middleware.ContextUserEmail)
	if to, ok := email.(string); ok && to != "" {
		utils.SendOrderConfirmation(to, req.FullName, order.ID.String(), order.TotalAmount)
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"orderId": order.ID,
	})
}

// GetOrders lists the caller's orders, newest first.
func (h *OrderHandler) GetOrders(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var orders []models.Order
	if err := h.DB.
		Preload("Items").
		Preload("Items.Product").
		Preload("DeliveryAddress").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.NewOrderResponses(orders))
}

// GetOrder returns a single order owned by the caller.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	var order models.Order
	err = h.DB.
		Preload("Items").
		Preload("Items.Product").
		Preload("DeliveryAddress").
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, dtos.NewOrderResponse(order))
}
