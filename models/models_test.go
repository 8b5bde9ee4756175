package models

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatal(err)
	}
	// Each connection to :memory: is its own database.
	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(AllModels()...); err != nil {
		t.Fatal(err)
	}
	return db
}

func seedUserAndProduct(t *testing.T, db *gorm.DB) (User, Product) {
	t.Helper()
	user := User{Name: "Seller", Email: uuid.NewString() + "@stu.upes.ac.in"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	prod := Product{UserID: user.ID, Name: "Desk Lamp", Price: decimal.RequireFromString("250.50"), ImageURL: "https://img/" + uuid.NewString()}
	if err := db.Create(&prod).Error; err != nil {
		t.Fatal(err)
	}
	return user, prod
}

// ==================== BeforeCreate Hook Tests ====================

func TestUserBeforeCreateGeneratesUUID(t *testing.T) {
	db := setupTestDB(t)
	user := User{Email: "test@test.com", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestUserBeforeCreatePreservesUUID(t *testing.T) {
	db := setupTestDB(t)
	existingID := uuid.New()
	user := User{ID: existingID, Email: "preserve@test.com", Name: "Test"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatal(err)
	}
	if user.ID != existingID {
		t.Error("UUID should have been preserved")
	}
}

func TestUserEmailUnique(t *testing.T) {
	db := setupTestDB(t)
	if err := db.Create(&User{Email: "dup@test.com", Name: "A"}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&User{Email: "dup@test.com", Name: "B"}).Error; err == nil {
		t.Error("expected unique constraint violation on email")
	}
}

func TestProductBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	_, prod := seedUserAndProduct(t, db)
	if prod.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestProductImageBeforeCreate(t *testing.T) {
	db := setupTestDB(t)
	_, prod := seedUserAndProduct(t, db)
	img := ProductImage{ProductID: prod.ID, ImageURL: "https://img/extra.jpg"}
	if err := db.Create(&img).Error; err != nil {
		t.Fatal(err)
	}
	if img.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
}

func TestCartItemUniquePerUserProduct(t *testing.T) {
	db := setupTestDB(t)
	user, prod := seedUserAndProduct(t, db)
	ci := CartItem{UserID: user.ID, ProductID: prod.ID, Quantity: 1}
	if err := db.Create(&ci).Error; err != nil {
		t.Fatal(err)
	}
	if ci.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
	dup := CartItem{UserID: user.ID, ProductID: prod.ID, Quantity: 2}
	if err := db.Create(&dup).Error; err == nil {
		t.Error("expected unique constraint violation on (user_id, product_id)")
	}
}

func TestWishlistItemUniquePerUserImage(t *testing.T) {
	db := setupTestDB(t)
	user, prod := seedUserAndProduct(t, db)
	if err := db.Create(&WishlistItem{UsersID: user.ID, ImageURL: prod.ImageURL}).Error; err != nil {
		t.Fatal(err)
	}
	if err := db.Create(&WishlistItem{UsersID: user.ID, ImageURL: prod.ImageURL}).Error; err == nil {
		t.Error("expected unique constraint violation on (users_id, image_url)")
	}
}

func TestOrderBeforeCreateDefaultsToPending(t *testing.T) {
	db := setupTestDB(t)
	user, _ := seedUserAndProduct(t, db)
	order := Order{UserID: user.ID, TotalAmount: decimal.NewFromInt(10)}
	if err := db.Create(&order).Error; err != nil {
		t.Fatal(err)
	}
	if order.ID == uuid.Nil {
		t.Error("UUID should have been generated")
	}
	if order.Status != OrderStatusPending {
		t.Errorf("expected status pending, got %s", order.Status)
	}
}

func TestOrderPreloadsAddressAndItems(t *testing.T) {
	db := setupTestDB(t)
	user, prod := seedUserAndProduct(t, db)
	order := Order{UserID: user.ID, TotalAmount: decimal.NewFromInt(501)}
	db.Create(&order)
	db.Create(&DeliveryAddress{OrderID: order.ID, UserID: user.ID, FullName: "A", Phone: "9999999999", Address: "Block B", City: "Dehradun", State: "UK", Pincode: "248007"})
	db.Create(&OrderItem{OrderID: order.ID, ProductID: prod.ID, Quantity: 2, Price: prod.Price})

	var loaded Order
	if err := db.Preload("Items.Product").Preload("DeliveryAddress").First(&loaded, "id = ?", order.ID).Error; err != nil {
		t.Fatal(err)
	}
	if loaded.DeliveryAddress == nil || loaded.DeliveryAddress.City != "Dehradun" {
		t.Errorf("expected delivery address to be loaded, got %+v", loaded.DeliveryAddress)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Product == nil {
		t.Fatalf("expected one item with product, got %+v", loaded.Items)
	}
	if !loaded.Items[0].Price.Equal(decimal.RequireFromString("250.50")) {
		t.Errorf("expected snapshot price 250.50, got %s", loaded.Items[0].Price)
	}
}

// ==================== Helper Tests ====================

func TestTotal(t *testing.T) {
	items := []OrderItem{
		{Quantity: 2, Price: decimal.RequireFromString("10.10")},
		{Quantity: 1, Price: decimal.RequireFromString("0.20")},
	}
	if got := Total(items); !got.Equal(decimal.RequireFromString("20.40")) {
		t.Errorf("expected 20.40, got %s", got)
	}
	if got := Total(nil); !got.IsZero() {
		t.Errorf("expected zero total, got %s", got)
	}
}

func TestPriceMarshalsAsNumber(t *testing.T) {
	p := Product{Name: "Book", Price: decimal.RequireFromString("99.5")}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"price":99.5`) {
		t.Errorf("expected numeric price, got %s", data)
	}
	if !strings.Contains(string(data), `"original_price":null`) {
		t.Errorf("expected null original_price, got %s", data)
	}
}
