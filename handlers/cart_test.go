package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"unisale-backend/models"
)

func TestAddToCartDefaultsQuantity(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Desk Lamp", "Electronics", "Used", "12.50")

	body := map[string]interface{}{"productId": prod.ID.String()}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/add", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := db.Where("product_id = ?", prod.ID).First(&item).Error; err != nil {
		t.Fatalf("expected cart row: %v", err)
	}
	if item.Quantity != 1 {
		t.Errorf("expected quantity 1, got %d", item.Quantity)
	}
}

func TestAddToCartAccumulatesQuantity(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Calculator", "Electronics", "Like New", "20.00")

	for _, qty := range []int{2, 3} {
		body := map[string]interface{}{"productId": prod.ID.String(), "quantity": qty}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("POST", "/api/cart", body, token))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
	}

	var items []models.CartItem
	db.Where("user_id = ?", buyer.ID).Find(&items)
	if len(items) != 1 {
		t.Fatalf("expected a single cart row, got %d", len(items))
	}
	if items[0].Quantity != 5 {
		t.Errorf("expected quantity 5, got %d", items[0].Quantity)
	}
}

func TestAddToCartRejectsZeroQuantity(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Chair", "Furniture", "Used", "15.00")

	body := map[string]interface{}{"productId": prod.ID.String(), "quantity": 0}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/add", body, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddToCartUnknownProduct(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedUser(db, "buyer@uni.edu")
	body := map[string]interface{}{"productId": "00000000-0000-0000-0000-000000000001"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/add", body, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestAddToCartForeignUserID(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Kettle", "Appliances", "Used", "9.00")

	body := map[string]interface{}{"userId": seller.ID.String(), "productId": prod.ID.String()}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/add", body, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetCartJoinsProductAndSeller(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Textbook", "Books", "Used", "30.00")
	seedCartItem(db, buyer.ID, prod.ID, 2)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/cart", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	result := parseResponseArray(w)
	if len(result) != 1 {
		t.Fatalf("expected 1 cart line, got %d", len(result))
	}
	line := result[0].(map[string]interface{})
	if line["name"] != "Textbook" {
		t.Errorf("expected product name Textbook, got %v", line["name"])
	}
	if line["seller_name"] != seller.Name {
		t.Errorf("expected seller name %q, got %v", seller.Name, line["seller_name"])
	}
	if q, _ := line["quantity"].(float64); int(q) != 2 {
		t.Errorf("expected quantity 2, got %v", line["quantity"])
	}
	if p, _ := line["price"].(float64); p != 30 {
		t.Errorf("expected price 30, got %v", line["price"])
	}
}

func TestGetCartEmpty(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	_, token := seedUser(db, "buyer@uni.edu")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/cart", nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "[]" {
		t.Errorf("expected empty JSON array, got %s", w.Body.String())
	}
}

func TestRemoveFromCart(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Mini Fridge", "Appliances", "Used", "80.00")
	seedCartItem(db, buyer.ID, prod.ID, 1)

	body := map[string]interface{}{"productId": prod.ID.String()}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/remove", body, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}

	var count int64
	db.Model(&models.CartItem{}).Where("user_id = ?", buyer.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected empty cart, got %d rows", count)
	}
}

func TestRemoveFromCartMissingItem(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Mini Fridge", "Appliances", "Used", "80.00")

	body := map[string]interface{}{"productId": prod.ID.String()}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/cart/remove", body, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["error"] != "Item not found in cart" {
		t.Errorf("unexpected error message: %v", resp["error"])
	}
}

func TestCartRequiresAuth(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, jsonRequest("GET", "/api/cart", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}
}

func TestCartUnregisteredUser(t *testing.T) {
	db := freshDB()
	router := setupCartRouter(db)

	token := tokenFor("uid-ghost", "ghost@uni.edu")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/cart", nil, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}
