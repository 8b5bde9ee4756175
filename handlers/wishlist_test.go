package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"unisale-backend/models"

	"github.com/google/uuid"
)

func TestToggleWishlistTwiceRestoresState(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Backpack", "Bags", "Used", "18.00")

	body := map[string]interface{}{"users_id": buyer.ID.String(), "image_url": prod.ImageURL}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/toggle-wishlist", body, token))
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if resp := parseResponse(w); resp["status"] != "added" {
		t.Errorf("expected status added, got %v", resp["status"])
	}

	var count int64
	db.Model(&models.WishlistItem{}).Where("users_id = ?", buyer.ID).Count(&count)
	if count != 1 {
		t.Fatalf("expected 1 wishlist row, got %d", count)
	}

	w = httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/toggle-wishlist", body, token))
	if resp := parseResponse(w); resp["status"] != "removed" {
		t.Errorf("expected status removed, got %v", resp["status"])
	}

	db.Model(&models.WishlistItem{}).Where("users_id = ?", buyer.ID).Count(&count)
	if count != 0 {
		t.Errorf("expected wishlist to be empty again, got %d", count)
	}
}

func TestToggleWishlistMissingImage(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	_, token := seedUser(db, "buyer@uni.edu")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/toggle-wishlist", map[string]interface{}{}, token))

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
}

func TestToggleWishlistForeignUser(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	other, _ := seedUser(db, "other@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")
	body := map[string]interface{}{"users_id": other.ID.String(), "image_url": "https://img/x.jpg"}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/toggle-wishlist", body, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestGetWishlistReturnsMatchingProducts(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	wanted := seedProduct(db, seller.ID, "Headphones", "Electronics", "Used", "40.00")
	seedProduct(db, seller.ID, "Stapler", "Stationery", "Used", "2.00")
	db.Create(&models.WishlistItem{UsersID: buyer.ID, ImageURL: wanted.ImageURL})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/get-wishlist?user_id="+buyer.ID.String(), nil, token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	names := productNames(w)
	if len(names) != 1 || names[0] != "Headphones" {
		t.Errorf("expected only Headphones, got %v", names)
	}
}

func TestGetWishlistForeignUser(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	other, _ := seedUser(db, "other@uni.edu")
	_, token := seedUser(db, "buyer@uni.edu")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/get-wishlist?user_id="+other.ID.String(), nil, token))

	if w.Code != http.StatusForbidden {
		t.Fatalf("expected status 403, got %d", w.Code)
	}
}

func TestCheckWishlist(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	seller, _ := seedUser(db, "seller@uni.edu")
	buyer, token := seedUser(db, "buyer@uni.edu")
	prod := seedProduct(db, seller.ID, "Bicycle", "Sports", "Used", "120.00")

	check := func() string {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, authRequest("POST", "/api/wishlist/check/"+prod.ID.String(), nil, token))
		if w.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
		}
		status, _ := parseResponse(w)["status"].(string)
		return status
	}

	if got := check(); got != "not_exists" {
		t.Errorf("expected not_exists, got %s", got)
	}
	db.Create(&models.WishlistItem{UsersID: buyer.ID, ImageURL: prod.ImageURL})
	if got := check(); got != "exists" {
		t.Errorf("expected exists, got %s", got)
	}
}

func TestCheckWishlistUnknownProduct(t *testing.T) {
	db := freshDB()
	router := setupWishlistRouter(db)

	_, token := seedUser(db, "buyer@uni.edu")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("POST", "/api/wishlist/check/"+uuid.NewString(), nil, token))

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}
