package public

import (
	"net/http"
	"testing"
)

func TestAddCartItemCreatesDocument(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	r := newEngine(h)

	w := doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"9","user":"5"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true || body["message"] != "Item added to cart" {
		t.Fatalf("unexpected envelope: %v", body)
	}
	data, _ := body["data"].(map[string]interface{})
	if data["userId"] != "5" || data["status"] != "active" {
		t.Fatalf("unexpected cart document: %v", data)
	}
	items, _ := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("expected one item, got %v", items)
	}
	item := items[0].(map[string]interface{})
	if item["productId"] != "9" || item["quantity"] != float64(1) {
		t.Fatalf("unexpected item: %v", item)
	}
}

func TestAddCartItemAcceptsNumericIDsAndAccumulates(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	r := newEngine(h)

	if w := doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":9,"user":5,"quantity":"2"}`); w.Code != http.StatusCreated {
		t.Fatalf("first add failed: %d %s", w.Code, w.Body.String())
	}
	w := doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"9","user":"5","quantity":3}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("second add failed: %d %s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 || items[0].(map[string]interface{})["quantity"] != float64(5) {
		t.Fatalf("expected accumulated quantity 5, got %v", items)
	}
}

func TestAddCartItemValidation(t *testing.T) {
	h, db := newTestHandler(t, nil)
	r := newEngine(h)

	w := doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"9"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status want 400 got %d", w.Code)
	}
	if w.Body.String() != `{"success":false,"message":"ProductId and user are required"}` {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"9","user":"5","quantity":0}`)
	if w.Code != http.StatusBadRequest || decodeBody(t, w)["message"] != "Quantity must be a positive integer" {
		t.Fatalf("unexpected quantity response: %d %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/cart/add", `not json`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("malformed body should be 400, got %d", w.Code)
	}

	var count int64
	if err := db.Table("carts").Count(&count).Error; err != nil {
		t.Fatalf("count carts failed: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected no documents after rejected adds, got %d", count)
	}
}

func TestListCartsAndDelete(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	r := newEngine(h)

	w := doJSON(t, r, http.MethodGet, "/carts", "")
	if w.Code != http.StatusOK || w.Body.String() != `{"success":true,"count":0,"data":[]}` {
		t.Fatalf("unexpected empty list: %d %s", w.Code, w.Body.String())
	}

	add := doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"1","user":"2"}`)
	id := decodeBody(t, add)["data"].(map[string]interface{})["_id"].(string)

	list := decodeBody(t, doJSON(t, r, http.MethodGet, "/carts", ""))
	if list["count"] != float64(1) {
		t.Fatalf("expected count 1, got %v", list["count"])
	}

	w = doJSON(t, r, http.MethodDelete, "/cart/"+id, "")
	if w.Code != http.StatusOK || w.Body.String() != `{"message":"Cart item deleted successfully"}` {
		t.Fatalf("unexpected delete response: %d %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodDelete, "/cart/"+id, "")
	if w.Code != http.StatusNotFound || w.Body.String() != `{"message":"Cart item not found"}` {
		t.Fatalf("unexpected second delete response: %d %s", w.Code, w.Body.String())
	}
}

func TestViewCartPricesItems(t *testing.T) {
	h, db := newTestHandler(t, nil)
	seedProducts(t, db)
	r := newEngine(h)

	doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"101","user":"2","quantity":2}`)
	doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"404","user":"2"}`)

	w := doJSON(t, r, http.MethodGet, "/carts/2/view", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status want 200 got %d body=%s", w.Code, w.Body.String())
	}
	data := decodeBody(t, w)["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %v", items)
	}
	missing := items[1].(map[string]interface{})
	if missing["productId"] != "404" || missing["missing"] != true {
		t.Fatalf("expected placeholder for unknown product, got %v", missing)
	}
	summary := data["summary"].(map[string]interface{})
	if summary["subtotal"] != "2000.00" || summary["discount"] != "200.00" || summary["total"] != "1804.00" {
		t.Fatalf("unexpected summary: %v", summary)
	}
}

func TestViewCartCatalogFailureIsBadGateway(t *testing.T) {
	h, _ := newTestHandler(t, failingCatalog{})
	r := newEngine(h)
	doJSON(t, r, http.MethodPost, "/cart/add", `{"productId":"101","user":"2"}`)

	w := doJSON(t, r, http.MethodGet, "/carts/2/view", "")
	if w.Code != http.StatusBadGateway {
		t.Fatalf("status want 502 got %d body=%s", w.Code, w.Body.String())
	}
}

func TestViewEmptyCartSkipsCatalog(t *testing.T) {
	h, _ := newTestHandler(t, failingCatalog{})
	w := doJSON(t, newEngine(h), http.MethodGet, "/carts/77/view", "")
	if w.Code != http.StatusOK {
		t.Fatalf("empty cart should not need catalog, got %d %s", w.Code, w.Body.String())
	}
	summary := decodeBody(t, w)["data"].(map[string]interface{})["summary"].(map[string]interface{})
	if summary["total"] != "4.00" {
		t.Fatalf("empty cart total should equal platform fee, got %v", summary["total"])
	}
}

func TestMyCartUsesContextUser(t *testing.T) {
	h, _ := newTestHandler(t, nil)
	r := newEngine(h)

	w := doJSON(t, r, http.MethodPost, "/me/cart/add", `{"productId":"202","user":"999"}`, "X-Test-User", "8")
	if w.Code != http.StatusCreated {
		t.Fatalf("status want 201 got %d body=%s", w.Code, w.Body.String())
	}
	if got := decodeBody(t, w)["data"].(map[string]interface{})["userId"]; got != "8" {
		t.Fatalf("body user should be ignored, got %v", got)
	}

	w = doJSON(t, r, http.MethodGet, "/me/cart", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("missing session should be 401, got %d", w.Code)
	}
}
