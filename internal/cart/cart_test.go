package cart

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewItem_Defaults(t *testing.T) {
	item := NewItem("", "data:image/png;base64,AAAA", "58mm badge", 0)

	if item.ID == "" {
		t.Error("Expected generated item ID")
	}
	if item.Name != "Custom badge" {
		t.Errorf("Expected fallback name, got '%s'", item.Name)
	}
	if item.Price != BasePrice {
		t.Errorf("Expected base price %v, got %v", BasePrice, item.Price)
	}
	if item.Category != CategoryCustom {
		t.Errorf("Expected category '%s', got '%s'", CategoryCustom, item.Category)
	}
	if item.Quantity != 1 {
		t.Errorf("Expected quantity floored to 1, got %d", item.Quantity)
	}
}

func TestSubmit(t *testing.T) {
	var received Item
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("Failed to decode payload: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	item := NewItem("Dragon badge", "data:image/png;base64,AAAA", "", 3)

	if err := c.Submit(context.Background(), item); err != nil {
		t.Fatalf("Submit failed: %v", err)
	}

	if received.Name != "Dragon badge" || received.Quantity != 3 {
		t.Errorf("Payload mismatch: %+v", received)
	}
}

func TestSubmit_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	if err := c.Submit(context.Background(), NewItem("x", "y", "", 1)); err == nil {
		t.Error("Expected error for non-2xx response")
	}
}
