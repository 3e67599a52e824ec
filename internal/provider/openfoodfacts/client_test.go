// ABOUTME: Tests for the Open Food Facts barcode client.
// ABOUTME: Uses httptest servers for response shaping.
package openfoodfacts

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/itstoasti/ketomate/internal/models"
)

func TestIsValidBarcode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"0123456789012", true},
		{"12345678", true},
		{"1234567", false},
		{"123456789012345", false},
		{"abc123", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsValidBarcode(tt.code); got != tt.want {
			t.Errorf("IsValidBarcode(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestLookupBarcode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v2/product/0123456789012.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Almond Butter",
				"brands": "NuttyCo",
				"serving_size": "2 tbsp (32g)",
				"nutriments": {
					"carbohydrates_serving": 6,
					"proteins_serving": 7,
					"fat_serving": 18,
					"energy-kcal_serving": 196,
					"fiber_serving": 3
				}
			}
		}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	food, err := c.LookupBarcode(context.Background(), "0123456789012")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}

	if food.Name != "Almond Butter" || food.Brand != "NuttyCo" {
		t.Errorf("food = %+v", food)
	}
	if food.Macros.Carbs != 6 || food.Fiber != 3 {
		t.Errorf("macros = %+v fiber = %v", food.Macros, food.Fiber)
	}
	if food.Source != models.SourceBarcode {
		t.Errorf("source = %s", food.Source)
	}
	// 6g carbs - 3g fiber = 3g net carbs
	if food.KetoRating() != models.RatingKetoFriendly {
		t.Errorf("rating = %s, want Keto-Friendly", food.KetoRating())
	}
}

func TestLookupBarcodeNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": 0, "product": {}}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if _, err := c.LookupBarcode(context.Background(), "99999999"); err == nil {
		t.Error("expected not-found error")
	}
}

func TestLookupBarcodeInvalidInput(t *testing.T) {
	c := &Client{}
	if _, err := c.LookupBarcode(context.Background(), "not-a-barcode"); err == nil {
		t.Error("expected validation error before any network call")
	}
}

func TestLookupBarcodeServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	if _, err := c.LookupBarcode(context.Background(), "0123456789012"); err == nil {
		t.Error("expected error on 500 response")
	}
}

func TestLookupBarcodeFallsBackToPer100g(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{
			"status": 1,
			"product": {
				"product_name": "Spinach",
				"nutriments": {"carbohydrates": 3.6, "proteins": 2.9, "fat": 0.4, "energy-kcal": 23}
			}
		}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	food, err := c.LookupBarcode(context.Background(), "0123456789012")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if food.Macros.Carbs != 3.6 {
		t.Errorf("carbs = %v, want per-100g fallback 3.6", food.Macros.Carbs)
	}
}

func TestSearchFoods(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cgi/search.pl" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("search_terms"); got != "greek yogurt" {
			t.Errorf("search_terms = %q, want %q", got, "greek yogurt")
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"products": [
				{
					"product_name": "Greek Yogurt Plain",
					"brands": "DairyCo",
					"serving_size": "170g",
					"nutriments": {
						"carbohydrates_serving": 6,
						"proteins_serving": 17,
						"fat_serving": 0.7,
						"energy-kcal_serving": 100
					}
				},
				{
					"product_name": "",
					"nutriments": {}
				}
			]
		}`))
	}))
	defer srv.Close()

	c := &Client{BaseURL: srv.URL}
	foods, err := c.SearchFoods(context.Background(), "greek yogurt")
	if err != nil {
		t.Fatalf("SearchFoods() error = %v", err)
	}
	if len(foods) != 1 {
		t.Fatalf("len(foods) = %d, want 1 (nameless products skipped)", len(foods))
	}
	if foods[0].Name != "Greek Yogurt Plain" {
		t.Errorf("Name = %q, want %q", foods[0].Name, "Greek Yogurt Plain")
	}
	if foods[0].Macros.Protein != 17 {
		t.Errorf("Protein = %v, want 17", foods[0].Macros.Protein)
	}
	if foods[0].Source != models.SourceBarcode {
		t.Errorf("Source = %q, want %q", foods[0].Source, models.SourceBarcode)
	}
}

func TestSearchFoodsEmptyQuery(t *testing.T) {
	c := &Client{}
	if _, err := c.SearchFoods(context.Background(), "   "); err == nil {
		t.Error("SearchFoods() with blank query should error")
	}
}
