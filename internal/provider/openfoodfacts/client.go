// ABOUTME: Open Food Facts barcode lookup client.
// ABOUTME: Shared-database lookup used before falling back to AI analysis.
package openfoodfacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/itstoasti/ketomate/internal/models"
)

const (
	defaultBaseURL = "https://world.openfoodfacts.org"
	searchPageSize = 5
)

var barcodePattern = regexp.MustCompile(`^\d{8,14}$`)

// Client queries the Open Food Facts product database.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type offResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProduct struct {
	ProductName string             `json:"product_name"`
	Brands      string             `json:"brands"`
	ServingSize string             `json:"serving_size"`
	Nutriments  map[string]float64 `json:"nutriments"`
}

// IsValidBarcode reports whether a string looks like an EAN/UPC barcode.
func IsValidBarcode(code string) bool {
	return barcodePattern.MatchString(strings.TrimSpace(code))
}

// LookupBarcode fetches a product by barcode and maps it to a Food with
// per-serving macros and the fiber figure needed for net carbs.
func (c *Client) LookupBarcode(ctx context.Context, barcode string) (*models.Food, error) {
	barcode = strings.TrimSpace(barcode)
	if !IsValidBarcode(barcode) {
		return nil, fmt.Errorf("invalid barcode %q (expected 8-14 digits)", barcode)
	}

	body, err := c.get(ctx, fmt.Sprintf("/api/v2/product/%s.json", barcode))
	if err != nil {
		return nil, err
	}

	var parsed offResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}
	if parsed.Status != 1 || parsed.Product.ProductName == "" {
		return nil, fmt.Errorf("no product found for barcode %q", barcode)
	}

	return foodFromProduct(parsed.Product), nil
}

// SearchFoods queries the shared product database by free text and
// maps up to five named matches to Foods.
func (c *Client) SearchFoods(ctx context.Context, query string) ([]*models.Food, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("empty search query")
	}

	params := url.Values{}
	params.Set("search_terms", query)
	params.Set("search_simple", "1")
	params.Set("action", "process")
	params.Set("json", "1")
	params.Set("page_size", fmt.Sprintf("%d", searchPageSize))

	body, err := c.get(ctx, "/cgi/search.pl?"+params.Encode())
	if err != nil {
		return nil, err
	}

	var parsed offSearchResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode openfoodfacts response: %w", err)
	}

	foods := make([]*models.Food, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		if strings.TrimSpace(p.ProductName) == "" {
			continue
		}
		foods = append(foods, foodFromProduct(p))
	}
	return foods, nil
}

// get performs a GET against the configured base URL and returns the
// response body for 2xx statuses.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 12 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create openfoodfacts request: %w", err)
	}
	req.Header.Set("User-Agent", "ketomate/1.0 (+https://github.com/itstoasti/ketomate)")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute openfoodfacts request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read openfoodfacts response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openfoodfacts request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func foodFromProduct(p offProduct) *models.Food {
	macros := models.Macro{
		Carbs:    nutrient(p.Nutriments, "carbohydrates_serving", "carbohydrates"),
		Protein:  nutrient(p.Nutriments, "proteins_serving", "proteins"),
		Fat:      nutrient(p.Nutriments, "fat_serving", "fat"),
		Calories: nutrient(p.Nutriments, "energy-kcal_serving", "energy-kcal"),
	}

	return models.NewFood(strings.TrimSpace(p.ProductName), macros, models.SourceBarcode).
		WithBrand(strings.TrimSpace(p.Brands)).
		WithServingSize(strings.TrimSpace(p.ServingSize)).
		WithFiber(nutrient(p.Nutriments, "fiber_serving", "fiber"), 0)
}

// nutrient returns the first present key, preferring per-serving values
// over per-100g.
func nutrient(nutriments map[string]float64, keys ...string) float64 {
	for _, k := range keys {
		if v, ok := nutriments[k]; ok {
			return v
		}
	}
	return 0
}
