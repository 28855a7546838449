package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Default Open Facts endpoints, in priority order. The first "found" result
// in this order wins, regardless of arrival order.
var DefaultOpenFactsEndpoints = []string{
	"https://world.openfoodfacts.org/api/v2/product",
	"https://world.openproductsfacts.org/api/v2/product",
	"https://world.openbeautyfacts.org/api/v2/product",
}

// fieldProjection keeps responses small; fetching full product documents
// would blow the 2s budget on slow endpoints.
const fieldProjection = "code,product_name,brands,categories,image_front_url,image_url"

const requestTimeout = 2 * time.Second

// OpenFactsProduct is the minimal projection requested from the Open Facts APIs.
type OpenFactsProduct struct {
	Code          string `json:"code"`
	ProductName   string `json:"product_name"`
	Brands        string `json:"brands"`
	Categories    string `json:"categories"`
	ImageURL      string `json:"image_url"`
	ImageFrontURL string `json:"image_front_url"`
}

type openFactsResponse struct {
	Status  int               `json:"status"`
	Product *OpenFactsProduct `json:"product"`
}

// OpenFactsClient fans out product lookups to the Open Facts family of
// catalogs. A User-Agent identifying the app is required by their API policy.
type OpenFactsClient struct {
	Endpoints  []string
	UserAgent  string
	HTTPClient *http.Client
}

// NewOpenFactsClient builds a client over the given endpoints (defaults when
// empty) with the fixed per-request timeout.
func NewOpenFactsClient(endpoints []string, userAgent string) *OpenFactsClient {
	if len(endpoints) == 0 {
		endpoints = DefaultOpenFactsEndpoints
	}
	return &OpenFactsClient{
		Endpoints:  endpoints,
		UserAgent:  userAgent,
		HTTPClient: &http.Client{Timeout: requestTimeout},
	}
}

// FetchProduct queries all endpoints concurrently and returns the first
// "found" result in endpoint-priority order, or nil when no endpoint has the
// product. Transport failures and not-found responses are both non-results;
// one endpoint's failure never affects the others and never reaches the
// caller.
func (c *OpenFactsClient) FetchProduct(ctx context.Context, gtin string) *OpenFactsProduct {
	start := time.Now()
	results := make([]*OpenFactsProduct, len(c.Endpoints))

	var wg sync.WaitGroup
	for i, endpoint := range c.Endpoints {
		wg.Add(1)
		go func(i int, endpoint string) {
			defer wg.Done()
			results[i] = c.fetchFromEndpoint(ctx, endpoint, gtin)
		}(i, endpoint)
	}
	wg.Wait()

	for _, p := range results {
		if p != nil {
			log.Info().Str("gtin", gtin).Str("name", p.ProductName).Int64("ms", time.Since(start).Milliseconds()).Msg("External catalog hit")
			return p
		}
	}
	log.Debug().Str("gtin", gtin).Int64("ms", time.Since(start).Milliseconds()).Msg("Product not in external catalogs")
	return nil
}

// fetchFromEndpoint returns the product when the endpoint reports status 1
// with a payload, nil on not-found, transport failure or timeout.
func (c *OpenFactsClient) fetchFromEndpoint(ctx context.Context, endpoint, gtin string) *OpenFactsProduct {
	url := fmt.Sprintf("%s/%s?fields=%s", endpoint, gtin, fieldProjection)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("User-Agent", c.UserAgent)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var body openFactsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil
	}
	if body.Status == 1 && body.Product != nil {
		return body.Product
	}
	return nil
}

// ExtractBrandName returns the first entry of the comma-separated brands
// field, or "" when absent.
func ExtractBrandName(p *OpenFactsProduct) string {
	if p.Brands == "" {
		return ""
	}
	first := strings.SplitN(p.Brands, ",", 2)[0]
	return strings.TrimSpace(first)
}

// ExtractCategory returns the last (most specific) entry of the
// comma-separated categories field, or "" when absent.
func ExtractCategory(p *OpenFactsProduct) string {
	if p.Categories == "" {
		return ""
	}
	parts := strings.Split(p.Categories, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}
