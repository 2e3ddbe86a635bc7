package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/natmag/chat-backend/internal/domain"
	"golang.org/x/time/rate"
)

// defaultFetchTimeout bounds one catalog fetch end to end
const defaultFetchTimeout = 10 * time.Second

// Client handles communication with the remote product catalog endpoint
type Client struct {
	httpClient   *http.Client
	baseURL      string
	fetchTimeout time.Duration
	rateLimiter  *rate.Limiter
	debug        bool
}

// NewClient creates a new catalog client
func NewClient(baseURL string, fetchTimeout time.Duration) *Client {
	if fetchTimeout <= 0 {
		fetchTimeout = defaultFetchTimeout
	}

	// The catalog is an unauthenticated public endpoint; keep request
	// pressure modest since every chat turn re-fetches it
	limiter := rate.NewLimiter(rate.Limit(5), 10)

	return &Client{
		httpClient:   &http.Client{},
		baseURL:      baseURL,
		fetchTimeout: fetchTimeout,
		rateLimiter:  limiter,
	}
}

// SetDebug enables verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// FetchAll retrieves the full product list with a hard timeout. One GET per
// call: no retry, no caching. The in-flight request is cancelled when the
// timeout expires, never left to hang.
func (c *Client) FetchAll(ctx context.Context) ([]domain.CatalogProduct, error) {
	ctx, cancel := context.WithTimeout(ctx, c.fetchTimeout)
	defer cancel()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrCatalogUnavailable, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "natmag-chat/1.0")

	if c.debug {
		log.Printf("[CATALOG] GET %s", c.baseURL)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCatalogUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: status %d", domain.ErrCatalogUnavailable, resp.StatusCode)
	}

	var products []domain.CatalogProduct
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrCatalogUnavailable, err)
	}

	valid := sanitize(products)
	if c.debug {
		log.Printf("[CATALOG] fetched %d products (%d valid)", len(products), len(valid))
	}
	return valid, nil
}

// sanitize validates records at the fetch boundary: entries without a stable
// id or a name cannot be matched or linked and are dropped
func sanitize(products []domain.CatalogProduct) []domain.CatalogProduct {
	valid := make([]domain.CatalogProduct, 0, len(products))
	for _, p := range products {
		if p.ID == 0 || p.Name == "" {
			continue
		}
		valid = append(valid, p)
	}
	return valid
}
