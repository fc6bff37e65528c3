// Package cart hands finished badge exports to the external cart API.
package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// BasePrice is the display price attached to a custom badge. Actual
// checkout pricing is owned by the cart/checkout service, not here.
const BasePrice = 4.99

// CategoryCustom marks items produced by the design canvas.
const CategoryCustom = "custom"

// Item is the payload handed to the cart collaborator.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Category string  `json:"category"`
	Image    string  `json:"image"` // PNG data URL from the rasterizer
	Details  string  `json:"details,omitempty"`
	Quantity int     `json:"quantity"`
}

// NewItem builds a cart item for a rendered badge.
func NewItem(name, imageDataURL, details string, quantity int) Item {
	if name == "" {
		name = "Custom badge"
	}
	if quantity < 1 {
		quantity = 1
	}

	return Item{
		ID:       uuid.New().String(),
		Name:     name,
		Price:    BasePrice,
		Category: CategoryCustom,
		Image:    imageDataURL,
		Details:  details,
		Quantity: quantity,
	}
}

// Client posts items to the external cart API.
type Client struct {
	endpoint string
	client   *http.Client
}

// NewClient creates a cart client for the given endpoint.
func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

// Submit posts one item to the cart.
func (c *Client) Submit(ctx context.Context, item Item) error {
	body, err := json.Marshal(item)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("cart submission failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("cart API returned status %d", resp.StatusCode)
	}
	return nil
}
