package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/Sanketwange/ConcertTicketManagementSystem/internal/domain"
)

const defaultTimeout = 5 * time.Second

// Client reads ticket-type definitions from the event catalog service. The
// catalog owns total capacity; this client never writes to it. Upstream
// failures are surfaced as domain.ErrDependencyUnavailable and never treated
// as zero capacity.
type Client struct {
	baseURL string
	httpc   *http.Client
}

type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (used in tests).
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		if httpc != nil {
			c.httpc = httpc
		}
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpc.Timeout = d
		}
	}
}

func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type ticketTypePayload struct {
	ID            string  `json:"id"`
	EventID       string  `json:"event_id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	TotalQuantity int     `json:"total_quantity"`
}

func (p ticketTypePayload) toDomain() domain.TicketType {
	return domain.TicketType{
		ID:            p.ID,
		EventID:       p.EventID,
		Name:          p.Name,
		Price:         p.Price,
		TotalQuantity: p.TotalQuantity,
	}
}

// ListTicketTypes returns all ticket types defined for an event.
func (c *Client) ListTicketTypes(ctx context.Context, eventID string) ([]domain.TicketType, error) {
	endpoint := fmt.Sprintf("%s/events/%s/ticket-types", c.baseURL, url.PathEscape(eventID))

	var payload []ticketTypePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	types := make([]domain.TicketType, 0, len(payload))
	for _, p := range payload {
		types = append(types, p.toDomain())
	}
	return types, nil
}

// GetTicketType returns a single ticket type, or domain.ErrInvalidTicketType
// when the catalog does not know it.
func (c *Client) GetTicketType(ctx context.Context, eventID, ticketTypeID string) (domain.TicketType, error) {
	endpoint := fmt.Sprintf("%s/events/%s/ticket-types/%s",
		c.baseURL, url.PathEscape(eventID), url.PathEscape(ticketTypeID))

	var payload ticketTypePayload
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return domain.TicketType{}, err
	}
	return payload.toDomain(), nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrDependencyUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return domain.ErrInvalidTicketType
	default:
		return fmt.Errorf("%w: catalog returned %d", domain.ErrDependencyUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decode catalog response: %v", domain.ErrDependencyUnavailable, err)
	}
	return nil
}
