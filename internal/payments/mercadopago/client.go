package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/tuwebai/tuweb-backend/internal/payments/domain"
)

const defaultTimeout = 15 * time.Second

// Client talks to the Mercado Pago REST API.
type Client struct {
	baseURL     string
	accessToken string
	httpClient  *http.Client
}

func NewClient(baseURL, accessToken string) *Client {
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		httpClient:  &http.Client{Timeout: defaultTimeout},
	}
}

type preferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id"`
}

type preferenceRequest struct {
	Items             []preferenceItem  `json:"items"`
	Payer             map[string]string `json:"payer,omitempty"`
	ExternalReference string            `json:"external_reference"`
	BackURLs          map[string]string `json:"back_urls,omitempty"`
	AutoReturn        string            `json:"auto_return,omitempty"`
	NotificationURL   string            `json:"notification_url,omitempty"`
}

// CreatePreference creates a checkout preference. externalReference carries
// our local payment id so the webhook can find the record later.
func (c *Client) CreatePreference(ctx context.Context, req *domain.CheckoutRequest, externalReference, domainURL string) (*domain.Preference, error) {
	body := preferenceRequest{
		Items: []preferenceItem{{
			Title:      req.Title,
			Quantity:   1,
			UnitPrice:  req.Amount,
			CurrencyID: req.Currency,
		}},
		ExternalReference: externalReference,
		AutoReturn:        "approved",
		BackURLs: map[string]string{
			"success": domainURL + "/pago-exitoso",
			"failure": domainURL + "/pago-fallido",
			"pending": domainURL + "/pago-pendiente",
		},
		NotificationURL: domainURL + "/webhook/mercadopago",
	}
	if req.Email != "" {
		body.Payer = map[string]string{"email": req.Email}
	}

	var pref domain.Preference
	if err := c.doJSON(ctx, http.MethodPost, "/checkout/preferences", body, &pref); err != nil {
		return nil, err
	}
	return &pref, nil
}

// GetPayment fetches the payment resource for a gateway payment id.
func (c *Client) GetPayment(ctx context.Context, paymentID string) (*domain.GatewayPayment, error) {
	var p domain.GatewayPayment
	path := "/v1/payments/" + url.PathEscape(paymentID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("mercadopago request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("mercadopago returned status %d: %s", resp.StatusCode, payload)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
