package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
)

// razorpayOrderResponse represents the Razorpay order-create response.
type razorpayOrderResponse struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Status string `json:"status"`
	Error  *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// Client talks to the Razorpay Orders API. The checkout itself happens on the
// client against this order id; completion arrives back through the webhook.
type Client struct {
	KeyID     string
	KeySecret string
	APIURL    string
	HTTP      *http.Client
}

// NewClientFromEnv reads the gateway configuration from the environment.
func NewClientFromEnv() (*Client, error) {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	apiURL := os.Getenv("RAZORPAY_API_URL")
	if apiURL == "" {
		apiURL = "https://api.razorpay.com/v1/orders"
	}
	if keyID == "" || keySecret == "" {
		return nil, fmt.Errorf("razorpay configuration missing")
	}
	return &Client{KeyID: keyID, KeySecret: keySecret, APIURL: apiURL, HTTP: &http.Client{}}, nil
}

// CreateOrder registers an order for the given amount in paise and returns
// the gateway order id.
func (c *Client) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (string, error) {
	payload := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.APIURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(c.KeyID, c.KeySecret)

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to reach Razorpay: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("razorpay API error (%d): %s", resp.StatusCode, string(body))
	}

	var orderResp razorpayOrderResponse
	if err := json.Unmarshal(body, &orderResp); err != nil {
		return "", fmt.Errorf("failed to parse Razorpay response: %v", err)
	}
	if orderResp.Error != nil {
		return "", fmt.Errorf("razorpay error: %s", orderResp.Error.Description)
	}
	if orderResp.ID == "" {
		return "", fmt.Errorf("razorpay returned empty order id")
	}
	return orderResp.ID, nil
}

// WebhookEvent is the subset of the payment webhook payload the checkout flow
// consumes.
type WebhookEvent struct {
	Event   string `json:"event"` // "payment.captured", "payment.failed"
	Payload struct {
		Payment struct {
			Entity struct {
				ID      string `json:"id"`
				OrderID string `json:"order_id"`
				Status  string `json:"status"`
				Notes   struct {
					UserID string `json:"user_id"`
				} `json:"notes"`
			} `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// ParseWebhook decodes a webhook body.
func ParseWebhook(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse webhook payload: %v", err)
	}
	if ev.Event == "" {
		return nil, fmt.Errorf("webhook payload missing event")
	}
	return &ev, nil
}
