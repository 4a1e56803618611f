package main

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Gateway statuses that count as paid.
const (
	GatewayStatusPending = "pending"
	GatewayStatusPaid    = "paid"
	GatewayStatusSuccess = "success"
)

// PaymentRequest is the result of creating a QRIS payment.
type PaymentRequest struct {
	ID       string
	QRString string
}

// PaymentGateway abstracts the external QRIS payment provider.
type PaymentGateway interface {
	// CreatePayment requests a QRIS payment for the given amount, keyed by
	// the caller's reference. No retries are performed.
	CreatePayment(ctx context.Context, reference string, amount int64) (*PaymentRequest, error)

	// CheckStatus returns the provider's current status for a payment.
	// A response without a recognizable status field reads as pending.
	CheckStatus(ctx context.Context, paymentID string) (string, error)
}

// AtlanticGateway implements PaymentGateway against the Atlantic H2H API.
type AtlanticGateway struct {
	client *resty.Client
	apiKey string
}

// NewAtlanticGateway creates a new AtlanticGateway with a bounded timeout.
func NewAtlanticGateway(baseURL, apiKey string, timeout time.Duration) *AtlanticGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout)

	return &AtlanticGateway{
		client: client,
		apiKey: apiKey,
	}
}

type atlanticDepositResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID       json.Number `json:"id"`
		QRString string      `json:"qr_string"`
	} `json:"data"`
}

type atlanticStatusResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		Status string `json:"status"`
	} `json:"data"`
}

// CreatePayment creates a QRIS deposit on Atlantic.
func (g *AtlanticGateway) CreatePayment(ctx context.Context, reference string, amount int64) (*PaymentRequest, error) {
	var out atlanticDepositResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key": g.apiKey,
			"reff_id": reference,
			"nominal": strconv.FormatInt(amount, 10),
			"type":    "ewallet",
			"metode":  "qrisfast",
		}).
		SetResult(&out).
		Post("/deposit/create")
	if err != nil {
		return nil, fmt.Errorf("%w: deposit create request failed: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: deposit create returned %s", ErrGateway, resp.Status())
	}
	if !out.Status {
		msg := out.Message
		if msg == "" {
			msg = "unknown"
		}
		return nil, fmt.Errorf("%w: deposit rejected: %s", ErrGateway, msg)
	}
	if out.Data.QRString == "" {
		return nil, fmt.Errorf("%w: deposit response missing qr_string", ErrGateway)
	}

	return &PaymentRequest{
		ID:       out.Data.ID.String(),
		QRString: out.Data.QRString,
	}, nil
}

// CheckStatus queries the deposit status on Atlantic. Every response is
// untrusted input: only the documented status field is read, and its absence
// reads as pending rather than paid.
func (g *AtlanticGateway) CheckStatus(ctx context.Context, paymentID string) (string, error) {
	var out atlanticStatusResponse

	resp, err := g.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"api_key": g.apiKey,
			"id":      paymentID,
		}).
		SetResult(&out).
		Post("/deposit/status")
	if err != nil {
		return "", fmt.Errorf("%w: deposit status request failed: %v", ErrGateway, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("%w: deposit status returned %s", ErrGateway, resp.Status())
	}

	if out.Data.Status == "" {
		return GatewayStatusPending, nil
	}
	return out.Data.Status, nil
}
