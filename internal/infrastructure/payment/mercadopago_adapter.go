package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/ruralsoc/backend/internal/domain/billing"
	"github.com/ruralsoc/backend/internal/domain/shared"
)

// MercadoPagoAdapter implements billing.PaymentGateway against the
// Mercado Pago REST API
type MercadoPagoAdapter struct {
	config     *MercadoPagoConfig
	httpClient *http.Client
}

// NewMercadoPagoAdapter creates a new Mercado Pago adapter
func NewMercadoPagoAdapter(config *MercadoPagoConfig) (*MercadoPagoAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	timeout := config.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &MercadoPagoAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreatePreference registers a checkout preference and returns its
// checkout URLs
func (a *MercadoPagoAdapter) CreatePreference(ctx context.Context, req billing.PreferenceRequest) (*billing.Preference, error) {
	items := make([]mpPreferenceItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = mpPreferenceItem{
			Title:      item.Title,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			CurrencyID: item.Currency,
		}
	}

	body := mpPreferenceRequest{
		Items:             items,
		ExternalReference: req.ExternalReference,
		NotificationURL:   req.NotificationURL,
	}
	if req.PayerEmail != "" {
		body.Payer = &mpPayer{Email: req.PayerEmail}
	}
	if req.SuccessURL != "" || req.FailureURL != "" || req.PendingURL != "" {
		body.BackURLs = &mpBackURLs{
			Success: req.SuccessURL,
			Failure: req.FailureURL,
			Pending: req.PendingURL,
		}
		if req.SuccessURL != "" {
			body.AutoReturn = "approved"
		}
	}

	var resp mpPreferenceResponse
	if err := a.doRequest(ctx, http.MethodPost, "/checkout/preferences", body, &resp); err != nil {
		return nil, err
	}

	return &billing.Preference{
		ID:               resp.ID,
		InitPoint:        resp.InitPoint,
		SandboxInitPoint: resp.SandboxInitPoint,
	}, nil
}

// GetPayment fetches the authoritative payment state by processor
// payment id
func (a *MercadoPagoAdapter) GetPayment(ctx context.Context, paymentID string) (*billing.Payment, error) {
	var resp mpPaymentResponse
	if err := a.doRequest(ctx, http.MethodGet, "/v1/payments/"+paymentID, nil, &resp); err != nil {
		return nil, err
	}

	return &billing.Payment{
		ID:                strconv.FormatInt(resp.ID, 10),
		Status:            resp.Status,
		ExternalReference: resp.ExternalReference,
	}, nil
}

// doRequest performs an authenticated JSON request against the API
func (a *MercadoPagoAdapter) doRequest(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("mercadopago: failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.config.BaseURL+path, reader)
	if err != nil {
		return fmt.Errorf("mercadopago: failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+a.config.AccessToken)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("mercadopago: failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusNotFound {
		return shared.ErrNotFound
	}
	if resp.StatusCode >= 400 {
		var apiErr mpErrorResponse
		if err := json.Unmarshal(respBody, &apiErr); err == nil && apiErr.Message != "" {
			return fmt.Errorf("%w: %s (status %d)", shared.ErrUpstreamUnavailable, apiErr.Message, resp.StatusCode)
		}
		return fmt.Errorf("%w: status %d", shared.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return fmt.Errorf("mercadopago: failed to decode response: %w", err)
		}
	}
	return nil
}

// Ensure MercadoPagoAdapter implements PaymentGateway
var _ billing.PaymentGateway = (*MercadoPagoAdapter)(nil)
