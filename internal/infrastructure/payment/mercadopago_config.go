package payment

import (
	"fmt"
	"time"

	"github.com/ruralsoc/backend/internal/infrastructure/config"
)

// MercadoPagoConfig holds Mercado Pago API credentials and checkout URLs
type MercadoPagoConfig struct {
	BaseURL         string
	AccessToken     string
	NotificationURL string
	SuccessURL      string
	FailureURL      string
	PendingURL      string
	Timeout         time.Duration
	Sandbox         bool
}

// NewMercadoPagoConfig builds a MercadoPagoConfig from application config
func NewMercadoPagoConfig(cfg config.PaymentConfig) *MercadoPagoConfig {
	return &MercadoPagoConfig{
		BaseURL:         cfg.BaseURL,
		AccessToken:     cfg.AccessToken,
		NotificationURL: cfg.NotificationURL,
		SuccessURL:      cfg.SuccessURL,
		FailureURL:      cfg.FailureURL,
		PendingURL:      cfg.PendingURL,
		Timeout:         cfg.Timeout,
		Sandbox:         cfg.Sandbox,
	}
}

// Validate checks that required fields are present
func (c *MercadoPagoConfig) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("mercadopago: base URL is required")
	}
	if c.AccessToken == "" {
		return fmt.Errorf("mercadopago: access token is required")
	}
	return nil
}
