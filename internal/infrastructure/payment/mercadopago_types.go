package payment

// mpPreferenceItem is one line item on a checkout preference request
type mpPreferenceItem struct {
	Title      string  `json:"title"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	CurrencyID string  `json:"currency_id,omitempty"`
}

// mpBackURLs carries the redirect URLs after checkout
type mpBackURLs struct {
	Success string `json:"success,omitempty"`
	Failure string `json:"failure,omitempty"`
	Pending string `json:"pending,omitempty"`
}

// mpPayer identifies the paying member
type mpPayer struct {
	Email string `json:"email,omitempty"`
}

// mpPreferenceRequest is the body of POST /checkout/preferences
type mpPreferenceRequest struct {
	Items             []mpPreferenceItem `json:"items"`
	Payer             *mpPayer           `json:"payer,omitempty"`
	ExternalReference string             `json:"external_reference"`
	NotificationURL   string             `json:"notification_url,omitempty"`
	BackURLs          *mpBackURLs        `json:"back_urls,omitempty"`
	AutoReturn        string             `json:"auto_return,omitempty"`
}

// mpPreferenceResponse is the body returned by POST /checkout/preferences
type mpPreferenceResponse struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// mpPaymentResponse is the body returned by GET /v1/payments/{id}
type mpPaymentResponse struct {
	ID                int64  `json:"id"`
	Status            string `json:"status"`
	StatusDetail      string `json:"status_detail"`
	ExternalReference string `json:"external_reference"`
}

// mpErrorResponse is the error body returned by the Mercado Pago API
type mpErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error"`
	Status  int    `json:"status"`
}
