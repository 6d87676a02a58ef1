package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/edumart/edumart/internal/domain/errors"
	"github.com/edumart/edumart/internal/domain/model"
	"github.com/edumart/edumart/internal/pkg/webhook"
	"github.com/edumart/edumart/internal/server/http/dto"
	"github.com/edumart/edumart/internal/usecase"
)

const (
	identityEventUserCreated = "user.created"
	identityEventUserUpdated = "user.updated"

	paymentEventSessionCompleted = "checkout.session.completed"
	paymentEventSessionFailed    = "checkout.session.failed"
	paymentEventSessionExpired   = "checkout.session.expired"
)

// WebhookHandler ingests identity and payment provider deliveries.
// Signatures are verified over the raw body before anything is parsed.
type WebhookHandler struct {
	facade           PlatformFacade
	identityVerifier *webhook.IdentityVerifier
	paymentVerifier  *webhook.PaymentVerifier
	logger           *slog.Logger
}

// NewWebhookHandler constructs WebhookHandler.
func NewWebhookHandler(
	facade PlatformFacade,
	identityVerifier *webhook.IdentityVerifier,
	paymentVerifier *webhook.PaymentVerifier,
	logger *slog.Logger,
) *WebhookHandler {
	return &WebhookHandler{
		facade:           facade,
		identityVerifier: identityVerifier,
		paymentVerifier:  paymentVerifier,
		logger:           logger,
	}
}

// Identity handles POST /webhooks/identity.
func (h *WebhookHandler) Identity(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.identityVerifier.Verify(
		c.GetHeader("webhook-id"),
		c.GetHeader("webhook-timestamp"),
		c.GetHeader("webhook-signature"),
		body,
	)
	if err != nil {
		h.logger.Warn("identity webhook rejected", slog.String("error", err.Error()))
		c.Status(http.StatusUnauthorized)
		return
	}

	var event dto.IdentityEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	user := model.User{
		ID:        event.Data.ID,
		Name:      event.Data.FullName(),
		Email:     event.Data.PrimaryEmail(),
		AvatarURL: event.Data.ImageURL,
		Role:      model.Role(event.Data.PublicMetadata.Role),
	}

	switch event.Type {
	case identityEventUserCreated:
		err = h.facade.ApplyUserCreated(c.Request.Context(), user)
	case identityEventUserUpdated:
		err = h.facade.ApplyUserUpdated(c.Request.Context(), user)
	default:
		// Unknown event types are acknowledged untouched.
		c.Status(http.StatusOK)
		return
	}

	if err != nil {
		if errors.Is(err, domainErrors.ErrValidation) {
			c.Status(http.StatusBadRequest)
			return
		}
		// Storage failure: signal the provider to redeliver.
		h.logger.Error("identity event failed",
			slog.String("type", event.Type),
			slog.String("user_id", event.Data.ID),
			slog.String("error", err.Error()),
		)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}

// Payment handles POST /webhooks/payment.
func (h *WebhookHandler) Payment(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	if err := h.paymentVerifier.Verify(c.GetHeader("Gateway-Signature"), body); err != nil {
		h.logger.Warn("payment webhook rejected", slog.String("error", err.Error()))
		c.Status(http.StatusUnauthorized)
		return
	}

	var event dto.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	var outcome usecase.Outcome
	switch event.Type {
	case paymentEventSessionCompleted:
		outcome = usecase.OutcomeSuccess
	case paymentEventSessionFailed, paymentEventSessionExpired:
		outcome = usecase.OutcomeFailure
	default:
		c.Status(http.StatusOK)
		return
	}

	if event.Data.Object.ID == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	err = h.facade.ConfirmPayment(c.Request.Context(), event.Data.Object.ID, outcome)
	if err != nil {
		// Unknown sessions and refused transitions are already logged by
		// the use case; a definitive ack stops redelivery.
		if errors.Is(err, domainErrors.ErrUnknownSession) || errors.Is(err, domainErrors.ErrInvalidTransition) {
			c.Status(http.StatusOK)
			return
		}
		h.logger.Error("payment event failed",
			slog.String("type", event.Type),
			slog.String("session_id", event.Data.Object.ID),
			slog.String("error", err.Error()),
		)
		c.Status(http.StatusInternalServerError)
		return
	}
	c.Status(http.StatusOK)
}
