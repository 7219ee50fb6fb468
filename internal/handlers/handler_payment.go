package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler handles HTTP requests for bill payments.
type paymentHandler struct {
	paymentService portssvc.PaymentSvc
}

// newPaymentHandler creates a new paymentHandler.
func newPaymentHandler(ps portssvc.PaymentSvc) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// processPayment handles POST /accounts/:id/payments.
func (h *paymentHandler) processPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ProcessPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}
	req.AccountID = accountID

	actorID, ok := middleware.GetActorIDFromContext(c)
	if !ok {
		logger.Error("Actor ID not found in context")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing caller identity"})
		return
	}

	logger = logger.With(slog.String("account_id", accountID), slog.String("actor_id", actorID))
	logger.Info("Received request to process payment")

	result, err := h.paymentService.ProcessPayment(c.Request.Context(), req, actorID)
	if err != nil {
		logger.Error("Failed to process payment in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process payment"})
		return
	}

	if !result.Success {
		logger.Warn("Payment rejected", slog.String("error_code", result.ErrorCode))
		c.JSON(resultStatus(result.ErrorCode), result)
		return
	}

	logger.Info("Payment processed successfully", slog.String("transaction_id", result.Transaction.TransactionID))
	c.JSON(http.StatusCreated, result)
}
