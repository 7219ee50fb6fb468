package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// accountHandler handles HTTP requests for the account maintenance surface.
type accountHandler struct {
	updateService portssvc.AccountUpdateSvc
}

// newAccountHandler creates a new accountHandler.
func newAccountHandler(us portssvc.AccountUpdateSvc) *accountHandler {
	return &accountHandler{updateService: us}
}

// registerAccountRoutes registers routes related to accounts.
func registerAccountRoutes(rg *gin.RouterGroup, svcs *services.Container) {
	h := newAccountHandler(svcs.Update)
	ph := newPaymentHandler(svcs.Payment)
	sh := newStatementHandler(svcs.Billing)

	accounts := rg.Group("/accounts")
	{
		accounts.PUT("/:id", h.updateAccount)
		accounts.POST("/:id/payments", ph.processPayment)
		accounts.GET("/:id/statement", sh.getStatement)
	}
}

// resultStatus maps a structured failure code to its HTTP status.
func resultStatus(errorCode string) int {
	switch errorCode {
	case dto.CodeValidation:
		return http.StatusBadRequest
	case dto.CodeBusinessRule:
		return http.StatusUnprocessableEntity
	case dto.CodeConflict:
		return http.StatusConflict
	case dto.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// updateAccount handles PUT /accounts/:id. The body carries both the edited
// field values and the values the caller originally read, which drive the
// concurrency check.
func (h *accountHandler) updateAccount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	var req dto.AccountUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for UpdateAccount", slog.String("error", err.Error()))
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
	logger.Info("Received request to update account")

	result, err := h.updateService.UpdateAccount(c.Request.Context(), req, actorID)
	if err != nil {
		logger.Error("Failed to update account in service", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update account"})
		return
	}

	if !result.Success {
		logger.Warn("Account update rejected", slog.String("error_code", result.ErrorCode))
		c.JSON(resultStatus(result.ErrorCode), result)
		return
	}

	logger.Info("Account updated successfully")
	c.JSON(http.StatusOK, result)
}
