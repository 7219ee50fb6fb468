package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	portssvc "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/gin-gonic/gin"
)

// statementHandler handles HTTP requests for billing statements.
type statementHandler struct {
	billingService portssvc.BillingSvc
}

// newStatementHandler creates a new statementHandler.
func newStatementHandler(bs portssvc.BillingSvc) *statementHandler {
	return &statementHandler{billingService: bs}
}

// getStatement handles GET /accounts/:id/statement. An optional "asOf" query
// parameter (YYYY-MM-DD) selects the statement date; it defaults to today,
// which yields the previous calendar month's statement.
func (h *statementHandler) getStatement(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	accountID := c.Param("id")

	statementDate := time.Now().UTC()
	if asOf := c.Query("asOf"); asOf != "" {
		parsed, err := time.Parse("2006-01-02", asOf)
		if err != nil {
			logger.Warn("Invalid asOf date for GetStatement", slog.String("asOf", asOf))
			c.JSON(http.StatusBadRequest, gin.H{"error": "asOf must be a YYYY-MM-DD date"})
			return
		}
		statementDate = parsed
	}

	logger = logger.With(slog.String("account_id", accountID))
	logger.Info("Received request to generate statement")

	statement, err := h.billingService.GenerateStatement(c.Request.Context(), accountID, statementDate)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrValidation):
			logger.Warn("Statement request rejected", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, apperrors.ErrNotFound):
			logger.Warn("Account not found for statement")
			c.JSON(http.StatusNotFound, gin.H{"error": "Account not found"})
		case errors.Is(err, apperrors.ErrBusinessRule):
			logger.Warn("Statement request violates business rule", slog.String("error", err.Error()))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.Error("Failed to generate statement", slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate statement"})
		}
		return
	}

	logger.Info("Statement generated successfully")
	c.JSON(http.StatusOK, statement)
}
