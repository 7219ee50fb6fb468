package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentService validates and posts bill payments against an account's
// outstanding balance.
type PaymentService struct {
	accountRepo portsrepo.AccountReader
	txnRepo     portsrepo.TransactionWriter
	now         func() time.Time
}

// NewPaymentService wires the payment processor over its stores.
func NewPaymentService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionWriter) *PaymentService {
	return &PaymentService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		now:         time.Now,
	}
}

// ProcessPayment runs the fixed validation chain - blank checks, amount
// structure, account existence, active status, sufficiency, confirmation -
// short-circuiting on the first failure, then posts the payment atomically.
// Rule failures come back inside the result; only store failures surface as
// errors.
func (s *PaymentService) ProcessPayment(ctx context.Context, req dto.PaymentRequest, actorID string) (*dto.PaymentResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Blank checks.
	if strings.TrimSpace(req.AccountID) == "" {
		return paymentFailure(dto.CodeValidation, "accountID", "must not be blank"), nil
	}
	if strings.TrimSpace(req.Amount) == "" {
		return paymentFailure(dto.CodeValidation, "amount", "must not be blank"), nil
	}

	// Structural amount checks: a parsable, positive value with at most two
	// fractional digits.
	raw, err := decimal.NewFromString(req.Amount)
	if err != nil {
		return paymentFailure(dto.CodeValidation, "amount", "must be a valid decimal amount"), nil
	}
	if raw.Sign() <= 0 {
		return paymentFailure(dto.CodeValidation, "amount", "must be greater than zero"), nil
	}
	if raw.Exponent() < -domain.MoneyScale {
		return paymentFailure(dto.CodeValidation, "amount", "cannot carry more than 2 decimal places"), nil
	}
	amount, err := domain.NewMoney(raw)
	if err != nil {
		return paymentFailure(dto.CodeValidation, "amount", "is not representable"), nil
	}

	// Account existence.
	account, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return paymentFailure(dto.CodeNotFound, "accountID", "account does not exist"), nil
		}
		logger.Error("Failed to find account for payment", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	// Active status.
	if account.Status != domain.AccountActive {
		return paymentFailure(dto.CodeBusinessRule, "accountID", "account is not active"), nil
	}

	// Sufficiency: a payment needs an outstanding balance to pay against,
	// and the posted balance must stay representable.
	if account.CurrentBalance.Sign() <= 0 {
		return paymentFailure(dto.CodeBusinessRule, "amount", "account has no outstanding balance to pay"), nil
	}
	newBalance, err := account.CurrentBalance.Sub(amount)
	if err != nil {
		return paymentFailure(dto.CodeBusinessRule, "amount", "posting this payment would leave the balance unrepresentable"), nil
	}

	// Confirmation flag: the caller must explicitly confirm before funds move.
	if !req.Confirmed {
		return paymentFailure(dto.CodeBusinessRule, "confirmed", "payment must be confirmed before funds move"), nil
	}

	now := s.now().UTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     account.AccountID,
		TypeCode:      domain.TranTypePayment,
		Amount:        &amount,
		Description:   "Bill payment",
		OccurredAt:    now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorID,
		},
	}

	updated := *account
	updated.CurrentBalance = newBalance
	updated.LastUpdatedAt = now
	updated.LastUpdatedBy = actorID

	if err := s.txnRepo.SavePaymentWithBalance(ctx, updated, txn); err != nil {
		logger.Error("Failed to persist payment", slog.String("error", err.Error()), slog.String("account_id", account.AccountID), slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	logger.Info("Payment posted",
		slog.String("account_id", account.AccountID),
		slog.String("transaction_id", txn.TransactionID),
		slog.String("amount", amount.String()),
		slog.String("new_balance", newBalance.String()),
	)

	return &dto.PaymentResult{
		Success:     true,
		Account:     dto.ToAccountResponse(&updated),
		Transaction: dto.ToTransactionResponse(&txn),
	}, nil
}

func paymentFailure(code, field, message string) *dto.PaymentResult {
	return &dto.PaymentResult{
		Success:   false,
		ErrorCode: code,
		Failures:  []validation.FieldError{{Field: field, Message: message}},
	}
}
