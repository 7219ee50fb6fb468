package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
	"github.com/shopspring/decimal"
)

// BillingConfig holds the tunable billing constants.
type BillingConfig struct {
	MinPaymentFloor   domain.Money    // minimum payment floor, default 25.00
	MinPaymentPercent decimal.Decimal // percentage of balance, default 2
	AnnualRatePercent decimal.Decimal // annual interest rate, default 18.99
}

// DefaultBillingConfig returns the legacy billing constants.
func DefaultBillingConfig() BillingConfig {
	return BillingConfig{
		MinPaymentFloor:   domain.MustMoney("25.00"),
		MinPaymentPercent: decimal.NewFromInt(2),
		AnnualRatePercent: decimal.RequireFromString("18.99"),
	}
}

// BillingService derives minimum payments, period interest and category
// totals from an account's balance and its period transactions.
type BillingService struct {
	accountRepo portsrepo.AccountReader
	txnRepo     portsrepo.TransactionReader
	cfg         BillingConfig
	now         func() time.Time
}

// NewBillingService wires a billing calculator over the read-side stores.
func NewBillingService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionReader, cfg BillingConfig) *BillingService {
	return &BillingService{
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// MinimumPayment returns 0.00 for a non-positive balance, otherwise
// max(floor, balance x percentage) rounded to scale, capped at the balance
// itself so the minimum never exceeds what is owed.
func (s *BillingService) MinimumPayment(balance domain.Money) (domain.Money, error) {
	if balance.Sign() <= 0 {
		return domain.ZeroMoney(), nil
	}
	pctOfBalance, err := balance.Mul(s.cfg.MinPaymentPercent.Div(decimal.NewFromInt(100)))
	if err != nil {
		return domain.ZeroMoney(), err
	}
	minimum := pctOfBalance
	if s.cfg.MinPaymentFloor.GreaterThan(minimum) {
		minimum = s.cfg.MinPaymentFloor
	}
	if minimum.GreaterThan(balance) {
		minimum = balance
	}
	return minimum, nil
}

// PeriodInterest accrues day-count interest on the average balance over the
// inclusive period [periodStart, periodEnd] at the configured annual rate,
// rounding once at the end. Non-positive balances accrue nothing.
func (s *BillingService) PeriodInterest(averageBalance domain.Money, periodStart, periodEnd time.Time) (domain.Money, error) {
	if averageBalance.Sign() <= 0 {
		return domain.ZeroMoney(), nil
	}
	days := daysInclusive(periodStart, periodEnd)
	return domain.InterestOverDays(averageBalance, s.cfg.AnnualRatePercent, days)
}

// AggregateTransactions buckets the transactions by type code and sums each
// bucket at scale. Records with no amount contribute to no bucket and not to
// the total; they are tolerated, not rejected.
func (s *BillingService) AggregateTransactions(txns []domain.Transaction) (domain.CategoryTotals, error) {
	var totals domain.CategoryTotals
	var err error
	for _, txn := range txns {
		if txn.Amount == nil {
			continue
		}
		amount := *txn.Amount
		switch txn.TypeCode.Category() {
		case domain.CategoryPayments:
			totals.Payments, err = totals.Payments.Add(amount)
		case domain.CategoryInterest:
			totals.Interest, err = totals.Interest.Add(amount)
		case domain.CategoryFees:
			totals.Fees, err = totals.Fees.Add(amount)
		default:
			totals.Purchases, err = totals.Purchases.Add(amount)
		}
		if err != nil {
			return domain.CategoryTotals{}, err
		}
		totals.Total, err = totals.Total.Add(amount)
		if err != nil {
			return domain.CategoryTotals{}, err
		}
	}
	return totals, nil
}

// GenerateStatement assembles a statement whose period is the first through
// last calendar day of the month preceding statementDate. Identity checks
// fail fast before any computation.
func (s *BillingService) GenerateStatement(ctx context.Context, accountID string, statementDate time.Time) (*dto.StatementResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if fe := validation.AccountID(accountID); fe != nil {
		return nil, fmt.Errorf("%w: %s %s", apperrors.ErrValidation, fe.Field, fe.Message)
	}

	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to find account for statement", slog.String("error", err.Error()), slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.Status != domain.AccountActive {
		return nil, fmt.Errorf("%w: account %s is not active", apperrors.ErrBusinessRule, accountID)
	}

	periodStart, periodEnd := previousMonthBounds(statementDate)

	txns, err := s.txnRepo.FindTransactionsByAccountAndRange(ctx, accountID, periodStart, periodEnd)
	if err != nil {
		logger.Error("Failed to load period transactions", slog.String("error", err.Error()), slog.String("account_id", accountID))
		return nil, err
	}

	totals, err := s.AggregateTransactions(txns)
	if err != nil {
		return nil, err
	}
	interest, err := s.PeriodInterest(account.CurrentBalance, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}
	minimum, err := s.MinimumPayment(account.CurrentBalance)
	if err != nil {
		return nil, err
	}

	logger.Debug("Statement assembled",
		slog.String("account_id", accountID),
		slog.String("period_start", periodStart.Format("2006-01-02")),
		slog.String("period_end", periodEnd.Format("2006-01-02")),
		slog.Int("transaction_count", len(txns)),
	)

	return &dto.StatementResponse{
		AccountID:         accountID,
		PeriodStart:       periodStart.Format("2006-01-02"),
		PeriodEnd:         periodEnd.Format("2006-01-02"),
		CurrentBalance:    account.CurrentBalance,
		Totals:            totals,
		PeriodInterest:    interest,
		MinimumPaymentDue: minimum,
		GeneratedAt:       s.now().UTC(),
	}, nil
}

// previousMonthBounds returns the first and last calendar day of the month
// before t, handling year boundaries and leap Februaries.
func previousMonthBounds(t time.Time) (time.Time, time.Time) {
	firstOfCurrent := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	start := firstOfCurrent.AddDate(0, -1, 0)
	end := firstOfCurrent.AddDate(0, 0, -1)
	return start, end
}

// daysInclusive counts whole days in [from, to] including both endpoints.
func daysInclusive(from, to time.Time) int {
	from = time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, time.UTC)
	to = time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours()/24) + 1
}
