package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type BillingServiceTestSuite struct {
	suite.Suite
	mockAccountRepo *MockAccountRepository
	mockTxnRepo     *MockTransactionRepository
	service         *services.BillingService
}

func (suite *BillingServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.service = services.NewBillingService(suite.mockAccountRepo, suite.mockTxnRepo, services.DefaultBillingConfig())
}

func (suite *BillingServiceTestSuite) TestMinimumPayment() {
	tests := []struct {
		name    string
		balance string
		want    string
	}{
		{name: "zero balance owes nothing", balance: "0.00", want: "0.00"},
		{name: "credit balance owes nothing", balance: "-50.00", want: "0.00"},
		{name: "percentage above floor", balance: "5000.00", want: "100.00"},
		{name: "floor above percentage", balance: "500.00", want: "25.00"},
		{name: "minimum capped at balance", balance: "15.00", want: "15.00"},
		{name: "percentage rounds at scale", balance: "1333.33", want: "26.67"},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			got, err := suite.service.MinimumPayment(domain.MustMoney(tt.balance))
			suite.Require().NoError(err)
			suite.Equal(tt.want, got.String())
		})
	}
}

func (suite *BillingServiceTestSuite) TestPeriodInterest() {
	start := time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, time.July, 31, 0, 0, 0, 0, time.UTC)

	// 1000.00 * 18.99 * 31 / 36500, rounded once.
	got, err := suite.service.PeriodInterest(domain.MustMoney("1000.00"), start, end)
	suite.Require().NoError(err)
	suite.Equal("16.13", got.String())

	got, err = suite.service.PeriodInterest(domain.ZeroMoney(), start, end)
	suite.Require().NoError(err)
	suite.Equal("0.00", got.String())

	got, err = suite.service.PeriodInterest(domain.MustMoney("-200.00"), start, end)
	suite.Require().NoError(err)
	suite.Equal("0.00", got.String())
}

func moneyPtr(s string) *domain.Money {
	m := domain.MustMoney(s)
	return &m
}

func (suite *BillingServiceTestSuite) TestAggregateTransactions() {
	txns := []domain.Transaction{
		{TypeCode: domain.TranTypePurchase, Amount: moneyPtr("250.00")},
		{TypeCode: domain.TranTypePayment, Amount: moneyPtr("150.00")},
		{TypeCode: domain.TranTypeInterest, Amount: moneyPtr("25.00")},
		{TypeCode: domain.TranTypeFee, Amount: moneyPtr("35.00")},
		{TypeCode: domain.TranTypePurchase, Amount: nil}, // amountless legacy row
		{TypeCode: "99", Amount: moneyPtr("10.00")},      // unknown code buckets as purchase
	}

	totals, err := suite.service.AggregateTransactions(txns)
	suite.Require().NoError(err)
	suite.Equal("260.00", totals.Purchases.String())
	suite.Equal("150.00", totals.Payments.String())
	suite.Equal("25.00", totals.Interest.String())
	suite.Equal("35.00", totals.Fees.String())
	suite.Equal("470.00", totals.Total.String())
}

func (suite *BillingServiceTestSuite) TestAggregateTransactions_Empty() {
	totals, err := suite.service.AggregateTransactions(nil)
	suite.Require().NoError(err)
	suite.Equal("0.00", totals.Total.String())
}

func (suite *BillingServiceTestSuite) TestGenerateStatement_Success() {
	ctx := context.Background()
	accountID := "12345678901"
	account := &domain.Account{
		AccountID:      accountID,
		Status:         domain.AccountActive,
		CurrentBalance: domain.MustMoney("1000.00"),
		CustomerID:     "123456789",
	}

	periodStart := time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2025, time.December, 31, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountAndRange", ctx, accountID, periodStart, periodEnd).
		Return([]domain.Transaction{
			{TransactionID: uuid.NewString(), TypeCode: domain.TranTypePurchase, Amount: moneyPtr("200.00")},
			{TransactionID: uuid.NewString(), TypeCode: domain.TranTypePayment, Amount: moneyPtr("50.00")},
		}, nil).Once()

	statementDate := time.Date(2026, time.January, 15, 9, 30, 0, 0, time.UTC)
	statement, err := suite.service.GenerateStatement(ctx, accountID, statementDate)

	suite.Require().NoError(err)
	suite.Require().NotNil(statement)
	suite.Equal(accountID, statement.AccountID)
	suite.Equal("2025-12-01", statement.PeriodStart)
	suite.Equal("2025-12-31", statement.PeriodEnd)
	suite.Equal("200.00", statement.Totals.Purchases.String())
	suite.Equal("50.00", statement.Totals.Payments.String())
	suite.Equal("250.00", statement.Totals.Total.String())
	// 1000.00 * 18.99 * 31 / 36500
	suite.Equal("16.13", statement.PeriodInterest.String())
	suite.Equal("25.00", statement.MinimumPaymentDue.String())

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *BillingServiceTestSuite) TestGenerateStatement_LeapFebruary() {
	ctx := context.Background()
	accountID := "12345678901"
	account := &domain.Account{
		AccountID:      accountID,
		Status:         domain.AccountActive,
		CurrentBalance: domain.ZeroMoney(),
	}

	periodStart := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)

	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()
	suite.mockTxnRepo.On("FindTransactionsByAccountAndRange", ctx, accountID, periodStart, periodEnd).
		Return([]domain.Transaction{}, nil).Once()

	statement, err := suite.service.GenerateStatement(ctx, accountID, time.Date(2024, time.March, 10, 0, 0, 0, 0, time.UTC))

	suite.Require().NoError(err)
	suite.Equal("2024-02-01", statement.PeriodStart)
	suite.Equal("2024-02-29", statement.PeriodEnd)
	suite.Equal("0.00", statement.PeriodInterest.String())
	suite.Equal("0.00", statement.MinimumPaymentDue.String())
}

func (suite *BillingServiceTestSuite) TestGenerateStatement_MalformedAccountID() {
	_, err := suite.service.GenerateStatement(context.Background(), "123", time.Now())
	suite.Require().ErrorIs(err, apperrors.ErrValidation)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestGenerateStatement_AccountNotFound() {
	ctx := context.Background()
	accountID := "12345678901"
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GenerateStatement(ctx, accountID, time.Now())
	suite.Require().ErrorIs(err, apperrors.ErrNotFound)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountAndRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *BillingServiceTestSuite) TestGenerateStatement_InactiveAccount() {
	ctx := context.Background()
	accountID := "12345678901"
	account := &domain.Account{AccountID: accountID, Status: domain.AccountSuspended}
	suite.mockAccountRepo.On("FindAccountByID", ctx, accountID).Return(account, nil).Once()

	_, err := suite.service.GenerateStatement(ctx, accountID, time.Now())
	suite.Require().ErrorIs(err, apperrors.ErrBusinessRule)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "FindTransactionsByAccountAndRange", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestBillingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BillingServiceTestSuite))
}
