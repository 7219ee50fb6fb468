package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/handlers"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock services ---

type MockUpdateSvc struct {
	mock.Mock
}

func (m *MockUpdateSvc) UpdateAccount(ctx context.Context, req dto.AccountUpdateRequest, actorID string) (*dto.AccountUpdateResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.AccountUpdateResult), args.Error(1)
}

type MockPaymentSvc struct {
	mock.Mock
}

func (m *MockPaymentSvc) ProcessPayment(ctx context.Context, req dto.PaymentRequest, actorID string) (*dto.PaymentResult, error) {
	args := m.Called(ctx, req, actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.PaymentResult), args.Error(1)
}

type MockBillingSvc struct {
	mock.Mock
}

func (m *MockBillingSvc) GenerateStatement(ctx context.Context, accountID string, statementDate time.Time) (*dto.StatementResponse, error) {
	args := m.Called(ctx, accountID, statementDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.StatementResponse), args.Error(1)
}

// --- Test Suite Setup ---

type PaymentHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockPayment *MockPaymentSvc
}

func (suite *PaymentHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.mockPayment = new(MockPaymentSvc)
	container := &services.Container{
		Update:  new(MockUpdateSvc),
		Payment: suite.mockPayment,
		Billing: new(MockBillingSvc),
	}
	suite.router = gin.New()
	handlers.RegisterRoutes(suite.router, &config.Config{}, container, nil)
}

func (suite *PaymentHandlerTestSuite) postPayment(body string, withActor bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/12345678901/payments", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if withActor {
		req.Header.Set("X-User-Id", "teller-7")
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_Success() {
	expected := &dto.PaymentResult{
		Success: true,
		Transaction: &dto.TransactionResponse{
			TransactionID: "txn-1",
			AccountID:     "12345678901",
			TypeCode:      "02",
		},
	}
	suite.mockPayment.On("ProcessPayment", mock.Anything,
		mock.MatchedBy(func(req dto.PaymentRequest) bool {
			// The path parameter wins over whatever account ID the body carries.
			return req.AccountID == "12345678901" && req.Amount == "250.00" && req.Confirmed
		}),
		"teller-7",
	).Return(expected, nil).Once()

	w := suite.postPayment(`{"amount":"250.00","confirmed":true}`, true)

	suite.Equal(http.StatusCreated, w.Code)
	var result dto.PaymentResult
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &result))
	suite.True(result.Success)
	suite.Equal("txn-1", result.Transaction.TransactionID)
	suite.mockPayment.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_MissingActorHeader() {
	w := suite.postPayment(`{"amount":"250.00","confirmed":true}`, false)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayment.AssertNotCalled(suite.T(), "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_MalformedBody() {
	w := suite.postPayment(`{"amount":`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayment.AssertNotCalled(suite.T(), "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_AmountWithThreeDecimals() {
	// The money2dp binding rule rejects before the service is reached.
	w := suite.postPayment(`{"amount":"10.005","confirmed":true}`, true)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockPayment.AssertNotCalled(suite.T(), "ProcessPayment", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_StatusByErrorCode() {
	tests := []struct {
		name       string
		code       string
		wantStatus int
	}{
		{name: "validation maps to 400", code: dto.CodeValidation, wantStatus: http.StatusBadRequest},
		{name: "business rule maps to 422", code: dto.CodeBusinessRule, wantStatus: http.StatusUnprocessableEntity},
		{name: "conflict maps to 409", code: dto.CodeConflict, wantStatus: http.StatusConflict},
		{name: "not found maps to 404", code: dto.CodeNotFound, wantStatus: http.StatusNotFound},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			suite.mockPayment.On("ProcessPayment", mock.Anything, mock.AnythingOfType("dto.PaymentRequest"), "teller-7").
				Return(&dto.PaymentResult{Success: false, ErrorCode: tt.code}, nil).Once()

			w := suite.postPayment(`{"amount":"250.00","confirmed":true}`, true)
			suite.Equal(tt.wantStatus, w.Code)
		})
	}
	suite.mockPayment.AssertExpectations(suite.T())
}

func (suite *PaymentHandlerTestSuite) TestProcessPayment_ServiceError() {
	suite.mockPayment.On("ProcessPayment", mock.Anything, mock.AnythingOfType("dto.PaymentRequest"), "teller-7").
		Return(nil, context.DeadlineExceeded).Once()

	w := suite.postPayment(`{"amount":"250.00","confirmed":true}`, true)
	suite.Equal(http.StatusInternalServerError, w.Code)
}

func TestPaymentHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(PaymentHandlerTestSuite))
}
