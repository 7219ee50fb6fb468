package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/services"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type AccountUpdateServiceTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCustomerRepo *MockCustomerRepository
	service          *services.AccountUpdateService
}

// updateNow pins the validator clock so expiry and age rules are stable.
var updateNow = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)

func (suite *AccountUpdateServiceTestSuite) SetupTest() {
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	validator := validation.New(validation.Options{
		Now: func() time.Time { return updateNow },
	})
	suite.service = services.NewAccountUpdateService(suite.mockAccountRepo, suite.mockCustomerRepo, validator)
}

// currentRecords returns the persisted account/customer pair the mocks serve.
func currentRecords() (*domain.Account, *domain.Customer) {
	account := &domain.Account{
		AccountID:       "12345678901",
		Status:          domain.AccountActive,
		CurrentBalance:  domain.MustMoney("1200.00"),
		CreditLimit:     domain.MustMoney("5000.00"),
		CashCreditLimit: domain.MustMoney("1000.00"),
		ExpiryDate:      time.Date(2028, time.June, 30, 0, 0, 0, 0, time.UTC),
		CustomerID:      "123456789",
	}
	customer := &domain.Customer{
		CustomerID:   "123456789",
		FirstName:    "Jane",
		LastName:     "Doe",
		AddressLine1: "1 Main St",
		City:         "Sacramento",
		StateCode:    "CA",
		ZIPCode:      "94203",
		PhoneNumber:  "212-555-0199",
		SSN:          "123-45-6789",
		DateOfBirth:  time.Date(1980, time.June, 1, 0, 0, 0, 0, time.UTC),
		FICOScore:    700,
	}
	return account, customer
}

// matchingRequest builds a request whose as-read state mirrors the current
// records and whose edit re-submits them unchanged.
func matchingRequest() dto.AccountUpdateRequest {
	state := dto.RecordStateDTO{
		Account: dto.AccountFieldsDTO{
			Status:          "ACTIVE",
			CreditLimit:     domain.MustMoney("5000.00"),
			CashCreditLimit: domain.MustMoney("1000.00"),
			ExpiryDate:      "2028-06-30",
		},
		Customer: dto.CustomerFieldsDTO{
			FirstName:    "Jane",
			LastName:     "Doe",
			AddressLine1: "1 Main St",
			City:         "Sacramento",
			StateCode:    "CA",
			ZIPCode:      "94203",
			PhoneNumber:  "212-555-0199",
			SSN:          "123-45-6789",
			DateOfBirth:  "1980-06-01",
			FICOScore:    700,
		},
	}
	return dto.AccountUpdateRequest{
		AccountID: "12345678901",
		Edited:    state,
		AsRead:    state,
	}
}

func (suite *AccountUpdateServiceTestSuite) expectFetch(account *domain.Account, customer *domain.Customer) {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, account.AccountID).Return(account, nil).Once()
	suite.mockCustomerRepo.On("FindCustomerByID", mock.Anything, customer.CustomerID).Return(customer, nil).Once()
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_Success() {
	account, customer := currentRecords()
	suite.expectFetch(account, customer)

	req := matchingRequest()
	req.Edited.Account.CreditLimit = domain.MustMoney("6000.00")
	req.Edited.Customer.FirstName = "Janet"

	suite.mockAccountRepo.On("UpdateAccountAndCustomer", mock.Anything,
		mock.MatchedBy(func(a domain.Account) bool {
			return a.CreditLimit.Equal(domain.MustMoney("6000.00")) &&
				a.CurrentBalance.Equal(domain.MustMoney("1200.00")) && // balance untouched by edits
				a.LastUpdatedBy == "admin-1"
		}),
		mock.MatchedBy(func(c domain.Customer) bool {
			return c.FirstName == "Janet" && c.LastUpdatedBy == "admin-1"
		}),
		mock.AnythingOfType("domain.RecordSnapshot"),
	).Return(nil, nil).Once()

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.True(result.Success)
	suite.Equal("6000.00", result.Account.CreditLimit.String())
	suite.Equal("Janet", result.Customer.FirstName)

	suite.Require().NotNil(result.Audit)
	suite.Equal("admin-1", result.Audit.ActorID)
	suite.Require().Len(result.Audit.Changes, 2)
	fields := []string{result.Audit.Changes[0].Field, result.Audit.Changes[1].Field}
	suite.ElementsMatch(fields, []string{"account.creditLimit", "customer.firstName"})

	suite.mockAccountRepo.AssertExpectations(suite.T())
	suite.mockCustomerRepo.AssertExpectations(suite.T())
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_ParseFailureShortCircuits() {
	req := matchingRequest()
	req.Edited.Account.ExpiryDate = "06/30/2028"

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeValidation, result.ErrorCode)
	suite.Require().Len(result.Failures, 1)
	suite.Equal("edited.expiryDate", result.Failures[0].Field)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_CollectsEveryValidationFailure() {
	req := matchingRequest()
	req.Edited.Account.CreditLimit = domain.MustMoney("-100.00")
	req.Edited.Customer.SSN = "666-45-6789"
	req.Edited.Customer.FICOScore = 200

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeValidation, result.ErrorCode)

	fields := make([]string, 0, len(result.Failures))
	for _, fe := range result.Failures {
		fields = append(fields, fe.Field)
	}
	// The negative credit limit also strands the cash limit above it, so
	// both limit fields report.
	suite.ElementsMatch(fields, []string{"creditLimit", "cashCreditLimit", "ssn", "ficoScore"})
	// Field rules run before any lookup, so a bad edit against a missing
	// account still reports every field failure.
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "FindAccountByID", mock.Anything, mock.Anything)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountAndCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_InactiveCreditRaiseRefused() {
	account, customer := currentRecords()
	account.Status = domain.AccountInactive
	suite.expectFetch(account, customer)

	req := matchingRequest()
	req.Edited.Account.Status = "INACTIVE"
	req.AsRead.Account.Status = "INACTIVE"
	req.Edited.Account.CreditLimit = domain.MustMoney("7500.00")

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeBusinessRule, result.ErrorCode)
	suite.Require().Len(result.Failures, 1)
	suite.Equal("creditLimit", result.Failures[0].Field)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountAndCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_ConflictRefusesPersistence() {
	account, customer := currentRecords()
	// Another session changed the phone number after this caller read.
	customer.PhoneNumber = "212-555-0300"
	suite.expectFetch(account, customer)

	req := matchingRequest()
	req.Edited.Customer.PhoneNumber = "212-555-0300" // the edit itself is valid

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeConflict, result.ErrorCode)
	suite.Require().Len(result.Failures, 1)
	suite.Equal("customer.phoneNumber", result.Failures[0].Field)
	suite.Equal("changed since the record was read", result.Failures[0].Message)
	suite.mockAccountRepo.AssertNotCalled(suite.T(), "UpdateAccountAndCustomer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_CommitTimeConflictRefused() {
	account, customer := currentRecords()
	suite.expectFetch(account, customer)

	req := matchingRequest()
	req.Edited.Account.CreditLimit = domain.MustMoney("6000.00")

	// The records matched when fetched, but another session slipped a credit
	// limit change in before the store took its row locks.
	suite.mockAccountRepo.On("UpdateAccountAndCustomer", mock.Anything, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.Customer"), mock.AnythingOfType("domain.RecordSnapshot")).
		Return([]string{"account.creditLimit"}, fmt.Errorf("%w: account.creditLimit", apperrors.ErrConflict)).Once()

	result, err := suite.service.UpdateAccount(context.Background(), req, "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeConflict, result.ErrorCode)
	suite.Require().Len(result.Failures, 1)
	suite.Equal("account.creditLimit", result.Failures[0].Field)
	suite.Equal("changed since the record was read", result.Failures[0].Message)
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_AccountNotFound() {
	suite.mockAccountRepo.On("FindAccountByID", mock.Anything, "12345678901").
		Return(nil, fmt.Errorf("%w: account 12345678901", apperrors.ErrNotFound)).Once()

	result, err := suite.service.UpdateAccount(context.Background(), matchingRequest(), "admin-1")

	suite.Require().NoError(err)
	suite.False(result.Success)
	suite.Equal(dto.CodeNotFound, result.ErrorCode)
}

func (suite *AccountUpdateServiceTestSuite) TestUpdateAccount_StoreErrorPropagates() {
	account, customer := currentRecords()
	suite.expectFetch(account, customer)
	storeErr := fmt.Errorf("connection reset")
	suite.mockAccountRepo.On("UpdateAccountAndCustomer", mock.Anything, mock.AnythingOfType("domain.Account"), mock.AnythingOfType("domain.Customer"), mock.AnythingOfType("domain.RecordSnapshot")).
		Return(nil, storeErr).Once()

	result, err := suite.service.UpdateAccount(context.Background(), matchingRequest(), "admin-1")

	suite.Require().ErrorIs(err, storeErr)
	suite.Nil(result)
}

func TestAccountUpdateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(AccountUpdateServiceTestSuite))
}
