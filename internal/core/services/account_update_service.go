package services

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/validation"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/dto"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/middleware"
)

// AccountUpdateService sequences the account/customer mutation path: field
// validation, state-dependent business rules, the optimistic concurrency
// check, atomic persistence and audit assembly.
type AccountUpdateService struct {
	accountRepo  portsrepo.AccountRepository
	customerRepo portsrepo.CustomerRepository
	validator    *validation.Validator
	now          func() time.Time
}

// NewAccountUpdateService wires the update orchestrator.
func NewAccountUpdateService(accountRepo portsrepo.AccountRepository, customerRepo portsrepo.CustomerRepository, validator *validation.Validator) *AccountUpdateService {
	return &AccountUpdateService{
		accountRepo:  accountRepo,
		customerRepo: customerRepo,
		validator:    validator,
		now:          time.Now,
	}
}

// UpdateAccount applies a validated, conflict-checked mutation. Failures at
// the validation, business-rule and conflict steps come back as structured
// results with every field problem attached; store failures propagate as
// errors without masking.
func (s *AccountUpdateService) UpdateAccount(ctx context.Context, req dto.AccountUpdateRequest, actorID string) (*dto.AccountUpdateResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	// Step 1: parse the edited values and the as-read snapshot, aggregating
	// every failure. The account's customer reference is resolved after the
	// fetch, not taken from the edit.
	candidateAccount, parseErrs := req.Edited.Account.ToDomainAccount(req.AccountID, "", "edited.")
	candidateCustomer, custParseErrs := req.Edited.Customer.ToDomainCustomer("", "edited.")
	parseErrs = append(parseErrs, custParseErrs...)

	asRead, asReadErrs := req.AsRead.ToSnapshot("asRead.")
	parseErrs = append(parseErrs, asReadErrs...)

	if len(parseErrs) > 0 {
		return updateFailure(dto.CodeValidation, parseErrs), nil
	}

	// The edited-field rules are state-independent, so they run before any
	// fetch: a request with bad fields gets the full failure list even when
	// the account does not exist.
	if res := s.validator.AccountUpdate(candidateAccount, candidateCustomer); !res.Valid() {
		return updateFailure(dto.CodeValidation, res.Errors), nil
	}

	// Step 2: fetch current state. Not-found is its own outcome, distinct
	// from validation.
	currentAccount, err := s.accountRepo.FindAccountByID(ctx, req.AccountID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return updateFailure(dto.CodeNotFound, []validation.FieldError{{Field: "accountID", Message: "account does not exist"}}), nil
		}
		logger.Error("Failed to find account for update", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}
	currentCustomer, err := s.customerRepo.FindCustomerByID(ctx, currentAccount.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return updateFailure(dto.CodeNotFound, []validation.FieldError{{Field: "customerID", Message: "customer does not exist"}}), nil
		}
		logger.Error("Failed to find customer for update", slog.String("error", err.Error()), slog.String("customer_id", currentAccount.CustomerID))
		return nil, err
	}

	// Step 3: state-dependent business rules.
	if currentAccount.Status == domain.AccountInactive && candidateAccount.CreditLimit.GreaterThan(currentAccount.CreditLimit) {
		return updateFailure(dto.CodeBusinessRule, []validation.FieldError{
			{Field: "creditLimit", Message: "cannot be increased while the account is inactive"},
		}), nil
	}

	// Step 4: optimistic concurrency check against the freshly fetched
	// records. Any guarded-field divergence refuses persistence; the caller
	// must re-read and retry.
	guard := NewConcurrencyGuard()
	if guard.Compare(asRead, domain.SnapshotOf(*currentAccount, *currentCustomer)) == GuardConflicted {
		logger.Warn("Concurrent edit detected", slog.String("account_id", req.AccountID), slog.Any("diverged_fields", guard.DivergedFields()))
		return conflictResult(guard.DivergedFields()), nil
	}

	// Step 5: apply the edit and persist both records atomically.
	now := s.now().UTC()
	updatedAccount := *currentAccount
	updatedAccount.Status = candidateAccount.Status
	updatedAccount.CreditLimit = candidateAccount.CreditLimit
	updatedAccount.CashCreditLimit = candidateAccount.CashCreditLimit
	updatedAccount.ExpiryDate = candidateAccount.ExpiryDate
	updatedAccount.LastUpdatedAt = now
	updatedAccount.LastUpdatedBy = actorID

	updatedCustomer := *currentCustomer
	updatedCustomer.FirstName = candidateCustomer.FirstName
	updatedCustomer.MiddleName = candidateCustomer.MiddleName
	updatedCustomer.LastName = candidateCustomer.LastName
	updatedCustomer.AddressLine1 = candidateCustomer.AddressLine1
	updatedCustomer.AddressLine2 = candidateCustomer.AddressLine2
	updatedCustomer.City = candidateCustomer.City
	updatedCustomer.StateCode = candidateCustomer.StateCode
	updatedCustomer.ZIPCode = candidateCustomer.ZIPCode
	updatedCustomer.PhoneNumber = candidateCustomer.PhoneNumber
	updatedCustomer.SSN = candidateCustomer.SSN
	updatedCustomer.DateOfBirth = candidateCustomer.DateOfBirth
	updatedCustomer.FICOScore = candidateCustomer.FICOScore
	updatedCustomer.LastUpdatedAt = now
	updatedCustomer.LastUpdatedBy = actorID

	changes := changedFields(*currentAccount, updatedAccount, *currentCustomer, updatedCustomer)

	// The store re-reads both rows under lock and compares against asRead
	// before writing, so an edit that lands between the fetch above and the
	// commit still surfaces as a conflict instead of a lost update.
	diverged, err := s.accountRepo.UpdateAccountAndCustomer(ctx, updatedAccount, updatedCustomer, asRead)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			logger.Warn("Concurrent edit detected at commit", slog.String("account_id", req.AccountID), slog.Any("diverged_fields", diverged))
			return conflictResult(diverged), nil
		}
		logger.Error("Failed to persist account update", slog.String("error", err.Error()), slog.String("account_id", req.AccountID))
		return nil, err
	}

	logger.Info("Account updated", slog.String("account_id", req.AccountID), slog.Int("changed_fields", len(changes)))

	return &dto.AccountUpdateResult{
		Success:  true,
		Account:  dto.ToAccountResponse(&updatedAccount),
		Customer: dto.ToCustomerResponse(&updatedCustomer),
		Audit: &dto.AuditDTO{
			At:      now,
			ActorID: actorID,
			Changes: changes,
		},
	}, nil
}

func conflictResult(diverged []string) *dto.AccountUpdateResult {
	failures := make([]validation.FieldError, len(diverged))
	for i, field := range diverged {
		failures[i] = validation.FieldError{Field: field, Message: "changed since the record was read"}
	}
	return updateFailure(dto.CodeConflict, failures)
}

func updateFailure(code string, failures []validation.FieldError) *dto.AccountUpdateResult {
	return &dto.AccountUpdateResult{
		Success:   false,
		ErrorCode: code,
		Failures:  failures,
	}
}

// changedFields lists every guarded field whose value actually changed, with
// old and new rendered for the audit trail.
func changedFields(oldAcc, newAcc domain.Account, oldCust, newCust domain.Customer) []domain.FieldChange {
	var changes []domain.FieldChange
	add := func(field, oldVal, newVal string) {
		if oldVal != newVal {
			changes = append(changes, domain.FieldChange{Field: field, Old: oldVal, New: newVal})
		}
	}

	add("account.status", string(oldAcc.Status), string(newAcc.Status))
	add("account.creditLimit", oldAcc.CreditLimit.String(), newAcc.CreditLimit.String())
	add("account.cashCreditLimit", oldAcc.CashCreditLimit.String(), newAcc.CashCreditLimit.String())
	add("account.expiryDate", oldAcc.ExpiryDate.Format("2006-01-02"), newAcc.ExpiryDate.Format("2006-01-02"))

	add("customer.firstName", oldCust.FirstName, newCust.FirstName)
	add("customer.middleName", oldCust.MiddleName, newCust.MiddleName)
	add("customer.lastName", oldCust.LastName, newCust.LastName)
	add("customer.addressLine1", oldCust.AddressLine1, newCust.AddressLine1)
	add("customer.addressLine2", oldCust.AddressLine2, newCust.AddressLine2)
	add("customer.city", oldCust.City, newCust.City)
	add("customer.stateCode", oldCust.StateCode, newCust.StateCode)
	add("customer.zipCode", oldCust.ZIPCode, newCust.ZIPCode)
	add("customer.phoneNumber", oldCust.PhoneNumber, newCust.PhoneNumber)
	add("customer.ssn", oldCust.SSN, newCust.SSN)
	add("customer.dateOfBirth", oldCust.DateOfBirth.Format("2006-01-02"), newCust.DateOfBirth.Format("2006-01-02"))
	add("customer.ficoScore", strconv.Itoa(oldCust.FICOScore), strconv.Itoa(newCust.FICOScore))

	return changes
}
