package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxAccountRepository persists accounts (and, for the atomic update path,
// their customers) in PostgreSQL.
type PgxAccountRepository struct {
	BaseRepository
}

// NewAccountRepository creates a new repository for account data.
func NewAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepository
var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

// toModelAccount converts a domain.Account for DB storage.
func toModelAccount(d domain.Account) models.Account {
	return models.Account{
		AccountID:       d.AccountID,
		Status:          string(d.Status),
		CurrentBalance:  d.CurrentBalance.Decimal(),
		CreditLimit:     d.CreditLimit.Decimal(),
		CashCreditLimit: d.CashCreditLimit.Decimal(),
		ExpiryDate:      d.ExpiryDate,
		CustomerID:      d.CustomerID,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

// toDomainAccount converts a DB row back to the domain type, re-applying the
// monetary scale and bounds.
func toDomainAccount(m models.Account) (domain.Account, error) {
	balance, err := domain.NewMoney(m.CurrentBalance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s balance: %w", m.AccountID, err)
	}
	creditLimit, err := domain.NewMoney(m.CreditLimit)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s credit limit: %w", m.AccountID, err)
	}
	cashLimit, err := domain.NewMoney(m.CashCreditLimit)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s cash credit limit: %w", m.AccountID, err)
	}
	return domain.Account{
		AccountID:       m.AccountID,
		Status:          domain.AccountStatus(m.Status),
		CurrentBalance:  balance,
		CreditLimit:     creditLimit,
		CashCreditLimit: cashLimit,
		ExpiryDate:      m.ExpiryDate,
		CustomerID:      m.CustomerID,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := toModelAccount(account)

	query := `
		INSERT INTO accounts (account_id, status, current_balance, credit_limit, cash_credit_limit, expiry_date, customer_id, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Status,
		m.CurrentBalance,
		m.CreditLimit,
		m.CashCreditLimit,
		m.ExpiryDate,
		m.CustomerID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique violation
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, m.AccountID)
		}
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, err)
	}
	return nil
}

const accountSelectQuery = `
	SELECT account_id, status, current_balance, credit_limit, cash_credit_limit, expiry_date, customer_id, created_at, created_by, last_updated_at, last_updated_by
	FROM accounts
	WHERE account_id = $1`

func scanAccount(row pgx.Row) (models.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.Status,
		&m.CurrentBalance,
		&m.CreditLimit,
		&m.CashCreditLimit,
		&m.ExpiryDate,
		&m.CustomerID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindAccountByID retrieves an account by its 11-digit identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	m, err := scanAccount(r.Pool.QueryRow(ctx, accountSelectQuery, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return nil, fmt.Errorf("failed to find account %s: %w", accountID, err)
	}
	account, err := toDomainAccount(m)
	if err != nil {
		return nil, err
	}
	return &account, nil
}

// lockAccount re-reads an account inside tx with a row lock so the guarded
// fields cannot move before the transaction commits.
func lockAccount(ctx context.Context, tx pgx.Tx, accountID string) (domain.Account, error) {
	m, err := scanAccount(tx.QueryRow(ctx, accountSelectQuery+" FOR UPDATE", accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Account{}, fmt.Errorf("%w: account %s", apperrors.ErrNotFound, accountID)
		}
		return domain.Account{}, fmt.Errorf("failed to lock account %s: %w", accountID, err)
	}
	return toDomainAccount(m)
}

// UpdateAccount updates an existing account's mutable details.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	tag, err := r.Pool.Exec(ctx, accountUpdateQuery, accountUpdateArgs(toModelAccount(account))...)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}
	return nil
}

// UpdateAccountAndCustomer re-reads both records under row locks, compares
// the guarded fields against the caller's as-read snapshot and persists the
// pair only when nothing diverged, all inside one transaction. A write that
// lands between the caller's read and this commit therefore still surfaces
// as a conflict rather than being overwritten.
func (r *PgxAccountRepository) UpdateAccountAndCustomer(ctx context.Context, account domain.Account, customer domain.Customer, asRead domain.RecordSnapshot) ([]string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	currentAccount, err := lockAccount(ctx, tx, account.AccountID)
	if err != nil {
		return nil, err
	}
	currentCustomer, err := lockCustomer(ctx, tx, customer.CustomerID)
	if err != nil {
		return nil, err
	}

	if diverged := asRead.Diff(domain.SnapshotOf(currentAccount, currentCustomer)); len(diverged) > 0 {
		return diverged, fmt.Errorf("%w: %s", apperrors.ErrConflict, strings.Join(diverged, ", "))
	}

	if _, err := tx.Exec(ctx, accountUpdateQuery, accountUpdateArgs(toModelAccount(account))...); err != nil {
		return nil, fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if _, err := tx.Exec(ctx, customerUpdateQuery, customerUpdateArgs(toModelCustomer(customer))...); err != nil {
		return nil, fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}

	return nil, r.Commit(ctx, tx)
}

const accountUpdateQuery = `
	UPDATE accounts
	SET status = $2,
	    current_balance = $3,
	    credit_limit = $4,
	    cash_credit_limit = $5,
	    expiry_date = $6,
	    last_updated_at = $7,
	    last_updated_by = $8
	WHERE account_id = $1;
`

func accountUpdateArgs(m models.Account) []any {
	return []any{
		m.AccountID,
		m.Status,
		m.CurrentBalance,
		m.CreditLimit,
		m.CashCreditLimit,
		m.ExpiryDate,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}
