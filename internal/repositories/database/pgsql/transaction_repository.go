package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/models"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// PgxTransactionRepository persists transactions in PostgreSQL.
type PgxTransactionRepository struct {
	BaseRepository
}

// NewTransactionRepository creates a new repository for transaction data.
func NewTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

func toModelTransaction(d domain.Transaction) models.Transaction {
	var amount *decimal.Decimal
	if d.Amount != nil {
		v := d.Amount.Decimal()
		amount = &v
	}
	return models.Transaction{
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		TypeCode:      string(d.TypeCode),
		Amount:        amount,
		Description:   d.Description,
		OccurredAt:    d.OccurredAt,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	var amount *domain.Money
	if m.Amount != nil {
		v, err := domain.NewMoney(*m.Amount)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("transaction %s amount: %w", m.TransactionID, err)
		}
		amount = &v
	}
	return domain.Transaction{
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		TypeCode:      domain.TransactionType(m.TypeCode),
		Amount:        amount,
		Description:   m.Description,
		OccurredAt:    m.OccurredAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}, nil
}

const transactionInsertQuery = `
	INSERT INTO transactions (transaction_id, account_id, type_code, amount, description, occurred_at, created_at, created_by, last_updated_at, last_updated_by)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

func transactionInsertArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.AccountID,
		m.TypeCode,
		m.Amount,
		m.Description,
		m.OccurredAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// SaveTransaction inserts a new transaction.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := toModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, transactionInsertQuery, transactionInsertArgs(m)...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

// SavePaymentWithBalance inserts the payment transaction and writes the
// account's new balance inside one database transaction.
func (r *PgxTransactionRepository) SavePaymentWithBalance(ctx context.Context, account domain.Account, txn domain.Transaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = r.Rollback(ctx, tx) }()

	if _, err := tx.Exec(ctx, transactionInsertQuery, transactionInsertArgs(toModelTransaction(txn))...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}

	tag, err := tx.Exec(ctx, accountUpdateQuery, accountUpdateArgs(toModelAccount(account))...)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", account.AccountID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: account %s", apperrors.ErrNotFound, account.AccountID)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionsByAccountAndRange retrieves the transactions posted to an
// account within [from, to], ordered by occurrence time.
func (r *PgxTransactionRepository) FindTransactionsByAccountAndRange(ctx context.Context, accountID string, from, to time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT transaction_id, account_id, type_code, amount, description, occurred_at, created_at, created_by, last_updated_at, last_updated_by
		FROM transactions
		WHERE account_id = $1 AND occurred_at >= $2 AND occurred_at <= $3
		ORDER BY occurred_at, transaction_id;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for account %s: %w", accountID, err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.AccountID,
			&m.TypeCode,
			&m.Amount,
			&m.Description,
			&m.OccurredAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txn, err := toDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read transactions for account %s: %w", accountID, err)
	}
	return txns, nil
}
