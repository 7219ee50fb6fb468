package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/apperrors"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/domain"
	portsrepo "github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/core/ports/repositories"
	"github.com/blitzedNdun/aws-carddemo-blitzy-sub001/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxCustomerRepository persists customers in PostgreSQL.
type PgxCustomerRepository struct {
	BaseRepository
}

// NewCustomerRepository creates a new repository for customer data.
func NewCustomerRepository(pool *pgxpool.Pool) *PgxCustomerRepository {
	return &PgxCustomerRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.CustomerRepository = (*PgxCustomerRepository)(nil)

func toModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:   d.CustomerID,
		FirstName:    d.FirstName,
		MiddleName:   d.MiddleName,
		LastName:     d.LastName,
		AddressLine1: d.AddressLine1,
		AddressLine2: d.AddressLine2,
		City:         d.City,
		StateCode:    d.StateCode,
		ZIPCode:      d.ZIPCode,
		PhoneNumber:  d.PhoneNumber,
		SSN:          d.SSN,
		DateOfBirth:  d.DateOfBirth,
		FICOScore:    d.FICOScore,
		AuditFields: models.AuditFields{
			CreatedAt:     d.CreatedAt,
			CreatedBy:     d.CreatedBy,
			LastUpdatedAt: d.LastUpdatedAt,
			LastUpdatedBy: d.LastUpdatedBy,
		},
	}
}

func toDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID:   m.CustomerID,
		FirstName:    m.FirstName,
		MiddleName:   m.MiddleName,
		LastName:     m.LastName,
		AddressLine1: m.AddressLine1,
		AddressLine2: m.AddressLine2,
		City:         m.City,
		StateCode:    m.StateCode,
		ZIPCode:      m.ZIPCode,
		PhoneNumber:  m.PhoneNumber,
		SSN:          m.SSN,
		DateOfBirth:  m.DateOfBirth,
		FICOScore:    m.FICOScore,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// SaveCustomer inserts a new customer.
func (r *PgxCustomerRepository) SaveCustomer(ctx context.Context, customer domain.Customer) error {
	m := toModelCustomer(customer)

	query := `
		INSERT INTO customers (customer_id, first_name, middle_name, last_name, address_line1, address_line2, city, state_code, zip_code, phone_number, ssn, date_of_birth, fico_score, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.CustomerID,
		m.FirstName,
		m.MiddleName,
		m.LastName,
		m.AddressLine1,
		m.AddressLine2,
		m.City,
		m.StateCode,
		m.ZIPCode,
		m.PhoneNumber,
		m.SSN,
		m.DateOfBirth,
		m.FICOScore,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: customer with ID %s already exists", apperrors.ErrDuplicate, m.CustomerID)
		}
		return fmt.Errorf("failed to save customer %s: %w", m.CustomerID, err)
	}
	return nil
}

const customerSelectQuery = `
	SELECT customer_id, first_name, middle_name, last_name, address_line1, address_line2, city, state_code, zip_code, phone_number, ssn, date_of_birth, fico_score, created_at, created_by, last_updated_at, last_updated_by
	FROM customers
	WHERE customer_id = $1`

func scanCustomer(row pgx.Row) (models.Customer, error) {
	var m models.Customer
	err := row.Scan(
		&m.CustomerID,
		&m.FirstName,
		&m.MiddleName,
		&m.LastName,
		&m.AddressLine1,
		&m.AddressLine2,
		&m.City,
		&m.StateCode,
		&m.ZIPCode,
		&m.PhoneNumber,
		&m.SSN,
		&m.DateOfBirth,
		&m.FICOScore,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindCustomerByID retrieves a customer by its 9-digit identifier.
func (r *PgxCustomerRepository) FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	m, err := scanCustomer(r.Pool.QueryRow(ctx, customerSelectQuery, customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return nil, fmt.Errorf("failed to find customer %s: %w", customerID, err)
	}
	customer := toDomainCustomer(m)
	return &customer, nil
}

// lockCustomer re-reads a customer inside tx with a row lock, pairing with
// lockAccount for the guarded pair-write.
func lockCustomer(ctx context.Context, tx pgx.Tx, customerID string) (domain.Customer, error) {
	m, err := scanCustomer(tx.QueryRow(ctx, customerSelectQuery+" FOR UPDATE", customerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Customer{}, fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customerID)
		}
		return domain.Customer{}, fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}
	return toDomainCustomer(m), nil
}

// UpdateCustomer updates an existing customer's details.
func (r *PgxCustomerRepository) UpdateCustomer(ctx context.Context, customer domain.Customer) error {
	tag, err := r.Pool.Exec(ctx, customerUpdateQuery, customerUpdateArgs(toModelCustomer(customer))...)
	if err != nil {
		return fmt.Errorf("failed to update customer %s: %w", customer.CustomerID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: customer %s", apperrors.ErrNotFound, customer.CustomerID)
	}
	return nil
}

const customerUpdateQuery = `
	UPDATE customers
	SET first_name = $2,
	    middle_name = $3,
	    last_name = $4,
	    address_line1 = $5,
	    address_line2 = $6,
	    city = $7,
	    state_code = $8,
	    zip_code = $9,
	    phone_number = $10,
	    ssn = $11,
	    date_of_birth = $12,
	    fico_score = $13,
	    last_updated_at = $14,
	    last_updated_by = $15
	WHERE customer_id = $1;
`

func customerUpdateArgs(m models.Customer) []any {
	return []any{
		m.CustomerID,
		m.FirstName,
		m.MiddleName,
		m.LastName,
		m.AddressLine1,
		m.AddressLine2,
		m.City,
		m.StateCode,
		m.ZIPCode,
		m.PhoneNumber,
		m.SSN,
		m.DateOfBirth,
		m.FICOScore,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}
