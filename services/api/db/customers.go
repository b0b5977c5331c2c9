package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

const customerColumns = `id, first_name, last_name, email, phone, is_active`

const listCustomersSQL = `
    SELECT ` + customerColumns + `
    FROM qc.customers
    ORDER BY last_name, first_name, id
`

const getCustomerSQL = `
    SELECT ` + customerColumns + `
    FROM qc.customers
    WHERE id = $1
`

const insertCustomerSQL = `
    INSERT INTO qc.customers (id, first_name, last_name, email, phone)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING ` + customerColumns

const updateCustomerSQL = `
    UPDATE qc.customers
    SET first_name = $2, last_name = $3, email = $4, phone = $5, updated_at = NOW()
    WHERE id = $1
    RETURNING ` + customerColumns

const setCustomerActiveSQL = `
    UPDATE qc.customers
    SET is_active = $2, updated_at = NOW()
    WHERE id = $1
`

func scanCustomer(row pgx.Row) (model.Customer, error) {
	var c model.Customer
	err := row.Scan(&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.Phone, &c.Active)
	return c, err
}

// ListCustomers returns every customer.
func (s *Store) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	rows, err := s.pool.Query(ctx, listCustomersSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	customers := make([]model.Customer, 0)
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

func (s *Store) GetCustomer(ctx context.Context, id string) (model.Customer, error) {
	c, err := scanCustomer(s.pool.QueryRow(ctx, getCustomerSQL, id))
	return c, notFound(err)
}

func (s *Store) CreateCustomer(ctx context.Context, in model.CustomerInput) (model.Customer, error) {
	return scanCustomer(s.pool.QueryRow(ctx, insertCustomerSQL,
		uuid.NewString(), in.FirstName, in.LastName, in.Email, in.Phone))
}

func (s *Store) UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (model.Customer, error) {
	c, err := scanCustomer(s.pool.QueryRow(ctx, updateCustomerSQL,
		id, in.FirstName, in.LastName, in.Email, in.Phone))
	return c, notFound(err)
}

// SetCustomerActive backs the activate and deactivate endpoints.
func (s *Store) SetCustomerActive(ctx context.Context, id string, active bool) error {
	return affected(s.pool.Exec(ctx, setCustomerActiveSQL, id, active))
}
