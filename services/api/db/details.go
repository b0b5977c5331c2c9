package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
)

const detailColumns = `id, product_control_id, fecha, peso, tipo_control`

const listDetailsSQL = `
    SELECT ` + detailColumns + `
    FROM qc.product_details
    WHERE product_control_id = $1
    ORDER BY fecha, id
`

const listAllDetailsSQL = `
    SELECT ` + detailColumns + `
    FROM qc.product_details
    ORDER BY fecha, id
`

const insertDetailSQL = `
    INSERT INTO qc.product_details (id, product_control_id, fecha, peso, tipo_control)
    VALUES ($1, $2, $3, $4, $5)
`

func scanDetails(rows pgx.Rows) ([]model.ProductDetail, error) {
	defer rows.Close()

	details := make([]model.ProductDetail, 0)
	for rows.Next() {
		var d model.ProductDetail
		var fecha time.Time
		if err := rows.Scan(&d.ID, &d.ProductControlID, &fecha, &d.Peso, &d.TipoControl); err != nil {
			return nil, err
		}
		d.Fecha = control.FormatTimestamp(fecha)
		details = append(details, d)
	}
	return details, rows.Err()
}

// ListProductDetails returns the stored readings of one product, oldest first.
func (s *Store) ListProductDetails(ctx context.Context, productID string) ([]model.ProductDetail, error) {
	rows, err := s.pool.Query(ctx, listDetailsSQL, productID)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// ListAllProductDetails returns the readings of every product.
func (s *Store) ListAllProductDetails(ctx context.Context) ([]model.ProductDetail, error) {
	rows, err := s.pool.Query(ctx, listAllDetailsSQL)
	if err != nil {
		return nil, err
	}
	return scanDetails(rows)
}

// CreateProductDetails writes all readings in one batch inside a
// transaction; either every record is stored or none is.
func (s *Store) CreateProductDetails(ctx context.Context, inputs []model.ProductDetailInput) (model.SaveResult, error) {
	if len(inputs) == 0 {
		return model.SaveResult{}, nil
	}

	batch := &pgx.Batch{}
	for _, in := range inputs {
		fecha, err := control.ParseTimestamp(in.Fecha)
		if err != nil {
			return model.SaveResult{}, &model.ValidationError{Message: "Fecha inválida: " + in.Fecha}
		}
		batch.Queue(insertDetailSQL, uuid.NewString(), in.ProductControlID, fecha.UTC(), in.Peso, in.TipoControl)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return model.SaveResult{}, err
	}
	defer tx.Rollback(ctx)

	res := tx.SendBatch(ctx, batch)
	for i := range inputs {
		if _, err := res.Exec(); err != nil {
			res.Close()
			return model.SaveResult{Errors: len(inputs)}, fmt.Errorf("insert detail %d: %w", i+1, err)
		}
	}
	if err := res.Close(); err != nil {
		return model.SaveResult{Errors: len(inputs)}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return model.SaveResult{Errors: len(inputs)}, err
	}
	return model.SaveResult{Saved: len(inputs)}, nil
}
