package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

const productColumns = `id, producto, nombre_cliente, marca, porcentaje_miga, peso_drenado, peso_envase, is_active`

const listProductsSQL = `
    SELECT ` + productColumns + `
    FROM qc.products
    ORDER BY producto, id
`

const getProductSQL = `
    SELECT ` + productColumns + `
    FROM qc.products
    WHERE id = $1
`

const insertProductSQL = `
    INSERT INTO qc.products (id, producto, nombre_cliente, marca, porcentaje_miga, peso_drenado, peso_envase)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    RETURNING ` + productColumns

const updateProductSQL = `
    UPDATE qc.products
    SET producto = $2, nombre_cliente = $3, marca = $4,
        porcentaje_miga = $5, peso_drenado = $6, peso_envase = $7, updated_at = NOW()
    WHERE id = $1
    RETURNING ` + productColumns

const setProductActiveSQL = `
    UPDATE qc.products
    SET is_active = $2, updated_at = NOW()
    WHERE id = $1
`

func scanProduct(row pgx.Row) (model.Product, error) {
	var p model.Product
	err := row.Scan(
		&p.ID,
		&p.Producto,
		&p.NombreCliente,
		&p.Marca,
		&p.PorcentajeMiga,
		&p.PesoDrenado,
		&p.PesoEnvase,
		&p.Active,
	)
	return p, err
}

// ListProducts returns every product control.
func (s *Store) ListProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := s.pool.Query(ctx, listProductsSQL)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (s *Store) GetProduct(ctx context.Context, id string) (model.Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, getProductSQL, id))
	return p, notFound(err)
}

func (s *Store) CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error) {
	return scanProduct(s.pool.QueryRow(ctx, insertProductSQL,
		uuid.NewString(), in.Producto, in.NombreCliente, in.Marca,
		in.PorcentajeMiga, in.PesoDrenado, in.PesoEnvase))
}

func (s *Store) UpdateProduct(ctx context.Context, id string, in model.ProductInput) (model.Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, updateProductSQL,
		id, in.Producto, in.NombreCliente, in.Marca,
		in.PorcentajeMiga, in.PesoDrenado, in.PesoEnvase))
	return p, notFound(err)
}

// SetProductActive backs the activate and deactivate endpoints.
func (s *Store) SetProductActive(ctx context.Context, id string, active bool) error {
	return affected(s.pool.Exec(ctx, setProductActiveSQL, id, active))
}
