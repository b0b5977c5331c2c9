package http

import (
	"context"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

// Backend is the data source behind the API: the Postgres store or the
// upstream REST client.
type Backend interface {
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id string) (model.Customer, error)
	CreateCustomer(ctx context.Context, in model.CustomerInput) (model.Customer, error)
	UpdateCustomer(ctx context.Context, id string, in model.CustomerInput) (model.Customer, error)
	SetCustomerActive(ctx context.Context, id string, active bool) error

	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id string) (model.Product, error)
	CreateProduct(ctx context.Context, in model.ProductInput) (model.Product, error)
	UpdateProduct(ctx context.Context, id string, in model.ProductInput) (model.Product, error)
	SetProductActive(ctx context.Context, id string, active bool) error

	ListProductDetails(ctx context.Context, productID string) ([]model.ProductDetail, error)
	ListAllProductDetails(ctx context.Context) ([]model.ProductDetail, error)
	CreateProductDetails(ctx context.Context, inputs []model.ProductDetailInput) (model.SaveResult, error)
}
