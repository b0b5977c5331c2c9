package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

// openTestStore connects to TEST_DATABASE_URL and migrates the schema.
func openTestStore(t *testing.T) (*Store, context.Context) {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	t.Cleanup(cancel)

	store, err := New(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(store.Close)
	require.NoError(t, store.Migrate(ctx))
	require.NoError(t, store.Migrate(ctx), "migrate is repeatable")
	return store, ctx
}

func TestStoreCustomerRoundTrip(t *testing.T) {
	store, ctx := openTestStore(t)

	created, err := store.CreateCustomer(ctx, model.CustomerInput{
		FirstName: "Ana", LastName: "Pérez", Email: "ana@example.com", Phone: "555-1",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.True(t, created.Active)

	got, err := store.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	updated, err := store.UpdateCustomer(ctx, created.ID, model.CustomerInput{
		FirstName: "Ana María", LastName: "Pérez", Email: "ana@example.com", Phone: "555-9",
	})
	require.NoError(t, err)
	assert.Equal(t, "Ana María", updated.FirstName)
	assert.Equal(t, "555-9", updated.Phone)

	require.NoError(t, store.SetCustomerActive(ctx, created.ID, false))
	got, err = store.GetCustomer(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	all, err := store.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, got)

	_, err = store.GetCustomer(ctx, "missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
	_, err = store.UpdateCustomer(ctx, "missing", model.CustomerInput{FirstName: "x", LastName: "x", Email: "x", Phone: "x"})
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.ErrorIs(t, store.SetCustomerActive(ctx, "missing", true), model.ErrNotFound)
}

func TestStoreProductRoundTrip(t *testing.T) {
	store, ctx := openTestStore(t)

	created, err := store.CreateProduct(ctx, model.ProductInput{
		Producto: "Atún en agua", NombreCliente: "Ana Pérez", Marca: "Mar",
		PorcentajeMiga: 12.5, PesoDrenado: 120, PesoEnvase: 170,
	})
	require.NoError(t, err)
	assert.True(t, created.Active)
	assert.Equal(t, 12.5, created.PorcentajeMiga)

	updated, err := store.UpdateProduct(ctx, created.ID, model.ProductInput{
		Producto: "Atún en aceite", NombreCliente: "Ana Pérez", Marca: "Mar",
		PorcentajeMiga: 10, PesoDrenado: 125, PesoEnvase: 170,
	})
	require.NoError(t, err)
	assert.Equal(t, "Atún en aceite", updated.Producto)

	require.NoError(t, store.SetProductActive(ctx, created.ID, false))
	got, err := store.GetProduct(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)

	all, err := store.ListProducts(ctx)
	require.NoError(t, err)
	assert.Contains(t, all, got)

	assert.ErrorIs(t, store.SetProductActive(ctx, "missing", true), model.ErrNotFound)
}

func TestStoreProductDetails(t *testing.T) {
	store, ctx := openTestStore(t)

	product, err := store.CreateProduct(ctx, model.ProductInput{
		Producto: "Sardinas", NombreCliente: "Luis Gómez", Marca: "Costa",
	})
	require.NoError(t, err)

	res, err := store.CreateProductDetails(ctx, []model.ProductDetailInput{
		{ProductControlID: product.ID, Fecha: "2024-05-02T14:30:16.000Z", Peso: 90, TipoControl: "PESO NETO 1"},
		{ProductControlID: product.ID, Fecha: "2024-05-02T14:30:15.250Z", Peso: 100.5, TipoControl: "PESO FILL 1"},
	})
	require.NoError(t, err)
	assert.Equal(t, model.SaveResult{Saved: 2}, res)

	details, err := store.ListProductDetails(ctx, product.ID)
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.Equal(t, "2024-05-02T14:30:15.250Z", details[0].Fecha, "ordered by fecha")
	assert.Equal(t, "PESO FILL 1", details[0].TipoControl)
	assert.Equal(t, 100.5, details[0].Peso)
	assert.Equal(t, "2024-05-02T14:30:16.000Z", details[1].Fecha)

	all, err := store.ListAllProductDetails(ctx)
	require.NoError(t, err)
	assert.Subset(t, all, details)
}

func TestStoreProductDetailsBatchIsAllOrNothing(t *testing.T) {
	store, ctx := openTestStore(t)

	product, err := store.CreateProduct(ctx, model.ProductInput{
		Producto: "Atún", NombreCliente: "Ana Pérez", Marca: "Mar",
	})
	require.NoError(t, err)

	res, err := store.CreateProductDetails(ctx, []model.ProductDetailInput{
		{ProductControlID: product.ID, Fecha: "2024-05-02T14:30:15.000Z", Peso: 100, TipoControl: "PESO FILL 1"},
		{ProductControlID: "no-such-product", Fecha: "2024-05-02T14:30:15.000Z", Peso: 90, TipoControl: "PESO NETO 1"},
	})
	require.Error(t, err)
	assert.Equal(t, model.SaveResult{Errors: 2}, res)

	details, err := store.ListProductDetails(ctx, product.ID)
	require.NoError(t, err)
	assert.Empty(t, details)

	_, err = store.CreateProductDetails(ctx, []model.ProductDetailInput{
		{ProductControlID: product.ID, Fecha: "not a date", Peso: 1, TipoControl: "PESO FILL 1"},
	})
	var verr *model.ValidationError
	assert.ErrorAs(t, err, &verr)
}
