package http

import (
	"context"
	"slices"
	"strconv"
	"sync"

	"github.com/qcdash/qc-dashboard/services/api/model"
)

// fakeBackend is an in-memory Backend.
type fakeBackend struct {
	mu        sync.Mutex
	customers []model.Customer
	products  []model.Product
	details   []model.ProductDetail
	nextID    int
	failWith  error
}

func (f *fakeBackend) id(prefix string) string {
	f.nextID++
	return prefix + strconv.Itoa(f.nextID)
}

func (f *fakeBackend) ListCustomers(context.Context) ([]model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWith != nil {
		return nil, f.failWith
	}
	return slices.Clone(f.customers), nil
}

func (f *fakeBackend) GetCustomer(_ context.Context, id string) (model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return model.Customer{}, model.ErrNotFound
}

func (f *fakeBackend) CreateCustomer(_ context.Context, in model.CustomerInput) (model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c := model.Customer{ID: f.id("c"), FirstName: in.FirstName, LastName: in.LastName, Email: in.Email, Phone: in.Phone, Active: true}
	f.customers = append(f.customers, c)
	return c, nil
}

func (f *fakeBackend) UpdateCustomer(_ context.Context, id string, in model.CustomerInput) (model.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.customers {
		if c.ID == id {
			c.FirstName, c.LastName, c.Email, c.Phone = in.FirstName, in.LastName, in.Email, in.Phone
			f.customers[i] = c
			return c, nil
		}
	}
	return model.Customer{}, model.ErrNotFound
}

func (f *fakeBackend) SetCustomerActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.customers {
		if f.customers[i].ID == id {
			f.customers[i].Active = active
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeBackend) ListProducts(context.Context) ([]model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.products), nil
}

func (f *fakeBackend) GetProduct(_ context.Context, id string) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.products {
		if p.ID == id {
			return p, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (f *fakeBackend) CreateProduct(_ context.Context, in model.ProductInput) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := model.Product{
		ID:             f.id("p"),
		Producto:       in.Producto,
		NombreCliente:  in.NombreCliente,
		Marca:          in.Marca,
		PorcentajeMiga: in.PorcentajeMiga,
		PesoDrenado:    in.PesoDrenado,
		PesoEnvase:     in.PesoEnvase,
		Active:         true,
	}
	f.products = append(f.products, p)
	return p, nil
}

func (f *fakeBackend) UpdateProduct(_ context.Context, id string, in model.ProductInput) (model.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, p := range f.products {
		if p.ID == id {
			p.Producto, p.NombreCliente, p.Marca = in.Producto, in.NombreCliente, in.Marca
			p.PorcentajeMiga, p.PesoDrenado, p.PesoEnvase = in.PorcentajeMiga, in.PesoDrenado, in.PesoEnvase
			f.products[i] = p
			return p, nil
		}
	}
	return model.Product{}, model.ErrNotFound
}

func (f *fakeBackend) SetProductActive(_ context.Context, id string, active bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.products {
		if f.products[i].ID == id {
			f.products[i].Active = active
			return nil
		}
	}
	return model.ErrNotFound
}

func (f *fakeBackend) ListProductDetails(_ context.Context, productID string) ([]model.ProductDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.ProductDetail, 0)
	for _, d := range f.details {
		if d.ProductControlID == productID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (f *fakeBackend) ListAllProductDetails(context.Context) ([]model.ProductDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.details), nil
}

func (f *fakeBackend) CreateProductDetails(_ context.Context, inputs []model.ProductDetailInput) (model.SaveResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, in := range inputs {
		f.details = append(f.details, model.ProductDetail{
			ID:               f.id("d"),
			ProductControlID: in.ProductControlID,
			Fecha:            in.Fecha,
			Peso:             in.Peso,
			TipoControl:      in.TipoControl,
		})
	}
	return model.SaveResult{Saved: len(inputs)}, nil
}
