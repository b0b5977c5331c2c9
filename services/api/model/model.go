// Package model holds the DTOs exchanged with the dashboard frontend and the
// backends. JSON names follow the original REST backend.
package model

import (
	"errors"
	"strings"

	"github.com/qcdash/qc-dashboard/services/api/control"
)

var (
	// ErrNotFound is returned by backends when an entity does not exist.
	ErrNotFound = errors.New("not found")
	// ErrInactive is returned when an operation requires an active entity.
	ErrInactive = errors.New("entity is inactive")
)

// ValidationError carries a message meant for the user.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

const msgRequiredFields = "Todos los campos son obligatorios."

// Customer is a customer as listed by the backend.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Active    bool   `json:"estaActivo"`
}

// Estado renders the active flag the way the dashboard shows it.
func (c Customer) Estado() string { return estado(c.Active) }

// CustomerInput is the create/update payload for customers.
type CustomerInput struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// Normalize trims every field and checks that none is empty.
func (in *CustomerInput) Normalize() error {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.FirstName == "" || in.LastName == "" || in.Email == "" || in.Phone == "" {
		return &ValidationError{Message: msgRequiredFields}
	}
	return nil
}

// Product is a product control: the product a customer ships, with the
// reference weights used during quality control.
type Product struct {
	ID             string  `json:"id"`
	Producto       string  `json:"producto"`
	NombreCliente  string  `json:"nombreCliente"`
	Marca          string  `json:"marca"`
	PorcentajeMiga float64 `json:"porcentajeMiga"`
	PesoDrenado    float64 `json:"pesoDrenado"`
	PesoEnvase     float64 `json:"pesoEnvase"`
	Active         bool    `json:"estaActivo"`
}

// Estado renders the active flag the way the dashboard shows it.
func (p Product) Estado() string { return estado(p.Active) }

// ProductInput is the create/update payload for products.
type ProductInput struct {
	Producto       string  `json:"producto"`
	NombreCliente  string  `json:"nombreCliente"`
	Marca          string  `json:"marca"`
	PorcentajeMiga float64 `json:"porcentajeMiga"`
	PesoDrenado    float64 `json:"pesoDrenado"`
	PesoEnvase     float64 `json:"pesoEnvase"`
}

// Normalize trims the text fields and checks required values.
func (in *ProductInput) Normalize() error {
	in.Producto = strings.TrimSpace(in.Producto)
	in.NombreCliente = strings.TrimSpace(in.NombreCliente)
	in.Marca = strings.TrimSpace(in.Marca)
	if in.Producto == "" || in.NombreCliente == "" || in.Marca == "" {
		return &ValidationError{Message: msgRequiredFields}
	}
	if in.PorcentajeMiga < 0 || in.PesoDrenado < 0 || in.PesoEnvase < 0 {
		return &ValidationError{Message: "Los valores numéricos no pueden ser negativos."}
	}
	return nil
}

// ProductDetail is one stored weight reading of a product control.
type ProductDetail struct {
	ID               string  `json:"id"`
	ProductControlID string  `json:"productControlId"`
	Fecha            string  `json:"fecha"`
	Peso             float64 `json:"peso"`
	TipoControl      string  `json:"tipoControl"`
}

// Record converts the detail into the grouper's input.
func (d ProductDetail) Record() control.Record {
	return control.Record{
		SubjectID: d.ProductControlID,
		Timestamp: d.Fecha,
		Value:     d.Peso,
		Tag:       d.TipoControl,
	}
}

// Records converts a slice of details.
func Records(details []ProductDetail) []control.Record {
	out := make([]control.Record, len(details))
	for i, d := range details {
		out[i] = d.Record()
	}
	return out
}

// ProductDetailInput is the create payload for one reading.
type ProductDetailInput struct {
	ProductControlID string  `json:"productControlId"`
	Fecha            string  `json:"fecha"`
	Peso             float64 `json:"peso"`
	TipoControl      string  `json:"tipoControl"`
}

// Normalize checks the reading references a product and carries a
// recognized tag and timestamp.
func (in *ProductDetailInput) Normalize() error {
	in.ProductControlID = strings.TrimSpace(in.ProductControlID)
	in.TipoControl = strings.TrimSpace(in.TipoControl)
	if in.ProductControlID == "" || in.Fecha == "" || in.TipoControl == "" {
		return &ValidationError{Message: msgRequiredFields}
	}
	if _, ok := control.ParseTag(in.TipoControl); !ok {
		return &ValidationError{Message: "Tipo de control no reconocido: " + in.TipoControl}
	}
	if _, err := control.ParseTimestamp(in.Fecha); err != nil {
		return &ValidationError{Message: "Fecha inválida: " + in.Fecha}
	}
	return nil
}

// DetailInputs converts captured records into create payloads.
func DetailInputs(records []control.Record) []ProductDetailInput {
	out := make([]ProductDetailInput, len(records))
	for i, r := range records {
		out[i] = ProductDetailInput{
			ProductControlID: r.SubjectID,
			Fecha:            r.Timestamp,
			Peso:             r.Value,
			TipoControl:      r.Tag,
		}
	}
	return out
}

// SaveResult reports a multi-record save.
type SaveResult struct {
	Saved     int    `json:"saved"`
	Errors    int    `json:"errors"`
	LastError string `json:"lastError,omitempty"`
}

func estado(active bool) string {
	if active {
		return "Activo"
	}
	return "Inactivo"
}
