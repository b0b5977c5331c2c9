// Package views defines the dashboard's tables on top of the generic table
// engine and the query that drives them.
package views

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/qcdash/qc-dashboard/services/api/control"
	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/table"
)

const (
	// SearchColumn is the id of the composite free-text column.
	SearchColumn = "search"
	// StatusColumn is the active flag column of customers and products.
	StatusColumn = "estaActivo"

	dateLayout = "02/01/2006 15:04"
)

var statusOptions = []table.Option{
	{Label: "Todos", Value: table.AllOption},
	{Label: "Activo", Value: "true"},
	{Label: "Inactivo", Value: "false"},
}

func actionsColumn[Row any]() table.Column[Row] {
	return table.Column[Row]{ID: table.ActionsColumn, Header: "Acciones", Cell: func(Row) string { return "" }}
}

func textColumn[Row any](id, header string, value func(Row) string) table.Column[Row] {
	return table.Column[Row]{
		ID:       id,
		Header:   header,
		Value:    func(r Row) any { return value(r) },
		Sortable: true,
		Hideable: true,
	}
}

func grams(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64) + "g"
}

// Customers builds the customer management table.
func Customers(rows []model.Customer) (*table.Table[model.Customer], error) {
	columns := []table.Column[model.Customer]{
		textColumn("firstName", "Nombre", func(c model.Customer) string { return c.FirstName }),
		textColumn("lastName", "Apellido", func(c model.Customer) string { return c.LastName }),
		textColumn("email", "Email", func(c model.Customer) string { return c.Email }),
		textColumn("phone", "Teléfono", func(c model.Customer) string { return c.Phone }),
		{
			ID:       StatusColumn,
			Header:   "Estado",
			Value:    func(c model.Customer) any { return c.Active },
			Cell:     model.Customer.Estado,
			Sortable: true,
			Hideable: true,
		},
		actionsColumn[model.Customer](),
	}
	return table.New(columns, rows, table.Options[model.Customer]{
		RowID:  func(c model.Customer) string { return c.ID },
		Search: &table.Search{ID: SearchColumn, Columns: []string{"firstName", "lastName", "email", "phone"}},
		Select: &table.SelectFilter{Column: StatusColumn, Options: statusOptions},
	})
}

// Products builds the product management table.
func Products(rows []model.Product) (*table.Table[model.Product], error) {
	number := func(id, header string, value func(model.Product) float64, cell func(float64) string) table.Column[model.Product] {
		return table.Column[model.Product]{
			ID:       id,
			Header:   header,
			Value:    func(p model.Product) any { return value(p) },
			Cell:     func(p model.Product) string { return cell(value(p)) },
			Sortable: true,
			Hideable: true,
		}
	}
	percent := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) + "%" }

	columns := []table.Column[model.Product]{
		textColumn("producto", "Producto", func(p model.Product) string { return p.Producto }),
		textColumn("nombreCliente", "Cliente", func(p model.Product) string { return p.NombreCliente }),
		textColumn("marca", "Marca", func(p model.Product) string { return p.Marca }),
		number("porcentajeMiga", "% Miga", func(p model.Product) float64 { return p.PorcentajeMiga }, percent),
		number("pesoDrenado", "Peso Drenado", func(p model.Product) float64 { return p.PesoDrenado }, grams),
		number("pesoEnvase", "Peso Envase", func(p model.Product) float64 { return p.PesoEnvase }, grams),
		{
			ID:       StatusColumn,
			Header:   "Estado",
			Value:    func(p model.Product) any { return p.Active },
			Cell:     model.Product.Estado,
			Sortable: true,
			Hideable: true,
		},
		actionsColumn[model.Product](),
	}
	return table.New(columns, rows, table.Options[model.Product]{
		RowID:  func(p model.Product) string { return p.ID },
		Search: &table.Search{ID: SearchColumn, Columns: []string{"producto", "nombreCliente", "marca"}},
		Select: &table.SelectFilter{Column: StatusColumn, Options: statusOptions},
	})
}

// SlotCell renders one slot of a control event: the non-zero readings of
// both channels, or "-" when neither has one.
func SlotCell(fill, net float64) string {
	var parts []string
	if fill != 0 {
		parts = append(parts, "PF: "+grams(fill))
	}
	if net != 0 {
		parts = append(parts, "PN: "+grams(net))
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " / ")
}

// Events builds the grouped control event table with one column per slot.
func Events(events []control.Event, slots int) (*table.Table[control.Event], error) {
	if slots <= 0 {
		slots = control.DefaultSlotCount
	}
	columns := []table.Column[control.Event]{{
		ID:       "fechaHora",
		Header:   "Fecha/Hora",
		Value:    func(e control.Event) any { return e.Time },
		Cell:     func(e control.Event) string { return e.Time.Format(dateLayout) },
		Sortable: true,
	}}
	for i := range slots {
		columns = append(columns, table.Column[control.Event]{
			ID:     fmt.Sprintf("peso%d", i+1),
			Header: fmt.Sprintf("Peso %d", i+1),
			Value:  func(e control.Event) any { return slotValue(e.Fill, i) + slotValue(e.Net, i) },
			Cell: func(e control.Event) string {
				return SlotCell(slotValue(e.Fill, i), slotValue(e.Net, i))
			},
			Hideable: true,
		})
	}
	return table.New(columns, events, table.Options[control.Event]{
		RowID: func(e control.Event) string { return e.Timestamp },
	})
}

func slotValue(values []float64, i int) float64 {
	if i < len(values) {
		return values[i]
	}
	return 0
}
