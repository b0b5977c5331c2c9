package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/views"
)

// handleListCustomers returns the raw customer list
// GET /api/Customers
func (s *Server) handleListCustomers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

// handleCustomersTable returns a filtered, sorted page of customers
// GET /api/Customers/table
func (s *Server) handleCustomersTable(c *gin.Context) {
	q, err := parseTableQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	customers, err := s.backend.ListCustomers(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	tbl, err := views.Customers(customers)
	if err != nil {
		s.respondError(c, err)
		return
	}
	if err := views.Apply(tbl, q); err != nil {
		s.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": tbl.View(),
		"meta": tableMeta(tbl.PageSizes(), tbl.ToggleableColumns(), tbl.SelectFilterValue(), tbl.SelectOptions()),
	})
}

// handleCreateCustomer creates a customer
// POST /api/Customers
func (s *Server) handleCreateCustomer(c *gin.Context) {
	var in model.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
		return
	}
	if err := in.Normalize(); err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	customer, err := s.backend.CreateCustomer(ctx, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

// handleUpdateCustomer replaces a customer's fields
// PUT /api/Customers/:id
func (s *Server) handleUpdateCustomer(c *gin.Context) {
	var in model.CustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid customer payload"})
		return
	}
	if err := in.Normalize(); err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	customer, err := s.backend.UpdateCustomer(ctx, c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

// handleSetCustomerActive toggles the active flag
// PATCH /api/Customers/:id/activate, PATCH /api/Customers/:id/deactivate
func (s *Server) handleSetCustomerActive(active bool) gin.HandlerFunc {
	message := "Cliente desactivado exitosamente"
	if active {
		message = "Cliente activado exitosamente"
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := s.backend.SetCustomerActive(ctx, c.Param("id"), active); err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}
