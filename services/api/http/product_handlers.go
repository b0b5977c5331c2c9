package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qcdash/qc-dashboard/services/api/model"
	"github.com/qcdash/qc-dashboard/services/api/views"
)

// handleListProducts returns the raw product list
// GET /api/Products
func (s *Server) handleListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// handleProductsTable returns a filtered, sorted page of products
// GET /api/Products/table
func (s *Server) handleProductsTable(c *gin.Context) {
	q, err := parseTableQuery(c)
	if err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	products, err := s.backend.ListProducts(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}

	tbl, err := views.Products(products)
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

// handleCreateProduct creates a product control
// POST /api/Products
func (s *Server) handleCreateProduct(c *gin.Context) {
	var in model.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if err := in.Normalize(); err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := s.backend.CreateProduct(ctx, in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// handleUpdateProduct replaces a product's fields
// PUT /api/Products/:id
func (s *Server) handleUpdateProduct(c *gin.Context) {
	var in model.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if err := in.Normalize(); err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	product, err := s.backend.UpdateProduct(ctx, c.Param("id"), in)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// handleSetProductActive toggles the active flag
// PATCH /api/Products/:id/activate, PATCH /api/Products/:id/deactivate
func (s *Server) handleSetProductActive(active bool) gin.HandlerFunc {
	message := "Producto desactivado exitosamente"
	if active {
		message = "Producto activado exitosamente"
	}
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
		defer cancel()

		if err := s.backend.SetProductActive(ctx, c.Param("id"), active); err != nil {
			s.respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": message})
	}
}

// handleListDetails returns the raw readings of one product
// GET /api/Products/:id/details
func (s *Server) handleListDetails(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	details, err := s.backend.ListProductDetails(ctx, c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// handleListAllDetails returns the readings of every product
// GET /api/Products/all-details
func (s *Server) handleListAllDetails(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 15*time.Second)
	defer cancel()

	details, err := s.backend.ListAllProductDetails(ctx)
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

// handleCreateDetail stores a single tagged reading
// POST /api/Products/details
func (s *Server) handleCreateDetail(c *gin.Context) {
	var in model.ProductDetailInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid detail payload"})
		return
	}
	if err := in.Normalize(); err != nil {
		s.respondError(c, err)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	if _, err := s.backend.GetProduct(ctx, in.ProductControlID); err != nil {
		s.respondError(c, err)
		return
	}

	res, err := s.backend.CreateProductDetails(ctx, []model.ProductDetailInput{in})
	if err != nil {
		s.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}
