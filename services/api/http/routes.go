package http

// registerAPIRoutes sets up the dashboard API under /api.
// Routes that mirror the original REST backend keep its paths and raw
// bodies so the upstream client can talk to this server as well.
func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/login", s.handleLogin)
		auth.POST("/logout", s.handleLogout)
		auth.GET("/session", s.handleSession)
	}

	gated := api.Group("")
	gated.Use(sessionGate(s.auth.State()))

	customers := gated.Group("/Customers")
	{
		customers.GET("", s.handleListCustomers)
		customers.GET("/table", s.handleCustomersTable)
		customers.POST("", s.handleCreateCustomer)
		customers.PUT("/:id", s.handleUpdateCustomer)
		customers.PATCH("/:id/activate", s.handleSetCustomerActive(true))
		customers.PATCH("/:id/deactivate", s.handleSetCustomerActive(false))
	}

	products := gated.Group("/Products")
	{
		products.GET("", s.handleListProducts)
		products.GET("/table", s.handleProductsTable)
		products.POST("", s.handleCreateProduct)
		products.PUT("/:id", s.handleUpdateProduct)
		products.PATCH("/:id/activate", s.handleSetProductActive(true))
		products.PATCH("/:id/deactivate", s.handleSetProductActive(false))

		products.GET("/all-details", s.handleListAllDetails)
		products.POST("/details", s.handleCreateDetail)
		products.GET("/:id/details", s.handleListDetails)

		products.GET("/:id/events", s.handleListEvents)
		products.POST("/:id/events", s.handleCaptureEvent)
	}

	reports := gated.Group("/reports")
	{
		reports.GET("/customers", s.handleCustomerReport)
		reports.GET("/products", s.handleProductReport)
	}
}
