package router

import (
	"hotel_crm_backend/internal/handlers"
	"hotel_crm_backend/internal/middleware"
	"hotel_crm_backend/internal/models"

	"github.com/gin-gonic/gin"
)

// SetupRoomRoutes sets up the room routes. Reading the catalog is open to any
// authenticated user; managing it is staff work.
func SetupRoomRoutes(authenticatedGroup *gin.RouterGroup, roomHandler *handlers.RoomHandler) {
	authenticatedGroup.GET("/rooms", roomHandler.GetRooms)
	authenticatedGroup.GET("/rooms/:id", roomHandler.GetRoomByID)

	roomWriteRoutes := authenticatedGroup.Group("/rooms")
	roomWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		roomWriteRoutes.POST("", roomHandler.CreateRoom)
		roomWriteRoutes.PUT("/:id", roomHandler.UpdateRoom)
		roomWriteRoutes.DELETE("/:id", roomHandler.DeleteRoom)
	}
}

// SetupReservationRoutes sets up the reservation routes.
func SetupReservationRoutes(authenticatedGroup *gin.RouterGroup, reservationHandler *handlers.ReservationHandler, laundryHandler *handlers.LaundryHandler) {
	reservationRoutes := authenticatedGroup.Group("/reservations")
	{
		reservationRoutes.POST("", reservationHandler.BookRoom)
		reservationRoutes.GET("/mine", reservationHandler.GetMyReservations)
		reservationRoutes.PATCH("/:id/cancel", reservationHandler.CancelReservation)
		reservationRoutes.PATCH("/:id/dates", reservationHandler.ModifyReservation)
		reservationRoutes.PATCH("/:id/purchase", reservationHandler.PurchaseReservation)
		reservationRoutes.GET("/:id/laundry", laundryHandler.GetReservationLaundry)
	}

	staffReservationRoutes := authenticatedGroup.Group("/reservations")
	staffReservationRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		staffReservationRoutes.GET("", reservationHandler.GetReservations)
		staffReservationRoutes.GET("/:id", reservationHandler.GetReservationByID)
		staffReservationRoutes.POST("/:id/laundry", laundryHandler.AttachLaundryToReservation)
	}
}

// SetupInvoiceRoutes sets up the invoice routes.
func SetupInvoiceRoutes(authenticatedGroup *gin.RouterGroup, invoiceHandler *handlers.InvoiceHandler) {
	invoiceRoutes := authenticatedGroup.Group("/invoices")
	{
		invoiceRoutes.GET("/mine", invoiceHandler.GetMyInvoices)
		invoiceRoutes.PATCH("/:id/pay", invoiceHandler.PayInvoice)
	}
	authenticatedGroup.GET("/reservations/:id/invoice", invoiceHandler.GetInvoiceForReservation)

	authenticatedGroup.GET("/invoices/:id",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff),
		invoiceHandler.GetInvoiceByID)
}

// SetupProductRoutes sets up the product catalog and stock routes.
func SetupProductRoutes(authenticatedGroup *gin.RouterGroup, productHandler *handlers.ProductHandler) {
	productRoutes := authenticatedGroup.Group("/products")
	productRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		productRoutes.POST("", productHandler.CreateProduct)
		productRoutes.GET("", productHandler.GetProducts)
		productRoutes.GET("/lookup", productHandler.GetProductByCode)
		productRoutes.GET("/:id", productHandler.GetProductByID)
		productRoutes.PUT("/:id", productHandler.UpdateProduct)
		productRoutes.DELETE("/:id", productHandler.DeleteProduct)
		productRoutes.POST("/:id/restock", productHandler.RestockProduct)
	}

	authenticatedGroup.GET("/purchases",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff),
		productHandler.GetPurchases)
}

// SetupSaleRoutes sets up the point-of-sale routes.
func SetupSaleRoutes(authenticatedGroup *gin.RouterGroup, saleHandler *handlers.SaleHandler) {
	saleRoutes := authenticatedGroup.Group("/sales")
	saleRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		saleRoutes.POST("", saleHandler.CreateSale)
		saleRoutes.GET("", saleHandler.GetSales)
		saleRoutes.GET("/:id", saleHandler.GetSaleByID)
		saleRoutes.DELETE("/:id", saleHandler.DeleteSale)
	}
}

// SetupClientRoutes sets up the client routes. Profile routes belong to the
// caller; the directory is staff only.
func SetupClientRoutes(authenticatedGroup *gin.RouterGroup, clientHandler *handlers.ClientHandler) {
	authenticatedGroup.GET("/clients/me", clientHandler.GetMyProfile)
	authenticatedGroup.PUT("/clients/me", clientHandler.UpdateMyProfile)

	clientStaffRoutes := authenticatedGroup.Group("/clients")
	clientStaffRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		clientStaffRoutes.GET("", clientHandler.GetClients)
		clientStaffRoutes.GET("/:id", clientHandler.GetClientByID)
		clientStaffRoutes.DELETE("/:id", clientHandler.DeleteClient)
	}
}

// SetupEmployeeRoutes sets up the staff directory routes.
func SetupEmployeeRoutes(authenticatedGroup *gin.RouterGroup, employeeHandler *handlers.EmployeeHandler) {
	employeeWriteRoutes := authenticatedGroup.Group("/employees")
	employeeWriteRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin))
	{
		employeeWriteRoutes.POST("", employeeHandler.CreateEmployee)
		employeeWriteRoutes.PUT("/:id", employeeHandler.UpdateEmployee)
		employeeWriteRoutes.DELETE("/:id", employeeHandler.DeleteEmployee)
	}

	authenticatedGroup.GET("/employees",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff),
		employeeHandler.GetEmployees)
	authenticatedGroup.GET("/employees/:id",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff),
		employeeHandler.GetEmployeeByID)
}

// SetupLaundryRoutes sets up the laundry request routes.
func SetupLaundryRoutes(authenticatedGroup *gin.RouterGroup, laundryHandler *handlers.LaundryHandler) {
	laundryRoutes := authenticatedGroup.Group("/laundry")
	{
		laundryRoutes.POST("", laundryHandler.CreateLaundryRequest)
		laundryRoutes.GET("/mine", laundryHandler.GetMyLaundryRequests)
	}

	authenticatedGroup.PUT("/laundry/:id",
		middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff),
		laundryHandler.UpdateLaundryRequest)
}

// SetupReportRoutes sets up the report routes.
func SetupReportRoutes(authenticatedGroup *gin.RouterGroup, reportHandler *handlers.ReportHandler) {
	reportRoutes := authenticatedGroup.Group("/reports")
	reportRoutes.Use(middleware.RoleAuthMiddleware(models.RoleAdmin, models.RoleStaff))
	{
		reportRoutes.GET("/revenue", reportHandler.GetRevenueReport)
		reportRoutes.GET("/sales", reportHandler.GetSalesSummary)
	}
}
