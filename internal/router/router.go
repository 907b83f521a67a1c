package router

import (
	"database/sql"
	"time"

	"hotel_crm_backend/internal/handlers"
	"hotel_crm_backend/internal/middleware"
	"hotel_crm_backend/internal/repositories"
	"hotel_crm_backend/internal/services"

	"github.com/gin-gonic/gin"
)

// Setup initializes the routing for the application.
func Setup(engine *gin.Engine, db *sql.DB) {
	// Initialize Repositories
	authRepo := repositories.NewAuthRepository(db)
	roomRepo := repositories.NewRoomRepository(db)
	clientRepo := repositories.NewClientRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	reservationRepo := repositories.NewReservationRepository(db)
	invoiceRepo := repositories.NewInvoiceRepository(db)
	productRepo := repositories.NewProductRepository(db)
	saleRepo := repositories.NewSaleRepository(db)
	laundryRepo := repositories.NewLaundryRepository(db)

	// Initialize Services
	authService := services.NewAuthService(authRepo, db)
	roomService := services.NewRoomService(roomRepo, db, time.Now)
	clientService := services.NewClientService(clientRepo, db)
	employeeService := services.NewEmployeeService(employeeRepo, db)
	reservationService := services.NewReservationService(reservationRepo, roomRepo, clientRepo, db, time.Now)
	invoiceService := services.NewInvoiceService(invoiceRepo, reservationRepo, clientRepo, db)
	productService := services.NewProductService(productRepo, employeeRepo, db)
	saleService := services.NewSaleService(saleRepo, productRepo, employeeRepo, db, time.Now)
	laundryService := services.NewLaundryService(laundryRepo, reservationRepo, db)
	reportService := services.NewReportService(invoiceRepo, saleRepo)

	// Initialize Handlers
	authHandler := handlers.NewAuthHandler(authService)
	roomHandler := handlers.NewRoomHandler(roomService)
	clientHandler := handlers.NewClientHandler(clientService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	reservationHandler := handlers.NewReservationHandler(reservationService)
	invoiceHandler := handlers.NewInvoiceHandler(invoiceService)
	productHandler := handlers.NewProductHandler(productService)
	saleHandler := handlers.NewSaleHandler(saleService)
	laundryHandler := handlers.NewLaundryHandler(laundryService)
	reportHandler := handlers.NewReportHandler(reportService)

	apiV1 := engine.Group("/api/v1")

	// Public routes: registration, login and the room search guests use
	// before they have an account.
	SetupPublicAuthRoutes(apiV1.Group("/auth"), authHandler)
	apiV1.GET("/rooms/search", roomHandler.SearchRooms)

	authenticated := apiV1.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	{
		SetupAuthenticatedAuthRoutes(authenticated.Group("/auth"), authHandler)

		SetupRoomRoutes(authenticated, roomHandler)
		SetupReservationRoutes(authenticated, reservationHandler, laundryHandler)
		SetupInvoiceRoutes(authenticated, invoiceHandler)
		SetupProductRoutes(authenticated, productHandler)
		SetupSaleRoutes(authenticated, saleHandler)
		SetupClientRoutes(authenticated, clientHandler)
		SetupEmployeeRoutes(authenticated, employeeHandler)
		SetupLaundryRoutes(authenticated, laundryHandler)
		SetupReportRoutes(authenticated, reportHandler)
	}
}

// SetupPublicAuthRoutes wires the routes that need no token.
func SetupPublicAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.POST("/register", authHandler.Register)
	group.POST("/login", authHandler.Login)
	group.POST("/refresh", authHandler.RefreshToken)
}

// SetupAuthenticatedAuthRoutes wires the token-protected account routes.
func SetupAuthenticatedAuthRoutes(group *gin.RouterGroup, authHandler *handlers.AuthHandler) {
	group.GET("/me", authHandler.GetProfile)
}
