package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/acuaflow/acuaflow-api/internal/application/auth"
	"github.com/acuaflow/acuaflow-api/internal/application/notification"
	"github.com/acuaflow/acuaflow-api/internal/application/replenishment"
	"github.com/acuaflow/acuaflow-api/internal/application/usecase"
	"github.com/acuaflow/acuaflow-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	UserUC          *usecase.UserUseCase
	ProductUC       *usecase.ProductUseCase
	OrganizationUC  *usecase.OrganizationUseCase
	CustomerUC      *usecase.CustomerUseCase
	CartUC          *usecase.CartUseCase
	OrderUC         *usecase.OrderUseCase
	DeliveryUC      *usecase.DeliveryUseCase
	PaymentUC       *usecase.PaymentUseCase
	ReplenishmentUC *replenishment.UseCase
	NotificationUC  *notification.UseCase
	Dispatcher      *notification.Dispatcher
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Products: lectura pública, escritura solo admin
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	adminOnly := RequireRole(entity.RoleAdmin)
	orgOrAdmin := RequireRole(entity.RoleOrganization, entity.RoleAdmin)

	productsAdmin := protected.Group("/products", adminOnly)
	productsAdmin.Post("/", productHandler.Create)
	productsAdmin.Put("/:id", productHandler.Update)
	productsAdmin.Patch("/:id/stock", productHandler.AdjustStock)
	productsAdmin.Delete("/:id", productHandler.Deactivate)

	// Users (admin, salvo /me)
	users := protected.Group("/users")
	userHandler := NewUserHandler(deps.UserUC)
	users.Get("/me", userHandler.Me)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", adminOnly, userHandler.GetByID)
	users.Patch("/:id/toggle-active", adminOnly, userHandler.ToggleActive)

	// Organizations: perfil y ubicaciones del rol organization; listados admin
	orgs := protected.Group("/organizations")
	orgHandler := NewOrganizationHandler(deps.OrganizationUC)
	orgs.Put("/profile", RequireRole(entity.RoleOrganization), orgHandler.UpsertProfile)
	orgs.Get("/profile", RequireRole(entity.RoleOrganization), orgHandler.GetProfile)
	orgs.Post("/locations", RequireRole(entity.RoleOrganization), orgHandler.CreateLocation)
	orgs.Get("/locations", RequireRole(entity.RoleOrganization), orgHandler.ListLocations)
	orgs.Get("/locations/:id", orgOrAdmin, orgHandler.GetLocation)
	orgs.Put("/locations/:id", RequireRole(entity.RoleOrganization), orgHandler.UpdateLocation)
	orgs.Delete("/locations/:id", RequireRole(entity.RoleOrganization), orgHandler.DeleteLocation)
	orgs.Get("/", adminOnly, orgHandler.List)
	orgs.Get("/:id", adminOnly, orgHandler.GetByID)

	// Customers: perfil propio; listado admin
	customers := protected.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Put("/profile", RequireRole(entity.RoleCustomer), customerHandler.UpsertProfile)
	customers.Get("/profile", RequireRole(entity.RoleCustomer), customerHandler.GetProfile)
	customers.Get("/", adminOnly, customerHandler.List)

	// Cart (cualquier usuario autenticado)
	cart := protected.Group("/cart")
	cartHandler := NewCartHandler(deps.CartUC)
	cart.Get("/validate", cartHandler.Validate)
	cart.Get("/", cartHandler.Get)
	cart.Post("/", cartHandler.Add)
	cart.Delete("/", cartHandler.Clear)
	cart.Put("/:productId", cartHandler.SetQuantity)
	cart.Delete("/:productId", cartHandler.Remove)

	// Orders
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Post("/checkout", orderHandler.Checkout)
	orders.Get("/mine", orderHandler.ListMine)
	orders.Get("/", adminOnly, orderHandler.List)
	orders.Put("/:id/status", adminOnly, orderHandler.UpdateStatus)
	orders.Get("/:id/receipt", orderHandler.Receipt)
	orders.Get("/:id", orderHandler.GetByID)

	// Deliveries (admin)
	deliveries := protected.Group("/deliveries", adminOnly)
	deliveryHandler := NewDeliveryHandler(deps.DeliveryUC)
	deliveries.Post("/", deliveryHandler.Create)
	deliveries.Get("/", deliveryHandler.List)
	deliveries.Get("/order/:orderId", deliveryHandler.GetByOrderID)
	deliveries.Put("/:id/status", deliveryHandler.UpdateStatus)
	deliveries.Get("/:id", deliveryHandler.GetByID)

	// Payments
	payments := protected.Group("/payments")
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments.Post("/", paymentHandler.Create)
	payments.Get("/mine", paymentHandler.ListMine)
	payments.Get("/", adminOnly, paymentHandler.List)
	payments.Get("/order/:orderId", paymentHandler.GetByOrderID)
	payments.Put("/:id/status", adminOnly, paymentHandler.UpdateStatus)
	payments.Get("/:id", paymentHandler.GetByID)

	// Replenishments: escritura admin; lecturas también para organization
	repl := protected.Group("/replenishments")
	replHandler := NewReplenishmentHandler(deps.ReplenishmentUC)
	repl.Put("/stock/:locationId/:productId", adminOnly, replHandler.UpdateStockLevels)
	repl.Patch("/stock/:locationId/:productId", adminOnly, replHandler.UpdateCurrentLevel)
	repl.Get("/stock/:locationId/:productId", orgOrAdmin, replHandler.GetLevel)
	repl.Delete("/stock/:locationId/:productId", adminOnly, replHandler.DeleteLevel)
	repl.Get("/stock/:locationId", orgOrAdmin, replHandler.ListLevels)
	repl.Get("/low-stock", orgOrAdmin, replHandler.LowStock)
	repl.Post("/generate-weekly", adminOnly, replHandler.GenerateWeekly)
	repl.Get("/pending", adminOnly, replHandler.ListPending)
	repl.Get("/location/:locationId", orgOrAdmin, replHandler.ListOrdersByLocation)
	repl.Get("/counters/threshold", adminOnly, replHandler.ThresholdReport)
	repl.Get("/counters/:locationId/:productId", adminOnly, replHandler.GetCounter)
	repl.Post("/counters/:locationId/:productId/increment", adminOnly, replHandler.IncrementCounter)
	repl.Post("/counters/:locationId/:productId/reset", adminOnly, replHandler.ResetCounter)
	repl.Post("/stock-outs/:locationId/:productId", adminOnly, replHandler.RecordStockOut)
	repl.Get("/stock-outs/:locationId", adminOnly, replHandler.ListStockOuts)
	repl.Post("/", adminOnly, replHandler.CreateOrder)
	repl.Put("/:id/complete", adminOnly, replHandler.CompleteOrder)
	repl.Get("/:id/details", orgOrAdmin, replHandler.GetOrderDetails)
	repl.Get("/:id", orgOrAdmin, replHandler.GetOrder)

	// Notifications: bandeja propia para cualquier rol; gestión global admin
	notifications := protected.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC, deps.Dispatcher)
	notifications.Get("/mine", notificationHandler.ListMine)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Patch("/read-all", notificationHandler.MarkAllRead)
	notifications.Get("/", orgOrAdmin, notificationHandler.List)
	notifications.Post("/", adminOnly, notificationHandler.Send)
	notifications.Patch("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/:id", adminOnly, notificationHandler.Delete)
	notifications.Get("/:id", notificationHandler.GetByID)
}
