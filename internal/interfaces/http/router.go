package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/auth"
	"github.com/jhoicas/Almacen-api/internal/application/inventory"
	"github.com/jhoicas/Almacen-api/internal/application/usecase"
	"github.com/jhoicas/Almacen-api/internal/domain/access"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC            *auth.AuthUseCase
	UserUC            *usecase.UserUseCase
	ClientUC          *usecase.ClientUseCase
	CounterpartyUC    *usecase.CounterpartyUseCase
	ProductUC         *usecase.ProductUseCase
	ServiceUC         *usecase.ServiceUseCase
	ServiceCategoryUC *usecase.ServiceCategoryUseCase
	StockUC           *inventory.StockUseCase
	ArrivalUC         *inventory.ArrivalUseCase
	OrderUC           *inventory.OrderUseCase
	TaskUC            *usecase.TaskUseCase
	InvoiceUC         *usecase.InvoiceUseCase
	UploadDir         string
}

// resourceRoles roles de lectura y escritura de una colección. Archivar exige
// administrador; ver el archivo y borrar, super-admin.
type resourceRoles struct {
	read  []string
	write []string
}

var defaultRoles = resourceRoles{read: access.All, write: access.Staff}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Static(UploadsPrefix, deps.UploadDir)

	api := app.Group("/api")

	// Sesiones (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/users/sessions", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.AuthUC))
	protected.Delete("/users/sessions", authHandler.Logout)

	users := protected.Group("/users")
	mountResource(users, deps.UserUC, resourceRoles{read: access.Staff, write: access.Admins},
		authHandler.Register, NewUserHandler(deps.UserUC).Update)

	mountResource(protected.Group("/clients"), deps.ClientUC, defaultRoles,
		createJSON(deps.ClientUC.Create), updateJSON(deps.ClientUC.Update))
	mountResource(protected.Group("/counterparties"), deps.CounterpartyUC, defaultRoles,
		createJSON(deps.CounterpartyUC.Create), updateJSON(deps.CounterpartyUC.Update))
	mountResource(protected.Group("/products"), deps.ProductUC, defaultRoles,
		createJSON(deps.ProductUC.Create), updateJSON(deps.ProductUC.Update))
	mountResource(protected.Group("/services"), deps.ServiceUC, defaultRoles,
		createJSON(deps.ServiceUC.Create), updateJSON(deps.ServiceUC.Update))
	mountResource(protected.Group("/service-categories"), deps.ServiceCategoryUC, defaultRoles,
		createJSON(deps.ServiceCategoryUC.Create), updateJSON(deps.ServiceCategoryUC.Update))

	stocks := protected.Group("/stocks")
	stocks.Post("/:id/write-offs", RequireRole(access.Staff...), NewStockHandler(deps.StockUC).WriteOff)
	mountResource(stocks, deps.StockUC, defaultRoles,
		createJSON(deps.StockUC.Create), updateJSON(deps.StockUC.Update))

	mountResource(protected.Group("/arrivals"), deps.ArrivalUC, defaultRoles,
		createDocument(deps.UploadDir, deps.ArrivalUC.Create), updateDocument(deps.UploadDir, deps.ArrivalUC.Update))
	mountResource(protected.Group("/orders"), deps.OrderUC, defaultRoles,
		createDocument(deps.UploadDir, deps.OrderUC.Create), updateDocument(deps.UploadDir, deps.OrderUC.Update))

	tasks := protected.Group("/tasks")
	tasks.Patch("/:id/status", RequireRole(access.All...), NewTaskHandler(deps.TaskUC).UpdateStatus)
	mountResource(tasks, deps.TaskUC, defaultRoles,
		createJSON(deps.TaskUC.Create), updateJSON(deps.TaskUC.Update))

	// /summary antes de /:id
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices.Get("/summary", RequireRole(access.Staff...), invoiceHandler.Summary)
	invoices.Get("/:id/pdf", RequireRole(access.All...), invoiceHandler.PDF)
	mountResource(invoices, deps.InvoiceUC, defaultRoles,
		createJSON(deps.InvoiceUC.Create), updateJSON(deps.InvoiceUC.Update))
}

// mountResource registra las rutas comunes de una colección. /archived/* va
// antes de /:id para que "archived" no se tome como identificador.
func mountResource(g fiber.Router, uc Resource, roles resourceRoles, create, update fiber.Handler) {
	h := NewResourceHandler(uc)
	read := RequireRole(roles.read...)
	write := RequireRole(roles.write...)
	admins := RequireRole(access.Admins...)
	superAdmins := RequireRole(access.SuperAdmins...)

	g.Get("/", read, h.List)
	g.Get("/archived/all", superAdmins, h.ListArchived)
	g.Get("/archived/:id", superAdmins, h.GetArchived)
	g.Get("/:id", read, h.Get)
	g.Post("/", write, create)
	g.Put("/:id", write, update)
	g.Patch("/:id/archive", admins, h.Archive)
	g.Patch("/:id/unarchive", admins, h.Unarchive)
	g.Delete("/:id", superAdmins, h.Delete)
}
