package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tempo-api/internal/application/auth"
	"github.com/jhoicas/Tempo-api/internal/application/billing"
	"github.com/jhoicas/Tempo-api/internal/application/timetracking"
	"github.com/jhoicas/Tempo-api/internal/application/workspace"
	"github.com/jhoicas/Tempo-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC      *auth.AuthUseCase
	TimerUC     *timetracking.UseCase
	WorkspaceUC *workspace.UseCase
	GenerateUC  *billing.GenerateInvoiceUseCase
	LifecycleUC *billing.LifecycleUseCase
	ExpenseUC   *billing.ExpenseUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Clientes, proyectos, tareas (protegido)
	wsHandler := NewWorkspaceHandler(deps.WorkspaceUC)
	protected.Post("/clients", wsHandler.CreateClient)
	protected.Get("/clients", wsHandler.ListClients)
	protected.Post("/projects", wsHandler.CreateProject)
	protected.Get("/projects", wsHandler.ListProjects)
	protected.Post("/tasks", wsHandler.CreateTask)
	protected.Get("/tasks", wsHandler.ListTasks)

	// Temporizador y libro de tiempos (protegido)
	timerHandler := NewTimerHandler(deps.TimerUC)
	timer := protected.Group("/timer")
	timer.Post("/start", timerHandler.Start)
	timer.Post("/stop", timerHandler.Stop)
	timer.Get("/current", timerHandler.Current)

	entries := protected.Group("/entries")
	entries.Post("/", timerHandler.CreateEntry)
	entries.Get("/", timerHandler.ListEntries)
	entries.Put("/:id", timerHandler.UpdateEntry)
	entries.Delete("/:id", timerHandler.DeleteEntry)
	// La aprobación bloquea la entrada para facturación: solo owner/admin.
	entries.Post("/:id/approve", RequireRole(entity.RoleOwner, entity.RoleAdmin), timerHandler.ApproveEntry)

	// Gastos y facturación (protegido)
	invoiceHandler := NewInvoiceHandler(deps.GenerateUC, deps.LifecycleUC, deps.ExpenseUC)
	protected.Post("/expenses", invoiceHandler.CreateExpense)
	protected.Get("/expenses", invoiceHandler.ListExpenses)

	invoices := protected.Group("/invoices")
	invoices.Post("/", invoiceHandler.Generate)
	invoices.Post("/manual", invoiceHandler.CreateManual)
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/:id", invoiceHandler.GetByID)
	invoices.Patch("/:id/status", invoiceHandler.UpdateStatus)
	invoices.Patch("/:id/notes", invoiceHandler.UpdateNotes)
}
