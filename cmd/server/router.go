package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/taskrail/taskrail-api/internal/api"
	apiMiddleware "github.com/taskrail/taskrail-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware. It accepts the application dependencies to create handlers
// and register routes. Returns the configured router.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	// Apply standard middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(
		apiMiddleware.NewTraceMiddleware(app.logger),
	) // Add trace IDs for improved error handling

	// Create API handlers using the application's services
	userHandler := api.NewUserHandler(
		app.userStore,
		app.passwordController,
		app.passwordHasher,
		app.logger,
	)
	taskHandler := api.NewTaskHandler(app.taskStore, app.logger)
	reportHandler := api.NewReportHandler(
		app.reportStore,
		app.taskStore,
		app.taskRunner,
		app.logger,
	)
	simulatorHandler := api.NewSimulatorHandler(app.simulator, app.logger)

	authMiddleware := apiMiddleware.NewBasicAuthMiddleware(
		app.userStore,
		app.passwordHasher,
		app.logger,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Registration is the only unauthenticated write.
		r.Post("/users/", userHandler.CreateUser)

		// Waiting-time simulator endpoints (public)
		r.Post("/async/{bound}", simulatorHandler.ScheduleRun)
		r.Get("/async/{run_id}/check/", simulatorHandler.CheckRun)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)

			// Profile endpoints
			r.Get("/users/", userHandler.GetUser)
			r.Put("/users/", userHandler.UpdateUser)

			// Task endpoints
			r.Get("/tasks/", taskHandler.ListTasks)
			r.Post("/tasks/", taskHandler.CreateTask)
			r.Get("/tasks/{task_id}", taskHandler.GetTask)
			r.Put("/tasks/{task_id}", taskHandler.UpdateTask)
			r.Patch("/tasks/{task_id}", taskHandler.PatchTask)
			r.Delete("/tasks/{task_id}", taskHandler.DeleteTask)

			// Report endpoints
			r.Post("/reports/", reportHandler.CreateReport)
			r.Get("/reports/", reportHandler.ListReports)
			r.Get("/reports/{report_id}", reportHandler.GetReport)
		})
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
