package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/atinyakov/TaskTracker/internal/middleware"
	"github.com/atinyakov/TaskTracker/internal/models"
)

// NewRouter constructs and returns an HTTP handler that serves the task
// tracker API. It applies CORS, JSON content-type enforcement, and request
// logging globally, and bearer-token authentication to everything except
// registration and login.
//
// Routes:
//
//	POST   /api/register          → authHandler.Register
//	POST   /api/login             → authHandler.Login
//	GET    /api/tasks             → tasksHandler.List        (auth)
//	POST   /api/tasks             → tasksHandler.Create      (auth)
//	GET    /api/tasks/stats       → tasksHandler.Stats       (auth)
//	GET    /api/tasks/{id}        → tasksHandler.Get         (auth)
//	PUT    /api/tasks/{id}        → tasksHandler.Update      (auth)
//	DELETE /api/tasks/{id}        → tasksHandler.Delete      (auth + admin)
//	POST   /api/tasks/bulk/update → tasksHandler.BulkUpdate  (auth)
//	POST   /api/tasks/bulk/delete → tasksHandler.BulkDelete  (auth + admin)
func NewRouter(
	authHandler *AuthHandler,
	tasksHandler *TasksHandler,
	verifier middleware.TokenVerifier,
	logger *zap.Logger,
	allowedOrigins []string,
) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Only allow requests with Content-Type: application/json
	r.Use(chiMiddleware.AllowContentType("application/json"))

	// Log each request and its metadata
	r.Use(middleware.WithRequestLogging(logger))

	r.Route("/api", func(r chi.Router) {
		// Public endpoints
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)

		// Protected group: requires a valid bearer token
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(verifier))

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", tasksHandler.List)
				r.Post("/", tasksHandler.Create)
				r.Get("/stats", tasksHandler.Stats)
				r.Post("/bulk/update", tasksHandler.BulkUpdate)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Post("/bulk/delete", tasksHandler.BulkDelete)

				r.Get("/{id}", tasksHandler.Get)
				r.Put("/{id}", tasksHandler.Update)
				r.With(middleware.RequireRole(models.RoleAdmin)).
					Delete("/{id}", tasksHandler.Delete)
			})
		})
	})

	return r
}
