package httpserver

import (
	"net/http"
	"time"

	"budget-app-go/internal/transport/httpserver/handler"
	authmw "budget-app-go/internal/transport/httpserver/middleware"
	"budget-app-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(handlers *handler.Handlers, auth *authmw.Authenticator, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS([]string{"http://localhost:5173"}))
	r.Use(authmw.NewRequestLogger(log))

	r.Get("/health", handlers.Health)
	r.Post("/auth/register", handlers.Register)
	r.Post("/auth/login", handlers.Login)

	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)

		r.Get("/categories", handlers.ListCategories)
		r.Post("/categories", handlers.CreateCategory)
		r.Get("/categories/{id}", handlers.GetCategory)
		r.Delete("/categories/{id}", handlers.DeleteCategory)

		r.Get("/transactions", handlers.ListTransactions)
		r.Post("/transactions", handlers.CreateTransaction)
		r.Get("/transactions/{id}", handlers.GetTransaction)
		r.Put("/transactions/{id}", handlers.UpdateTransaction)
		r.Delete("/transactions/{id}", handlers.DeleteTransaction)

		r.Get("/budgets", handlers.ListBudgets)
		r.Post("/budgets", handlers.CreateBudget)
		r.Get("/budgets/{id}", handlers.GetBudget)
		r.Put("/budgets/{id}", handlers.UpdateBudget)
		r.Delete("/budgets/{id}", handlers.DeleteBudget)
		r.Get("/budgets/{id}/status", handlers.BudgetStatus)

		r.Get("/reports/summary", handlers.Summary)
		r.Get("/reports/transactions/export", handlers.Export)
	})

	return r
}
