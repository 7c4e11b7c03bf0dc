package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/frahmantamala/financeflow/internal/assistant"
	"github.com/frahmantamala/financeflow/internal/auth"
	"github.com/frahmantamala/financeflow/internal/budget"
	"github.com/frahmantamala/financeflow/internal/category"
	"github.com/frahmantamala/financeflow/internal/earning"
	"github.com/frahmantamala/financeflow/internal/expense"
	"github.com/frahmantamala/financeflow/internal/report"
	"github.com/frahmantamala/financeflow/internal/snapshot"
	"github.com/frahmantamala/financeflow/internal/transport/middleware"
	"github.com/frahmantamala/financeflow/internal/transport/swagger"
)

// Handlers bundles every feature handler the router mounts.
type Handlers struct {
	Auth      *auth.Handler
	State     *StateHandler
	Expense   *expense.Handler
	Earning   *earning.Handler
	Category  *category.Handler
	Budget    *budget.Handler
	Report    *report.Handler
	Snapshot  *snapshot.Handler
	Assistant *assistant.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, driver string, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db, driver)

	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Everything that reads or mutates the ledger requires a session.
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			pr.Get("/state", h.State.GetState)

			pr.Route("/expenses", func(er chi.Router) {
				er.Get("/", h.Expense.ListExpenses)
				er.Post("/", h.Expense.CreateExpense)
				er.Put("/{id}", h.Expense.UpdateExpense)
				er.Delete("/{id}", h.Expense.DeleteExpense)
			})

			pr.Route("/earnings", func(er chi.Router) {
				er.Get("/", h.Earning.ListEarnings)
				er.Post("/", h.Earning.CreateEarning)
				er.Put("/{id}", h.Earning.UpdateEarning)
				er.Delete("/{id}", h.Earning.DeleteEarning)
			})

			pr.Route("/categories", func(cr chi.Router) {
				cr.Get("/", h.Category.ListCategories)
				cr.Post("/", h.Category.CreateCategory)
				cr.Put("/{id}", h.Category.UpdateCategory)
				cr.Delete("/{id}", h.Category.DeleteCategory)
			})

			pr.Route("/budgets", func(br chi.Router) {
				br.Get("/", h.Budget.ListBudgets)
				br.Put("/{categoryId}", h.Budget.SetBudget)
			})

			pr.Route("/reports", func(rr chi.Router) {
				rr.Get("/summary", h.Report.Summary)
				rr.Get("/spending-by-category", h.Report.ByCategory)
				rr.Get("/daily", h.Report.Daily)
				rr.Get("/by-day", h.Report.ByDay)
			})

			pr.Route("/data", func(dr chi.Router) {
				dr.Get("/export", h.Snapshot.ExportData)
				dr.Post("/import", h.Snapshot.ImportData)
				dr.Post("/reset", h.Snapshot.ResetData)
			})

			pr.Route("/assistant", func(ar chi.Router) {
				ar.Post("/standardize-categories", h.Assistant.StandardizeCategories)
				ar.Post("/summarize-spending", h.Assistant.SummarizeSpending)
			})
		})
	})
}
