package rest_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/assistant"
	"github.com/frahmantamala/financeflow/internal/auth"
	"github.com/frahmantamala/financeflow/internal/budget"
	"github.com/frahmantamala/financeflow/internal/category"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/earning"
	"github.com/frahmantamala/financeflow/internal/expense"
	"github.com/frahmantamala/financeflow/internal/persistence"
	"github.com/frahmantamala/financeflow/internal/report"
	"github.com/frahmantamala/financeflow/internal/snapshot"
	"github.com/frahmantamala/financeflow/internal/store"
	"github.com/frahmantamala/financeflow/internal/transport/rest"
)

func TestRest(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "REST Transport Suite")
}

var _ = Describe("OpenAPI spec", func() {
	It("is a valid OpenAPI 3 document", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())
		Expect(doc.Validate(loader.Context)).To(Succeed())
	})

	It("documents every mounted data route", func() {
		loader := openapi3.NewLoader()
		doc, err := loader.LoadFromFile("../../../api/openapi.yml")
		Expect(err).NotTo(HaveOccurred())

		for _, path := range []string{
			"/state",
			"/expenses", "/expenses/{id}",
			"/earnings", "/earnings/{id}",
			"/categories", "/categories/{id}",
			"/budgets", "/budgets/{categoryId}",
			"/reports/summary", "/reports/spending-by-category", "/reports/daily", "/reports/by-day",
			"/data/export", "/data/import", "/data/reset",
			"/assistant/standardize-categories", "/assistant/summarize-spending",
		} {
			Expect(doc.Paths.Find(path)).NotTo(BeNil(), "path %s missing from spec", path)
		}
	})
})

var _ = Describe("Router", func() {
	var (
		router *chi.Mux
		st     *store.Store
		token  string
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&persistence.Document{})).To(Succeed())

		bus := events.NewEventBus(slogger)
		st = store.New(bus, slogger)
		mirror := persistence.NewMirror(persistence.NewDocumentStore(db), slogger)
		mirror.Hydrate(st)
		mirror.Register(bus)

		hash, err := auth.HashPassword("correct-horse")
		Expect(err).NotTo(HaveOccurred())
		authService := auth.NewService(internal.AuthConfig{
			Email:               "me@example.com",
			PasswordHash:        hash,
			SessionSecret:       "0123456789abcdef0123456789abcdef",
			AccessTokenDuration: time.Hour,
		})

		handlers := rest.Handlers{
			Auth:      auth.NewHandler(authService),
			State:     rest.NewStateHandler(st),
			Expense:   expense.NewHandler(st),
			Earning:   earning.NewHandler(st),
			Category:  category.NewHandler(st),
			Budget:    budget.NewHandler(st),
			Report:    report.NewHandler(st),
			Snapshot:  snapshot.NewHandler(st),
			Assistant: assistant.NewHandler(nil, st),
		}

		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())

		router = chi.NewRouter()
		rest.RegisterAllRoutes(router, sqlDB, "sqlite", handlers, "*", slogger)

		issued, err := authService.Authenticate(auth.LoginDTO{Email: "me@example.com", Password: "correct-horse"})
		Expect(err).NotTo(HaveOccurred())
		token = issued.AccessToken
	})

	get := func(path, bearer string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("answers ping without a token", func() {
		Expect(get("/api/v1/ping", "").Code).To(Equal(http.StatusOK))
	})

	It("reports a healthy database", func() {
		w := get("/api/v1/health", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("sqlite"))
	})

	It("rejects data routes without a token", func() {
		Expect(get("/api/v1/state", "").Code).To(Equal(http.StatusUnauthorized))
		Expect(get("/api/v1/expenses", "").Code).To(Equal(http.StatusUnauthorized))
	})

	It("issues tokens through login", func() {
		body := `{"email": "me@example.com", "password": "correct-horse"}`
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))

		var issued auth.AuthToken
		Expect(json.NewDecoder(w.Body).Decode(&issued)).To(Succeed())
		Expect(issued.AccessToken).NotTo(BeEmpty())
	})

	It("serves the full state to an authenticated client", func() {
		st.AddExpense(context.Background(), "Groceries", 75.43, "cat-1")

		w := get("/api/v1/state", token)
		Expect(w.Code).To(Equal(http.StatusOK))

		var state struct {
			Expenses   []json.RawMessage  `json:"expenses"`
			Categories []json.RawMessage  `json:"categories"`
			Budgets    map[string]float64 `json:"budgets"`
			Hydrated   bool               `json:"hydrated"`
		}
		Expect(json.NewDecoder(w.Body).Decode(&state)).To(Succeed())
		Expect(state.Expenses).To(HaveLen(1))
		Expect(state.Categories).To(HaveLen(7))
		Expect(state.Hydrated).To(BeTrue())
	})

	It("serves report summaries", func() {
		ctx := context.Background()
		st.AddExpense(ctx, "Groceries", 75.43, "cat-1")
		st.AddExpense(ctx, "Gasoline", 45.00, "cat-2")
		st.AddEarning(ctx, "Salary", 200)

		w := get("/api/v1/reports/summary", token)
		Expect(w.Code).To(Equal(http.StatusOK))

		var totals report.Totals
		Expect(json.NewDecoder(w.Body).Decode(&totals)).To(Succeed())
		Expect(totals.TotalSpending).To(BeNumerically("~", 120.43, 1e-9))
		Expect(totals.TotalBudget).To(Equal(200.0))
		Expect(totals.Remaining).To(BeNumerically("~", 79.57, 1e-9))
	})

	It("answers 503 on assistant routes when unconfigured", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/assistant/summarize-spending", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
