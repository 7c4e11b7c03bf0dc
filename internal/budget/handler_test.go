package budget_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal/budget"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/store"
)

func TestBudget(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Budget Module Suite")
}

var _ = Describe("Budget Handler", func() {
	var (
		st     *store.Store
		router *chi.Mux
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		st = store.New(events.NewEventBus(slogger), slogger)
		handler := budget.NewHandler(st)

		router = chi.NewRouter()
		router.Get("/budgets", handler.ListBudgets)
		router.Put("/budgets/{categoryId}", handler.SetBudget)
	})

	It("sets a limit for an existing category", func() {
		req := httptest.NewRequest(http.MethodPut, "/budgets/cat-1", bytes.NewBufferString(`{"limit": 500}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(st.Budgets()["cat-1"]).To(Equal(500.0))
	})

	It("replaces an existing limit", func() {
		for _, body := range []string{`{"limit": 500}`, `{"limit": 650}`} {
			req := httptest.NewRequest(http.MethodPut, "/budgets/cat-1", bytes.NewBufferString(body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			Expect(w.Code).To(Equal(http.StatusOK))
		}

		Expect(st.Budgets()["cat-1"]).To(Equal(650.0))
		Expect(st.Budgets()).To(HaveLen(1))
	})

	It("rejects a non-positive limit", func() {
		req := httptest.NewRequest(http.MethodPut, "/budgets/cat-1", bytes.NewBufferString(`{"limit": 0}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(st.Budgets()).To(BeEmpty())
	})

	It("rejects an unknown category", func() {
		req := httptest.NewRequest(http.MethodPut, "/budgets/cat-999", bytes.NewBufferString(`{"limit": 100}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(st.Budgets()).To(BeEmpty())
	})
})
