package snapshot_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/snapshot"
	"github.com/frahmantamala/financeflow/internal/store"
)

var _ = Describe("Snapshot Handler", func() {
	var (
		st      *store.Store
		handler *snapshot.Handler
		ctx     context.Context
	)

	BeforeEach(func() {
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		st = store.New(events.NewEventBus(slogger), slogger)
		handler = snapshot.NewHandler(st)
	})

	Describe("ExportData", func() {
		It("serves a named attachment", func() {
			st.AddExpense(ctx, "Groceries", 75.43, "cat-1")

			req := httptest.NewRequest(http.MethodGet, "/data/export", nil)
			w := httptest.NewRecorder()
			handler.ExportData(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring("financeflow-backup-"))
			Expect(w.Header().Get("Content-Disposition")).To(ContainSubstring(".json"))
			Expect(w.Body.String()).To(ContainSubstring("Groceries"))
		})
	})

	Describe("ImportData", func() {
		It("replaces the whole state from a valid document", func() {
			st.AddExpense(ctx, "old record", 1.00, "cat-1")

			doc := `{
				"expenses": [{"id": "exp-9", "description": "Imported", "amount": 9.99, "categoryId": "cat-1", "date": "2024-07-20T10:00:00.000Z"}],
				"earnings": [],
				"categories": [{"id": "cat-1", "name": "Food", "color": "red"}],
				"budgets": {"cat-1": 300}
			}`

			req := httptest.NewRequest(http.MethodPost, "/data/import", bytes.NewBufferString(doc))
			w := httptest.NewRecorder()
			handler.ImportData(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(st.Expenses()).To(HaveLen(1))
			Expect(st.Expenses()[0].Description).To(Equal("Imported"))
			Expect(st.Budgets()["cat-1"]).To(Equal(300.0))
		})

		It("leaves the store untouched when the document is rejected", func() {
			st.AddExpense(ctx, "kept record", 1.00, "cat-1")

			req := httptest.NewRequest(http.MethodPost, "/data/import", bytes.NewBufferString(`{"expenses": []}`))
			w := httptest.NewRecorder()
			handler.ImportData(w, req)

			Expect(w.Code).To(Equal(http.StatusUnprocessableEntity))
			Expect(st.Expenses()).To(HaveLen(1))
			Expect(st.Expenses()[0].Description).To(Equal("kept record"))
		})
	})

	Describe("ResetData", func() {
		It("restores factory defaults", func() {
			st.AddExpense(ctx, "Groceries", 75.43, "cat-1")
			st.SetBudget(ctx, "cat-1", 500)

			req := httptest.NewRequest(http.MethodPost, "/data/reset", nil)
			w := httptest.NewRecorder()
			handler.ResetData(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
			Expect(st.Expenses()).To(BeEmpty())
			Expect(st.Budgets()).To(BeEmpty())
			Expect(st.Categories()).To(HaveLen(7))
		})
	})
})
