package assistant_test

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal/assistant"
	"github.com/frahmantamala/financeflow/internal/core/events"
	"github.com/frahmantamala/financeflow/internal/store"
)

var _ = Describe("Assistant Handler", func() {
	var st *store.Store

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		st = store.New(events.NewEventBus(slogger), slogger)
	})

	It("answers 503 when no client is configured", func() {
		handler := assistant.NewHandler(nil, st)

		req := httptest.NewRequest(http.MethodPost, "/assistant/summarize-spending", nil)
		w := httptest.NewRecorder()
		handler.SummarizeSpending(w, req)
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))

		w = httptest.NewRecorder()
		handler.StandardizeCategories(w, httptest.NewRequest(http.MethodPost, "/assistant/standardize-categories", nil))
		Expect(w.Code).To(Equal(http.StatusServiceUnavailable))
	})
})
