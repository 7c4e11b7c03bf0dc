package assistant_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal"
	"github.com/frahmantamala/financeflow/internal/assistant"
	"github.com/frahmantamala/financeflow/internal/core/datamodel"
)

func TestAssistant(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Assistant Suite")
}

func replyWith(text string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"content": []map[string]string{{"type": "text", "text": text}},
		})
	}
}

func newClient(url string) *assistant.Client {
	return assistant.NewClient(internal.AssistantConfig{
		APIURL:    url,
		APIKey:    "test-key",
		Model:     "test-model",
		MaxTokens: 256,
	})
}

var _ = Describe("Client", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()
	})

	Describe("StandardizeCategoryNames", func() {
		It("decodes a well-formed reply", func() {
			server := httptest.NewServer(replyWith(`{"standardizedCategories":[{"id":"cat-1","name":"Food"},{"id":"cat-2","name":"Transport"}]}`))
			defer server.Close()

			reply, err := newClient(server.URL).StandardizeCategoryNames(ctx, assistant.StandardizeRequest{
				Categories: []assistant.CategoryName{
					{ID: "cat-1", Name: "food and groceries"},
					{ID: "cat-2", Name: "getting around town"},
				},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(reply.StandardizedCategories).To(HaveLen(2))
			Expect(reply.StandardizedCategories[0].Name).To(Equal("Food"))
		})

		It("rejects a reply that drops a category id", func() {
			server := httptest.NewServer(replyWith(`{"standardizedCategories":[{"id":"cat-1","name":"Food"}]}`))
			defer server.Close()

			_, err := newClient(server.URL).StandardizeCategoryNames(ctx, assistant.StandardizeRequest{
				Categories: []assistant.CategoryName{
					{ID: "cat-1", Name: "food"},
					{ID: "cat-2", Name: "transport"},
				},
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeAssistantFailed))
		})

		It("rejects a reply that invents a new id", func() {
			server := httptest.NewServer(replyWith(`{"standardizedCategories":[{"id":"cat-99","name":"Food"}]}`))
			defer server.Close()

			_, err := newClient(server.URL).StandardizeCategoryNames(ctx, assistant.StandardizeRequest{
				Categories: []assistant.CategoryName{{ID: "cat-1", Name: "food"}},
			})
			Expect(err).To(HaveOccurred())
		})

		It("maps upstream failures to an external error", func() {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			_, err := newClient(server.URL).StandardizeCategoryNames(ctx, assistant.StandardizeRequest{
				Categories: []assistant.CategoryName{{ID: "cat-1", Name: "food"}},
			})
			Expect(err).To(HaveOccurred())
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadGateway))
		})

		It("rejects non-JSON assistant text", func() {
			server := httptest.NewServer(replyWith(`Sure! Here are your categories: ...`))
			defer server.Close()

			_, err := newClient(server.URL).StandardizeCategoryNames(ctx, assistant.StandardizeRequest{
				Categories: []assistant.CategoryName{{ID: "cat-1", Name: "food"}},
			})
			Expect(err).To(HaveOccurred())
		})
	})

	Describe("SummarizeSpending", func() {
		It("decodes the analysis", func() {
			server := httptest.NewServer(replyWith(`{"analysis":"Food dominates this month."}`))
			defer server.Close()

			reply, err := newClient(server.URL).SummarizeSpending(ctx, assistant.SummarizeRequest{
				Expenses:   []datamodel.Expense{{ID: "exp-1", Description: "Groceries", Amount: 75.43, CategoryID: "cat-1"}},
				Categories: []datamodel.Category{{ID: "cat-1", Name: "Food"}},
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(reply.Analysis).To(Equal("Food dominates this month."))
		})

		It("rejects an empty analysis", func() {
			server := httptest.NewServer(replyWith(`{"analysis":""}`))
			defer server.Close()

			_, err := newClient(server.URL).SummarizeSpending(ctx, assistant.SummarizeRequest{})
			Expect(err).To(HaveOccurred())
		})

		It("sends the API key and version headers", func() {
			var gotKey, gotVersion string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotKey = r.Header.Get("x-api-key")
				gotVersion = r.Header.Get("anthropic-version")
				replyWith(`{"analysis":"ok"}`)(w, r)
			}))
			defer server.Close()

			_, err := newClient(server.URL).SummarizeSpending(ctx, assistant.SummarizeRequest{})
			Expect(err).NotTo(HaveOccurred())
			Expect(gotKey).To(Equal("test-key"))
			Expect(gotVersion).NotTo(BeEmpty())
		})
	})
})
