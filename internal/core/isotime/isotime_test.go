package isotime_test

import (
	"encoding/json"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal/core/isotime"
)

func TestIsotime(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Isotime Suite")
}

var _ = Describe("Time", func() {
	It("marshals to millisecond ISO-8601 in UTC", func() {
		t := isotime.FromTime(time.Date(2024, 7, 20, 10, 0, 0, 0, time.UTC))
		raw, err := json.Marshal(t)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(Equal(`"2024-07-20T10:00:00.000Z"`))
	})

	It("round-trips through its own wire form", func() {
		original := isotime.FromTime(time.Date(2024, 7, 20, 10, 0, 0, 500*int(time.Millisecond), time.UTC))
		raw, err := json.Marshal(original)
		Expect(err).NotTo(HaveOccurred())

		var decoded isotime.Time
		Expect(json.Unmarshal(raw, &decoded)).To(Succeed())
		Expect(decoded.Equal(original.Time)).To(BeTrue())
	})

	It("decodes a matching string", func() {
		var t isotime.Time
		Expect(json.Unmarshal([]byte(`"2024-07-20T10:00:00.000Z"`), &t)).To(Succeed())
		Expect(t.Year()).To(Equal(2024))
		Expect(t.Month()).To(Equal(time.July))
	})

	It("decodes a non-matching string to the zero time without error", func() {
		var t isotime.Time
		Expect(json.Unmarshal([]byte(`"2024-07-20"`), &t)).To(Succeed())
		Expect(t.IsZero()).To(BeTrue())
	})

	It("decodes a non-string value to the zero time without error", func() {
		var t isotime.Time
		Expect(json.Unmarshal([]byte(`1721469600000`), &t)).To(Succeed())
		Expect(t.IsZero()).To(BeTrue())
	})

	It("rejects strings without millisecond precision", func() {
		var t isotime.Time
		Expect(json.Unmarshal([]byte(`"2024-07-20T10:00:00Z"`), &t)).To(Succeed())
		Expect(t.IsZero()).To(BeTrue())
	})

	Describe("Matches", func() {
		It("accepts the wire shape", func() {
			Expect(isotime.Matches("2024-07-20T10:00:00.000Z")).To(BeTrue())
		})

		It("rejects offsets other than Z", func() {
			Expect(isotime.Matches("2024-07-20T10:00:00.000+02:00")).To(BeFalse())
		})

		It("rejects bare dates", func() {
			Expect(isotime.Matches("2024-07-20")).To(BeFalse())
		})
	})
})
