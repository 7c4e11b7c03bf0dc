package datamodel_test

import (
	"encoding/json"
	"testing"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/frahmantamala/financeflow/internal/core/datamodel"
)

func TestDatamodel(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Datamodel Suite")
}

var _ = Describe("DefaultCategories", func() {
	It("returns the seven built-in categories", func() {
		cats := datamodel.DefaultCategories()
		Expect(cats).To(HaveLen(7))
		Expect(cats[0].ID).To(Equal("cat-1"))
		Expect(cats[0].Name).To(Equal("Food"))
		Expect(cats[6].ID).To(Equal("cat-7"))
		Expect(cats[6].Name).To(Equal("Other"))
	})

	It("returns a fresh slice on every call", func() {
		a := datamodel.DefaultCategories()
		b := datamodel.DefaultCategories()
		a[0].Name = "changed"
		Expect(b[0].Name).To(Equal("Food"))
	})
})

var _ = Describe("IconFor", func() {
	It("resolves known ids", func() {
		Expect(datamodel.IconFor(datamodel.DefaultIcons(), "cat-2")).To(Equal(datamodel.IconCar))
	})

	It("falls back to the default icon for unknown ids", func() {
		Expect(datamodel.IconFor(datamodel.DefaultIcons(), "cat-999")).To(Equal(datamodel.IconShapes))
	})
})

var _ = Describe("AttachIcons", func() {
	It("re-binds icons for loaded categories", func() {
		loaded := []datamodel.Category{
			{ID: "cat-1", Name: "Food"},
			{ID: "cat-custom", Name: "Pets"},
		}
		out := datamodel.AttachIcons(loaded)
		Expect(out[0].Icon).To(Equal(datamodel.IconUtensils))
		Expect(out[1].Icon).To(Equal(datamodel.IconShapes))
	})
})

var _ = Describe("Category JSON", func() {
	It("never serializes the icon tag", func() {
		cat := datamodel.Category{ID: "cat-1", Name: "Food", Color: "red", Icon: datamodel.IconUtensils}
		raw, err := json.Marshal(cat)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).NotTo(ContainSubstring("utensils"))
		Expect(string(raw)).NotTo(ContainSubstring("icon"))
	})
})

var _ = Describe("Budgets", func() {
	It("clones independently", func() {
		orig := datamodel.Budgets{"cat-1": 500}
		clone := orig.Clone()
		clone["cat-1"] = 100
		Expect(orig["cat-1"]).To(Equal(500.0))
	})
})
