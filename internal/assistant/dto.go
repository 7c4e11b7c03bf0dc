package assistant

import "github.com/frahmantamala/financeflow/internal/core/datamodel"

type CategoryName struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StandardizeRequest struct {
	Categories []CategoryName `json:"categories"`
}

type StandardizeReply struct {
	StandardizedCategories []CategoryName `json:"standardizedCategories"`
}

type SummarizeRequest struct {
	Expenses   []datamodel.Expense  `json:"expenses"`
	Categories []datamodel.Category `json:"categories"`
	Earnings   []datamodel.Earning  `json:"earnings"`
}

type SummarizeReply struct {
	Analysis string `json:"analysis"`
}
