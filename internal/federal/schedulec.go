package federal

import (
	"fmt"

	"taxcore/pkg/domain"
)

// ComputeScheduleC computes the aggregated business profit and loss, one net
// profit node per business feeding the total. Returns nil when the return has
// no business entries.
func (c Constants) ComputeScheduleC(g *domain.TraceGraph, r *domain.TaxReturn) *domain.ScheduleCResult {
	if len(r.Businesses) == 0 {
		return nil
	}
	var perBusiness []domain.TracedValue
	var total domain.Cents
	for _, b := range r.Businesses {
		prefix := fmt.Sprintf("scheduleC.%s", b.ID)
		receipts := g.Document(prefix+".line1", "Gross receipts", b.ID, "gross_receipts", b.GrossReceipts, b.Confidence)
		returns := g.Document(prefix+".line2", "Returns and allowances", b.ID, "returns", b.Returns, b.Confidence)
		cogs := g.Document(prefix+".line4", "Cost of goods sold", b.ID, "cost_of_goods", b.CostOfGoods, b.Confidence)
		other := g.Document(prefix+".line6", "Other income", b.ID, "other_income", b.OtherIncome, b.Confidence)

		expenseInputs := []domain.TracedValue{}
		var expenseTotal domain.Cents
		for _, e := range b.Expenses {
			v := g.Document(fmt.Sprintf("%s.expense.%s", prefix, e.Category), fmt.Sprintf("Expense: %s", e.Category),
				b.ID, "expenses."+e.Category, e.Amount, b.Confidence)
			expenseInputs = append(expenseInputs, v)
			expenseTotal += v.Amount
		}
		expenses := g.Computed(prefix+".line28", "Total expenses", "sum of expense categories",
			expenseTotal, expenseInputs...)

		profit := g.Computed(prefix+".line31", fmt.Sprintf("Net profit or loss (%s)", b.Name),
			"receipts - returns - cost of goods + other income - expenses",
			receipts.Amount-returns.Amount-cogs.Amount+other.Amount-expenses.Amount,
			receipts, returns, cogs, other, expenses)
		perBusiness = append(perBusiness, profit)
		total += profit.Amount
	}
	net := g.Computed("scheduleC.net_profit", "Combined business net profit",
		"sum of per-business net profit", total, perBusiness...)
	return &domain.ScheduleCResult{PerBusiness: perBusiness, NetProfit: net}
}
