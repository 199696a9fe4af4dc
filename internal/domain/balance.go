package domain

import "github.com/shopspring/decimal"

// Balance is the per-user accounting summary. Balance always equals
// TotalIncome minus TotalExpense. Transactions without a resolvable
// category are excluded from both sums.
type Balance struct {
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}
