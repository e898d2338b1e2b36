package models

import "github.com/shopspring/decimal"

// BalanceView is the read projection served by the balance endpoint.
type BalanceView struct {
	Balance decimal.Decimal `json:"balance"`
}

// AccountView is the Redis read model for an account.
type AccountView struct {
	AccountID  string          `json:"accountId"`
	CustomerID string          `json:"customerId"`
	Balance    decimal.Decimal `json:"balance"`
}

// ToView projects an account onto its cached read model.
func (a *Account) ToView() *AccountView {
	return &AccountView{
		AccountID:  a.AccountID,
		CustomerID: a.CustomerID,
		Balance:    a.Balance,
	}
}
