package cqrs

// ---------- Customer queries ----------

type GetCustomerQuery struct {
	CustomerID string
}

// ---------- Account queries ----------

// GetAccountQuery fetches a single account by ID.
type GetAccountQuery struct {
	AccountID string
}

// GetBalanceQuery fetches only the balance of an account.
type GetBalanceQuery struct {
	AccountID string
}

// ---------- Transaction queries ----------

// ListTransactionsQuery fetches all transactions for an account.
type ListTransactionsQuery struct {
	AccountID string
}

// ---------- Loan queries ----------

type GetLoanQuery struct {
	LoanID string
}
