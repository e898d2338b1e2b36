package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/strangecreator1911/icp-banking-system/shared/middleware"
)

// Handlers bundles everything NewRouter mounts.
type Handlers struct {
	Customers    *CustomerHandler
	Accounts     *AccountHandler
	Transactions *TransactionHandler
	Loans        *LoanHandler
}

// NewRouter builds the gin engine. A non-empty jwtSecret puts every route
// except /health behind bearer-token auth.
func NewRouter(h Handlers, logger logrus.FieldLogger, jwtSecret []byte) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.ErrorHandler(logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("")
	if len(jwtSecret) > 0 {
		api.Use(middleware.AuthMiddleware(jwtSecret))
	}

	api.POST("/customers", h.Customers.CreateCustomer)
	api.GET("/customers/:customerId", h.Customers.GetCustomer)

	api.POST("/accounts", h.Accounts.CreateAccount)
	api.GET("/accounts/:accountId", h.Accounts.GetAccount)
	api.GET("/accounts/:accountId/balance", h.Accounts.GetBalance)
	api.GET("/accounts/:accountId/transactions", h.Transactions.ListTransactions)

	api.POST("/transactions/deposit", h.Transactions.Deposit)
	api.POST("/transactions/withdraw", h.Transactions.Withdraw)

	api.POST("/loans", h.Loans.ApplyLoan)
	api.GET("/loans/:loanId", h.Loans.GetLoan)
	api.POST("/loans/:loanId/approve", h.Loans.ApproveLoan)
	api.POST("/loans/:loanId/reject", h.Loans.RejectLoan)

	return router
}
