package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

// TransactionCommander defines the write-side operations used by TransactionHandler.
type TransactionCommander interface {
	PostTransaction(context.Context, cqrs.PostTransactionCommand) (*models.Account, error)
}

// TransactionQuerier defines the read-side operations used by TransactionHandler.
type TransactionQuerier interface {
	ListTransactions(context.Context, cqrs.ListTransactionsQuery) ([]models.Transaction, error)
}

type TransactionHandler struct {
	commands TransactionCommander
	queries  TransactionQuerier
}

// Amount is a pointer so that a missing amount is told apart from 0.
type TransactionRequest struct {
	AccountID string           `json:"accountId" validate:"required"`
	Amount    *decimal.Decimal `json:"amount" validate:"required,gte=0"`
}

func NewTransactionHandler(commands TransactionCommander, queries TransactionQuerier) *TransactionHandler {
	return &TransactionHandler{commands: commands, queries: queries}
}

func (h *TransactionHandler) Deposit(c *gin.Context) {
	h.post(c, models.TransactionDeposit)
}

func (h *TransactionHandler) Withdraw(c *gin.Context) {
	h.post(c, models.TransactionWithdrawal)
}

// post responds with the updated account on success.
func (h *TransactionHandler) post(c *gin.Context, txType string) {
	var req TransactionRequest
	if !bindRequest(c, &req) {
		return
	}

	account, err := h.commands.PostTransaction(c.Request.Context(), cqrs.PostTransactionCommand{
		AccountID: req.AccountID,
		Amount:    *req.Amount,
		Type:      txType,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}

// ListTransactions always answers with a JSON array, empty for accounts
// without history.
func (h *TransactionHandler) ListTransactions(c *gin.Context) {
	txns, err := h.queries.ListTransactions(c.Request.Context(), cqrs.ListTransactionsQuery{
		AccountID: c.Param("accountId"),
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	if txns == nil {
		txns = []models.Transaction{}
	}

	c.JSON(http.StatusOK, txns)
}
