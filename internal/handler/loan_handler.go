package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/models"
)

// LoanCommander defines the write-side operations used by LoanHandler.
type LoanCommander interface {
	ApplyLoan(context.Context, cqrs.ApplyLoanCommand) (*models.Loan, error)
	DecideLoan(context.Context, cqrs.DecideLoanCommand) (*models.Loan, error)
}

// LoanQuerier defines the read-side operations used by LoanHandler.
type LoanQuerier interface {
	GetLoan(context.Context, cqrs.GetLoanQuery) (*models.Loan, error)
}

type LoanHandler struct {
	commands LoanCommander
	queries  LoanQuerier
}

type ApplyLoanRequest struct {
	CustomerID string          `json:"customerId" validate:"required"`
	Amount     decimal.Decimal `json:"amount" validate:"gt=0"`
}

func NewLoanHandler(commands LoanCommander, queries LoanQuerier) *LoanHandler {
	return &LoanHandler{commands: commands, queries: queries}
}

func (h *LoanHandler) ApplyLoan(c *gin.Context) {
	var req ApplyLoanRequest
	if !bindRequest(c, &req) {
		return
	}

	loan, err := h.commands.ApplyLoan(c.Request.Context(), cqrs.ApplyLoanCommand{
		CustomerID: req.CustomerID,
		Amount:     req.Amount,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, loan)
}

func (h *LoanHandler) GetLoan(c *gin.Context) {
	loanID, ok := pathID(c, "loanId", "Loan not found")
	if !ok {
		return
	}

	loan, err := h.queries.GetLoan(c.Request.Context(), cqrs.GetLoanQuery{LoanID: loanID})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}

func (h *LoanHandler) ApproveLoan(c *gin.Context) {
	h.decide(c, models.LoanApproved)
}

func (h *LoanHandler) RejectLoan(c *gin.Context) {
	h.decide(c, models.LoanRejected)
}

func (h *LoanHandler) decide(c *gin.Context, status string) {
	loanID, ok := pathID(c, "loanId", "Loan not found")
	if !ok {
		return
	}

	loan, err := h.commands.DecideLoan(c.Request.Context(), cqrs.DecideLoanCommand{
		LoanID: loanID,
		Status: status,
	})
	if err != nil {
		respondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, loan)
}
