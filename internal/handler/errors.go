package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/strangecreator1911/icp-banking-system/shared/cqrs"
	"github.com/strangecreator1911/icp-banking-system/shared/middleware"
	"github.com/strangecreator1911/icp-banking-system/shared/utils"
)

// respondWithServiceError maps command/query sentinels onto HTTP responses.
// Anything unrecognised is attached to the context for middleware.ErrorHandler.
func respondWithServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, cqrs.ErrCustomerNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Customer not found")
	case errors.Is(err, cqrs.ErrAccountNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Account not found")
	case errors.Is(err, cqrs.ErrLoanNotFound):
		middleware.RespondWithError(c, http.StatusNotFound, "Loan not found")
	case errors.Is(err, cqrs.ErrInsufficientFunds):
		middleware.RespondWithError(c, http.StatusBadRequest, "Insufficient funds")
	case errors.Is(err, cqrs.ErrInvalidAmount):
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid amount")
	case errors.Is(err, cqrs.ErrInvalidTransaction), errors.Is(err, cqrs.ErrInvalidLoanDecision):
		middleware.RespondWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, cqrs.ErrLoanAlreadyDecided):
		middleware.RespondWithError(c, http.StatusConflict, "Loan already decided")
	default:
		_ = c.Error(err)
	}
}

// pathID reads an id path parameter. Ids are UUIDs, so anything else cannot
// exist and is answered with 404 straight away.
func pathID(c *gin.Context, name, notFound string) (string, bool) {
	id := c.Param(name)
	if !utils.ValidateID(id) {
		middleware.RespondWithError(c, http.StatusNotFound, notFound)
		return "", false
	}
	return id, true
}

// bindRequest decodes and validates a JSON body, writing the 400 on failure.
func bindRequest(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		middleware.RespondWithError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if validationErrors := middleware.ValidateRequest(req); validationErrors != nil {
		middleware.RespondWithValidationError(c, validationErrors)
		return false
	}
	return true
}
