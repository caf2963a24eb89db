package handler

import (
	"minibank/common"
	"minibank/model"
	"minibank/service"
	"net/http"
)

// TransactionHandler holds dependencies for ledger-related handlers.
type TransactionHandler struct {
	service *service.AccountService
}

// NewTransactionHandler creates a new TransactionHandler with its dependencies.
func NewTransactionHandler(s *service.AccountService) *TransactionHandler {
	return &TransactionHandler{service: s}
}

// Deposit godoc
// @Summary      Deposit money into an account
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        accountNumber path int true "Account number"
// @Param        deposit body model.AmountRequest true "Amount to deposit"
// @Success      200  {object}  model.AccountSnapshot
// @Failure      400  {object}  common.AppError "Non-positive amount"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountNumber}/deposits [post]
func (h *TransactionHandler) Deposit(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	account, err := h.service.Deposit(accountNumber, *req.Amount)
	if err != nil {
		return mapServiceError(err, "Could not process deposit")
	}

	writeJSON(w, http.StatusOK, account)
	return nil
}

// Withdraw godoc
// @Summary      Withdraw money from an account
// @Tags         transactions
// @Accept       json
// @Produce      json
// @Param        accountNumber path int true "Account number"
// @Param        withdrawal body model.AmountRequest true "Amount to withdraw"
// @Success      200  {object}  model.AccountSnapshot
// @Failure      400  {object}  common.AppError "Non-positive amount or insufficient funds"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountNumber}/withdrawals [post]
func (h *TransactionHandler) Withdraw(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.AmountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	account, err := h.service.Withdraw(accountNumber, *req.Amount)
	if err != nil {
		return mapServiceError(err, "Could not process withdrawal")
	}

	writeJSON(w, http.StatusOK, account)
	return nil
}

// ListTransactionsForAccount godoc
// @Summary      List account transaction history
// @Description  Returns the ledger of an account, oldest entry first. Interest accruals do not appear.
// @Tags         transactions
// @Produce      json
// @Param        accountNumber path int true "Account number"
// @Success      200  {array}   model.Transaction
// @Failure      400  {object}  common.AppError "Invalid account number in URL path"
// @Failure      404  {object}  common.AppError "Account not found"
// @Router       /api/accounts/{accountNumber}/transactions [get]
func (h *TransactionHandler) ListTransactionsForAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	transactions, err := h.service.ListTransactions(accountNumber)
	if err != nil {
		return mapServiceError(err, "Could not retrieve transactions")
	}

	writeJSON(w, http.StatusOK, transactions)
	return nil
}
