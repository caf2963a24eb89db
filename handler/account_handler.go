package handler

import (
	"minibank/common"
	"minibank/logger"
	"minibank/model"
	"minibank/service"
	"net/http"

	"github.com/sirupsen/logrus"
)

type AccountHandler struct {
	service *service.AccountService
}

func NewAccountHandler(service *service.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// OpenAccount handles the request to open a new bank account.
func (h *AccountHandler) OpenAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	var req model.OpenAccountRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	log := logger.Log.WithFields(logrus.Fields{
		"account_number":  req.AccountNumber,
		"opening_balance": req.OpeningBalance,
	})
	log.Info("Open account request received")

	account, err := h.service.OpenAccount(req.AccountNumber, req.OpeningBalance)
	if err != nil {
		return mapServiceError(err, "Could not open account")
	}

	writeJSON(w, http.StatusCreated, account)
	return nil
}

// ListAccounts lists every registered account.
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) *common.AppError {
	accounts, err := h.service.ListAccounts()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not retrieve accounts", err)
	}

	writeJSON(w, http.StatusOK, accounts)
	return nil
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.GetAccount(accountNumber)
	if err != nil {
		return mapServiceError(err, "Could not retrieve account")
	}

	writeJSON(w, http.StatusOK, account)
	return nil
}

// CloseAccount removes the account from the registry.
func (h *AccountHandler) CloseAccount(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	logger.Log.WithField("account_number", accountNumber).Info("Close account request received")

	if err := h.service.CloseAccount(accountNumber); err != nil {
		return mapServiceError(err, "Could not close account")
	}

	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *AccountHandler) SetInterestRate(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	var req model.InterestRateRequest
	if err := common.ValidateAndDecode(r, &req); err != nil {
		return err
	}

	account, err := h.service.SetInterestRate(accountNumber, *req.Rate)
	if err != nil {
		return mapServiceError(err, "Could not update interest rate")
	}

	writeJSON(w, http.StatusOK, account)
	return nil
}

func (h *AccountHandler) AccrueInterest(w http.ResponseWriter, r *http.Request) *common.AppError {
	accountNumber, appErr := accountNumberFromPath(r)
	if appErr != nil {
		return appErr
	}

	account, err := h.service.AccrueInterest(accountNumber)
	if err != nil {
		return mapServiceError(err, "Could not accrue interest")
	}

	writeJSON(w, http.StatusOK, account)
	return nil
}

// AccrueInterestAll runs one interest period over every account.
func (h *AccountHandler) AccrueInterestAll(w http.ResponseWriter, r *http.Request) *common.AppError {
	logger.Log.Info("Interest run request received")

	updated, err := h.service.AccrueInterestAll()
	if err != nil {
		return common.NewAppError(http.StatusInternalServerError, "Could not complete interest run", err)
	}

	writeJSON(w, http.StatusOK, model.AccrualResult{AccountsUpdated: updated})
	return nil
}
