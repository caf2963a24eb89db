package handler

import (
	"encoding/json"
	"errors"
	"minibank/common"
	"minibank/model"
	"net/http"
	"strconv"
)

func ErrorHandlingMiddleware(next func(http.ResponseWriter, *http.Request) *common.AppError) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := next(w, r); err != nil {
			err.Send(w)
		}
	}
}

// mapServiceError maps the domain error taxonomy to HTTP statuses. Anything
// outside it is reported as a 500 with the fallback message.
func mapServiceError(err error, fallback string) *common.AppError {
	switch {
	case errors.Is(err, model.ErrInvalidArgument), errors.Is(err, model.ErrInsufficientFunds):
		return common.NewAppError(http.StatusBadRequest, err.Error(), err)
	case errors.Is(err, model.ErrNotFound):
		return common.NewAppError(http.StatusNotFound, err.Error(), err)
	case errors.Is(err, model.ErrAlreadyExists):
		return common.NewAppError(http.StatusConflict, err.Error(), err)
	default:
		return common.NewAppError(http.StatusInternalServerError, fallback, err)
	}
}

func accountNumberFromPath(r *http.Request) (int, *common.AppError) {
	accountNumber, err := strconv.Atoi(r.PathValue("accountNumber"))
	if err != nil {
		return 0, common.NewAppError(http.StatusBadRequest, "Invalid account number in URL path", err)
	}
	return accountNumber, nil
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
