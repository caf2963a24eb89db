package router

import (
	"minibank/handler"
	"net/http"
)

func NewRouter(healthHandler *handler.HealthHandler, accountHandler *handler.AccountHandler, transactionHandler *handler.TransactionHandler) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", healthHandler.HealthCheck)

	mux.Handle("POST /api/accounts", handler.ErrorHandlingMiddleware(accountHandler.OpenAccount))
	mux.Handle("GET /api/accounts", handler.ErrorHandlingMiddleware(accountHandler.ListAccounts))
	mux.Handle("GET /api/accounts/{accountNumber}", handler.ErrorHandlingMiddleware(accountHandler.GetAccount))
	mux.Handle("DELETE /api/accounts/{accountNumber}", handler.ErrorHandlingMiddleware(accountHandler.CloseAccount))
	mux.Handle("PUT /api/accounts/{accountNumber}/interest-rate", handler.ErrorHandlingMiddleware(accountHandler.SetInterestRate))
	mux.Handle("POST /api/accounts/{accountNumber}/interest", handler.ErrorHandlingMiddleware(accountHandler.AccrueInterest))
	mux.Handle("POST /api/interest/accruals", handler.ErrorHandlingMiddleware(accountHandler.AccrueInterestAll))

	mux.Handle("POST /api/accounts/{accountNumber}/deposits", handler.ErrorHandlingMiddleware(transactionHandler.Deposit))
	mux.Handle("POST /api/accounts/{accountNumber}/withdrawals", handler.ErrorHandlingMiddleware(transactionHandler.Withdraw))
	mux.Handle("GET /api/accounts/{accountNumber}/transactions", handler.ErrorHandlingMiddleware(transactionHandler.ListTransactionsForAccount))

	return handler.RequestLoggingMiddleware(mux)
}
