// file: model/request.go

package model

// OpenAccountRequest defines the payload for opening a new account.
// Sign checks on the balance are left to the account so that its error
// message reaches the client.
type OpenAccountRequest struct {
	AccountNumber  int     `json:"account_number" validate:"required"`
	OpeningBalance float64 `json:"opening_balance"`
}

// AmountRequest is shared by deposits and withdrawals. Amount is a pointer
// so that a missing field is rejected here while 0 reaches the account.
type AmountRequest struct {
	Amount *float64 `json:"amount" validate:"required"`
}

// InterestRateRequest defines the payload for changing an account's rate.
// Rate is a pointer so that an explicit 0 passes the required check.
type InterestRateRequest struct {
	Rate *float64 `json:"rate" validate:"required"`
}

// AccrualResult reports a bulk interest run.
type AccrualResult struct {
	AccountsUpdated int `json:"accounts_updated"`
}
