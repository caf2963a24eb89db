package model

import (
	"time"
)

// Transaction is one recorded movement against an account. Amount is
// positive for credits and negative for debits. Values are handed out by
// copy, so an entry cannot be altered once it is in a ledger.
type Transaction struct {
	ID        int       `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Message   string    `json:"message"`
	Amount    float64   `json:"amount"`
}

// NewTransaction stamps a ledger entry with the current time.
func NewTransaction(id int, message string, amount float64) Transaction {
	return Transaction{
		ID:        id,
		CreatedAt: time.Now(),
		Message:   message,
		Amount:    amount,
	}
}
