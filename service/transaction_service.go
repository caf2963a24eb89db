package service

import (
	"errors"
	"minibank/model"

	"github.com/sirupsen/logrus"
)

// Deposit credits an account and persists the new ledger entry.
func (s *AccountService) Deposit(accountNumber int, amount float64) (model.AccountSnapshot, error) {
	return s.mutate(accountNumber, "Deposit completed", logrus.Fields{"amount": amount}, func(account *model.Account) error {
		return account.Deposit(amount)
	})
}

// Withdraw debits an account and persists the new ledger entry.
func (s *AccountService) Withdraw(accountNumber int, amount float64) (model.AccountSnapshot, error) {
	return s.mutate(accountNumber, "Withdrawal completed", logrus.Fields{"amount": amount}, func(account *model.Account) error {
		return account.Withdraw(amount)
	})
}

// ListTransactions returns an account's ledger, oldest entry first.
func (s *AccountService) ListTransactions(accountNumber int) ([]model.Transaction, error) {
	var transactions []model.Transaction
	err := s.withAccount(accountNumber, func(account *model.Account) error {
		transactions = account.Transactions()
		return nil
	})
	return transactions, err
}

func isNotFound(err error) bool {
	return errors.Is(err, model.ErrNotFound)
}
