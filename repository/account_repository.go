package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"minibank/logger"
	"minibank/model"

	"github.com/sirupsen/logrus"
)

// AccountRepository is the PostgreSQL AccountStore. Ledger rows are
// delegated to an ITransactionRepository.
type AccountRepository struct {
	DB           *sql.DB
	transactions ITransactionRepository
}

func NewAccountRepository(db *sql.DB, transactions ITransactionRepository) *AccountRepository {
	return &AccountRepository{DB: db, transactions: transactions}
}

// Add inserts the account and its whole ledger in one database transaction.
func (r *AccountRepository) Add(account *model.Account) error {
	snap := account.Snapshot()
	log := logger.Log.WithFields(logrus.Fields{
		"account_number": snap.AccountNumber,
		"balance":        snap.Balance,
	})
	log.Info("Executing query to create a new account")

	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `INSERT INTO accounts (account_number, balance, interest_rate) VALUES ($1, $2, $3)`
	if _, err := tx.Exec(query, snap.AccountNumber, snap.Balance, snap.InterestRate); err != nil {
		log.WithError(err).Error("Failed to execute create account query")
		return fmt.Errorf("could not insert account: %w", err)
	}

	for _, t := range snap.Transactions {
		if err := r.transactions.CreateTransaction(tx, snap.AccountNumber, t); err != nil {
			return fmt.Errorf("could not insert ledger entry %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

// Remove deletes the account. Ledger rows go with it through the foreign key.
func (r *AccountRepository) Remove(account *model.Account) error {
	log := logger.Log.WithField("account_number", account.Number())
	log.Info("Executing query to delete an account")

	query := `DELETE FROM accounts WHERE account_number = $1`
	if _, err := r.DB.Exec(query, account.Number()); err != nil {
		log.WithError(err).Error("Failed to execute delete account query")
		return fmt.Errorf("could not delete account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(accountNumber int) (*model.Account, bool, error) {
	log := logger.Log.WithField("account_number", accountNumber)
	log.Info("Executing query to get account by number")

	snap := model.AccountSnapshot{AccountNumber: accountNumber}
	query := `SELECT balance, interest_rate FROM accounts WHERE account_number = $1`
	err := r.DB.QueryRow(query, accountNumber).Scan(&snap.Balance, &snap.InterestRate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		log.WithError(err).Error("Failed to execute get account query")
		return nil, false, fmt.Errorf("could not get account: %w", err)
	}

	snap.Transactions, err = r.transactions.GetTransactionsByAccountNumber(accountNumber)
	if err != nil {
		return nil, false, fmt.Errorf("could not get ledger: %w", err)
	}

	account, err := model.RestoreAccount(snap)
	if err != nil {
		log.WithError(err).Error("Stored account is inconsistent")
		return nil, false, err
	}
	return account, true, nil
}

// GetAll loads every account ordered by account number.
func (r *AccountRepository) GetAll() ([]*model.Account, error) {
	log := logger.Log
	log.Info("Executing query to get all accounts")

	rows, err := r.DB.Query(`SELECT account_number FROM accounts ORDER BY account_number`)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for all accounts")
		return nil, fmt.Errorf("could not list accounts: %w", err)
	}

	var numbers []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			rows.Close()
			log.WithError(err).Error("Failed to scan account row")
			return nil, err
		}
		numbers = append(numbers, n)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	accounts := make([]*model.Account, 0, len(numbers))
	for _, n := range numbers {
		account, found, err := r.GetByID(n)
		if err != nil {
			return nil, err
		}
		// Deleted between the two queries.
		if !found {
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func (r *AccountRepository) Count() (int, error) {
	var count int
	if err := r.DB.QueryRow(`SELECT COUNT(*) FROM accounts`).Scan(&count); err != nil {
		logger.Log.WithError(err).Error("Failed to count accounts")
		return 0, fmt.Errorf("could not count accounts: %w", err)
	}
	return count, nil
}

// Update writes the balance and rate and appends any ledger entries that are
// not stored yet, all in one database transaction.
func (r *AccountRepository) Update(account *model.Account) error {
	snap := account.Snapshot()
	log := logger.Log.WithFields(logrus.Fields{
		"account_number": snap.AccountNumber,
		"new_balance":    snap.Balance,
		"interest_rate":  snap.InterestRate,
	})
	log.Info("Executing query to update account")

	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE accounts SET balance = $2, interest_rate = $3 WHERE account_number = $1`
	result, err := tx.Exec(query, snap.AccountNumber, snap.Balance, snap.InterestRate)
	if err != nil {
		log.WithError(err).Error("Failed to execute update account query")
		return fmt.Errorf("could not update account: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: account %d", model.ErrNotFound, snap.AccountNumber)
	}

	lastID, err := r.transactions.GetLastTransactionID(tx, snap.AccountNumber)
	if err != nil {
		return fmt.Errorf("could not read ledger position: %w", err)
	}
	for _, t := range snap.Transactions {
		if t.ID <= lastID {
			continue
		}
		if err := r.transactions.CreateTransaction(tx, snap.AccountNumber, t); err != nil {
			return fmt.Errorf("could not insert ledger entry %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}

var _ AccountStore = (*AccountRepository)(nil)
