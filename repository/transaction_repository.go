package repository

import (
	"database/sql"
	"minibank/logger"
	"minibank/model"

	"github.com/sirupsen/logrus"
)

// ITransactionRepository defines the contract for ledger row operations.
type ITransactionRepository interface {
	CreateTransaction(tx *sql.Tx, accountNumber int, transaction model.Transaction) error
	GetLastTransactionID(tx *sql.Tx, accountNumber int) (int, error)
	GetTransactionsByAccountNumber(accountNumber int) ([]model.Transaction, error)
}

// TransactionRepository implements ITransactionRepository against PostgreSQL.
// Rows are written inside the caller's transaction so that an account and
// its ledger change together.
type TransactionRepository struct {
	DB *sql.DB
}

func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{DB: db}
}

func (r *TransactionRepository) CreateTransaction(tx *sql.Tx, accountNumber int, transaction model.Transaction) error {
	log := logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"transaction_id": transaction.ID,
		"amount":         transaction.Amount,
	})
	log.Info("Executing query to create a new ledger entry")

	query := `INSERT INTO account_transactions (account_number, id, message, amount, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := tx.Exec(query, accountNumber, transaction.ID, transaction.Message, transaction.Amount, transaction.CreatedAt)
	if err != nil {
		log.WithError(err).Error("Failed to execute create ledger entry query")
		return err
	}
	return nil
}

// GetLastTransactionID returns the highest stored ledger id for an account,
// or 0 when it has none.
func (r *TransactionRepository) GetLastTransactionID(tx *sql.Tx, accountNumber int) (int, error) {
	var lastID int
	query := `SELECT COALESCE(MAX(id), 0) FROM account_transactions WHERE account_number = $1`
	if err := tx.QueryRow(query, accountNumber).Scan(&lastID); err != nil {
		logger.Log.WithError(err).WithField("account_number", accountNumber).Error("Failed to query last ledger entry id")
		return 0, err
	}
	return lastID, nil
}

// GetTransactionsByAccountNumber returns an account's ledger in id order.
func (r *TransactionRepository) GetTransactionsByAccountNumber(accountNumber int) ([]model.Transaction, error) {
	log := logger.Log.WithField("account_number", accountNumber)
	log.Info("Executing query to get ledger entries by account number")

	query := `
		SELECT id, message, amount, created_at
		FROM account_transactions
		WHERE account_number = $1
		ORDER BY id`

	rows, err := r.DB.Query(query, accountNumber)
	if err != nil {
		log.WithError(err).Error("Failed to execute query for ledger entries")
		return nil, err
	}
	defer rows.Close()

	var transactions []model.Transaction
	for rows.Next() {
		var t model.Transaction
		if err := rows.Scan(&t.ID, &t.Message, &t.Amount, &t.CreatedAt); err != nil {
			log.WithError(err).Error("Failed to scan ledger entry row")
			return nil, err
		}
		transactions = append(transactions, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return transactions, nil
}
