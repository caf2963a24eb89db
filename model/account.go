package model

import "fmt"

const (
	DefaultInterestRate = 0.01
	MinInterestRate     = 0.00
	MaxInterestRate     = 0.10
)

// Ledger messages written by the account itself.
const (
	MessageAccountCreated = "Account Created with balance"
	MessageDeposit        = "Deposit"
	MessageWithdraw       = "Withdraw"
)

// Account is an individually owned account with a balance, an interest rate
// and an append-only ledger. Every exported mutator validates its input
// before touching any field, so a failed call leaves the account unchanged.
//
// Account is not safe for concurrent use.
type Account struct {
	number       int
	balance      float64
	interestRate float64
	transactions []Transaction
}

// AccountSnapshot is a detached copy of an account's state, used for
// persistence and for handing state across goroutines.
type AccountSnapshot struct {
	AccountNumber int           `json:"account_number"`
	Balance       float64       `json:"balance"`
	InterestRate  float64       `json:"interest_rate"`
	Transactions  []Transaction `json:"transactions"`
}

// NewAccount opens an account with a zero balance.
func NewAccount(accountNumber int) (*Account, error) {
	return NewAccountWithBalance(accountNumber, 0.00)
}

// NewAccountWithBalance opens an account and records the opening balance as
// the first ledger entry.
func NewAccountWithBalance(accountNumber int, openingBalance float64) (*Account, error) {
	if accountNumber < 1 {
		return nil, fmt.Errorf("%w: account number must be at least 1", ErrInvalidArgument)
	}
	if openingBalance < 0 {
		return nil, fmt.Errorf("%w: initial balance cannot be negative", ErrInvalidArgument)
	}

	return &Account{
		number:       accountNumber,
		balance:      openingBalance,
		interestRate: DefaultInterestRate,
		transactions: []Transaction{NewTransaction(1, MessageAccountCreated, openingBalance)},
	}, nil
}

// RestoreAccount rebuilds an account from persisted state. It does not
// append to the ledger.
func RestoreAccount(s AccountSnapshot) (*Account, error) {
	if s.AccountNumber < 1 {
		return nil, fmt.Errorf("%w: account number must be at least 1", ErrInvalidArgument)
	}
	if s.Balance < 0 {
		return nil, fmt.Errorf("%w: account %d has a negative balance", ErrInvalidArgument, s.AccountNumber)
	}
	if err := validateInterestRate(s.InterestRate); err != nil {
		return nil, err
	}
	if len(s.Transactions) == 0 {
		return nil, fmt.Errorf("%w: account %d has an empty ledger", ErrInvalidArgument, s.AccountNumber)
	}
	for i, t := range s.Transactions {
		if t.ID != i+1 {
			return nil, fmt.Errorf("%w: account %d ledger entry %d has id %d", ErrInvalidArgument, s.AccountNumber, i+1, t.ID)
		}
	}

	transactions := make([]Transaction, len(s.Transactions))
	copy(transactions, s.Transactions)
	return &Account{
		number:       s.AccountNumber,
		balance:      s.Balance,
		interestRate: s.InterestRate,
		transactions: transactions,
	}, nil
}

func (a *Account) Number() int { return a.number }

func (a *Account) Balance() float64 { return a.balance }

func (a *Account) InterestRate() float64 { return a.interestRate }

// Transactions returns a copy of the ledger in insertion order.
func (a *Account) Transactions() []Transaction {
	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)
	return out
}

// Snapshot returns a detached copy of the account's state.
func (a *Account) Snapshot() AccountSnapshot {
	return AccountSnapshot{
		AccountNumber: a.number,
		Balance:       a.balance,
		InterestRate:  a.interestRate,
		Transactions:  a.Transactions(),
	}
}

// Deposit credits a positive amount to the account.
func (a *Account) Deposit(amount float64) error {
	if amount <= 0.00 {
		return fmt.Errorf("%w: amount to deposit must be positive", ErrInvalidArgument)
	}
	a.balance += amount
	a.record(MessageDeposit, amount)
	return nil
}

// Withdraw debits a positive amount no larger than the balance.
func (a *Account) Withdraw(amount float64) error {
	if amount <= 0.00 {
		return fmt.Errorf("%w: amount to withdraw must be positive", ErrInvalidArgument)
	}
	if amount > a.balance {
		return fmt.Errorf("%w: amount to withdraw cannot exceed the balance", ErrInsufficientFunds)
	}
	a.balance -= amount
	a.record(MessageWithdraw, -amount)
	return nil
}

// SetInterestRate replaces the rate. Bounds are inclusive.
func (a *Account) SetInterestRate(rate float64) error {
	if err := validateInterestRate(rate); err != nil {
		return err
	}
	a.interestRate = rate
	return nil
}

// AccrueInterest adds balance*rate to the balance. No ledger entry is
// written, so afterwards the balance no longer equals the ledger sum.
func (a *Account) AccrueInterest() {
	a.balance += a.balance * a.interestRate
}

func (a *Account) record(message string, amount float64) {
	a.transactions = append(a.transactions, NewTransaction(len(a.transactions)+1, message, amount))
}

func validateInterestRate(rate float64) error {
	if rate < MinInterestRate || rate > MaxInterestRate {
		return fmt.Errorf("%w: interest rate must be between %.2f and %.2f", ErrInvalidArgument, MinInterestRate, MaxInterestRate)
	}
	return nil
}
