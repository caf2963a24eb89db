// file: service/account_service.go

package service

import (
	"fmt"
	"minibank/logger"
	"minibank/model"
	"minibank/repository"
	"sync"

	"github.com/sirupsen/logrus"
)

// AccountService is the concurrent front for the registry. Mutations of one
// account run under that account's lock, and opening and closing accounts
// run under a single registry lock so that two callers cannot both see an
// account number as free.
type AccountService struct {
	registry *AccountRegistry
	store    repository.AccountStore

	registryMu sync.Mutex
	locksMu    sync.Mutex
	locks      map[int]*accountLock
}

// accountLock is a per-account mutex. refs counts the callers holding or
// waiting on it; the entry is dropped from the map when refs reaches zero.
type accountLock struct {
	mu   sync.Mutex
	refs int
}

// NewAccountService rejects a nil store, including a typed nil pointer.
func NewAccountService(store repository.AccountStore) (*AccountService, error) {
	if isNilStore(store) {
		return nil, fmt.Errorf("%w: repository cannot be nil", model.ErrInvalidArgument)
	}
	registry, err := NewAccountRegistry(store)
	if err != nil {
		return nil, err
	}
	return &AccountService{
		registry: registry,
		store:    store,
		locks:    make(map[int]*accountLock),
	}, nil
}

// lockAccount blocks until the caller holds the account's lock and returns
// the function that releases it.
func (s *AccountService) lockAccount(accountNumber int) (unlock func()) {
	s.locksMu.Lock()
	l, ok := s.locks[accountNumber]
	if !ok {
		l = &accountLock{}
		s.locks[accountNumber] = l
	}
	l.refs++
	s.locksMu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()

		s.locksMu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(s.locks, accountNumber)
		}
		s.locksMu.Unlock()
	}
}

// OpenAccount creates an account and registers it.
func (s *AccountService) OpenAccount(accountNumber int, openingBalance float64) (model.AccountSnapshot, error) {
	log := logger.Log.WithFields(logrus.Fields{
		"account_number":  accountNumber,
		"opening_balance": openingBalance,
	})

	account, err := model.NewAccountWithBalance(accountNumber, openingBalance)
	if err != nil {
		log.WithError(err).Warn("Rejected account opening")
		return model.AccountSnapshot{}, err
	}

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	if err := s.registry.Add(account); err != nil {
		log.WithError(err).Warn("Could not register account")
		return model.AccountSnapshot{}, err
	}

	log.Info("Account opened")
	return account.Snapshot(), nil
}

// CloseAccount removes an account from the registry.
func (s *AccountService) CloseAccount(accountNumber int) error {
	log := logger.Log.WithField("account_number", accountNumber)

	s.registryMu.Lock()
	defer s.registryMu.Unlock()

	unlock := s.lockAccount(accountNumber)
	defer unlock()

	account, found, err := s.registry.GetByID(accountNumber)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: bank account %d", model.ErrNotFound, accountNumber)
	}
	if err := s.registry.Remove(account); err != nil {
		log.WithError(err).Warn("Could not remove account")
		return err
	}

	log.Info("Account closed")
	return nil
}

// GetAccount returns the account's current state. Unlike the registry it
// treats a missing account as ErrNotFound, since callers asked for a
// specific account.
func (s *AccountService) GetAccount(accountNumber int) (model.AccountSnapshot, error) {
	var snap model.AccountSnapshot
	err := s.withAccount(accountNumber, func(account *model.Account) error {
		snap = account.Snapshot()
		return nil
	})
	return snap, err
}

// ListAccounts returns the state of every registered account.
func (s *AccountService) ListAccounts() ([]model.AccountSnapshot, error) {
	accounts, err := s.registry.GetAll()
	if err != nil {
		return nil, err
	}

	out := make([]model.AccountSnapshot, 0, len(accounts))
	for _, account := range accounts {
		unlock := s.lockAccount(account.Number())
		out = append(out, account.Snapshot())
		unlock()
	}
	return out, nil
}

func (s *AccountService) CountAccounts() (int, error) {
	return s.registry.Count()
}

// SetInterestRate changes one account's rate.
func (s *AccountService) SetInterestRate(accountNumber int, rate float64) (model.AccountSnapshot, error) {
	return s.mutate(accountNumber, "Interest rate updated", logrus.Fields{"rate": rate}, func(account *model.Account) error {
		return account.SetInterestRate(rate)
	})
}

// AccrueInterest applies one interest period to one account.
func (s *AccountService) AccrueInterest(accountNumber int) (model.AccountSnapshot, error) {
	return s.mutate(accountNumber, "Interest accrued", nil, func(account *model.Account) error {
		account.AccrueInterest()
		return nil
	})
}

// AccrueInterestAll applies one interest period to every registered account
// and reports how many were updated. It stops at the first storage error.
func (s *AccountService) AccrueInterestAll() (int, error) {
	accounts, err := s.registry.GetAll()
	if err != nil {
		return 0, err
	}

	updated := 0
	for _, account := range accounts {
		_, err := s.AccrueInterest(account.Number())
		// Closed while the run was in progress.
		if isNotFound(err) {
			continue
		}
		if err != nil {
			return updated, err
		}
		updated++
	}

	logger.Log.WithField("accounts_updated", updated).Info("Interest run completed")
	return updated, nil
}

// withAccount loads an account under its lock and hands it to fn.
func (s *AccountService) withAccount(accountNumber int, fn func(*model.Account) error) error {
	unlock := s.lockAccount(accountNumber)
	defer unlock()

	account, found, err := s.registry.GetByID(accountNumber)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("%w: bank account %d", model.ErrNotFound, accountNumber)
	}
	return fn(account)
}

// mutate applies change to an account under its lock and persists the result.
func (s *AccountService) mutate(accountNumber int, message string, fields logrus.Fields, change func(*model.Account) error) (model.AccountSnapshot, error) {
	log := logger.Log.WithField("account_number", accountNumber).WithFields(fields)

	var snap model.AccountSnapshot
	err := s.withAccount(accountNumber, func(account *model.Account) error {
		if err := change(account); err != nil {
			return err
		}
		if err := s.store.Update(account); err != nil {
			log.WithError(err).Error("Failed to persist account")
			return fmt.Errorf("could not persist account %d: %w", accountNumber, err)
		}
		snap = account.Snapshot()
		return nil
	})
	if err != nil {
		log.WithError(err).Warn("Account operation failed")
		return model.AccountSnapshot{}, err
	}

	log.WithField("balance", snap.Balance).Info(message)
	return snap, nil
}
