// file: service/account_registry.go

package service

import (
	"fmt"
	"reflect"

	"minibank/model"
	"minibank/repository"
)

// AccountRegistry keeps at most one account per account number in a keyed
// store. It never looks at ledger contents.
//
// AccountRegistry does no locking of its own; see AccountService.
type AccountRegistry struct {
	store repository.KeyedStore[int, *model.Account]
}

func NewAccountRegistry(store repository.KeyedStore[int, *model.Account]) (*AccountRegistry, error) {
	if isNilStore(store) {
		return nil, fmt.Errorf("%w: repository cannot be nil", model.ErrInvalidArgument)
	}
	return &AccountRegistry{store: store}, nil
}

// isNilStore reports a nil interface or an interface wrapping a nil pointer.
func isNilStore(store any) bool {
	if store == nil {
		return true
	}
	v := reflect.ValueOf(store)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Add stores an account whose number is not registered yet.
func (r *AccountRegistry) Add(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: no bank account to add", model.ErrInvalidArgument)
	}

	_, found, err := r.store.GetByID(account.Number())
	if err != nil {
		return fmt.Errorf("could not look up account %d: %w", account.Number(), err)
	}
	if found {
		return fmt.Errorf("%w: bank account %d", model.ErrAlreadyExists, account.Number())
	}
	return r.store.Add(account)
}

// Remove deletes a registered account.
func (r *AccountRegistry) Remove(account *model.Account) error {
	if account == nil {
		return fmt.Errorf("%w: no bank account to remove", model.ErrInvalidArgument)
	}

	_, found, err := r.store.GetByID(account.Number())
	if err != nil {
		return fmt.Errorf("could not look up account %d: %w", account.Number(), err)
	}
	if !found {
		return fmt.Errorf("%w: bank account %d", model.ErrNotFound, account.Number())
	}
	return r.store.Remove(account)
}

// GetByID reports a missing account as (nil, false, nil), not as an error.
func (r *AccountRegistry) GetByID(accountNumber int) (*model.Account, bool, error) {
	account, found, err := r.store.GetByID(accountNumber)
	if err != nil {
		return nil, false, err
	}
	if !found {
		return nil, false, nil
	}
	return account, true, nil
}

func (r *AccountRegistry) GetAll() ([]*model.Account, error) {
	return r.store.GetAll()
}

func (r *AccountRegistry) Count() (int, error) {
	return r.store.Count()
}
