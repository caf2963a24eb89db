// file: repository/store.go

package repository

import "minibank/model"

// KeyedStore maps a key to at most one entity. GetByID reports absence
// through its bool result; the error is reserved for storage failures.
// Implementations may reject duplicate keys on Add; callers look up first.
type KeyedStore[K comparable, T any] interface {
	Add(entity T) error
	Remove(entity T) error
	GetByID(id K) (T, bool, error)
	GetAll() ([]T, error)
	Count() (int, error)
}

// AccountStore is a KeyedStore of accounts that can also persist changes
// made to an account after it was added.
type AccountStore interface {
	KeyedStore[int, *model.Account]
	Update(account *model.Account) error
}

// AccountKey is the identity of an account in every store.
func AccountKey(a *model.Account) int {
	return a.Number()
}
