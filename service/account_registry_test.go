// file: service/account_registry_test.go

package service

import (
	"errors"
	"testing"

	"minibank/model"
	"minibank/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockAccountRepo is a testify mock of repository.AccountStore.
type mockAccountRepo struct{ mock.Mock }

func (m *mockAccountRepo) Add(account *model.Account) error    { return m.Called(account).Error(0) }
func (m *mockAccountRepo) Remove(account *model.Account) error { return m.Called(account).Error(0) }
func (m *mockAccountRepo) Update(account *model.Account) error { return m.Called(account).Error(0) }

func (m *mockAccountRepo) GetByID(id int) (*model.Account, bool, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*model.Account), args.Bool(1), args.Error(2)
}

func (m *mockAccountRepo) GetAll() ([]*model.Account, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Account), args.Error(1)
}

func (m *mockAccountRepo) Count() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}

func newTestRegistry(t *testing.T) (*AccountRegistry, *repository.MemoryStore[int, *model.Account]) {
	t.Helper()
	store := repository.NewMemoryAccountStore()
	registry, err := NewAccountRegistry(store)
	require.NoError(t, err)
	return registry, store
}

func mustAccount(t *testing.T, number int) *model.Account {
	t.Helper()
	acc, err := model.NewAccount(number)
	require.NoError(t, err)
	return acc
}

func TestNewAccountRegistry(t *testing.T) {
	registry, _ := newTestRegistry(t)
	count, err := registry.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	_, err = NewAccountRegistry(nil)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestAccountRegistry_Add(t *testing.T) {
	t.Run("new account", func(t *testing.T) {
		registry, store := newTestRegistry(t)
		acc := mustAccount(t, 1)

		require.NoError(t, registry.Add(acc))

		all, _ := store.GetAll()
		require.Len(t, all, 1)
		assert.Same(t, acc, all[0])
	})

	t.Run("nil account", func(t *testing.T) {
		registry, store := newTestRegistry(t)

		assert.ErrorIs(t, registry.Add(nil), model.ErrInvalidArgument)
		count, _ := store.Count()
		assert.Equal(t, 0, count)
	})

	t.Run("existing account", func(t *testing.T) {
		registry, store := newTestRegistry(t)
		acc := mustAccount(t, 1)
		require.NoError(t, registry.Add(acc))

		assert.ErrorIs(t, registry.Add(acc), model.ErrAlreadyExists)

		count, _ := store.Count()
		assert.Equal(t, 1, count)
		stored, _, _ := store.GetByID(1)
		assert.Same(t, acc, stored)
	})

	t.Run("existing account never reaches the store", func(t *testing.T) {
		repo := new(mockAccountRepo)
		acc := mustAccount(t, 1)
		repo.On("GetByID", 1).Return(acc, true, nil).Once()

		registry, _ := NewAccountRegistry(repo)
		assert.ErrorIs(t, registry.Add(acc), model.ErrAlreadyExists)

		repo.AssertNotCalled(t, "Add", acc)
		repo.AssertExpectations(t)
	})

	t.Run("lookup failure", func(t *testing.T) {
		repo := new(mockAccountRepo)
		acc := mustAccount(t, 1)
		dbErr := errors.New("db error")
		repo.On("GetByID", 1).Return(nil, false, dbErr).Once()

		registry, _ := NewAccountRegistry(repo)
		assert.ErrorIs(t, registry.Add(acc), dbErr)
		repo.AssertNotCalled(t, "Add", acc)
	})
}

func TestAccountRegistry_Remove(t *testing.T) {
	t.Run("existing account", func(t *testing.T) {
		registry, store := newTestRegistry(t)
		acc1, acc2 := mustAccount(t, 1), mustAccount(t, 2)
		require.NoError(t, registry.Add(acc1))
		require.NoError(t, registry.Add(acc2))

		require.NoError(t, registry.Remove(acc1))

		count, _ := store.Count()
		assert.Equal(t, 1, count)
		result, found, _ := store.GetByID(2)
		assert.True(t, found)
		assert.Same(t, acc2, result)
	})

	t.Run("non-existing account", func(t *testing.T) {
		registry, store := newTestRegistry(t)
		acc1, acc2 := mustAccount(t, 1), mustAccount(t, 2)
		require.NoError(t, registry.Add(acc1))

		assert.ErrorIs(t, registry.Remove(acc2), model.ErrNotFound)

		count, _ := store.Count()
		assert.Equal(t, 1, count)
		_, found, _ := store.GetByID(1)
		assert.True(t, found)
	})

	t.Run("nil account", func(t *testing.T) {
		registry, _ := newTestRegistry(t)
		assert.ErrorIs(t, registry.Remove(nil), model.ErrInvalidArgument)
	})
}

func TestAccountRegistry_GetByID(t *testing.T) {
	registry, _ := newTestRegistry(t)
	acc1, acc2 := mustAccount(t, 1), mustAccount(t, 2)
	require.NoError(t, registry.Add(acc1))
	require.NoError(t, registry.Add(acc2))

	t.Run("existing", func(t *testing.T) {
		result, found, err := registry.GetByID(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Same(t, acc1, result)
	})

	t.Run("non-existing", func(t *testing.T) {
		result, found, err := registry.GetByID(3)
		assert.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, result)
	})
}

func TestAccountRegistry_RemoveScenario(t *testing.T) {
	registry, _ := newTestRegistry(t)
	acc1, acc2 := mustAccount(t, 1), mustAccount(t, 2)
	require.NoError(t, registry.Add(acc1))
	require.NoError(t, registry.Add(acc2))

	require.NoError(t, registry.Remove(acc1))

	count, _ := registry.Count()
	assert.Equal(t, 1, count)
	got2, found, _ := registry.GetByID(2)
	assert.True(t, found)
	assert.Same(t, acc2, got2)
	got1, found, err := registry.GetByID(1)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, got1)
}
