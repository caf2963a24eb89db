package repository

import (
	"testing"

	"minibank/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryAccountStore()
	acc1, _ := model.NewAccount(1)
	acc2, _ := model.NewAccount(2)

	count, err := store.Count()
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, store.Add(acc2))
	require.NoError(t, store.Add(acc1))

	t.Run("duplicate add", func(t *testing.T) {
		other, _ := model.NewAccount(1)
		assert.ErrorIs(t, store.Add(other), model.ErrAlreadyExists)
	})

	t.Run("lookup returns the same account", func(t *testing.T) {
		got, found, err := store.GetByID(1)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Same(t, acc1, got)
	})

	t.Run("lookup of absent key", func(t *testing.T) {
		got, found, err := store.GetByID(3)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, got)
	})

	t.Run("get all ordered by key", func(t *testing.T) {
		all, err := store.GetAll()
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Same(t, acc1, all[0])
		assert.Same(t, acc2, all[1])
	})

	t.Run("update", func(t *testing.T) {
		replacement, _ := model.NewAccountWithBalance(2, 50)
		require.NoError(t, store.Update(replacement))
		got, _, _ := store.GetByID(2)
		assert.Same(t, replacement, got)

		absent, _ := model.NewAccount(9)
		assert.ErrorIs(t, store.Update(absent), model.ErrNotFound)
	})

	t.Run("remove", func(t *testing.T) {
		require.NoError(t, store.Remove(acc1))
		count, _ := store.Count()
		assert.Equal(t, 1, count)
		_, found, _ := store.GetByID(1)
		assert.False(t, found)
	})
}

func TestMemoryStore_GenericKey(t *testing.T) {
	type tag struct{ name string }
	store := NewMemoryStore(func(t tag) string { return t.name })

	require.NoError(t, store.Add(tag{"b"}))
	require.NoError(t, store.Add(tag{"a"}))

	all, err := store.GetAll()
	require.NoError(t, err)
	assert.Equal(t, []tag{{"a"}, {"b"}}, all)
}
