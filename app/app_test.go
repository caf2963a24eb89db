package app

import (
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"minibank/config"
	"minibank/logger"
	"minibank/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildStore_Memory(t *testing.T) {
	logger.Init()
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()
	config.AppConfig.Store.Backend = "memory"

	store, res, err := buildStore()
	defer res.Close()
	require.NoError(t, err)
	assert.IsType(t, repository.NewMemoryAccountStore(), store)
}

func TestBuildStore_UnknownBackend(t *testing.T) {
	saved := config.AppConfig
	defer func() { config.AppConfig = saved }()
	config.AppConfig.Store.Backend = "sqlite"

	_, res, err := buildStore()
	assert.Error(t, err)
	assert.Nil(t, res)
}

func TestBuildStore_MigrationFailureClosesDatabase(t *testing.T) {
	saved := config.AppConfig
	savedConnect, savedMigrate := connectDB, migrateDB
	defer func() {
		config.AppConfig = saved
		connectDB, migrateDB = savedConnect, savedMigrate
	}()
	config.AppConfig.Store.Backend = "postgres"

	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	dbMock.ExpectClose()

	connectDB = func() (*sql.DB, error) { return database, nil }
	migrateDB = func(*sql.DB) error { return errors.New("dirty schema") }

	store, res, err := buildStore()
	assert.EqualError(t, err, "dirty schema")
	assert.Nil(t, store)
	assert.Nil(t, res)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestBuildStore_Postgres(t *testing.T) {
	saved := config.AppConfig
	savedConnect, savedMigrate := connectDB, migrateDB
	defer func() {
		config.AppConfig = saved
		connectDB, migrateDB = savedConnect, savedMigrate
	}()
	config.AppConfig.Store.Backend = "postgres"
	config.AppConfig.Redis.Enabled = false

	database, dbMock, err := sqlmock.New()
	require.NoError(t, err)
	dbMock.ExpectClose()

	connectDB = func() (*sql.DB, error) { return database, nil }
	migrateDB = func(*sql.DB) error { return nil }

	store, res, err := buildStore()
	require.NoError(t, err)
	assert.IsType(t, &repository.AccountRepository{}, store)

	res.Close()
	res.Close()
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestNewHandler(t *testing.T) {
	_, err := NewHandler(nil)
	assert.Error(t, err)

	h, err := NewHandler(repository.NewMemoryAccountStore())
	require.NoError(t, err)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest("GET", "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
