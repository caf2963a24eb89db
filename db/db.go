package db

import (
	"database/sql"
	"fmt"
	"minibank/config"
	"minibank/logger"

	_ "github.com/lib/pq"
)

// ConnString builds the lib/pq keyword/value connection string.
func ConnString(withPassword bool) string {
	cfg := config.AppConfig.Database
	connStr := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Name, cfg.SSLMode)
	if withPassword && cfg.Password != "" {
		connStr += fmt.Sprintf(" password=%s", cfg.Password)
	}
	return connStr
}

func Connect() (*sql.DB, error) {
	logger.Log.WithField("connection", ConnString(false)).Info("Attempting to connect to the database")

	db, err := sql.Open("postgres", ConnString(true))
	if err != nil {
		logger.Log.WithError(err).Error("Failed to open database connection")
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err = db.Ping(); err != nil {
		logger.Log.WithError(err).Error("Failed to ping database")
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Log.Info("Database connection established successfully")
	return db, nil
}
