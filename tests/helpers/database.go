package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// GetTestDatabasePool creates a database connection pool for testing
func GetTestDatabasePool(ctx context.Context) (*pgxpool.Pool, error) {
	databaseURL := buildDatabaseURL()

	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// buildDatabaseURL constructs the database URL from environment variables
func buildDatabaseURL() string {
	host := os.Getenv("POSTGRES_HOST")
	if host == "" {
		host = "vibe-orchestrator-db-rw.vibeworks.svc"
	}

	port := os.Getenv("POSTGRES_PORT")
	if port == "" {
		port = "5432"
	}

	user := os.Getenv("POSTGRES_USER")
	if user == "" {
		user = "postgres"
	}

	password := os.Getenv("POSTGRES_PASSWORD")
	if password == "" {
		password = "postgres"
	}

	dbname := os.Getenv("POSTGRES_DB")
	if dbname == "" {
		dbname = "vibe_orchestrator"
	}

	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=prefer",
		user, password, host, port, dbname)
}

// TestDatabase provides database utilities for testing
type TestDatabase struct {
	Pool *pgxpool.Pool
	ctx  context.Context
}

// NewTestDatabase creates a new test database instance. Tests are skipped
// when no database is reachable, so the suite still runs locally.
func NewTestDatabase(t *testing.T) *TestDatabase {
	ctx := context.Background()

	pool, err := GetTestDatabasePool(ctx)
	if err != nil {
		t.Skipf("Skipping database test, database unavailable: %v", err)
	}

	return &TestDatabase{
		Pool: pool,
		ctx:  ctx,
	}
}

// Close closes the database connection
func (db *TestDatabase) Close() {
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// CreateTestUser creates a test user and returns the user ID
func (db *TestDatabase) CreateTestUser(t *testing.T, email, hashedPassword string) string {
	var userID string
	err := db.Pool.QueryRow(db.ctx, `
		INSERT INTO users (name, email, hashed_password, created_at, updated_at)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING id
	`, "Test User", email, hashedPassword).Scan(&userID)

	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	return userID
}

// DeleteTestUser removes a test user created during a test run
func (db *TestDatabase) DeleteTestUser(t *testing.T, userID string) {
	if _, err := db.Pool.Exec(db.ctx, `DELETE FROM users WHERE id = $1`, userID); err != nil {
		t.Logf("Warning: Failed to delete test user %s: %v", userID, err)
	}
}

// DeleteTestOperation removes a tracked operation and its steps
func (db *TestDatabase) DeleteTestOperation(t *testing.T, operationID string) {
	if _, err := db.Pool.Exec(db.ctx, `DELETE FROM operation_steps WHERE operation_id = $1`, operationID); err != nil {
		t.Logf("Warning: Failed to delete steps for operation %s: %v", operationID, err)
	}
	if _, err := db.Pool.Exec(db.ctx, `DELETE FROM operations WHERE id = $1`, operationID); err != nil {
		t.Logf("Warning: Failed to delete operation %s: %v", operationID, err)
	}
}

// GetUserCount returns the number of users in the database
func (db *TestDatabase) GetUserCount(t *testing.T) int {
	var count int
	err := db.Pool.QueryRow(db.ctx, "SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		t.Fatalf("Failed to get user count: %v", err)
	}
	return count
}

// GetOperationStepCount returns the number of recorded steps for an operation
func (db *TestDatabase) GetOperationStepCount(t *testing.T, operationID string) int {
	var count int
	err := db.Pool.QueryRow(db.ctx,
		"SELECT COUNT(*) FROM operation_steps WHERE operation_id = $1", operationID).Scan(&count)
	if err != nil {
		t.Fatalf("Failed to get operation step count: %v", err)
	}
	return count
}

// HashPassword hashes a password using bcrypt for testing
func (db *TestDatabase) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}
