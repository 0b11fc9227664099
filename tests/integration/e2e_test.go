//go:build integration

package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sistemabancario/corebank/internal/adapter/repository/postgres"
)

var (
	db      *postgres.DB
	baseURL string

	originNumber = "9101"
	destNumber   = "9102"
	testUserID   int64
)

// TestMain sets up the test environment: a database connection for fixtures
// and assertions, and the base URL of a running server.
func TestMain(m *testing.M) {
	ctx := context.Background()

	var err error
	db, err = postgres.NewDB(getDBConnectionString())
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to database: %v", err))
	}
	defer db.Close()

	baseURL = os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	if err := setupFixtures(ctx); err != nil {
		panic(fmt.Sprintf("Failed to set up fixtures: %v", err))
	}

	os.Exit(m.Run())
}

func getDBConnectionString() string {
	if connStr := os.Getenv("DB_CONN_STR"); connStr != "" {
		return connStr
	}
	host := envOr("DB_HOST", "localhost")
	port := envOr("DB_PORT", "5432")
	user := envOr("DB_USER", "postgres")
	password := envOr("DB_PASSWORD", "postgres")
	dbname := envOr("DB_NAME", "corebank")
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		host, port, user, password, dbname)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// setupFixtures is self-healing: it creates the test user and accounts if
// missing and resets their balances to known values.
func setupFixtures(ctx context.Context) error {
	err := db.QueryRowContext(ctx, `
		INSERT INTO users (name, email, registered_at)
		VALUES ('Integration Test', 'integration@corebank.test', NOW())
		ON CONFLICT (email) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`).Scan(&testUserID)
	if err != nil {
		return fmt.Errorf("failed to upsert test user: %w", err)
	}

	for number, balance := range map[string]string{originNumber: "100.00", destNumber: "50.00"} {
		_, err := db.ExecContext(ctx, `
			INSERT INTO accounts (user_id, account_number, balance, account_kind, created_at)
			VALUES ($1, $2, $3, 'CHECKING', NOW())
			ON CONFLICT (account_number) DO UPDATE SET balance = EXCLUDED.balance
		`, testUserID, number, balance)
		if err != nil {
			return fmt.Errorf("failed to upsert account %s: %w", number, err)
		}
	}
	return nil
}

func accountBalance(t *testing.T, number string) decimal.Decimal {
	t.Helper()
	var balanceStr string
	err := db.QueryRowContext(context.Background(),
		`SELECT balance FROM accounts WHERE account_number = $1`, number).Scan(&balanceStr)
	require.NoError(t, err)
	return decimal.RequireFromString(balanceStr)
}

type transferResult struct {
	Message       string `json:"message"`
	TransactionID int64  `json:"transaction_id"`
}

func postTransfer(t *testing.T, origin, dest, amount string) (int, transferResult) {
	t.Helper()
	body, _ := json.Marshal(map[string]string{
		"origin_account_number":      origin,
		"destination_account_number": dest,
		"amount":                     amount,
	})
	resp, err := http.Post(baseURL+"/api/accounts/transfer", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	var result transferResult
	_ = json.NewDecoder(resp.Body).Decode(&result)
	return resp.StatusCode, result
}

func TestTransfer_EndToEnd(t *testing.T) {
	require.NoError(t, setupFixtures(context.Background()))

	status, result := postTransfer(t, originNumber, destNumber, "30.00")

	require.Equal(t, http.StatusOK, status)
	assert.Greater(t, result.TransactionID, int64(0))

	assert.True(t, accountBalance(t, originNumber).Equal(decimal.RequireFromString("70.00")))
	assert.True(t, accountBalance(t, destNumber).Equal(decimal.RequireFromString("80.00")))

	var recordStatus string
	err := db.QueryRowContext(context.Background(),
		`SELECT status FROM transactions WHERE id = $1`, result.TransactionID).Scan(&recordStatus)
	require.NoError(t, err)
	assert.Equal(t, "COMPLETED", recordStatus)
}

func TestTransfer_UnknownOriginLeavesStateUntouched(t *testing.T) {
	require.NoError(t, setupFixtures(context.Background()))

	status, _ := postTransfer(t, "0000", destNumber, "30.00")

	assert.Equal(t, http.StatusNotFound, status)
	assert.True(t, accountBalance(t, destNumber).Equal(decimal.RequireFromString("50.00")))
}

func TestTransfer_ConcurrentRequestsBothApply(t *testing.T) {
	require.NoError(t, setupFixtures(context.Background()))

	var wg sync.WaitGroup
	ids := make(chan int64, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			status, result := postTransfer(t, originNumber, destNumber, "10.00")
			assert.Equal(t, http.StatusOK, status)
			ids <- result.TransactionID
		}()
	}
	wg.Wait()
	close(ids)

	first, second := <-ids, <-ids
	assert.NotEqual(t, first, second)

	// Give best-effort audit writes a moment to land before asserting.
	time.Sleep(100 * time.Millisecond)

	assert.True(t, accountBalance(t, originNumber).Equal(decimal.RequireFromString("80.00")))
	assert.True(t, accountBalance(t, destNumber).Equal(decimal.RequireFromString("70.00")))
}
