package repository

import (
	"context"
	"log"
	"os"
	"testing"

	"wedding-gateway/config"
	"wedding-gateway/internal/database"

	"github.com/jackc/pgx/v5/pgxpool"
)

// testDB is nil when TEST_DATABASE_URL is unset; integration tests skip in that case.
var testDB *pgxpool.Pool

const testSchema = `
	CREATE TABLE IF NOT EXISTS guest_photos (
		id BIGSERIAL PRIMARY KEY,
		url TEXT NOT NULL,
		uploader_name TEXT NOT NULL,
		uploader_email TEXT,
		uploader_whatsapp TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS trivia_results (
		id BIGSERIAL PRIMARY KEY,
		score INT NOT NULL,
		answers JSONB,
		user_id TEXT,
		guest_name TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS rsvp_guests (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		attending BOOLEAN,
		guests INT,
		dietary TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	CREATE TABLE IF NOT EXISTS song_requests (
		id BIGSERIAL PRIMARY KEY,
		song_name TEXT NOT NULL,
		artist_name TEXT,
		requester_name TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
`

func TestMain(m *testing.M) {
	cfg := config.LoadTestConfig()
	if cfg.Database.URL == "" {
		log.Println("TEST_DATABASE_URL not set, repository integration tests will be skipped")
		os.Exit(m.Run())
	}

	var err error
	testDB, err = database.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize test database: %v", err)
	}
	if _, err := testDB.Exec(context.Background(), testSchema); err != nil {
		log.Fatalf("Failed to create test schema: %v", err)
	}

	log.Println("Running repository tests...")
	code := m.Run()
	testDB.Close()

	os.Exit(code)
}

func getTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testDB == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	return testDB
}

func setupTestWithTruncate(t *testing.T) *pgxpool.Pool {
	t.Helper()
	pool := getTestDB(t)

	_, err := pool.Exec(context.Background(), "TRUNCATE guest_photos, trivia_results, rsvp_guests, song_requests RESTART IDENTITY")
	if err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
	return pool
}

func strPtr(s string) *string {
	return &s
}
