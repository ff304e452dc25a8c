//-------------------------------------------------------------------------
//
// pgEdge Textile Data Generator
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil gives PostgreSQL integration tests a throwaway database
// per test.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	// ConnEnv overrides DefaultTestConnString.
	ConnEnv = "TEXTILEGEN_TEST_CONN"

	// DefaultTestConnString points at the maintenance database of a local
	// server. Test databases are created from it.
	DefaultTestConnString = "postgres://postgres@localhost:5432/postgres"

	// TestDBPrefix starts the name of every database created here, so
	// leftovers are easy to find.
	TestDBPrefix = "textilegen_test_"
)

// PostgresAvailable returns the maintenance connection string when the
// server answers a ping, or "" otherwise.
func PostgresAvailable() string {
	connStr := os.Getenv(ConnEnv)
	if connStr == "" {
		connStr = DefaultTestConnString
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return ""
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		return ""
	}
	return connStr
}

// SkipIfNoPostgres skips t when no server is reachable.
func SkipIfNoPostgres(t *testing.T) string {
	t.Helper()
	connStr := PostgresAvailable()
	if connStr == "" {
		t.Skipf("PostgreSQL not reachable (set %s), skipping", ConnEnv)
	}
	return connStr
}

// CreateTestDB creates an empty database named
// textilegen_test_<label>_<random hex> and returns a connection string for it.
func CreateTestDB(t *testing.T, baseConnStr, label string) string {
	t.Helper()

	token := make([]byte, 8)
	if _, err := rand.Read(token); err != nil {
		t.Fatalf("Failed to generate database name: %v", err)
	}
	dbName := TestDBPrefix + label + "_" + hex.EncodeToString(token)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	ident := pgx.Identifier{dbName}.Sanitize()
	if _, err := pool.Exec(ctx, "CREATE DATABASE "+ident); err != nil {
		t.Fatalf("Failed to create database %s: %v", dbName, err)
	}

	connStr, err := withDatabase(baseConnStr, dbName)
	if err != nil {
		t.Fatalf("Failed to build connection string: %v", err)
	}
	return connStr
}

// withDatabase returns baseConnStr pointed at another database. Only URL
// connection strings are supported.
func withDatabase(baseConnStr, dbName string) (string, error) {
	u, err := url.Parse(baseConnStr)
	if err != nil {
		return "", err
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return "", fmt.Errorf("%s must be a postgres:// URL", ConnEnv)
	}
	u.Path = "/" + dbName
	return u.String(), nil
}

// DropTestDB terminates the sessions of dbName and drops it. Failures are
// logged, not fatal.
func DropTestDB(t *testing.T, baseConnStr, dbName string) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, baseConnStr)
	if err != nil {
		t.Logf("Warning: could not connect to drop %s: %v", dbName, err)
		return
	}
	defer pool.Close()

	_, _ = pool.Exec(ctx, `
        SELECT pg_terminate_backend(pid)
        FROM pg_stat_activity
        WHERE datname = $1 AND pid <> pg_backend_pid()
    `, dbName)

	if _, err := pool.Exec(ctx, "DROP DATABASE IF EXISTS "+pgx.Identifier{dbName}.Sanitize()); err != nil {
		t.Logf("Warning: could not drop %s: %v", dbName, err)
	}
}

// GetDBNameFromConnStr returns the database named in connStr.
func GetDBNameFromConnStr(connStr string) string {
	config, err := pgxpool.ParseConfig(connStr)
	if err != nil {
		return ""
	}
	return config.ConnConfig.Database
}

// ConnectTestDB opens a pool on a test database.
func ConnectTestDB(t *testing.T, connStr string) *pgxpool.Pool {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	return pool
}

// NewTestDB creates a database for t, connects to it and registers its
// cleanup. The test is skipped when no server is reachable.
func NewTestDB(t *testing.T, label string) *pgxpool.Pool {
	t.Helper()

	baseConnStr := SkipIfNoPostgres(t)
	connStr := CreateTestDB(t, baseConnStr, label)

	cleanup := NewTestCleanup(t, baseConnStr, GetDBNameFromConnStr(connStr))
	t.Cleanup(cleanup.Cleanup)

	pool := ConnectTestDB(t, connStr)
	cleanup.SetPool(pool)
	return pool
}

// TestCleanup closes a test pool and drops its database.
type TestCleanup struct {
	t           *testing.T
	baseConnStr string
	dbName      string
	pool        *pgxpool.Pool
}

// NewTestCleanup returns a cleanup for dbName.
func NewTestCleanup(t *testing.T, baseConnStr, dbName string) *TestCleanup {
	return &TestCleanup{
		t:           t,
		baseConnStr: baseConnStr,
		dbName:      dbName,
	}
}

// SetPool registers the pool to close before dropping.
func (tc *TestCleanup) SetPool(pool *pgxpool.Pool) {
	tc.pool = pool
}

// Cleanup closes the pool and drops the database. A failed test keeps its
// database so the generated data can be inspected.
func (tc *TestCleanup) Cleanup() {
	if tc.pool != nil {
		tc.pool.Close()
	}
	if tc.dbName == "" {
		return
	}
	if tc.t.Failed() {
		tc.t.Logf("Keeping database %s for inspection", tc.dbName)
		return
	}
	DropTestDB(tc.t, tc.baseConnStr, tc.dbName)
}
