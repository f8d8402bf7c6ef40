//go:build integration

// Package integration runs the ledger against a real PostgreSQL started with
// testcontainers.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/khata/backend/internal/domain/partner"
	"github.com/khata/backend/internal/infrastructure/config"
	"github.com/khata/backend/internal/infrastructure/migration"
	"github.com/khata/backend/internal/infrastructure/persistence"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm/logger"
)

// TestDB is a migrated database inside its own container
type TestDB struct {
	*persistence.Database
	Container testcontainers.Container
	t         *testing.T
}

// NewTestDB starts a fresh PostgreSQL container, applies the migrations and
// registers cleanup. It skips in short mode.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("khata_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("admin123"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	gormLogger := logger.Default.LogMode(logger.Silent)
	if os.Getenv("TEST_DB_DEBUG") != "" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}
	db, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:       config.DriverPostgres,
		Host:         host,
		Port:         port.Int(),
		User:         "postgres",
		Password:     "admin123",
		DBName:       "khata_test",
		SSLMode:      "disable",
		MaxOpenConns: 8,
		MaxIdleConns: 2,
	}, gormLogger)
	require.NoError(t, err, "Failed to connect to database")

	tdb := &TestDB{Database: db, Container: container, t: t}
	t.Cleanup(tdb.Close)

	tdb.migrate()
	return tdb
}

// Close closes the connection pool and terminates the container
func (tdb *TestDB) Close() {
	if err := tdb.Database.Close(); err != nil {
		tdb.t.Logf("Warning: Failed to close database: %v", err)
	}
	if err := tdb.Container.Terminate(context.Background()); err != nil {
		tdb.t.Logf("Warning: Failed to terminate container: %v", err)
	}
}

// migrate applies the SQL migrations from the source tree. The migrator is
// left open because closing it closes the shared pool.
func (tdb *TestDB) migrate() {
	tdb.t.Helper()

	path := findMigrationsPath()
	require.NotEmpty(tdb.t, path, "Could not find migrations directory")

	sqlDB, err := tdb.DB.DB()
	require.NoError(tdb.t, err)
	m, err := migration.New(sqlDB, path, zap.NewNop())
	require.NoError(tdb.t, err, "Failed to create migrator")
	require.NoError(tdb.t, m.Up(), "Failed to run migrations")
}

// CreatePair registers a supplier and a party and returns their ids
func (tdb *TestDB) CreatePair(supplierName, partyName string) (int64, int64) {
	tdb.t.Helper()
	ctx := context.Background()

	supplier, err := partner.NewSupplier(supplierName, "", "")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormSupplierRepository(tdb.DB).Save(ctx, supplier))

	party, err := partner.NewParty(partyName, "", "")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormPartyRepository(tdb.DB).Save(ctx, party))

	return supplier.ID, party.ID
}

// CreateBank registers a bank and returns its id
func (tdb *TestDB) CreateBank(name string) int64 {
	tdb.t.Helper()
	bank, err := partner.NewBank(name, "")
	require.NoError(tdb.t, err)
	require.NoError(tdb.t, persistence.NewGormBankRepository(tdb.DB).Save(context.Background(), bank))
	return bank.ID
}

// findMigrationsPath walks up from this file to the migrations directory
func findMigrationsPath() string {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return ""
	}
	dir := filepath.Dir(filename)
	for i := 0; i < 5; i++ {
		p := filepath.Join(dir, "migrations")
		if _, err := os.Stat(p); err == nil {
			return p
		}
		dir = filepath.Dir(dir)
	}
	return ""
}
