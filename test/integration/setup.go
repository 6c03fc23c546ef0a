package integration

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"urban-luxury/internal/auth"
	"urban-luxury/internal/config"
	"urban-luxury/internal/database"
	"urban-luxury/internal/events"
	"urban-luxury/internal/handler"
	"urban-luxury/internal/repository"
	"urban-luxury/internal/router"
	"urban-luxury/internal/service"
	"urban-luxury/internal/storage"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testPublicURL     = "http://localhost:5001"
	testAdminPassword = "integration-pass"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container, connects through the
// application's pool constructor and applies the schema.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	dbConfig := config.DatabaseConfig{
		URL:             connStr,
		MaxConnections:  10,
		MinConnections:  1,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	if err := database.Migrate(ctx, pool, logger); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"orders", "products", "brands"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}

// TestServer is the fully wired API backed by a test database and a
// temporary upload directory.
type TestServer struct {
	Handler http.Handler
	Store   *storage.LocalStore
	Broker  *events.Broker
}

// SetupTestServer wires repositories, services and handlers the same way the
// server binary does.
func SetupTestServer(t *testing.T, testDB *TestDB) *TestServer {
	t.Helper()

	logger := zerolog.Nop()

	store, err := storage.NewLocalStore(t.TempDir(), logger)
	if err != nil {
		t.Fatalf("failed to create upload store: %v", err)
	}

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("failed to hash admin password: %v", err)
	}
	authenticator, err := auth.NewAuthenticator(hash, "integration-secret", time.Hour, logger)
	if err != nil {
		t.Fatalf("failed to create authenticator: %v", err)
	}

	broker := events.NewBroker(logger)

	// Initialize repositories
	brandRepo := repository.NewBrandRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	// Initialize services
	brandService := service.NewBrandService(brandRepo, store, broker, testPublicURL, logger)
	productService := service.NewProductService(productRepo, store, broker, testPublicURL, logger)
	orderService := service.NewOrderService(orderRepo, broker, logger)

	h := router.New(router.Handlers{
		Auth:    handler.NewAuthHandler(authenticator, logger),
		Brand:   handler.NewBrandHandler(brandService, logger),
		Product: handler.NewProductHandler(productService, logger),
		Order:   handler.NewOrderHandler(orderService, logger),
		Upload:  handler.NewUploadHandler(store, logger),
		Event:   handler.NewEventHandler(broker, logger),
		Health:  handler.NewHealthHandler(testDB.Pool, logger),
	}, router.Options{
		AllowedOrigins: []string{"http://localhost:3000"},
		MaxUploadBytes: 10 << 20,
		Verifier:       authenticator,
	}, logger)

	return &TestServer{Handler: h, Store: store, Broker: broker}
}
