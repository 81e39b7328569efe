// Package testdb spins up a throwaway Postgres container for integration
// tests. One container is shared by all tests in the process; each test
// truncates what it needs via Reset.
package testdb

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/database"
)

var (
	once    sync.Once
	shared  *gorm.DB
	initErr error
)

// New returns a migrated gorm handle backed by the shared test container.
// Skipped under -short since it needs Docker.
func New(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping database test in short mode")
	}

	once.Do(func() {
		shared, initErr = start()
	})
	if initErr != nil {
		t.Fatalf("start test database: %v", initErr)
	}
	return shared
}

func start() (*gorm.DB, error) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("stackit_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// Reset empties every table so the test starts from a clean store.
func Reset(t *testing.T, db *gorm.DB) {
	t.Helper()
	err := db.Exec(
		`TRUNCATE TABLE notifications, votes, comments, answers, question_tags, questions, tags, users RESTART IDENTITY CASCADE`,
	).Error
	if err != nil {
		t.Fatalf("reset test database: %v", err)
	}
}
