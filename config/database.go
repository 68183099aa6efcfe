package config

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/sethvargo/go-retry"
)

// DBConnections holds the open database pools.
type DBConnections struct {
	StagingDB *sql.DB
	MartDB    *sql.DB
}

// ConnectDatabases opens the staging and mart pools and verifies both with
// a ping under exponential backoff. The mart store may be briefly
// unavailable between scheduled runs; the retry covers restarts, not
// persistent outages.
func ConnectDatabases(ctx context.Context, cfg *PipelineConfig) (*DBConnections, error) {
	var connections DBConnections
	var err error

	connections.StagingDB, err = openDatabase(ctx, cfg.Staging)
	if err != nil {
		return nil, fmt.Errorf("connecting to staging database: %w", err)
	}

	connections.MartDB, err = openDatabase(ctx, cfg.Mart)
	if err != nil {
		connections.StagingDB.Close()
		return nil, fmt.Errorf("connecting to mart database: %w", err)
	}

	log.Println("Connected to staging and mart databases")
	return &connections, nil
}

func openDatabase(ctx context.Context, cfg DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", cfg.DBName, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	backoff := retry.WithMaxRetries(5, retry.NewExponential(time.Second))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if pingErr := db.PingContext(ctx); pingErr != nil {
			return retry.RetryableError(pingErr)
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging %s: %w", cfg.DBName, err)
	}

	return db, nil
}

// CloseDatabases closes both pools.
func CloseDatabases(connections *DBConnections) {
	if connections.StagingDB != nil {
		if err := connections.StagingDB.Close(); err != nil {
			log.Printf("closing staging database connection: %v", err)
		}
	}

	if connections.MartDB != nil {
		if err := connections.MartDB.Close(); err != nil {
			log.Printf("closing mart database connection: %v", err)
		}
	}
}
