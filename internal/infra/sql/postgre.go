package sql

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const (
	maxRetries    = 10
	_retryBackoff = 5 * time.Second
	_pingTimeout  = 5 * time.Second
)

func NewPosgreORM(dsn string, timeout time.Duration) (*DB, error) {
	pass, ok := os.LookupEnv("INSURANCE_SERVER_POSTGRES_PASSWORD")
	if ok {
		dsn = fmt.Sprintf("%s password=%s", dsn, pass)
	}

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	return &DB{
		DB:                   gormDB,
		autoMigrationEnabled: true,
		timeout:              timeout,
	}, nil
}

var _ Database = (*PostgreDatabase)(nil)

// PostgreDatabase is a raw pgx pool used to wait for the server to accept
// connections before the ORM migrates its tables.
type PostgreDatabase struct {
	url     string
	Conn    *pgxpool.Pool
	backoff time.Duration
}

func NewPosgreDatabase(url string) *PostgreDatabase {
	return &PostgreDatabase{
		url:     url,
		backoff: _retryBackoff,
	}
}

func (d *PostgreDatabase) Open(ctx context.Context) error {
	for try := range maxRetries {
		conn, err := pgxpool.New(ctx, d.url)
		if err == nil {
			if err = d.ping(ctx, conn); err == nil {
				d.Conn = conn
				return nil
			}
			conn.Close()
		}

		slog.Warn("database not ready",
			slog.Int("try", try+1),
			slog.String("error", err.Error()))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d.backoff):
		}
	}

	return fmt.Errorf("imposible to connect to database after %d retries", maxRetries)
}

func (d *PostgreDatabase) Ping(ctx context.Context) error {
	if d.Conn == nil {
		return ErrDatabaseClosed
	}
	return d.ping(ctx, d.Conn)
}

func (d *PostgreDatabase) ping(ctx context.Context, conn *pgxpool.Pool) error {
	pingCtx, cancelFn := context.WithTimeout(ctx, _pingTimeout)
	defer cancelFn()

	if err := conn.Ping(pingCtx); err != nil {
		return fmt.Errorf("postgre ping: %w", err)
	}
	return nil
}

func (d *PostgreDatabase) Close() {
	if d.Conn != nil {
		d.Conn.Close()
	}
}
