package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/pulseclub/go-pulse/env"
	"github.com/pulseclub/go-pulse/service/logger"
	"github.com/pulseclub/go-pulse/util/retry"

	// register postgres driver
	_ "github.com/jackc/pgx/v4/stdlib"
)

var DefaultConnectRetry = retry.Retry{MinWait: 2, MaxWait: 4, MaxRetries: 3}

type connectionParams struct {
	user     string
	password string
	dbname   string
	host     string
	port     int
	retry    *retry.Retry
}

func (c *connectionParams) toConnectionString() string {
	port := c.port
	if port == 0 {
		port = 5432
	}

	connStr := fmt.Sprintf("user=%s dbname=%s host=%s port=%d", c.user, c.dbname, c.host, port)

	// Empty passwords should be omitted so they don't interfere with other parameters
	if c.password != "" {
		connStr += fmt.Sprintf(" password=%s", c.password)
	}

	return connStr
}

func newConnectionParamsFromEnv() connectionParams {
	return connectionParams{
		user:     env.GetString("POSTGRES_USER"),
		password: env.GetString("POSTGRES_PASSWORD"),
		dbname:   env.GetString("POSTGRES_DB"),
		host:     env.GetString("POSTGRES_HOST"),
		port:     env.GetInt("POSTGRES_PORT"),
		retry:    &DefaultConnectRetry,
	}
}

type ConnectionOption func(params *connectionParams)

func WithUser(user string) ConnectionOption {
	return func(params *connectionParams) {
		params.user = user
	}
}

func WithPassword(password string) ConnectionOption {
	return func(params *connectionParams) {
		params.password = password
	}
}

func WithDBName(dbname string) ConnectionOption {
	return func(params *connectionParams) {
		params.dbname = dbname
	}
}

func WithHost(host string) ConnectionOption {
	return func(params *connectionParams) {
		params.host = host
	}
}

func WithPort(port int) ConnectionOption {
	return func(params *connectionParams) {
		params.port = port
	}
}

func WithNoRetries() ConnectionOption {
	return func(params *connectionParams) {
		params.retry = nil
	}
}

// MustCreateClient panics when it fails to create a new database connection
func MustCreateClient(opts ...ConnectionOption) *sql.DB {
	db, err := NewClient(opts...)
	if err != nil {
		panic(err)
	}
	return db
}

// NewClient creates a new database connection, retrying per the configured policy
func NewClient(opts ...ConnectionOption) (*sql.DB, error) {
	params := newConnectionParamsFromEnv()
	for _, opt := range opts {
		opt(&params)
	}

	db, err := sql.Open("pgx", params.toConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(time.Hour)

	ping := func(ctx context.Context) error {
		return db.PingContext(ctx)
	}

	if params.retry == nil {
		if err := ping(context.Background()); err != nil {
			return nil, err
		}
		return db, nil
	}

	err = retry.RetryFunc(context.Background(), ping, func(err error) bool {
		logger.For(nil).Warnf("retrying postgres connection after error: %s", err)
		return true
	}, *params.retry)
	if err != nil {
		return nil, err
	}

	return db, nil
}
