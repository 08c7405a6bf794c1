package postgres

import (
	"errors"
	"net"
	"net/url"
	"reserva/config"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	driverName = "postgres"

	maxIdleConnections = 10
	maxOpenConnections = 10
	connMaxLifetime    = 30 * time.Minute
)

// Connection holds the read and write pools. Both are opened eagerly; the
// process does not start without them.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  Open("read", pg, pg.Read),
		Write: Open("write", pg, pg.Write),
	}
}

func (c *Connection) Close() error {
	return errors.Join(c.Read.Close(), c.Write.Close())
}

// ErrorCode returns the SQLSTATE carried by err, or an empty string when err
// did not come from the server.
func ErrorCode(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	return ""
}

// WriteDSN is the connection string of the write pool, used by migrations.
func WriteDSN(cfg config.Config) string {
	return DSN(cfg.DB.Postgres, cfg.DB.Postgres.Write)
}

// DSN renders node as a postgres URL. The database name carries the
// configured prefix and sslmode defaults to disable.
func DSN(pg config.Postgres, node config.Node) string {
	query := url.Values{}

	sslMode := node.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}

	query.Set("sslmode", sslMode)

	if node.Timezone != "" {
		query.Set("timezone", node.Timezone)
	}

	dsn := url.URL{
		Scheme:   driverName,
		User:     url.UserPassword(node.Username, node.Password),
		Host:     net.JoinHostPort(node.Host, node.Port),
		Path:     "/" + pg.Prefix + node.Name,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// Open connects to node, retrying MaxRetry times with RetryWaitTime seconds
// between attempts, and exits the process when every attempt failed.
func Open(role string, pg config.Postgres, node config.Node) *sqlx.DB {
	dsn := DSN(pg, node)
	logger := log.With().Str("role", role).Str("host", node.Host).Str("port", node.Port).Str("db", pg.Prefix+node.Name).Logger()

	var err error

	for attempt := 1; attempt <= max(1, pg.MaxRetry); attempt++ {
		var db *sqlx.DB

		db, err = sqlx.Connect(driverName, dsn)
		if err == nil {
			db.SetMaxIdleConns(maxIdleConnections)
			db.SetMaxOpenConns(maxOpenConnections)
			db.SetConnMaxLifetime(connMaxLifetime)

			logger.Info().Msg("connected to database")

			return db
		}

		logger.Error().Err(err).Int("attempt", attempt).Msg("failed connecting to database, retrying")

		time.Sleep(time.Duration(pg.RetryWaitTime) * time.Second)
	}

	logger.Fatal().Err(err).Msg("giving up connecting to database")

	return nil
}
