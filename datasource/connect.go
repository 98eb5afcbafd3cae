package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"

	"github.com/carlosnayan/prisma-schema/internal/logger"
	"github.com/carlosnayan/prisma-schema/internal/schemaerr"
)

// DefaultConnectTimeout bounds the connection check when the caller's
// context carries no deadline.
const DefaultConnectTimeout = 5 * time.Second

// Connect opens a connection to the database described by info and
// verifies it with a ping. Driver errors are mapped to the P1xxx error
// codes: P1000 for authentication failures, P1001 when the server is
// unreachable, P1003 when the database does not exist, P1008 on timeout.
func Connect(ctx context.Context, info *Info) (*sql.DB, error) {
	logger.Debug("connecting to %s", logger.RedactURL(info.URL))

	db, err := sql.Open(info.Provider.DriverName(), driverURL(info))
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultConnectTimeout)
		defer cancel()
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, schemaerr.MapDriverError(err)
	}

	return db, nil
}

// driverURL rewrites the connection URL into the form the driver
// expects. The mysql driver takes a DSN without the scheme, and sqlite
// takes a plain file path.
func driverURL(info *Info) string {
	switch info.Provider {
	case MySQL:
		host := info.Host
		if host == "" {
			host = "localhost:3306"
		}
		if u, err := url.Parse(info.URL); err == nil && u.User != nil {
			return fmt.Sprintf("%s@tcp(%s)/%s", u.User.String(), host, info.Database)
		}
		return fmt.Sprintf("tcp(%s)/%s", host, info.Database)
	case SQLite:
		if info.Database != "" {
			return info.Database
		}
		return info.URL
	}
	return info.URL
}
