// Package datasource resolves datasource blocks into connection
// information: provider detection, URL parsing and environment variable
// resolution for url values.
package datasource

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/carlosnayan/prisma-schema/config"
	"github.com/carlosnayan/prisma-schema/internal/schemaerr"
	"github.com/carlosnayan/prisma-schema/parser"
)

// Provider identifies a supported database provider.
type Provider string

const (
	PostgreSQL Provider = "postgresql"
	MySQL      Provider = "mysql"
	SQLite     Provider = "sqlite"
)

// DriverName returns the database/sql driver name for the provider.
func (p Provider) DriverName() string {
	switch p {
	case PostgreSQL:
		return "pgx"
	case MySQL:
		return "mysql"
	case SQLite:
		return "sqlite3"
	}
	return string(p)
}

// DisplayName returns the provider name as shown to users.
func (p Provider) DisplayName() string {
	switch p {
	case PostgreSQL:
		return "PostgreSQL"
	case MySQL:
		return "MySQL"
	case SQLite:
		return "SQLite"
	}
	return string(p)
}

// ParseProvider normalizes a provider name from a schema datasource block.
func ParseProvider(name string) (Provider, error) {
	switch strings.ToLower(name) {
	case "postgresql", "postgres":
		return PostgreSQL, nil
	case "mysql":
		return MySQL, nil
	case "sqlite":
		return SQLite, nil
	}
	return "", schemaerr.NewValidationError(fmt.Sprintf("unsupported provider %q (expected postgresql, mysql or sqlite)", name))
}

// DetectProvider detects the provider from a connection URL.
func DetectProvider(dbURL string) Provider {
	lower := strings.ToLower(dbURL)

	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return PostgreSQL
	case strings.HasPrefix(lower, "mysql://"):
		return MySQL
	case strings.HasPrefix(lower, "sqlite://"), strings.HasPrefix(lower, "file:"):
		return SQLite
	}

	// Default to PostgreSQL
	return PostgreSQL
}

// Info holds connection details extracted from a database URL.
type Info struct {
	Provider Provider
	Host     string
	Database string
	Schema   string
	URL      string
}

// ParseURL parses a database URL and extracts connection information.
func ParseURL(dbURL string) *Info {
	info := &Info{
		Provider: DetectProvider(dbURL),
		Schema:   "public", // default
		URL:      dbURL,
	}

	u, err := url.Parse(dbURL)
	if err != nil {
		return info
	}

	info.Host = u.Host

	if u.Path != "" {
		info.Database = strings.TrimPrefix(u.Path, "/")
	} else if u.Opaque != "" {
		// file:dev.db style URLs
		info.Database = u.Opaque
	}

	if schema := u.Query().Get("schema"); schema != "" {
		info.Schema = schema
	}

	return info
}

// String formats the info the way the CLI reports a datasource.
func (i *Info) String() string {
	return fmt.Sprintf("%s database %q, schema %q at %q", i.Provider.DisplayName(), i.Database, i.Schema, i.Host)
}

// Resolve extracts the connection info from a schema's datasource block,
// resolving env("VAR") references. A missing environment variable is
// reported as P1011, a provider/URL scheme mismatch as P1012.
func Resolve(schema *parser.Schema) (*Info, error) {
	ds := schema.Datasource()
	if ds == nil {
		return nil, schemaerr.NewValidationError("schema has no datasource block")
	}

	providerValue := ds.Field("provider")
	if providerValue == nil {
		return nil, schemaerr.NewValidationError(fmt.Sprintf("datasource %q is missing the provider field", ds.Name))
	}
	providerName, err := resolveValue(providerValue)
	if err != nil {
		return nil, err
	}
	provider, err := ParseProvider(providerName)
	if err != nil {
		return nil, err
	}

	urlValue := ds.Field("url")
	if urlValue == nil {
		return nil, schemaerr.NewValidationError(fmt.Sprintf("datasource %q is missing the url field", ds.Name))
	}
	dbURL, err := resolveValue(urlValue)
	if err != nil {
		return nil, err
	}

	if detected := DetectProvider(dbURL); detected != provider {
		return nil, schemaerr.NewValidationError(fmt.Sprintf("the URL scheme does not match the provider %q", provider))
	}

	info := ParseURL(dbURL)
	info.Provider = provider
	return info, nil
}

// resolveValue turns a datasource field value into a string, resolving
// env("VAR") calls and ${VAR} references against the environment.
func resolveValue(v parser.Value) (string, error) {
	switch val := v.(type) {
	case *parser.StringValue:
		return config.ExpandStrict(val.Value)
	case *parser.FunctionCall:
		if val.Name != "env" {
			return "", schemaerr.NewValidationError(fmt.Sprintf("unknown function %q in datasource field", val.Name))
		}
		if len(val.Args) != 1 {
			return "", schemaerr.NewValidationError("env() takes exactly one argument")
		}
		name, ok := val.Args[0].(*parser.StringValue)
		if !ok {
			return "", schemaerr.NewValidationError("env() argument must be a string")
		}
		value, set := os.LookupEnv(name.Value)
		if !set {
			return "", schemaerr.NewEnvVarError(name.Value)
		}
		return value, nil
	}
	return "", schemaerr.NewValidationError(fmt.Sprintf("unexpected value %s in datasource field", v))
}
