// Package catalog lists the tables and views of a database environment.
package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" driver
	_ "modernc.org/sqlite"             // registers the "sqlite" driver

	"github.com/ukaji3/srcmatrix-go/pkg/srcmatrix/models"
)

// Dialect selects the catalog query. Its value is the database/sql driver name.
type Dialect string

const (
	// Postgres reads information_schema through the pgx driver.
	Postgres Dialect = "pgx"
	// SQLite reads sqlite_master through the pure Go sqlite driver.
	SQLite Dialect = "sqlite"
)

// Object types as reported by information_schema.tables.
const (
	TypeTable = "BASE TABLE"
	TypeView  = "VIEW"
)

// ErrUnknownDialect is returned for a driver name with no catalog query.
var ErrUnknownDialect = errors.New("unknown catalog dialect")

// Environment is one named database to read the catalog from.
type Environment struct {
	Name    string
	Driver  string
	DSN     string
	Schemas []string
}

// ParseDialect validates a driver name.
func ParseDialect(driver string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(driver)); d {
	case Postgres, SQLite:
		return d, nil
	case "postgres", "postgresql":
		return Postgres, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDialect, driver)
}

// Reader queries the object catalog of one database.
type Reader struct {
	db      *sql.DB
	dialect Dialect
}

// NewReader wraps an open database handle.
func NewReader(db *sql.DB, dialect Dialect) *Reader {
	return &Reader{db: db, dialect: dialect}
}

// Open connects to the environment and verifies the connection.
func Open(ctx context.Context, env Environment) (*Reader, error) {
	dialect, err := ParseDialect(env.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(string(dialect), env.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s connection: %w", env.Name, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping %s: %w", env.Name, err)
	}

	return NewReader(db, dialect), nil
}

// Close closes the underlying database handle.
func (r *Reader) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// Objects returns the tables and views ordered by schema and name. When
// schemas are given only objects in those schemas are returned.
func (r *Reader) Objects(ctx context.Context, schemas ...string) ([]models.DBObject, error) {
	if r.db == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	query, args, err := r.objectsQuery(schemas)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	objects := []models.DBObject{}
	for rows.Next() {
		var o models.DBObject
		if err := rows.Scan(&o.Schema, &o.Name, &o.Type, &o.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan catalog row: %w", err)
		}
		objects = append(objects, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating catalog: %w", err)
	}

	return objects, nil
}

const postgresObjects = `
	SELECT
		t.table_schema,
		t.table_name,
		t.table_type,
		COALESCE(obj_description(c.oid, 'pg_class'), '')
	FROM information_schema.tables t
	LEFT JOIN pg_catalog.pg_namespace n ON n.nspname = t.table_schema
	LEFT JOIN pg_catalog.pg_class c ON c.relnamespace = n.oid AND c.relname = t.table_name
	WHERE t.table_type IN ('BASE TABLE', 'VIEW')
	AND t.table_schema NOT IN ('pg_catalog', 'information_schema')`

const sqliteObjects = `
	SELECT
		'main',
		name,
		CASE type WHEN 'table' THEN 'BASE TABLE' ELSE 'VIEW' END,
		''
	FROM sqlite_master
	WHERE type IN ('table', 'view')
	AND name NOT LIKE 'sqlite_%'`

func (r *Reader) objectsQuery(schemas []string) (string, []any, error) {
	var (
		query string
		args  []any
	)

	switch r.dialect {
	case Postgres:
		query = postgresObjects
		if len(schemas) > 0 {
			marks := make([]string, len(schemas))
			for i, s := range schemas {
				marks[i] = "$" + strconv.Itoa(i+1)
				args = append(args, s)
			}
			query += "\n\tAND t.table_schema IN (" + strings.Join(marks, ", ") + ")"
		}
		query += "\n\tORDER BY t.table_schema, t.table_name"
	case SQLite:
		query = sqliteObjects
		if len(schemas) > 0 {
			marks := make([]string, len(schemas))
			for i, s := range schemas {
				marks[i] = "?"
				args = append(args, s)
			}
			query += "\n\tAND 'main' IN (" + strings.Join(marks, ", ") + ")"
		}
		query += "\n\tORDER BY name"
	default:
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownDialect, r.dialect)
	}

	return query, args, nil
}
