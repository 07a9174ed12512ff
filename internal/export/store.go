// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export reads the researcher database and writes the JSON
// documents the directory serves: the experts list, per-expert details,
// and similar-profile links.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/research-directory/pkg/types"
)

// Tables lists the source tables the exporter reads, in inspection order.
var Tables = []string{
	"users_researcher",
	"users_employee",
	"researcher_expertise",
	"papers_researchers",
	"users_college",
	"users_department",
	"papers",
	"paper_keywords",
	"users_similarprofile",
}

// Store is a read connection to the researcher database.
type Store struct {
	db *sqlx.DB
}

// Open connects to the database named by cfg.
func Open(cfg types.ExportConfig) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("export database DSN is empty: set export.dsn or the export-dsn secret")
	}
	driver := cfg.Driver
	if driver == "" {
		driver = "sqlite3"
	}
	// sqlite3 would otherwise create a missing file.
	if driver == "sqlite3" && !strings.HasPrefix(cfg.DSN, "file:") && cfg.DSN != ":memory:" {
		if _, err := os.Stat(cfg.DSN); err != nil {
			return nil, fmt.Errorf("opening database: %w", err)
		}
	}
	db, err := sqlx.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Column describes one column of a source table.
type Column struct {
	CID       int     `db:"cid"`
	Name      string  `db:"name"`
	Type      string  `db:"type"`
	NotNull   bool    `db:"notnull"`
	Default   *string `db:"dflt_value"`
	PrimaryKey int     `db:"pk"`
}

// Inspect writes every table name, then the columns of each table the
// exporter reads. Missing tables are reported, not treated as errors.
func (s *Store) Inspect(ctx context.Context, w io.Writer) error {
	var tables []string
	if err := s.db.SelectContext(ctx, &tables,
		`SELECT name FROM sqlite_master WHERE type = 'table' ORDER BY name`); err != nil {
		return fmt.Errorf("listing tables: %w", err)
	}

	fmt.Fprintln(w, "All tables in database:")
	for _, t := range tables {
		fmt.Fprintf(w, "  %s\n", t)
	}
	fmt.Fprintln(w)

	for _, name := range Tables {
		if !slices.Contains(tables, name) {
			fmt.Fprintf(w, "(table %s not found)\n\n", name)
			continue
		}
		var cols []Column
		if err := s.db.SelectContext(ctx, &cols, `SELECT cid, name, type, "notnull", dflt_value, pk FROM pragma_table_info(?)`, name); err != nil {
			return fmt.Errorf("describing %s: %w", name, err)
		}
		fmt.Fprintf(w, "%s:\n", name)
		for _, c := range cols {
			flags := ""
			if c.PrimaryKey > 0 {
				flags += " PRIMARY KEY"
			}
			if c.NotNull {
				flags += " NOT NULL"
			}
			fmt.Fprintf(w, "  %-24s %s%s\n", c.Name, c.Type, flags)
		}
		fmt.Fprintln(w)
	}
	return nil
}

func (s *Store) hasTable(ctx context.Context, name string) (bool, error) {
	var n int
	if err := s.db.GetContext(ctx, &n,
		`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name); err != nil {
		return false, fmt.Errorf("checking table %s: %w", name, err)
	}
	return n > 0, nil
}
