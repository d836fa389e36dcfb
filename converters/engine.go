package converters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/darianmavgo/mkinsert/converters/common"

	_ "modernc.org/sqlite"
)

var (
	ErrEmptyScript = errors.New("script has no statements")
	ErrInterrupted = errors.New("operation interrupted")
)

// ErrorTable receives statements that failed while ApplyOptions.LogErrors
// is set.
const ErrorTable = "_mkinsert_errors"

const (
	createErrorTableSQL = `CREATE TABLE IF NOT EXISTS ` + ErrorTable + ` (
	timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
	message TEXT,
	table_name TEXT,
	statement TEXT
)`
	logErrorSQL = `INSERT INTO ` + ErrorTable + ` (message, table_name, statement) VALUES (?, ?, ?)`
)

// Script is a generated statement list plus the target table description
// needed to create the table first.
type Script struct {
	Table      string
	Statements []string
	Columns    []string // Target column identifiers, for CREATE TABLE
	Types      []string // SQL type per column; empty entries mean TEXT
}

// ApplyOptions defines configuration for applying a script.
type ApplyOptions struct {
	CreateTable bool // Run CREATE TABLE IF NOT EXISTS for Script.Table before inserting
	LogErrors   bool // Record failing statements in ErrorTable instead of aborting
}

// Apply executes the script inside one transaction and returns the number
// of statements that succeeded. Without LogErrors the first failing
// statement rolls the whole script back.
func Apply(ctx context.Context, db *sql.DB, script Script, opts *ApplyOptions) (int, error) {
	if len(script.Statements) == 0 {
		return 0, ErrEmptyScript
	}
	createTable := opts != nil && opts.CreateTable
	logErrors := opts != nil && opts.LogErrors

	if logErrors {
		if _, err := db.ExecContext(ctx, createErrorTableSQL); err != nil {
			return 0, fmt.Errorf("failed to create error log table: %w", err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	if createTable {
		createSQL := common.GenCreateTableSQL(script.Table, script.Columns, script.Types)
		slog.Debug("creating table", "table", script.Table, "sql", createSQL)
		if _, err := tx.ExecContext(ctx, createSQL); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("failed to create table %s: %w", script.Table, err)
		}
	}

	applied := 0
	for i, stmt := range script.Statements {
		if err := ctx.Err(); err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("%w after %d statements: %w", ErrInterrupted, i, err)
		}
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			if !logErrors {
				tx.Rollback()
				return 0, fmt.Errorf("statement %d failed: %w", i+1, err)
			}
			slog.Debug("statement failed", "index", i+1, "error", err)
			if _, logErr := tx.ExecContext(ctx, logErrorSQL, err.Error(), script.Table, stmt); logErr != nil {
				tx.Rollback()
				return 0, fmt.Errorf("failed to log error: %w", logErr)
			}
			continue
		}
		applied++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction for table %s: %w", script.Table, err)
	}
	slog.Debug("script applied", "table", script.Table, "statements", len(script.Statements), "applied", applied)
	return applied, nil
}

// ApplyToSQLite applies the script to a SQLite database and writes the
// database to writer.
// If writer is a regular *os.File the database is built in that file
// directly, so existing tables in it are kept. Otherwise a temporary file is
// used and copied to writer once the script has been applied.
func ApplyToSQLite(ctx context.Context, script Script, writer io.Writer, opts *ApplyOptions) (int, error) {
	var dbPath string
	useTemp := true

	if f, ok := writer.(*os.File); ok {
		stat, err := f.Stat()
		if err == nil && stat.Mode().IsRegular() {
			dbPath = f.Name()
			useTemp = false
			slog.Debug("using direct file", "path", dbPath)
		}
	}

	if useTemp {
		tmpFile, err := os.CreateTemp("", "mkinsert-*.db")
		if err != nil {
			return 0, fmt.Errorf("failed to create temp file: %w", err)
		}
		dbPath = tmpFile.Name()
		tmpFile.Close()
		defer os.Remove(dbPath)
		slog.Debug("created temp file", "path", dbPath)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	applied, err := Apply(ctx, db, script, opts)
	db.Close()
	if err != nil {
		return 0, err
	}

	if useTemp {
		f, err := os.Open(dbPath)
		if err != nil {
			return 0, fmt.Errorf("failed to open temp file for reading: %w", err)
		}
		defer f.Close()

		if _, err := io.Copy(writer, f); err != nil {
			return 0, fmt.Errorf("failed to write to output: %w", err)
		}
	}

	slog.Info("database written", "table", script.Table, "applied", applied)
	return applied, nil
}
