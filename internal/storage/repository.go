package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"spese-tracker/internal/core"
	applog "spese-tracker/internal/log"
	ports "spese-tracker/internal/sheets"

	_ "modernc.org/sqlite"
)

var _ ports.ExpenseStore = (*SQLiteRepository)(nil)

type SQLiteRepository struct {
	db     *sql.DB
	logger *applog.Logger
}

func NewSQLiteRepository(dbPath string, logger *applog.Logger) (*SQLiteRepository, error) {
	if logger == nil {
		logger = applog.Discard()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	version, err := RunMigrations(dbPath)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	logger = logger.WithComponent(applog.ComponentStorage)
	logger.Debug("SQLite schema ready", applog.FieldPath, dbPath, "schema_version", version)
	return &SQLiteRepository{db: db, logger: logger}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

const insertExpense = `INSERT INTO expenses (amount_cents, category, description, date) VALUES (?, ?, ?, ?)`

// Append implements sheets.ExpenseWriter
func (r *SQLiteRepository) Append(ctx context.Context, e core.Expense) (string, error) {
	if err := e.Validate(); err != nil {
		return "", fmt.Errorf("validation failed: %w", err)
	}
	res, err := r.db.ExecContext(ctx, insertExpense, e.Amount.Cents, e.Category, e.Description, e.Date.String())
	if err != nil {
		return "", fmt.Errorf("%w: create expense: %v", ports.ErrIO, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("%w: read inserted id: %v", ports.ErrIO, err)
	}

	r.logger.InfoContext(ctx, "Expense saved to SQLite",
		"id", id,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, e.Category,
		applog.FieldDate, e.Date.String())

	return strconv.FormatInt(id, 10), nil
}

const selectExpenses = `SELECT id, amount_cents, category, description, date FROM expenses ORDER BY id`

// Load implements sheets.ExpenseLoader. Rows that no longer validate are skipped.
func (r *SQLiteRepository) Load(ctx context.Context) ([]core.Expense, error) {
	rows, err := r.db.QueryContext(ctx, selectExpenses)
	if err != nil {
		return nil, fmt.Errorf("%w: list expenses: %v", ports.ErrIO, err)
	}
	defer rows.Close()

	out := make([]core.Expense, 0)
	for rows.Next() {
		var (
			id          int64
			cents       int64
			category    string
			description string
			date        string
		)
		if err := rows.Scan(&id, &cents, &category, &description, &date); err != nil {
			return nil, fmt.Errorf("%w: scan expense: %v", ports.ErrIO, err)
		}
		d, err := core.ParseDate(date)
		if err != nil {
			r.logger.DebugContext(ctx, "Skipping expense with bad date", "id", id, applog.FieldReason, err)
			continue
		}
		e := core.Expense{Amount: core.Money{Cents: cents}, Category: category, Description: description, Date: d}
		if err := e.Validate(); err != nil {
			r.logger.DebugContext(ctx, "Skipping invalid expense", "id", id, applog.FieldReason, err)
			continue
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate expenses: %v", ports.ErrIO, err)
	}
	return out, nil
}
