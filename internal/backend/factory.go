package backend

import (
	"context"
	"fmt"

	"spese-tracker/internal/amqp"
	"spese-tracker/internal/cache"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/sheets"
	"spese-tracker/internal/sheets/csvfile"
	gsheet "spese-tracker/internal/sheets/google"
	"spese-tracker/internal/sheets/memory"
	"spese-tracker/internal/storage"
)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger *applog.Logger
}

// NewFactory creates a new backend factory
func NewFactory(logger *applog.Logger) Factory {
	if logger == nil {
		logger = applog.Discard()
	}
	return &DefaultFactory{
		logger: logger.WithComponent(applog.ComponentBackend),
	}
}

// CreateBackend implements Factory.CreateBackend
func (f *DefaultFactory) CreateBackend(ctx context.Context, config Config) (*BackendResult, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		store   sheets.ExpenseStore
		cleanup CleanupFunc
		err     error
	)
	switch config.Type {
	case CSVBackend:
		store = csvfile.New(config.ExpensesFile, f.logger)
		f.logger.DebugContext(ctx, "Initialized csv backend", applog.FieldBackend, config.Type, applog.FieldPath, config.ExpensesFile)
	case MemoryBackend:
		store = memory.NewFromFile(config.SeedFile)
		f.logger.DebugContext(ctx, "Initialized memory backend", applog.FieldBackend, config.Type, "seed_file", config.SeedFile)
	case SQLiteBackend:
		var repo *storage.SQLiteRepository
		repo, err = storage.NewSQLiteRepository(config.SQLiteDBPath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
		}
		store, cleanup = repo, repo.Close
		f.logger.DebugContext(ctx, "Initialized SQLite backend", applog.FieldBackend, config.Type, applog.FieldPath, config.SQLiteDBPath)
	case SheetsBackend:
		var client *gsheet.Client
		client, err = gsheet.New(ctx, gsheet.Config{
			SpreadsheetID:      config.GoogleSpreadsheetID,
			SheetName:          config.GoogleSheetName,
			ServiceAccountJSON: config.GoogleServiceAccountJSON,
			ServiceAccountFile: config.GoogleServiceAccountFile,
		}, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		store = client
		if config.SheetsCacheTTL > 0 {
			store = cache.NewStore(client, config.SheetsCacheTTL, f.logger)
		}
		f.logger.DebugContext(ctx, "Initialized Google Sheets backend", applog.FieldBackend, config.Type, "cache_ttl", config.SheetsCacheTTL)
	default:
		return nil, fmt.Errorf("unsupported backend type: %s", config.Type)
	}

	result := &BackendResult{Store: store}
	if config.AMQPURL != "" {
		client, err := amqp.NewClient(config.AMQPURL, config.AMQPExchange, config.AMQPQueue, f.logger)
		if err != nil {
			f.logger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", applog.FieldError, err)
		} else {
			result.Publisher = client
			f.logger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", config.AMQPExchange,
				"queue", config.AMQPQueue)
		}
	}

	result.Cleanup = func() error {
		var errs []error
		if cleanup != nil {
			if err := cleanup(); err != nil {
				errs = append(errs, fmt.Errorf("store: %w", err))
			}
		}
		if result.Publisher != nil {
			if err := result.Publisher.Close(); err != nil {
				errs = append(errs, fmt.Errorf("amqp: %w", err))
			}
		}
		if len(errs) > 0 {
			return fmt.Errorf("close backend: %v", errs)
		}
		return nil
	}
	return result, nil
}
