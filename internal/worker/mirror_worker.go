// Package worker consumes expense events and applies them to a secondary
// store, e.g. mirroring a local CSV ledger into Google Sheets.
package worker

import (
	"context"
	"fmt"
	"time"

	"spese-tracker/internal/amqp"
	"spese-tracker/internal/cache"
	applog "spese-tracker/internal/log"
	"spese-tracker/internal/sheets"
)

const (
	seenCacheSize = 4096
	seenTTL       = 24 * time.Hour
)

// MirrorWorker appends every received expense to target exactly once per
// message id, within the dedupe window.
type MirrorWorker struct {
	target sheets.ExpenseWriter
	seen   *cache.LRUCache[string]
	logger *applog.Logger
}

func NewMirrorWorker(target sheets.ExpenseWriter, logger *applog.Logger) *MirrorWorker {
	if logger == nil {
		logger = applog.Discard()
	}
	return &MirrorWorker{
		target: target,
		seen:   cache.NewLRUCache[string](seenCacheSize, seenTTL),
		logger: logger.WithComponent(applog.ComponentWorker),
	}
}

// HandleExpenseRecorded mirrors one message. Redelivered ids are acknowledged
// without writing again.
func (w *MirrorWorker) HandleExpenseRecorded(ctx context.Context, msg *amqp.ExpenseRecordedMessage) error {
	if ref, dup := w.seen.Get(msg.ID); dup {
		w.logger.DebugContext(ctx, "Skipping already mirrored message",
			applog.FieldMessageID, msg.ID,
			applog.FieldRef, ref)
		return nil
	}

	e, err := msg.Expense()
	if err != nil {
		// Invalid payloads will never succeed; drop them instead of requeueing forever.
		w.logger.WarnContext(ctx, "Dropping invalid expense message",
			applog.FieldMessageID, msg.ID,
			applog.FieldError, err)
		return nil
	}

	ref, err := w.target.Append(ctx, e)
	if err != nil {
		return fmt.Errorf("mirror expense %s: %w", msg.ID, err)
	}
	w.seen.Set(msg.ID, ref)

	w.logger.InfoContext(ctx, "Mirrored expense",
		applog.FieldMessageID, msg.ID,
		"source_ref", msg.Ref,
		applog.FieldRef, ref,
		applog.FieldAmountCents, e.Amount.Cents,
		applog.FieldCategory, e.Category)
	return nil
}

// Consumer is the subset of the AMQP client the worker runs on.
type Consumer interface {
	ConsumeExpenseRecorded(ctx context.Context, handler func(context.Context, *amqp.ExpenseRecordedMessage) error) error
}

// Run consumes until ctx is done. A cancelled context is a clean exit.
// Run may be called again after it returns; the dedupe window carries over.
func (w *MirrorWorker) Run(ctx context.Context, consumer Consumer) error {
	janitor := cache.NewJanitor(w.logger)
	janitor.Register(w.seen)
	janitor.Start(time.Hour)
	defer janitor.Stop()

	w.logger.InfoContext(ctx, "Mirror worker started")
	err := consumer.ConsumeExpenseRecorded(ctx, w.HandleExpenseRecorded)
	if ctx.Err() != nil {
		w.logger.InfoContext(ctx, "Mirror worker stopped")
		return nil
	}
	return err
}
