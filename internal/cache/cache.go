// Package cache holds small in-process caches used to avoid repeated round
// trips to remote stores.
package cache

import (
	"sync"
	"time"

	applog "spese-tracker/internal/log"
)

// Cache is a keyed store with expiry.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, data T)
	Delete(key string)
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries eagerly.
type Cleaner interface {
	CleanExpired() int
}

// Janitor periodically sweeps registered caches until stopped.
type Janitor struct {
	caches    []Cleaner
	logger    *applog.Logger
	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
}

func NewJanitor(logger *applog.Logger) *Janitor {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Janitor{
		logger: logger.WithComponent(applog.ComponentCache),
		stop:   make(chan struct{}),
		done:   make(chan struct{}),
	}
}

// Register adds c to the sweep. Call before Start.
func (j *Janitor) Register(c Cleaner) {
	j.caches = append(j.caches, c)
}

// Start sweeps every interval in a background goroutine. Only the first
// call has an effect.
func (j *Janitor) Start(interval time.Duration) {
	j.startOnce.Do(func() { go j.run(interval) })
}

func (j *Janitor) run(interval time.Duration) {
	defer close(j.done)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			removed := 0
			for _, c := range j.caches {
				removed += c.CleanExpired()
			}
			if removed > 0 {
				j.logger.Debug("Expired cache entries removed", applog.FieldCount, removed)
			}
		case <-j.stop:
			return
		}
	}
}

// Stop ends the sweep and waits for it to exit. It is safe to call more
// than once, and before Start, after which Start does nothing.
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		started := true
		j.startOnce.Do(func() { started = false })
		close(j.stop)
		if started {
			<-j.done
		}
	})
}
