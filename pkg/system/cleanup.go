package system

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"go.uber.org/multierr"
)

type cleanupCallback struct {
	name string
	fn   func() error
}

// CleanupManager holds what a pushdown run leaves behind until the process
// exits: the staged source, class and jar under the executor location when
// cleanup is enabled, and the trace exporter that still has spans to flush.
// Callbacks run once, newest first, so artifacts are removed before the
// spans describing their stages are flushed.
type CleanupManager struct {
	mu        sync.Mutex
	callbacks []cleanupCallback
	done      bool
}

func NewCleanupManager() *CleanupManager {
	return &CleanupManager{}
}

// RegisterCallback adds fn under name. Registering after Cleanup is logged
// and ignored.
func (cm *CleanupManager) RegisterCallback(name string, fn func() error) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.done {
		log.Error().Str("callback", name).Msg("CleanupManager: RegisterCallback called after Cleanup")
		return
	}
	cm.callbacks = append(cm.callbacks, cleanupCallback{name: name, fn: fn})
}

// Cleanup runs every callback in reverse registration order. A failing
// callback does not stop the rest; all failures are combined in the result.
func (cm *CleanupManager) Cleanup(ctx context.Context) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.done {
		log.Ctx(ctx).Warn().Msg("CleanupManager: Cleanup called again after already called")
		return nil
	}
	cm.done = true

	var err error
	for i := len(cm.callbacks) - 1; i >= 0; i-- {
		cb := cm.callbacks[i]
		start := time.Now()
		cbErr := cb.fn()
		logEvent := log.Ctx(ctx).Debug()
		if cbErr != nil && !errors.Is(cbErr, context.Canceled) {
			logEvent = log.Ctx(ctx).Error().Err(cbErr)
			err = multierr.Append(err, cbErr)
		}
		logEvent.Str("callback", cb.name).Dur("took", time.Since(start)).Msg("clean-up callback finished")
	}
	return err
}
