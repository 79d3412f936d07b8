package worker

import (
	"context"
	"time"

	"github.com/arthur-debert/foldermgr/pkg/errors"
)

// Run starts the worker and runs passes until ctx is cancelled. The wait
// between passes ends early on cancellation; a pass in progress finishes
// the file it is working on. Run returns nil once cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w.cfg.RulesPath == "" {
		return errors.New(errors.ErrInvalidInput, "no rule source configured")
	}

	w.Start()

	var wake <-chan struct{}
	if w.cfg.WatchRules {
		watcher, err := NewRuleWatcher(w.cfg.RulesPath, w.logger)
		if err != nil {
			w.logger.Warn().Err(err).Msg("Cannot watch rule source, relying on the scan interval")
		} else {
			defer func() { _ = watcher.Close() }()
			wake = watcher.Changes()
		}
	}

	w.logger.Info().
		Dur("scanInterval", w.cfg.ScanInterval).
		Dur("backoffInterval", w.cfg.BackoffInterval).
		Msg("Worker started")

	for ctx.Err() == nil {
		wait := w.cfg.ScanInterval
		if !w.RunPass(ctx) {
			wait = w.cfg.BackoffInterval
		}
		w.logger.Info().Dur("wait", wait).Msg("Pass finished")
		if !w.wait(ctx, wait, wake) {
			break
		}
	}

	w.logger.Info().Msg("Worker stopped")
	return nil
}

// wait blocks for d, or until the rule source changes. It returns false
// when ctx is cancelled.
func (w *Worker) wait(ctx context.Context, d time.Duration, wake <-chan struct{}) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	case <-wake:
		w.logger.Debug().Msg("Rule source changed, starting pass early")
		return true
	}
}
