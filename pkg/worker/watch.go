package worker

import (
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/errors"
)

// RuleWatcher signals changes of a rule source file. It watches the
// parent directory so that editors replacing the file are noticed.
type RuleWatcher struct {
	path    string
	logger  zerolog.Logger
	watcher *fsnotify.Watcher
	changes chan struct{}

	done      chan struct{}
	closeOnce sync.Once
}

// NewRuleWatcher starts watching path.
func NewRuleWatcher(path string, logger zerolog.Logger) (*RuleWatcher, error) {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot create file watcher")
	}
	if err := fw.Add(filepath.Dir(path)); err != nil {
		_ = fw.Close()
		return nil, errors.Wrapf(err, errors.ErrDirRead, "cannot watch %s", filepath.Dir(path))
	}

	rw := &RuleWatcher{
		path:    path,
		logger:  logger,
		watcher: fw,
		changes: make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
	go rw.loop()
	return rw, nil
}

// Changes delivers at most one pending notification at a time.
func (rw *RuleWatcher) Changes() <-chan struct{} {
	return rw.changes
}

// Close stops watching.
func (rw *RuleWatcher) Close() error {
	var err error
	rw.closeOnce.Do(func() {
		close(rw.done)
		err = rw.watcher.Close()
	})
	return err
}

func (rw *RuleWatcher) loop() {
	for {
		select {
		case <-rw.done:
			return
		case evt, ok := <-rw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(evt.Name) != rw.path {
				continue
			}
			if evt.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			rw.logger.Debug().Str("op", evt.Op.String()).Msg("Rule source event")
			select {
			case rw.changes <- struct{}{}:
			default:
			}
		case err, ok := <-rw.watcher.Errors:
			if !ok {
				return
			}
			rw.logger.Warn().Err(err).Msg("Rule source watcher error")
		}
	}
}
