package worker

import (
	"context"
	"path/filepath"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/logging"
)

// RunPass runs one scan pass and reports whether it found usable source
// directories and rules. Cancellation is honoured between files.
func (w *Worker) RunPass(ctx context.Context) bool {
	if len(w.sourceDirs) == 0 {
		w.logger.Info().Msg("No source directories configured")
		w.loadSourceDirectories()
		return false
	}

	if !w.syncRules() {
		return false
	}

	done := logging.LogOperationStart(w.logger, "scan pass")
	defer done()

	for _, dir := range w.sourceDirs {
		if ctx.Err() != nil {
			return true
		}
		w.scanDirectory(ctx, dir)
	}
	return true
}

// syncRules makes sure the processor holds the current rules. It returns
// false when no rule source can be used this pass.
func (w *Worker) syncRules() bool {
	info, err := w.fs.Stat(w.cfg.RulesPath)
	if err != nil {
		if w.proc.HasRulesLoaded() {
			w.logger.Warn().Err(err).Msg("Rule source disappeared, keeping current rules")
			return true
		}
		w.logger.Error().
			Err(errors.Wrapf(err, errors.ErrRuleSourceNotFound, "rule source %s", w.cfg.RulesPath)).
			Msg("Rule source does not exist")
		return false
	}

	switch {
	case !w.proc.HasRulesLoaded():
		w.logger.Info().Msg("Rules not set, loading them now")
		if err := w.proc.LoadRules(w.cfg.RulesPath); err != nil {
			w.logger.Error().Err(err).Msg("Cannot load rules")
		}
		w.rulesModTime = info.ModTime()
	case !info.ModTime().Equal(w.rulesModTime):
		w.logger.Info().Msg("Rule source changed, reloading rules")
		if err := w.proc.ReloadRules(w.cfg.RulesPath); err != nil {
			w.logger.Error().Err(err).Msg("Cannot reload rules")
		}
		w.rulesModTime = info.ModTime()
		w.loadSourceDirectories()
	}
	return true
}

// scanDirectory processes the regular files found directly in dir.
func (w *Worker) scanDirectory(ctx context.Context, dir string) {
	logger := w.logger.With().Str("directory", dir).Logger()
	logger.Info().Msg("Scanning source directory")

	entries, err := w.fs.ReadDir(dir)
	if err != nil {
		logger.Error().
			Err(errors.Wrapf(err, errors.ErrDirRead, "cannot list %s", dir)).
			Msg("Cannot scan source directory")
		return
	}

	for _, entry := range entries {
		if ctx.Err() != nil {
			logger.Debug().Msg("Pass cancelled")
			return
		}
		if !entry.Type().IsRegular() {
			continue
		}
		result := w.proc.ProcessFile(filepath.Join(dir, entry.Name()), dir)
		if w.onResult != nil {
			w.onResult(result)
		}
	}
}
