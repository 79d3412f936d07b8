// Package worker drives scan passes over the configured source
// directories.
//
// The rule source doubles as the worker configuration: its "main" sheet
// lists one source directory per row in column 0, below a header row.
// Between passes the worker waits ScanInterval, or BackoffInterval after
// a pass that found no usable directories or rules. A changed rule source
// is detected by its modification time at the start of a pass.
package worker

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/logging"
	"github.com/arthur-debert/foldermgr/pkg/processor"
	"github.com/arthur-debert/foldermgr/pkg/sheets"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// Default intervals between passes.
const (
	DefaultScanInterval    = 5 * time.Minute
	DefaultBackoffInterval = 10 * time.Minute
)

// FileProcessor applies the rule set to files.
type FileProcessor interface {
	LoadRules(path string) error
	ReloadRules(path string) error
	HasRulesLoaded() bool
	ProcessFile(filePath, sourceDir string) processor.Result
}

// Config holds the scheduling parameters of a worker.
type Config struct {
	RulesPath       string
	ScanInterval    time.Duration
	BackoffInterval time.Duration
	MainSheet       string
	// WatchRules wakes a waiting worker as soon as the rule source changes.
	WatchRules bool
}

// Options contains configuration for the worker
type Options struct {
	Processor FileProcessor
	RowReader types.RowReader
	FS        types.FS
	// Logger defaults to the "worker" component logger.
	Logger *zerolog.Logger
	Config Config
	// OnResult, when set, receives the result of every processed file.
	OnResult func(processor.Result)
}

// Worker runs scan passes.
type Worker struct {
	proc     FileProcessor
	reader   types.RowReader
	fs       types.FS
	logger   zerolog.Logger
	cfg      Config
	onResult func(processor.Result)

	sourceDirs   []string
	rulesModTime time.Time
}

// New creates a new worker instance
func New(opts Options) *Worker {
	logger := logging.GetLogger("worker")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	reader := opts.RowReader
	if reader == nil {
		reader = sheets.NewReader(fs)
	}

	proc := opts.Processor
	if proc == nil {
		proc = processor.New(processor.Options{FS: fs, RowReader: reader})
	}

	cfg := opts.Config
	if cfg.ScanInterval <= 0 {
		cfg.ScanInterval = DefaultScanInterval
	}
	if cfg.BackoffInterval <= 0 {
		cfg.BackoffInterval = DefaultBackoffInterval
	}
	if cfg.MainSheet == "" {
		cfg.MainSheet = sheets.MainSheet
	}

	return &Worker{
		proc:     proc,
		reader:   reader,
		fs:       fs,
		logger:   logger.With().Str("rules", cfg.RulesPath).Logger(),
		cfg:      cfg,
		onResult: opts.OnResult,
	}
}

// SourceDirectories returns the directories scanned by each pass.
func (w *Worker) SourceDirectories() []string {
	return append([]string(nil), w.sourceDirs...)
}

// Start loads the rules and the source directories when the rule source
// exists. Failures are logged; the next passes retry.
func (w *Worker) Start() {
	info, err := w.fs.Stat(w.cfg.RulesPath)
	if err != nil {
		w.logger.Warn().Err(err).Msg("Rule source does not exist")
		return
	}

	w.logger.Info().Msg("Reading rules")
	w.rulesModTime = info.ModTime()
	if err := w.proc.LoadRules(w.cfg.RulesPath); err != nil {
		w.logger.Error().Err(err).Msg("Cannot load rules")
	}
	w.loadSourceDirectories()
}

// loadSourceDirectories replaces the source directories with the existing
// directories listed in the main sheet.
func (w *Worker) loadSourceDirectories() {
	rows, err := w.reader.GetRows(w.cfg.RulesPath, w.cfg.MainSheet)
	if err != nil {
		w.logger.Error().Err(err).Str("sheet", w.cfg.MainSheet).Msg("Cannot read source directories")
		w.sourceDirs = nil
		return
	}

	var dirs []string
	for i := 1; i < len(rows); i++ {
		if len(rows[i]) == 0 {
			continue
		}
		dir := strings.TrimSpace(rows[i][0])
		if dir == "" {
			continue
		}
		info, err := w.fs.Stat(dir)
		if err != nil || !info.IsDir() {
			w.logger.Warn().Str("path", dir).Int("row", i+1).Msg("Source directory does not exist")
			continue
		}
		dirs = append(dirs, filepath.Clean(dir))
	}

	w.sourceDirs = dirs
	w.logger.Debug().Strs("directories", dirs).Msg("Source directories loaded")
}
