// Package processor applies the active rule set to individual files.
//
// A file found directly in a scan root first goes through the migrate
// stage, which moves it into the target directory of the best scoring
// migrate rule. Whatever its location afterwards, the file then goes
// through the zip stage, which replaces it with a single-entry archive
// when a zip rule accepts it.
//
// Processing is best effort: failures are logged and recorded on the
// Result, never returned or propagated as panics.
package processor

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/contenttype"
	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/logging"
	"github.com/arthur-debert/foldermgr/pkg/rules"
	"github.com/arthur-debert/foldermgr/pkg/sheets"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// DefaultTempFolder is the staging directory, relative to the scan root,
// used while a file is being archived.
const DefaultTempFolder = "temp"

// Options contains configuration for the processor
type Options struct {
	// Filesystem operations interface for testing
	FS types.FS
	// Logger defaults to the "processor" component logger.
	Logger       *zerolog.Logger
	ContentTyper types.ContentTyper
	RowReader    types.RowReader
	// TempFolder is joined to the scan root unless absolute.
	TempFolder string
}

// Processor owns the active rule set and applies it to files.
type Processor struct {
	fs           types.FS
	logger       zerolog.Logger
	contentTyper types.ContentTyper
	reader       types.RowReader
	tempFolder   string

	store   *rules.Store
	parser  *rules.Parser
	matcher *rules.Matcher
}

// Result describes what ProcessFile did to a file.
type Result struct {
	// Source is the path the file was found at.
	Source string
	// Path is the file's location after the migrate stage.
	Path        string
	Migrated    bool
	MigrateRule string
	// Archive is the path of the archive written by the zip stage, if any.
	Archive string
	ZipRule string
	// Err is the last failure met while processing. It has already been
	// logged.
	Err error
}

// Zipped reports whether an archive was written.
func (r Result) Zipped() bool {
	return r.Archive != ""
}

// New creates a new processor instance
func New(opts Options) *Processor {
	logger := logging.GetLogger("processor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fs := opts.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	contentTyper := opts.ContentTyper
	if contentTyper == nil {
		contentTyper = contenttype.Lookuper{}
	}

	reader := opts.RowReader
	if reader == nil {
		reader = sheets.NewReader(fs)
	}

	tempFolder := opts.TempFolder
	if tempFolder == "" {
		tempFolder = DefaultTempFolder
	}

	return &Processor{
		fs:           fs,
		logger:       logger,
		contentTyper: contentTyper,
		reader:       reader,
		tempFolder:   tempFolder,
		store:        rules.NewStore(),
		parser:       rules.NewParser(logger.With().Str("component", "rules").Logger()),
		matcher:      rules.NewMatcher(logger),
	}
}

// Rules returns the active rule set. It is never nil.
func (p *Processor) Rules() *rules.Set {
	return p.store.Load()
}

// ProcessFile runs the migrate and zip stages for filePath, found while
// scanning sourceDir. It never panics and never returns an error.
func (p *Processor) ProcessFile(filePath, sourceDir string) (result Result) {
	result = Result{Source: filePath, Path: filePath}

	logger := p.logger.With().Str("file", filePath).Logger()
	defer func() {
		if r := recover(); r != nil {
			err := errors.Newf(errors.ErrUnexpected, "unexpected failure processing %s: %v", filePath, r)
			logger.Error().Err(err).Msg("File processing aborted")
			result.Err = err
		}
	}()

	info, err := p.fs.Stat(filePath)
	if err != nil {
		result.Err = errors.Wrapf(err, errors.ErrFileNotFound, "cannot stat %s", filePath)
		logger.Error().Err(result.Err).Msg("Cannot read file")
		return result
	}

	candidate := types.NewCandidate(filePath)
	candidate.ContentType = p.contentTyper.ContentType(filePath)
	candidate.Size = info.Size()

	set := p.store.Load()

	if candidate.InDirectory(sourceDir) {
		candidate = p.migrate(logger, candidate, set.Migrate, &result)
	}
	p.zip(logger, candidate, sourceDir, set.Zip, &result)

	return result
}

func (p *Processor) stagingDir(sourceDir string) string {
	if filepath.IsAbs(p.tempFolder) {
		return p.tempFolder
	}
	return filepath.Join(sourceDir, p.tempFolder)
}
