package processor

import (
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/archive"
	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/rules"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// zip replaces c with <path>.zip when a zip rule accepts it. The file is
// staged in the temp folder of sourceDir while the archive is written.
func (p *Processor) zip(logger zerolog.Logger, c types.Candidate, sourceDir string, set []rules.ZipRule, res *Result) {
	rule := p.matcher.SelectZip(c, set, c.InDirectory(sourceDir))
	if rule == nil {
		logger.Trace().Msg("No zip rule applies")
		return
	}
	logger = logger.With().Str("rule", rule.Name).Logger()

	tempDir := p.stagingDir(sourceDir)
	if err := p.fs.MkdirAll(tempDir, 0755); err != nil {
		res.Err = errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", tempDir)
		logger.Error().Err(res.Err).Msg("Cannot create staging folder, file not zipped")
		return
	}

	staged := filepath.Join(tempDir, c.Name)
	if err := filesystem.Move(p.fs, c.Path, staged); err != nil {
		res.Err = err
		logger.Error().Err(err).Msg("Cannot stage file, file not zipped")
		return
	}

	archivePath := c.Path + archive.Extension
	if err := archive.WriteSingle(p.fs, archivePath, staged, c.Name); err != nil {
		res.Err = err
		logger.Error().Err(err).Str("archive", archivePath).Msg("Cannot write archive")
		if rerr := filesystem.Move(p.fs, staged, c.Path); rerr != nil {
			logger.Error().Err(rerr).Str("staged", staged).Msg("Cannot restore staged file")
		}
		return
	}

	if err := p.fs.Remove(staged); err != nil {
		logger.Warn().Err(err).Str("staged", staged).Msg("Cannot remove staged file")
	}

	logger.Info().Str("archive", archivePath).Msg("File zipped")
	res.Archive = archivePath
	res.ZipRule = rule.Name
}
