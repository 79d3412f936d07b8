package processor

import (
	"path/filepath"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/filesystem"
	"github.com/arthur-debert/foldermgr/pkg/rules"
	"github.com/arthur-debert/foldermgr/pkg/types"
)

// A single leading separator marks a target relative to the file.
var leadingSeparator = regexp.MustCompile(`^(\\[^\\]|/[^/])`)

// ResolveTarget returns the directory a migrate rule with target sends a
// file located in dir to.
func ResolveTarget(target, dir string) string {
	if leadingSeparator.MatchString(target) {
		target = target[1:]
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return filepath.Clean(target)
}

// migrate moves c to the target of the winning migrate rule and returns
// the candidate at its new location. On failure c is returned unchanged.
func (p *Processor) migrate(logger zerolog.Logger, c types.Candidate, set []rules.MigrateRule, res *Result) types.Candidate {
	rule, priority := p.matcher.SelectMigrate(c, set)
	if rule == nil {
		logger.Trace().Msg("No migrate rule applies")
		return c
	}

	targetDir := ResolveTarget(rule.TargetPath, c.Directory)
	logger = logger.With().
		Str("rule", rule.Name).
		Int("priority", priority).
		Str("target", targetDir).
		Logger()

	if err := p.fs.MkdirAll(targetDir, 0755); err != nil {
		res.Err = errors.Wrapf(err, errors.ErrDirCreate, "cannot create %s", targetDir)
		logger.Error().Err(res.Err).Msg("Cannot create migrate target")
		return c
	}

	dst := filepath.Join(targetDir, c.Name)
	if err := filesystem.Move(p.fs, c.Path, dst); err != nil {
		res.Err = err
		logger.Error().Err(err).Msg("Cannot migrate file")
		return c
	}

	logger.Info().Str("destination", dst).Msg("File migrated")
	res.Path = dst
	res.Migrated = true
	res.MigrateRule = rule.Name

	moved := types.NewCandidate(dst)
	moved.ContentType = c.ContentType
	moved.Size = c.Size
	return moved
}
