package rules

import (
	"slices"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/types"
)

// archiveExtensions are never archived again. "r01" is kept without its
// dot for compatibility with existing rule sheets.
var archiveExtensions = []string{".zip", ".zipx", ".rar", ".rev", "r01", ".r00", ".7z", ".xz", ".tar", ".wim", ".bzip2"}

// IsArchiveExtension reports whether ext names an archive format.
func IsArchiveExtension(ext string) bool {
	return slices.Contains(archiveExtensions, strings.ToLower(ext))
}

// MatchExtension reports whether ext is one of exts.
func MatchExtension(ext string, exts []string) bool {
	return slices.Contains(exts, ext)
}

// MatchContentType reports whether value matches any of patterns. A
// "type/*" pattern matches every subtype of type. Comparison ignores case.
func MatchContentType(value string, patterns []string) bool {
	for _, pattern := range patterns {
		if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
			if len(value) > len(prefix) && strings.EqualFold(value[:len(prefix)+1], prefix+"/") {
				return true
			}
			continue
		}
		if strings.EqualFold(value, pattern) {
			return true
		}
	}
	return false
}

// Score returns the migrate priority of cond for c: one point per
// declared condition that holds. ok is false when a declared condition
// does not hold.
func Score(c types.Candidate, cond Conditions) (score int, ok bool) {
	if MatchExtension(c.Extension, cond.Extensions) {
		score++
	} else if len(cond.Extensions) > 0 {
		return 0, false
	}

	if MatchContentType(c.ContentType, cond.ContentTypes) {
		score++
	} else if len(cond.ContentTypes) > 0 {
		return 0, false
	}

	if cond.Pattern != nil {
		if !cond.Pattern.MatchString(c.Stem) {
			return 0, false
		}
		score++
	}

	return score, true
}

// Matcher selects the rule to apply to a candidate file.
type Matcher struct {
	logger zerolog.Logger
}

// NewMatcher creates a new rule matcher
func NewMatcher(logger zerolog.Logger) *Matcher {
	return &Matcher{logger: logger}
}

// SelectMigrate returns the migrate rule with the strictly highest score,
// the earliest one on ties, and its score. It returns nil when no rule
// scores above zero.
func (m *Matcher) SelectMigrate(c types.Candidate, rules []MigrateRule) (*MigrateRule, int) {
	var best *MigrateRule
	bestScore := 0

	for i := range rules {
		score, ok := Score(c, rules[i].Conditions)
		if !ok || score == 0 {
			continue
		}
		m.logger.Trace().
			Str("file", c.Name).
			Str("rule", rules[i].Name).
			Int("priority", score).
			Msg("Migrate rule matched")
		if score > bestScore {
			best = &rules[i]
			bestScore = score
		}
	}

	return best, bestScore
}

// SelectZip returns the first zip rule whose declared conditions all hold
// for c, or nil. inSourceRoot tells whether c still sits directly in the
// scanned directory.
//
// Content-type patterns are compared with the file extension rather than
// the resolved content type, matching how existing rule sheets behave.
func (m *Matcher) SelectZip(c types.Candidate, rules []ZipRule, inSourceRoot bool) *ZipRule {
	if IsArchiveExtension(c.Extension) {
		m.logger.Trace().Str("file", c.Name).Msg("Already an archive, skipping zip rules")
		return nil
	}

	for i := range rules {
		rule := &rules[i]
		switch {
		case !rule.AllowFromMigratedFolder && !inSourceRoot:
			continue
		case len(rule.Extensions) > 0 && !MatchExtension(c.Extension, rule.Extensions):
			continue
		case len(rule.ContentTypes) > 0 && !MatchContentType(c.Extension, rule.ContentTypes):
			continue
		case rule.Pattern != nil && !rule.Pattern.MatchString(c.Stem):
			continue
		case !rule.Size.Compare(c.Size):
			continue
		}
		m.logger.Trace().Str("file", c.Name).Str("rule", rule.Name).Msg("Zip rule matched")
		return rule
	}
	return nil
}
