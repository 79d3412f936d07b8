package processor

import (
	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/rules"
)

// LoadRules reads the migrate_rule and zip_rule sheets of the rule source
// at path and makes them the active rule set. A missing sheet counts as an
// empty one. The active set is only replaced once both sheets are parsed.
func (p *Processor) LoadRules(path string) error {
	migrateRows, err := p.readSheet(path, rules.MigrateSheet)
	if err != nil {
		return err
	}
	zipRows, err := p.readSheet(path, rules.ZipSheet)
	if err != nil {
		return err
	}

	set := &rules.Set{
		Migrate: p.parser.MigrateRules(migrateRows),
		Zip:     p.parser.ZipRules(zipRows),
	}
	p.store.Replace(set)

	p.logger.Info().
		Str("source", path).
		Int("migrateRules", len(set.Migrate)).
		Int("zipRules", len(set.Zip)).
		Msg("Rules loaded")
	return nil
}

// ReloadRules drops the active rules and loads them again from path. When
// loading fails no rules stay active until the next successful load.
func (p *Processor) ReloadRules(path string) error {
	p.store.Clear()
	p.logger.Debug().Str("source", path).Msg("Rules cleared for reload")
	return p.LoadRules(path)
}

// HasRulesLoaded reports whether at least one rule is active.
func (p *Processor) HasRulesLoaded() bool {
	return p.store.Load().Len() > 0
}

func (p *Processor) readSheet(path, sheet string) ([][]string, error) {
	rows, err := p.reader.GetRows(path, sheet)
	if errors.IsErrorCode(err, errors.ErrSheetNotFound) {
		p.logger.Warn().
			Str("source", path).
			Str("sheet", sheet).
			Msg("Rule sheet not found, treating it as empty")
		return nil, nil
	}
	return rows, err
}
