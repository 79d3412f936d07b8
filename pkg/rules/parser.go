package rules

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/foldermgr/pkg/errors"
	"github.com/arthur-debert/foldermgr/pkg/size"
)

// Sheet names of the tabular rule source.
const (
	MigrateSheet = "migrate_rule"
	ZipSheet     = "zip_rule"
)

const (
	migrateColumns = 5
	zipColumns     = 6
)

// Parser builds rules from sheet rows. Invalid rows are logged and
// skipped; they never abort the sheet.
type Parser struct {
	logger zerolog.Logger
}

// NewParser creates a parser reporting skipped rows to logger.
func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

// MigrateRules parses the rows of the migrate_rule sheet.
func (p *Parser) MigrateRules(rows [][]string) []MigrateRule {
	if !p.usable(MigrateSheet, rows, migrateColumns) {
		return nil
	}

	var out []MigrateRule
	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i], migrateColumns)
		if blankRow(row) {
			continue
		}
		rule, err := ParseMigrateRow(row)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("sheet", MigrateSheet).
				Int("row", i+1).
				Msg("Skipping invalid migrate rule")
			continue
		}
		p.logger.Debug().
			Str("rule", rule.Name).
			Str("target", rule.TargetPath).
			Msg("Loaded migrate rule")
		out = append(out, rule)
	}
	return out
}

// ZipRules parses the rows of the zip_rule sheet.
func (p *Parser) ZipRules(rows [][]string) []ZipRule {
	if !p.usable(ZipSheet, rows, zipColumns) {
		return nil
	}

	var out []ZipRule
	for i := 1; i < len(rows); i++ {
		row := padRow(rows[i], zipColumns)
		if blankRow(row) {
			continue
		}
		rule, err := ParseZipRow(row)
		if err != nil {
			p.logger.Warn().
				Err(err).
				Str("sheet", ZipSheet).
				Int("row", i+1).
				Msg("Skipping invalid zip rule")
			continue
		}
		p.logger.Debug().
			Str("rule", rule.Name).
			Bool("migrateFolders", rule.AllowFromMigratedFolder).
			Msg("Loaded zip rule")
		out = append(out, rule)
	}
	return out
}

func (p *Parser) usable(sheet string, rows [][]string, columns int) bool {
	if len(rows) < 2 {
		p.logger.Debug().Str("sheet", sheet).Msg("Sheet has no rule rows")
		return false
	}
	if len(rows[0]) < columns {
		p.logger.Warn().
			Str("sheet", sheet).
			Int("columns", len(rows[0])).
			Int("required", columns).
			Msg("Sheet header has too few columns, ignoring sheet")
		return false
	}
	return true
}

// ParseMigrateRow builds a MigrateRule from the cells
// name, content types, extensions, pattern, target path.
func ParseMigrateRow(row []string) (MigrateRule, error) {
	row = padRow(row, migrateColumns)
	name := strings.TrimSpace(row[0])

	cond, err := parseConditions(row[1], row[2], row[3])
	if err != nil {
		return MigrateRule{}, errors.Wrapf(err, errors.ErrRuleInvalid, "migrate rule %q", name)
	}
	if cond.Empty() {
		return MigrateRule{}, errors.Newf(errors.ErrRuleInvalid, "migrate rule %q declares no conditions", name)
	}

	target := strings.TrimSpace(row[4])
	if target == "" {
		return MigrateRule{}, errors.Newf(errors.ErrRuleInvalid, "migrate rule %q has no target path", name)
	}

	return MigrateRule{Name: name, Conditions: cond, TargetPath: target}, nil
}

// ParseZipRow builds a ZipRule from the cells
// name, content types, extensions, pattern, size, support migrate folder.
func ParseZipRow(row []string) (ZipRule, error) {
	row = padRow(row, zipColumns)
	name := strings.TrimSpace(row[0])

	cond, err := parseConditions(row[1], row[2], row[3])
	if err != nil {
		return ZipRule{}, errors.Wrapf(err, errors.ErrRuleInvalid, "zip rule %q", name)
	}

	sizeValue := strings.TrimSpace(row[4])
	if cond.Empty() && sizeValue == "" {
		return ZipRule{}, errors.Newf(errors.ErrRuleInvalid, "zip rule %q declares no conditions", name)
	}

	rule := ZipRule{
		Name:                    name,
		Conditions:              cond,
		Size:                    size.Any(),
		AllowFromMigratedFolder: strings.EqualFold(strings.TrimSpace(row[5]), "yes"),
	}
	if sizeValue != "" {
		rule.Size, err = size.Parse(sizeValue)
		if err != nil {
			return ZipRule{}, errors.Wrapf(err, errors.ErrRuleInvalid, "zip rule %q", name)
		}
		rule.HasSize = true
	}
	return rule, nil
}

func parseConditions(contentTypes, extensions, pattern string) (Conditions, error) {
	cond := Conditions{
		ContentTypes: SplitList(contentTypes),
		Extensions:   SplitList(extensions),
	}
	if strings.TrimSpace(pattern) != "" {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return Conditions{}, errors.Wrapf(err, errors.ErrRuleInvalid, "invalid pattern %q", pattern)
		}
		cond.Pattern = re
	}
	return cond, nil
}

// SplitList splits a comma separated cell, trimming entries and dropping
// empty ones.
func SplitList(cell string) []string {
	var out []string
	for _, part := range strings.Split(cell, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func padRow(row []string, n int) []string {
	if len(row) >= n {
		return row
	}
	padded := make([]string, n)
	copy(padded, row)
	return padded
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
