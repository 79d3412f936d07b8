package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/arthur-debert/foldermgr/pkg/size"
)

// Conditions are the match conditions shared by migrate and zip rules.
// Empty lists and a nil Pattern mean the condition is not declared.
type Conditions struct {
	ContentTypes []string
	Extensions   []string
	Pattern      *regexp.Regexp
}

// Empty reports whether no condition is declared.
func (c Conditions) Empty() bool {
	return len(c.ContentTypes) == 0 && len(c.Extensions) == 0 && c.Pattern == nil
}

// PatternString returns the source of Pattern, or "".
func (c Conditions) PatternString() string {
	if c.Pattern == nil {
		return ""
	}
	return c.Pattern.String()
}

// MigrateRule moves matching files into TargetPath.
type MigrateRule struct {
	Name string
	Conditions
	// TargetPath is absolute, or relative to the file's directory. A single
	// leading separator is stripped before resolution.
	TargetPath string
}

func (r MigrateRule) String() string {
	return fmt.Sprintf("Name = %s; TargetPath = %s", r.Name, r.TargetPath)
}

// ZipRule archives matching files.
type ZipRule struct {
	Name string
	Conditions
	Size size.Predicate
	// HasSize records whether the sheet declared a size; Size is size.Any()
	// otherwise.
	HasSize bool
	// AllowFromMigratedFolder lets the rule apply to files that were moved
	// out of the scan root by the migrate stage.
	AllowFromMigratedFolder bool
}

func (r ZipRule) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name = %s", r.Name)
	if r.HasSize {
		fmt.Fprintf(&b, "; Size = %s", r.Size.Humanize())
	}
	return b.String()
}

// Set is an immutable snapshot of the active rules in declaration order.
type Set struct {
	Migrate []MigrateRule
	Zip     []ZipRule
}

// Len returns the total number of rules.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Migrate) + len(s.Zip)
}
