// Package rules holds the migrate and zip rules that decide what happens to
// a file found in a watched directory, and the matching logic that selects
// the rule to apply.
//
// # Rule sheets
//
// Rules are authored as rows of a tabular source. Row 0 of every sheet is
// a header. The migrate_rule sheet has the columns
//
//	name | content types | extensions | pattern | target path
//
// and the zip_rule sheet has the columns
//
//	name | content types | extensions | pattern | size | support migrate folder
//
// Content types and extensions are comma separated lists. Content types
// are literal MIME types or "type/*" wildcards. Extensions include the
// leading dot. The pattern is a regular expression searched in the file
// name without its extension. The size column uses the syntax of package
// size (">=10MB"). A rule without any condition is ignored, as is a
// migrate rule without a target path.
//
// # Migrate selection
//
// Every migrate rule is scored with one point per condition it declares
// and the file satisfies. A declared condition that the file does not
// satisfy eliminates the rule. The rule with the strictly highest score
// wins; on a tie the earliest declared rule is kept.
//
// # Zip selection
//
// Zip rules are not scored: the first rule whose declared conditions all
// hold is selected. Files that already are archives are never selected.
package rules
