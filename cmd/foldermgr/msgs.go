package foldermgr

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Sort and compress downloaded files by rule"
	MsgRunShort        = "Scan source directories periodically"
	MsgScanShort       = "Run a single scan pass"
	MsgRulesShort      = "Show the rules defined by a rule source"
	MsgSizeShort       = "Evaluate a size expression"
	MsgConfigShort     = "Print the effective configuration"
	MsgVersionShort    = "Print version information"
	MsgManShort        = "Generate the man page"
	MsgCompletionShort = "Generate shell completion script"

	// Output
	MsgVersionFormat     = "foldermgr %s\n"
	MsgSourceDirsHeader  = "Source directories"
	MsgMigrateHeader     = "Migrate rules"
	MsgZipHeader         = "Zip rules"
	MsgNoRules           = "  (none)"
	MsgNoFiles           = "No files found."
	MsgSizeSummary       = "%s: %s %d bytes\n"
	MsgSizeResult        = "  %d: %t\n"
	MsgConfigSource      = "# loaded from %s\n"
	MsgConfigSourceNone  = "# no config file, defaults and environment only\n"
	MsgActionMigrated    = "migrated"
	MsgActionZipped      = "zipped"
	MsgActionFailed      = "failed"
	MsgActionUnchanged   = "unchanged"
	MsgDirectoryMissing  = "missing"
	MsgDirectoryExisting = "ok"

	// Error messages
	MsgErrNoCommand    = "no command specified"
	MsgErrPassUnusable = "no usable source directories or rules in %s"
	MsgErrBadByteCount = "invalid byte count %q"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig   = "Config file (default $XDG_CONFIG_HOME/foldermgr/config.toml)"
	MsgFlagRules    = "Rule source (.xlsx workbook or .yaml document)"
	MsgFlagWatch    = "Start a pass as soon as the rule source changes"
	MsgFlagInterval = "Wait between passes"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/run-long.txt
	msgRunLongRaw string
	MsgRunLong    = strings.TrimSpace(msgRunLongRaw)

	//go:embed msgs/run-example.txt
	msgRunExampleRaw string
	MsgRunExample    = strings.TrimRight(msgRunExampleRaw, "\n")

	//go:embed msgs/scan-long.txt
	msgScanLongRaw string
	MsgScanLong    = strings.TrimSpace(msgScanLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/size-long.txt
	msgSizeLongRaw string
	MsgSizeLong    = strings.TrimSpace(msgSizeLongRaw)

	//go:embed msgs/size-example.txt
	msgSizeExampleRaw string
	MsgSizeExample    = strings.TrimRight(msgSizeExampleRaw, "\n")

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
