package iconpack

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Package Material Symbols into Qt resource bundles"
	MsgVersionShort    = "Print version information"
	MsgVersionLong     = "Print detailed version information including commit hash and build date"
	MsgBuildShort      = "Compile full icon bundles for every configured axis"
	MsgExtractShort    = "Extract selected icons into minimal bundles"
	MsgConfigShort     = "Print the effective configuration"
	MsgCompletionShort = "Generate shell completion script"

	// Version output
	MsgVersionFormat = "iconpack version %s\n"
	MsgCommitFormat  = "Commit: %s\n"
	MsgBuiltFormat   = "Built:  %s\n"

	// Status messages
	MsgReportWritten = "Report written to %s\n"
	MsgConfigWritten = "Configuration written to %s\n"

	// Error messages
	MsgErrNoCommand     = "no command specified"
	MsgErrAxesFailed    = "%d of %d axes failed"
	MsgErrNoNames       = "at least one icon name is required (--names)"
	MsgErrOutputMissing = "an output directory is required (-o/--output)"
	MsgErrConfigExists  = "configuration file already exists"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagConfig      = "Configuration file (default ./iconpack.toml)"
	MsgFlagNoColor     = "Disable colored output"
	MsgFlagStyles      = "Styles to process (outlined, rounded, sharp); defaults to <command>.styles"
	MsgFlagSizes       = "Sizes to process (20, 24, 40, 48); defaults to <command>.sizes"
	MsgFlagNames       = "Icon names to extract, e.g. home,search"
	MsgFlagOutput      = "Output directory"
	MsgFlagReport      = "Write the run summary as YAML to this file"
	MsgFlagBackend     = "Compiler backend (external, native); overrides compiler.backend"
	MsgFlagConcurrency = "Axes processed at once; overrides build.concurrency"
	MsgFlagSourceRoot  = "Directory holding the material-design-icons checkout; overrides source.root"
	MsgFlagPackageRoot = "Package directory holding resources/; overrides package.root"
	MsgFlagNoFetch     = "Do not clone the corpus when it is missing"
	MsgFlagDefaults    = "Print the commented built-in defaults"
	MsgFlagWrite       = "Write to iconpack.toml instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/build-long.txt
	msgBuildLongRaw string
	MsgBuildLong    = strings.TrimSpace(msgBuildLongRaw)

	//go:embed msgs/build-example.txt
	msgBuildExampleRaw string
	MsgBuildExample    = strings.TrimRight(msgBuildExampleRaw, "\n")

	//go:embed msgs/extract-long.txt
	msgExtractLongRaw string
	MsgExtractLong    = strings.TrimSpace(msgExtractLongRaw)

	//go:embed msgs/extract-example.txt
	msgExtractExampleRaw string
	MsgExtractExample    = strings.TrimRight(msgExtractExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/config-example.txt
	msgConfigExampleRaw string
	MsgConfigExample    = strings.TrimRight(msgConfigExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
