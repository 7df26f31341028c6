// Package cli implements the linkdiag command-line interface.
//
// linkdiag reproduces the diagnostics a linker prints when it cannot resolve
// a cross-module reference, from a YAML description of the module universe
// and, optionally, the dependency manifest written by the build system.
//
// # Commands
//
//   - explain: compose the full diagnostic for a failure kind and exit non-zero
//   - render: print the dependency tree only
//   - why: print the shortest dependency chain leading to a module
//   - cycles: list dependency cycles
//   - graph: export the graph as DOT, SVG, PDF, PNG or a JSON snapshot
//   - manifest check: validate and normalize a dependency manifest
//   - completion: generate shell completion scripts
//
// # Configuration
//
// Settings are read from linkdiag.toml in the working directory or from the
// file given by --config. Flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/buildinfo"
	"github.com/matzehuels/linkdiag/pkg/observability"
)

// appName is the application name used for display and the config file.
const appName = "linkdiag"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	flags globalFlags
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	config          string
	manifest        string
	distribution    string
	compilerVersion string
	noCompression   bool
}

// New creates a new CLI instance with a logger writing to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "linkdiag explains linker failures with module dependency trees",
		Long:          `linkdiag reconstructs the module dependency graph behind a linkage failure (unresolved symbol, missing module, type mismatch) and renders it the way the linker reports it.`,
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			observability.SetDiagnosticHooks(logHooks{logger: c.Logger})
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.flags.config, "config", "", "config file (default: ./"+configFileName+" if present)")
	pf.StringVar(&c.flags.manifest, "manifest", "", "external dependency manifest written by the build system")
	pf.StringVar(&c.flags.distribution, "distribution", "", "toolchain library directory (enables the merging builder)")
	pf.StringVar(&c.flags.compilerVersion, "compiler-version", "", "version reported for libraries from the distribution")
	pf.BoolVar(&c.flags.noCompression, "no-compression", false, "list platform libraries individually")

	root.AddCommand(c.explainCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.whyCommand())
	root.AddCommand(c.cyclesCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.manifestCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// config loads the configuration file and applies flag overrides.
func (c *CLI) config() (Config, error) {
	cfg, err := loadConfig(c.flags.config)
	if err != nil {
		return Config{}, err
	}
	if c.flags.manifest != "" {
		cfg.Manifest = c.flags.manifest
	}
	if c.flags.distribution != "" {
		cfg.Distribution = c.flags.distribution
	}
	if c.flags.compilerVersion != "" {
		cfg.CompilerVersion = c.flags.compilerVersion
	}
	if c.flags.noCompression {
		cfg.Compression.Disabled = true
	}
	return cfg.WithDefaults(), nil
}
