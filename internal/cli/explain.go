package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/deps"
	"github.com/matzehuels/linkdiag/pkg/issues"
	"github.com/matzehuels/linkdiag/pkg/sink"
)

// explainOpts holds the flags shared by the explain subcommands.
type explainOpts struct {
	universe string // module universe file
	module   string // module named in the cause
	symbol   string // symbol named in the cause
	cause    string // mismatch description
	color    bool   // color the error marker
}

// explainCommand groups the failure kinds. Every subcommand prints the
// diagnostic and then fails, like the linker would.
func (c *CLI) explainCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "explain",
		Short: "Compose the diagnostic for a linkage failure",
	}
	cmd.AddCommand(c.explainUnresolvedCommand())
	cmd.AddCommand(c.explainMissingCommand())
	cmd.AddCommand(c.explainMismatchCommand())
	return cmd
}

func (c *CLI) explainUnresolvedCommand() *cobra.Command {
	var opts explainOpts
	cmd := &cobra.Command{
		Use:   "unresolved",
		Short: "A module references a symbol that no dependency declares",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			u, err := loadUniverse(opts.universe)
			if err != nil {
				return err
			}
			m, err := u.module(opts.module)
			if err != nil {
				return err
			}

			// The referencing module must stay a node so it can be marked.
			b := cfg.builder("", loggerFromContext(cmd.Context()))
			return c.raise(cmd, b, issues.UnresolvedSymbol{Symbol: opts.symbol, Module: m, Modules: u.modules}, opts.color)
		},
	}
	cmd.Flags().StringVarP(&opts.universe, "universe", "u", "", "module universe (YAML)")
	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "referencing module (default: the universe's current module)")
	cmd.Flags().StringVarP(&opts.symbol, "symbol", "s", "", "unresolved symbol")
	cmd.Flags().BoolVar(&opts.color, "color", false, "color the error marker")
	_ = cmd.MarkFlagRequired("symbol")
	return cmd
}

func (c *CLI) explainMissingCommand() *cobra.Command {
	var opts explainOpts
	cmd := &cobra.Command{
		Use:   "missing",
		Short: "A module could not be loaded while looking up a symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.raise(cmd, nil, issues.ModuleNotLoaded{Module: opts.module, Symbol: opts.symbol}, false)
		},
	}
	cmd.Flags().StringVarP(&opts.module, "module", "m", "", "module that failed to load")
	cmd.Flags().StringVarP(&opts.symbol, "symbol", "s", "", "symbol being looked up")
	_ = cmd.MarkFlagRequired("module")
	return cmd
}

func (c *CLI) explainMismatchCommand() *cobra.Command {
	var opts explainOpts
	cmd := &cobra.Command{
		Use:   "mismatch",
		Short: "Two uses of a symbol disagree on its kind",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.config()
			if err != nil {
				return err
			}
			u, err := loadUniverse(opts.universe)
			if err != nil {
				return err
			}
			b := cfg.builder(u.current, loggerFromContext(cmd.Context()))
			return c.raise(cmd, b, issues.TypeMismatch{Description: opts.cause, Modules: u.modules}, opts.color)
		},
	}
	cmd.Flags().StringVarP(&opts.universe, "universe", "u", "", "module universe (YAML)")
	cmd.Flags().StringVar(&opts.cause, "cause", "", "mismatch description")
	cmd.Flags().BoolVar(&opts.color, "color", false, "color the error marker")
	_ = cmd.MarkFlagRequired("cause")
	return cmd
}

// raise composes the diagnostic, prints it to the command's output and
// returns the fatal linkage error.
func (c *CLI) raise(cmd *cobra.Command, b deps.Builder, issue issues.Issue, color bool) error {
	logger := loggerFromContext(cmd.Context())
	out := sink.Writer{W: cmd.OutOrStdout()}

	composer := &issues.Composer{
		Builder: b,
		Logger:  logger,
		Sink: sink.Func(func(severity sink.Severity, msg string, location *sink.Location) {
			if color {
				msg = styleDiagnostic(msg)
			}
			out.Report(severity, msg, location)
		}),
	}

	prog := newProgress(logger)
	err := composer.Raise(issue)
	prog.done("Composed diagnostic", "kind", issue.Kind())
	return err
}
