package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/linkdiag/pkg/errors"
	"github.com/matzehuels/linkdiag/pkg/manifest"
	"github.com/matzehuels/linkdiag/pkg/ordering"
)

// manifestCommand groups operations on dependency manifests written by the
// build system.
func (c *CLI) manifestCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "manifest",
		Short: "Inspect external dependency manifests",
	}
	cmd.AddCommand(c.manifestCheckCommand())
	return cmd
}

func (c *CLI) manifestCheckCommand() *cobra.Command {
	var quiet bool
	cmd := &cobra.Command{
		Use:   "check <file>",
		Short: "Validate a manifest and print it in normalized form",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runManifestCheck(cmd, args[0], quiet)
		},
	}
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "only report problems")
	return cmd
}

func (c *CLI) runManifestCheck(cmd *cobra.Command, path string, quiet bool) error {
	cfg, err := c.config()
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return errors.New(errors.ErrCodeFileNotFound, "manifest %s does not exist", path)
	}
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	var bad []*errors.LineError
	g, err := manifest.Parse(f, func(lineNo int, line string) {
		bad = append(bad, &errors.LineError{File: path, LineNo: lineNo, Line: line, Reason: "malformed entry"})
	})
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	for _, e := range bad {
		printError(stderr, "%v", e)
	}

	if !quiet {
		if err := manifest.Write(cmd.OutOrStdout(), g, cfg.policy(ordering.Distribution())); err != nil {
			return err
		}
	}

	if len(bad) > 0 {
		return errors.New(errors.ErrCodeInvalidManifest, "%d malformed %s in %s", len(bad), plural(len(bad), "line", "lines"), path)
	}
	printSuccess(stderr, "%s is well-formed", path)
	printStats(stderr, len(g), g.EdgeCount())
	return nil
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

