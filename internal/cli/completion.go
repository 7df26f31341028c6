package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for linkdiag.

Bash:
  $ source <(linkdiag completion bash)

Zsh:
  $ linkdiag completion zsh > "${fpath[1]}/_linkdiag"

Fish:
  $ linkdiag completion fish > ~/.config/fish/completions/linkdiag.fish

PowerShell:
  PS> linkdiag completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(out)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}

	return cmd
}

// completeModules suggests module names from the universe given by --universe.
func completeModules(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	path, _ := cmd.Flags().GetString("universe")
	if len(args) > 0 || path == "" {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	u, err := loadUniverse(path)
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	names := make([]string, 0, len(u.modules))
	for _, m := range u.modules {
		if m.Name() != u.current {
			names = append(names, m.Name())
		}
	}
	return names, cobra.ShellCompDirectiveNoFileComp
}
