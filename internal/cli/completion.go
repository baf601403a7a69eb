package cli

import (
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for kinship.

Member names complete for path, reach and the --from/--to flags of render.

Bash:
  $ source <(kinship completion bash)

Zsh:
  $ kinship completion zsh > "${fpath[1]}/_kinship"

Fish:
  $ kinship completion fish | source

PowerShell:
  PS> kinship completion powershell | Out-String | Invoke-Expression
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
}

// completeMembers returns a completion function offering member names for
// the first maxArgs positional arguments. Loading errors yield no
// suggestions.
func (c *CLI) completeMembers(maxArgs int) cobra.CompletionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]cobra.Completion, cobra.ShellCompDirective) {
		if maxArgs >= 0 && len(args) >= maxArgs {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return c.memberNames(cmd, toComplete), cobra.ShellCompDirectiveNoFileComp
	}
}

func (c *CLI) memberNames(cmd *cobra.Command, prefix string) []cobra.Completion {
	// completion output must stay clean
	level := c.Logger.GetLevel()
	c.Logger.SetLevel(log.FatalLevel)
	defer c.Logger.SetLevel(level)

	runner, _, err := c.openRunner(cmd.Context())
	if err != nil {
		return nil
	}
	defer runner.Close()

	var out []cobra.Completion
	for _, id := range runner.Current().Graph.SortedIDs() {
		if strings.HasPrefix(strings.ToLower(id), strings.ToLower(prefix)) {
			out = append(out, id)
		}
	}
	return out
}
