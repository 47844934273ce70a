package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// newCompletionCmd creates the completion command for generating shell completions.
func newCompletionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for docweave.

To load completions:

Bash:
  $ source <(docweave completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ docweave completion bash > /etc/bash_completion.d/docweave
  # macOS:
  $ docweave completion bash > $(brew --prefix)/etc/bash_completion.d/docweave

Zsh:
  $ docweave completion zsh > "${fpath[1]}/_docweave"

Fish:
  $ docweave completion fish | source

  # To load completions for each session, execute once:
  $ docweave completion fish > ~/.config/fish/completions/docweave.fish

PowerShell:
  PS> docweave completion powershell | Out-String | Invoke-Expression
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(os.Stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(os.Stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(os.Stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(os.Stdout)
			}
			return nil
		},
	}

	return cmd
}
