package cli

import (
	"github.com/spf13/cobra"
)

// completionCommand creates the completion command for generating shell completions.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate shell completion scripts",
		Long: `Generate shell completion scripts for dnrgps.

To load completions:

Bash:
  $ source <(dnrgps completion bash)

  # To load completions for each session, execute once:
  # Linux:
  $ dnrgps completion bash > /etc/bash_completion.d/dnrgps
  # macOS:
  $ dnrgps completion bash > $(brew --prefix)/etc/bash_completion.d/dnrgps

Zsh:
  # If shell completion is not already enabled in your environment,
  # you will need to enable it. You can execute the following once:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # To load completions for each session, execute once:
  $ dnrgps completion zsh > "${fpath[1]}/_dnrgps"

  # You will need to start a new shell for this setup to take effect.

Fish:
  $ dnrgps completion fish | source

  # To load completions for each session, execute once:
  $ dnrgps completion fish > ~/.config/fish/completions/dnrgps.fish

PowerShell:
  PS> dnrgps completion powershell | Out-String | Invoke-Expression

  # To load completions for every new session, run:
  PS> dnrgps completion powershell > dnrgps.ps1
  # and source this file from your PowerShell profile.
`,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletion(stdout)
			case "zsh":
				return cmd.Root().GenZshCompletion(stdout)
			case "fish":
				return cmd.Root().GenFishCompletion(stdout, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(stdout)
			}
			return nil
		},
	}

	return cmd
}
