package cli

import (
	"os"

	"github.com/spf13/cobra"
)

// completionCommand emits a completion script for the requested shell.
func (c *CLI) completionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "completion [bash|zsh|fish|powershell]",
		Short: "Generate a shell completion script",
		Long: `Generate a completion script for rfgds and print it to stdout.

Bash:
  # Current session only:
  $ source <(rfgds completion bash)

  # Persistently, on Linux:
  $ rfgds completion bash > /etc/bash_completion.d/rfgds
  # Persistently, on macOS with Homebrew's bash-completion:
  $ rfgds completion bash > $(brew --prefix)/etc/bash_completion.d/rfgds

Zsh:
  # Needs compinit enabled; add it once if it isn't:
  $ echo "autoload -U compinit; compinit" >> ~/.zshrc

  # Install the completion function on fpath, then open a new shell:
  $ rfgds completion zsh > "${fpath[1]}/_rfgds"

Fish:
  # Current session only:
  $ rfgds completion fish | source

  # Persistently:
  $ rfgds completion fish > ~/.config/fish/completions/rfgds.fish

PowerShell:
  # Current session only:
  PS> rfgds completion powershell | Out-String | Invoke-Expression

  # Persistently: write the script somewhere and dot-source it from
  # your PowerShell profile:
  PS> rfgds completion powershell > rfgds.ps1
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
