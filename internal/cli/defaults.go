package cli

import (
	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/style"
)

// defaultsCommand creates the defaults command.
func (c *CLI) defaultsCommand() *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print the drawing style as TOML",
		Long: `Print the drawing style as TOML: the style file in use (--config,
$DNRGPS_CONFIG or the config directory) merged over the built-in values.
Redirect the output to start a style file of your own.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d := style.Default()
			if !builtin {
				loaded, err := c.loadStyle()
				if err != nil {
					return err
				}
				d = loaded
			}
			return style.Encode(stdout, d)
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "ignore any style file and print the built-in values")

	return cmd
}
