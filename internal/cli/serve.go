package cli

import (
	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/internal/api"
)

const defaultAddr = "127.0.0.1:8765"

// serveCommand creates the serve command for the HTTP bridge.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the attached document over HTTP",
		Long: `Attach to the frontmost instance and serve its document over HTTP until
interrupted. Requests are handled one at a time.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			printSuccess("Serving on %s", StyleHighlight.Render("http://"+addr))
			printNextStep("Check it", "curl http://"+addr+"/health")
			return api.New(ctl, c.Logger).ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", defaultAddr, "listen address")

	return cmd
}
