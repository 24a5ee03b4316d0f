package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/host"
	"github.com/dnrgps/dnrgps/pkg/layertree"
)

// layersCommand creates the layers command.
func (c *CLI) layersCommand() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List feature layers of the focus map",
		Long: `List feature layers of the focus map by address and qualified name.

Without --all the listing follows the table of contents: a selected feature
layer lists only itself, a selected group lists the feature layers beneath
it, and a multi-selection lists the feature layers among it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			var ls []layertree.NamedLayer
			if all {
				ls, err = ctl.AllFeatureLayers()
			} else {
				ls, err = ctl.FeatureLayers()
			}
			if err != nil {
				return err
			}
			if len(ls) == 0 {
				printInfo("No feature layers")
				return nil
			}
			rows := make([][]string, 0, len(ls))
			for _, nl := range ls {
				rows = append(rows, []string{nl.Address.String(), nl.Name})
			}
			printTable([]string{"Address", "Layer"}, rows)
			printNextStep("Read a layer", appName+" extract "+ls[0].Address.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "list every feature layer, ignoring the selection")

	return cmd
}

// loadCommand creates the load command.
func (c *CLI) loadCommand() *cobra.Command {
	kinds := []string{host.Shapefile.String(), host.FileGeodatabase.String(), host.SdeConnectionString.String()}

	return &cobra.Command{
		Use:       "load KIND WORKSPACE DATASET",
		Short:     "Add a data set to the focus map",
		Long:      "Add a data set to the focus map. KIND is one of " + strings.Join(kinds, ", ") + ".",
		Args:      cobra.ExactArgs(3),
		ValidArgs: kinds,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, ok := host.ParseDataSetKind(args[0])
			if !ok {
				return errors.New(errors.ErrCodeInvalidInput, "unknown data set kind %q (want %s)", args[0], strings.Join(kinds, ", "))
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			l, err := ctl.LoadDataSet(kind, args[1], args[2])
			if err != nil {
				return err
			}
			printSuccess("Added %s", StyleHighlight.Render(l.Name()))
			return nil
		},
	}
}
