package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/graphics"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// graphicsCommand creates the graphics command.
func (c *CLI) graphicsCommand() *cobra.Command {
	var opts tableOpts

	cmd := &cobra.Command{
		Use:   "graphics",
		Short: "Read the active graphics layer into a table",
		Long: `Read the active graphics layer into a single-column table of WGS84
well-known text. Selected graphics are read when there are any, otherwise
every graphic. Text graphics are skipped and circles have no text form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			t, err := ctl.Graphics(cmd.Context())
			if err != nil {
				return err
			}
			return opts.write(t)
		},
	}

	opts.register(cmd)

	return cmd
}

// injectCommand creates the inject command.
func (c *CLI) injectCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "inject FILE",
		Short: "Draw the geometries of a table on the active graphics layer",
		Long: `Draw the geometries of a table on the active graphics layer. The table's
geometry column holds WGS84 well-known text; rows that cannot be drawn are
skipped and reported.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := readTable(args[0], format)
			if err != nil {
				return err
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}

			prog := newProgress(c.Logger)
			spinner := newSpinnerWithContext(cmd.Context(), "Drawing graphics...")
			spinner.Start()
			ctl.SetProgress(func(processed, total int) {
				spinner.SetMessage(fmt.Sprintf("Drawing graphics... %d/%d", processed, total))
			})
			res, err := ctl.AddGraphics(cmd.Context(), t)
			spinner.Stop()
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Drew %d rows", res.Rows))

			printSuccess("Added %s graphics", StyleNumber.Render(strconv.Itoa(res.Graphics)))
			printCounts(count{res.Rows, "rows"}, count{res.Skipped, "skipped"})
			if res.Skipped > 0 {
				printWarning("%d rows could not be drawn (run with -v for details)", res.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "table format: json, yaml, msgpack (default from extension)")

	return cmd
}

func readTable(path, format string) (*table.Table, error) {
	f, err := resolveFormat(format, path)
	if err != nil {
		return nil, err
	}
	in, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer in.Close()
	return table.Decode(in, f)
}

// clearCommand creates the clear command.
func (c *CLI) clearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear [ID...]",
		Short: "Delete GPS graphics by id, or all of them",
		Long: `Delete GPS graphics by the ids returned when they were drawn. Without ids
the scratch graphics layer is removed and the view is refreshed.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]graphics.GraphicID, 0, len(args))
			for _, a := range args {
				id, err := strconv.Atoi(a)
				if err != nil {
					return errors.New(errors.ErrCodeInvalidInput, "graphic id %q is not an integer", a)
				}
				ids = append(ids, graphics.GraphicID(id))
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			if len(ids) == 0 {
				if err := ctl.ClearAll(cmd.Context()); err != nil {
					return err
				}
				printSuccess("Cleared all GPS graphics")
				return nil
			}
			if err := ctl.ClearIDs(cmd.Context(), ids); err != nil {
				return err
			}
			printSuccess("Deleted %d graphics", len(ids))
			return nil
		},
	}
}
