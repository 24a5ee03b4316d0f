package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dnrgps/dnrgps/pkg/controller"
	"github.com/dnrgps/dnrgps/pkg/errors"
	"github.com/dnrgps/dnrgps/pkg/table"
)

// tableOpts holds the output flags shared by commands that write tables.
type tableOpts struct {
	format string // json, yaml or msgpack; empty means by extension
	output string // output file; empty means stdout
}

func (o *tableOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.format, "format", "", "table format: json, yaml, msgpack (default from -o extension, else json)")
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "output file (default stdout)")
}

// resolveFormat picks the table format from the flag or the file name.
func resolveFormat(flag, path string) (table.Format, error) {
	if flag != "" {
		return table.ParseFormat(flag)
	}
	return table.FormatFromPath(path), nil
}

// write encodes t to the output file or stdout.
func (o *tableOpts) write(t *table.Table) error {
	f, err := resolveFormat(o.format, o.output)
	if err != nil {
		return err
	}
	if o.output == "" {
		if f == table.MsgPack {
			return errors.New(errors.ErrCodeInvalidInput, "msgpack output needs a file (-o)")
		}
		return table.Encode(stdout, t, f)
	}
	out, err := os.Create(o.output)
	if err != nil {
		return fmt.Errorf("create %s: %w", o.output, err)
	}
	if err := table.Encode(out, t, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	printSuccess("Wrote %d rows", t.Len())
	printFile(o.output)
	return nil
}

// extractCommand creates the extract command.
func (c *CLI) extractCommand() *cobra.Command {
	var opts tableOpts
	var fields string

	cmd := &cobra.Command{
		Use:   "extract [ADDRESS]",
		Short: "Read a feature layer into a table",
		Long: `Read a feature layer into a table. ADDRESS is a layer address such as 1-0
(group 1, child 0) relative to the focus map; without it the layer selected
in the table of contents is read. Selected features are read when there is a
selection, otherwise every displayed feature. Geometry is written as WGS84
well-known text.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var address string
			if len(args) == 1 {
				address = args[0]
			}
			ctl, err := c.attach(cmd.Context())
			if err != nil {
				return err
			}
			t, err := c.runExtract(cmd.Context(), ctl, address, parseList(fields))
			if err != nil {
				return err
			}
			return opts.write(t)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&fields, "fields", "", "comma-separated field names or aliases to keep")

	return cmd
}

func (c *CLI) runExtract(ctx context.Context, ctl *controller.Controller, address string, fields []string) (*table.Table, error) {
	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, "Reading features...")
	spinner.Start()
	ctl.SetProgress(func(processed, total int) {
		spinner.SetMessage(fmt.Sprintf("Reading features... %d/%d", processed, total))
	})
	defer ctl.SetProgress(nil)

	t, err := ctl.LayerData(ctx, address, fields)
	spinner.Stop()
	if err != nil {
		return nil, err
	}
	prog.done(fmt.Sprintf("Extracted %d rows", t.Len()))
	return t, nil
}
