package cli

import (
	"strconv"

	"github.com/spf13/cobra"
)

// instancesCommand creates the instances command and its application-level
// subcommands.
func (c *CLI) instancesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "instances",
		Short: "List running host instances, frontmost first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.newLocator()
			if err != nil {
				return err
			}
			found := loc.Instances(cmd.Context())
			if len(found) == 0 {
				printInfo("No running %s instances", c.process)
				return nil
			}
			rows := make([][]string, 0, len(found))
			for i, inst := range found {
				mark := ""
				if i == 0 {
					mark = iconTop
				}
				rows = append(rows, []string{
					strconv.Itoa(inst.Depth),
					strconv.Itoa(inst.PID),
					inst.Title,
					mark,
					inst.ID.String(),
				})
			}
			printTable([]string{"Depth", "PID", "Title", "", "ID"}, rows)
			return nil
		},
	}

	cmd.AddCommand(c.instancesTopCommand())
	cmd.AddCommand(c.instancesNewDocumentCommand())
	cmd.AddCommand(c.instancesShutdownCommand())

	return cmd
}

// instancesTopCommand creates the "instances top" subcommand.
func (c *CLI) instancesTopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "top",
		Short: "Show the frontmost instance and whether it has a document open",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.newLocator()
			if err != nil {
				return err
			}
			title, ok := loc.TopTitle(cmd.Context())
			if !ok {
				printInfo("No running %s instances", c.process)
				return nil
			}
			printKeyValue("Title", title)
			printKeyValue("Document", strconv.FormatBool(loc.HasOpenDocuments(cmd.Context())))
			return nil
		},
	}
}

// instancesNewDocumentCommand creates the "instances new-document" subcommand.
func (c *CLI) instancesNewDocumentCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "new-document",
		Short: "Open a new empty document in the frontmost instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.newLocator()
			if err != nil {
				return err
			}
			if err := loc.StartNewDocument(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Started a new document")
			return nil
		},
	}
}

// instancesShutdownCommand creates the "instances shutdown" subcommand.
func (c *CLI) instancesShutdownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "shutdown",
		Short: "Shut down the frontmost instance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := c.newLocator()
			if err != nil {
				return err
			}
			title, _ := loc.TopTitle(cmd.Context())
			if err := loc.ShutdownTop(cmd.Context()); err != nil {
				return err
			}
			printSuccess("Shut down %s", title)
			return nil
		},
	}
}
