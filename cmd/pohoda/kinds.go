package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Vitexus/pohoda/agenda"
)

func newKindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the agenda kinds and their import roots",
		Args:  cobra.NoArgs,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return nil
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := agenda.DefaultRegistry()
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "KIND\tIMPORT ROOT")
			for _, name := range reg.Names() {
				k, err := reg.Resolve(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(tw, "%s\t%s\n", k.Name, k.ImportRoot)
			}
			return tw.Flush()
		},
	}
}
