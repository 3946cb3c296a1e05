package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newTablesCmd(o *options) *cobra.Command {
	var views, temp, sequences bool
	cmd := &cobra.Command{
		Use:   "tables",
		Short: "List user tables, views or generators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return o.withSession(cmd.Context(), cmd.ErrOrStderr(), func(s *session) error {
				list := s.reflector.TableNames
				switch {
				case views:
					list = s.reflector.ViewNames
				case temp:
					list = s.reflector.TempTableNames
				case sequences:
					list = s.reflector.SequenceNames
				}
				return printNames(cmd, list)
			})
		},
	}
	cmd.Flags().BoolVar(&views, "views", false, "List views")
	cmd.Flags().BoolVar(&temp, "temp", false, "List global temporary tables")
	cmd.Flags().BoolVar(&sequences, "sequences", false, "List generators")
	cmd.MarkFlagsMutuallyExclusive("views", "temp", "sequences")
	return cmd
}

func printNames(cmd *cobra.Command, list func(context.Context) ([]string, error)) error {
	names, err := list(cmd.Context())
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
