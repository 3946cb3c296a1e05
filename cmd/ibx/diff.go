package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/syssam/ibx/dialect/interbase"
	"github.com/syssam/ibx/dialect/sql/schema"
)

type diffFlags struct {
	desired   string
	current   string
	apply     bool
	allowDrop bool
	tgt       target
}

func newDiffCmd(o *options) *cobra.Command {
	var f diffFlags
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Plan the changes turning the current schema into a YAML schema",
		Long: `Diff compares the tables of the configured server, or of the YAML
schema given with --from, with the desired YAML schema and prints the
statements that migrate one into the other.

Changes that drop tables, columns or indexes are refused unless
--allow-drop is set. Changes without an equivalent statement, such as a
column type change, are reported and skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			desired, err := readDocument(f.desired)
			if err != nil {
				return err
			}
			if f.current != "" {
				if f.apply {
					return errors.New("--apply cannot be combined with --from")
				}
				current, err := readDocument(f.current)
				if err != nil {
					return err
				}
				ops, err := plan(cmd.Context(), o, current.Tables, desired.Tables, f.allowDrop)
				if err != nil {
					return err
				}
				d, err := f.tgt.dialect()
				if err != nil {
					return err
				}
				return printOps(cmd.OutOrStdout(), d, ops)
			}
			return o.withSession(cmd.Context(), cmd.ErrOrStderr(), func(s *session) error {
				current, err := s.reflector.Tables(cmd.Context())
				if err != nil {
					return err
				}
				ops, err := plan(cmd.Context(), o, current, desired.Tables, f.allowDrop)
				if err != nil {
					return err
				}
				if !f.apply {
					return printOps(cmd.OutOrStdout(), s.dialect, ops)
				}
				if err := s.dialect.Migrator(interbase.MigrateWithLogger(o.log)).Apply(cmd.Context(), ops...); err != nil {
					return err
				}
				o.log.InfoContext(cmd.Context(), "schema migrated", "operations", len(ops))
				return s.reflector.InvalidateFor(cmd.Context(), ops...)
			})
		},
	}
	cmd.Flags().StringVarP(&f.desired, "file", "f", "", "Desired YAML schema, or - for stdin")
	cmd.Flags().StringVar(&f.current, "from", "", "Current YAML schema instead of the server")
	cmd.Flags().BoolVar(&f.apply, "apply", false, "Execute the planned statements against the server")
	cmd.Flags().BoolVar(&f.allowDrop, "allow-drop", false, "Allow dropping tables, columns and indexes")
	f.tgt.register(cmd)
	cmd.MarkFlagRequired("file")
	return cmd
}

// plan validates the change from current to desired and returns the
// operations performing it.
func plan(ctx context.Context, o *options, current, desired []*schema.Table, allowDrop bool) ([]schema.Operation, error) {
	var vopts []schema.ValidateOption
	if allowDrop {
		vopts = append(vopts, schema.AllowDropTable(), schema.AllowDropColumn(), schema.AllowDropIndex())
	}
	res := schema.ValidateDiff(current, desired, vopts...)
	if res.HasErrors() {
		return nil, fmt.Errorf("diff refused:\n%s", res)
	}
	for _, w := range res.Warnings {
		o.log.WarnContext(ctx, "schema change", "warning", w.Error(), "breaking", w.Breaking)
	}
	ops, skipped := schema.Plan(schema.Diff(current, desired), desired)
	for _, ch := range skipped {
		o.log.WarnContext(ctx, "change skipped", "change", fmt.Sprintf("%T", ch))
	}
	return ops, nil
}
