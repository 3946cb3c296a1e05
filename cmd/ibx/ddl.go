package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect/interbase"
	"github.com/syssam/ibx/dialect/sql/schema"
)

// target selects the engine that offline compilation renders for.
type target struct {
	version   string
	interbase bool
}

func (t *target) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&t.version, "target-version", "4.0", "Server version to compile for")
	cmd.Flags().BoolVar(&t.interbase, "interbase", false, "Compile for InterBase instead of Firebird")
}

func (t *target) dialect() (*interbase.Dialect, error) {
	v, err := interbase.ParseVersion(t.version)
	if err != nil {
		return nil, ibx.NewConfigurationError("target-version", err.Error())
	}
	variant := interbase.Firebird
	if t.interbase {
		variant = interbase.InterBase
	}
	return interbase.New(interbase.NewCapabilities(v, variant)), nil
}

func newDDLCmd(o *options) *cobra.Command {
	var (
		file  string
		apply bool
		tgt   target
	)
	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Compile a YAML schema into DDL",
		Long: `Ddl compiles the tables of a YAML schema into CREATE statements.
Referenced tables are created before the tables referencing them.

Without --apply the statements are printed for --target-version. With
--apply they are executed against the configured server, committing
after every table and index.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			doc, err := readDocument(file)
			if err != nil {
				return err
			}
			ops, err := createOps(doc)
			if err != nil {
				return err
			}
			if !apply {
				d, err := tgt.dialect()
				if err != nil {
					return err
				}
				return printOps(cmd.OutOrStdout(), d, ops)
			}
			return o.withSession(cmd.Context(), cmd.ErrOrStderr(), func(s *session) error {
				if err := s.dialect.Migrator(interbase.MigrateWithLogger(o.log)).Apply(cmd.Context(), ops...); err != nil {
					return err
				}
				o.log.InfoContext(cmd.Context(), "schema applied", "operations", len(ops))
				return s.reflector.InvalidateFor(cmd.Context(), ops...)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML schema, or - for stdin")
	cmd.Flags().BoolVar(&apply, "apply", false, "Execute the statements against the server")
	tgt.register(cmd)
	cmd.MarkFlagRequired("file")
	return cmd
}

// createOps returns the operations creating doc. Standalone generators
// not already named by a column precede the tables.
func createOps(doc *document) ([]schema.Operation, error) {
	ops, err := interbase.CreateOps(doc.Tables)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	for _, op := range ops {
		if cs, ok := op.(*schema.CreateSequence); ok {
			seen[cs.Name] = true
		}
	}
	seqs := make([]schema.Operation, 0, len(doc.Sequences)+len(ops))
	for _, s := range doc.Sequences {
		if !seen[s.Name] {
			seen[s.Name] = true
			seqs = append(seqs, &schema.CreateSequence{Name: s.Name})
		}
	}
	return append(seqs, ops...), nil
}

// printOps writes the statements of ops as a script.
func printOps(w io.Writer, d *interbase.Dialect, ops []schema.Operation) error {
	for _, op := range ops {
		stmts, err := d.CompileDDL(op)
		if err != nil {
			return err
		}
		for _, s := range stmts {
			if _, err := fmt.Fprintf(w, "%s;\n", s); err != nil {
				return err
			}
		}
	}
	return nil
}
