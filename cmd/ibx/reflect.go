package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/syssam/ibx/dialect/interbase"
	"github.com/syssam/ibx/dialect/sql/schema"
)

type reflectFlags struct {
	views     bool
	sequences bool
	domains   bool
}

func newReflectCmd(o *options) *cobra.Command {
	var f reflectFlags
	cmd := &cobra.Command{
		Use:   "reflect [table...]",
		Short: "Print table definitions as YAML",
		Long: `Reflect reads the catalog and prints the named tables, or all user
tables, in the YAML form accepted by ddl, gen and diff.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.withSession(cmd.Context(), cmd.ErrOrStderr(), func(s *session) error {
				doc, err := reflectDocument(cmd.Context(), s.reflector, args, f)
				if err != nil {
					return err
				}
				return writeDocument(cmd.OutOrStdout(), doc)
			})
		},
	}
	cmd.Flags().BoolVar(&f.views, "views", false, "Include view definitions")
	cmd.Flags().BoolVar(&f.sequences, "sequences", false, "Include generators")
	cmd.Flags().BoolVar(&f.domains, "domains", false, "Include user domains")
	return cmd
}

func reflectDocument(ctx context.Context, r *interbase.Reflector, tables []string, f reflectFlags) (*document, error) {
	doc := &document{}
	if len(tables) == 0 {
		all, err := r.Tables(ctx)
		if err != nil {
			return nil, err
		}
		doc.Tables = all
	}
	for _, name := range tables {
		t, err := r.Table(ctx, name)
		if err != nil {
			return nil, err
		}
		doc.Tables = append(doc.Tables, t)
	}
	if f.views {
		names, err := r.ViewNames(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			def, err := r.ViewDefinition(ctx, name)
			if err != nil {
				return nil, err
			}
			doc.Views = append(doc.Views, &schema.View{Name: name, Definition: def})
		}
	}
	if f.sequences {
		names, err := r.SequenceNames(ctx)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			doc.Sequences = append(doc.Sequences, &schema.Sequence{Name: name})
		}
	}
	if f.domains {
		domains, err := r.Domains(ctx)
		if err != nil {
			return nil, err
		}
		doc.Domains = domains
	}
	return doc, nil
}
