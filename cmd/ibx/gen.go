package main

import (
	"context"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/syssam/ibx/compiler/gen"
	"github.com/syssam/ibx/dialect/sql/schema"
)

func newGenCmd(o *options) *cobra.Command {
	var (
		file    string
		out     string
		pkg     string
		header  string
		workers int
		tags    []string
	)
	cmd := &cobra.Command{
		Use:   "gen [table...]",
		Short: "Generate Go models from tables",
		Long: `Gen writes one Go file per table with a struct, column constants and
scan helpers. Tables come from a YAML schema given with -f, or are
reflected from the configured server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if pkg == "" {
				pkg = filepath.Base(filepath.Clean(out))
			}
			opts := []gen.Option{gen.WithTarget(out), gen.WithPackage(pkg), gen.WithTags(tags...)}
			if header != "" {
				opts = append(opts, gen.WithHeader(header))
			}
			if workers > 0 {
				opts = append(opts, gen.WithWorkers(workers))
			}
			cfg, err := gen.NewConfig(opts...)
			if err != nil {
				return err
			}
			if file != "" {
				doc, err := readDocument(file)
				if err != nil {
					return err
				}
				return generate(cmd.Context(), o, cfg, selectTables(doc.Tables, args))
			}
			return o.withSession(cmd.Context(), cmd.ErrOrStderr(), func(s *session) error {
				doc, err := reflectDocument(cmd.Context(), s.reflector, args, reflectFlags{})
				if err != nil {
					return err
				}
				return generate(cmd.Context(), o, cfg, doc.Tables)
			})
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML schema instead of reflecting the server")
	cmd.Flags().StringVarP(&out, "out", "o", "models", "Output directory")
	cmd.Flags().StringVar(&pkg, "package", "", "Package name, defaults to the output directory name")
	cmd.Flags().StringVar(&header, "header", "", "Header comment of generated files")
	cmd.Flags().IntVar(&workers, "workers", 0, "Files rendered in parallel, defaults to GOMAXPROCS")
	cmd.Flags().StringSliceVar(&tags, "tags", []string{"db"}, "Struct tag keys carrying the column name")
	return cmd
}

func generate(ctx context.Context, o *options, cfg *gen.Config, tables []*schema.Table) error {
	if err := gen.Generate(ctx, cfg, tables); err != nil {
		return err
	}
	o.log.InfoContext(ctx, "models generated", "tables", len(tables), "dir", cfg.Target)
	return nil
}

// selectTables returns the named tables, or all of them when names is empty.
func selectTables(tables []*schema.Table, names []string) []*schema.Table {
	if len(names) == 0 {
		return tables
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		want[n] = true
	}
	var selected []*schema.Table
	for _, t := range tables {
		if want[t.Name] {
			selected = append(selected, t)
		}
	}
	return selected
}
