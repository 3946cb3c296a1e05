// Package gen generates Go model code from reflected tables.
//
// Every table becomes one file holding a struct with a field per column,
// the table and column names as constants, and a Scan helper listing the
// field addresses in column order:
//
//	tables, err := d.Reflector().Tables(ctx)
//	if err != nil {
//		return err
//	}
//	cfg, err := gen.NewConfig(gen.WithPackage("models"), gen.WithTarget("./models"))
//	if err != nil {
//		return err
//	}
//	return gen.Generate(ctx, cfg, tables)
//
// Struct names are the singular of the table name in PascalCase, field
// names are the PascalCase column names with common initialisms kept in
// upper case (ID, URL, ...). Nullable columns map to the database/sql Null
// types where one exists.
package gen
