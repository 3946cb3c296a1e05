package gen

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/ibx/dialect/sql/schema"
)

// Model is the Go view of one table.
type Model struct {
	Name       string
	Table      *schema.Table
	Fields     []*Field
	PrimaryKey []*Field
}

// Field is the Go view of one column.
type Field struct {
	Name   string
	Column *schema.Column
}

// methods generated on every model; fields must not shadow them.
var methods = names("TableName", "Columns", "ScanTargets", "PrimaryKey")

// NewModel derives the model of t.
func NewModel(t *schema.Table) (*Model, error) {
	if t == nil || len(t.Columns) == 0 {
		return nil, &GenerationError{Table: tableName(t), Cause: fmt.Errorf("table has no columns")}
	}
	m := &Model{Name: structName(t.Name), Table: t}
	var (
		byColumn = make(map[string]*Field, len(t.Columns))
		taken    = make(map[string]bool, len(t.Columns))
	)
	for _, c := range t.Columns {
		name := pascal(c.Name)
		if _, ok := methods[name]; ok {
			name += "Field"
		}
		for i := 2; taken[name]; i++ {
			name = pascal(c.Name) + strconv.Itoa(i)
		}
		taken[name] = true
		f := &Field{Name: name, Column: c}
		byColumn[c.Name] = f
		m.Fields = append(m.Fields, f)
	}
	if t.PrimaryKey != nil {
		for _, col := range t.PrimaryKey.Columns {
			f, ok := byColumn[col]
			if !ok {
				return nil, &GenerationError{Table: t.Name, Cause: fmt.Errorf("primary key column %q is not a column of the table", col)}
			}
			m.PrimaryKey = append(m.PrimaryKey, f)
		}
	}
	return m, nil
}

func tableName(t *schema.Table) string {
	if t == nil {
		return ""
	}
	return t.Name
}

// Render returns the file holding the model of m.
func (c *Config) Render(m *Model) *jen.File {
	f := jen.NewFile(c.Package)
	if c.Header != "" {
		f.HeaderComment(c.Header)
	}
	recv := jen.Id("m").Op("*").Id(m.Name)

	f.Commentf("%s is a row of table %s.", m.Name, m.Table.Name)
	if m.Table.Comment != "" {
		f.Comment(m.Table.Comment)
	}
	f.Type().Id(m.Name).StructFunc(func(g *jen.Group) {
		for _, fd := range m.Fields {
			s := g.Id(fd.Name).Add(goType(fd.Column)).Tag(c.tags(fd.Column.Name))
			if fd.Column.Comment != "" {
				s.Comment(fd.Column.Comment)
			}
		}
	})

	f.Const().DefsFunc(func(g *jen.Group) {
		g.Commentf("%sTable is the catalog name of the table.", m.Name)
		g.Id(m.Name + "Table").Op("=").Lit(m.Table.Name)
		for _, fd := range m.Fields {
			g.Id(m.Name + "Column" + fd.Name).Op("=").Lit(fd.Column.Name)
		}
	})

	f.Comment("TableName returns the catalog name of the table.")
	f.Func().Params(jen.Id(m.Name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Id(m.Name + "Table")),
	)

	f.Comment("Columns returns the column names in table order.")
	f.Func().Params(jen.Id(m.Name)).Id("Columns").Params().Index().String().Block(
		jen.Return(jen.Index().String().ValuesFunc(func(g *jen.Group) {
			for _, fd := range m.Fields {
				g.Id(m.Name + "Column" + fd.Name)
			}
		})),
	)

	f.Comment("ScanTargets returns the addresses of the fields in column order.")
	f.Func().Params(recv).Id("ScanTargets").Params().Index().Any().Block(
		jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
			for _, fd := range m.Fields {
				g.Op("&").Id("m").Dot(fd.Name)
			}
		})),
	)

	if len(m.PrimaryKey) > 0 {
		f.Comment("PrimaryKey returns the primary key values.")
		f.Func().Params(recv).Id("PrimaryKey").Params().Index().Any().Block(
			jen.Return(jen.Index().Any().ValuesFunc(func(g *jen.Group) {
				for _, fd := range m.PrimaryKey {
					g.Id("m").Dot(fd.Name)
				}
			})),
		)
	}
	return f
}

func (c *Config) tags(column string) map[string]string {
	tags := make(map[string]string, len(c.Tags))
	for _, k := range c.Tags {
		tags[k] = column
	}
	return tags
}

// Generate writes one file per table into the target directory.
func Generate(ctx context.Context, cfg *Config, tables []*schema.Table) error {
	var (
		files = make([]fileTask, 0, len(tables))
		seen  = make(map[string]string, len(tables))
	)
	for _, t := range tables {
		m, err := NewModel(t)
		if err != nil {
			return err
		}
		if other, ok := seen[m.Name]; ok {
			return &GenerationError{Table: t.Name, Cause: fmt.Errorf("model name %s is also derived from table %s", m.Name, other)}
		}
		seen[m.Name] = t.Name
		files = append(files, fileTask{name: fileName(t.Name), table: t.Name, file: cfg.Render(m)})
	}
	return NewWriter(cfg.Target).WithWorkers(cfg.Workers).WriteAll(ctx, files)
}
