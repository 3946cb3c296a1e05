package interbase

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect/sql/schema"
)

// ExpressionSeparator joins the expressions of an expression index.
const ExpressionSeparator = "||"

// CompileDDL renders a schema operation. CreateTable may produce several
// statements: an emulated autoincrement column adds a generator before the
// table and a trigger after it. Comments follow as separate statements.
func (d *Dialect) CompileDDL(op schema.Operation) ([]string, error) {
	g := &ddl{caps: d.caps, prep: d.prep}
	var stmts []string
	switch op := op.(type) {
	case *schema.CreateTable:
		stmts = g.createTable(op.Table, op.IfNotExists)
	case *schema.DropTable:
		stmts = []string{"DROP TABLE " + g.ident(op.Name)}
	case *schema.AddColumn:
		stmts = []string{"ALTER TABLE " + g.ident(op.Table) + " ADD " + g.column(op.Column)}
	case *schema.DropColumn:
		stmts = []string{"ALTER TABLE " + g.ident(op.Table) + " DROP " + g.ident(op.Column)}
	case *schema.CreateIndex:
		stmts = []string{g.createIndex(op.Table, op.Index)}
	case *schema.DropIndex:
		stmts = []string{"DROP INDEX " + g.ident(op.Name)}
	case *schema.CreateSequence:
		stmts = []string{g.createSequence(op.Name, op.IfNotExists)}
	case *schema.DropSequence:
		stmts = []string{"DROP GENERATOR " + g.ident(op.Name)}
	case *schema.SetTableComment:
		stmts = []string{"COMMENT ON TABLE " + g.ident(op.Table) + " IS " + comment(op.Comment)}
	case *schema.SetColumnComment:
		stmts = []string{"COMMENT ON COLUMN " + g.ident(op.Table) + "." + g.ident(op.Column) + " IS " + comment(op.Comment)}
	default:
		return nil, ibx.NewCompileError("ddl", "unexpected operation %T", op)
	}
	if g.err != nil {
		return nil, g.err
	}
	return stmts, nil
}

// CompileAll renders the statements creating a whole schema, in the order
// given by CreateOps.
func (d *Dialect) CompileAll(tables []*schema.Table) ([]string, error) {
	ops, err := CreateOps(tables)
	if err != nil {
		return nil, err
	}
	var stmts []string
	for _, op := range ops {
		s, err := d.CompileDDL(op)
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s...)
	}
	return stmts, nil
}

// CreateOps returns the operations creating a whole schema. Generators
// named by columns come first, then tables ordered so that referenced
// tables precede the tables referencing them, then their indexes.
func CreateOps(tables []*schema.Table) ([]schema.Operation, error) {
	if res := schema.ValidateSchema(tables); res.HasErrors() {
		errs := make([]error, len(res.Errors))
		for i, e := range res.Errors {
			errs[i] = e
		}
		return nil, fmt.Errorf("interbase: compile schema: %w", errors.Join(errs...))
	}
	ordered, err := sortTables(tables)
	if err != nil {
		return nil, err
	}
	var (
		ops  []schema.Operation
		seen = make(map[string]bool)
	)
	for _, t := range ordered {
		for _, c := range t.Columns {
			if c.Sequence == nil || c.Sequence.Optional || seen[c.Sequence.Name] {
				continue
			}
			seen[c.Sequence.Name] = true
			ops = append(ops, &schema.CreateSequence{Name: c.Sequence.Name})
		}
	}
	ordered = quoteColumnRefs(ordered)
	for _, t := range ordered {
		ops = append(ops, &schema.CreateTable{Table: t})
	}
	for _, t := range ordered {
		for _, idx := range t.Indexes {
			ops = append(ops, &schema.CreateIndex{Index: idx, Table: t.Name})
		}
	}
	return ops, nil
}

// quoteColumnRefs rewrites the index columns and the foreign key referenced
// columns naming a column flagged Quote into quoted form, so they render
// without the table at hand. Tables needing a change are copied.
func quoteColumnRefs(tables []*schema.Table) []*schema.Table {
	byName := make(map[string]*schema.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	quoted := func(t *schema.Table, names []string) ([]string, bool) {
		if t == nil {
			return names, false
		}
		var out []string
		for i, n := range names {
			c, ok := t.Column(n)
			if _, q := unquote(n); !ok || !c.Quote || q {
				continue
			}
			if out == nil {
				out = append([]string(nil), names...)
			}
			out[i] = `"` + strings.ReplaceAll(n, `"`, `""`) + `"`
		}
		if out == nil {
			return names, false
		}
		return out, true
	}
	result := make([]*schema.Table, len(tables))
	for i, t := range tables {
		var (
			cp      = *t
			changed bool
		)
		cp.Indexes = make([]*schema.Index, len(t.Indexes))
		for j, idx := range t.Indexes {
			cp.Indexes[j] = idx
			if cols, ok := quoted(t, idx.Columns); ok {
				ic := *idx
				ic.Columns, cp.Indexes[j], changed = cols, &ic, true
			}
		}
		cp.ForeignKeys = make([]*schema.ForeignKey, len(t.ForeignKeys))
		for j, fk := range t.ForeignKeys {
			cp.ForeignKeys[j] = fk
			if cols, ok := quoted(byName[fk.RefTable], fk.RefColumns); ok {
				fc := *fk
				fc.RefColumns, cp.ForeignKeys[j], changed = cols, &fc, true
			}
		}
		if changed {
			result[i] = &cp
		} else {
			result[i] = t
		}
	}
	return result
}

// sortTables orders tables by their foreign keys. Self references are
// ignored and references to tables outside the list impose no order.
func sortTables(tables []*schema.Table) ([]*schema.Table, error) {
	byName := make(map[string]*schema.Table, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}
	var (
		ordered = make([]*schema.Table, 0, len(tables))
		state   = make(map[string]int, len(tables))
		visit   func(*schema.Table) error
	)
	visit = func(t *schema.Table) error {
		switch state[t.Name] {
		case 1:
			return ibx.NewCompileError("schema", "foreign keys of table %q form a cycle", t.Name)
		case 2:
			return nil
		}
		state[t.Name] = 1
		for _, fk := range t.ForeignKeys {
			ref, ok := byName[fk.RefTable]
			if !ok || ref == t {
				continue
			}
			if err := visit(ref); err != nil {
				return err
			}
		}
		state[t.Name] = 2
		ordered = append(ordered, t)
		return nil
	}
	for _, t := range tables {
		if err := visit(t); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

type ddl struct {
	caps *Capabilities
	prep *Preparer
	err  error
}

func (g *ddl) fail(op, format string, args ...any) {
	if g.err == nil {
		g.err = ibx.NewCompileError(op, format, args...)
	}
}

func (g *ddl) unsupported(op, format string, args ...any) {
	if g.err == nil {
		g.err = ibx.NewUnsupportedError(op, format, args...)
	}
}

func (g *ddl) ident(name string) string {
	s, err := g.prep.Format(name)
	if err != nil && g.err == nil {
		g.err = err
	}
	return s
}

// idents renders a column list of t. Columns of t flagged Quote keep their
// case; t may be nil for lists naming another table.
func (g *ddl) idents(t *schema.Table, names []string) string {
	parts := make([]string, len(names))
	for i, n := range names {
		parts[i] = g.ident(n)
		if t == nil {
			continue
		}
		if c, ok := t.Column(n); ok {
			parts[i] = g.columnName(c)
		}
	}
	return strings.Join(parts, ", ")
}

func (g *ddl) columnName(c *schema.Column) string {
	if _, ok := unquote(c.Name); c.Quote && !ok {
		return g.ident(g.prep.Quote(c.Name))
	}
	return g.ident(c.Name)
}

func (g *ddl) typeName(t schema.ColumnType) string {
	typ, err := TypeName(t, g.caps)
	if err != nil && g.err == nil {
		g.err = err
	}
	return typ
}

// derived joins the catalog spellings of parts into the name of an object
// created on behalf of a table.
func derived(parts ...string) string {
	for i, p := range parts {
		if s, ok := unquote(p); ok {
			parts[i] = s
		}
	}
	return strings.Join(parts, "_")
}

func (g *ddl) createTable(t *schema.Table, ifNotExists bool) []string {
	if t == nil {
		g.fail("create table", "nil table")
		return nil
	}
	auto := t.AutoincrementColumn()
	var (
		b     strings.Builder
		stmts []string
		gen   string
	)
	if auto != nil {
		gen = g.ident(derived(t.Name, auto.Name, "gen"))
		stmts = append(stmts, g.createSequence(derived(t.Name, auto.Name, "gen"), false))
	}
	b.WriteString("CREATE ")
	if t.Annotation != nil {
		for _, p := range t.Annotation.Prefixes {
			b.WriteString(strings.ToUpper(strings.TrimSpace(p)) + " ")
		}
	}
	b.WriteString("TABLE ")
	if ifNotExists {
		b.WriteString("IF NOT EXISTS ")
	}
	b.WriteString(g.ident(t.Name) + " (")
	for i, c := range t.Columns {
		if i > 0 {
			b.WriteString(", ")
		}
		if c == auto {
			b.WriteString(g.columnName(c) + " " + g.typeName(c.Type))
			continue
		}
		b.WriteString(g.column(c))
	}
	for _, cons := range g.constraints(t) {
		b.WriteString(", " + cons)
	}
	b.WriteString(")")
	if t.Annotation != nil && t.Annotation.OnCommit != "" {
		b.WriteString("\n ON COMMIT " + string(t.Annotation.OnCommit))
	}
	stmts = append(stmts, b.String())
	if auto != nil {
		col := g.columnName(auto)
		stmts = append(stmts, fmt.Sprintf(
			"CREATE TRIGGER %s FOR %s BEFORE INSERT AS BEGIN IF (NEW.%s IS NULL) THEN NEW.%s = GEN_ID(%s, 1); END",
			g.ident(derived(t.Name, auto.Name, "trg")), g.ident(t.Name), col, col, gen,
		))
	}
	if t.Annotation.CommentsEnabled() {
		if t.Comment != "" {
			stmts = append(stmts, "COMMENT ON TABLE "+g.ident(t.Name)+" IS "+comment(t.Comment))
		}
		for _, c := range t.Columns {
			if c.Comment != "" {
				stmts = append(stmts, "COMMENT ON COLUMN "+g.ident(t.Name)+"."+g.columnName(c)+" IS "+comment(c.Comment))
			}
		}
	}
	return stmts
}

// column renders a column specification.
func (g *ddl) column(c *schema.Column) string {
	if c == nil {
		g.fail("column", "nil column")
		return ""
	}
	var b strings.Builder
	b.WriteString(g.columnName(c) + " " + g.typeName(c.Type))
	if c.Identity != nil && c.Default != nil {
		g.fail("column", "column %q has both an identity and a default", c.Name)
	}
	if c.Default != nil {
		b.WriteString(" DEFAULT " + *c.Default)
	}
	if c.Computed != nil {
		if c.Computed.Persisted != nil {
			g.fail("column", "computed column %q: persistence cannot be set, leave Persisted nil", c.Name)
		}
		b.WriteString(" COMPUTED BY (" + c.Computed.Expr + ")")
	}
	if id := c.Identity; id != nil {
		if !g.caps.SupportsIdentity {
			g.unsupported("column", "identity column %q needs Firebird 3 or later, connected to %s %s", c.Name, g.caps.Variant, g.caps.Version)
		}
		if id.Always {
			b.WriteString(" GENERATED ALWAYS AS IDENTITY")
		} else {
			b.WriteString(" GENERATED BY DEFAULT AS IDENTITY")
		}
		var opts []string
		if id.Start != nil {
			opts = append(opts, "START WITH "+strconv.FormatInt(*id.Start, 10))
		}
		if id.Increment != nil {
			opts = append(opts, "INCREMENT BY "+strconv.FormatInt(*id.Increment, 10))
		}
		if len(opts) > 0 {
			b.WriteString(" (" + strings.Join(opts, " ") + ")")
		}
	}
	switch {
	case !c.Nullable && c.Identity == nil:
		b.WriteString(" NOT NULL")
	case c.Nullable && c.Identity != nil:
		b.WriteString(" NULL")
	}
	return b.String()
}

func (g *ddl) constraints(t *schema.Table) []string {
	var out []string
	named := func(name string) string {
		if name == "" {
			return ""
		}
		return "CONSTRAINT " + g.ident(name) + " "
	}
	if pk := t.PrimaryKey; pk != nil && len(pk.Columns) > 0 {
		out = append(out, named(pk.Name)+"PRIMARY KEY ("+g.idents(t, pk.Columns)+")")
	}
	for _, u := range t.Uniques {
		out = append(out, named(u.Name)+"UNIQUE ("+g.idents(t, u.Columns)+")")
	}
	for _, fk := range t.ForeignKeys {
		ref := t
		if fk.RefTable != t.Name {
			ref = nil
		}
		s := named(fk.Name) + "FOREIGN KEY (" + g.idents(t, fk.Columns) + ") REFERENCES " +
			g.ident(fk.RefTable) + " (" + g.idents(ref, fk.RefColumns) + ")"
		if !fk.OnUpdate.IsDefault() {
			s += " ON UPDATE " + string(fk.OnUpdate)
		}
		if !fk.OnDelete.IsDefault() {
			s += " ON DELETE " + string(fk.OnDelete)
		}
		out = append(out, s)
	}
	for _, ck := range t.Checks {
		out = append(out, named(ck.Name)+"CHECK ("+ck.Expr+")")
	}
	return out
}

func (g *ddl) createIndex(table string, idx *schema.Index) string {
	if idx == nil || idx.Name == "" {
		g.fail("create index", "CREATE INDEX requires that the index have a name")
		return ""
	}
	var cols []string
	for _, c := range idx.Columns {
		if c != "" {
			cols = append(cols, c)
		}
	}
	if len(cols) == 0 && len(idx.Expressions) == 0 {
		g.fail("create index", "index %q requires at least one column or expression", idx.Name)
		return ""
	}
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.Unique {
		b.WriteString("UNIQUE ")
	}
	if idx.Descending {
		b.WriteString("DESCENDING ")
	}
	b.WriteString("INDEX " + g.ident(idx.Name) + " ON " + g.ident(table) + " ")
	if len(idx.Expressions) > 0 {
		b.WriteString("COMPUTED BY (" + strings.Join(idx.Expressions, ExpressionSeparator) + ")")
	} else {
		b.WriteString("(" + g.idents(nil, cols) + ")")
	}
	if idx.Where != "" {
		if !g.caps.SupportsPartialIndex {
			g.unsupported("create index", "partial index %q needs Firebird 5 or later, connected to %s %s", idx.Name, g.caps.Variant, g.caps.Version)
		}
		b.WriteString(" WHERE " + idx.Where)
	}
	return b.String()
}

func (g *ddl) createSequence(name string, ifNotExists bool) string {
	s := "CREATE GENERATOR "
	if ifNotExists {
		s += "IF NOT EXISTS "
	}
	return s + g.ident(name)
}

func comment(s string) string {
	if s == "" {
		return "NULL"
	}
	return quoteString(s)
}
