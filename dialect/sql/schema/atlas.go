package schema

import (
	"strings"

	atlas "ariga.io/atlas/sql/schema"
)

// ToAtlas converts tables into an Atlas schema named name, so reflected
// catalogs can be handed to generic Atlas tooling. Foreign keys referencing
// tables outside the set get a stub table holding only the referenced columns.
func ToAtlas(name string, tables []*Table) *atlas.Schema {
	s := &atlas.Schema{Name: name}
	byName := make(map[string]*atlas.Table, len(tables))
	for _, t := range tables {
		at := atlasTable(t)
		at.Schema = s
		s.Tables = append(s.Tables, at)
		byName[t.Name] = at
	}
	for _, t := range tables {
		at := byName[t.Name]
		for _, fk := range t.ForeignKeys {
			ref, ok := byName[fk.RefTable]
			if !ok {
				ref = &atlas.Table{Name: fk.RefTable, Schema: s}
				for _, c := range fk.RefColumns {
					ref.Columns = append(ref.Columns, &atlas.Column{Name: c})
				}
				byName[fk.RefTable] = ref
			}
			afk := &atlas.ForeignKey{
				Symbol:     fk.Name,
				Table:      at,
				Columns:    atlasColumns(at, fk.Columns),
				RefTable:   ref,
				RefColumns: atlasColumns(ref, fk.RefColumns),
				OnUpdate:   referenceOption(string(fk.OnUpdate)),
				OnDelete:   referenceOption(string(fk.OnDelete)),
			}
			at.ForeignKeys = append(at.ForeignKeys, afk)
			for _, c := range afk.Columns {
				c.ForeignKeys = append(c.ForeignKeys, afk)
			}
		}
	}
	return s
}

func atlasTable(t *Table) *atlas.Table {
	at := &atlas.Table{Name: t.Name}
	for _, c := range t.Columns {
		at.Columns = append(at.Columns, AtlasColumn(c))
	}
	if t.PrimaryKey != nil {
		at.PrimaryKey = &atlas.Index{
			Name:   t.PrimaryKey.Name,
			Unique: true,
			Table:  at,
			Parts:  columnParts(at, t.PrimaryKey.Columns, false),
		}
	}
	for _, u := range t.Uniques {
		at.Indexes = append(at.Indexes, &atlas.Index{
			Name:   u.Name,
			Unique: true,
			Table:  at,
			Parts:  columnParts(at, u.Columns, false),
		})
	}
	for _, idx := range t.Indexes {
		at.Indexes = append(at.Indexes, atlasIndex(at, idx))
	}
	for _, ck := range t.Checks {
		at.Attrs = append(at.Attrs, &atlas.Check{Name: ck.Name, Expr: ck.Expr})
	}
	if t.Comment != "" {
		at.Attrs = append(at.Attrs, &atlas.Comment{Text: t.Comment})
	}
	return at
}

func atlasIndex(at *atlas.Table, idx *Index) *atlas.Index {
	ai := &atlas.Index{Name: idx.Name, Unique: idx.Unique, Table: at}
	if len(idx.Expressions) > 0 {
		for i, e := range idx.Expressions {
			ai.Parts = append(ai.Parts, &atlas.IndexPart{
				SeqNo: i,
				Desc:  idx.Descending,
				X:     &atlas.RawExpr{X: e},
			})
		}
	} else {
		ai.Parts = columnParts(at, idx.Columns, idx.Descending)
	}
	for _, p := range ai.Parts {
		if p.C != nil {
			p.C.Indexes = append(p.C.Indexes, ai)
		}
	}
	return ai
}

func columnParts(at *atlas.Table, names []string, desc bool) []*atlas.IndexPart {
	parts := make([]*atlas.IndexPart, 0, len(names))
	for i, c := range atlasColumns(at, names) {
		parts = append(parts, &atlas.IndexPart{SeqNo: i, Desc: desc, C: c})
	}
	return parts
}

func atlasColumns(at *atlas.Table, names []string) []*atlas.Column {
	cols := make([]*atlas.Column, 0, len(names))
	for _, n := range names {
		if c, ok := at.Column(n); ok {
			cols = append(cols, c)
		}
	}
	return cols
}

// AtlasColumn converts a column into its Atlas form.
func AtlasColumn(c *Column) *atlas.Column {
	ac := &atlas.Column{
		Name: c.Name,
		Type: &atlas.ColumnType{
			Type: AtlasType(c.Type),
			Raw:  c.Type.String(),
			Null: c.Nullable,
		},
	}
	if c.Default != nil {
		ac.Default = &atlas.RawExpr{X: *c.Default}
	}
	if c.Computed != nil {
		ac.Attrs = append(ac.Attrs, &atlas.GeneratedExpr{Expr: c.Computed.Expr, Type: "VIRTUAL"})
	}
	if c.Comment != "" {
		ac.Attrs = append(ac.Attrs, &atlas.Comment{Text: c.Comment})
	}
	return ac
}

// AtlasType maps a column type onto the matching Atlas type.
func AtlasType(t ColumnType) atlas.Type {
	name := t.Kind.String()
	switch t.Kind {
	case SmallInt, Integer, BigInt, Int128:
		return &atlas.IntegerType{T: name}
	case Char, VarChar, NChar, NVarChar:
		return &atlas.StringType{T: name, Size: t.Length}
	case Binary, VarBinary:
		bt := &atlas.BinaryType{T: name}
		if t.Length > 0 {
			bt.Size = Ptr(t.Length)
		}
		return bt
	case Numeric, Decimal:
		return &atlas.DecimalType{T: name, Precision: t.PrecisionOr(DefaultPrecision), Scale: t.ScaleOr(DefaultScale)}
	case Interval:
		return &atlas.DecimalType{T: "numeric", Precision: 18, Scale: 9}
	case Float, Double, DecFloat:
		return &atlas.FloatType{T: name, Precision: t.PrecisionOr(0)}
	case Date, Time, Timestamp:
		if t.Timezone {
			name += " with time zone"
		}
		return &atlas.TimeType{T: name, Precision: t.Precision}
	case Boolean:
		return &atlas.BoolType{T: name}
	case Blob:
		if t.IsTextBlob() {
			return &atlas.StringType{T: "blob sub_type text"}
		}
		return &atlas.BinaryType{T: "blob sub_type binary"}
	default:
		return &atlas.UnsupportedType{T: t.Raw}
	}
}

func referenceOption(action string) atlas.ReferenceOption {
	switch atlas.ReferenceOption(strings.ToUpper(action)) {
	case atlas.Cascade:
		return atlas.Cascade
	case atlas.SetNull:
		return atlas.SetNull
	case atlas.SetDefault:
		return atlas.SetDefault
	case atlas.Restrict:
		return atlas.Restrict
	default:
		return atlas.NoAction
	}
}

// Diff returns the Atlas changes that turn current into desired. Tables,
// columns and indexes are matched by name. New tables come first, then
// changes to existing tables, then dropped tables.
func Diff(current, desired []*Table) []atlas.Change {
	from, to := ToAtlas("", current), ToAtlas("", desired)
	var (
		changes []atlas.Change
		drops   []atlas.Change
	)
	for _, dt := range to.Tables {
		ct, ok := from.Table(dt.Name)
		if !ok {
			changes = append(changes, &atlas.AddTable{T: dt})
			continue
		}
		if mod := diffTable(ct, dt); len(mod) > 0 {
			changes = append(changes, &atlas.ModifyTable{T: dt, Changes: mod})
		}
	}
	for _, ct := range from.Tables {
		if _, ok := to.Table(ct.Name); !ok {
			drops = append(drops, &atlas.DropTable{T: ct})
		}
	}
	return append(changes, drops...)
}

func diffTable(from, to *atlas.Table) []atlas.Change {
	var changes []atlas.Change
	for _, dc := range to.Columns {
		cc, ok := from.Column(dc.Name)
		if !ok {
			changes = append(changes, &atlas.AddColumn{C: dc})
			continue
		}
		var kind atlas.ChangeKind
		if cc.Type.Raw != dc.Type.Raw {
			kind |= atlas.ChangeType
		}
		if cc.Type.Null != dc.Type.Null {
			kind |= atlas.ChangeNull
		}
		if exprText(cc.Default) != exprText(dc.Default) {
			kind |= atlas.ChangeDefault
		}
		if commentText(cc.Attrs) != commentText(dc.Attrs) {
			kind |= atlas.ChangeComment
		}
		if kind != atlas.NoChange {
			changes = append(changes, &atlas.ModifyColumn{From: cc, To: dc, Change: kind})
		}
	}
	for _, cc := range from.Columns {
		if _, ok := to.Column(cc.Name); !ok {
			changes = append(changes, &atlas.DropColumn{C: cc})
		}
	}
	for _, di := range to.Indexes {
		if _, ok := from.Index(di.Name); !ok {
			changes = append(changes, &atlas.AddIndex{I: di})
		}
	}
	for _, ci := range from.Indexes {
		if _, ok := to.Index(ci.Name); !ok {
			changes = append(changes, &atlas.DropIndex{I: ci})
		}
	}
	if fc, tc := commentText(from.Attrs), commentText(to.Attrs); fc != tc {
		changes = append(changes, &atlas.ModifyAttr{
			From: &atlas.Comment{Text: fc},
			To:   &atlas.Comment{Text: tc},
		})
	}
	return changes
}

func exprText(x atlas.Expr) string {
	if raw, ok := x.(*atlas.RawExpr); ok {
		return raw.X
	}
	return ""
}

func commentText(attrs []atlas.Attr) string {
	for _, a := range attrs {
		if c, ok := a.(*atlas.Comment); ok {
			return c.Text
		}
	}
	return ""
}

// Plan translates Atlas changes into operations, reading the full
// definitions of new tables, columns and indexes from desired. Changes with
// no operation equivalent, such as altering a column type in place, are
// returned in skipped for the caller to report.
func Plan(changes []atlas.Change, desired []*Table) (ops []Operation, skipped []atlas.Change) {
	byName := make(map[string]*Table, len(desired))
	for _, t := range desired {
		byName[t.Name] = t
	}
	for _, ch := range changes {
		switch ch := ch.(type) {
		case *atlas.AddTable:
			t, ok := byName[ch.T.Name]
			if !ok {
				skipped = append(skipped, ch)
				continue
			}
			ops = append(ops, &CreateTable{Table: t})
			for _, idx := range t.Indexes {
				ops = append(ops, &CreateIndex{Index: idx, Table: t.Name})
			}
			if t.Comment != "" {
				ops = append(ops, &SetTableComment{Table: t.Name, Comment: t.Comment})
			}
			for _, c := range t.Columns {
				if c.Comment != "" {
					ops = append(ops, &SetColumnComment{Table: t.Name, Column: c.Name, Comment: c.Comment})
				}
			}
		case *atlas.DropTable:
			ops = append(ops, &DropTable{Name: ch.T.Name})
		case *atlas.ModifyTable:
			t := byName[ch.T.Name]
			for _, m := range ch.Changes {
				if op := planModify(t, ch.T.Name, m); op != nil {
					ops = append(ops, op)
				} else {
					skipped = append(skipped, m)
				}
			}
		default:
			skipped = append(skipped, ch)
		}
	}
	return ops, skipped
}

func planModify(t *Table, table string, m atlas.Change) Operation {
	switch m := m.(type) {
	case *atlas.AddColumn:
		if t == nil {
			return nil
		}
		if c, ok := t.Column(m.C.Name); ok {
			return &AddColumn{Table: table, Column: c}
		}
	case *atlas.DropColumn:
		return &DropColumn{Table: table, Column: m.C.Name}
	case *atlas.AddIndex:
		if t == nil {
			return nil
		}
		if idx, ok := t.Index(m.I.Name); ok {
			return &CreateIndex{Index: idx, Table: table}
		}
	case *atlas.DropIndex:
		return &DropIndex{Name: m.I.Name, Table: table}
	case *atlas.ModifyColumn:
		if m.Change == atlas.ChangeComment {
			return &SetColumnComment{Table: table, Column: m.To.Name, Comment: commentText(m.To.Attrs)}
		}
	case *atlas.ModifyAttr:
		if c, ok := m.To.(*atlas.Comment); ok {
			return &SetTableComment{Table: table, Comment: c.Text}
		}
	}
	return nil
}
