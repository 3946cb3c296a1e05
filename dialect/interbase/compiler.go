package interbase

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect/sql"
)

// MaxRows is the upper ROWS bound used when only an offset is given.
const MaxRows int64 = math.MaxInt64

// Compile renders a query tree to SQL text and its positional arguments.
func (d *Dialect) Compile(st sql.Statement) (string, []any, error) {
	c := &compiler{caps: d.caps, prep: d.prep}
	switch st := st.(type) {
	case *sql.Selector:
		c.selectStmt(st.Stmt())
	case *sql.InsertBuilder:
		c.insertStmt(st.Stmt())
	case *sql.UpdateBuilder:
		c.updateStmt(st.Stmt())
	case *sql.DeleteBuilder:
		c.deleteStmt(st.Stmt())
	default:
		return "", nil, ibx.NewCompileError("statement", "unexpected statement %T", st)
	}
	if c.err != nil {
		return "", nil, c.err
	}
	return c.b.String(), c.args, nil
}

// compiler accumulates the text and arguments of one statement. The first
// error stops further output from mattering.
type compiler struct {
	caps *Capabilities
	prep *Preparer
	b    strings.Builder
	args []any
	err  error
}

func (c *compiler) fail(op, format string, args ...any) {
	if c.err == nil {
		c.err = ibx.NewCompileError(op, format, args...)
	}
}

// unsupported records a compile error for syntax the engine lacks.
func (c *compiler) unsupported(op, format string, args ...any) {
	if c.err == nil {
		c.err = ibx.NewUnsupportedError(op, format, args...)
	}
}

func (c *compiler) ident(name string) {
	s, err := c.prep.Format(name)
	if err != nil && c.err == nil {
		c.err = err
	}
	c.b.WriteString(s)
}

func (c *compiler) idents(names []string) {
	for i, n := range names {
		if i > 0 {
			c.b.WriteString(", ")
		}
		c.ident(n)
	}
}

func (c *compiler) selectStmt(st *sql.SelectStmt) {
	c.b.WriteString("SELECT ")
	if st.Distinct {
		c.b.WriteString("DISTINCT ")
	}
	if len(st.Columns) == 0 {
		c.b.WriteString("*")
	}
	c.exprList(st.Columns)
	if st.From == nil {
		c.b.WriteString(" FROM rdb$database")
	} else {
		c.b.WriteString(" FROM ")
		c.source(st.From)
	}
	for _, j := range st.Joins {
		c.b.WriteString(" " + j.Kind.String() + " ")
		c.source(j.Source)
		if j.On != nil {
			c.b.WriteString(" ON ")
			c.expr(j.On)
		}
	}
	if st.Where != nil {
		c.b.WriteString(" WHERE ")
		c.expr(st.Where)
	}
	if len(st.GroupBy) > 0 {
		c.b.WriteString(" GROUP BY ")
		c.exprList(st.GroupBy)
	}
	if st.Having != nil {
		c.b.WriteString(" HAVING ")
		c.expr(st.Having)
	}
	if len(st.OrderBy) > 0 {
		c.b.WriteString(" ORDER BY ")
		for i, o := range st.OrderBy {
			if i > 0 {
				c.b.WriteString(", ")
			}
			c.expr(o.X)
			if o.Desc {
				c.b.WriteString(" DESC")
			}
			if o.Nulls != "" {
				c.b.WriteString(" NULLS " + strings.ToUpper(o.Nulls))
			}
		}
	}
	c.rows(st.Limit, st.Offset, st.Fetch)
	if l := st.Lock; l != nil {
		c.b.WriteString(" FOR UPDATE")
		switch {
		case l.SkipLocked:
			c.b.WriteString(" WITH LOCK SKIP LOCKED")
		case l.Nowait:
			c.b.WriteString(" WITH LOCK")
		}
	}
}

// rows renders pagination as a ROWS clause with computed bounds.
func (c *compiler) rows(limit, offset, fetch *int64) {
	if fetch != nil {
		limit = fetch
	}
	for _, v := range []*int64{limit, offset} {
		if v != nil && *v < 0 {
			c.fail("select", "negative row count %d", *v)
			return
		}
	}
	switch {
	case limit != nil && offset != nil:
		if *limit > MaxRows-*offset {
			c.fail("select", "row bound overflows: offset %d, count %d", *offset, *limit)
			return
		}
		fmt.Fprintf(&c.b, " ROWS %d TO %d", *offset+1, *offset+*limit)
	case limit != nil:
		fmt.Fprintf(&c.b, " ROWS 1 TO %d", *limit)
	case offset != nil:
		if *offset == MaxRows {
			c.fail("select", "row bound overflows: offset %d", *offset)
			return
		}
		fmt.Fprintf(&c.b, " ROWS %d TO %d", *offset+1, MaxRows)
	}
}

func (c *compiler) source(src sql.Source) {
	switch src := src.(type) {
	case *sql.TableRef:
		c.ident(src.Name)
		if src.Alias != "" {
			c.b.WriteString(" ")
			c.ident(src.Alias)
		}
	case *sql.Selector:
		c.b.WriteString("(")
		c.selectStmt(src.Stmt())
		c.b.WriteString(")")
		if a := src.Alias(); a != "" {
			c.b.WriteString(" ")
			c.ident(a)
		}
	default:
		c.fail("select", "unexpected source %T", src)
	}
}

func (c *compiler) insertStmt(st *sql.InsertStmt) {
	c.b.WriteString("INSERT INTO ")
	c.ident(st.Table)
	switch {
	case st.Default:
		if len(st.Columns) > 0 || len(st.Values) > 0 {
			c.fail("insert", "DEFAULT VALUES with explicit columns")
			return
		}
		c.b.WriteString(" DEFAULT VALUES")
	case len(st.Values) == 0:
		c.fail("insert", "no values for table %q", st.Table)
		return
	case len(st.Values) > 1:
		c.fail("insert", "multi-row VALUES is not supported, got %d rows", len(st.Values))
		return
	default:
		row := st.Values[0]
		if len(st.Columns) > 0 && len(st.Columns) != len(row) {
			c.fail("insert", "%d columns but %d values", len(st.Columns), len(row))
			return
		}
		if len(st.Columns) > 0 {
			c.b.WriteString(" (")
			c.idents(st.Columns)
			c.b.WriteString(")")
		}
		c.b.WriteString(" VALUES (")
		c.exprList(row)
		c.b.WriteString(")")
	}
	c.returning("insert", st.Returning)
}

func (c *compiler) updateStmt(st *sql.UpdateStmt) {
	if len(st.Set) == 0 {
		c.fail("update", "no columns to set in table %q", st.Table)
		return
	}
	c.b.WriteString("UPDATE ")
	c.ident(st.Table)
	c.b.WriteString(" SET ")
	for i, a := range st.Set {
		if i > 0 {
			c.b.WriteString(", ")
		}
		c.ident(a.Column)
		c.b.WriteString(" = ")
		c.expr(a.Value)
	}
	if st.Where != nil {
		c.b.WriteString(" WHERE ")
		c.expr(st.Where)
	}
	c.returning("update", st.Returning)
}

func (c *compiler) deleteStmt(st *sql.DeleteStmt) {
	c.b.WriteString("DELETE FROM ")
	c.ident(st.Table)
	if st.Where != nil {
		c.b.WriteString(" WHERE ")
		c.expr(st.Where)
	}
	c.returning("delete", st.Returning)
}

func (c *compiler) returning(op string, columns []string) {
	if len(columns) == 0 {
		return
	}
	if !c.caps.SupportsReturning {
		c.unsupported(op, "RETURNING is not supported by %s %s", c.caps.Variant, c.caps.Version)
		return
	}
	c.b.WriteString(" RETURNING ")
	c.idents(columns)
}

func (c *compiler) exprList(xs []sql.Expr) {
	for i, x := range xs {
		if i > 0 {
			c.b.WriteString(", ")
		}
		c.expr(x)
	}
}

// Operator binding strength. Operands binding weaker than their parent are
// parenthesized.
func precedence(x sql.Expr) int {
	b, ok := x.(*sql.BinaryExpr)
	if !ok {
		return 10
	}
	switch b.Op {
	case sql.OpOr:
		return 1
	case sql.OpAnd:
		return 2
	case sql.OpConcat:
		return 4
	case sql.OpAdd, sql.OpSub:
		return 5
	case sql.OpMul, sql.OpDiv:
		return 6
	case sql.OpMod, sql.OpBitXor:
		return 10
	default:
		return 3
	}
}

var binaryOps = map[sql.Op]string{
	sql.OpEQ:           " = ",
	sql.OpNEQ:          " <> ",
	sql.OpLT:           " < ",
	sql.OpLTE:          " <= ",
	sql.OpGT:           " > ",
	sql.OpGTE:          " >= ",
	sql.OpAnd:          " AND ",
	sql.OpOr:           " OR ",
	sql.OpAdd:          " + ",
	sql.OpSub:          " - ",
	sql.OpMul:          " * ",
	sql.OpConcat:       " || ",
	sql.OpLike:         " LIKE ",
	sql.OpNotLike:      " NOT LIKE ",
	sql.OpContaining:   " CONTAINING ",
	sql.OpStartingWith: " STARTING WITH ",
}

func (c *compiler) operand(x sql.Expr, parent int, right bool) {
	p := precedence(x)
	if p < parent || right && p == parent && parent > 2 {
		c.b.WriteString("(")
		c.expr(x)
		c.b.WriteString(")")
		return
	}
	c.expr(x)
}

func (c *compiler) binary(x *sql.BinaryExpr) {
	switch x.Op {
	case sql.OpMod:
		c.call("MOD", x.L, x.R)
		return
	case sql.OpBitXor:
		c.call("BIN_XOR", x.L, x.R)
		return
	case sql.OpDiv:
		c.operand(x.L, 6, false)
		c.b.WriteString(" / (")
		c.expr(x.R)
		c.b.WriteString(" + 0.0)")
		return
	}
	op, ok := binaryOps[x.Op]
	if !ok {
		c.fail("expression", "unknown operator %d", x.Op)
		return
	}
	p := precedence(x)
	c.operand(x.L, p, false)
	c.b.WriteString(op)
	c.operand(x.R, p, true)
}

func (c *compiler) call(name string, args ...sql.Expr) {
	c.b.WriteString(name + "(")
	c.exprList(args)
	c.b.WriteString(")")
}

func (c *compiler) function(f *sql.FuncExpr) {
	switch name := strings.ToLower(f.Name); name {
	case sql.FuncNow:
		c.b.WriteString("CURRENT_TIMESTAMP")
	case sql.FuncSubstring:
		if n := len(f.Args); n < 2 || n > 3 {
			c.fail("expression", "SUBSTR takes 2 or 3 arguments, got %d", n)
			return
		}
		c.call("SUBSTR", f.Args...)
	case sql.FuncLength, sql.FuncCharLength:
		c.call("STRLEN", f.Args...)
	case sql.FuncPosition:
		if len(f.Args) != 2 {
			c.fail("expression", "POSITION takes 2 arguments, got %d", len(f.Args))
			return
		}
		c.b.WriteString("POSITION(")
		c.expr(f.Args[0])
		c.b.WriteString(" IN ")
		c.expr(f.Args[1])
		c.b.WriteString(")")
	default:
		c.b.WriteString(strings.ToUpper(name))
		if f.Args == nil {
			return
		}
		c.b.WriteString("(")
		if f.Distinct {
			c.b.WriteString("DISTINCT ")
		}
		c.exprList(f.Args)
		c.b.WriteString(")")
	}
}

func (c *compiler) expr(x sql.Expr) {
	switch x := x.(type) {
	case *sql.ColumnExpr:
		if x.Table != "" {
			c.ident(x.Table)
			c.b.WriteString(".")
		}
		c.ident(x.Name)
	case *sql.StarExpr:
		if x.Table != "" {
			c.ident(x.Table)
			c.b.WriteString(".")
		}
		c.b.WriteString("*")
	case *sql.ParamExpr:
		c.param(x)
	case *sql.LiteralExpr:
		c.literal(x.Value)
	case *sql.RawExpr:
		c.b.WriteString(x.SQL)
		c.args = append(c.args, x.Args...)
	case *sql.BinaryExpr:
		c.binary(x)
	case *sql.NotExpr:
		c.b.WriteString("NOT (")
		c.expr(x.X)
		c.b.WriteString(")")
	case *sql.FuncExpr:
		c.function(x)
	case *sql.NextValueExpr:
		c.b.WriteString("GEN_ID(")
		c.ident(x.Sequence)
		c.b.WriteString(", 1)")
	case *sql.CastExpr:
		t, err := TypeName(x.Type, c.caps)
		if err != nil && c.err == nil {
			c.err = err
		}
		c.b.WriteString("CAST(")
		c.expr(x.X)
		c.b.WriteString(" AS " + t + ")")
	case *sql.AliasExpr:
		c.expr(x.X)
		c.b.WriteString(" AS ")
		c.ident(x.Name)
	case *sql.InExpr:
		c.in(x)
	case *sql.IsNullExpr:
		c.operand(x.X, 4, false)
		if x.Not {
			c.b.WriteString(" IS NOT NULL")
		} else {
			c.b.WriteString(" IS NULL")
		}
	case *sql.ExistsExpr:
		if x.Not {
			c.b.WriteString("NOT ")
		}
		c.b.WriteString("EXISTS (")
		c.selectStmt(x.Query.Stmt())
		c.b.WriteString(")")
	case *sql.SubqueryExpr:
		c.b.WriteString("(")
		c.selectStmt(x.Query.Stmt())
		c.b.WriteString(")")
	case nil:
		c.fail("expression", "nil expression")
	default:
		c.fail("expression", "unexpected expression %T", x)
	}
}

func (c *compiler) in(x *sql.InExpr) {
	if x.Query == nil && len(x.Values) == 0 {
		// An empty list matches nothing, and its negation everything.
		if x.Not {
			c.b.WriteString("1 = 1")
		} else {
			c.b.WriteString("1 = 0")
		}
		return
	}
	c.operand(x.X, 4, false)
	if x.Not {
		c.b.WriteString(" NOT")
	}
	c.b.WriteString(" IN (")
	if x.Query != nil {
		c.selectStmt(x.Query.Stmt())
	} else {
		c.exprList(x.Values)
	}
	c.b.WriteString(")")
}

func (c *compiler) param(p *sql.ParamExpr) {
	c.args = append(c.args, p.Value)
	if p.Type == nil || !c.caps.BindCasts {
		c.b.WriteString("?")
		return
	}
	t, err := TypeName(*p.Type, c.caps)
	if err != nil {
		if c.err == nil {
			c.err = err
		}
		return
	}
	c.b.WriteString("CAST(? AS " + t + ")")
}

func (c *compiler) literal(v any) {
	switch v := v.(type) {
	case nil:
		c.b.WriteString("NULL")
	case bool:
		switch {
		case c.caps.SupportsNativeBoolean && v:
			c.b.WriteString("TRUE")
		case c.caps.SupportsNativeBoolean:
			c.b.WriteString("FALSE")
		case v:
			c.b.WriteString("1")
		default:
			c.b.WriteString("0")
		}
	case string:
		c.b.WriteString(quoteString(v))
	case int:
		c.b.WriteString(strconv.Itoa(v))
	case int64:
		c.b.WriteString(strconv.FormatInt(v, 10))
	case int32:
		c.b.WriteString(strconv.FormatInt(int64(v), 10))
	case float64:
		c.b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	case time.Time:
		c.b.WriteString("TIMESTAMP " + quoteString(v.Format("2006-01-02 15:04:05.0000")))
	default:
		c.b.WriteString(quoteString(fmt.Sprint(v)))
	}
}

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
