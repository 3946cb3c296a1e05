package sql

import (
	"strings"

	"github.com/syssam/ibx/dialect/sql/schema"
)

// Expr is a node of a query expression tree. Rendering is left to the
// dialect compiler, so the same tree can target different engine versions.
type Expr interface {
	expr()
}

// Op is a binary operator.
type Op uint8

// Binary operators.
const (
	OpEQ Op = iota
	OpNEQ
	OpLT
	OpLTE
	OpGT
	OpGTE
	OpAnd
	OpOr
	OpAdd
	OpSub
	OpMul
	// OpDiv is true division. Integer operands are promoted.
	OpDiv
	OpMod
	OpBitXor
	OpConcat
	OpLike
	OpNotLike
	// OpContaining is the case-insensitive substring match.
	OpContaining
	// OpStartingWith is the case-sensitive prefix match.
	OpStartingWith
)

// Function names understood by the dialect compiler. Other names are
// rendered upper-cased with their arguments as given.
const (
	FuncSubstring  = "substring"
	FuncLength     = "length"
	FuncCharLength = "char_length"
	FuncNow        = "now"
	FuncUpper      = "upper"
	FuncLower      = "lower"
	FuncCoalesce   = "coalesce"
	FuncCount      = "count"
	FuncMax        = "max"
	FuncMin        = "min"
	FuncSum        = "sum"
	FuncReverse    = "reverse"
	// FuncPosition takes (needle, haystack) and renders as POSITION(a IN b).
	FuncPosition = "position"
)

type (
	// ColumnExpr references a column, optionally qualified by a table or alias.
	ColumnExpr struct {
		Table string
		Name  string
	}

	// ParamExpr is a bound parameter. A typed parameter may be rendered with
	// an explicit cast when the dialect requires it.
	ParamExpr struct {
		Value any
		Type  *schema.ColumnType
	}

	// LiteralExpr is a value rendered inline.
	LiteralExpr struct {
		Value any
	}

	// RawExpr is SQL text passed through unchanged. Each "?" in SQL consumes
	// one of Args.
	RawExpr struct {
		SQL  string
		Args []any
	}

	// BinaryExpr applies Op to two operands.
	BinaryExpr struct {
		Op   Op
		L, R Expr
	}

	// NotExpr negates a predicate.
	NotExpr struct {
		X Expr
	}

	// FuncExpr is a function call. A nil Args renders without parentheses
	// for niladic functions such as now.
	FuncExpr struct {
		Name     string
		Args     []Expr
		Distinct bool
	}

	// NextValueExpr fetches the next value of a sequence.
	NextValueExpr struct {
		Sequence string
	}

	// CastExpr converts X to Type.
	CastExpr struct {
		X    Expr
		Type schema.ColumnType
	}

	// StarExpr selects all columns, optionally of one table.
	StarExpr struct {
		Table string
	}

	// AliasExpr names a selected expression.
	AliasExpr struct {
		X    Expr
		Name string
	}

	// InExpr tests membership in a value list or a subquery.
	InExpr struct {
		X      Expr
		Values []Expr
		Query  *Selector
		Not    bool
	}

	// IsNullExpr tests X for NULL.
	IsNullExpr struct {
		X   Expr
		Not bool
	}

	// ExistsExpr tests whether a subquery returns rows.
	ExistsExpr struct {
		Query *Selector
		Not   bool
	}

	// SubqueryExpr is a scalar subquery.
	SubqueryExpr struct {
		Query *Selector
	}
)

func (*ColumnExpr) expr()    {}
func (*ParamExpr) expr()     {}
func (*LiteralExpr) expr()   {}
func (*RawExpr) expr()       {}
func (*BinaryExpr) expr()    {}
func (*NotExpr) expr()       {}
func (*FuncExpr) expr()      {}
func (*NextValueExpr) expr() {}
func (*CastExpr) expr()      {}
func (*StarExpr) expr()      {}
func (*AliasExpr) expr()     {}
func (*InExpr) expr()        {}
func (*IsNullExpr) expr()    {}
func (*ExistsExpr) expr()    {}
func (*SubqueryExpr) expr()  {}

// C returns a column reference. A "t.c" name is split into table and column
// and "*" selects all columns.
func C(name string) Expr {
	if name == "*" {
		return &StarExpr{}
	}
	if t, c, ok := strings.Cut(name, "."); ok {
		if c == "*" {
			return &StarExpr{Table: t}
		}
		return &ColumnExpr{Table: t, Name: c}
	}
	return &ColumnExpr{Name: name}
}

// P returns an untyped bound parameter.
func P(v any) *ParamExpr { return &ParamExpr{Value: v} }

// TypedP returns a bound parameter carrying its column type.
func TypedP(v any, t schema.ColumnType) *ParamExpr { return &ParamExpr{Value: v, Type: &t} }

// Lit returns a value rendered inline.
func Lit(v any) *LiteralExpr { return &LiteralExpr{Value: v} }

// Raw returns SQL text passed through unchanged.
func Raw(sql string, args ...any) *RawExpr { return &RawExpr{SQL: sql, Args: args} }

// Star selects all columns.
func Star() *StarExpr { return &StarExpr{} }

// As names an expression in a select list.
func As(x Expr, name string) *AliasExpr { return &AliasExpr{X: x, Name: name} }

// Cast converts x to typ.
func Cast(x Expr, typ schema.ColumnType) *CastExpr { return &CastExpr{X: x, Type: typ} }

// NextValue returns the next value of the named sequence.
func NextValue(sequence string) *NextValueExpr { return &NextValueExpr{Sequence: sequence} }

// Func returns a call of the named function.
func Func(name string, args ...Expr) *FuncExpr {
	if args == nil {
		args = []Expr{}
	}
	return &FuncExpr{Name: name, Args: args}
}

// Now returns the current timestamp.
func Now() *FuncExpr { return &FuncExpr{Name: FuncNow} }

// Substring returns the substring of s starting at 1-based start, with an
// optional length.
func Substring(s, start Expr, length ...Expr) *FuncExpr {
	return Func(FuncSubstring, append([]Expr{s, start}, length...)...)
}

// Length returns the length of x in characters.
func Length(x Expr) *FuncExpr { return Func(FuncLength, x) }

// CharLength returns the length of x in characters.
func CharLength(x Expr) *FuncExpr { return Func(FuncCharLength, x) }

// Upper upper-cases x.
func Upper(x Expr) *FuncExpr { return Func(FuncUpper, x) }

// Lower lower-cases x.
func Lower(x Expr) *FuncExpr { return Func(FuncLower, x) }

// Count counts rows, or non-null values of x.
func Count(x ...Expr) *FuncExpr {
	if len(x) == 0 {
		return Func(FuncCount, Star())
	}
	return Func(FuncCount, x...)
}

// Binary returns l op r.
func Binary(op Op, l, r Expr) *BinaryExpr { return &BinaryExpr{Op: op, L: l, R: r} }

// Add returns l + r.
func Add(l, r Expr) *BinaryExpr { return Binary(OpAdd, l, r) }

// Sub returns l - r.
func Sub(l, r Expr) *BinaryExpr { return Binary(OpSub, l, r) }

// Mul returns l * r.
func Mul(l, r Expr) *BinaryExpr { return Binary(OpMul, l, r) }

// Div returns l / r as true division.
func Div(l, r Expr) *BinaryExpr { return Binary(OpDiv, l, r) }

// Mod returns the remainder of l / r.
func Mod(l, r Expr) *BinaryExpr { return Binary(OpMod, l, r) }

// BitXor returns the bitwise exclusive or of l and r.
func BitXor(l, r Expr) *BinaryExpr { return Binary(OpBitXor, l, r) }

// Concat concatenates its operands.
func Concat(x Expr, rest ...Expr) Expr {
	for _, r := range rest {
		x = Binary(OpConcat, x, r)
	}
	return x
}

// Source is a FROM item: a table or an aliased subquery.
type Source interface {
	source()
}

// TableRef references a table by name.
type TableRef struct {
	Name  string
	Alias string
}

func (*TableRef) source() {}

// Table returns a reference to the named table.
func Table(name string) *TableRef { return &TableRef{Name: name} }

// As sets the table alias.
func (t *TableRef) As(alias string) *TableRef {
	t.Alias = alias
	return t
}

// C returns a column of the table, qualified by its alias or name.
func (t *TableRef) C(column string) Expr {
	q := t.Alias
	if q == "" {
		q = t.Name
	}
	return &ColumnExpr{Table: q, Name: column}
}

// JoinKind is the kind of a join.
type JoinKind uint8

// Join kinds.
const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

// String returns the SQL keyword of the join.
func (k JoinKind) String() string {
	switch k {
	case LeftJoin:
		return "LEFT JOIN"
	case RightJoin:
		return "RIGHT JOIN"
	case FullJoin:
		return "FULL JOIN"
	default:
		return "JOIN"
	}
}

// Join is a join of the selected source.
type Join struct {
	Kind   JoinKind
	Source Source
	On     Expr
}

// OrderExpr is an ORDER BY term.
type OrderExpr struct {
	X    Expr
	Desc bool
	// Nulls is "FIRST", "LAST" or empty.
	Nulls string
}

// Asc orders by column ascending.
func Asc(column string) OrderExpr { return OrderExpr{X: C(column)} }

// Desc orders by column descending.
func Desc(column string) OrderExpr { return OrderExpr{X: C(column), Desc: true} }

// Lock is a row lock request.
type Lock struct {
	// Nowait fails instead of waiting for locked rows.
	Nowait bool
	// SkipLocked skips rows locked by other transactions.
	SkipLocked bool
}

// LockOption configures a row lock.
type LockOption func(*Lock)

// WithLockNowait fails instead of waiting when rows are locked.
func WithLockNowait() LockOption {
	return func(l *Lock) { l.Nowait = true }
}

// WithLockSkipLocked skips locked rows.
func WithLockSkipLocked() LockOption {
	return func(l *Lock) { l.SkipLocked = true }
}

// Statement is a query accepted by the dialect compiler: a *Selector,
// *InsertBuilder, *UpdateBuilder or *DeleteBuilder.
type Statement interface {
	statement()
}

// SelectStmt is the tree of a SELECT statement.
type SelectStmt struct {
	Distinct bool
	Columns  []Expr
	// From is nil for a select without a source.
	From    Source
	Joins   []Join
	Where   Expr
	GroupBy []Expr
	Having  Expr
	OrderBy []OrderExpr
	Limit   *int64
	Offset  *int64
	Fetch   *int64
	Lock    *Lock
}

// Selector is a builder for SELECT statements.
type Selector struct {
	stmt  SelectStmt
	alias string
}

func (*Selector) statement() {}
func (*Selector) source()    {}

// Select returns a selector for the given columns. With no columns the
// selector selects *.
func Select(columns ...string) *Selector {
	s := &Selector{}
	for _, c := range columns {
		s.stmt.Columns = append(s.stmt.Columns, C(c))
	}
	return s
}

// SelectExpr returns a selector for the given expressions.
func SelectExpr(exprs ...Expr) *Selector {
	return &Selector{stmt: SelectStmt{Columns: exprs}}
}

// Stmt returns the statement tree. The tree is owned by the selector.
func (s *Selector) Stmt() *SelectStmt { return &s.stmt }

// Alias returns the alias set with As.
func (s *Selector) Alias() string { return s.alias }

// As sets the alias used when the selector is a FROM source.
func (s *Selector) As(alias string) *Selector {
	s.alias = alias
	return s
}

// AppendSelect adds columns to the select list.
func (s *Selector) AppendSelect(columns ...string) *Selector {
	for _, c := range columns {
		s.stmt.Columns = append(s.stmt.Columns, C(c))
	}
	return s
}

// AppendSelectExpr adds expressions to the select list.
func (s *Selector) AppendSelectExpr(exprs ...Expr) *Selector {
	s.stmt.Columns = append(s.stmt.Columns, exprs...)
	return s
}

// Distinct selects distinct rows.
func (s *Selector) Distinct() *Selector {
	s.stmt.Distinct = true
	return s
}

// From sets the source of the selector.
func (s *Selector) From(src Source) *Selector {
	s.stmt.From = src
	return s
}

// Table returns the FROM table, or nil when the source is not a table.
func (s *Selector) Table() *TableRef {
	t, _ := s.stmt.From.(*TableRef)
	return t
}

// C returns a column qualified by the FROM table alias or name. Names that
// are already qualified are returned unchanged.
func (s *Selector) C(column string) string {
	if strings.Contains(column, ".") {
		return column
	}
	switch src := s.stmt.From.(type) {
	case *TableRef:
		if src.Alias != "" {
			return src.Alias + "." + column
		}
		return src.Name + "." + column
	case *Selector:
		if src.alias != "" {
			return src.alias + "." + column
		}
	}
	return column
}

// Join adds an inner join. The condition is set with On or OnP.
func (s *Selector) Join(src Source) *Selector { return s.join(InnerJoin, src) }

// LeftJoin adds a left outer join.
func (s *Selector) LeftJoin(src Source) *Selector { return s.join(LeftJoin, src) }

// RightJoin adds a right outer join.
func (s *Selector) RightJoin(src Source) *Selector { return s.join(RightJoin, src) }

// FullJoin adds a full outer join.
func (s *Selector) FullJoin(src Source) *Selector { return s.join(FullJoin, src) }

func (s *Selector) join(kind JoinKind, src Source) *Selector {
	s.stmt.Joins = append(s.stmt.Joins, Join{Kind: kind, Source: src})
	return s
}

// On sets the condition of the last join to l = r.
func (s *Selector) On(l, r Expr) *Selector {
	return s.OnP(Binary(OpEQ, l, r))
}

// OnP sets the condition of the last join.
func (s *Selector) OnP(p Expr) *Selector {
	if n := len(s.stmt.Joins); n > 0 {
		s.stmt.Joins[n-1].On = p
	}
	return s
}

// Where adds a predicate. Multiple calls are combined with AND.
func (s *Selector) Where(p Expr) *Selector {
	s.stmt.Where = and(s.stmt.Where, p)
	return s
}

// GroupBy sets the grouping columns.
func (s *Selector) GroupBy(columns ...string) *Selector {
	for _, c := range columns {
		s.stmt.GroupBy = append(s.stmt.GroupBy, C(c))
	}
	return s
}

// Having adds a group predicate. Multiple calls are combined with AND.
func (s *Selector) Having(p Expr) *Selector {
	s.stmt.Having = and(s.stmt.Having, p)
	return s
}

// OrderBy orders ascending by the given columns.
func (s *Selector) OrderBy(columns ...string) *Selector {
	for _, c := range columns {
		s.stmt.OrderBy = append(s.stmt.OrderBy, Asc(c))
	}
	return s
}

// OrderExpr appends ordering terms.
func (s *Selector) OrderExpr(terms ...OrderExpr) *Selector {
	s.stmt.OrderBy = append(s.stmt.OrderBy, terms...)
	return s
}

// Limit caps the number of rows returned.
func (s *Selector) Limit(n int64) *Selector {
	s.stmt.Limit = &n
	return s
}

// Offset skips the first n rows.
func (s *Selector) Offset(n int64) *Selector {
	s.stmt.Offset = &n
	return s
}

// Fetch caps the number of rows returned, as FETCH FIRST n ROWS. It wins
// over Limit when both are set.
func (s *Selector) Fetch(n int64) *Selector {
	s.stmt.Fetch = &n
	return s
}

// ForUpdate locks the selected rows.
func (s *Selector) ForUpdate(opts ...LockOption) *Selector {
	l := &Lock{}
	for _, opt := range opts {
		opt(l)
	}
	s.stmt.Lock = l
	return s
}

// Clone returns a copy of the selector. Expression nodes are shared.
func (s *Selector) Clone() *Selector {
	c := *s
	c.stmt.Columns = append([]Expr(nil), s.stmt.Columns...)
	c.stmt.Joins = append([]Join(nil), s.stmt.Joins...)
	c.stmt.GroupBy = append([]Expr(nil), s.stmt.GroupBy...)
	c.stmt.OrderBy = append([]OrderExpr(nil), s.stmt.OrderBy...)
	return &c
}

func and(l, r Expr) Expr {
	switch {
	case l == nil:
		return r
	case r == nil:
		return l
	}
	return Binary(OpAnd, l, r)
}

// InsertStmt is the tree of an INSERT statement.
type InsertStmt struct {
	Table   string
	Columns []string
	Values  [][]Expr
	// Default inserts a single row of column defaults.
	Default   bool
	Returning []string
}

// InsertBuilder is a builder for INSERT statements.
type InsertBuilder struct {
	stmt InsertStmt
}

func (*InsertBuilder) statement() {}

// Insert returns a builder for inserting into table.
func Insert(table string) *InsertBuilder {
	return &InsertBuilder{stmt: InsertStmt{Table: table}}
}

// Stmt returns the statement tree.
func (i *InsertBuilder) Stmt() *InsertStmt { return &i.stmt }

// Columns sets the inserted columns.
func (i *InsertBuilder) Columns(columns ...string) *InsertBuilder {
	i.stmt.Columns = append(i.stmt.Columns, columns...)
	return i
}

// Values appends a row. Values that are not an Expr become parameters.
func (i *InsertBuilder) Values(values ...any) *InsertBuilder {
	i.stmt.Values = append(i.stmt.Values, exprs(values))
	return i
}

// Default inserts a row of default values.
func (i *InsertBuilder) Default() *InsertBuilder {
	i.stmt.Default = true
	return i
}

// Returning sets the columns returned by the statement.
func (i *InsertBuilder) Returning(columns ...string) *InsertBuilder {
	i.stmt.Returning = columns
	return i
}

// Assignment is one SET term of an UPDATE.
type Assignment struct {
	Column string
	Value  Expr
}

// UpdateStmt is the tree of an UPDATE statement.
type UpdateStmt struct {
	Table     string
	Set       []Assignment
	Where     Expr
	Returning []string
}

// UpdateBuilder is a builder for UPDATE statements.
type UpdateBuilder struct {
	stmt UpdateStmt
}

func (*UpdateBuilder) statement() {}

// Update returns a builder for updating table.
func Update(table string) *UpdateBuilder {
	return &UpdateBuilder{stmt: UpdateStmt{Table: table}}
}

// Stmt returns the statement tree.
func (u *UpdateBuilder) Stmt() *UpdateStmt { return &u.stmt }

// Set assigns v to column. A value that is not an Expr becomes a parameter.
func (u *UpdateBuilder) Set(column string, v any) *UpdateBuilder {
	u.stmt.Set = append(u.stmt.Set, Assignment{Column: column, Value: toExpr(v)})
	return u
}

// SetNull assigns NULL to column.
func (u *UpdateBuilder) SetNull(column string) *UpdateBuilder {
	u.stmt.Set = append(u.stmt.Set, Assignment{Column: column, Value: Lit(nil)})
	return u
}

// AddValue increments column by v.
func (u *UpdateBuilder) AddValue(column string, v any) *UpdateBuilder {
	u.stmt.Set = append(u.stmt.Set, Assignment{Column: column, Value: Add(C(column), toExpr(v))})
	return u
}

// Where adds a predicate. Multiple calls are combined with AND.
func (u *UpdateBuilder) Where(p Expr) *UpdateBuilder {
	u.stmt.Where = and(u.stmt.Where, p)
	return u
}

// Returning sets the columns returned by the statement.
func (u *UpdateBuilder) Returning(columns ...string) *UpdateBuilder {
	u.stmt.Returning = columns
	return u
}

// DeleteStmt is the tree of a DELETE statement.
type DeleteStmt struct {
	Table     string
	Where     Expr
	Returning []string
}

// DeleteBuilder is a builder for DELETE statements.
type DeleteBuilder struct {
	stmt DeleteStmt
}

func (*DeleteBuilder) statement() {}

// Delete returns a builder for deleting from table.
func Delete(table string) *DeleteBuilder {
	return &DeleteBuilder{stmt: DeleteStmt{Table: table}}
}

// Stmt returns the statement tree.
func (d *DeleteBuilder) Stmt() *DeleteStmt { return &d.stmt }

// Where adds a predicate. Multiple calls are combined with AND.
func (d *DeleteBuilder) Where(p Expr) *DeleteBuilder {
	d.stmt.Where = and(d.stmt.Where, p)
	return d
}

// Returning sets the columns returned by the statement.
func (d *DeleteBuilder) Returning(columns ...string) *DeleteBuilder {
	d.stmt.Returning = columns
	return d
}

func toExpr(v any) Expr {
	if x, ok := v.(Expr); ok {
		return x
	}
	return P(v)
}

func exprs(vs []any) []Expr {
	xs := make([]Expr, len(vs))
	for i, v := range vs {
		xs[i] = toExpr(v)
	}
	return xs
}
