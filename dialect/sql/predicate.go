package sql

// EQ returns a "column = value" predicate. Values that are not an Expr are
// bound as parameters.
func EQ(col string, value any) Expr { return Binary(OpEQ, C(col), toExpr(value)) }

// NEQ returns a "column <> value" predicate.
func NEQ(col string, value any) Expr { return Binary(OpNEQ, C(col), toExpr(value)) }

// LT returns a "column < value" predicate.
func LT(col string, value any) Expr { return Binary(OpLT, C(col), toExpr(value)) }

// LTE returns a "column <= value" predicate.
func LTE(col string, value any) Expr { return Binary(OpLTE, C(col), toExpr(value)) }

// GT returns a "column > value" predicate.
func GT(col string, value any) Expr { return Binary(OpGT, C(col), toExpr(value)) }

// GTE returns a "column >= value" predicate.
func GTE(col string, value any) Expr { return Binary(OpGTE, C(col), toExpr(value)) }

// ColumnsEQ returns a "col1 = col2" predicate.
func ColumnsEQ(col1, col2 string) Expr { return Binary(OpEQ, C(col1), C(col2)) }

// In returns a "column IN (values)" predicate. An empty list never matches.
func In(col string, values ...any) Expr {
	return &InExpr{X: C(col), Values: exprs(values)}
}

// NotIn returns a "column NOT IN (values)" predicate. An empty list always matches.
func NotIn(col string, values ...any) Expr {
	return &InExpr{X: C(col), Values: exprs(values), Not: true}
}

// InQuery returns a "column IN (subquery)" predicate.
func InQuery(col string, query *Selector) Expr {
	return &InExpr{X: C(col), Query: query}
}

// Exists returns an "EXISTS (subquery)" predicate.
func Exists(query *Selector) Expr { return &ExistsExpr{Query: query} }

// NotExists returns a "NOT EXISTS (subquery)" predicate.
func NotExists(query *Selector) Expr { return &ExistsExpr{Query: query, Not: true} }

// IsNull returns a "column IS NULL" predicate.
func IsNull(col string) Expr { return &IsNullExpr{X: C(col)} }

// NotNull returns a "column IS NOT NULL" predicate.
func NotNull(col string) Expr { return &IsNullExpr{X: C(col), Not: true} }

// Like returns a "column LIKE pattern" predicate.
func Like(col, pattern string) Expr { return Binary(OpLike, C(col), P(pattern)) }

// Contains returns a predicate matching columns that contain sub. The
// substring is matched literally, without wildcards.
func Contains(col, sub string) Expr {
	return Binary(OpGT, Func(FuncPosition, P(sub), C(col)), Lit(0))
}

// ContainsFold returns a predicate matching columns that contain sub,
// ignoring case.
func ContainsFold(col, sub string) Expr { return Binary(OpContaining, C(col), P(sub)) }

// HasPrefix returns a predicate matching columns that start with prefix.
func HasPrefix(col, prefix string) Expr { return Binary(OpStartingWith, C(col), P(prefix)) }

// HasSuffix returns a predicate matching columns that end with suffix.
func HasSuffix(col, suffix string) Expr {
	return Binary(OpStartingWith, Func(FuncReverse, C(col)), Func(FuncReverse, P(suffix)))
}

// EqualFold returns a predicate matching columns equal to v, ignoring case.
func EqualFold(col, v string) Expr { return Binary(OpEQ, Upper(C(col)), Upper(P(v))) }

// And combines predicates with AND. Nil predicates are skipped.
func And(preds ...Expr) Expr { return fold(OpAnd, preds) }

// Or combines predicates with OR. Nil predicates are skipped.
func Or(preds ...Expr) Expr { return fold(OpOr, preds) }

// Not negates a predicate.
func Not(pred Expr) Expr { return &NotExpr{X: pred} }

func fold(op Op, preds []Expr) Expr {
	var x Expr
	for _, p := range preds {
		switch {
		case p == nil:
		case x == nil:
			x = p
		default:
			x = Binary(op, x, p)
		}
	}
	return x
}

// FieldEQ returns a selector predicate on a column of the selector's table.
func FieldEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(EQ(s.C(name), v)) }
}

// FieldNEQ is the selector form of NEQ.
func FieldNEQ(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(NEQ(s.C(name), v)) }
}

// FieldLT is the selector form of LT.
func FieldLT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LT(s.C(name), v)) }
}

// FieldLTE is the selector form of LTE.
func FieldLTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(LTE(s.C(name), v)) }
}

// FieldGT is the selector form of GT.
func FieldGT(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GT(s.C(name), v)) }
}

// FieldGTE is the selector form of GTE.
func FieldGTE(name string, v any) func(*Selector) {
	return func(s *Selector) { s.Where(GTE(s.C(name), v)) }
}

// FieldIsNull is the selector form of IsNull.
func FieldIsNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(IsNull(s.C(name))) }
}

// FieldNotNull is the selector form of NotNull.
func FieldNotNull(name string) func(*Selector) {
	return func(s *Selector) { s.Where(NotNull(s.C(name))) }
}

// FieldContains is the selector form of Contains.
func FieldContains(name, sub string) func(*Selector) {
	return func(s *Selector) { s.Where(Contains(s.C(name), sub)) }
}

// FieldContainsFold is the selector form of ContainsFold.
func FieldContainsFold(name, sub string) func(*Selector) {
	return func(s *Selector) { s.Where(ContainsFold(s.C(name), sub)) }
}

// FieldHasPrefix is the selector form of HasPrefix.
func FieldHasPrefix(name, prefix string) func(*Selector) {
	return func(s *Selector) { s.Where(HasPrefix(s.C(name), prefix)) }
}

// FieldHasSuffix is the selector form of HasSuffix.
func FieldHasSuffix(name, suffix string) func(*Selector) {
	return func(s *Selector) { s.Where(HasSuffix(s.C(name), suffix)) }
}

// FieldEqualFold is the selector form of EqualFold.
func FieldEqualFold(name, v string) func(*Selector) {
	return func(s *Selector) { s.Where(EqualFold(s.C(name), v)) }
}

// FieldIn is the selector form of In.
func FieldIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(In(s.C(name), anys(vs)...)) }
}

// FieldNotIn is the selector form of NotIn.
func FieldNotIn[T any](name string, vs ...T) func(*Selector) {
	return func(s *Selector) { s.Where(NotIn(s.C(name), anys(vs)...)) }
}

func anys[T any](vs []T) []any {
	v := make([]any, len(vs))
	for i := range vs {
		v[i] = vs[i]
	}
	return v
}

// PredicateFunc is a constraint type for predicate functions.
// It allows generic field types to work with any predicate type that is
// based on func(*Selector).
type PredicateFunc interface {
	~func(*Selector)
}

// StringField is a generic string field that provides type-safe predicate methods.
//
// Usage:
//
//	var Email = sql.StringField[predicate.User]("email")
//	sel := sql.Select().From(sql.Table("users"))
//	user.Email.HasSuffix("@example.com")(sel)
type StringField[P PredicateFunc] string

// Name returns the field name.
func (f StringField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f StringField[P]) EQ(v string) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f StringField[P]) NEQ(v string) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f StringField[P]) In(vs ...string) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f StringField[P]) NotIn(vs ...string) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f StringField[P]) GT(v string) P { return P(FieldGT(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f StringField[P]) LT(v string) P { return P(FieldLT(string(f), v)) }

// Contains returns a predicate that checks if the field contains the given substring.
func (f StringField[P]) Contains(v string) P { return P(FieldContains(string(f), v)) }

// ContainsFold returns a predicate that checks if the field contains the given substring (case-insensitive).
func (f StringField[P]) ContainsFold(v string) P { return P(FieldContainsFold(string(f), v)) }

// HasPrefix returns a predicate that checks if the field has the given prefix.
func (f StringField[P]) HasPrefix(v string) P { return P(FieldHasPrefix(string(f), v)) }

// HasSuffix returns a predicate that checks if the field has the given suffix.
func (f StringField[P]) HasSuffix(v string) P { return P(FieldHasSuffix(string(f), v)) }

// EqualFold returns a predicate that checks if the field equals the given value (case-insensitive).
func (f StringField[P]) EqualFold(v string) P { return P(FieldEqualFold(string(f), v)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f StringField[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f StringField[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// Number is the set of numeric Go types a NumberField accepts.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~float32 | ~float64
}

// NumberField is a generic numeric field that provides type-safe predicate methods.
type NumberField[P PredicateFunc, T Number] string

// Name returns the field name.
func (f NumberField[P, T]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f NumberField[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f NumberField[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f NumberField[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// NotIn returns a predicate that checks if the field value is not in the given list.
func (f NumberField[P, T]) NotIn(vs ...T) P { return P(FieldNotIn(string(f), vs...)) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f NumberField[P, T]) GT(v T) P { return P(FieldGT(string(f), v)) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f NumberField[P, T]) GTE(v T) P { return P(FieldGTE(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f NumberField[P, T]) LT(v T) P { return P(FieldLT(string(f), v)) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f NumberField[P, T]) LTE(v T) P { return P(FieldLTE(string(f), v)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f NumberField[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f NumberField[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }

// BoolField is a generic boolean field that provides type-safe predicate methods.
type BoolField[P PredicateFunc] string

// Name returns the field name.
func (f BoolField[P]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f BoolField[P]) EQ(v bool) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f BoolField[P]) NEQ(v bool) P { return P(FieldNEQ(string(f), v)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f BoolField[P]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f BoolField[P]) NotNull() P { return P(FieldNotNull(string(f))) }

// TimeField is a generic time field that provides type-safe predicate methods.
// T is the actual time type (e.g., time.Time).
type TimeField[P PredicateFunc, T any] string

// Name returns the field name.
func (f TimeField[P, T]) Name() string { return string(f) }

// EQ returns a predicate that checks if the field equals the given value.
func (f TimeField[P, T]) EQ(v T) P { return P(FieldEQ(string(f), v)) }

// NEQ returns a predicate that checks if the field does not equal the given value.
func (f TimeField[P, T]) NEQ(v T) P { return P(FieldNEQ(string(f), v)) }

// In returns a predicate that checks if the field value is in the given list.
func (f TimeField[P, T]) In(vs ...T) P { return P(FieldIn(string(f), vs...)) }

// GT returns a predicate that checks if the field is greater than the given value.
func (f TimeField[P, T]) GT(v T) P { return P(FieldGT(string(f), v)) }

// GTE returns a predicate that checks if the field is greater than or equal to the given value.
func (f TimeField[P, T]) GTE(v T) P { return P(FieldGTE(string(f), v)) }

// LT returns a predicate that checks if the field is less than the given value.
func (f TimeField[P, T]) LT(v T) P { return P(FieldLT(string(f), v)) }

// LTE returns a predicate that checks if the field is less than or equal to the given value.
func (f TimeField[P, T]) LTE(v T) P { return P(FieldLTE(string(f), v)) }

// IsNull returns a predicate that checks if the field is NULL.
func (f TimeField[P, T]) IsNull() P { return P(FieldIsNull(string(f))) }

// NotNull returns a predicate that checks if the field is not NULL.
func (f TimeField[P, T]) NotNull() P { return P(FieldNotNull(string(f))) }
