package interbase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql"
	"github.com/syssam/ibx/dialect/sql/schema"
	"github.com/syssam/ibx/dialect/sqlschema"
)

// Reflector reads table, view, sequence and domain metadata from the
// rdb$ system tables.
//
// Names passed in and returned are logical names (see Preparer). Results
// are cached per operation and name; see Invalidate.
type Reflector struct {
	ex        dialect.ExecQuerier
	caps      *Capabilities
	prep      *Preparer
	logger    *slog.Logger
	warn      func(context.Context, *ibx.UnknownTypeWarning)
	mu        sync.RWMutex // guards cache
	cache     ibx.Cache
	ttl       time.Duration
	namespace string
	group     singleflight.Group

	// Queries chosen once from the capabilities.
	columnsQuery  string
	indexesQuery  string
	tablesQuery   string
	viewsQuery    string
	viewDefQuery  string
	hasTempTables bool
}

// ReflectOption configures a Reflector.
type ReflectOption func(*Reflector)

// WithLogger sets the logger for cache activity and type warnings.
func WithLogger(l *slog.Logger) ReflectOption {
	return func(r *Reflector) {
		r.logger = l
	}
}

// WithWarningHook sets the function receiving unknown catalog types. The
// default logs them at warn level.
func WithWarningHook(fn func(context.Context, *ibx.UnknownTypeWarning)) ReflectOption {
	return func(r *Reflector) {
		r.warn = fn
	}
}

// WithCache sets the cache backend. A nil cache disables caching.
func WithCache(c ibx.Cache) ReflectOption {
	return func(r *Reflector) {
		r.cache = c
	}
}

// WithCacheTTL sets how long cached results live. Zero keeps them until
// invalidated.
func WithCacheTTL(d time.Duration) ReflectOption {
	return func(r *Reflector) {
		r.ttl = d
	}
}

// WithCacheNamespace separates the entries of reflectors sharing a cache,
// typically by database.
func WithCacheNamespace(ns string) ReflectOption {
	return func(r *Reflector) {
		r.namespace = ns
	}
}

// NewReflector returns a reflector reading through ex. By default results
// are cached in an ibx.MemoryCache.
func NewReflector(ex dialect.ExecQuerier, caps *Capabilities, opts ...ReflectOption) *Reflector {
	r := &Reflector{
		ex:           ex,
		caps:         caps,
		prep:         NewPreparer(caps),
		logger:       slog.Default(),
		cache:        ibx.NewMemoryCache(0),
		columnsQuery: columnsQuery,
		indexesQuery: indexesQuery,
		tablesQuery:  tableNamesQuery,
		viewsQuery:   viewNamesQuery,
		viewDefQuery: viewDefinitionQuery,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.warn == nil {
		r.warn = func(ctx context.Context, w *ibx.UnknownTypeWarning) {
			r.logger.WarnContext(ctx, "unknown column type", "table", w.Table, "column", w.Column, "type", w.Type)
		}
	}
	if caps.SupportsIdentity {
		r.columnsQuery = columnsIdentityQuery
	}
	if caps.SupportsPartialIndex {
		r.indexesQuery = indexesPartialQuery
	}
	if caps.Variant == InterBase {
		r.tablesQuery = tableNamesLegacyQuery
		r.viewsQuery = viewNamesLegacyQuery
		r.viewDefQuery = viewDefinitionLegacyQuery
	} else {
		r.hasTempTables = true
	}
	return r
}

// query runs a catalog query and calls scan for every row.
func (r *Reflector) query(ctx context.Context, query string, args []any, scan func(*sql.Rows) error) error {
	rows := &sql.Rows{}
	if err := r.ex.Query(ctx, query, args, rows); err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

// names runs a query returning one name per row.
func (r *Reflector) names(ctx context.Context, op, query string, args ...any) ([]string, error) {
	names := []string{}
	err := r.query(ctx, query, args, func(rows *sql.Rows) error {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return err
		}
		names = append(names, r.prep.Normalize(s.String))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("interbase: %s: %w", op, err)
	}
	return names, nil
}

// exists runs a query returning a row when the object exists.
func (r *Reflector) exists(ctx context.Context, op, query, name string) (bool, error) {
	var found bool
	err := r.query(ctx, query, []any{r.prep.Denormalize(name)}, func(*sql.Rows) error {
		found = true
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("interbase: %s: %w", op, err)
	}
	return found, nil
}

// emptyOrMissing resolves an empty member query: the table exists and has
// no such members, or the table is absent.
func (r *Reflector) emptyOrMissing(ctx context.Context, table string) error {
	ok, err := r.HasTable(ctx, table)
	if err != nil {
		return err
	}
	if !ok {
		return ibx.NoSuchTable(table)
	}
	return nil
}

// TableNames returns the user tables.
func (r *Reflector) TableNames(ctx context.Context) ([]string, error) {
	return cached(ctx, r, "table_names", "", func(ctx context.Context) ([]string, error) {
		return r.names(ctx, "table names", r.tablesQuery)
	})
}

// TempTableNames returns the global temporary tables. InterBase has none.
func (r *Reflector) TempTableNames(ctx context.Context) ([]string, error) {
	if !r.hasTempTables {
		return []string{}, nil
	}
	return cached(ctx, r, "temp_table_names", "", func(ctx context.Context) ([]string, error) {
		return r.names(ctx, "temp table names", tempTableNamesQuery)
	})
}

// ViewNames returns the user views.
func (r *Reflector) ViewNames(ctx context.Context) ([]string, error) {
	return cached(ctx, r, "view_names", "", func(ctx context.Context) ([]string, error) {
		return r.names(ctx, "view names", r.viewsQuery)
	})
}

// SequenceNames returns the user generators.
func (r *Reflector) SequenceNames(ctx context.Context) ([]string, error) {
	return cached(ctx, r, "sequence_names", "", func(ctx context.Context) ([]string, error) {
		return r.names(ctx, "sequence names", sequenceNamesQuery)
	})
}

// HasTable reports whether a table or view named name exists.
func (r *Reflector) HasTable(ctx context.Context, name string) (bool, error) {
	return cached(ctx, r, "has_table", name, func(ctx context.Context) (bool, error) {
		return r.exists(ctx, "has table", hasTableQuery, name)
	})
}

// HasSequence reports whether a generator named name exists.
func (r *Reflector) HasSequence(ctx context.Context, name string) (bool, error) {
	return cached(ctx, r, "has_sequence", name, func(ctx context.Context) (bool, error) {
		return r.exists(ctx, "has sequence", hasSequenceQuery, name)
	})
}

// ViewDefinition returns the SELECT text of a view.
func (r *Reflector) ViewDefinition(ctx context.Context, view string) (string, error) {
	return cached(ctx, r, "view_definition", view, func(ctx context.Context) (string, error) {
		var (
			def   string
			found bool
		)
		err := r.query(ctx, r.viewDefQuery, []any{r.prep.Denormalize(view)}, func(rows *sql.Rows) error {
			var s sql.NullString
			if err := rows.Scan(&s); err != nil {
				return err
			}
			def, found = strings.TrimSpace(s.String), true
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("interbase: view definition: %w", err)
		}
		if !found {
			return "", ibx.NewNotFoundError(ibx.KindView, view)
		}
		return def, nil
	})
}

// TableComment returns the description of a table.
func (r *Reflector) TableComment(ctx context.Context, table string) (string, error) {
	return cached(ctx, r, "table_comment", table, func(ctx context.Context) (string, error) {
		var (
			text  string
			found bool
		)
		err := r.query(ctx, tableCommentQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var s sql.NullString
			if err := rows.Scan(&s); err != nil {
				return err
			}
			text, found = strings.TrimSpace(s.String), true
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("interbase: table comment: %w", err)
		}
		if !found {
			return "", ibx.NoSuchTable(table)
		}
		return text, nil
	})
}

// fieldRow is a row of the column and domain queries.
type fieldRow struct {
	name, typeName, charset, collation sql.NullString
	defaultSource, description         sql.NullString
	computedSource, validation         sql.NullString
	nullFlag, length, precision, scale sql.NullInt64
	subtype, segmentLength             sql.NullInt64
	identityType, initial, increment   sql.NullInt64
}

func (f *fieldRow) catalogType() CatalogType {
	return CatalogType{
		Name:          f.typeName.String,
		Length:        int(f.length.Int64),
		Precision:     intPtr(f.precision),
		Scale:         intPtr(f.scale),
		Subtype:       intPtr(f.subtype),
		SegmentLength: int(f.segmentLength.Int64),
		Charset:       f.charset.String,
		Collation:     f.collation.String,
	}
}

func intPtr(n sql.NullInt64) *int {
	if !n.Valid {
		return nil
	}
	v := int(n.Int64)
	return &v
}

func int64Ptr(n sql.NullInt64) *int64 {
	if !n.Valid {
		return nil
	}
	v := n.Int64
	return &v
}

// Columns returns the columns of a table in their defined order.
func (r *Reflector) Columns(ctx context.Context, table string) ([]*schema.Column, error) {
	return cached(ctx, r, "columns", table, func(ctx context.Context) ([]*schema.Column, error) {
		columns := []*schema.Column{}
		err := r.query(ctx, r.columnsQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var f fieldRow
			dest := []any{
				&f.name, &f.nullFlag, &f.typeName, &f.length, &f.precision, &f.scale,
				&f.subtype, &f.segmentLength, &f.charset, &f.collation,
				&f.defaultSource, &f.description, &f.computedSource,
			}
			if r.caps.SupportsIdentity {
				dest = append(dest, &f.identityType, &f.initial, &f.increment)
			}
			if err := rows.Scan(dest...); err != nil {
				return err
			}
			c, err := r.column(ctx, table, &f)
			if err != nil {
				return err
			}
			columns = append(columns, c)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: columns: %w", err)
		}
		if len(columns) == 0 {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
		}
		return columns, nil
	})
}

func (r *Reflector) column(ctx context.Context, table string, f *fieldRow) (*schema.Column, error) {
	orig := strings.TrimSpace(f.name.String)
	typ, w := DecodeType(f.catalogType())
	if w != nil {
		w.Table, w.Column = table, r.prep.Normalize(orig)
		r.warn(ctx, w)
	}
	c := &schema.Column{
		Name:     r.prep.Normalize(orig),
		Type:     typ,
		Nullable: f.nullFlag.Int64 == 0,
		Comment:  strings.TrimSpace(f.description.String),
		Quote:    lower(orig) == orig && upper(orig) != orig,
	}
	if f.defaultSource.Valid {
		def, err := parseDefault(f.defaultSource.String)
		if err != nil {
			return nil, err
		}
		c.Default = def
	}
	if f.computedSource.Valid {
		c.Computed = &schema.Computed{Expr: stripParens(strings.TrimSpace(f.computedSource.String))}
	}
	if r.caps.SupportsIdentity {
		c.Autoincrement = schema.AutoincrementDisabled
		if f.identityType.Valid {
			c.Identity = &schema.Identity{
				Always:    f.identityType.Int64 == 0,
				Start:     int64Ptr(f.initial),
				Increment: int64Ptr(f.increment),
			}
			c.Autoincrement = schema.AutoincrementEnabled
		}
	}
	return c, nil
}

// parseDefault strips the DEFAULT keyword from a catalog default source.
// The keyword may be in any case and surrounded by any whitespace. A NULL
// default is reported as no default.
func parseDefault(src string) (*string, error) {
	s := strings.TrimLeft(src, " \t\r\n")
	head := s
	if len(head) > 8 {
		head = head[:8]
	}
	if !strings.EqualFold(strings.TrimRight(head, " \t\r\n"), "DEFAULT") {
		return nil, &ibx.InvariantError{Msg: "unrecognized default value", Raw: src}
	}
	v := strings.TrimSpace(s[len(head):])
	if v == "" || strings.EqualFold(v, "NULL") {
		return nil, nil
	}
	return &v, nil
}

// stripKeyword removes a leading keyword such as CHECK or WHERE.
func stripKeyword(s, kw string) string {
	s = strings.TrimSpace(s)
	if len(s) >= len(kw) && strings.EqualFold(s[:len(kw)], kw) {
		s = strings.TrimSpace(s[len(kw):])
	}
	return s
}

// stripParens removes one pair of parentheses enclosing all of s.
func stripParens(s string) string {
	if len(s) < 2 || s[0] != '(' || s[len(s)-1] != ')' {
		return s
	}
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 && i < len(s)-1 {
				return s
			}
		}
	}
	return strings.TrimSpace(s[1 : len(s)-1])
}

// PrimaryKey returns the primary key of a table, or nil when it has none.
func (r *Reflector) PrimaryKey(ctx context.Context, table string) (*schema.PrimaryKey, error) {
	return cached(ctx, r, "primary_key", table, func(ctx context.Context) (*schema.PrimaryKey, error) {
		var pk *schema.PrimaryKey
		err := r.query(ctx, primaryKeyQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var cname, fname sql.NullString
			if err := rows.Scan(&cname, &fname); err != nil {
				return err
			}
			if pk == nil {
				pk = &schema.PrimaryKey{Name: r.prep.Normalize(cname.String)}
			}
			pk.Columns = append(pk.Columns, r.prep.Normalize(fname.String))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: primary key: %w", err)
		}
		if pk == nil {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
		}
		return pk, nil
	})
}

// ForeignKeys returns the foreign keys of a table. Rows arrive one per key
// segment and are grouped by constraint name in segment order.
func (r *Reflector) ForeignKeys(ctx context.Context, table string) ([]*schema.ForeignKey, error) {
	return cached(ctx, r, "foreign_keys", table, func(ctx context.Context) ([]*schema.ForeignKey, error) {
		var (
			fks    = []*schema.ForeignKey{}
			byName = make(map[string]*schema.ForeignKey)
		)
		err := r.query(ctx, foreignKeysQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var cname, fname, rtable, rname, onUpdate, onDelete sql.NullString
			if err := rows.Scan(&cname, &fname, &rtable, &rname, &onUpdate, &onDelete); err != nil {
				return err
			}
			name := r.prep.Normalize(cname.String)
			fk, ok := byName[name]
			if !ok {
				fk = &schema.ForeignKey{Name: name, RefTable: r.prep.Normalize(rtable.String)}
				byName[name] = fk
				fks = append(fks, fk)
			}
			fk.Columns = append(fk.Columns, r.prep.Normalize(fname.String))
			fk.RefColumns = append(fk.RefColumns, r.prep.Normalize(rname.String))
			if a := sqlschema.CascadeAction(strings.TrimSpace(onUpdate.String)); !a.IsDefault() {
				fk.OnUpdate = a
			}
			if a := sqlschema.CascadeAction(strings.TrimSpace(onDelete.String)); !a.IsDefault() {
				fk.OnDelete = a
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: foreign keys: %w", err)
		}
		if len(fks) == 0 {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
		}
		return fks, nil
	})
}

// UniqueConstraints returns the unique constraints of a table.
func (r *Reflector) UniqueConstraints(ctx context.Context, table string) ([]*schema.Unique, error) {
	return cached(ctx, r, "unique_constraints", table, func(ctx context.Context) ([]*schema.Unique, error) {
		var (
			uniques = []*schema.Unique{}
			byName  = make(map[string]*schema.Unique)
		)
		err := r.query(ctx, uniqueConstraintsQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var cname, column sql.NullString
			if err := rows.Scan(&cname, &column); err != nil {
				return err
			}
			name := r.prep.Normalize(cname.String)
			u, ok := byName[name]
			if !ok {
				u = &schema.Unique{Name: name}
				byName[name] = u
				uniques = append(uniques, u)
			}
			u.Columns = append(u.Columns, r.prep.Normalize(column.String))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: unique constraints: %w", err)
		}
		if len(uniques) == 0 {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
		}
		return uniques, nil
	})
}

// CheckConstraints returns the check constraints of a table. The
// expression is the text inside CHECK (...).
func (r *Reflector) CheckConstraints(ctx context.Context, table string) ([]*schema.Check, error) {
	return cached(ctx, r, "check_constraints", table, func(ctx context.Context) ([]*schema.Check, error) {
		var (
			checks = []*schema.Check{}
			seen   = make(map[string]bool)
		)
		err := r.query(ctx, checkConstraintsQuery, []any{r.prep.Denormalize(table)}, func(rows *sql.Rows) error {
			var cname, source sql.NullString
			if err := rows.Scan(&cname, &source); err != nil {
				return err
			}
			name := r.prep.Normalize(cname.String)
			if seen[name] {
				return nil
			}
			seen[name] = true
			checks = append(checks, &schema.Check{
				Name: name,
				Expr: stripParens(stripKeyword(source.String, "CHECK")),
			})
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: check constraints: %w", err)
		}
		if len(checks) == 0 {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
		}
		return checks, nil
	})
}

// Indexes returns the indexes of a table, excluding those backing the
// primary key and foreign keys. For expression indexes, Columns holds one
// slot per expression token: the column name when the token is a plain
// column and "" otherwise.
func (r *Reflector) Indexes(ctx context.Context, table string) ([]*schema.Index, error) {
	return cached(ctx, r, "indexes", table, func(ctx context.Context) ([]*schema.Index, error) {
		var (
			indexes = []*schema.Index{}
			byName  = make(map[string]*schema.Index)
			tname   = r.prep.Denormalize(table)
		)
		err := r.query(ctx, r.indexesQuery, []any{tname}, func(rows *sql.Rows) error {
			var (
				name, field, expr, cond sql.NullString
				unique, desc            sql.NullInt64
			)
			if err := rows.Scan(&name, &unique, &desc, &field, &expr, &cond); err != nil {
				return err
			}
			iname := r.prep.Normalize(name.String)
			idx, ok := byName[iname]
			if !ok {
				idx = &schema.Index{
					Name:       iname,
					Unique:     unique.Int64 == 1,
					Descending: desc.Int64 == 1,
				}
				if e := strings.TrimSpace(expr.String); expr.Valid && e != "" {
					for _, tok := range strings.Split(stripParens(e), ExpressionSeparator) {
						idx.Expressions = append(idx.Expressions, strings.TrimSpace(tok))
					}
				}
				if cond.Valid {
					idx.Where = stripKeyword(cond.String, "WHERE")
				}
				byName[iname] = idx
				indexes = append(indexes, idx)
			}
			if field.Valid && len(idx.Expressions) == 0 {
				idx.Columns = append(idx.Columns, r.prep.Normalize(field.String))
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: indexes: %w", err)
		}
		if len(indexes) == 0 {
			if err := r.emptyOrMissing(ctx, table); err != nil {
				return nil, err
			}
			return indexes, nil
		}
		if err := r.classifyExpressions(ctx, tname, indexes); err != nil {
			return nil, err
		}
		return indexes, nil
	})
}

// classifyExpressions fills the column slots of expression indexes.
func (r *Reflector) classifyExpressions(ctx context.Context, tname string, indexes []*schema.Index) error {
	var exprs []*schema.Index
	for _, idx := range indexes {
		if len(idx.Expressions) > 0 {
			exprs = append(exprs, idx)
		}
	}
	if len(exprs) == 0 {
		return nil
	}
	// Catalog spelling to logical name.
	columns := make(map[string]string)
	err := r.query(ctx, columnNamesQuery, []any{tname}, func(rows *sql.Rows) error {
		var s sql.NullString
		if err := rows.Scan(&s); err != nil {
			return err
		}
		name := strings.TrimSpace(s.String)
		columns[name] = r.prep.Normalize(name)
		return nil
	})
	if err != nil {
		return fmt.Errorf("interbase: index columns: %w", err)
	}
	for _, idx := range exprs {
		idx.Columns = make([]string, len(idx.Expressions))
		for i, tok := range idx.Expressions {
			// Tokens are SQL text: unquoted names fold to upper case.
			name, ok := unquote(tok)
			if !ok {
				name = upper(tok)
			}
			idx.Columns[i] = columns[name]
		}
	}
	return nil
}

// Domains returns the user-defined domains.
func (r *Reflector) Domains(ctx context.Context) ([]*schema.Domain, error) {
	return cached(ctx, r, "domains", "", func(ctx context.Context) ([]*schema.Domain, error) {
		domains := []*schema.Domain{}
		err := r.query(ctx, domainsQuery, []any{}, func(rows *sql.Rows) error {
			var f fieldRow
			if err := rows.Scan(
				&f.name, &f.nullFlag, &f.typeName, &f.length, &f.precision, &f.scale,
				&f.subtype, &f.segmentLength, &f.charset, &f.collation,
				&f.defaultSource, &f.validation, &f.description,
			); err != nil {
				return err
			}
			name := r.prep.Normalize(f.name.String)
			typ, w := DecodeType(f.catalogType())
			if w != nil {
				w.Column = name
				r.warn(ctx, w)
			}
			d := &schema.Domain{
				Name:     name,
				Type:     typ,
				Nullable: f.nullFlag.Int64 == 0,
				Comment:  strings.TrimSpace(f.description.String),
			}
			if f.defaultSource.Valid {
				def, err := parseDefault(f.defaultSource.String)
				if err != nil {
					return err
				}
				d.Default = def
			}
			if f.validation.Valid {
				d.Check = stripParens(stripKeyword(f.validation.String, "CHECK"))
			}
			domains = append(domains, d)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("interbase: domains: %w", err)
		}
		return domains, nil
	})
}

// Table returns the full description of a table.
func (r *Reflector) Table(ctx context.Context, name string) (*schema.Table, error) {
	return cached(ctx, r, "table", name, func(ctx context.Context) (*schema.Table, error) {
		columns, err := r.Columns(ctx, name)
		if err != nil {
			return nil, err
		}
		t := &schema.Table{Name: name, Columns: columns}
		if t.PrimaryKey, err = r.PrimaryKey(ctx, name); err != nil {
			return nil, err
		}
		if t.ForeignKeys, err = r.ForeignKeys(ctx, name); err != nil {
			return nil, err
		}
		if t.Uniques, err = r.UniqueConstraints(ctx, name); err != nil {
			return nil, err
		}
		if t.Checks, err = r.CheckConstraints(ctx, name); err != nil {
			return nil, err
		}
		if t.Indexes, err = r.Indexes(ctx, name); err != nil {
			return nil, err
		}
		if t.Comment, err = r.TableComment(ctx, name); err != nil {
			return nil, err
		}
		return t, nil
	})
}

// Tables returns the full description of every user table.
func (r *Reflector) Tables(ctx context.Context) ([]*schema.Table, error) {
	names, err := r.TableNames(ctx)
	if err != nil {
		return nil, err
	}
	tables := make([]*schema.Table, 0, len(names))
	for _, n := range names {
		t, err := r.Table(ctx, n)
		if err != nil {
			return nil, err
		}
		tables = append(tables, t)
	}
	return tables, nil
}
