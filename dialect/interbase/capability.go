package interbase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/syssam/ibx/dialect"
	"github.com/syssam/ibx/dialect/sql"
)

// Variant is the engine family.
type Variant uint8

// Engine families.
const (
	Firebird Variant = iota
	InterBase
)

// String returns the dialect name of the variant.
func (v Variant) String() string {
	if v == InterBase {
		return dialect.InterBase
	}
	return dialect.Firebird
}

// VariantOf returns the variant for a driver dialect name.
func VariantOf(name string) Variant {
	if name == dialect.InterBase {
		return InterBase
	}
	return Firebird
}

// Version is an engine version triple.
type Version struct {
	Major, Minor, Patch int
}

// String returns the dotted version.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// AtLeast reports whether v is major.minor or newer.
func (v Version) AtLeast(major, minor int) bool {
	if v.Major != major {
		return v.Major > major
	}
	return v.Minor >= minor
}

var versionRe = regexp.MustCompile(`(\d+)\.(\d+)(?:\.(\d+))?`)

// ParseVersion extracts the first dotted version from s. It accepts the
// ENGINE_VERSION context value ("3.0.10") as well as full server banners
// ("WI-V3.0.10.33601 Firebird 3.0").
func ParseVersion(s string) (Version, error) {
	m := versionRe.FindStringSubmatch(s)
	if m == nil {
		return Version{}, fmt.Errorf("interbase: parse version %q", s)
	}
	var v Version
	v.Major, _ = strconv.Atoi(m[1])
	v.Minor, _ = strconv.Atoi(m[2])
	if m[3] != "" {
		v.Patch, _ = strconv.Atoi(m[3])
	}
	return v, nil
}

// versionQuery reads the engine version of a Firebird 2.1+ server.
const versionQuery = "SELECT rdb$get_context('SYSTEM', 'ENGINE_VERSION') FROM rdb$database"

// ServerVersion probes the engine version through ex.
func ServerVersion(ctx context.Context, ex dialect.ExecQuerier) (Version, error) {
	rows := &sql.Rows{}
	if err := ex.Query(ctx, versionQuery, []any{}, rows); err != nil {
		return Version{}, fmt.Errorf("interbase: server version: %w", err)
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Version{}, fmt.Errorf("interbase: server version: %w", err)
		}
		return Version{}, fmt.Errorf("interbase: server version: no rows")
	}
	var s sql.NullString
	if err := rows.Scan(&s); err != nil {
		return Version{}, fmt.Errorf("interbase: server version: %w", err)
	}
	return ParseVersion(s.String)
}

// Capabilities describes what the connected engine supports. It is built
// once per connection and never modified.
type Capabilities struct {
	Version Version
	Variant Variant

	// SupportsIdentity is set for GENERATED ... AS IDENTITY columns.
	SupportsIdentity bool
	// SupportsNativeBoolean is set when BOOLEAN exists. Otherwise booleans
	// are stored as SMALLINT.
	SupportsNativeBoolean bool
	// SupportsReturning allows RETURNING on INSERT, UPDATE and DELETE.
	SupportsReturning bool
	// SupportsPartialIndex allows CREATE INDEX ... WHERE.
	SupportsPartialIndex bool
	// BindCasts renders typed parameters as CAST(? AS type).
	BindCasts bool

	MaxIdentifierLength int

	reserved map[string]struct{}
}

// NewCapabilities derives the capabilities of an engine version.
func NewCapabilities(v Version, variant Variant) *Capabilities {
	c := &Capabilities{
		Version:             v,
		Variant:             variant,
		BindCasts:           true,
		MaxIdentifierLength: 31,
		reserved:            reservedWords25,
	}
	if variant == InterBase {
		return c
	}
	c.SupportsReturning = v.AtLeast(2, 0)
	if v.AtLeast(3, 0) {
		c.SupportsIdentity = true
		c.SupportsNativeBoolean = true
		c.reserved = reservedWords30
	}
	if v.AtLeast(4, 0) {
		c.MaxIdentifierLength = 63
		c.reserved = reservedWords40
	}
	c.SupportsPartialIndex = v.AtLeast(5, 0)
	return c
}

// IsReserved reports whether word is reserved. word must be upper-case.
func (c *Capabilities) IsReserved(word string) bool {
	_, ok := c.reserved[word]
	return ok
}

// ReservedWords returns the reserved words in sorted order.
func (c *Capabilities) ReservedWords() []string {
	words := make([]string, 0, len(c.reserved))
	for w := range c.reserved {
		words = append(words, w)
	}
	sort.Strings(words)
	return words
}
