package interbase

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/ibx"
)

// Preparer quotes and case-folds identifiers.
//
// Unquoted identifiers are stored upper-case in the catalog. Logical names
// use lower-case for them, so "USERS" in the catalog is "users" to callers
// and renders without quotes. A catalog name that is itself lower-case,
// such as "orders" created quoted, is given in quoted form with the double
// quotes included. Any other spelling is kept verbatim and quoted when
// rendered.
type Preparer struct {
	caps *Capabilities
}

// NewPreparer returns a preparer for the given capabilities.
func NewPreparer(caps *Capabilities) *Preparer {
	return &Preparer{caps: caps}
}

// Casers are stateful and must not be shared between goroutines.
func lower(s string) string { return cases.Lower(language.Und).String(s) }
func upper(s string) string { return cases.Upper(language.Und).String(s) }

// Quote wraps name in double quotes, doubling embedded quotes.
func (p *Preparer) Quote(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// RequiresQuotes reports whether name must be quoted to keep its spelling.
func (p *Preparer) RequiresQuotes(name string) bool {
	if name == "" {
		return true
	}
	if p.caps.IsReserved(upper(name)) {
		return true
	}
	switch c := name[0]; {
	case c >= '0' && c <= '9', c == '$', c == '_':
		return true
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !(c >= 'a' && c <= 'z' || c >= '0' && c <= '9' || c == '_' || c == '$') {
			return true
		}
	}
	return false
}

// QuoteIfNeeded quotes name when it is not a plain lower-case identifier.
// A name already in quoted form is returned as is.
func (p *Preparer) QuoteIfNeeded(name string) string {
	if _, ok := unquote(name); ok {
		return name
	}
	if p.RequiresQuotes(name) {
		return p.Quote(name)
	}
	return name
}

// unquote returns the catalog spelling of a name in quoted form.
func unquote(name string) (string, bool) {
	if len(name) < 3 || name[0] != '"' || name[len(name)-1] != '"' {
		return "", false
	}
	inner := name[1 : len(name)-1]
	if strings.Contains(strings.ReplaceAll(inner, `""`, ""), `"`) {
		return "", false
	}
	return strings.ReplaceAll(inner, `""`, `"`), true
}

// Normalize converts a catalog name to its logical form.
//
// A lower-case catalog name that needs no quoting would read back as the
// folded form of its upper-case twin, so it is kept in quoted form.
func (p *Preparer) Normalize(name string) string {
	name = strings.TrimSpace(name)
	if _, ok := unquote(name); ok || name == "" {
		return name
	}
	if upper(name) != name {
		if lower(name) == name && !p.RequiresQuotes(name) {
			return p.Quote(name)
		}
		return name
	}
	if l := lower(name); !p.RequiresQuotes(l) {
		return l
	}
	return name
}

// Denormalize converts a logical name to its catalog form.
func (p *Preparer) Denormalize(name string) string {
	name = strings.TrimSpace(name)
	if s, ok := unquote(name); ok {
		return s
	}
	if name == "" || lower(name) != name || p.RequiresQuotes(name) {
		return name
	}
	return upper(name)
}

// Validate rejects names longer than the engine allows.
func (p *Preparer) Validate(name string) error {
	if s, ok := unquote(name); ok {
		name = s
	}
	if len(name) > p.caps.MaxIdentifierLength {
		return &ibx.IdentifierError{Name: name, Max: p.caps.MaxIdentifierLength}
	}
	return nil
}

// Format validates name and quotes it if needed.
func (p *Preparer) Format(name string) (string, error) {
	if err := p.Validate(name); err != nil {
		return "", err
	}
	return p.QuoteIfNeeded(name), nil
}

// FormatTable formats a table name.
func (p *Preparer) FormatTable(name string) (string, error) { return p.Format(name) }

// FormatColumn formats a column name.
func (p *Preparer) FormatColumn(name string) (string, error) { return p.Format(name) }

// FormatSequence formats a generator name.
func (p *Preparer) FormatSequence(name string) (string, error) { return p.Format(name) }

// FormatIndex formats an index name.
func (p *Preparer) FormatIndex(name string) (string, error) { return p.Format(name) }
