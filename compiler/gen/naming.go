package gen

import (
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// initialisms are kept in upper case inside Go names.
var initialisms = names(
	"ACL", "API", "ASCII", "CPU", "CSS", "DNS", "EOF", "GUID", "HTML", "HTTP",
	"HTTPS", "ID", "IP", "JSON", "LHS", "QPS", "RAM", "RHS", "RPC", "SKU",
	"SLA", "SMTP", "SQL", "SSH", "TCP", "TLS", "TTL", "UDP", "UI", "UID",
	"UUID", "URI", "URL", "UTF8", "VM", "XML",
)

func names(ids ...string) map[string]struct{} {
	m := make(map[string]struct{})
	for i := range ids {
		m[ids[i]] = struct{}{}
	}
	return m
}

// words splits a catalog name on separators.
func words(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '$' || r == '-' || r == '"' || unicode.IsSpace(r)
	})
}

// pascal returns the exported Go name of a catalog name. Words in a single
// case are title cased. Mixed-case words keep their inner case.
func pascal(s string) string {
	var b strings.Builder
	for _, w := range words(s) {
		up := strings.ToUpper(w)
		switch _, ok := initialisms[up]; {
		case ok:
			b.WriteString(up)
		case w == up || w == strings.ToLower(w):
			b.WriteString(titleCaser.String(w))
		default:
			r := []rune(w)
			r[0] = unicode.ToUpper(r[0])
			b.WriteString(string(r))
		}
	}
	name := b.String()
	if name == "" || !unicode.IsLetter([]rune(name)[0]) {
		name = "X" + name
	}
	return name
}

// structName returns the model name of a table: the singular of its name.
func structName(table string) string {
	ws := words(table)
	if len(ws) == 0 {
		return pascal(table)
	}
	last := ws[len(ws)-1]
	ws[len(ws)-1] = inflect.Singularize(strings.ToLower(last))
	if last == strings.ToUpper(last) {
		ws[len(ws)-1] = strings.ToUpper(ws[len(ws)-1])
	}
	return pascal(strings.Join(ws, "_"))
}

// fileName returns the generated file name of a table.
func fileName(table string) string {
	base := strings.ToLower(strings.Join(words(table), "_"))
	if base == "" || strings.HasSuffix(base, "_test") {
		base += "_model"
	}
	return base + ".go"
}
