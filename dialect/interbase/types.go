package interbase

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/syssam/ibx"
	"github.com/syssam/ibx/dialect/sql/schema"
)

// Character sets with a fixed meaning in type mapping.
const (
	// BinaryCharset marks CHAR and VARCHAR columns holding raw bytes.
	BinaryCharset = "OCTETS"
	// NationalCharset is the character set of NCHAR and NVARCHAR columns.
	NationalCharset = "ISO8859_1"
)

// TypeName renders t as a column type for the engine described by caps.
func TypeName(t schema.ColumnType, caps *Capabilities) (string, error) {
	switch t.Kind {
	case schema.SmallInt:
		return "SMALLINT", nil
	case schema.Integer:
		return "INTEGER", nil
	case schema.BigInt:
		return "BIGINT", nil
	case schema.Int128:
		return "INT128", nil
	case schema.Float:
		return "FLOAT" + precision(t), nil
	case schema.Double:
		return "DOUBLE PRECISION", nil
	case schema.DecFloat:
		return "DECFLOAT" + precision(t), nil
	case schema.Numeric:
		return fmt.Sprintf("NUMERIC(%d, %d)", t.PrecisionOr(schema.DefaultPrecision), t.ScaleOr(schema.DefaultScale)), nil
	case schema.Decimal:
		return fmt.Sprintf("DECIMAL(%d, %d)", t.PrecisionOr(schema.DefaultPrecision), t.ScaleOr(schema.DefaultScale)), nil
	case schema.Date:
		return "DATE", nil
	case schema.Time:
		return "TIME" + precision(t) + timezone(t), nil
	case schema.Timestamp:
		return "TIMESTAMP" + precision(t) + timezone(t), nil
	case schema.Boolean:
		if caps.SupportsNativeBoolean {
			return "BOOLEAN", nil
		}
		return "SMALLINT", nil
	case schema.Interval:
		return "NUMERIC(18, 9)", nil
	case schema.Char, schema.VarChar, schema.NChar, schema.NVarChar, schema.Binary, schema.VarBinary:
		return stringType(t, caps), nil
	case schema.Blob:
		return blobType(t), nil
	default:
		return "", ibx.NewCompileError("type", "no type name for %s", t)
	}
}

func precision(t schema.ColumnType) string {
	if t.Precision == nil {
		return ""
	}
	return "(" + strconv.Itoa(*t.Precision) + ")"
}

func timezone(t schema.ColumnType) string {
	if t.Timezone {
		return " WITH TIME ZONE"
	}
	return ""
}

func stringType(t schema.ColumnType, caps *Capabilities) string {
	var (
		name      string
		charset   = t.Charset
		collation = t.Collation
	)
	switch t.Kind {
	case schema.Char:
		name = "CHAR"
	case schema.VarChar:
		name = "VARCHAR"
	case schema.NChar:
		name = "NATIONAL CHARACTER"
	case schema.NVarChar:
		name = "NATIONAL CHARACTER VARYING"
	case schema.Binary:
		name = "BINARY"
	case schema.VarBinary:
		name = "VARBINARY"
	}
	if t.Kind == schema.Binary || t.Kind == schema.VarBinary || t.Kind == schema.NChar || t.Kind == schema.NVarChar {
		charset, collation = "", ""
	}
	if caps.Variant == InterBase || !caps.Version.AtLeast(4, 0) {
		switch t.Kind {
		case schema.Binary:
			name, charset = "CHAR", BinaryCharset
		case schema.VarBinary:
			name, charset = "VARCHAR", BinaryCharset
		}
	}
	text := name
	if t.Length <= 0 {
		switch {
		case t.Kind == schema.VarBinary || name == "VARCHAR" && strings.EqualFold(charset, BinaryCharset):
			text, charset, collation = "BLOB SUB_TYPE BINARY", BinaryCharset, ""
		case name == "VARCHAR":
			text = "BLOB SUB_TYPE TEXT"
		case t.Kind == schema.NVarChar:
			text, charset, collation = "BLOB SUB_TYPE TEXT", NationalCharset, ""
		}
	} else {
		text += "(" + strconv.Itoa(t.Length) + ")"
	}
	if charset != "" {
		text += " CHARACTER SET " + charset
	}
	if collation != "" {
		text += " COLLATE " + collation
	}
	return text
}

func blobType(t schema.ColumnType) string {
	var b strings.Builder
	b.WriteString("BLOB")
	if t.Subtype != nil {
		if *t.Subtype == 1 {
			b.WriteString(" SUB_TYPE TEXT")
		} else {
			b.WriteString(" SUB_TYPE BINARY")
		}
	}
	if t.SegmentSize > 0 {
		fmt.Fprintf(&b, " SEGMENT SIZE %d", t.SegmentSize)
	}
	if t.Charset != "" {
		b.WriteString(" CHARACTER SET " + t.Charset)
	}
	if t.Collation != "" {
		b.WriteString(" COLLATE " + t.Collation)
	}
	return b.String()
}

// CatalogType is the type description of a column or domain as stored in
// rdb$fields. Name is the rdb$types name of rdb$field_type.
type CatalogType struct {
	Name          string
	Length        int
	Precision     *int
	Scale         *int
	Subtype       *int
	SegmentLength int
	Charset       string
	Collation     string
}

// DecodeType maps a catalog type to a ColumnType. Unmapped names decode to
// an Unknown type together with a warning.
func DecodeType(ct CatalogType) (schema.ColumnType, *ibx.UnknownTypeWarning) {
	var (
		name      = strings.ToUpper(strings.TrimSpace(ct.Name))
		charset   = strings.TrimSpace(ct.Charset)
		collation = strings.TrimSpace(ct.Collation)
	)
	switch name {
	case "TEXT", "VARYING", "CSTRING":
		t := schema.ColumnType{Kind: schema.VarChar, Length: ct.Length}
		if name == "TEXT" {
			t.Kind = schema.Char
		}
		switch {
		case strings.EqualFold(charset, BinaryCharset):
			t.Kind = binaryOf(t.Kind)
		case strings.EqualFold(charset, NationalCharset):
			t.Kind = nationalOf(t.Kind)
		default:
			t.Charset, t.Collation = charset, collation
		}
		return t, nil
	case "SHORT", "LONG", "INT64", "INT128":
		t := schema.ColumnType{Kind: integerOf(name)}
		if ct.Subtype != nil && (*ct.Subtype == 1 || *ct.Subtype == 2) {
			t.Kind = schema.Numeric
			if *ct.Subtype == 2 {
				t.Kind = schema.Decimal
			}
			t.Precision, t.Scale = ct.Precision, positive(ct.Scale)
		}
		return t, nil
	case "FLOAT":
		return schema.ColumnType{Kind: schema.Float, Precision: ct.Precision}, nil
	case "DOUBLE":
		return schema.ColumnType{Kind: schema.Double, Precision: ct.Precision}, nil
	case "DECFLOAT(16)", "DECFLOAT(34)":
		t := schema.ColumnType{Kind: schema.DecFloat, Precision: ct.Precision}
		if t.Precision == nil {
			p, _ := strconv.Atoi(name[len("DECFLOAT(") : len(name)-1])
			t.Precision = &p
		}
		return t, nil
	case "DATE":
		return schema.Simple(schema.Date), nil
	case "TIME", "TIME WITH TIME ZONE":
		return schema.TimeType(strings.HasSuffix(name, "WITH TIME ZONE")), nil
	case "TIMESTAMP", "TIMESTAMP WITH TIME ZONE":
		return schema.TimestampType(strings.HasSuffix(name, "WITH TIME ZONE")), nil
	case "BOOLEAN":
		return schema.Simple(schema.Boolean), nil
	case "BLOB":
		if ct.Subtype != nil && *ct.Subtype == 1 {
			t := schema.TextBlobType()
			t.SegmentSize, t.Charset, t.Collation = ct.SegmentLength, charset, collation
			return t, nil
		}
		t := schema.BinaryBlobType()
		t.SegmentSize = ct.SegmentLength
		return t, nil
	default:
		return schema.ColumnType{Kind: schema.Unknown, Raw: name}, &ibx.UnknownTypeWarning{Type: name}
	}
}

func binaryOf(k schema.TypeKind) schema.TypeKind {
	if k == schema.Char {
		return schema.Binary
	}
	return schema.VarBinary
}

func nationalOf(k schema.TypeKind) schema.TypeKind {
	if k == schema.Char {
		return schema.NChar
	}
	return schema.NVarChar
}

func integerOf(name string) schema.TypeKind {
	switch name {
	case "SHORT":
		return schema.SmallInt
	case "LONG":
		return schema.Integer
	case "INT64":
		return schema.BigInt
	default:
		return schema.Int128
	}
}

// positive undoes the negative scale stored in rdb$field_scale.
func positive(scale *int) *int {
	if scale == nil || *scale >= 0 {
		return scale
	}
	s := -*scale
	return &s
}
