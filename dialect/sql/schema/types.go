package schema

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TypeKind is the tag of a ColumnType.
type TypeKind uint8

// Column type kinds.
const (
	Unknown TypeKind = iota
	Char
	VarChar
	NChar
	NVarChar
	SmallInt
	Integer
	BigInt
	Int128
	Float
	Double
	DecFloat
	Numeric
	Decimal
	Date
	Time
	Timestamp
	Boolean
	Blob
	Binary
	VarBinary
	Interval
)

var kindNames = [...]string{
	Unknown:   "unknown",
	Char:      "char",
	VarChar:   "varchar",
	NChar:     "nchar",
	NVarChar:  "nvarchar",
	SmallInt:  "smallint",
	Integer:   "integer",
	BigInt:    "bigint",
	Int128:    "int128",
	Float:     "float",
	Double:    "double",
	DecFloat:  "decfloat",
	Numeric:   "numeric",
	Decimal:   "decimal",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
	Boolean:   "boolean",
	Blob:      "blob",
	Binary:    "binary",
	VarBinary: "varbinary",
	Interval:  "interval",
}

// String returns the lower-case name of the kind.
func (k TypeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// MarshalText implements encoding.TextMarshaler.
func (k TypeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *TypeKind) UnmarshalText(text []byte) error {
	s := strings.ToLower(strings.TrimSpace(string(text)))
	for i, name := range kindNames {
		if name == s {
			*k = TypeKind(i)
			return nil
		}
	}
	switch s {
	case "int":
		*k = Integer
	case "double precision":
		*k = Double
	case "bool":
		*k = Boolean
	default:
		return fmt.Errorf("schema: unknown column type kind %q", s)
	}
	return nil
}

// IsInteger reports whether the kind is an exact integer type.
func (k TypeKind) IsInteger() bool {
	switch k {
	case SmallInt, Integer, BigInt, Int128:
		return true
	}
	return false
}

// IsString reports whether the kind is a character type.
func (k TypeKind) IsString() bool {
	switch k {
	case Char, VarChar, NChar, NVarChar:
		return true
	}
	return false
}

// IsBinary reports whether the kind stores raw octets.
func (k TypeKind) IsBinary() bool {
	return k == Binary || k == VarBinary
}

// Default precision and scale for fixed-point types created without them.
const (
	DefaultPrecision = 18
	DefaultScale     = 4
)

// ColumnType is a tagged variant describing a column type. Which fields are
// meaningful depends on Kind.
type ColumnType struct {
	Kind TypeKind `yaml:"kind"`
	// Length is the character or octet length of string and binary types.
	// Zero means unspecified.
	Length int `yaml:"length,omitempty"`
	// Precision applies to Numeric, Decimal, Float, DecFloat, Time and Timestamp.
	Precision *int `yaml:"precision,omitempty"`
	// Scale applies to Numeric and Decimal.
	Scale     *int   `yaml:"scale,omitempty"`
	Charset   string `yaml:"charset,omitempty"`
	Collation string `yaml:"collation,omitempty"`
	// Subtype is the blob subtype. 1 is text, anything else is binary.
	Subtype     *int `yaml:"subtype,omitempty"`
	SegmentSize int  `yaml:"segment_size,omitempty"`
	// Timezone marks Time and Timestamp WITH TIME ZONE.
	Timezone bool `yaml:"timezone,omitempty"`
	// Raw is the catalog type name of an Unknown type.
	Raw string `yaml:"raw,omitempty"`
}

// Ptr returns a pointer to v.
func Ptr[T any](v T) *T { return &v }

// CharType returns a CHAR(n) type.
func CharType(n int) ColumnType { return ColumnType{Kind: Char, Length: n} }

// VarCharType returns a VARCHAR(n) type. A zero length renders as a text blob.
func VarCharType(n int) ColumnType { return ColumnType{Kind: VarChar, Length: n} }

// NCharType returns a NATIONAL CHARACTER(n) type.
func NCharType(n int) ColumnType { return ColumnType{Kind: NChar, Length: n} }

// NVarCharType returns a NATIONAL CHARACTER VARYING(n) type.
func NVarCharType(n int) ColumnType { return ColumnType{Kind: NVarChar, Length: n} }

// BinaryType returns a fixed-length binary type.
func BinaryType(n int) ColumnType { return ColumnType{Kind: Binary, Length: n} }

// VarBinaryType returns a variable-length binary type.
func VarBinaryType(n int) ColumnType { return ColumnType{Kind: VarBinary, Length: n} }

// NumericType returns NUMERIC(p, s).
func NumericType(p, s int) ColumnType {
	return ColumnType{Kind: Numeric, Precision: &p, Scale: &s}
}

// DecimalType returns DECIMAL(p, s).
func DecimalType(p, s int) ColumnType {
	return ColumnType{Kind: Decimal, Precision: &p, Scale: &s}
}

// TimestampType returns a TIMESTAMP, optionally WITH TIME ZONE.
func TimestampType(tz bool) ColumnType { return ColumnType{Kind: Timestamp, Timezone: tz} }

// TimeType returns a TIME, optionally WITH TIME ZONE.
func TimeType(tz bool) ColumnType { return ColumnType{Kind: Time, Timezone: tz} }

// TextBlobType returns a BLOB SUB_TYPE TEXT.
func TextBlobType() ColumnType { return ColumnType{Kind: Blob, Subtype: Ptr(1)} }

// BinaryBlobType returns a BLOB SUB_TYPE BINARY.
func BinaryBlobType() ColumnType { return ColumnType{Kind: Blob, Subtype: Ptr(0)} }

// Simple returns a type that carries no parameters, such as Integer or Date.
func Simple(k TypeKind) ColumnType { return ColumnType{Kind: k} }

// WithCharset returns a copy of t with the given character set. It has no
// effect on types that never carry one.
func (t ColumnType) WithCharset(cs string) ColumnType {
	t.Charset = cs
	return t.Normalize()
}

// WithCollation returns a copy of t with the given collation.
func (t ColumnType) WithCollation(c string) ColumnType {
	t.Collation = c
	return t.Normalize()
}

// Normalize clears the attributes the kind cannot carry.
func (t ColumnType) Normalize() ColumnType {
	switch t.Kind {
	case Binary, VarBinary:
		t.Charset, t.Collation = "", ""
	case Char, VarChar, NChar, NVarChar, Blob:
	default:
		t.Charset, t.Collation = "", ""
	}
	return t
}

// PrecisionOr returns the precision, or def when unset.
func (t ColumnType) PrecisionOr(def int) int {
	if t.Precision == nil {
		return def
	}
	return *t.Precision
}

// ScaleOr returns the scale, or def when unset.
func (t ColumnType) ScaleOr(def int) int {
	if t.Scale == nil {
		return def
	}
	return *t.Scale
}

// IsTextBlob reports whether t is a text blob.
func (t ColumnType) IsTextBlob() bool {
	return t.Kind == Blob && t.Subtype != nil && *t.Subtype == 1
}

// Equal reports whether two types describe the same column type.
func (t ColumnType) Equal(o ColumnType) bool {
	return t.Kind == o.Kind &&
		t.Length == o.Length &&
		eqPtr(t.Precision, o.Precision) &&
		eqPtr(t.Scale, o.Scale) &&
		strings.EqualFold(t.Charset, o.Charset) &&
		strings.EqualFold(t.Collation, o.Collation) &&
		eqPtr(t.Subtype, o.Subtype) &&
		t.SegmentSize == o.SegmentSize &&
		t.Timezone == o.Timezone &&
		t.Raw == o.Raw
}

func eqPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// String returns a compact description of the type, e.g. varchar(20).
// Rendering for a specific engine version is done by the dialect.
func (t ColumnType) String() string {
	var b strings.Builder
	b.WriteString(t.Kind.String())
	switch t.Kind {
	case Unknown:
		if t.Raw != "" {
			b.WriteString("(" + t.Raw + ")")
		}
	case Char, VarChar, NChar, NVarChar, Binary, VarBinary:
		if t.Length > 0 {
			fmt.Fprintf(&b, "(%d)", t.Length)
		}
	case Numeric, Decimal:
		fmt.Fprintf(&b, "(%d, %d)", t.PrecisionOr(DefaultPrecision), t.ScaleOr(DefaultScale))
	case Float, DecFloat, Time, Timestamp:
		if t.Precision != nil {
			fmt.Fprintf(&b, "(%d)", *t.Precision)
		}
		if t.Timezone {
			b.WriteString(" with time zone")
		}
	case Blob:
		if t.IsTextBlob() {
			b.WriteString(" text")
		} else {
			b.WriteString(" binary")
		}
	}
	if t.Charset != "" {
		b.WriteString(" charset " + t.Charset)
	}
	if t.Collation != "" {
		b.WriteString(" collate " + t.Collation)
	}
	return b.String()
}

// nanosPerDay is the number of nanoseconds in a day.
const nanosPerDay = float64(24 * time.Hour)

// IntervalDays converts a duration to the day count stored by Interval columns.
func IntervalDays(d time.Duration) float64 {
	return float64(d) / nanosPerDay
}

// DaysToInterval converts a stored day count back to a duration. Precision
// beyond one nanosecond is dropped.
func DaysToInterval(days float64) time.Duration {
	return time.Duration(days * nanosPerDay)
}
