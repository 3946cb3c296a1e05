package gen

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/ibx/dialect/sql/schema"
)

const (
	decimalPkg = "github.com/shopspring/decimal"
	sqlPkg     = "database/sql"
)

// goType returns the Go type of a column. Nullable columns use the
// database/sql Null types, or a pointer where none exists. Exact numerics
// use shopspring/decimal, which is what the firebirdsql driver returns.
func goType(c *schema.Column) jen.Code {
	t := c.Type
	switch t.Kind {
	case schema.SmallInt:
		return nullOr(c, jen.Int16(), "NullInt16")
	case schema.Integer:
		return nullOr(c, jen.Int32(), "NullInt32")
	case schema.BigInt:
		return nullOr(c, jen.Int64(), "NullInt64")
	case schema.Int128:
		return jen.Op("*").Qual("math/big", "Int")
	case schema.Float:
		if c.Nullable {
			return jen.Op("*").Float32()
		}
		return jen.Float32()
	case schema.Double:
		return nullOr(c, jen.Float64(), "NullFloat64")
	case schema.Numeric, schema.Decimal, schema.DecFloat, schema.Interval:
		if c.Nullable {
			return jen.Qual(decimalPkg, "NullDecimal")
		}
		return jen.Qual(decimalPkg, "Decimal")
	case schema.Date, schema.Time, schema.Timestamp:
		return nullOr(c, jen.Qual("time", "Time"), "NullTime")
	case schema.Boolean:
		return nullOr(c, jen.Bool(), "NullBool")
	case schema.Char, schema.VarChar, schema.NChar, schema.NVarChar:
		return nullOr(c, jen.String(), "NullString")
	case schema.Binary, schema.VarBinary:
		return jen.Index().Byte()
	case schema.Blob:
		if t.IsTextBlob() {
			return nullOr(c, jen.String(), "NullString")
		}
		return jen.Index().Byte()
	default:
		return jen.Any()
	}
}

func nullOr(c *schema.Column, base *jen.Statement, null string) jen.Code {
	if c.Nullable {
		return jen.Qual(sqlPkg, null)
	}
	return base
}
