package utils

import (
	"strings"

	"github.com/farxc/dfc_dashboard/internal/category"
	"github.com/go-gota/gota/dataframe"
)

// ColumnKey folds a CSV header so "Codigo_plano", "CÓDIGO PLANO" and
// "codigo plano" resolve to the same column.
func ColumnKey(name string) string {
	name = strings.NewReplacer("_", " ", "\ufeff", "").Replace(name)
	return category.Normalize(name)
}

// Columns maps folded header names to the dataframe's own names.
type Columns map[string]string

func IndexColumns(df *dataframe.DataFrame) Columns {
	cols := Columns{}
	if df == nil {
		return cols
	}
	for _, n := range df.Names() {
		cols[ColumnKey(n)] = n
	}
	return cols
}

// Has reports whether any of the aliases is present.
func (c Columns) Has(aliases ...string) bool {
	for _, a := range aliases {
		if _, ok := c[ColumnKey(a)]; ok {
			return true
		}
	}
	return false
}

// GetStr returns the trimmed cell of the first alias present, or "".
func GetStr(df *dataframe.DataFrame, cols Columns, rowIdx int, aliases ...string) string {
	if df == nil {
		return ""
	}
	for _, a := range aliases {
		name, ok := cols[ColumnKey(a)]
		if !ok {
			continue
		}
		elem := df.Col(name).Elem(rowIdx)
		if elem.IsNA() {
			return ""
		}
		return strings.TrimSpace(elem.String())
	}
	return ""
}

func GetInt(df *dataframe.DataFrame, cols Columns, rowIdx int, aliases ...string) int {
	return ParseInt(GetStr(df, cols, rowIdx, aliases...))
}

func GetFloat(df *dataframe.DataFrame, cols Columns, rowIdx int, aliases ...string) float64 {
	return ParseFloat(GetStr(df, cols, rowIdx, aliases...))
}
