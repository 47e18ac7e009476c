// Package period maps effective month/year pairs onto the report column set
// of the selected view.
package period

import (
	"sort"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
)

type View string

const (
	Monthly   View = "mensal"
	Quarterly View = "trimestral"
	Annual    View = "anual"
)

// ParseView falls back to Monthly for empty or unknown values.
func ParseView(s string) View {
	switch View(strings.ToLower(strings.TrimSpace(s))) {
	case Quarterly:
		return Quarterly
	case Annual:
		return Annual
	default:
		return Monthly
	}
}

var (
	monthKeys      = []string{"jan", "fev", "mar", "abr", "mai", "jun", "jul", "ago", "set", "out", "nov", "dez"}
	monthHeaders   = []string{"Jan", "Fev", "Mar", "Abr", "Mai", "Jun", "Jul", "Ago", "Set", "Out", "Nov", "Dez"}
	quarterKeys    = []string{"Q1", "Q2", "Q3", "Q4"}
	quarterHeaders = []string{"1º Trim", "2º Trim", "3º Trim", "4º Trim"}
)

// MonthKey returns the column key of a 1-based month, or "" when out of range.
func MonthKey(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthKeys[month-1]
}

// MonthKeys returns the twelve monthly keys in calendar order.
func MonthKeys() []string {
	return append([]string(nil), monthKeys...)
}

// QuarterMonths lists the months folded into a quarter key.
func QuarterMonths(key string) []int {
	switch key {
	case "Q1":
		return []int{1, 2, 3}
	case "Q2":
		return []int{4, 5, 6}
	case "Q3":
		return []int{7, 8, 9}
	case "Q4":
		return []int{10, 11, 12}
	}
	return nil
}

// BucketKey computes the column key for an effective month/year under view.
// It does not check membership in any column set; an invalid month yields "".
func BucketKey(month, year int, view View) string {
	if month < 1 || month > 12 {
		return ""
	}
	switch view {
	case Quarterly:
		return "Q" + strconv.Itoa((month+2)/3)
	case Annual:
		return strconv.Itoa(year)
	default:
		return monthKeys[month-1]
	}
}

// Columns is the ordered column set every aggregate of a report carries.
type Columns struct {
	View    View
	Keys    []string
	Headers []string
	index   map[string]int
}

func newColumns(view View, keys, headers []string) Columns {
	idx := make(map[string]int, len(keys))
	for i, k := range keys {
		idx[k] = i
	}
	return Columns{
		View:    view,
		Keys:    append([]string(nil), keys...),
		Headers: append([]string(nil), headers...),
		index:   idx,
	}
}

func MonthlyColumns() Columns {
	return newColumns(Monthly, monthKeys, monthHeaders)
}

func QuarterlyColumns() Columns {
	return newColumns(Quarterly, quarterKeys, quarterHeaders)
}

// AnnualColumns builds one column per distinct year, ascending.
func AnnualColumns(years []int) Columns {
	seen := make(map[int]struct{}, len(years))
	uniq := make([]int, 0, len(years))
	for _, y := range years {
		if _, ok := seen[y]; ok {
			continue
		}
		seen[y] = struct{}{}
		uniq = append(uniq, y)
	}
	sort.Ints(uniq)

	keys := make([]string, len(uniq))
	for i, y := range uniq {
		keys[i] = strconv.Itoa(y)
	}
	return newColumns(Annual, keys, keys)
}

// ColumnsFor returns the fixed column set of monthly/quarterly views and the
// year-derived set of the annual view.
func ColumnsFor(view View, years []int) Columns {
	switch view {
	case Quarterly:
		return QuarterlyColumns()
	case Annual:
		return AnnualColumns(years)
	default:
		return MonthlyColumns()
	}
}

func (c Columns) Len() int { return len(c.Keys) }

func (c Columns) Has(key string) bool {
	_, ok := c.index[key]
	return ok
}

// Index returns the position of key, or -1.
func (c Columns) Index(key string) int {
	if i, ok := c.index[key]; ok {
		return i
	}
	return -1
}

// Bucket resolves the column of an effective month/year; ok is false when the
// row falls outside the active column set and must be discarded.
func (c Columns) Bucket(month, year int) (string, bool) {
	key := BucketKey(month, year, c.View)
	if key == "" || !c.Has(key) {
		return "", false
	}
	return key, true
}

// Years returns the integer years of an annual column set.
func (c Columns) Years() []int {
	out := make([]int, 0, len(c.Keys))
	for _, k := range c.Keys {
		if y, err := strconv.Atoi(k); err == nil {
			out = append(out, y)
		}
	}
	return out
}

// Zero returns a value map with every column present and set to zero.
func (c Columns) Zero() Values {
	v := make(Values, len(c.Keys))
	for _, k := range c.Keys {
		v[k] = 0
	}
	return v
}

// Slice returns v in column order.
func (c Columns) Slice(v Values) []float64 {
	out := make([]float64, len(c.Keys))
	for i, k := range c.Keys {
		out[i] = v[k]
	}
	return out
}

// First and Last return the edge values of v, zero for an empty set.
func (c Columns) First(v Values) float64 {
	if len(c.Keys) == 0 {
		return 0
	}
	return v[c.Keys[0]]
}

func (c Columns) Last(v Values) float64 {
	if len(c.Keys) == 0 {
		return 0
	}
	return v[c.Keys[len(c.Keys)-1]]
}

// Values holds one amount per column key.
type Values map[string]float64

// Add accumulates amount into key.
func (v Values) Add(key string, amount float64) {
	v[key] += amount
}

// Total sums every column.
func (v Values) Total() float64 {
	s := make([]float64, 0, len(v))
	for _, x := range v {
		s = append(s, x)
	}
	return floats.Sum(s)
}

// Clone copies v.
func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, x := range v {
		out[k] = x
	}
	return out
}
