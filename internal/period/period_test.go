package period

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseView(t *testing.T) {
	assert.Equal(t, Quarterly, ParseView("Trimestral"))
	assert.Equal(t, Annual, ParseView(" anual "))
	assert.Equal(t, Monthly, ParseView(""))
	assert.Equal(t, Monthly, ParseView("semanal"))
}

func TestBucketKey(t *testing.T) {
	assert.Equal(t, "Q2", BucketKey(5, 2025, Quarterly))
	assert.Equal(t, "Q4", BucketKey(12, 2025, Quarterly))
	assert.Equal(t, "Q1", BucketKey(1, 2025, Quarterly))
	assert.Equal(t, "mai", BucketKey(5, 2025, Monthly))
	assert.Equal(t, "dez", BucketKey(12, 2025, Monthly))
	assert.Equal(t, "2025", BucketKey(7, 2025, Annual))
	assert.Equal(t, "", BucketKey(0, 2025, Monthly))
	assert.Equal(t, "", BucketKey(13, 2025, Quarterly))
}

func TestColumnsBucketRejectsKeysOutsideSet(t *testing.T) {
	cols := AnnualColumns([]int{2026, 2024, 2026})

	assert.Equal(t, []string{"2024", "2026"}, cols.Keys)
	assert.Equal(t, []int{2024, 2026}, cols.Years())

	key, ok := cols.Bucket(3, 2024)
	assert.True(t, ok)
	assert.Equal(t, "2024", key)

	_, ok = cols.Bucket(3, 2025)
	assert.False(t, ok)
}

func TestFixedColumnSets(t *testing.T) {
	m := MonthlyColumns()
	assert.Equal(t, 12, m.Len())
	assert.Equal(t, "jan", m.Keys[0])
	assert.Equal(t, "Dez", m.Headers[11])
	assert.Equal(t, 4, m.Index("mai"))
	assert.Equal(t, -1, m.Index("Q1"))

	q := ColumnsFor(Quarterly, nil)
	assert.Equal(t, []string{"Q1", "Q2", "Q3", "Q4"}, q.Keys)
	assert.Equal(t, "2º Trim", q.Headers[1])
	assert.Equal(t, []int{10, 11, 12}, QuarterMonths("Q4"))
	assert.Nil(t, QuarterMonths("Q5"))
}

func TestZeroCarriesExactlyTheColumnSet(t *testing.T) {
	q := QuarterlyColumns()
	z := q.Zero()

	assert.Len(t, z, 4)
	for _, k := range q.Keys {
		v, ok := z[k]
		assert.True(t, ok)
		assert.Zero(t, v)
	}
}

func TestValuesHelpers(t *testing.T) {
	cols := QuarterlyColumns()
	v := cols.Zero()
	v.Add("Q1", 10)
	v.Add("Q4", -2.5)
	v.Add("Q1", 5)

	assert.InDelta(t, 12.5, v.Total(), 1e-9)
	assert.Equal(t, []float64{15, 0, 0, -2.5}, cols.Slice(v))
	assert.Equal(t, 15.0, cols.First(v))
	assert.Equal(t, -2.5, cols.Last(v))

	c := v.Clone()
	c.Add("Q2", 1)
	assert.Zero(t, v["Q2"])
	assert.Zero(t, Columns{}.First(v))
}
