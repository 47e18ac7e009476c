package converter

import (
	"fmt"

	"github.com/farxc/dfc_dashboard/internal/ingest/utils"
	"github.com/farxc/dfc_dashboard/internal/period"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/go-gota/gota/dataframe"
)

var monthColumns = [12][]string{
	{"Janeiro", "jan"},
	{"Fevereiro", "fev"},
	{"Marco", "Março", "mar"},
	{"Abril", "abr"},
	{"Maio", "mai"},
	{"Junho", "jun"},
	{"Julho", "jul"},
	{"Agosto", "ago"},
	{"Setembro", "set"},
	{"Outubro", "out"},
	{"Novembro", "nov"},
	{"Dezembro", "dez"},
}

// requireColumn fails when none of the aliases of a mandatory column is present.
func requireColumn(cols utils.Columns, dataset string, aliases ...string) error {
	if !cols.Has(aliases...) {
		return fmt.Errorf("%s file has no %q column", dataset, aliases[0])
	}
	return nil
}

func DfRowToEntry(df dataframe.DataFrame, cols utils.Columns, rowIdx int) store.Entry {
	e := store.Entry{
		Origin:        utils.GetStr(&df, cols, rowIdx, "Origem_DFC", "Origem"),
		SecondaryName: utils.GetStr(&df, cols, rowIdx, "Nome_2", "Subgrupo"),
		PlanCode:      utils.GetStr(&df, cols, rowIdx, "Codigo_plano", "Código Plano", "Plano"),
		PlanName:      utils.GetStr(&df, cols, rowIdx, "Nome"),
		Month:         utils.GetInt(&df, cols, rowIdx, "Mes", "Mês"),
		Year:          utils.GetInt(&df, cols, rowIdx, "Ano"),
		Amount:        utils.GetFloat(&df, cols, rowIdx, "Valor_mov", "Valor"),
		Nature:        utils.GetStr(&df, cols, rowIdx, "Natureza"),
		MovedOn:       store.NewNullTime(utils.ParseDate(utils.GetStr(&df, cols, rowIdx, "Dt_mov", "Data Movimento"))),
		SettledOn:     store.NewNullTime(utils.ParseDate(utils.GetStr(&df, cols, rowIdx, "Baixa", "Data Baixa"))),
		Financial:     utils.GetStr(&df, cols, rowIdx, "Financeiro"),
	}
	// exports without Mes/Ano carry the movement date only
	if (e.Month == 0 || e.Year == 0) && e.MovedOn.Valid {
		e.Month = int(e.MovedOn.Time.Month())
		e.Year = e.MovedOn.Time.Year()
	}
	return e
}

func DfRowToMovement(df dataframe.DataFrame, cols utils.Columns, rowIdx int) store.Movement {
	return store.Movement{
		Account: utils.GetStr(&df, cols, rowIdx, "Conta"),
		Year:    utils.GetInt(&df, cols, rowIdx, "Ano"),
		Month:   utils.GetInt(&df, cols, rowIdx, "Mes", "Mês"),
		Nature:  utils.GetStr(&df, cols, rowIdx, "Natureza"),
		Amount:  utils.GetFloat(&df, cols, rowIdx, "Valor", "Valor_mov"),
	}
}

func DfRowToPlannedRow(df dataframe.DataFrame, cols utils.Columns, rowIdx int) store.PlannedRow {
	row := store.PlannedRow{
		PlanCode:   utils.GetStr(&df, cols, rowIdx, "Plano", "Codigo_plano"),
		Name:       utils.GetStr(&df, cols, rowIdx, "Nome"),
		Department: utils.GetStr(&df, cols, rowIdx, "Departamento1", "Departamento"),
	}
	for i, aliases := range monthColumns {
		row.SetMonth(i+1, utils.GetFloat(&df, cols, rowIdx, aliases...))
	}
	return row
}

// Entries converts a ledger export. Rows without a plan code or a valid
// period are skipped and counted.
func Entries(df dataframe.DataFrame) ([]store.Entry, int, error) {
	cols := utils.IndexColumns(&df)
	for _, c := range [][]string{{"Origem_DFC", "Origem"}, {"Codigo_plano", "Código Plano", "Plano"}, {"Valor_mov", "Valor"}, {"Natureza"}} {
		if err := requireColumn(cols, "ledger", c...); err != nil {
			return nil, 0, err
		}
	}

	entries := make([]store.Entry, 0, df.Nrow())
	skipped := 0
	for i := 0; i < df.Nrow(); i++ {
		e := DfRowToEntry(df, cols, i)
		if e.PlanCode == "" || period.MonthKey(e.Month) == "" || e.Year == 0 {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

func Movements(df dataframe.DataFrame) ([]store.Movement, int, error) {
	cols := utils.IndexColumns(&df)
	for _, c := range [][]string{{"Ano"}, {"Mes", "Mês"}, {"Natureza"}, {"Valor", "Valor_mov"}} {
		if err := requireColumn(cols, "movements", c...); err != nil {
			return nil, 0, err
		}
	}

	out := make([]store.Movement, 0, df.Nrow())
	skipped := 0
	for i := 0; i < df.Nrow(); i++ {
		m := DfRowToMovement(df, cols, i)
		if period.MonthKey(m.Month) == "" || m.Year == 0 {
			skipped++
			continue
		}
		out = append(out, m)
	}
	return out, skipped, nil
}

func PlannedRows(df dataframe.DataFrame) ([]store.PlannedRow, int, error) {
	cols := utils.IndexColumns(&df)
	if err := requireColumn(cols, "budget", "Plano", "Codigo_plano"); err != nil {
		return nil, 0, err
	}

	out := make([]store.PlannedRow, 0, df.Nrow())
	skipped := 0
	for i := 0; i < df.Nrow(); i++ {
		r := DfRowToPlannedRow(df, cols, i)
		if r.PlanCode == "" {
			skipped++
			continue
		}
		out = append(out, r)
	}
	return out, skipped, nil
}
