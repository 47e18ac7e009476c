package store

// Entry represents a 'dfc_analitica' ledger row.
type Entry struct {
	ID            int64    `db:"id"`
	Origin        string   `db:"origem_dfc"`
	SecondaryName string   `db:"nome_2"`
	PlanCode      string   `db:"codigo_plano"`
	PlanName      string   `db:"nome"`
	Month         int      `db:"mes"`
	Year          int      `db:"ano"`
	Amount        float64  `db:"valor_mov"`
	Nature        string   `db:"natureza"`
	MovedOn       NullTime `db:"dt_mov"`
	SettledOn     NullTime `db:"baixa"`
	Financial     string   `db:"financeiro"`
}

// Movement represents a 'movimentos_contas' row of the account ledger that
// opening balances are derived from.
type Movement struct {
	ID      int64   `db:"id"`
	Account string  `db:"conta"`
	Year    int     `db:"ano"`
	Month   int     `db:"mes"`
	Nature  string  `db:"natureza"`
	Amount  float64 `db:"valor"`
}

// MonthlyNet is the signed movement total of one month.
type MonthlyNet struct {
	Year  int     `db:"ano"`
	Month int     `db:"mes"`
	Net   float64 `db:"liquido"`
}

// PlannedRow represents an 'orcamento' row: one plan code of a department with
// its twelve planned monthly values.
type PlannedRow struct {
	ID         int64   `db:"id"`
	PlanCode   string  `db:"plano"`
	Name       string  `db:"nome"`
	Department string  `db:"departamento1"`
	January    float64 `db:"janeiro"`
	February   float64 `db:"fevereiro"`
	March      float64 `db:"marco"`
	April      float64 `db:"abril"`
	May        float64 `db:"maio"`
	June       float64 `db:"junho"`
	July       float64 `db:"julho"`
	August     float64 `db:"agosto"`
	September  float64 `db:"setembro"`
	October    float64 `db:"outubro"`
	November   float64 `db:"novembro"`
	December   float64 `db:"dezembro"`
}

// Months returns the planned values in calendar order.
func (p PlannedRow) Months() [12]float64 {
	return [12]float64{
		p.January, p.February, p.March, p.April, p.May, p.June,
		p.July, p.August, p.September, p.October, p.November, p.December,
	}
}

// SetMonth assigns the planned value of a 1-based month.
func (p *PlannedRow) SetMonth(month int, value float64) {
	fields := [12]*float64{
		&p.January, &p.February, &p.March, &p.April, &p.May, &p.June,
		&p.July, &p.August, &p.September, &p.October, &p.November, &p.December,
	}
	if month >= 1 && month <= 12 {
		*fields[month-1] = value
	}
}

// Department represents a 'departamentos' row.
type Department struct {
	ID   int64  `db:"id_dep" json:"Id_dep"`
	Name string `db:"nome_dep" json:"Nome_dep"`
}

// IngestionHistory represents an 'ingestion_history' row written by the ETL.
type IngestionHistory struct {
	ID          int64    `db:"id" json:"id"`
	BatchID     string   `db:"batch_id" json:"batch_id"`
	Dataset     string   `db:"dataset" json:"dataset"`
	SourceFile  string   `db:"source_file" json:"source_file"`
	TriggerType string   `db:"trigger_type" json:"trigger_type"`
	Status      string   `db:"status" json:"status"`
	RowsLoaded  int64    `db:"rows_loaded" json:"rows_loaded"`
	ProcessedAt NullTime `db:"processed_at" json:"processed_at"`
}
