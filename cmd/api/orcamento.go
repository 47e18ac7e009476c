package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"

	"github.com/farxc/dfc_dashboard/internal/budget"
	"github.com/farxc/dfc_dashboard/internal/report"
	"github.com/gocarina/gocsv"
)

func (app *application) budgetQuery(r *http.Request) report.BudgetQuery {
	q := r.URL.Query()
	return report.BudgetQuery{
		Year:       report.ParseYear(q.Get("ano"), app.clock()),
		Department: q.Get("departamento"),
	}
}

// @Summary		Budget versus realized
// @Description	Planned budget per department merged with the realized ledger amounts.
// @Tags			Budget
// @Produce		json
// @Param			ano				query		int		false	"Year, defaults to the current one"
// @Param			departamento	query		string	false	"Restrict to one department"
// @Success		200				{array}		budget.Group
// @Failure		500				{object}	response.ErrorResponse	"Failed to build the budget"
// @Router			/api/orcamento [get]
func (app *application) handleGetBudget(w http.ResponseWriter, r *http.Request) {
	q := app.budgetQuery(r)

	groups, err := app.reports.Budget(r.Context(), q)
	if err != nil {
		app.logger.Error("Budget", "failed to build budget for %d: %v", q.Year, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to build budget: "+err.Error())
		return
	}
	if groups == nil {
		groups = []budget.Group{}
	}

	if err := writeJSON(w, http.StatusOK, groups); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Budget CSV export
// @Description	The budget of a year, one line per item and month, ';' separated.
// @Tags			Budget
// @Produce		text/csv
// @Param			ano				query	int		false	"Year, defaults to the current one"
// @Param			departamento	query	string	false	"Restrict to one department"
// @Success		200
// @Failure		500	{object}	response.ErrorResponse	"Failed to build the budget"
// @Router			/api/orcamento/export [get]
func (app *application) handleExportBudget(w http.ResponseWriter, r *http.Request) {
	q := app.budgetQuery(r)

	groups, err := app.reports.Budget(r.Context(), q)
	if err != nil {
		app.logger.Error("Budget", "failed to export budget for %d: %v", q.Year, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to build budget: "+err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=orcamento_%d.csv", q.Year))
	w.WriteHeader(http.StatusOK)

	if err := writeBudgetCSV(w, budget.Lines(groups)); err != nil {
		app.logger.Error("Budget", "failed to write budget csv: %v", err)
	}
}

func writeBudgetCSV(out io.Writer, lines []budget.Line) error {
	csvWriter := csv.NewWriter(out)
	csvWriter.Comma = ';'

	return gocsv.MarshalCSV(lines, csvWriter)
}
