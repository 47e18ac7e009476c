package main

import (
	"net/http"

	"github.com/farxc/dfc_dashboard/internal/store"
)

type yearRow struct {
	Year int `json:"Ano"`
}

// @Summary		Available years
// @Description	Distinct ledger years, newest first.
// @Tags			Lookup
// @Produce		json
// @Success		200	{array}		yearRow
// @Failure		500	{object}	response.ErrorResponse	"Failed to list years"
// @Router			/api/anos [get]
func (app *application) handleGetYears(w http.ResponseWriter, r *http.Request) {
	years, err := app.reports.Years(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list years: "+err.Error())
		return
	}

	rows := make([]yearRow, len(years))
	for i, y := range years {
		rows[i] = yearRow{Year: y}
	}

	if err := writeJSON(w, http.StatusOK, rows); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Departments
// @Tags			Lookup
// @Produce		json
// @Success		200	{array}		store.Department
// @Failure		500	{object}	response.ErrorResponse	"Failed to list departments"
// @Router			/api/departamentos [get]
func (app *application) handleGetDepartments(w http.ResponseWriter, r *http.Request) {
	deps, err := app.reports.Departments(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to list departments: "+err.Error())
		return
	}
	if deps == nil {
		deps = []store.Department{}
	}

	if err := writeJSON(w, http.StatusOK, deps); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
