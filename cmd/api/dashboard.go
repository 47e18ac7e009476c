package main

import (
	"net/http"
)

// @Summary		DFC dashboard
// @Description	Cash-flow table, chart and cards of a year.
// @Tags			Dashboard
// @Produce		json
// @Param			ano		query		int		false	"Year, defaults to the current one"
// @Param			view	query		string	false	"mensal, trimestral or anual"	default(mensal)
// @Param			status	query		string	false	"todos, realizado or aberto"	default(todos)
// @Success		200		{object}	report.Dashboard
// @Failure		500		{object}	response.ErrorResponse	"Failed to build the dashboard"
// @Router			/api/dashboard [get]
func (app *application) handleGetDashboard(w http.ResponseWriter, r *http.Request) {
	q := app.reportQuery(r)

	data, err := app.reports.Dashboard(r.Context(), q)
	if err != nil {
		app.logger.Error("Dashboard", "failed to build dashboard for %d: %v", q.Year, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to build dashboard: "+err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Forecast table
// @Description	Open receivables and payables backed by a financial document.
// @Tags			Dashboard
// @Produce		json
// @Param			ano		query		int		false	"Year, defaults to the current one"
// @Param			view	query		string	false	"mensal, trimestral or anual"	default(mensal)
// @Success		200		{object}	report.Forecast
// @Failure		500		{object}	response.ErrorResponse	"Failed to build the forecast"
// @Router			/api/financeiro-dashboard [get]
func (app *application) handleGetForecast(w http.ResponseWriter, r *http.Request) {
	q := app.reportQuery(r)

	data, err := app.reports.Forecast(r.Context(), q)
	if err != nil {
		app.logger.Error("Forecast", "failed to build forecast for %d: %v", q.Year, err)
		writeJSONError(w, http.StatusInternalServerError, "failed to build forecast: "+err.Error())
		return
	}

	if err := writeJSON(w, http.StatusOK, data); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}
