package main

import (
	"net/http"
	"strconv"

	"github.com/farxc/dfc_dashboard/internal/report"
)

// reportQuery reads ano, view and status; bad values fall back to defaults.
func (app *application) reportQuery(r *http.Request) report.Query {
	q := r.URL.Query()
	view := q.Get("view")
	if view == "" {
		view = q.Get("periodo")
	}
	return report.ParseQuery(q.Get("ano"), view, q.Get("status"), app.clock())
}

func parseIntOrDefault(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return fallback
}
