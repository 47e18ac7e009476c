package main

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/farxc/dfc_dashboard/internal/response"
	"github.com/farxc/dfc_dashboard/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type GetIngestionHistoryResponse = response.APIResponse[[]store.IngestionHistory]
type CreateIngestionResponse = response.APIResponse[*store.IngestionHistory]

var datasets = map[string]bool{
	store.DatasetLedger:    true,
	store.DatasetMovements: true,
	store.DatasetBudget:    true,
}

var statuses = map[string]bool{
	store.StatusInProgress: true,
	store.StatusSuccess:    true,
	store.StatusFailure:    true,
}

// @Summary		Get ingestion history
// @Description	Get a list of the latest ingestion records.
// @Tags			Ingestion
// @Produce		json
// @Param			limit	query		int							false	"Limit the number of results"	default(10)
// @Success		200		{object}	GetIngestionHistoryResponse	"Successfully retrieved latest ingestion records"
// @Failure		500		{object}	response.ErrorResponse		"Failed to get ingestion history"
// @Router			/api/ingestion/history [get]
func (app *application) handleGetIngestionHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseIntOrDefault(r.URL.Query().Get("limit"), 10)

	ctx := r.Context()
	data, err := app.store.IngestionHistory.GetLatest(ctx, limit)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to get ingestion history: "+err.Error())
		return
	}

	response := &GetIngestionHistoryResponse{
		Success: true,
		Data:    data,
		Message: "Successfully retrieved latest ingestion records",
	}

	if err := writeJSON(w, http.StatusOK, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Create ingestion record
// @Description	Creates a new ingestion record with in_progress status, for loads run outside cmd/etl.
// @Tags			Ingestion
// @Accept			json
// @Produce		json
// @Param			ingestion	body		object{dataset:string,source_file:string,trigger_type:string}	true	"Ingestion record details"
// @Success		201			{object}	CreateIngestionResponse											"Ingestion record initialized"
// @Failure		400			{object}	response.ErrorResponse											"Invalid request payload or missing fields"
// @Failure		500			{object}	response.ErrorResponse											"Failed to create ingestion record"
// @Router			/api/ingestion [post]
func (app *application) handleCreateIngestion(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Dataset     string `json:"dataset"`
		SourceFile  string `json:"source_file"`
		TriggerType string `json:"trigger_type"`
	}

	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	if !datasets[input.Dataset] {
		writeJSONError(w, http.StatusBadRequest, "dataset must be one of ledger, movements, budget")
		return
	}
	if input.TriggerType == "" {
		input.TriggerType = store.TriggerTypeManual
	}

	history := &store.IngestionHistory{
		BatchID:     uuid.NewString(),
		Dataset:     input.Dataset,
		SourceFile:  input.SourceFile,
		TriggerType: input.TriggerType,
		Status:      store.StatusInProgress,
	}

	ctx := r.Context()
	if err := app.store.IngestionHistory.InsertIngestionHistory(ctx, history); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to create ingestion record: "+err.Error())
		return
	}

	response := &CreateIngestionResponse{
		Success: true,
		Data:    history,
		Message: "Ingestion record initialized with in_progress status",
	}

	if err := writeJSON(w, http.StatusCreated, response); err != nil {
		writeJSONError(w, http.StatusInternalServerError, "failed to write response")
	}
}

// @Summary		Update ingestion status
// @Tags			Ingestion
// @Accept			json
// @Produce		json
// @Param			id		path		int										true	"Ingestion id"
// @Param			status	body		object{status:string,rows_loaded:int}	true	"New status"
// @Success		204
// @Failure		400		{object}	response.ErrorResponse	"Invalid id or status"
// @Failure		404		{object}	response.ErrorResponse	"Unknown ingestion id"
// @Failure		500		{object}	response.ErrorResponse	"Failed to update ingestion record"
// @Router			/api/ingestion/{id}/status [patch]
func (app *application) handleUpdateIngestionStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid ingestion id")
		return
	}

	var input struct {
		Status     string `json:"status"`
		RowsLoaded int64  `json:"rows_loaded"`
	}
	if err := readJSON(w, r, &input); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !statuses[input.Status] {
		writeJSONError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := app.store.IngestionHistory.UpdateIngestionStatus(r.Context(), id, input.Status, input.RowsLoaded); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "ingestion record not found")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "failed to update ingestion record: "+err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
