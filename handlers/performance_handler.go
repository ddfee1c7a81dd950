package handlers

import (
	"net/http"

	"github.com/Dosada05/fitness-challenge/middleware"
	"github.com/Dosada05/fitness-challenge/services"
)

type PerformanceHandler struct {
	performanceService services.PerformanceService
}

func NewPerformanceHandler(performanceService services.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceService: performanceService}
}

func (h *PerformanceHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	var input services.RecordPerformanceInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	perf, err := h.performanceService.Record(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"performance": perf}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *PerformanceHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	limit := queryInt(r, "limit")
	offset := queryInt(r, "offset")

	perfs, err := h.performanceService.History(r.Context(), userID, limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"performances": perfs,
		"limit":        limit,
		"offset":       offset,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
