package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/Dosada05/fitness-challenge/middleware"
	"github.com/Dosada05/fitness-challenge/services"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// Leaderboard serves GET /analytics/leaderboard?scope=global|team&team_id=N&limit=N.
func (h *AnalyticsHandler) Leaderboard(w http.ResponseWriter, r *http.Request) {
	scope := r.URL.Query().Get("scope")

	var teamID *int
	if v := queryInt(r, "team_id"); v > 0 {
		teamID = &v
	}

	rows, err := h.analyticsService.Leaderboard(r.Context(), scope, teamID, queryInt(r, "limit"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalyticsHandler) TeamLeaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.analyticsService.TeamLeaderboard(r.Context(), queryInt(r, "limit"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalyticsHandler) TeamTotal(w http.ResponseWriter, r *http.Request) {
	teamID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	total, err := h.analyticsService.TeamTotalPoints(r.Context(), teamID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"team_id":      teamID,
		"total_points": total,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalyticsHandler) SportLeaderboard(w http.ResponseWriter, r *http.Request) {
	sportID, err := urlParamInt(r, "id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	rows, err := h.analyticsService.SportLeaderboard(r.Context(), sportID, queryInt(r, "limit"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"leaderboard": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Demographics serves GET /analytics/demographics?dimension=gender|age_group|location.
func (h *AnalyticsHandler) Demographics(w http.ResponseWriter, r *http.Request) {
	dimension := r.URL.Query().Get("dimension")

	buckets, err := h.analyticsService.DemographicBreakdown(r.Context(), dimension)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	response := jsonResponse{
		"dimension": dimension,
		"buckets":   buckets,
	}

	if err := writeJSON(w, http.StatusOK, response, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MyTotal serves GET /analytics/me/total?from=YYYY-MM-DD&to=YYYY-MM-DD with
// inclusive, optional bounds.
func (h *AnalyticsHandler) MyTotal(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	from, err := queryDate(r, "from")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	to, err := queryDate(r, "to")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	total, err := h.analyticsService.UserTotalPoints(r.Context(), userID, from, to)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"total_points": total}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *AnalyticsHandler) MyWeeklyProgress(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, err.Error())
		return
	}

	rows, err := h.analyticsService.WeeklyProgress(r.Context(), userID, queryInt(r, "weeks"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"weeks": rows}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func queryDate(r *http.Request, name string) (*time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, errors.New(name + " must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
