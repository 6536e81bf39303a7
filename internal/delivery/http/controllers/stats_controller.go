package controllers

import (
	"log/slog"
	"net/http"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// AttendeeResponse is one entry of GET /attendees/{eventID}. Timestamp is epoch milliseconds.
type AttendeeResponse struct {
	FullName  string `json:"full_name"`
	Email     string `json:"email"`
	Response  string `json:"response"`
	Timestamp int64  `json:"timestamp"`
}

type StatsController struct {
	Logger  *slog.Logger
	Service domain.StatsService
}

func NewStatsController(logger *slog.Logger, svc domain.StatsService) *StatsController {
	return &StatsController{
		Logger:  logger,
		Service: svc,
	}
}

// GetCounts godoc
// @Summary Get RSVP counts
// @Description Returns the Yes and No tallies for an event. Unknown events report zero for both.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Success 200 {object} helpers.APIResponse "data: {Yes, No}"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /stats/{eventID} [get]
func (c *StatsController) GetCounts(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	counts, err := c.Service.GetCounts(r.Context(), eventID)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, counts)
}

// ListAttendees godoc
// @Summary List attendees
// @Description Returns every recorded RSVP for an event ordered by submission time, optionally filtered by response.
// @Tags stats
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID"
// @Param response query string false "Only entries with this response (e.g. Yes, No)"
// @Success 200 {object} helpers.APIResponse "data: []AttendeeResponse"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /attendees/{eventID} [get]
func (c *StatsController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	filter := domain.AttendeeFilter{Response: domain.Response(r.URL.Query().Get("response"))}
	records, err := c.Service.ListAttendees(r.Context(), eventID, filter)
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	out := make([]AttendeeResponse, len(records))
	for i, rec := range records {
		out[i] = AttendeeResponse{
			FullName:  rec.FullName,
			Email:     rec.Email,
			Response:  string(rec.Response),
			Timestamp: rec.SubmittedAt.UnixMilli(),
		}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, out)
}
