package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"eventrsvp/internal/delivery/http/helpers"
	"eventrsvp/internal/domain"
)

// CreateRSVPRequest is the request body for POST /rsvp.
type CreateRSVPRequest struct {
	EventID  string `json:"event_id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Response string `json:"response"`
}

// Validate implements Validator.
func (c CreateRSVPRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	if strings.TrimSpace(c.FullName) == "" {
		errs = append(errs, "full_name is required")
	}
	if strings.TrimSpace(c.Email) == "" {
		errs = append(errs, "email is required")
	}
	if strings.TrimSpace(c.Response) == "" {
		errs = append(errs, "response is required")
	}
	return errs
}

// CreateRSVPResponse is the response body for POST /rsvp.
type CreateRSVPResponse struct {
	Status domain.RSVPOutcome `json:"status"`
}

type RSVPController struct {
	Logger  *slog.Logger
	Service domain.RSVPService
}

func NewRSVPController(logger *slog.Logger, svc domain.RSVPService) *RSVPController {
	return &RSVPController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateRSVP godoc
// @Summary Record an RSVP
// @Description Records one Yes/No decision per (event_id, email). A repeated submission for the same pair is rejected with DUPLICATE_RSVP and changes nothing, so clients may retry safely.
// @Tags rsvp
// @Accept json
// @Produce json
// @Param body body CreateRSVPRequest true "RSVP"
// @Success 200 {object} helpers.APIResponse "data.status: Recorded"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or DUPLICATE_RSVP"
// @Failure 503 {object} helpers.APIResponse "error.code: service_unavailable"
// @Router /rsvp [post]
func (c *RSVPController) CreateRSVP(w http.ResponseWriter, r *http.Request) {
	var req CreateRSVPRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	outcome, err := c.Service.RecordRSVP(r.Context(), req.EventID, req.FullName, req.Email, domain.Response(req.Response))
	if err != nil {
		helpers.WriteDomainError(w, r, c.Logger, err)
		return
	}
	if outcome == domain.OutcomeDuplicateRejected {
		helpers.WriteDomainError(w, r, c.Logger, domain.ErrDuplicateRSVP)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, CreateRSVPResponse{Status: outcome})
}
