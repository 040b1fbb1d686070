package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendancebook/internal/delivery/http/helpers"
	"attendancebook/internal/domain"
)

type EventDateController struct {
	Logger  *slog.Logger
	Service domain.EventDateService
}

func NewEventDateController(logger *slog.Logger, svc domain.EventDateService) *EventDateController {
	return &EventDateController{
		Logger:  logger,
		Service: svc,
	}
}

// EventDateSuccessResponse is the success response envelope for endpoints returning one event date.
type EventDateSuccessResponse struct {
	Data  *domain.EventDate `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListEventDatesSuccessResponse is the success response envelope for GET /organizations/{orgID}/event-dates (200).
type ListEventDatesSuccessResponse struct {
	Data  []*domain.EventDate `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// DeleteEventDateSuccessResponse is the success response envelope for DELETE /organizations/{orgID}/event-dates/{eventDateID} (200).
type DeleteEventDateSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create an event date
// @Description Create an event date within an organization. Date must be YYYY-MM-DD; title is required (1-100 characters); location is optional.
// @Tags event-dates
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDate body domain.CreateEventDateInput true "Event date data"
// @Success 201 {object} controllers.EventDateSuccessResponse "data contains the created event date"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates [post]
func (c *EventDateController) Create(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var input domain.CreateEventDateInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	eventDate, err := c.Service.Create(r.Context(), orgID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, eventDate)
}

// List godoc
// @Summary List event dates
// @Description Returns the organization's event dates in chronological order.
// @Tags event-dates
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} controllers.ListEventDatesSuccessResponse "data is an array of event dates"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates [get]
func (c *EventDateController) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	eventDates, err := c.Service.List(r.Context(), orgID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if eventDates == nil {
		eventDates = []*domain.EventDate{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, eventDates)
}

// GetByID godoc
// @Summary Get an event date by ID
// @Tags event-dates
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.EventDateSuccessResponse "data contains the event date"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID} [get]
func (c *EventDateController) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	eventDate, err := c.Service.GetByID(r.Context(), orgID, eventDateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event date not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, eventDate)
}

// Update godoc
// @Summary Update an event date
// @Description Updates date, title, and/or location. Omitted fields are unchanged; the merged record is re-validated.
// @Tags event-dates
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Param body body domain.UpdateEventDateInput true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventDateSuccessResponse "data contains the updated event date"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID} [patch]
func (c *EventDateController) Update(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	var patch domain.UpdateEventDateInput
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	eventDate, err := c.Service.Update(r.Context(), orgID, eventDateID, patch)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event date not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, eventDate)
}

// Delete godoc
// @Summary Delete an event date
// @Tags event-dates
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.DeleteEventDateSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID} [delete]
func (c *EventDateController) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	removed, err := c.Service.Delete(r.Context(), orgID, eventDateID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event date not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
