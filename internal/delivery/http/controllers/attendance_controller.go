package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendancebook/internal/delivery/http/helpers"
	"attendancebook/internal/domain"
)

type AttendanceController struct {
	Logger       *slog.Logger
	Service      domain.AttendanceService
	EmailService domain.EmailService
}

func NewAttendanceController(logger *slog.Logger, svc domain.AttendanceService, emailSvc domain.EmailService) *AttendanceController {
	return &AttendanceController{
		Logger:       logger,
		Service:      svc,
		EmailService: emailSvc,
	}
}

// BulkUpsertRequest is the request body for POST /organizations/{orgID}/attendances/bulk.
type BulkUpsertRequest struct {
	Records []domain.UpsertAttendanceInput `json:"records"`
}

// Validate implements Validator.
func (b BulkUpsertRequest) Validate() []string {
	if len(b.Records) == 0 {
		return []string{"records is required"}
	}
	return nil
}

// AttendanceSuccessResponse is the success response envelope for endpoints returning one attendance record.
type AttendanceSuccessResponse struct {
	Data  *domain.Attendance `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListAttendancesSuccessResponse is the success response envelope for attendance list endpoints (200).
type ListAttendancesSuccessResponse struct {
	Data  []*domain.Attendance `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// BulkUpsertSuccessResponse is the success response envelope for POST /organizations/{orgID}/attendances/bulk (200).
type BulkUpsertSuccessResponse struct {
	Data  *domain.BulkUpsertResult `json:"data"`
	Error *helpers.APIError        `json:"error"`
}

// EventSummarySuccessResponse is the success response envelope for the per-group event summary (200).
type EventSummarySuccessResponse struct {
	Data  []*domain.GroupSummary `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// EventTotalSummarySuccessResponse is the success response envelope for the event total summary (200).
type EventTotalSummarySuccessResponse struct {
	Data  *domain.EventTotalSummary `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

// GroupMemberAttendancesSuccessResponse is the success response envelope for the group member detail view (200).
type GroupMemberAttendancesSuccessResponse struct {
	Data  []*domain.MemberAttendance `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// RemindersSuccessResponse is the success response envelope for POST /organizations/{orgID}/event-dates/{eventDateID}/reminders (200).
type RemindersSuccessResponse struct {
	Data  *domain.ReminderResult `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// DeleteAttendanceSuccessResponse is the success response envelope for DELETE /organizations/{orgID}/attendances/{attendanceID} (200).
type DeleteAttendanceSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// List godoc
// @Summary List attendance records
// @Description Returns every attendance record of the organization. Filter by event date with the event_date_id query parameter.
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param event_date_id query string false "Only records for this event date"
// @Success 200 {object} controllers.ListAttendancesSuccessResponse "data is an array of attendance records"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/attendances [get]
func (c *AttendanceController) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var atts []*domain.Attendance
	var err error
	if eventDateID := r.URL.Query().Get("event_date_id"); eventDateID != "" {
		atts, err = c.Service.ListByEvent(r.Context(), orgID, eventDateID)
	} else {
		atts, err = c.Service.List(r.Context(), orgID)
	}
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if atts == nil {
		atts = []*domain.Attendance{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, atts)
}

// Upsert godoc
// @Summary Record an attendance response
// @Description Records a member's response for an event date. One record per (event date, member) pair is kept; repeated calls overwrite the previous response. Returns 201 when a new record was created, 200 when an existing one was updated.
// @Tags attendances
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param attendance body domain.UpsertAttendanceInput true "Response data (status is one of the attendance marks)"
// @Success 200 {object} controllers.AttendanceSuccessResponse "data contains the updated record"
// @Success 201 {object} controllers.AttendanceSuccessResponse "data contains the created record"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/attendances [put]
func (c *AttendanceController) Upsert(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var input domain.UpsertAttendanceInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	att, created, err := c.Service.Upsert(r.Context(), orgID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	helpers.WriteJSONSuccess(w, status, att)
}

// BulkUpsert godoc
// @Summary Record attendance responses in bulk
// @Description Applies many responses in one call and one storage write. Invalid records are reported in the failed list without aborting the rest.
// @Tags attendances
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param body body controllers.BulkUpsertRequest true "Records to apply"
// @Success 200 {object} controllers.BulkUpsertSuccessResponse "data contains created, updated, and failed records"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/attendances/bulk [post]
func (c *AttendanceController) BulkUpsert(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var req BulkUpsertRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	result, err := c.Service.BulkUpsert(r.Context(), orgID, req.Records)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Delete godoc
// @Summary Delete an attendance record
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param attendanceID path string true "Attendance record ID"
// @Success 200 {object} controllers.DeleteAttendanceSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/attendances/{attendanceID} [delete]
func (c *AttendanceController) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	attendanceID := r.PathValue("attendanceID")
	if orgID == "" || attendanceID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or attendanceID")
		return
	}
	removed, err := c.Service.Delete(r.Context(), orgID, attendanceID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "attendance record not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}

// EventSummary godoc
// @Summary Per-group response counts for an event date
// @Description Returns one row per group that has at least one response, in group display order, with counts per status.
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.EventSummarySuccessResponse "data is an array of group summaries"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID}/summary [get]
func (c *AttendanceController) EventSummary(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	summaries, err := c.Service.EventSummary(r.Context(), orgID, eventDateID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if summaries == nil {
		summaries = []*domain.GroupSummary{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summaries)
}

// EventTotalSummary godoc
// @Summary Total response counts for an event date
// @Description Returns counts per status over distinct responding members of the whole organization.
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.EventTotalSummarySuccessResponse "data contains the totals"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID}/summary/total [get]
func (c *AttendanceController) EventTotalSummary(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	summary, err := c.Service.EventTotalSummary(r.Context(), orgID, eventDateID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, summary)
}

// GroupMemberAttendances godoc
// @Summary Per-member responses of a group for an event date
// @Description Returns one row per group member sorted by name; members without a response have a null status.
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param groupID path string true "Group ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.GroupMemberAttendancesSuccessResponse "data is an array of member rows"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups/{groupID}/event-dates/{eventDateID}/attendances [get]
func (c *AttendanceController) GroupMemberAttendances(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	groupID := r.PathValue("groupID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || groupID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID, groupID, or eventDateID")
		return
	}
	rows, err := c.Service.GroupMemberAttendances(r.Context(), orgID, groupID, eventDateID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if rows == nil {
		rows = []*domain.MemberAttendance{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, rows)
}

// SendReminders godoc
// @Summary Send reminder emails for an event date
// @Description Emails every member who has an email address and no response for the event date yet. Members without an address are counted as skipped.
// @Tags attendances
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param eventDateID path string true "Event date ID"
// @Success 200 {object} controllers.RemindersSuccessResponse "data contains sent, skipped, and failed counts"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/event-dates/{eventDateID}/reminders [post]
func (c *AttendanceController) SendReminders(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	eventDateID := r.PathValue("eventDateID")
	if orgID == "" || eventDateID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or eventDateID")
		return
	}
	result, err := c.EmailService.SendEventReminders(r.Context(), orgID, eventDateID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "organization or event date not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}
