package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendancebook/internal/delivery/http/helpers"
	"attendancebook/internal/domain"
)

type MemberController struct {
	Logger  *slog.Logger
	Service domain.MemberService
}

func NewMemberController(logger *slog.Logger, svc domain.MemberService) *MemberController {
	return &MemberController{
		Logger:  logger,
		Service: svc,
	}
}

// MemberSuccessResponse is the success response envelope for endpoints returning one member.
type MemberSuccessResponse struct {
	Data  *domain.Member    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListMembersSuccessResponse is the success response envelope for member list endpoints (200).
type ListMembersSuccessResponse struct {
	Data  []*domain.Member  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteMemberSuccessResponse is the success response envelope for DELETE /organizations/{orgID}/members/{memberID} (200).
type DeleteMemberSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create a member
// @Description Create a member within an organization. Name (1-50 characters) and an existing group_id are required; email is optional and used for event reminders.
// @Tags members
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param member body domain.CreateMemberInput true "Member data"
// @Success 201 {object} controllers.MemberSuccessResponse "data contains the created member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found (group does not exist)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members [post]
func (c *MemberController) Create(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var input domain.CreateMemberInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	member, err := c.Service.Create(r.Context(), orgID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "group not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, member)
}

// List godoc
// @Summary List members
// @Description Returns all members of the organization.
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} controllers.ListMembersSuccessResponse "data is an array of members"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members [get]
func (c *MemberController) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	members, err := c.Service.List(r.Context(), orgID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// ListByGroup godoc
// @Summary List members of a group
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param groupID path string true "Group ID"
// @Success 200 {object} controllers.ListMembersSuccessResponse "data is an array of members"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups/{groupID}/members [get]
func (c *MemberController) ListByGroup(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	groupID := r.PathValue("groupID")
	if orgID == "" || groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or groupID")
		return
	}
	members, err := c.Service.ListByGroup(r.Context(), orgID, groupID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if members == nil {
		members = []*domain.Member{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, members)
}

// GetByID godoc
// @Summary Get a member by ID
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param memberID path string true "Member ID"
// @Success 200 {object} controllers.MemberSuccessResponse "data contains the member"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members/{memberID} [get]
func (c *MemberController) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	memberID := r.PathValue("memberID")
	if orgID == "" || memberID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or memberID")
		return
	}
	member, err := c.Service.GetByID(r.Context(), orgID, memberID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// Update godoc
// @Summary Update a member
// @Description Updates name and/or email. Omitted fields are unchanged; the merged record is re-validated.
// @Tags members
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param memberID path string true "Member ID"
// @Param body body domain.UpdateMemberInput true "Fields to update (all optional)"
// @Success 200 {object} controllers.MemberSuccessResponse "data contains the updated member"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members/{memberID} [patch]
func (c *MemberController) Update(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	memberID := r.PathValue("memberID")
	if orgID == "" || memberID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or memberID")
		return
	}
	var patch domain.UpdateMemberInput
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	member, err := c.Service.Update(r.Context(), orgID, memberID, patch)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, member)
}

// Delete godoc
// @Summary Delete a member
// @Description Deletes a member. Attendance records of the member are kept and ignored by the summaries.
// @Tags members
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param memberID path string true "Member ID"
// @Success 200 {object} controllers.DeleteMemberSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/members/{memberID} [delete]
func (c *MemberController) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	memberID := r.PathValue("memberID")
	if orgID == "" || memberID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or memberID")
		return
	}
	removed, err := c.Service.Delete(r.Context(), orgID, memberID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "member not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
