package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendancebook/internal/delivery/http/helpers"
	"attendancebook/internal/domain"
)

type GroupController struct {
	Logger  *slog.Logger
	Service domain.GroupService
}

func NewGroupController(logger *slog.Logger, svc domain.GroupService) *GroupController {
	return &GroupController{
		Logger:  logger,
		Service: svc,
	}
}

// GroupSuccessResponse is the success response envelope for endpoints returning one group.
type GroupSuccessResponse struct {
	Data  *domain.Group     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListGroupsSuccessResponse is the success response envelope for GET /organizations/{orgID}/groups (200).
type ListGroupsSuccessResponse struct {
	Data  []*domain.Group   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// DeleteGroupSuccessResponse is the success response envelope for DELETE /organizations/{orgID}/groups/{groupID} (200).
type DeleteGroupSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create a group
// @Description Create a group within an organization. Name is required (1-50 characters); order must be non-negative; color, when set, is a hex code like #ff0000.
// @Tags groups
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param group body domain.CreateGroupInput true "Group data"
// @Success 201 {object} controllers.GroupSuccessResponse "data contains the created group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups [post]
func (c *GroupController) Create(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var input domain.CreateGroupInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	group, err := c.Service.Create(r.Context(), orgID, input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, group)
}

// List godoc
// @Summary List groups
// @Description Returns the organization's groups sorted by display order.
// @Tags groups
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} controllers.ListGroupsSuccessResponse "data is an array of groups"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups [get]
func (c *GroupController) List(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	groups, err := c.Service.List(r.Context(), orgID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if groups == nil {
		groups = []*domain.Group{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, groups)
}

// GetByID godoc
// @Summary Get a group by ID
// @Tags groups
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param groupID path string true "Group ID"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the group"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups/{groupID} [get]
func (c *GroupController) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	groupID := r.PathValue("groupID")
	if orgID == "" || groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or groupID")
		return
	}
	group, err := c.Service.GetByID(r.Context(), orgID, groupID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "group not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// Update godoc
// @Summary Update a group
// @Description Updates name, order, and/or color. Omitted fields are unchanged; the merged record is re-validated.
// @Tags groups
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param groupID path string true "Group ID"
// @Param body body domain.UpdateGroupInput true "Fields to update (all optional)"
// @Success 200 {object} controllers.GroupSuccessResponse "data contains the updated group"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups/{groupID} [patch]
func (c *GroupController) Update(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	groupID := r.PathValue("groupID")
	if orgID == "" || groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or groupID")
		return
	}
	var patch domain.UpdateGroupInput
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	group, err := c.Service.Update(r.Context(), orgID, groupID, patch)
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
	helpers.WriteJSONSuccess(w, http.StatusOK, group)
}

// Delete godoc
// @Summary Delete a group
// @Description Deletes a group together with its members and their attendance records.
// @Tags groups
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param groupID path string true "Group ID"
// @Success 200 {object} controllers.DeleteGroupSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID}/groups/{groupID} [delete]
func (c *GroupController) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	groupID := r.PathValue("groupID")
	if orgID == "" || groupID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID or groupID")
		return
	}
	removed, err := c.Service.Delete(r.Context(), orgID, groupID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "group not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
