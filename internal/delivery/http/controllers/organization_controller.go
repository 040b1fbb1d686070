package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"attendancebook/internal/delivery/http/helpers"
	"attendancebook/internal/domain"
)

// StatusResponse is the data payload for delete endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

type OrganizationController struct {
	Logger  *slog.Logger
	Service domain.OrganizationService
}

func NewOrganizationController(logger *slog.Logger, svc domain.OrganizationService) *OrganizationController {
	return &OrganizationController{
		Logger:  logger,
		Service: svc,
	}
}

// OrganizationSuccessResponse is the success response envelope for endpoints returning one organization.
type OrganizationSuccessResponse struct {
	Data  *domain.Organization `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

// ListOrganizationsSuccessResponse is the success response envelope for GET /organizations (200).
type ListOrganizationsSuccessResponse struct {
	Data  []*domain.Organization `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// DeleteOrganizationSuccessResponse is the success response envelope for DELETE /organizations/{orgID} (200).
type DeleteOrganizationSuccessResponse struct {
	Data  StatusResponse    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// Create godoc
// @Summary Create an organization
// @Description Create a new organization. The id is server-generated; name is required (1-100 characters).
// @Tags organizations
// @Accept json
// @Produce json
// @Param organization body domain.CreateOrganizationInput true "Organization data"
// @Success 201 {object} controllers.OrganizationSuccessResponse "data contains the created organization"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations [post]
func (c *OrganizationController) Create(w http.ResponseWriter, r *http.Request) {
	var input domain.CreateOrganizationInput
	if !helpers.DecodeAndValidate(w, r, &input) {
		return
	}
	org, err := c.Service.Create(r.Context(), input)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, org)
}

// List godoc
// @Summary List organizations
// @Description Returns all organizations, newest first.
// @Tags organizations
// @Produce json
// @Success 200 {object} controllers.ListOrganizationsSuccessResponse "data is an array of organizations"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations [get]
func (c *OrganizationController) List(w http.ResponseWriter, r *http.Request) {
	orgs, err := c.Service.List(r.Context())
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if orgs == nil {
		orgs = []*domain.Organization{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, orgs)
}

// GetByID godoc
// @Summary Get an organization by ID
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} controllers.OrganizationSuccessResponse "data contains the organization"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID} [get]
func (c *OrganizationController) GetByID(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	org, err := c.Service.GetByID(r.Context(), orgID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "organization not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, org)
}

// Update godoc
// @Summary Update an organization
// @Description Updates name and/or description. Omitted fields are unchanged; the merged record is re-validated.
// @Tags organizations
// @Accept json
// @Produce json
// @Param orgID path string true "Organization ID"
// @Param body body domain.UpdateOrganizationInput true "Fields to update (all optional)"
// @Success 200 {object} controllers.OrganizationSuccessResponse "data contains the updated organization"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID} [patch]
func (c *OrganizationController) Update(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	var patch domain.UpdateOrganizationInput
	if !helpers.DecodeAndValidate(w, r, &patch) {
		return
	}
	org, err := c.Service.Update(r.Context(), orgID, patch)
	if err != nil {
		if ve, ok := domain.AsValidationError(err); ok {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, ve.Error())
			return
		}
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "organization not found")
			return
		}
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, org)
}

// Delete godoc
// @Summary Delete an organization
// @Description Deletes an organization and all of its groups, members, event dates, and attendance records.
// @Tags organizations
// @Produce json
// @Param orgID path string true "Organization ID"
// @Success 200 {object} controllers.DeleteOrganizationSuccessResponse "data contains status"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /organizations/{orgID} [delete]
func (c *OrganizationController) Delete(w http.ResponseWriter, r *http.Request) {
	orgID := r.PathValue("orgID")
	if orgID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing orgID")
		return
	}
	removed, err := c.Service.Delete(r.Context(), orgID)
	if err != nil {
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
		return
	}
	if !removed {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "organization not found")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, StatusResponse{Status: "deleted"})
}
