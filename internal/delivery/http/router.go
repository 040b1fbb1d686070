package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"attendancebook/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	orgController *controllers.OrganizationController,
	groupController *controllers.GroupController,
	memberController *controllers.MemberController,
	eventDateController *controllers.EventDateController,
	attendanceController *controllers.AttendanceController,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Organizations
	mux.HandleFunc("POST /organizations", orgController.Create)
	mux.HandleFunc("GET /organizations", orgController.List)
	mux.HandleFunc("GET /organizations/{orgID}", orgController.GetByID)
	mux.HandleFunc("PATCH /organizations/{orgID}", orgController.Update)
	mux.HandleFunc("DELETE /organizations/{orgID}", orgController.Delete)

	// Groups
	mux.HandleFunc("POST /organizations/{orgID}/groups", groupController.Create)
	mux.HandleFunc("GET /organizations/{orgID}/groups", groupController.List)
	mux.HandleFunc("GET /organizations/{orgID}/groups/{groupID}", groupController.GetByID)
	mux.HandleFunc("PATCH /organizations/{orgID}/groups/{groupID}", groupController.Update)
	mux.HandleFunc("DELETE /organizations/{orgID}/groups/{groupID}", groupController.Delete)

	// Members
	mux.HandleFunc("POST /organizations/{orgID}/members", memberController.Create)
	mux.HandleFunc("GET /organizations/{orgID}/members", memberController.List)
	mux.HandleFunc("GET /organizations/{orgID}/groups/{groupID}/members", memberController.ListByGroup)
	mux.HandleFunc("GET /organizations/{orgID}/members/{memberID}", memberController.GetByID)
	mux.HandleFunc("PATCH /organizations/{orgID}/members/{memberID}", memberController.Update)
	mux.HandleFunc("DELETE /organizations/{orgID}/members/{memberID}", memberController.Delete)

	// Event dates
	mux.HandleFunc("POST /organizations/{orgID}/event-dates", eventDateController.Create)
	mux.HandleFunc("GET /organizations/{orgID}/event-dates", eventDateController.List)
	mux.HandleFunc("GET /organizations/{orgID}/event-dates/{eventDateID}", eventDateController.GetByID)
	mux.HandleFunc("PATCH /organizations/{orgID}/event-dates/{eventDateID}", eventDateController.Update)
	mux.HandleFunc("DELETE /organizations/{orgID}/event-dates/{eventDateID}", eventDateController.Delete)

	// Attendances
	mux.HandleFunc("GET /organizations/{orgID}/attendances", attendanceController.List)
	mux.HandleFunc("PUT /organizations/{orgID}/attendances", attendanceController.Upsert)
	mux.HandleFunc("POST /organizations/{orgID}/attendances/bulk", attendanceController.BulkUpsert)
	mux.HandleFunc("DELETE /organizations/{orgID}/attendances/{attendanceID}", attendanceController.Delete)
	mux.HandleFunc("GET /organizations/{orgID}/event-dates/{eventDateID}/summary", attendanceController.EventSummary)
	mux.HandleFunc("GET /organizations/{orgID}/event-dates/{eventDateID}/summary/total", attendanceController.EventTotalSummary)
	mux.HandleFunc("GET /organizations/{orgID}/groups/{groupID}/event-dates/{eventDateID}/attendances", attendanceController.GroupMemberAttendances)
	mux.HandleFunc("POST /organizations/{orgID}/event-dates/{eventDateID}/reminders", attendanceController.SendReminders)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
