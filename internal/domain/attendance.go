package domain

import (
	"context"
	"time"
)

// AttendanceStatus is one member's response to one event.
type AttendanceStatus string

const (
	StatusAttending    AttendanceStatus = "◯"
	StatusMaybe        AttendanceStatus = "△"
	StatusNotAttending AttendanceStatus = "✗"
)

// Valid reports whether s is one of the three known statuses.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusAttending, StatusMaybe, StatusNotAttending:
		return true
	}
	return false
}

// Attendance is one member's response to one event date. Exactly one record
// per (event date, member) pair is authoritative; duplicates are collapsed to
// the most recently created one on upsert.
// swagger:model Attendance
type Attendance struct {
	ID             string           `json:"id"`
	OrganizationID string           `json:"organization_id"`
	EventDateID    string           `json:"event_date_id"`
	MemberID       string           `json:"member_id"`
	Status         AttendanceStatus `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
}

// Validate checks the full record.
func (a *Attendance) Validate() error {
	ve := &ValidationError{}
	if a.ID == "" {
		ve.add("id", "is required")
	}
	if a.OrganizationID == "" {
		ve.add("organization_id", "is required")
	}
	if a.EventDateID == "" {
		ve.add("event_date_id", "is required")
	}
	if a.MemberID == "" {
		ve.add("member_id", "is required")
	}
	if !a.Status.Valid() {
		ve.add("status", "must be one of ◯, △, ✗")
	}
	return ve.errOrNil()
}

// CreateAttendanceInput is the validated input for creating an attendance record.
type CreateAttendanceInput struct {
	EventDateID string           `json:"event_date_id"`
	MemberID    string           `json:"member_id"`
	Status      AttendanceStatus `json:"status"`
}

// Validate reports every constraint violation.
func (in *CreateAttendanceInput) Validate() error {
	ve := &ValidationError{}
	if in.EventDateID == "" {
		ve.add("event_date_id", "is required")
	}
	if in.MemberID == "" {
		ve.add("member_id", "is required")
	}
	if !in.Status.Valid() {
		ve.add("status", "must be one of ◯, △, ✗")
	}
	return ve.errOrNil()
}

// UpsertAttendanceInput identifies a response by its natural key
// (event date, member) plus the status to record.
type UpsertAttendanceInput struct {
	EventDateID string           `json:"event_date_id"`
	MemberID    string           `json:"member_id"`
	Status      AttendanceStatus `json:"status"`
}

// Validate reports every constraint violation.
func (in *UpsertAttendanceInput) Validate() error {
	ve := &ValidationError{}
	if in.EventDateID == "" {
		ve.add("event_date_id", "is required")
	}
	if in.MemberID == "" {
		ve.add("member_id", "is required")
	}
	if !in.Status.Valid() {
		ve.add("status", "must be one of ◯, △, ✗")
	}
	return ve.errOrNil()
}

// GroupSummary is the per-group status breakdown for one event date.
// swagger:model GroupSummary
type GroupSummary struct {
	GroupID      string `json:"group_id"`
	GroupName    string `json:"group_name"`
	Attending    int    `json:"attending"`
	Maybe        int    `json:"maybe"`
	NotAttending int    `json:"not_attending"`
	Total        int    `json:"total"`
}

// EventTotalSummary is the distinct-by-member status breakdown for one event date.
// swagger:model EventTotalSummary
type EventTotalSummary struct {
	Attending      int `json:"attending"`
	Maybe          int `json:"maybe"`
	NotAttending   int `json:"not_attending"`
	TotalResponded int `json:"total_responded"`
}

// MemberAttendance joins a group member against one event's attendance
// records. Status is nil and HasRegistered false for members who have not
// responded.
// swagger:model MemberAttendance
type MemberAttendance struct {
	MemberID      string            `json:"member_id"`
	MemberName    string            `json:"member_name"`
	Status        *AttendanceStatus `json:"status"`
	HasRegistered bool              `json:"has_registered"`
}

// BulkUpsertFailure records one rejected input of a bulk upsert.
type BulkUpsertFailure struct {
	Input UpsertAttendanceInput `json:"input"`
	Error string                `json:"error"`
}

// BulkUpsertResult is the partial-success outcome of a bulk upsert. Created
// holds newly inserted records, Updated records whose status was changed,
// Failed the inputs that were rejected by validation.
// swagger:model BulkUpsertResult
type BulkUpsertResult struct {
	Created []*Attendance       `json:"success"`
	Updated []*Attendance       `json:"updated"`
	Failed  []BulkUpsertFailure `json:"failed"`
}

// AttendanceRepository defines storage for attendance records.
type AttendanceRepository interface {
	Create(ctx context.Context, att *Attendance) error
	ListByOrg(ctx context.Context, orgID string) ([]*Attendance, error)
	ListByEvent(ctx context.Context, orgID, eventDateID string) ([]*Attendance, error)
	GetByID(ctx context.Context, orgID, id string) (*Attendance, error)
	Delete(ctx context.Context, orgID, id string) (bool, error)
	// ApplyBatch upserts and deletes records in one atomic cycle: a single
	// load/save on the embedded backend, a single transaction on the remote
	// one. Records in upserts replace existing records with the same ID.
	ApplyBatch(ctx context.Context, orgID string, upserts []*Attendance, deleteIDs []string) error
	// DeleteByMembers removes every record of the given members and returns
	// how many were removed.
	DeleteByMembers(ctx context.Context, orgID string, memberIDs []string) (int, error)
}

// AttendanceService defines attendance recording and aggregation.
type AttendanceService interface {
	Create(ctx context.Context, orgID string, input CreateAttendanceInput) (*Attendance, error)
	List(ctx context.Context, orgID string) ([]*Attendance, error)
	ListByEvent(ctx context.Context, orgID, eventDateID string) ([]*Attendance, error)
	Delete(ctx context.Context, orgID, id string) (bool, error)
	// Upsert records a response keyed by (event date, member), collapsing any
	// duplicate records to the newest one. The bool result is true when a new
	// record was created.
	Upsert(ctx context.Context, orgID string, input UpsertAttendanceInput) (*Attendance, bool, error)
	BulkUpsert(ctx context.Context, orgID string, inputs []UpsertAttendanceInput) (*BulkUpsertResult, error)
	EventSummary(ctx context.Context, orgID, eventDateID string) ([]*GroupSummary, error)
	EventTotalSummary(ctx context.Context, orgID, eventDateID string) (*EventTotalSummary, error)
	GroupMemberAttendances(ctx context.Context, orgID, groupID, eventDateID string) ([]*MemberAttendance, error)
}
