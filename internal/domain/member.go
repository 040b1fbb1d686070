package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// memberEmailRegex matches a simple email format (local@domain with a dot in domain).
var memberEmailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Member is a person belonging to exactly one group. Email is optional and is
// only used for event reminder mail.
// swagger:model Member
type Member struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	GroupID        string    `json:"group_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the full record.
func (m *Member) Validate() error {
	ve := &ValidationError{}
	if m.ID == "" {
		ve.add("id", "is required")
	}
	if m.OrganizationID == "" {
		ve.add("organization_id", "is required")
	}
	if m.GroupID == "" {
		ve.add("group_id", "is required")
	}
	if n := utf8.RuneCountInString(m.Name); n < 1 || n > 50 {
		ve.add("name", "must be between 1 and 50 characters")
	}
	if m.Email != "" && !memberEmailRegex.MatchString(m.Email) {
		ve.add("email", "must be a valid email address")
	}
	return ve.errOrNil()
}

// CreateMemberInput is the validated input for creating a member.
type CreateMemberInput struct {
	GroupID string `json:"group_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
}

// Validate trims the name and reports every constraint violation.
func (in *CreateMemberInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	ve := &ValidationError{}
	if in.GroupID == "" {
		ve.add("group_id", "is required")
	}
	if n := utf8.RuneCountInString(in.Name); n < 1 || n > 50 {
		ve.add("name", "must be between 1 and 50 characters")
	}
	if in.Email != "" && !memberEmailRegex.MatchString(in.Email) {
		ve.add("email", "must be a valid email address")
	}
	return ve.errOrNil()
}

// UpdateMemberInput is a partial patch; nil fields are left unchanged.
type UpdateMemberInput struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// ApplyTo merges the patch onto m. The merged record must be revalidated.
func (in *UpdateMemberInput) ApplyTo(m *Member) {
	if in.Name != nil {
		m.Name = strings.TrimSpace(*in.Name)
	}
	if in.Email != nil {
		m.Email = strings.TrimSpace(*in.Email)
	}
}

// MemberRepository defines storage for members.
type MemberRepository interface {
	Create(ctx context.Context, member *Member) error
	ListByOrg(ctx context.Context, orgID string) ([]*Member, error)
	ListByGroup(ctx context.Context, orgID, groupID string) ([]*Member, error)
	GetByID(ctx context.Context, orgID, id string) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, orgID, id string) (bool, error)
	// DeleteByGroup removes every member of the group and returns the IDs of
	// the removed members so dependent records can be cleaned up.
	DeleteByGroup(ctx context.Context, orgID, groupID string) ([]string, error)
}

// MemberService defines member CRUD.
type MemberService interface {
	Create(ctx context.Context, orgID string, input CreateMemberInput) (*Member, error)
	List(ctx context.Context, orgID string) ([]*Member, error)
	ListByGroup(ctx context.Context, orgID, groupID string) ([]*Member, error)
	GetByID(ctx context.Context, orgID, id string) (*Member, error)
	Update(ctx context.Context, orgID, id string, patch UpdateMemberInput) (*Member, error)
	Delete(ctx context.Context, orgID, id string) (bool, error)
}
