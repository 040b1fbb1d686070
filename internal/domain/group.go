package domain

import (
	"context"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// colorRegex matches a #RRGGBB hex color.
var colorRegex = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Group is a named subdivision of an organization's members, e.g. an
// instrument section. Order is the display sort key.
// swagger:model Group
type Group struct {
	ID             string    `json:"id"`
	OrganizationID string    `json:"organization_id"`
	Name           string    `json:"name"`
	Order          int       `json:"order"`
	Color          string    `json:"color,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// Validate checks the full record.
func (g *Group) Validate() error {
	ve := &ValidationError{}
	if g.ID == "" {
		ve.add("id", "is required")
	}
	if g.OrganizationID == "" {
		ve.add("organization_id", "is required")
	}
	if n := utf8.RuneCountInString(g.Name); n < 1 || n > 50 {
		ve.add("name", "must be between 1 and 50 characters")
	}
	if g.Order < 0 {
		ve.add("order", "must be a non-negative integer")
	}
	if g.Color != "" && !colorRegex.MatchString(g.Color) {
		ve.add("color", "must be a #RRGGBB hex color")
	}
	return ve.errOrNil()
}

// CreateGroupInput is the validated input for creating a group.
type CreateGroupInput struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
	Color string `json:"color"`
}

// Validate trims the name and reports every constraint violation.
func (in *CreateGroupInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	ve := &ValidationError{}
	if n := utf8.RuneCountInString(in.Name); n < 1 || n > 50 {
		ve.add("name", "must be between 1 and 50 characters")
	}
	if in.Order < 0 {
		ve.add("order", "must be a non-negative integer")
	}
	if in.Color != "" && !colorRegex.MatchString(in.Color) {
		ve.add("color", "must be a #RRGGBB hex color")
	}
	return ve.errOrNil()
}

// UpdateGroupInput is a partial patch; nil fields are left unchanged.
type UpdateGroupInput struct {
	Name  *string `json:"name"`
	Order *int    `json:"order"`
	Color *string `json:"color"`
}

// ApplyTo merges the patch onto g. The merged record must be revalidated.
func (in *UpdateGroupInput) ApplyTo(g *Group) {
	if in.Name != nil {
		g.Name = strings.TrimSpace(*in.Name)
	}
	if in.Order != nil {
		g.Order = *in.Order
	}
	if in.Color != nil {
		g.Color = *in.Color
	}
}

// GroupRepository defines storage for groups. ListByOrg returns groups sorted
// by display order ascending.
type GroupRepository interface {
	Create(ctx context.Context, group *Group) error
	ListByOrg(ctx context.Context, orgID string) ([]*Group, error)
	GetByID(ctx context.Context, orgID, id string) (*Group, error)
	Update(ctx context.Context, group *Group) error
	Delete(ctx context.Context, orgID, id string) (bool, error)
}

// GroupService defines group CRUD. Delete cascades to the group's members and
// their attendance records.
type GroupService interface {
	Create(ctx context.Context, orgID string, input CreateGroupInput) (*Group, error)
	List(ctx context.Context, orgID string) ([]*Group, error)
	GetByID(ctx context.Context, orgID, id string) (*Group, error)
	Update(ctx context.Context, orgID, id string, patch UpdateGroupInput) (*Group, error)
	Delete(ctx context.Context, orgID, id string) (bool, error)
}
