package domain

import (
	"context"
	"crypto/rand"
	"math/big"
	"strings"
	"time"
	"unicode/utf8"
)

// Organization is the top-level tenant. Every other entity is scoped beneath
// one organization and is invisible outside of it.
// swagger:model Organization
type Organization struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewOrganization returns an Organization with a freshly generated ID.
func NewOrganization(name, description string, createdAt time.Time) (*Organization, error) {
	id, err := NewOrganizationID()
	if err != nil {
		return nil, err
	}
	return &Organization{
		ID:          id,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
		CreatedAt:   createdAt,
	}, nil
}

const organizationIDLength = 10

var organizationIDAlphabet = []rune("abcdefghijklmnopqrstuvwxyz0123456789")

// NewOrganizationID generates a 10-character lowercase alphanumeric token.
func NewOrganizationID() (string, error) {
	b := make([]rune, organizationIDLength)
	max := big.NewInt(int64(len(organizationIDAlphabet)))
	for i := 0; i < organizationIDLength; i++ {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		b[i] = organizationIDAlphabet[n.Int64()]
	}
	return string(b), nil
}

// Validate checks the full record. Used both for update revalidation and for
// filtering corrupt rows on load.
func (o *Organization) Validate() error {
	ve := &ValidationError{}
	if o.ID == "" {
		ve.add("id", "is required")
	}
	if n := utf8.RuneCountInString(o.Name); n < 1 || n > 100 {
		ve.add("name", "must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(o.Description) > 500 {
		ve.add("description", "must be at most 500 characters")
	}
	if o.CreatedAt.IsZero() {
		ve.add("created_at", "is required")
	}
	return ve.errOrNil()
}

// CreateOrganizationInput is the validated input for creating an organization.
type CreateOrganizationInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Validate trims free-text fields and reports every constraint violation.
func (in *CreateOrganizationInput) Validate() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	ve := &ValidationError{}
	if n := utf8.RuneCountInString(in.Name); n < 1 || n > 100 {
		ve.add("name", "must be between 1 and 100 characters")
	}
	if utf8.RuneCountInString(in.Description) > 500 {
		ve.add("description", "must be at most 500 characters")
	}
	return ve.errOrNil()
}

// UpdateOrganizationInput is a partial patch; nil fields are left unchanged.
type UpdateOrganizationInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ApplyTo merges the patch onto org, trimming free-text fields. The merged
// record must be revalidated by the caller.
func (in *UpdateOrganizationInput) ApplyTo(org *Organization) {
	if in.Name != nil {
		org.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		org.Description = strings.TrimSpace(*in.Description)
	}
}

// OrganizationRepository defines storage for organizations. Delete cascades to
// every entity scoped under the organization.
type OrganizationRepository interface {
	Create(ctx context.Context, org *Organization) error
	List(ctx context.Context) ([]*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, org *Organization) error
	Delete(ctx context.Context, id string) (bool, error)
}

// OrganizationService defines organization CRUD.
type OrganizationService interface {
	Create(ctx context.Context, input CreateOrganizationInput) (*Organization, error)
	List(ctx context.Context) ([]*Organization, error)
	GetByID(ctx context.Context, id string) (*Organization, error)
	Update(ctx context.Context, id string, patch UpdateOrganizationInput) (*Organization, error)
	Delete(ctx context.Context, id string) (bool, error)
}
