package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

type organizationRepository struct {
	store kv.Store
}

// NewOrganizationRepository returns an embedded-mode organization repository.
func NewOrganizationRepository(store kv.Store) domain.OrganizationRepository {
	return &organizationRepository{store: store}
}

func (r *organizationRepository) load() ([]*domain.Organization, error) {
	raw, ok, err := r.store.Get(organizationsKey)
	if err != nil {
		return nil, fmt.Errorf("load organizations: %w", err)
	}
	if !ok {
		return []*domain.Organization{}, nil
	}
	var all []*domain.Organization
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		// Unreadable blob reads as empty; rows are not repaired in place.
		return []*domain.Organization{}, nil
	}
	valid := make([]*domain.Organization, 0, len(all))
	for _, org := range all {
		if org == nil || org.Validate() != nil {
			continue
		}
		valid = append(valid, org)
	}
	return valid, nil
}

func (r *organizationRepository) save(orgs []*domain.Organization) error {
	raw, err := json.Marshal(orgs)
	if err != nil {
		return fmt.Errorf("encode organizations: %w", err)
	}
	if err := r.store.Set(organizationsKey, string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return nil
}

func (r *organizationRepository) Create(ctx context.Context, org *domain.Organization) error {
	orgs, err := r.load()
	if err != nil {
		return err
	}
	orgs = append(orgs, org)
	return r.save(orgs)
}

func (r *organizationRepository) List(ctx context.Context) ([]*domain.Organization, error) {
	orgs, err := r.load()
	if err != nil {
		return nil, err
	}
	sort.SliceStable(orgs, func(i, j int) bool {
		return orgs[i].CreatedAt.After(orgs[j].CreatedAt)
	})
	return orgs, nil
}

func (r *organizationRepository) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	orgs, err := r.load()
	if err != nil {
		return nil, err
	}
	for _, org := range orgs {
		if org.ID == id {
			return org, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *organizationRepository) Update(ctx context.Context, org *domain.Organization) error {
	orgs, err := r.load()
	if err != nil {
		return err
	}
	for i, existing := range orgs {
		if existing.ID == org.ID {
			orgs[i] = org
			return r.save(orgs)
		}
	}
	return domain.ErrNotFound
}

func (r *organizationRepository) Delete(ctx context.Context, id string) (bool, error) {
	orgs, err := r.load()
	if err != nil {
		return false, err
	}
	remaining := make([]*domain.Organization, 0, len(orgs))
	for _, org := range orgs {
		if org.ID != id {
			remaining = append(remaining, org)
		}
	}
	if len(remaining) == len(orgs) {
		return false, nil
	}
	if err := r.save(remaining); err != nil {
		return false, err
	}
	// Cascade: drop every collection scoped under the organization.
	for _, key := range []string{eventDatesKey(id), groupsKey(id), membersKey(id), attendancesKey(id)} {
		if err := r.store.Delete(key); err != nil {
			return false, fmt.Errorf("cascade delete %s: %w", key, err)
		}
	}
	return true, nil
}
