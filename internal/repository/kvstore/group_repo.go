package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

type groupRepository struct {
	store kv.Store
}

// NewGroupRepository returns an embedded-mode group repository.
func NewGroupRepository(store kv.Store) domain.GroupRepository {
	return &groupRepository{store: store}
}

func (r *groupRepository) load(orgID string) ([]*domain.Group, error) {
	raw, ok, err := r.store.Get(groupsKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("load groups: %w", err)
	}
	if !ok {
		return []*domain.Group{}, nil
	}
	var all []*domain.Group
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return []*domain.Group{}, nil
	}
	valid := make([]*domain.Group, 0, len(all))
	for _, g := range all {
		if g == nil || g.Validate() != nil {
			continue
		}
		valid = append(valid, g)
	}
	return valid, nil
}

func (r *groupRepository) save(orgID string, groups []*domain.Group) error {
	raw, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("encode groups: %w", err)
	}
	if err := r.store.Set(groupsKey(orgID), string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return nil
}

func (r *groupRepository) Create(ctx context.Context, group *domain.Group) error {
	groups, err := r.load(group.OrganizationID)
	if err != nil {
		return err
	}
	groups = append(groups, group)
	return r.save(group.OrganizationID, groups)
}

func (r *groupRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Group, error) {
	groups, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Order < groups[j].Order
	})
	return groups, nil
}

func (r *groupRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Group, error) {
	groups, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		if g.ID == id {
			return g, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *groupRepository) Update(ctx context.Context, group *domain.Group) error {
	groups, err := r.load(group.OrganizationID)
	if err != nil {
		return err
	}
	for i, existing := range groups {
		if existing.ID == group.ID {
			groups[i] = group
			return r.save(group.OrganizationID, groups)
		}
	}
	return domain.ErrNotFound
}

func (r *groupRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	groups, err := r.load(orgID)
	if err != nil {
		return false, err
	}
	remaining := make([]*domain.Group, 0, len(groups))
	for _, g := range groups {
		if g.ID != id {
			remaining = append(remaining, g)
		}
	}
	if len(remaining) == len(groups) {
		return false, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return false, err
	}
	return true, nil
}
