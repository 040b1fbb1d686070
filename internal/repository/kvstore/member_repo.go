package kvstore

import (
	"context"
	"encoding/json"
	"fmt"

	"attendancebook/internal/domain"
	"attendancebook/internal/kv"
)

type memberRepository struct {
	store kv.Store
}

// NewMemberRepository returns an embedded-mode member repository.
func NewMemberRepository(store kv.Store) domain.MemberRepository {
	return &memberRepository{store: store}
}

func (r *memberRepository) load(orgID string) ([]*domain.Member, error) {
	raw, ok, err := r.store.Get(membersKey(orgID))
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	if !ok {
		return []*domain.Member{}, nil
	}
	var all []*domain.Member
	if err := json.Unmarshal([]byte(raw), &all); err != nil {
		return []*domain.Member{}, nil
	}
	valid := make([]*domain.Member, 0, len(all))
	for _, m := range all {
		if m == nil || m.Validate() != nil {
			continue
		}
		valid = append(valid, m)
	}
	return valid, nil
}

func (r *memberRepository) save(orgID string, members []*domain.Member) error {
	raw, err := json.Marshal(members)
	if err != nil {
		return fmt.Errorf("encode members: %w", err)
	}
	if err := r.store.Set(membersKey(orgID), string(raw)); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrStorageFailed, err)
	}
	return nil
}

func (r *memberRepository) Create(ctx context.Context, member *domain.Member) error {
	members, err := r.load(member.OrganizationID)
	if err != nil {
		return err
	}
	members = append(members, member)
	return r.save(member.OrganizationID, members)
}

func (r *memberRepository) ListByOrg(ctx context.Context, orgID string) ([]*domain.Member, error) {
	return r.load(orgID)
}

func (r *memberRepository) ListByGroup(ctx context.Context, orgID, groupID string) ([]*domain.Member, error) {
	members, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	inGroup := make([]*domain.Member, 0, len(members))
	for _, m := range members {
		if m.GroupID == groupID {
			inGroup = append(inGroup, m)
		}
	}
	return inGroup, nil
}

func (r *memberRepository) GetByID(ctx context.Context, orgID, id string) (*domain.Member, error) {
	members, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	for _, m := range members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memberRepository) Update(ctx context.Context, member *domain.Member) error {
	members, err := r.load(member.OrganizationID)
	if err != nil {
		return err
	}
	for i, existing := range members {
		if existing.ID == member.ID {
			members[i] = member
			return r.save(member.OrganizationID, members)
		}
	}
	return domain.ErrNotFound
}

func (r *memberRepository) Delete(ctx context.Context, orgID, id string) (bool, error) {
	members, err := r.load(orgID)
	if err != nil {
		return false, err
	}
	remaining := make([]*domain.Member, 0, len(members))
	for _, m := range members {
		if m.ID != id {
			remaining = append(remaining, m)
		}
	}
	if len(remaining) == len(members) {
		return false, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return false, err
	}
	return true, nil
}

func (r *memberRepository) DeleteByGroup(ctx context.Context, orgID, groupID string) ([]string, error) {
	members, err := r.load(orgID)
	if err != nil {
		return nil, err
	}
	remaining := make([]*domain.Member, 0, len(members))
	var removed []string
	for _, m := range members {
		if m.GroupID == groupID {
			removed = append(removed, m.ID)
			continue
		}
		remaining = append(remaining, m)
	}
	if len(removed) == 0 {
		return nil, nil
	}
	if err := r.save(orgID, remaining); err != nil {
		return nil, err
	}
	return removed, nil
}
