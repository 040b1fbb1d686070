package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendancebook/internal/domain"
)

type memberService struct {
	memberRepo domain.MemberRepository
	groupRepo  domain.GroupRepository
}

// NewMemberService creates a MemberService with the given repositories.
func NewMemberService(memberRepo domain.MemberRepository, groupRepo domain.GroupRepository) domain.MemberService {
	return &memberService{memberRepo: memberRepo, groupRepo: groupRepo}
}

func (s *memberService) Create(ctx context.Context, orgID string, input domain.CreateMemberInput) (*domain.Member, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	// Ensure the target group exists within this organization.
	if _, err := s.groupRepo.GetByID(ctx, orgID, input.GroupID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	member := &domain.Member{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		GroupID:        input.GroupID,
		Name:           input.Name,
		Email:          input.Email,
		CreatedAt:      time.Now(),
	}
	if err := s.memberRepo.Create(ctx, member); err != nil {
		return nil, fmt.Errorf("create member: %w", err)
	}
	return member, nil
}

func (s *memberService) List(ctx context.Context, orgID string) ([]*domain.Member, error) {
	members, err := s.memberRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (s *memberService) ListByGroup(ctx context.Context, orgID, groupID string) ([]*domain.Member, error) {
	members, err := s.memberRepo.ListByGroup(ctx, orgID, groupID)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}

func (s *memberService) GetByID(ctx context.Context, orgID, id string) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	return member, nil
}

func (s *memberService) Update(ctx context.Context, orgID, id string, patch domain.UpdateMemberInput) (*domain.Member, error) {
	member, err := s.memberRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get member: %w", err)
	}
	patch.ApplyTo(member)
	if err := member.Validate(); err != nil {
		return nil, err
	}
	if err := s.memberRepo.Update(ctx, member); err != nil {
		return nil, fmt.Errorf("update member: %w", err)
	}
	return member, nil
}

func (s *memberService) Delete(ctx context.Context, orgID, id string) (bool, error) {
	removed, err := s.memberRepo.Delete(ctx, orgID, id)
	if err != nil {
		return false, fmt.Errorf("delete member: %w", err)
	}
	return removed, nil
}
