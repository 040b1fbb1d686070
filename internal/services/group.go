package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"attendancebook/internal/domain"
)

type groupService struct {
	groupRepo      domain.GroupRepository
	memberRepo     domain.MemberRepository
	attendanceRepo domain.AttendanceRepository
}

// NewGroupService creates a GroupService. The member and attendance
// repositories are needed because deleting a group cascades to its members
// and their attendance records.
func NewGroupService(
	groupRepo domain.GroupRepository,
	memberRepo domain.MemberRepository,
	attendanceRepo domain.AttendanceRepository,
) domain.GroupService {
	return &groupService{
		groupRepo:      groupRepo,
		memberRepo:     memberRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *groupService) Create(ctx context.Context, orgID string, input domain.CreateGroupInput) (*domain.Group, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	group := &domain.Group{
		ID:             uuid.NewString(),
		OrganizationID: orgID,
		Name:           input.Name,
		Order:          input.Order,
		Color:          input.Color,
		CreatedAt:      time.Now(),
	}
	if err := s.groupRepo.Create(ctx, group); err != nil {
		return nil, fmt.Errorf("create group: %w", err)
	}
	return group, nil
}

func (s *groupService) List(ctx context.Context, orgID string) ([]*domain.Group, error) {
	groups, err := s.groupRepo.ListByOrg(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *groupService) GetByID(ctx context.Context, orgID, id string) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	return group, nil
}

func (s *groupService) Update(ctx context.Context, orgID, id string, patch domain.UpdateGroupInput) (*domain.Group, error) {
	group, err := s.groupRepo.GetByID(ctx, orgID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get group: %w", err)
	}
	patch.ApplyTo(group)
	if err := group.Validate(); err != nil {
		return nil, err
	}
	if err := s.groupRepo.Update(ctx, group); err != nil {
		return nil, fmt.Errorf("update group: %w", err)
	}
	return group, nil
}

func (s *groupService) Delete(ctx context.Context, orgID, id string) (bool, error) {
	removed, err := s.groupRepo.Delete(ctx, orgID, id)
	if err != nil {
		return false, fmt.Errorf("delete group: %w", err)
	}
	if !removed {
		return false, nil
	}
	// Cascade: the group's members and their attendance records go with it.
	memberIDs, err := s.memberRepo.DeleteByGroup(ctx, orgID, id)
	if err != nil {
		return true, fmt.Errorf("delete group members: %w", err)
	}
	if _, err := s.attendanceRepo.DeleteByMembers(ctx, orgID, memberIDs); err != nil {
		return true, fmt.Errorf("delete member attendances: %w", err)
	}
	return true, nil
}
