package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"attendancebook/internal/domain"
)

type organizationService struct {
	orgRepo domain.OrganizationRepository
}

// NewOrganizationService creates an OrganizationService with the given repository.
func NewOrganizationService(orgRepo domain.OrganizationRepository) domain.OrganizationService {
	return &organizationService{orgRepo: orgRepo}
}

func (s *organizationService) Create(ctx context.Context, input domain.CreateOrganizationInput) (*domain.Organization, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	org, err := domain.NewOrganization(input.Name, input.Description, time.Now())
	if err != nil {
		return nil, fmt.Errorf("generate organization id: %w", err)
	}
	if err := s.orgRepo.Create(ctx, org); err != nil {
		return nil, fmt.Errorf("create organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) List(ctx context.Context) ([]*domain.Organization, error) {
	orgs, err := s.orgRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return orgs, nil
}

func (s *organizationService) GetByID(ctx context.Context, id string) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Update(ctx context.Context, id string, patch domain.UpdateOrganizationInput) (*domain.Organization, error) {
	org, err := s.orgRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get organization: %w", err)
	}
	patch.ApplyTo(org)
	if err := org.Validate(); err != nil {
		return nil, err
	}
	if err := s.orgRepo.Update(ctx, org); err != nil {
		return nil, fmt.Errorf("update organization: %w", err)
	}
	return org, nil
}

func (s *organizationService) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := s.orgRepo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("delete organization: %w", err)
	}
	return removed, nil
}
